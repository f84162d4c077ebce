package cmd

// Options holds the shared command-line options for the opsfeed CLI.
type Options struct {
	Format    string
	Since     string
	Urgency   string
	Type      string
	Team      string
	Limit     int
	Verbosity int
	VIPOnly   bool
	NoCache   bool
	NoGroup   bool

	// Profiling options
	CPUProfile string
	MemProfile string
	Trace      string
}

// Option is a functional option for configuring Options.
type Option func(*Options)

// NewOptions creates a new Options with defaults and applies any provided options.
func NewOptions(opts ...Option) *Options {
	o := &Options{
		Since: "1w",
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// WithFormat sets the output format (table, json, markdown).
func WithFormat(format string) Option {
	return func(o *Options) {
		o.Format = format
	}
}

// WithSince sets the lookback window for custom requests (e.g., "12h", "3d").
func WithSince(since string) Option {
	return func(o *Options) {
		o.Since = since
	}
}

// WithUrgency filters the feed to one urgency level.
func WithUrgency(urgency string) Option {
	return func(o *Options) {
		o.Urgency = urgency
	}
}

// WithType filters the feed to one item type (approval, upload, scene).
func WithType(t string) Option {
	return func(o *Options) {
		o.Type = t
	}
}

// WithTeam sets the team slug to fetch records for.
func WithTeam(team string) Option {
	return func(o *Options) {
		o.Team = team
	}
}

// WithLimit caps the number of feed items shown.
func WithLimit(limit int) Option {
	return func(o *Options) {
		o.Limit = limit
	}
}

// WithVerbosity sets the verbosity level.
func WithVerbosity(v int) Option {
	return func(o *Options) {
		o.Verbosity = v
	}
}

// WithVIPOnly keeps only VIP requester items.
func WithVIPOnly(vipOnly bool) Option {
	return func(o *Options) {
		o.VIPOnly = vipOnly
	}
}

// WithNoCache bypasses the on-disk record cache.
func WithNoCache(noCache bool) Option {
	return func(o *Options) {
		o.NoCache = noCache
	}
}

// WithNoGroup disables scene grouping regardless of config.
func WithNoGroup(noGroup bool) Option {
	return func(o *Options) {
		o.NoGroup = noGroup
	}
}
