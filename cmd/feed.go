package cmd

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/creatorops/opsfeed/config"
	"github.com/creatorops/opsfeed/internal/apiclient"
	"github.com/creatorops/opsfeed/internal/cache"
	"github.com/creatorops/opsfeed/internal/dismissed"
	"github.com/creatorops/opsfeed/internal/duration"
	"github.com/creatorops/opsfeed/internal/feed"
	"github.com/creatorops/opsfeed/internal/log"
	"github.com/creatorops/opsfeed/internal/output"
	"github.com/creatorops/opsfeed/internal/service"
)

// NewCmdFeed creates the feed command.
func NewCmdFeed(opts *Options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "feed",
		Short: "Show the prioritized work feed (same as root opsfeed)",
		Long: `Fetches pending custom requests and scene assignments from the
dashboard, scores them, and displays them sorted by urgency.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runFeed(cmd, opts)
		},
	}

	addFeedFlags(cmd, opts)
	return cmd
}

// addFeedFlags adds the feed-specific flags to a command.
func addFeedFlags(cmd *cobra.Command, opts *Options) {
	cmd.Flags().StringVarP(&opts.Format, "output", "o", "", "Output format (table, json, markdown)")
	cmd.Flags().StringVarP(&opts.Since, "since", "s", "1w", "Fetch custom requests submitted since (e.g., 12h, 3d, 2w)")
	cmd.Flags().StringVarP(&opts.Urgency, "urgency", "u", "", "Filter by urgency level (urgent, high, medium, low)")
	cmd.Flags().StringVarP(&opts.Type, "type", "t", "", "Filter by item type (approval, upload, scene)")
	cmd.Flags().StringVar(&opts.Team, "team", "", "Team slug to fetch records for (overrides config)")
	cmd.Flags().IntVarP(&opts.Limit, "limit", "n", 0, "Limit the number of items shown")
	cmd.Flags().BoolVar(&opts.VIPOnly, "vip", false, "Show only VIP requester items")
	cmd.Flags().BoolVar(&opts.NoCache, "no-cache", false, "Bypass the record cache")
	cmd.Flags().BoolVar(&opts.NoGroup, "no-group", false, "Never collapse scenes into a group")
	cmd.Flags().CountVarP(&opts.Verbosity, "verbose", "v", "Increase verbosity (-v info, -vv debug, -vvv trace)")

	// Profiling flags
	cmd.Flags().StringVar(&opts.CPUProfile, "cpuprofile", "", "Write CPU profile to file")
	cmd.Flags().StringVar(&opts.MemProfile, "memprofile", "", "Write memory profile to file")
	cmd.Flags().StringVar(&opts.Trace, "trace", "", "Write execution trace to file")
}

func runFeed(cmd *cobra.Command, opts *Options) error {
	ctx := cmd.Context()

	profiler := NewProfiler(opts.CPUProfile, opts.MemProfile, opts.Trace)
	if err := profiler.Start(); err != nil {
		return err
	}
	defer profiler.Stop()

	log.Initialize(opts.Verbosity, os.Stderr)

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	team := cfg.Team
	if opts.Team != "" {
		team = opts.Team
	}

	since, err := duration.Parse(opts.Since)
	if err != nil {
		return err
	}

	client, err := apiclient.NewClient(ctx, cfg.GetAPIToken(), cfg.APIBaseURL, team)
	if err != nil {
		return err
	}

	var recordCache cache.Cacher
	if !opts.NoCache {
		c, err := cache.NewCache()
		if err != nil {
			log.Warn("could not open record cache, fetching fresh", "error", err)
		} else {
			recordCache = c
		}
	}

	dismissedStore, err := dismissed.NewStore()
	if err != nil {
		log.Warn("could not load dismissed store", "error", err)
	}

	fetcher := service.NewFetcher(client, recordCache, team, since, func(completed, total int) {
		log.Progress("fetching records... %d/%d", completed, total)
	})
	result, err := fetcher.FetchAll(ctx)
	if err != nil {
		return err
	}
	log.ProgressDone()

	if result.RateLimited {
		log.Warn("dashboard API rate limit hit; feed may be incomplete")
	}
	log.Info("fetched records",
		"customs", len(result.Customs),
		"scenes", len(result.Scenes),
		"customsFromCache", result.CustomsFromCache,
		"scenesFromCache", result.ScenesFromCache)

	customs := feed.FilterExcludedRequesters(result.Customs, cfg.ExcludeRequesters)

	engine := feed.NewEngine(cfg.GetEngineWeights())
	items := engine.BuildFeed(customs, result.Scenes, nil, nil)

	items = applyFilters(items, opts, dismissedStore)

	if cfg.GroupScenes && !opts.NoGroup {
		items = engine.GroupScenes(items)
	}

	items = feed.Limit(items, opts.Limit)

	return renderOutput(items, opts, cfg)
}

// applyFilters narrows the feed per the command-line flags and hides
// locally dismissed items.
func applyFilters(items []feed.Item, opts *Options, store *dismissed.Store) []feed.Item {
	if store != nil {
		items = feed.FilterDismissed(items, store, time.Now())
	}

	if opts.Urgency != "" {
		items = feed.FilterByUrgency(items, feed.UrgencyLevel(opts.Urgency))
	}

	switch opts.Type {
	case "approval":
		items = feed.FilterByType(items, feed.TypeCustomApproval)
	case "upload":
		items = feed.FilterByType(items, feed.TypeCustomUpload)
	case "scene":
		items = feed.FilterByType(items, feed.TypeScene)
	}

	if opts.VIPOnly {
		items = feed.FilterVIP(items)
	}

	return items
}

func renderOutput(items []feed.Item, opts *Options, cfg *config.Config) error {
	format := opts.Format
	if format == "" {
		format = cfg.DefaultFormat
	}

	formatter := output.NewFormatter(output.Format(format), cfg.DashboardURL)
	return formatter.Format(items, os.Stdout)
}
