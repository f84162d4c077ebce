// Package output renders the priority feed as a terminal table, JSON,
// or Markdown.
package output

import (
	"io"

	"github.com/creatorops/opsfeed/internal/feed"
)

// Format represents the output format
type Format string

const (
	FormatTable    Format = "table"
	FormatJSON     Format = "json"
	FormatMarkdown Format = "markdown"
)

// Formatter defines the interface for output formatters
type Formatter interface {
	Format(items []feed.Item, w io.Writer) error
	FormatSummary(summary feed.Summary, w io.Writer) error
}

// NewFormatter creates a formatter for the specified format.
// dashboardURL is the base URL feed items link back to; the table
// formatter uses it for terminal hyperlinks.
func NewFormatter(format Format, dashboardURL string) Formatter {
	switch format {
	case FormatJSON:
		return &JSONFormatter{}
	case FormatMarkdown:
		return &MarkdownFormatter{DashboardURL: dashboardURL}
	default:
		return &TableFormatter{DashboardURL: dashboardURL}
	}
}
