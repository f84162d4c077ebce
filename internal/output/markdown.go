package output

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/creatorops/opsfeed/internal/feed"
)

// MarkdownFormatter formats the feed as a Markdown report
type MarkdownFormatter struct {
	DashboardURL string
}

var urgencyOrder = []feed.UrgencyLevel{
	feed.UrgencyUrgent,
	feed.UrgencyHigh,
	feed.UrgencyMedium,
	feed.UrgencyLow,
}

// Format outputs feed items as Markdown, grouped by urgency
func (f *MarkdownFormatter) Format(items []feed.Item, w io.Writer) error {
	if len(items) == 0 {
		fmt.Fprintln(w, "Nothing needs attention right now.")
		return nil
	}

	fmt.Fprintln(w, "# Priority Feed")
	fmt.Fprintf(w, "\n*Generated: %s*\n\n", time.Now().Format("2006-01-02 15:04"))

	byUrgency := make(map[feed.UrgencyLevel][]feed.Item)
	for _, item := range items {
		byUrgency[item.Urgency] = append(byUrgency[item.Urgency], item)
	}

	for _, u := range urgencyOrder {
		group := byUrgency[u]
		if len(group) == 0 {
			continue
		}

		fmt.Fprintf(w, "## %s (%d)\n\n", u.Badge(), len(group))
		for _, item := range group {
			f.formatItem(item, w, 0)
		}
	}

	return nil
}

func (f *MarkdownFormatter) formatItem(item feed.Item, w io.Writer, depth int) {
	indent := strings.Repeat("  ", depth)

	title := item.Title
	if item.IsVIP {
		title = "⭐ " + title
	}

	fmt.Fprintf(w, "%s- **%s** · %s", indent, title, item.ActionLabel)
	if item.Amount > 0 {
		fmt.Fprintf(w, " ($%.0f)", item.Amount)
	}
	fmt.Fprintf(w, ", %s", item.TimeWaiting)
	if item.Subtitle != "" {
		fmt.Fprintf(w, "\n%s  %s", indent, item.Subtitle)
	}
	fmt.Fprintln(w)

	for _, child := range item.Children {
		f.formatItem(child, w, depth+1)
	}
}

// FormatSummary outputs a summary as Markdown
func (f *MarkdownFormatter) FormatSummary(summary feed.Summary, w io.Writer) error {
	fmt.Fprintln(w, "# Feed Summary")
	fmt.Fprintf(w, "\n*Total: %d items*\n\n", summary.Total)

	fmt.Fprintln(w, "| Urgency | Count |")
	fmt.Fprintln(w, "|---------|-------|")
	for _, u := range urgencyOrder {
		if count := summary.ByUrgency[u]; count > 0 {
			fmt.Fprintf(w, "| %s | %d |\n", u.Display(), count)
		}
	}

	if summary.VIPCount > 0 {
		fmt.Fprintf(w, "\n%d VIP requester(s) waiting.\n", summary.VIPCount)
	}
	if summary.PendingAmount > 0 {
		fmt.Fprintf(w, "\n$%.2f in proposed amounts pending approval.\n", summary.PendingAmount)
	}

	return nil
}
