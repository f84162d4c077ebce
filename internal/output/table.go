package output

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
	"golang.org/x/term"

	"github.com/creatorops/opsfeed/internal/feed"
	"github.com/creatorops/opsfeed/internal/format"
)

// TableFormatter formats the feed as a terminal table
type TableFormatter struct {
	DashboardURL string
}

// hyperlink creates a clickable terminal hyperlink using OSC 8.
// Format: \033]8;;URL\033\\TEXT\033]8;;\033\\
func hyperlink(text, url string) string {
	if url == "" || !term.IsTerminal(int(os.Stdout.Fd())) {
		return text
	}
	return fmt.Sprintf("\033]8;;%s\033\\%s\033]8;;\033\\", url, text)
}

// itemURL builds the dashboard deep link for a feed item
func (f *TableFormatter) itemURL(item feed.Item) string {
	if f.DashboardURL == "" {
		return ""
	}
	base := strings.TrimRight(f.DashboardURL, "/")
	switch item.Type {
	case feed.TypeCustomApproval, feed.TypeCustomUpload:
		return base + "/customs/" + item.ID
	case feed.TypeScene:
		return base + "/scenes/" + item.ID
	default:
		return base + "/scenes"
	}
}

// colorUrgency renders an urgency label in its terminal color
func colorUrgency(u feed.UrgencyLevel) string {
	switch u {
	case feed.UrgencyUrgent:
		return color.New(color.FgRed, color.Bold).Sprint(u.Display())
	case feed.UrgencyHigh:
		return color.New(color.FgYellow).Sprint(u.Display())
	case feed.UrgencyMedium:
		return color.New(color.FgCyan).Sprint(u.Display())
	default:
		return color.New(color.FgWhite).Sprint(u.Display())
	}
}

// Column widths
const (
	colUrgency  = 8
	colTitle    = 38
	colSubtitle = 32
	colAmount   = 8
	colWaiting  = 12
)

// Format outputs feed items as a table
func (f *TableFormatter) Format(items []feed.Item, w io.Writer) error {
	if len(items) == 0 {
		fmt.Fprintln(w, "Nothing needs attention right now.")
		return nil
	}

	fmt.Fprintf(w, "%-*s  %-*s  %-*s  %*s  %-*s  %s\n",
		colUrgency, "Urgency",
		colTitle, "Item",
		colSubtitle, "Details",
		colAmount, "Amount",
		colWaiting, "Waiting",
		"Action")
	fmt.Fprintln(w, strings.Repeat("-", colUrgency+colTitle+colSubtitle+colAmount+colWaiting+18))

	for _, item := range items {
		f.printRow(item, w, false)
		if item.Type == feed.TypeSceneGroup {
			for _, child := range item.Children {
				f.printRow(child, w, true)
			}
		}
	}

	printFooterSummary(items, w)
	return nil
}

func (f *TableFormatter) printRow(item feed.Item, w io.Writer, indent bool) {
	title := item.Title
	if item.IsVIP {
		title = "⭐ " + title
	}
	if indent {
		title = "  └ " + title
	}
	title, titleWidth := format.TruncateToWidth(title, colTitle)

	linkedTitle := hyperlink(title, f.itemURL(item))
	linkedTitle = format.PadRight(linkedTitle, titleWidth, colTitle)

	subtitle, subtitleWidth := format.TruncateToWidth(item.Subtitle, colSubtitle)
	subtitle = format.PadRight(subtitle, subtitleWidth, colSubtitle)

	amount := ""
	if item.Amount > 0 {
		amount = fmt.Sprintf("$%.0f", item.Amount)
	}

	urgencyDisplay := item.Urgency.Display()
	urgencyStr := format.PadRight(colorUrgency(item.Urgency), len(urgencyDisplay), colUrgency)

	fmt.Fprintf(w, "%s  %s  %s  %*s  %-*s  %s\n",
		urgencyStr,
		linkedTitle,
		subtitle,
		colAmount, amount,
		colWaiting, item.TimeWaiting,
		item.ActionLabel,
	)
}

// printFooterSummary prints aggregate counts below the table
func printFooterSummary(items []feed.Item, w io.Writer) {
	s := feed.Summarize(items)

	fmt.Fprintln(w)
	parts := []string{fmt.Sprintf("%d items", s.Total)}
	if n := s.ByUrgency[feed.UrgencyUrgent]; n > 0 {
		parts = append(parts, color.New(color.FgRed).Sprintf("%d urgent", n))
	}
	if n := s.ByUrgency[feed.UrgencyHigh]; n > 0 {
		parts = append(parts, color.New(color.FgYellow).Sprintf("%d high", n))
	}
	if s.VIPCount > 0 {
		parts = append(parts, fmt.Sprintf("%d VIP", s.VIPCount))
	}
	if s.PendingAmount > 0 {
		parts = append(parts, fmt.Sprintf("$%.0f pending", s.PendingAmount))
	}
	fmt.Fprintln(w, strings.Join(parts, " · "))
}

// FormatSummary outputs only the aggregate counts
func (f *TableFormatter) FormatSummary(summary feed.Summary, w io.Writer) error {
	fmt.Fprintf(w, "Total items:    %d\n", summary.Total)
	fmt.Fprintf(w, "Urgent:         %d\n", summary.ByUrgency[feed.UrgencyUrgent])
	fmt.Fprintf(w, "High:           %d\n", summary.ByUrgency[feed.UrgencyHigh])
	fmt.Fprintf(w, "Medium:         %d\n", summary.ByUrgency[feed.UrgencyMedium])
	fmt.Fprintf(w, "Low:            %d\n", summary.ByUrgency[feed.UrgencyLow])
	fmt.Fprintf(w, "VIP requesters: %d\n", summary.VIPCount)
	fmt.Fprintf(w, "Pending amount: $%.2f\n", summary.PendingAmount)
	return nil
}
