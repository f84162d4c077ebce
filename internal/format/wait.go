// Package format provides shared text formatting utilities for feed output.
package format

import (
	"fmt"
	"time"
)

// RelativeWait formats an elapsed duration as the dashboard's
// human-readable wait string: "Just now", "N min ago", "Nh ago",
// "Yesterday", "N days ago".
func RelativeWait(d time.Duration) string {
	if d < 5*time.Minute {
		return "Just now"
	}
	if d < time.Hour {
		return fmt.Sprintf("%d min ago", int(d.Minutes()))
	}
	if d < 24*time.Hour {
		return fmt.Sprintf("%dh ago", int(d.Hours()))
	}
	days := int(d.Hours() / 24)
	if days == 1 {
		return "Yesterday"
	}
	return fmt.Sprintf("%d days ago", days)
}
