package format

import (
	"strings"

	"github.com/mattn/go-runewidth"
)

// Truncate shortens a string to at most max runes, appending "..." when
// the string was cut. Counting is rune-based so multi-byte text never
// gets split mid-character.
func Truncate(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	if max <= 3 {
		return string(runes[:max])
	}
	return string(runes[:max-3]) + "..."
}

// DisplayWidth returns the visible width of a string in terminal columns,
// accounting for wide characters like emojis (which take 2 columns).
func DisplayWidth(s string) int {
	return runewidth.StringWidth(s)
}

// TruncateToWidth truncates a string to fit within maxWidth display
// columns, leaving room for a "..." suffix when truncation occurs.
// Returns the truncated string and its visible width.
func TruncateToWidth(s string, maxWidth int) (string, int) {
	width := runewidth.StringWidth(s)
	if width <= maxWidth {
		return s, width
	}

	targetWidth := maxWidth - 3
	if targetWidth < 0 {
		targetWidth = 0
	}

	var b strings.Builder
	visible := 0
	for _, r := range s {
		rw := runewidth.RuneWidth(r)
		if visible+rw > targetWidth {
			break
		}
		b.WriteRune(r)
		visible += rw
	}
	b.WriteString("...")

	return b.String(), visible + 3
}

// PadRight pads a string with spaces to reach the target visible width.
func PadRight(s string, visibleWidth, targetWidth int) string {
	if visibleWidth >= targetWidth {
		return s
	}
	return s + strings.Repeat(" ", targetWidth-visibleWidth)
}
