package output

import (
	"encoding/json"
	"io"

	"github.com/creatorops/opsfeed/internal/feed"
)

// JSONFormatter formats output as JSON
type JSONFormatter struct {
	Pretty bool
}

func (f *JSONFormatter) encoder(w io.Writer) *json.Encoder {
	enc := json.NewEncoder(w)
	if f.Pretty {
		enc.SetIndent("", "  ")
	}
	return enc
}

// Format outputs feed items as JSON
func (f *JSONFormatter) Format(items []feed.Item, w io.Writer) error {
	return f.encoder(w).Encode(items)
}

// FormatSummary outputs a summary as JSON
func (f *JSONFormatter) FormatSummary(summary feed.Summary, w io.Writer) error {
	return f.encoder(w).Encode(summary)
}

// JSONOutput wraps items with their summary for a single document
type JSONOutput struct {
	Items   []feed.Item  `json:"items"`
	Summary feed.Summary `json:"summary"`
}

// FormatWithSummary outputs items and summary together
func (f *JSONFormatter) FormatWithSummary(items []feed.Item, w io.Writer) error {
	return f.encoder(w).Encode(JSONOutput{
		Items:   items,
		Summary: feed.Summarize(items),
	})
}
