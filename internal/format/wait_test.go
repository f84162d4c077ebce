package format

import (
	"testing"
	"time"
)

func TestRelativeWait(t *testing.T) {
	tests := []struct {
		name string
		d    time.Duration
		want string
	}{
		{"zero duration", 0, "Just now"},
		{"two minutes", 2 * time.Minute, "Just now"},
		{"just under five minutes", 5*time.Minute - time.Second, "Just now"},
		{"exactly five minutes", 5 * time.Minute, "5 min ago"},
		{"forty-five minutes", 45 * time.Minute, "45 min ago"},
		{"just under an hour", 59 * time.Minute, "59 min ago"},
		{"exactly one hour", time.Hour, "1h ago"},
		{"five hours", 5 * time.Hour, "5h ago"},
		{"just under a day", 23*time.Hour + 59*time.Minute, "23h ago"},
		{"exactly one day", 24 * time.Hour, "Yesterday"},
		{"a day and a half", 36 * time.Hour, "Yesterday"},
		{"two days", 50 * time.Hour, "2 days ago"},
		{"a week", 7 * 24 * time.Hour, "7 days ago"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := RelativeWait(tt.d); got != tt.want {
				t.Errorf("RelativeWait(%v) = %q, want %q", tt.d, got, tt.want)
			}
		})
	}
}
