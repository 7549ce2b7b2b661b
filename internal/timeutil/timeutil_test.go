// ABOUTME: Tests for relative timestamp formatting

package timeutil

import (
	"testing"
	"time"
)

func TestRelative(t *testing.T) {
	now := time.Date(2026, 8, 29, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name string
		t    time.Time
		want string
	}{
		{"zero time", time.Time{}, "unknown date"},
		{"seconds ago", now.Add(-30 * time.Second), "just now"},
		{"minutes ago", now.Add(-12 * time.Minute), "12m ago"},
		{"hours ago", now.Add(-5 * time.Hour), "5h ago"},
		{"days ago", now.Add(-3 * 24 * time.Hour), "3d ago"},
		{"older than a week", now.Add(-10 * 24 * time.Hour), "19 Aug 2026"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Relative(tt.t, now); got != tt.want {
				t.Errorf("Relative(%v) = %q, want %q", tt.t, got, tt.want)
			}
		})
	}
}
