// ABOUTME: Time utility functions for article timestamp display
// ABOUTME: Formats publish times as compact relative ages

package timeutil

import (
	"fmt"
	"time"
)

// Relative formats how long before now t was, compactly: "just now", "12m ago",
// "5h ago", "3d ago", then the date. The zero time (unparsable publish dates)
// renders as "unknown date".
func Relative(t, now time.Time) string {
	if t.IsZero() {
		return "unknown date"
	}

	age := now.Sub(t)
	switch {
	case age < time.Minute:
		return "just now"
	case age < time.Hour:
		return fmt.Sprintf("%dm ago", int(age.Minutes()))
	case age < 24*time.Hour:
		return fmt.Sprintf("%dh ago", int(age.Hours()))
	case age < 7*24*time.Hour:
		return fmt.Sprintf("%dd ago", int(age.Hours()/24))
	default:
		return t.Format("02 Jan 2006")
	}
}
