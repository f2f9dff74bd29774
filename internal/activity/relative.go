package activity

import (
	"fmt"
	"time"
)

// AbsoluteLayout is used once a timestamp is a week or more old.
const AbsoluteLayout = "01/02/2006 at 3:04 PM"

// FormatRelative renders t relative to now: "Just now", "5 minutes ago",
// "1 hour ago", "3 days ago", then an absolute date in t's location.
// Timestamps in the future read as "Just now".
func FormatRelative(now, t time.Time) string {
	d := now.Sub(t)
	switch {
	case d < time.Minute:
		return "Just now"
	case d < time.Hour:
		return ago(int(d/time.Minute), "minute")
	case d < 24*time.Hour:
		return ago(int(d/time.Hour), "hour")
	case d < 7*24*time.Hour:
		return ago(int(d/(24*time.Hour)), "day")
	default:
		return t.Format(AbsoluteLayout)
	}
}

func ago(n int, unit string) string {
	return fmt.Sprintf("%d %s ago", n, plural(n, unit))
}
