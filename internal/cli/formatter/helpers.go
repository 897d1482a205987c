package formatter

import (
	"fmt"
	"math"
	"time"
)

// RelativeDateFrom describes t relative to now for past timestamps:
// "Today", "Yesterday", "3d ago", "2w ago", "4mo ago".
func RelativeDateFrom(t time.Time, now time.Time) string {
	days := int(math.Round(now.Sub(t).Hours() / 24))
	switch {
	case days <= 0:
		return "Today"
	case days == 1:
		return "Yesterday"
	case days < 14:
		return fmt.Sprintf("%dd ago", days)
	case days < 60:
		return fmt.Sprintf("%dw ago", days/7)
	default:
		return fmt.Sprintf("%dmo ago", days/30)
	}
}

// Truncate shortens s to n visible runes, ending with an ellipsis.
func Truncate(s string, n int) string {
	r := []rune(s)
	if n <= 0 || len(r) <= n {
		return s
	}
	if n == 1 {
		return "…"
	}
	return string(r[:n-1]) + "…"
}
