package providers

import (
	"fmt"
	"strconv"
	"time"
)

// noReset is the placeholder used by providers without a reset concept.
const noReset = "--"

// FormatDuration renders a duration in whole seconds as "Xd Yh Zm",
// "Yh Zm" or "Zm". Non-positive durations render as "Now".
func FormatDuration(totalSeconds int64) string {
	if totalSeconds <= 0 {
		return "Now"
	}

	days := totalSeconds / 86400
	hours := (totalSeconds % 86400) / 3600
	minutes := (totalSeconds % 3600) / 60

	if days > 0 {
		return fmt.Sprintf("%dd %dh %dm", days, hours, minutes)
	}
	if hours > 0 {
		return fmt.Sprintf("%dh %dm", hours, minutes)
	}
	return fmt.Sprintf("%dm", minutes)
}

// formatResetAt renders the time until an RFC 3339 reset timestamp.
// Absent or unparseable timestamps render as "N/A".
func formatResetAt(iso string, now time.Time) string {
	if iso == "" {
		return "N/A"
	}
	resetAt, err := time.Parse(time.RFC3339, iso)
	if err != nil {
		return "N/A"
	}
	return FormatDuration(int64(resetAt.Sub(now) / time.Second))
}

// parseResetMs converts an RFC 3339 timestamp to epoch milliseconds, or 0.
func parseResetMs(iso string) int64 {
	if iso == "" {
		return 0
	}
	resetAt, err := time.Parse(time.RFC3339, iso)
	if err != nil {
		return 0
	}
	return resetAt.UnixMilli()
}

// formatPercent renders a percentage with no trailing zeros (42 -> "42%",
// 42.5 -> "42.5%").
func formatPercent(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64) + "%"
}
