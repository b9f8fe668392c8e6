// Package utils provides formatting helpers for the dashboard.
package utils

import (
	"fmt"
	"strings"
	"time"
)

// FormatRate converts bytes/s to a human-readable string with 1024 steps.
// Sub-kilobyte rates are shown as whole bytes, everything above with two
// decimals.
func FormatRate(bps float64) string {
	const unit = 1024.0
	kb := bps / unit
	mb := kb / unit
	gb := mb / unit
	switch {
	case gb >= 1:
		return fmt.Sprintf("%.2f GB/s", gb)
	case mb >= 1:
		return fmt.Sprintf("%.2f MB/s", mb)
	case kb >= 1:
		return fmt.Sprintf("%.2f KB/s", kb)
	default:
		return fmt.Sprintf("%.0f B/s", bps)
	}
}

// FormatUptime formats a boot-relative duration as "1d 2h 3m".
func FormatUptime(d time.Duration) string {
	seconds := int64(d.Seconds())
	if seconds < 0 {
		seconds = 0
	}
	days := seconds / 86400
	hours := (seconds % 86400) / 3600
	minutes := (seconds % 3600) / 60

	parts := make([]string, 0, 3)
	if days > 0 {
		parts = append(parts, fmt.Sprintf("%dd", days))
	}
	if hours > 0 {
		parts = append(parts, fmt.Sprintf("%dh", hours))
	}
	if minutes > 0 || len(parts) == 0 {
		parts = append(parts, fmt.Sprintf("%dm", minutes))
	}

	return strings.Join(parts, " ")
}

// FormatPercent formats a percentage value.
func FormatPercent(percent float64) string {
	return fmt.Sprintf("%.1f%%", percent)
}

// TruncateString truncates a string to a maximum length.
func TruncateString(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return s[:maxLen]
	}
	return s[:maxLen-3] + "..."
}
