package ui

import (
	"fmt"
	"strings"
)

// ------ utils -------

// formatBytes renders a byte count with a binary-unit suffix, matching
// the fixed-width size column.
func formatBytes(n uint64) string {
	const unit = 1024
	if n < unit {
		return fmt.Sprintf("%d B", n)
	}
	div, exp := uint64(unit), 0
	for v := n / unit; v >= unit; v /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %ciB", float64(n)/float64(div), "KMGTPE"[exp])
}

// formatID renders an optional numeric owner ID, "?" when absent.
func formatID(id *uint32) string {
	if id == nil {
		return "?"
	}
	return fmt.Sprintf("%d", *id)
}

// orUnknown substitutes "?" for an absent symbolic name.
func orUnknown(s string) string {
	if s == "" {
		return "?"
	}
	return s
}

// countLines counts text lines the way a viewer displays them: a
// trailing newline does not start an extra line.
func countLines(s string) int {
	if s == "" {
		return 0
	}
	return strings.Count(strings.TrimSuffix(s, "\n"), "\n") + 1
}
