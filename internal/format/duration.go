// Package format holds small pure display helpers shared by the HTTP
// handlers, the CLI, and the MCP tools.
package format

import (
	"fmt"
	"math"
)

// FormatDuration renders an elapsed-seconds count as "1h 4m 5s", "4m 5s" or
// "5s". Negative, NaN or infinite input renders as "0s"; fractional seconds
// are floored. Total function, never errors.
func FormatDuration(totalSeconds float64) string {
	secs := 0
	if !math.IsNaN(totalSeconds) && !math.IsInf(totalSeconds, 0) && totalSeconds > 0 {
		secs = int(math.Floor(totalSeconds))
	}

	hours := secs / 3600
	minutes := (secs % 3600) / 60
	seconds := secs % 60

	switch {
	case hours > 0:
		return fmt.Sprintf("%dh %dm %ds", hours, minutes, seconds)
	case minutes > 0:
		return fmt.Sprintf("%dm %ds", minutes, seconds)
	default:
		return fmt.Sprintf("%ds", seconds)
	}
}
