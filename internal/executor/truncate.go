package executor

import "fmt"

// truncate caps s at maxBytes, appending a marker when it cut
// anything, per spec.md §4.2 step 6 ("these caps protect response
// size and memory").
func truncate(s string, maxBytes int) (out string, truncated bool) {
	if len(s) <= maxBytes {
		return s, false
	}
	return s[:maxBytes] + fmt.Sprintf("\n...[truncated, %d bytes total]", len(s)), true
}
