// Package shared provides common utility functions used across multiple
// packages in the sourcemod-installer codebase.
package shared

import (
	"fmt"
	"strings"
)

// ParseBool interprets a yes/no answer typed by the operator. The
// accepted spellings are y, yes, t, true, on and 1 for true, and n, no,
// f, false, off and 0 for false, case-insensitively. ok is false for
// anything else, including an empty line.
func ParseBool(input string) (value bool, ok bool) {
	switch strings.ToLower(strings.TrimSpace(input)) {
	case "y", "yes", "t", "true", "on", "1":
		return true, true
	case "n", "no", "f", "false", "off", "0":
		return false, true
	default:
		return false, false
	}
}

// HTTPStatusError creates a formatted error for non-2xx HTTP responses.
func HTTPStatusError(status int, url string) error {
	return fmt.Errorf("status=%d url=%s", status, url)
}
