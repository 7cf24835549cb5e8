package app

import (
	"fmt"
	"os"
	"strings"
)

// sourceHint pairs a shadowed flag with the flag that shadows it.
type sourceHint struct {
	FlagName string
	Override string
}

// checkSourceHints returns hints for package-source flags that a
// higher-precedence flag makes irrelevant. A hint is generated when
// the user provided both.
func checkSourceHints(archivePath string, url string, branch string) []string {
	hasArchive := strings.TrimSpace(archivePath) != ""
	hasURL := strings.TrimSpace(url) != ""
	hasBranch := strings.TrimSpace(branch) != ""

	checks := []struct {
		hint     sourceHint
		provided bool
		shadowed bool
	}{
		{
			hint:     sourceHint{"--url", "--archive"},
			provided: hasURL,
			shadowed: hasArchive,
		},
		{
			hint:     sourceHint{"--branch", "--archive"},
			provided: hasBranch,
			shadowed: hasArchive,
		},
		{
			hint:     sourceHint{"--branch", "--url"},
			provided: hasBranch,
			shadowed: !hasArchive && hasURL,
		},
	}

	var hints []string
	for _, c := range checks {
		if c.provided && c.shadowed {
			hints = append(hints, fmt.Sprintf(
				"hint: %s is ignored when %s is set",
				c.hint.FlagName, c.hint.Override,
			))
		}
	}
	return hints
}

// emitHints writes hint messages to stderr.
func emitHints(hints []string) {
	for _, h := range hints {
		fmt.Fprintln(os.Stderr, h)
	}
}
