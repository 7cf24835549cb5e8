package policies

import "strings"

// PluginLocationWins reports whether challenger should displace
// incumbent as the indexed location of a plugin filename. Both paths
// are slash-relative to the plugins root. An enabled location beats a
// disabled one; within the same class the lexicographically smaller
// path wins.
func PluginLocationWins(incumbent string, challenger string) bool {
	incumbentDisabled := DisabledLocation(incumbent)
	challengerDisabled := DisabledLocation(challenger)
	if incumbentDisabled != challengerDisabled {
		return incumbentDisabled
	}
	return challenger < incumbent
}

// DisabledLocation reports whether a plugins-root-relative path sits
// inside the disabled directory.
func DisabledLocation(rel string) bool {
	first, _, _ := strings.Cut(rel, "/")
	return first == DisabledDirName
}
