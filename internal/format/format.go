// Package format decides which filenames the player treats as playable.
package format

import (
	"strings"
)

// supported is the fixed set of container extensions the platform
// audio path decodes natively. Matching is by extension only, never
// by content sniffing.
var supported = map[string]struct{}{
	".wav":  {},
	".au":   {},
	".aiff": {},
}

// IsSupported reports whether filename has a supported audio
// extension. The extension is everything from the last dot onward,
// compared case-insensitively. Names with no dot, or whose only dot
// is the leading character (dotfiles), are not supported.
func IsSupported(filename string) bool {
	idx := strings.LastIndex(filename, ".")
	if idx <= 0 {
		return false
	}
	_, ok := supported[strings.ToLower(filename[idx:])]
	return ok
}

// Extensions returns the supported extensions, for display purposes.
func Extensions() []string {
	return []string{".wav", ".au", ".aiff"}
}
