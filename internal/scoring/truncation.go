package scoring

import (
	"strings"
	"unicode"
)

// incompleteEndings are suffixes that suggest generation stopped mid-thought.
var incompleteEndings = []string{"...", "…", "```", "**", "__", "- ", "* ", "1.", "2.", "3."}

// minLinesForFragmentCheck is the document length at which a very short
// final line is treated as a cut-off fragment.
const minLinesForFragmentCheck = 10

// LooksTruncated reports whether cleaned text appears to have been cut off.
func LooksTruncated(cleaned string) bool {
	t := strings.TrimRightFunc(cleaned, unicode.IsSpace)
	if t == "" {
		return true
	}

	for _, suffix := range incompleteEndings {
		if strings.HasSuffix(t, suffix) {
			return true
		}
	}

	switch t[len(t)-1] {
	case '(', ':', ',':
		return true
	}

	lines := strings.Split(t, "\n")
	if len(lines) >= minLinesForFragmentCheck {
		last := strings.TrimSpace(lines[len(lines)-1])
		if len(last) <= 3 {
			return true
		}
	}

	return false
}
