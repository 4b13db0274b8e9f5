package scoring

import (
	"regexp"
	"strings"
	"unicode"
)

// ws and nonWS stand in for \s and \S, which RE2 limits to ASCII. They
// accept the same runes as unicode.IsSpace, so a header indented with
// U+00A0 still counts.
const (
	ws    = `[\s\v\p{Z}\x{85}]`
	nonWS = `[^\s\v\p{Z}\x{85}]`
)

var (
	mdHeadingRe    = regexp.MustCompile(`(?m)^` + ws + `{0,3}#{1,6}` + ws + `+`)
	separatorRe    = regexp.MustCompile(`(?m)^` + ws + `*[-=_]{3,}` + ws + `*$`)
	bareColonRe    = regexp.MustCompile(`(?m)^` + ws + `*([A-Z][A-Z0-9 \-]{2,})` + ws + `*:` + ws + `*$`)
	bulletReplacer = strings.NewReplacer("•", "- ", "–", "- ", "—", "- ")
)

// CleanText strips markdown decoration from generated report text so the
// structure can be inspected: code fences, heading markers and separator
// lines go away, trailing whitespace is trimmed from every line and the
// whole text is trimmed. Fence contents are kept.
func CleanText(s string) string {
	out := strings.ReplaceAll(s, "\r\n", "\n")
	out = strings.ReplaceAll(out, "```", "")
	out = mdHeadingRe.ReplaceAllString(out, "")
	out = separatorRe.ReplaceAllString(out, "")

	lines := strings.Split(out, "\n")
	for i, l := range lines {
		lines[i] = strings.TrimRightFunc(l, unicode.IsSpace)
	}
	return strings.TrimSpace(strings.Join(lines, "\n"))
}

// NormalizeForHeaders prepares cleaned text for header matching only:
// bullet glyphs become "- ", bare "NAME :" header lines collapse to
// "NAME:", and everything is upper-cased. The result is never shown.
func NormalizeForHeaders(cleaned string) string {
	out := bulletReplacer.Replace(cleaned)
	out = bareColonRe.ReplaceAllString(out, "${1}:")
	return strings.ToUpper(out)
}
