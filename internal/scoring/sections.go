package scoring

import (
	"regexp"
	"strings"
)

var (
	bulletItemRe   = regexp.MustCompile(`(?m)^` + ws + `*[-*]` + ws + `+` + nonWS + `+`)
	numberedItemRe = regexp.MustCompile(`(?m)^` + ws + `*\d{1,2}[\.\)]` + ws + `+` + nonWS + `+`)
	wordTokenRe    = regexp.MustCompile(`[A-Z0-9]{2,}`)

	nextActionsHeaderRe = headerLineRe(NextActionsHeader)

	// nextActionsStopRe ends the NEXT ACTIONS span. It is a fixed set that
	// does not follow Config.RequiredHeaders.
	nextActionsStopRe = headerLineRe(
		"BEST OPTION",
		"RATIONALE",
		"TOP RISKS",
		"ASSUMPTIONS TO VALIDATE",
		"ASSUMPTIONS",
		"HALF-LIFE",
		"BLIND SPOTS",
	)
)

// NextActionsHeader is the section whose list items are counted.
const NextActionsHeader = "NEXT ACTIONS"

// headerLineRe matches a whole line holding one of names, optionally
// followed by a colon.
func headerLineRe(names ...string) *regexp.Regexp {
	quoted := make([]string, len(names))
	for i, n := range names {
		quoted[i] = regexp.QuoteMeta(strings.ToUpper(n))
	}
	return regexp.MustCompile(`(?m)^` + ws + `*(` + strings.Join(quoted, "|") + `)` + ws + `*:?` + ws + `*$`)
}

// HeaderFindings lists the structural problems found per required header.
// Each list keeps the order of the required headers.
type HeaderFindings struct {
	Missing    []string
	Duplicates []string
	Empty      []string
}

// EvaluateHeaders checks every required header against text produced by
// NormalizeForHeaders. A header matched more than once is a duplicate and
// its first occurrence is used to extract the section body, which runs to
// the next line holding any required header.
func EvaluateHeaders(normalizedUpper string, required []string) HeaderFindings {
	var f HeaderFindings

	headers := uniqueHeaders(required)
	if len(headers) == 0 {
		return f
	}
	anyHeaderRe := headerLineRe(headers...)

	for _, h := range headers {
		matches := headerLineRe(h).FindAllStringIndex(normalizedUpper, -1)
		if len(matches) == 0 {
			f.Missing = append(f.Missing, h)
			continue
		}
		if len(matches) > 1 {
			f.Duplicates = append(f.Duplicates, h)
		}

		after := normalizedUpper[matches[0][1]:]
		end := len(after)
		if loc := anyHeaderRe.FindStringIndex(after); loc != nil {
			end = loc[0]
		}

		if sectionIsEmpty(strings.TrimSpace(after[:end])) {
			f.Empty = append(f.Empty, h)
		}
	}

	return f
}

func sectionIsEmpty(section string) bool {
	if section == "" || section == ":" {
		return true
	}
	hasListItem := bulletItemRe.MatchString(section) || numberedItemRe.MatchString(section)
	return !hasListItem && !wordTokenRe.MatchString(section)
}

// uniqueHeaders drops blank and repeated names, keeping first occurrence.
func uniqueHeaders(required []string) []string {
	seen := make(map[string]bool, len(required))
	out := make([]string, 0, len(required))
	for _, h := range required {
		h = strings.TrimSpace(h)
		key := strings.ToUpper(h)
		if h == "" || seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, h)
	}
	return out
}

// CountNextActions counts list items under the NEXT ACTIONS header.
// Bulleted and numbered items are counted separately and the larger count
// wins, so a list that mixes both styles is not double counted.
func CountNextActions(normalizedUpper string) int {
	loc := nextActionsHeaderRe.FindStringIndex(normalizedUpper)
	if loc == nil {
		return 0
	}

	after := normalizedUpper[loc[1]:]
	end := len(after)
	if stop := nextActionsStopRe.FindStringIndex(after); stop != nil {
		end = stop[0]
	}

	section := strings.TrimSpace(after[:end])
	if section == "" {
		return 0
	}

	bullets := len(bulletItemRe.FindAllStringIndex(section, -1))
	numbered := len(numberedItemRe.FindAllStringIndex(section, -1))
	return max(bullets, numbered)
}
