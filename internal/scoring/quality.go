package scoring

import (
	"math"
	"regexp"
	"strings"
)

// QualityMetrics holds the four lexical sub-scores and their weighted sum.
// Every value is in [0,1].
type QualityMetrics struct {
	ClarityScore       float64 `json:"clarity_score"`
	SpecificityScore   float64 `json:"specificity_score"`
	ActionabilityScore float64 `json:"actionability_score"`
	CompletenessScore  float64 `json:"completeness_score"`
	OverallQuality     float64 `json:"overall_quality"`
}

const (
	clarityWeight       = 0.25
	specificityWeight   = 0.30
	actionabilityWeight = 0.25
	completenessWeight  = 0.20
)

var vagueWords = []string{
	"some", "many", "few", "various", "several", "often", "sometimes",
	"might", "could", "possibly", "perhaps", "generally", "usually",
	"significant", "considerable", "substantial",
}

var concretePatterns = []string{
	`\d+%`,
	`\$[\d,]+`,
	`\d+ (days?|weeks?|months?|years?)`,
	`\d{4}-\d{2}-\d{2}`,
	`Q[1-4] \d{4}`,
	`\d+:\d+`,
}

var actionVerbs = []string{
	"implement", "execute", "deploy", "launch", "create", "build",
	"develop", "establish", "initiate", "complete", "deliver", "achieve",
	"schedule", "assign", "review", "analyze", "evaluate", "measure",
	"track", "monitor", "verify", "validate", "test", "approve",
}

var ownerPhrases = []string{"owner:", "assigned to", "responsible:", "lead:", "by:"}

var timelinePhrases = []string{"by", "before", "within", "deadline", "due", "target date"}

var bulletMarkers = []string{"- ", "* ", "• "}

type sectionWeight struct {
	name   string
	weight float64
}

var completenessSections = []sectionWeight{
	{"BEST OPTION", 0.15},
	{"RATIONALE", 0.15},
	{"RISKS", 0.15},
	{"ASSUMPTIONS", 0.15},
	{"HALF-LIFE", 0.10},
	{"BLIND SPOTS", 0.10},
	{"NEXT ACTIONS", 0.20},
}

// concreteRes holds the compiled concrete patterns. A pattern that fails to
// compile is left out rather than failing the metric.
var concreteRes = compilePatterns(concretePatterns)

func compilePatterns(patterns []string) []*regexp.Regexp {
	out := make([]*regexp.Regexp, 0, len(patterns))
	for _, p := range patterns {
		re, err := regexp.Compile(p)
		if err != nil {
			continue
		}
		out = append(out, re)
	}
	return out
}

// CalculateQualityMetrics scores cleaned report text on clarity,
// specificity, actionability and completeness.
func CalculateQualityMetrics(cleaned string) QualityMetrics {
	m := QualityMetrics{
		ClarityScore:       clarityScore(cleaned),
		SpecificityScore:   specificityScore(cleaned),
		ActionabilityScore: actionabilityScore(cleaned),
		CompletenessScore:  completenessScore(cleaned),
	}
	m.OverallQuality = m.ClarityScore*clarityWeight +
		m.SpecificityScore*specificityWeight +
		m.ActionabilityScore*actionabilityWeight +
		m.CompletenessScore*completenessWeight
	return m
}

func clarityScore(text string) float64 {
	words := float64(len(strings.Fields(text)))
	if words == 0 {
		return 0
	}

	sentences := strings.Count(text, ".") + strings.Count(text, "!") + strings.Count(text, "?")
	avg := words / math.Max(float64(sentences), 1)

	var length float64
	switch {
	case avg < 8:
		length = 0.6 + (avg/8)*0.2
	case avg <= 20:
		length = 0.8 + ((20-avg)/12)*0.2
	default:
		length = 0.8 - math.Min((avg-20)/30, 0.4)
	}

	if containsAny(text, bulletMarkers) {
		length += 0.1
	}
	return math.Min(length, 1)
}

func specificityScore(text string) float64 {
	lower := strings.ToLower(text)
	words := float64(len(strings.Fields(lower)))
	if words == 0 {
		return 0
	}

	vague := countAll(lower, vagueWords)
	penalty := math.Min(float64(vague)/words*10, 0.3)

	concrete := 0
	for _, re := range concreteRes {
		concrete += len(re.FindAllStringIndex(text, -1))
	}
	bonus := math.Min(float64(concrete)*0.05, 0.3)

	return clamp01(0.7 - penalty + bonus)
}

func actionabilityScore(text string) float64 {
	lower := strings.ToLower(text)
	if len(strings.Fields(lower)) == 0 {
		return 0
	}

	score := 0.2 + math.Min(float64(countAll(lower, actionVerbs))*0.1, 0.4)
	if containsAny(lower, ownerPhrases) {
		score += 0.2
	}
	if containsAny(lower, timelinePhrases) {
		score += 0.2
	}
	return math.Min(score, 1)
}

// completenessScore is a presence test on substrings, looser than the
// header-line match used for structure.
func completenessScore(text string) float64 {
	upper := strings.ToUpper(text)
	score := 0.0
	for _, s := range completenessSections {
		if strings.Contains(upper, s.name) {
			score += s.weight
		}
	}
	return score
}

// ConfidenceFor derives a 95% band around score whose half-width shrinks
// as overall quality rises, up to 15 points.
func ConfidenceFor(score float64, m QualityMetrics) ConfidenceInterval {
	margin := (1 - m.OverallQuality) * 15
	return ConfidenceInterval{
		LowerBound:      math.Max(score-margin, 0),
		UpperBound:      math.Min(score+margin, 100),
		ConfidenceLevel: 0.95,
	}
}

// countAll sums non-overlapping substring occurrences of every needle.
func countAll(text string, needles []string) int {
	n := 0
	for _, w := range needles {
		n += strings.Count(text, w)
	}
	return n
}

func containsAny(text string, patterns []string) bool {
	for _, p := range patterns {
		if strings.Contains(text, p) {
			return true
		}
	}
	return false
}

func clamp01(v float64) float64 {
	return math.Max(0, math.Min(1, v))
}
