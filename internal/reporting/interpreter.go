package reporting

import (
	"strings"

	"github.com/groundsdev/grounds/internal/scoring"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// printer formats numbers in summaries (thousands separators included).
var printer = message.NewPrinter(language.English)

// InterpretScore returns a plain-language label for a 0-100 report score.
func InterpretScore(score int) string {
	switch {
	case score >= 90:
		return "Excellent (90-100)"
	case score >= 75:
		return "Good (75-89)"
	case score >= 60:
		return "Needs Work (60-74)"
	default:
		return "Poor (<60)"
	}
}

// InterpretQuality returns a label for a 0-1 writing quality score.
func InterpretQuality(q float64) string {
	switch {
	case q >= 0.75:
		return "Strong"
	case q >= 0.5:
		return "Moderate"
	case q >= 0.25:
		return "Weak"
	default:
		return "Very weak"
	}
}

// InterpretPassRate returns a human-readable explanation of a pass rate (0-1).
func InterpretPassRate(rate float64) string {
	pct := rate * 100
	switch {
	case pct >= 100:
		return printer.Sprintf("All reports passed (%.0f%%)", pct)
	case pct >= 80:
		return printer.Sprintf("Most reports passed (%.0f%%)", pct)
	case pct >= 50:
		return printer.Sprintf("About half the reports passed (%.0f%%)", pct)
	default:
		return printer.Sprintf("Few reports passed (%.0f%%)", pct)
	}
}

// Interpret explains a single report result line by line.
func Interpret(r *scoring.Result) []string {
	lines := []string{
		printer.Sprintf("Score: %d/100 - %s", r.Score, InterpretScore(r.Score)),
	}

	if len(r.MissingHeaders) > 0 {
		lines = append(lines, "Missing sections: "+strings.Join(r.MissingHeaders, ", "))
	}
	if len(r.EmptySections) > 0 {
		lines = append(lines, "Empty sections: "+strings.Join(r.EmptySections, ", "))
	}
	if len(r.DuplicateHeaders) > 0 {
		lines = append(lines, "Repeated sections: "+strings.Join(r.DuplicateHeaders, ", "))
	}

	if r.NextActionsOK {
		lines = append(lines, printer.Sprintf("Next actions: %d listed", r.NextActionsCount))
	} else {
		lines = append(lines, printer.Sprintf("Next actions: %d listed, too few", r.NextActionsCount))
	}
	if r.TruncationSuspected {
		lines = append(lines, "The text looks cut off; finish or regenerate the last section")
	}

	if q := r.QualityMetrics; q != (scoring.QualityMetrics{}) {
		lines = append(lines, printer.Sprintf(
			"Writing quality: %.2f (%s); clarity %.2f, specificity %.2f, actionability %.2f, completeness %.2f",
			q.OverallQuality, InterpretQuality(q.OverallQuality),
			q.ClarityScore, q.SpecificityScore, q.ActionabilityScore, q.CompletenessScore))
	}

	ci := r.ConfidenceInterval
	lines = append(lines, printer.Sprintf("Score band: %.1f-%.1f at %.0f%% confidence",
		ci.LowerBound, ci.UpperBound, ci.ConfidenceLevel*100))

	if r.MustRepair {
		lines = append(lines, "Verdict: needs repair ("+r.FinishReason.String()+")")
	} else {
		lines = append(lines, "Verdict: ready ("+r.FinishReason.String()+")")
	}
	return lines
}

// FormatSummaryReport produces a plain-language report for a scoring batch.
func FormatSummaryReport(b *Batch) string {
	var sb strings.Builder
	s := Summarize(b, DefaultConfidenceLevel)

	sb.WriteString("=== Interpretation ===\n\n")
	sb.WriteString(printer.Sprintf("Reports:       %d scored, %d need repair, %d unreadable\n",
		s.Total-s.Errors, s.MustRepair, s.Errors))
	if s.Total-s.Errors > 0 {
		sb.WriteString(printer.Sprintf("Mean Score:    %.1f - %s\n", s.MeanScore, InterpretScore(int(s.MeanScore+0.5))))
		sb.WriteString(printer.Sprintf("Pass Rate:     %s\n", InterpretPassRate(s.PassRate())))
		if s.MeanCI.NumBootstraps > 0 {
			sb.WriteString(printer.Sprintf("Mean CI:       %.1f-%.1f at %.0f%% (%d resamples)\n",
				s.MeanCI.Lower, s.MeanCI.Upper, s.MeanCI.ConfidenceLevel*100, s.MeanCI.NumBootstraps))
		}
	}

	if len(b.Reports) > 0 {
		sb.WriteString("\nPer-Report Interpretation:\n")
		for _, r := range b.Reports {
			switch {
			case r.Result == nil:
				sb.WriteString(printer.Sprintf("  ! %s: %s\n", r.Name, r.Error))
				continue
			case r.Result.MustRepair:
				sb.WriteString(printer.Sprintf("  ✗ %s: %s\n", r.Name, r.Result.Summary()))
			default:
				sb.WriteString(printer.Sprintf("  ✓ %s: %s\n", r.Name, r.Result.Summary()))
			}
			for _, line := range Interpret(r.Result)[1:] {
				sb.WriteString("    " + line + "\n")
			}
		}
	}

	return sb.String()
}
