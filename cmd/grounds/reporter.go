package main

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/groundsdev/grounds/internal/reporting"
	"github.com/mattn/go-runewidth"
)

const (
	colScore  = 7
	colFinish = 22
)

// formatDuration formats a duration in a consistent, human-readable way.
func formatDuration(d time.Duration) string {
	if d < time.Second {
		return fmt.Sprintf("%dms", d.Milliseconds())
	}
	return d.Round(time.Millisecond).String()
}

// writeScoreTable prints one aligned row per report.
func writeScoreTable(w io.Writer, b *reporting.Batch) {
	nameWidth := len("REPORT")
	for _, r := range b.Reports {
		nameWidth = max(nameWidth, runewidth.StringWidth(truncateName(r.Name, 40)))
	}

	fmt.Fprintf(w, "%s  %s  %s  %s\n", //nolint:errcheck
		padRight("REPORT", nameWidth), padRight("SCORE", colScore), padRight("FINISH", colFinish), "STATUS")
	for _, r := range b.Reports {
		name := truncateName(r.Name, 40)
		if r.Result == nil {
			fmt.Fprintf(w, "%s  %s  %s  %s\n", //nolint:errcheck
				padRight(name, nameWidth), padRight("-", colScore), padRight("-", colFinish), "⚠️ unreadable")
			continue
		}
		status := "✅"
		if r.Result.MustRepair {
			status = "❌ repair"
		}
		fmt.Fprintf(w, "%s  %s  %s  %s\n", //nolint:errcheck
			padRight(name, nameWidth),
			padRight(fmt.Sprintf("%d/100", r.Result.Score), colScore),
			padRight(r.Result.FinishReason.String(), colFinish),
			status)
	}
	fmt.Fprintf(w, "\n%d report(s) in %s\n\n", len(b.Reports), formatDuration(b.Duration)) //nolint:errcheck
}

// FormatMarkdownSummary formats a scored batch as a markdown comment for pull requests.
func FormatMarkdownSummary(b *reporting.Batch, s reporting.Summary) string {
	var sb strings.Builder

	sb.WriteString("## Grounds Report Scores\n\n")

	statusIcon := "✅ Passed"
	if s.MustRepair > 0 || s.Errors > 0 {
		statusIcon = "❌ Needs repair"
	}
	fmt.Fprintf(&sb, "**Status:** %s | **Mean score:** %.1f | **Duration:** %s\n\n",
		statusIcon, s.MeanScore, formatDuration(b.Duration))
	fmt.Fprintf(&sb, "- **Reports:** %d total, %d ready, %d need repair, %d unreadable\n",
		s.Total, s.Passed, s.MustRepair, s.Errors)
	fmt.Fprintf(&sb, "- **Pass rate:** %.1f%%\n", s.PassRate()*100)
	if s.MeanCI.NumBootstraps > 0 {
		fmt.Fprintf(&sb, "- **Mean CI:** %.1f - %.1f (%.0f%%)\n", s.MeanCI.Lower, s.MeanCI.Upper, s.MeanCI.ConfidenceLevel*100)
	}
	sb.WriteString("\n")

	sb.WriteString("### Reports\n\n")
	sb.WriteString("| Report | Score | Finish | Status |\n")
	sb.WriteString("|--------|-------|--------|--------|\n")
	for _, r := range b.Reports {
		if r.Result == nil {
			fmt.Fprintf(&sb, "| %s | - | - | ⚠️ |\n", r.Name)
			continue
		}
		icon := "✅"
		if r.Result.MustRepair {
			icon = "❌"
		}
		fmt.Fprintf(&sb, "| %s | %d | %s | %s |\n", r.Name, r.Result.Score, r.Result.FinishReason, icon)
	}
	sb.WriteString("\n")

	if s.MustRepair > 0 || s.Errors > 0 {
		sb.WriteString("### Repair Details\n\n")
		for _, r := range b.Reports {
			switch {
			case r.Result == nil:
				fmt.Fprintf(&sb, "#### %s\n\n- %s\n\n", r.Name, r.Error)
			case r.Result.MustRepair:
				fmt.Fprintf(&sb, "#### %s\n\n", r.Name)
				for _, h := range r.Result.MissingHeaders {
					fmt.Fprintf(&sb, "- missing **%s**\n", h)
				}
				for _, h := range r.Result.EmptySections {
					fmt.Fprintf(&sb, "- empty **%s**\n", h)
				}
				for _, n := range r.Result.Notes {
					fmt.Fprintf(&sb, "- %s\n", n)
				}
				sb.WriteString("\n")
			}
		}
	}

	sb.WriteString("---\n\n")
	fmt.Fprintf(&sb, "**Batch:** %s | **Run:** %s\n", b.Name, b.RunID)

	return sb.String()
}

// truncateName shortens a name to maxLen runes, replacing the last rune with "…" if needed.
func truncateName(name string, maxLen int) string {
	runes := []rune(name)
	if len(runes) <= maxLen {
		return name
	}
	return string(runes[:maxLen-1]) + "…"
}

// padRight pads s with spaces so its terminal display width reaches width.
func padRight(s string, width int) string {
	sw := runewidth.StringWidth(s)
	if sw >= width {
		return s
	}
	return s + strings.Repeat(" ", width-sw)
}
