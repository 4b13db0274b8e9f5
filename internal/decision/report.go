package decision

import (
	"fmt"
	"strings"
)

// placeholder is written under a header with nothing to say, so the
// section scores as empty rather than swallowing the next header.
const placeholder = "n/a"

// ReportText renders the record into the decision-report section template
// so it can be run through the structural scorer.
func (r *Record) ReportText() string {
	var b strings.Builder

	section := func(header string, body func()) {
		if b.Len() > 0 {
			b.WriteString("\n")
		}
		fmt.Fprintf(&b, "%s:\n", header)
		start := b.Len()
		body()
		if b.Len() == start {
			b.WriteString(placeholder + "\n")
		}
	}
	line := func(s string) {
		if s = strings.TrimSpace(s); s != "" {
			b.WriteString(s + "\n")
		}
	}
	bullets := func(prefix string, items []string) {
		for _, it := range items {
			if it = strings.TrimSpace(it); it != "" {
				fmt.Fprintf(&b, "- %s%s\n", prefix, it)
			}
		}
	}

	options := nonBlank(r.Options)

	section("BEST OPTION", func() {
		if len(options) > 0 {
			line(options[0])
		} else {
			line(r.Intent)
		}
	})
	section("RATIONALE", func() {
		line(r.Context)
		line(r.Intent)
	})
	section("TOP RISKS", func() { bullets("", r.Risks) })
	section("ASSUMPTIONS TO VALIDATE", func() { bullets("", r.Assumptions) })
	section("HALF-LIFE", func() {
		if c := strings.TrimSpace(r.Confidence); c != "" {
			line("Confidence " + c + ", recorded " + orUnknown(r.CreatedAtISO))
		}
	})
	section("BLIND SPOTS", func() {
		if len(options) > 1 {
			bullets("Alternative not taken: ", options[1:])
		}
		if len(nonBlank(r.Evidence)) == 0 {
			line("- No evidence cited")
		}
	})
	section("NEXT ACTIONS", func() {
		bullets("Validate assumption: ", r.Assumptions)
		bullets("Mitigate risk: ", r.Risks)
		for _, ev := range nonBlank(r.Evidence) {
			fmt.Fprintf(&b, "- Confirm evidence is current: %s\n", ev)
		}
	})

	return b.String()
}

func nonBlank(items []string) []string {
	out := make([]string, 0, len(items))
	for _, s := range items {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}

func orUnknown(s string) string {
	if s = strings.TrimSpace(s); s != "" {
		return s
	}
	return "at an unknown time"
}
