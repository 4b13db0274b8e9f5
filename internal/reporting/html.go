package reporting

import (
	"bytes"
	"fmt"
	"html/template"
	"io"

	"github.com/groundsdev/grounds/internal/scoring"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
)

// DefaultTitle is used when HTML is given an empty title.
const DefaultTitle = "Grounds Report"

var markdown = goldmark.New(goldmark.WithExtensions(extension.GFM))

var pageTemplate = template.Must(template.New("report").Parse(`<!doctype html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>{{.Title}}</title>
<style>
body { font-family: system-ui, sans-serif; max-width: 52rem; margin: 2rem auto; padding: 0 1rem; color: #1f2328; }
.card { border: 1px solid #d0d7de; border-radius: 8px; padding: 1rem 1.25rem; margin-bottom: 2rem; }
.score { font-size: 2.5rem; font-weight: 700; }
.ok { color: #1a7f37; } .repair { color: #cf222e; }
table { border-collapse: collapse; } td { padding: 0.15rem 0.75rem 0.15rem 0; }
</style>
</head>
<body>
<h1>{{.Title}}</h1>
{{with .Result}}<section class="card">
<div class="score {{if .MustRepair}}repair{{else}}ok{{end}}">{{.Score}}/100</div>
<p>{{$.Verdict}} ({{.FinishReason}})</p>
<table>
<tr><td>Missing sections</td><td>{{range $i, $h := .MissingHeaders}}{{if $i}}, {{end}}{{$h}}{{else}}none{{end}}</td></tr>
<tr><td>Empty sections</td><td>{{range $i, $h := .EmptySections}}{{if $i}}, {{end}}{{$h}}{{else}}none{{end}}</td></tr>
<tr><td>Next actions</td><td>{{.NextActionsCount}}</td></tr>
<tr><td>Truncation suspected</td><td>{{.TruncationSuspected}}</td></tr>
<tr><td>Writing quality</td><td>{{printf "%.2f" .QualityMetrics.OverallQuality}}</td></tr>
<tr><td>Score band</td><td>{{printf "%.1f" .ConfidenceInterval.LowerBound}} - {{printf "%.1f" .ConfidenceInterval.UpperBound}}</td></tr>
</table>
{{with .Notes}}<ul>{{range .}}<li>{{.}}</li>{{end}}</ul>{{end}}
</section>
{{end}}<article>
{{.Body}}
</article>
</body>
</html>
`))

type page struct {
	Title   string
	Verdict string
	Result  *scoring.Result
	Body    template.HTML
}

// HTML renders report text as markdown under a score card for result. A nil
// result renders the body alone.
func HTML(w io.Writer, title, text string, result *scoring.Result) error {
	if title == "" {
		title = DefaultTitle
	}

	var body bytes.Buffer
	if err := markdown.Convert([]byte(text), &body); err != nil {
		return fmt.Errorf("rendering markdown: %w", err)
	}

	p := page{
		Title:  title,
		Result: result,
		// goldmark escapes raw HTML unless WithUnsafe is set.
		Body: template.HTML(body.String()), //nolint:gosec
	}
	if result != nil {
		p.Verdict = "Ready"
		if result.MustRepair {
			p.Verdict = "Needs repair"
		}
	}

	if err := pageTemplate.Execute(w, p); err != nil {
		return fmt.Errorf("writing HTML: %w", err)
	}
	return nil
}
