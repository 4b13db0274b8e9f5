// Package wizard runs the interactive form behind grounds init.
package wizard

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/groundsdev/grounds/internal/projectconfig"
	"golang.org/x/term"
)

// Answers holds the raw form fields. Numbers stay strings until Apply so
// the form can validate them as typed.
type Answers struct {
	RequiredHeaders string
	MinNextActions  string
	QualityMetrics  bool
	Iterations      string
	Workers         string
	AccountURL      string
	Container       string
}

// DefaultAnswers pre-fills the form from cfg.
func DefaultAnswers(cfg *projectconfig.ProjectConfig) Answers {
	a := Answers{
		RequiredHeaders: strings.Join(cfg.Scoring.RequiredHeaders, ", "),
		QualityMetrics:  cfg.Scoring.QualityMetrics == nil || *cfg.Scoring.QualityMetrics,
		Iterations:      strconv.Itoa(cfg.MonteCarlo.Iterations),
		Workers:         strconv.Itoa(cfg.Batch.Workers),
		AccountURL:      cfg.Publish.AccountURL,
		Container:       cfg.Publish.Container,
	}
	if cfg.Scoring.MinNextActions != nil {
		a.MinNextActions = strconv.Itoa(*cfg.Scoring.MinNextActions)
	}
	return a
}

// Run shows the init form on in/out, starting from defaults, and returns the
// resulting config.
func Run(in io.Reader, out io.Writer, defaults *projectconfig.ProjectConfig) (*projectconfig.ProjectConfig, error) {
	a := DefaultAnswers(defaults)

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Required report sections").
				Description("Comma-separated headers every decision report must contain").
				Value(&a.RequiredHeaders).
				Validate(func(s string) error {
					if len(splitAndTrim(s)) == 0 {
						return fmt.Errorf("at least one section is required")
					}
					return nil
				}),
			huh.NewInput().
				Title("Minimum next actions").
				Value(&a.MinNextActions).
				Validate(intAtLeast(0)),
			huh.NewConfirm().
				Title("Compute writing quality metrics?").
				Value(&a.QualityMetrics),
		),
		huh.NewGroup(
			huh.NewInput().
				Title("Monte Carlo iterations").
				Value(&a.Iterations).
				Validate(intAtLeast(1)),
			huh.NewInput().
				Title("Parallel workers for batch scoring").
				Value(&a.Workers).
				Validate(intAtLeast(1)),
		),
		huh.NewGroup(
			huh.NewInput().
				Title("Blob storage account URL").
				Description("Leave empty to disable --publish").
				Placeholder("https://<account>.blob.core.windows.net").
				Value(&a.AccountURL),
			huh.NewInput().
				Title("Blob container").
				Value(&a.Container),
		),
	).
		WithInput(in).
		WithOutput(out)

	// Use accessible mode for non-TTY input (e.g., tests, piped input).
	if f, ok := in.(*os.File); !ok || !term.IsTerminal(int(f.Fd())) {
		form = form.WithAccessible(true)
	}

	if err := form.Run(); err != nil {
		return nil, fmt.Errorf("wizard failed: %w", err)
	}
	return a.Apply(defaults)
}

// Apply returns a copy of base with the answers applied.
func (a Answers) Apply(base *projectconfig.ProjectConfig) (*projectconfig.ProjectConfig, error) {
	cfg := *base
	cfg.Path = ""

	headers := splitAndTrim(a.RequiredHeaders)
	if len(headers) == 0 {
		return nil, fmt.Errorf("at least one section is required")
	}
	cfg.Scoring.RequiredHeaders = upperAll(headers)

	minActions, err := parseInt("minimum next actions", a.MinNextActions, 0)
	if err != nil {
		return nil, err
	}
	quality := a.QualityMetrics
	cfg.Scoring.MinNextActions = &minActions
	cfg.Scoring.QualityMetrics = &quality

	if cfg.MonteCarlo.Iterations, err = parseInt("iterations", a.Iterations, 1); err != nil {
		return nil, err
	}
	if cfg.Batch.Workers, err = parseInt("workers", a.Workers, 1); err != nil {
		return nil, err
	}

	cfg.Publish.AccountURL = strings.TrimSpace(a.AccountURL)
	cfg.Publish.Container = strings.TrimSpace(a.Container)
	if (cfg.Publish.AccountURL == "") != (cfg.Publish.Container == "") {
		return nil, fmt.Errorf("publishing needs both an account URL and a container")
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Render returns the .grounds.yaml contents for cfg.
func Render(cfg *projectconfig.ProjectConfig) ([]byte, error) {
	body, err := cfg.Marshal()
	if err != nil {
		return nil, err
	}
	header := "# grounds project configuration. Command flags override these values.\n"
	return append([]byte(header), body...), nil
}

func intAtLeast(lo int) func(string) error {
	return func(s string) error {
		_, err := parseInt("value", s, lo)
		return err
	}
}

func parseInt(field, s string, lo int) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0, fmt.Errorf("%s must be a whole number", field)
	}
	if n < lo {
		return 0, fmt.Errorf("%s must be at least %d", field, lo)
	}
	return n, nil
}

func upperAll(ss []string) []string {
	out := make([]string, len(ss))
	for i, s := range ss {
		out[i] = strings.ToUpper(s)
	}
	return out
}

func splitAndTrim(s string) []string {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	var result []string
	for _, p := range parts {
		trimmed := strings.TrimSpace(p)
		if trimmed != "" {
			result = append(result, trimmed)
		}
	}
	return result
}
