package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/groundsdev/grounds/internal/engine"
	"github.com/groundsdev/grounds/internal/publish"
	"github.com/groundsdev/grounds/internal/reporting"
	"github.com/groundsdev/grounds/internal/source"
	"github.com/groundsdev/grounds/internal/spinner"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
	"golang.org/x/term"
)

const (
	formatText     = "text"
	formatJSON     = "json"
	formatJUnit    = "junit"
	formatMarkdown = "markdown"
)

type scoreOptions struct {
	format  string
	output  string
	name    string
	workers int
	strict  bool
	publish bool
}

func newScoreCommand() *cobra.Command {
	var opts scoreOptions

	cmd := &cobra.Command{
		Use:   "score [files...]",
		Short: "Score decision reports against the section template",
		Long: `Score one or more decision reports against the required section template.

Each report gets a 0-100 structural score, the missing and empty sections,
and a finish hint (OK, INCOMPLETE_STRUCTURE, LIKELY_TRUNCATED). Files ending
in .gz or .zst are decompressed; "-" or no arguments reads stdin.

Output formats:
  text      Table plus a plain-language interpretation (default on a terminal)
  json      A single result, or a batch document for several files (default when piped)
  junit     JUnit XML, one test case per report
  markdown  A summary suitable for a pull request comment

With --strict the command exits 1 when any report needs repair or
could not be read.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return scoreCommandE(cmd, args, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.format, "format", "f", "", "Output format: text, json, junit, markdown")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "Write output to a file instead of stdout")
	cmd.Flags().StringVar(&opts.name, "name", "", "Batch name used in JUnit and published output")
	cmd.Flags().IntVarP(&opts.workers, "workers", "w", 0, "Reports scored in parallel (default from .grounds.yaml)")
	cmd.Flags().BoolVar(&opts.strict, "strict", false, "Exit 1 if any report needs repair")
	cmd.Flags().BoolVar(&opts.publish, "publish", false, "Upload the results to the blob container in .grounds.yaml")

	return cmd
}

func scoreCommandE(cmd *cobra.Command, args []string, opts scoreOptions) error {
	cfg, err := loadProjectConfig(cmd)
	if err != nil {
		return err
	}
	if opts.workers == 0 {
		opts.workers = cfg.Batch.Workers
	}
	if opts.workers < 1 {
		return fmt.Errorf("--workers must be at least 1, got %d", opts.workers)
	}
	if len(args) == 0 {
		args = []string{source.Stdin}
	}

	format := opts.format
	if format == "" {
		format = formatJSON
		if opts.output == "" {
			format = defaultFormat(cmd.OutOrStdout())
		}
	}
	switch format {
	case formatText, formatJSON, formatJUnit, formatMarkdown:
	default:
		return fmt.Errorf("unknown format %q (want text, json, junit or markdown)", format)
	}

	step, stop := func() {}, func() {}
	if errOut := cmd.ErrOrStderr(); len(args) > 1 && isTerminal(errOut) {
		sp := spinner.Start(errOut, "Scoring reports", len(args))
		step, stop = sp.Step, sp.Stop
	}

	batch, err := scoreFiles(cmd.Context(), newService(cfg), args, opts.workers, step)
	stop()
	if err != nil {
		return err
	}
	batch.Name = opts.name
	if batch.Name == "" {
		batch.Name = "grounds"
	}
	summary := reporting.Summarize(batch, cfg.MonteCarlo.ConfidenceLevel)

	if err := emitBatch(cmd.OutOrStdout(), opts.output, format, batch, summary); err != nil {
		return err
	}

	if opts.publish {
		if err := publishBatch(cmd.Context(), cmd.ErrOrStderr(), cfg.Publish, batch, summary); err != nil {
			return err
		}
	}

	if opts.strict && (summary.MustRepair > 0 || summary.Errors > 0) {
		return &ReportFailureError{
			Message: fmt.Sprintf("%d of %d report(s) need repair, %d could not be read",
				summary.MustRepair, summary.Total, summary.Errors),
		}
	}
	return nil
}

// scoreFiles reads and scores paths with at most workers in flight. A file
// that cannot be read is recorded in the batch rather than failing it.
// step is called once per finished file.
func scoreFiles(ctx context.Context, svc *engine.Service, paths []string, workers int, step func()) (*reporting.Batch, error) {
	batch := &reporting.Batch{
		RunID:     uuid.NewString(),
		Timestamp: time.Now().UTC(),
		Reports:   make([]reporting.ScoredReport, len(paths)),
	}
	start := time.Now()

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i, path := range paths {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			defer step()
			begin := time.Now()
			data, name, err := source.Read(path)
			if err != nil {
				slog.Debug("report unreadable", "path", path, "error", err)
				batch.Reports[i] = reporting.ScoredReport{Name: path, Error: err.Error()}
				return nil
			}
			batch.Reports[i] = reporting.ScoredReport{
				Name:     name,
				Result:   svc.EvaluateText(string(data)),
				Duration: time.Since(begin),
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	batch.Duration = time.Since(start)
	return batch, nil
}

// defaultFormat is text for terminals and JSON otherwise.
func defaultFormat(w io.Writer) string {
	if isTerminal(w) {
		return formatText
	}
	return formatJSON
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

// batchDocument is the JSON shape of a scored batch.
type batchDocument struct {
	*reporting.Batch
	DurationMs int64             `json:"duration_ms"`
	Summary    reporting.Summary `json:"summary"`
}

// emitBatch writes the batch to path, or to w when path is empty.
func emitBatch(w io.Writer, path, format string, b *reporting.Batch, s reporting.Summary) error {
	if path == "" {
		return writeBatch(w, format, b, s)
	}
	if format == formatJUnit {
		return reporting.WriteJUnitXML(b, path)
	}
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	if err := writeBatch(file, format, b, s); err != nil {
		file.Close() //nolint:errcheck
		return err
	}
	return file.Close()
}

func writeBatch(w io.Writer, format string, b *reporting.Batch, s reporting.Summary) error {
	switch format {
	case formatJSON:
		var doc any = batchDocument{Batch: b, DurationMs: b.Duration.Milliseconds(), Summary: s}
		if len(b.Reports) == 1 && b.Reports[0].Result != nil {
			doc = b.Reports[0].Result
		}
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(doc)
	case formatJUnit:
		data, err := reporting.MarshalJUnit(b)
		if err != nil {
			return err
		}
		_, err = w.Write(data)
		return err
	case formatMarkdown:
		_, err := io.WriteString(w, FormatMarkdownSummary(b, s))
		return err
	default:
		writeScoreTable(w, b)
		_, err := io.WriteString(w, reporting.FormatSummaryReport(b))
		return err
	}
}

func publishBatch(ctx context.Context, w io.Writer, cfg publish.Config, b *reporting.Batch, s reporting.Summary) error {
	p, err := publish.New(cfg, nil)
	if err != nil {
		return err
	}
	name, err := p.Publish(ctx, "report", batchDocument{Batch: b, DurationMs: b.Duration.Milliseconds(), Summary: s})
	if err != nil {
		return err
	}
	fmt.Fprintf(w, "Published %s\n", name) //nolint:errcheck
	return nil
}
