package main

import (
	"encoding/json"
	"fmt"

	"github.com/groundsdev/grounds/internal/decision"
	"github.com/groundsdev/grounds/internal/reporting"
	"github.com/groundsdev/grounds/internal/scoring"
	"github.com/spf13/cobra"
)

type readinessOutput struct {
	decision.Analysis
	Template *scoring.Result `json:"template,omitempty"`
}

func newReadinessCommand() *cobra.Command {
	var format string
	var scoreTemplate bool

	cmd := &cobra.Command{
		Use:   "readiness <decision>",
		Short: "Score how ready a decision record is to be made",
		Long: `Score a decision record (JSON or YAML) for readiness on a 0-100 scale.

The record lists the options, assumptions, risks and evidence behind a
decision. Use --score-template to also render the record into the report
section template and score its structure.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadProjectConfig(cmd)
			if err != nil {
				return err
			}
			rec, err := decision.Load(args[0])
			if err != nil {
				return err
			}
			svc := newService(cfg)

			out := readinessOutput{Analysis: svc.Analyzer().Readiness(rec)}
			if scoreTemplate {
				out.Template = svc.EvaluateText(rec.ReportText())
			}

			w := cmd.OutOrStdout()
			switch format {
			case formatJSON:
				enc := json.NewEncoder(w)
				enc.SetIndent("", "  ")
				return enc.Encode(out)
			case formatText:
				fmt.Fprintf(w, "Readiness: %d/100 - %s\n", out.ReadinessScore, out.Note) //nolint:errcheck
				for _, g := range out.Gaps {
					fmt.Fprintf(w, "  - %s\n", g) //nolint:errcheck
				}
				if out.Template != nil {
					fmt.Fprintln(w) //nolint:errcheck
					for _, line := range reporting.Interpret(out.Template) {
						fmt.Fprintln(w, line) //nolint:errcheck
					}
				}
				return nil
			default:
				return fmt.Errorf("unknown format %q (want json or text)", format)
			}
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", formatJSON, "Output format: json, text")
	cmd.Flags().BoolVar(&scoreTemplate, "score-template", false, "Also score the record rendered as a report")
	return cmd
}
