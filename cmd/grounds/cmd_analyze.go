package main

import (
	"encoding/json"
	"fmt"
	"io"
	"math"
	"strings"

	"github.com/groundsdev/grounds/internal/decay"
	"github.com/groundsdev/grounds/internal/engine"
	"github.com/groundsdev/grounds/internal/sensitivity"
	"github.com/groundsdev/grounds/internal/source"
	"github.com/groundsdev/grounds/internal/statistics"
	"github.com/spf13/cobra"
)

// analysis describes one request-file command.
type analysis[T any] struct {
	use   string
	short string
	long  string
	run   func(svc *engine.Service, data []byte) (T, error)
	text  func(w io.Writer, result T)
}

func newAnalysisCommand[T any](a analysis[T]) *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   a.use + " [request]",
		Short: a.short,
		Long:  a.long + "\n\nThe request is JSON or YAML; .gz and .zst files are decompressed and \"-\" or\nno argument reads stdin.",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := source.Stdin
			if len(args) == 1 {
				path = args[0]
			}
			if format != formatJSON && format != formatText {
				return fmt.Errorf("unknown format %q (want json or text)", format)
			}

			cfg, err := loadProjectConfig(cmd)
			if err != nil {
				return err
			}
			data, _, err := source.Read(path)
			if err != nil {
				return err
			}
			result, err := a.run(newService(cfg), data)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if format == formatText {
				a.text(out, result)
				return nil
			}
			enc := json.NewEncoder(out)
			enc.SetIndent("", "  ")
			return enc.Encode(result)
		},
	}
	cmd.Flags().StringVarP(&format, "format", "f", formatJSON, "Output format: json, text")
	return cmd
}

func newSimulateCommand() *cobra.Command {
	return newAnalysisCommand(analysis[*statistics.MonteCarloResult]{
		use:   "simulate",
		short: "Run a Monte Carlo risk simulation",
		long: `Run a Monte Carlo simulation of a base score under a set of risks.

Each trial applies every risk with its probability and deducts an impact
between its low and high bounds. Iterations, seed and confidence level
default to the monte_carlo section of .grounds.yaml.`,
		run: (*engine.Service).SimulateRisk,
		text: func(w io.Writer, r *statistics.MonteCarloResult) {
			fmt.Fprintf(w, "Mean score:      %.2f (σ=%.2f)\n", r.MeanScore, r.StdDev)                   //nolint:errcheck
			fmt.Fprintf(w, "Range:           %.2f - %.2f\n", r.MinScore, r.MaxScore)                   //nolint:errcheck
			fmt.Fprintf(w, "P5/P50/P95:      %.2f / %.2f / %.2f\n", r.Percentile5, r.Percentile50, r.Percentile95) //nolint:errcheck
			fmt.Fprintf(w, "%.0f%% interval:   %.2f - %.2f\n", r.ConfidenceInterval.ConfidenceLevel*100, //nolint:errcheck
				r.ConfidenceInterval.LowerBound, r.ConfidenceInterval.UpperBound)
			fmt.Fprintf(w, "Risk of failure: %.1f%%\n", r.RiskOfFailure*100) //nolint:errcheck
			fmt.Fprintf(w, "Iterations:      %d\n", r.IterationsRun)        //nolint:errcheck
		},
	})
}

func newSensitivityCommand() *cobra.Command {
	return newAnalysisCommand(analysis[*sensitivity.Result]{
		use:   "sensitivity",
		short: "Sweep decision variables to find the critical ones",
		long: `Sweep every variable between its min and max value and measure how far
the score moves. Variables whose swing is large are reported as critical.`,
		run: (*engine.Service).AnalyzeSensitivity,
		text: func(w io.Writer, r *sensitivity.Result) {
			width := len("VARIABLE")
			for _, v := range r.VariableImpacts {
				width = max(width, len(v.VariableName))
			}
			fmt.Fprintf(w, "%s  %10s  %8s\n", padRight("VARIABLE", width), "RANGE", "CRITICAL") //nolint:errcheck
			for _, v := range r.VariableImpacts {
				crit := ""
				if v.IsCritical {
					crit = "yes"
				}
				fmt.Fprintf(w, "%s  %10.2f  %8s\n", padRight(v.VariableName, width), v.ScoreRange, crit) //nolint:errcheck
			}
			writeRecommendations(w, r.Recommendations)
		},
	})
}

func newDecayCommand() *cobra.Command {
	return newAnalysisCommand(analysis[*decay.Result]{
		use:   "decay",
		short: "Model how confidence in a decision decays over time",
		long: `Model the confidence in a decision day by day over a time horizon,
estimate its half-life and recommend when to review it.`,
		run: (*engine.Service).ModelDecay,
		text: func(w io.Writer, r *decay.Result) {
			halfLife := "never"
			if !math.IsInf(r.HalfLifeDays, 1) {
				halfLife = fmt.Sprintf("%.0f days", r.HalfLifeDays)
			}
			fmt.Fprintf(w, "Half-life:      %s\n", halfLife)                  //nolint:errcheck
			fmt.Fprintf(w, "Classification: %s\n", r.DecayClassification)    //nolint:errcheck
			fmt.Fprintf(w, "Stability:      %.1f/100\n", r.StabilityScore)    //nolint:errcheck
			fmt.Fprintf(w, "Review:         %s\n", r.CriticalReviewDate)      //nolint:errcheck
			if n := len(r.ConfidenceTimeline); n > 0 {
				last := r.ConfidenceTimeline[n-1]
				fmt.Fprintf(w, "Day %d:         %.1f (%.1f-%.1f)\n", last.Day, last.Confidence, last.LowerBound, last.UpperBound) //nolint:errcheck
			}
			writeRecommendations(w, r.Recommendations)
		},
	})
}

func writeRecommendations(w io.Writer, recs []string) {
	if len(recs) == 0 {
		return
	}
	fmt.Fprintf(w, "\nRecommendations:\n  - %s\n", strings.Join(recs, "\n  - ")) //nolint:errcheck
}
