package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/groundsdev/grounds/internal/reporting"
	"github.com/groundsdev/grounds/internal/source"
	"github.com/spf13/cobra"
)

func newRenderCommand() *cobra.Command {
	var output string
	var title string

	cmd := &cobra.Command{
		Use:   "render <report>",
		Short: "Render a report and its score card as HTML",
		Long: `Render a markdown decision report to a standalone HTML page with its
structural score card (score, missing sections, next actions, notes).`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadProjectConfig(cmd)
			if err != nil {
				return err
			}
			data, name, err := source.Read(args[0])
			if err != nil {
				return err
			}
			text := string(data)
			result := newService(cfg).EvaluateText(text)

			if title == "" {
				title = strings.TrimSuffix(filepath.Base(name), ".md")
			}

			if output == "" {
				return reporting.HTML(cmd.OutOrStdout(), title, text, result)
			}
			f, err := os.Create(output)
			if err != nil {
				return fmt.Errorf("creating %s: %w", output, err)
			}
			if err := reporting.HTML(f, title, text, result); err != nil {
				f.Close() //nolint:errcheck
				return err
			}
			if err := f.Close(); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s (%s)\n", output, result.Summary()) //nolint:errcheck
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "HTML file to write (default: stdout)")
	cmd.Flags().StringVar(&title, "title", "", "Page title (default: report file name)")
	return cmd
}
