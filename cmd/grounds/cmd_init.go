package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/groundsdev/grounds/internal/projectconfig"
	"github.com/groundsdev/grounds/internal/wizard"
	"github.com/spf13/cobra"
)

func newInitCommand() *cobra.Command {
	var force bool
	var defaults bool

	cmd := &cobra.Command{
		Use:   "init [directory]",
		Short: "Create a .grounds.yaml project config",
		Long: `Create a .grounds.yaml in the given directory (default: the current
directory) through a short guided form: the required report sections,
minimum next actions, simulation iterations, batch workers and the optional
blob container for --publish.

Use --defaults to skip the form and write the built-in defaults.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := "."
			if len(args) > 0 {
				dir = args[0]
			}
			return initCommandE(cmd, dir, force, defaults)
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "Overwrite an existing .grounds.yaml")
	cmd.Flags().BoolVar(&defaults, "defaults", false, "Write the defaults without asking")

	return cmd
}

func initCommandE(cmd *cobra.Command, dir string, force, useDefaults bool) error {
	path := filepath.Join(dir, projectconfig.FileName)
	if _, err := os.Stat(path); err == nil && !force {
		return fmt.Errorf("%s already exists (use --force to overwrite)", path)
	} else if err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("checking %s: %w", path, err)
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create directory %s: %w", dir, err)
	}

	cfg := projectconfig.New()
	if !useDefaults {
		var err error
		cfg, err = wizard.Run(cmd.InOrStdin(), cmd.OutOrStdout(), cfg)
		if err != nil {
			return err
		}
	}

	content, err := wizard.Render(cfg)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, content, 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Created %s\n", path) //nolint:errcheck
	return nil
}
