package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/groundsdev/grounds/internal/engine"
	"github.com/groundsdev/grounds/internal/projectconfig"
	"github.com/spf13/cobra"
)

var version = "dev"

func newRootCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "grounds",
		Short: "Grounds - structural scoring and risk analysis for decision reports",
		Long: `Grounds checks decision reports against a section template and
models the risk, sensitivity and decay of the decisions behind them.

Every analysis is deterministic: the same input and seed always give the
same output. Defaults come from the nearest .grounds.yaml.`,
		Version:      version,
		SilenceUsage: true,
	}

	debugLogging := cmd.PersistentFlags().Bool("debug", false, "Enable debug logging")
	cmd.PersistentFlags().String("config", "", "Path to a .grounds.yaml (default: search upward from the working directory)")
	cmd.PersistentPreRun = func(cmd *cobra.Command, args []string) {
		if *debugLogging {
			slog.SetLogLoggerLevel(slog.LevelDebug)
		}
	}

	cmd.AddCommand(newScoreCommand())
	cmd.AddCommand(newSimulateCommand())
	cmd.AddCommand(newSensitivityCommand())
	cmd.AddCommand(newDecayCommand())
	cmd.AddCommand(newReadinessCommand())
	cmd.AddCommand(newRenderCommand())
	cmd.AddCommand(newServeCommand())
	cmd.AddCommand(newInitCommand())

	return cmd
}

func execute() error {
	rootCmd := newRootCommand()
	return rootCmd.ExecuteContext(context.Background())
}

// loadProjectConfig returns the config named by --config, or the nearest
// .grounds.yaml above the working directory.
func loadProjectConfig(cmd *cobra.Command) (*projectconfig.ProjectConfig, error) {
	if path, _ := cmd.Flags().GetString("config"); path != "" {
		return projectconfig.LoadFile(path)
	}
	wd, err := os.Getwd()
	if err != nil {
		return nil, err
	}
	cfg, err := projectconfig.Load(wd)
	if err != nil {
		return nil, err
	}
	if cfg.Path != "" {
		slog.Debug("loaded project config", "path", cfg.Path)
	}
	return cfg, nil
}

func newService(cfg *projectconfig.ProjectConfig) *engine.Service {
	return engine.NewService(nil, cfg.EngineOptions())
}
