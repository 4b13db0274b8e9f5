// Package projectconfig provides the ProjectConfig struct and loader for
// .grounds.yaml project-level configuration files.
package projectconfig

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/groundsdev/grounds/internal/engine"
	"github.com/groundsdev/grounds/internal/publish"
	"github.com/groundsdev/grounds/internal/scoring"
	"github.com/groundsdev/grounds/internal/sensitivity"
	"github.com/groundsdev/grounds/internal/statistics"
	"github.com/groundsdev/grounds/internal/validation"
	"gopkg.in/yaml.v3"
)

// FileName is the project config file looked up from the working directory.
const FileName = ".grounds.yaml"

// maxWalkUp bounds how many directories Load searches.
const maxWalkUp = 10

// Default values for project configuration. New() references them and no
// other code should duplicate them.
const (
	DefaultWorkers    = 4
	DefaultServerPort = 3000
	DefaultTCPAddress = "127.0.0.1:7411"
)

// ScoringConfig mirrors scoring.Config with optional fields so a file can
// override one setting without restating the rest.
type ScoringConfig struct {
	RequiredHeaders []string `yaml:"required_headers,omitempty"`
	MinNextActions  *int     `yaml:"min_next_actions,omitempty"`
	QualityMetrics  *bool    `yaml:"quality_metrics,omitempty"`
}

// MonteCarloConfig holds risk simulation defaults.
type MonteCarloConfig struct {
	Iterations      int     `yaml:"iterations,omitempty"`
	Seed            *uint64 `yaml:"seed,omitempty"`
	ConfidenceLevel float64 `yaml:"confidence_level,omitempty"`
}

// SensitivityConfig holds sensitivity sweep defaults.
type SensitivityConfig struct {
	StepCount int `yaml:"step_count,omitempty"`
}

// ServerConfig holds settings for grounds serve.
type ServerConfig struct {
	Port           int      `yaml:"port,omitempty"`
	TCPAddress     string   `yaml:"tcp_address,omitempty"`
	ResultsDir     string   `yaml:"results_dir,omitempty"`
	AllowedOrigins []string `yaml:"allowed_origins,omitempty"`
}

// BatchConfig holds settings for grounds score.
type BatchConfig struct {
	Workers int `yaml:"workers,omitempty"`
}

// ProjectConfig is the top-level configuration loaded from .grounds.yaml.
type ProjectConfig struct {
	Scoring     ScoringConfig     `yaml:"scoring,omitempty"`
	MonteCarlo  MonteCarloConfig  `yaml:"monte_carlo,omitempty"`
	Sensitivity SensitivityConfig `yaml:"sensitivity,omitempty"`
	Server      ServerConfig      `yaml:"server,omitempty"`
	Batch       BatchConfig       `yaml:"batch,omitempty"`
	Publish     publish.Config    `yaml:"publish,omitempty"`

	// Path is the file the config was read from; empty for defaults.
	Path string `yaml:"-"`
}

// New returns a ProjectConfig with all hard-coded defaults populated.
func New() *ProjectConfig {
	sc := scoring.DefaultConfig()
	mc := statistics.DefaultMonteCarloConfig()
	return &ProjectConfig{
		Scoring: ScoringConfig{
			RequiredHeaders: sc.RequiredHeaders,
			MinNextActions:  intPtr(sc.MinNextActions),
			QualityMetrics:  boolPtr(sc.QualityMetrics),
		},
		MonteCarlo: MonteCarloConfig{
			Iterations:      mc.Iterations,
			ConfidenceLevel: mc.ConfidenceLevel,
		},
		Sensitivity: SensitivityConfig{
			StepCount: sensitivity.DefaultStepCount,
		},
		Server: ServerConfig{
			Port:       DefaultServerPort,
			TCPAddress: DefaultTCPAddress,
		},
		Batch: BatchConfig{
			Workers: DefaultWorkers,
		},
	}
}

// Load finds .grounds.yaml by walking up from startDir (max 10 levels),
// unmarshals it, and fills in missing fields with defaults.
// If no config file is found, returns defaults with a nil error.
// Real I/O errors (e.g. permission denied) are returned to the caller.
func Load(startDir string) (*ProjectConfig, error) {
	path, data, err := findConfigFile(startDir)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return New(), nil
		}
		return nil, fmt.Errorf("loading %s: %w", FileName, err)
	}
	return parse(path, data)
}

// LoadFile reads the config at path. Unlike Load, a missing file is an
// error.
func LoadFile(path string) (*ProjectConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("loading %s: %w", path, err)
	}
	return parse(path, data)
}

func parse(path string, data []byte) (*ProjectConfig, error) {
	var raw struct {
		Scoring any `yaml:"scoring"`
	}
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	if raw.Scoring != nil {
		if errs := validation.Validate(validation.KindScoringConfig, raw.Scoring); len(errs) > 0 {
			return nil, fmt.Errorf("invalid scoring section in %s: %s", path, strings.Join(errs, "; "))
		}
	}

	var fileCfg ProjectConfig
	if err := yaml.Unmarshal(data, &fileCfg); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}

	cfg := New()
	mergeConfig(cfg, &fileCfg)
	cfg.Path = path
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid %s: %w", path, err)
	}
	return cfg, nil
}

// findConfigFile walks up from dir looking for .grounds.yaml (max 10
// levels). Returns os.ErrNotExist if no config file is found.
func findConfigFile(dir string) (string, []byte, error) {
	// Convert to absolute path so filepath.Dir(".") walks correctly.
	absDir, err := filepath.Abs(dir)
	if err != nil {
		return "", nil, fmt.Errorf("resolving path %q: %w", dir, err)
	}
	dir = absDir

	for range maxWalkUp {
		p := filepath.Join(dir, FileName)
		data, err := os.ReadFile(p)
		if err == nil {
			return p, data, nil
		}
		if !errors.Is(err, os.ErrNotExist) {
			return "", nil, fmt.Errorf("reading %q: %w", p, err)
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break // reached filesystem root
		}
		dir = parent
	}
	return "", nil, os.ErrNotExist
}

// mergeConfig overlays non-zero values from src onto dst.
func mergeConfig(dst, src *ProjectConfig) {
	// Scoring
	if src.Scoring.RequiredHeaders != nil {
		dst.Scoring.RequiredHeaders = src.Scoring.RequiredHeaders
	}
	if src.Scoring.MinNextActions != nil {
		dst.Scoring.MinNextActions = src.Scoring.MinNextActions
	}
	if src.Scoring.QualityMetrics != nil {
		dst.Scoring.QualityMetrics = src.Scoring.QualityMetrics
	}

	// Monte Carlo
	if src.MonteCarlo.Iterations != 0 {
		dst.MonteCarlo.Iterations = src.MonteCarlo.Iterations
	}
	if src.MonteCarlo.Seed != nil {
		dst.MonteCarlo.Seed = src.MonteCarlo.Seed
	}
	if src.MonteCarlo.ConfidenceLevel != 0 {
		dst.MonteCarlo.ConfidenceLevel = src.MonteCarlo.ConfidenceLevel
	}

	// Sensitivity
	if src.Sensitivity.StepCount != 0 {
		dst.Sensitivity.StepCount = src.Sensitivity.StepCount
	}

	// Server
	if src.Server.Port != 0 {
		dst.Server.Port = src.Server.Port
	}
	if src.Server.TCPAddress != "" {
		dst.Server.TCPAddress = src.Server.TCPAddress
	}
	if src.Server.ResultsDir != "" {
		dst.Server.ResultsDir = src.Server.ResultsDir
	}
	if src.Server.AllowedOrigins != nil {
		dst.Server.AllowedOrigins = src.Server.AllowedOrigins
	}

	// Batch
	if src.Batch.Workers != 0 {
		dst.Batch.Workers = src.Batch.Workers
	}

	// Publish
	if src.Publish.AccountURL != "" {
		dst.Publish.AccountURL = src.Publish.AccountURL
	}
	if src.Publish.Container != "" {
		dst.Publish.Container = src.Publish.Container
	}
}

// Validate checks value ranges the YAML types cannot express.
func (c *ProjectConfig) Validate() error {
	var errs []error
	if c.MonteCarlo.Iterations < 1 {
		errs = append(errs, fmt.Errorf("monte_carlo.iterations must be at least 1, got %d", c.MonteCarlo.Iterations))
	}
	if cl := c.MonteCarlo.ConfidenceLevel; cl <= 0 || cl >= 1 {
		errs = append(errs, fmt.Errorf("monte_carlo.confidence_level must be in (0,1), got %g", cl))
	}
	if c.Sensitivity.StepCount < 1 {
		errs = append(errs, fmt.Errorf("sensitivity.step_count must be at least 1, got %d", c.Sensitivity.StepCount))
	}
	if c.Server.Port < 0 || c.Server.Port > 65535 {
		errs = append(errs, fmt.Errorf("server.port out of range: %d", c.Server.Port))
	}
	if c.Batch.Workers < 1 {
		errs = append(errs, fmt.Errorf("batch.workers must be at least 1, got %d", c.Batch.Workers))
	}
	return errors.Join(errs...)
}

// EngineOptions converts the analysis sections into engine defaults.
func (c *ProjectConfig) EngineOptions() engine.Options {
	opts := engine.DefaultOptions()
	if c.Scoring.RequiredHeaders != nil {
		opts.Scoring.RequiredHeaders = slices.Clone(c.Scoring.RequiredHeaders)
	}
	if c.Scoring.MinNextActions != nil {
		opts.Scoring.MinNextActions = *c.Scoring.MinNextActions
	}
	if c.Scoring.QualityMetrics != nil {
		opts.Scoring.QualityMetrics = *c.Scoring.QualityMetrics
	}
	opts.MonteCarlo = statistics.MonteCarloConfig{
		Iterations:      c.MonteCarlo.Iterations,
		Seed:            c.MonteCarlo.Seed,
		ConfidenceLevel: c.MonteCarlo.ConfidenceLevel,
	}
	opts.StepCount = c.Sensitivity.StepCount
	return opts
}

// Marshal renders c as YAML.
func (c *ProjectConfig) Marshal() ([]byte, error) {
	data, err := yaml.Marshal(c)
	if err != nil {
		return nil, fmt.Errorf("encoding %s: %w", FileName, err)
	}
	return data, nil
}

func intPtr(i int) *int {
	return &i
}

func boolPtr(b bool) *bool {
	return &b
}
