// Package projectconfig provides the ProjectConfig struct and loader for
// .blastograde.yaml project-level configuration files.
package projectconfig

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/embrylab/blastograde/internal/history"
	"github.com/embrylab/blastograde/internal/models"
	"github.com/embrylab/blastograde/internal/validation"
)

// ConfigFileName is the project config file looked up from the working
// directory upwards.
const ConfigFileName = ".blastograde.yaml"

// Default values for project configuration. These are the single source of
// truth — New() references them and no other code should duplicate them.
const (
	DefaultReportsDir = "reports/"

	DefaultServerPort = 3000

	DefaultClassifierTimeout = 30
)

// ScoringConfig overrides the scoring policy. Zero fields keep the model
// defaults.
type ScoringConfig struct {
	WeightICM      float64  `yaml:"weight_icm,omitempty"`
	WeightTE       float64  `yaml:"weight_te,omitempty"`
	WeightExp      float64  `yaml:"weight_exp,omitempty"`
	PairBonus      *float64 `yaml:"pair_bonus,omitempty"`
	ExpansionBonus *float64 `yaml:"expansion_bonus,omitempty"`
	Ceiling        float64  `yaml:"ceiling,omitempty"`
}

// HistoryConfig holds history store settings. An empty SQLitePath selects
// the in-memory store.
type HistoryConfig struct {
	Capacity   int    `yaml:"capacity,omitempty"`
	SQLitePath string `yaml:"sqlite_path,omitempty"`
}

// ServerConfig holds dashboard server settings.
type ServerConfig struct {
	Port      int   `yaml:"port,omitempty"`
	NoBrowser *bool `yaml:"no_browser,omitempty"`
}

// ClassifierConfig holds remote inference service settings.
type ClassifierConfig struct {
	Endpoint       string `yaml:"endpoint,omitempty"`
	TimeoutSeconds int    `yaml:"timeout_seconds,omitempty"`
}

// ProjectConfig is the top-level configuration loaded from .blastograde.yaml.
type ProjectConfig struct {
	ReportsDir string           `yaml:"reports_dir,omitempty"`
	Scoring    ScoringConfig    `yaml:"scoring,omitempty"`
	History    HistoryConfig    `yaml:"history,omitempty"`
	Server     ServerConfig     `yaml:"server,omitempty"`
	Classifier ClassifierConfig `yaml:"classifier,omitempty"`
}

// New returns a ProjectConfig with all hard-coded defaults populated.
func New() *ProjectConfig {
	return &ProjectConfig{
		ReportsDir: DefaultReportsDir,
		History: HistoryConfig{
			Capacity: history.DefaultCapacity,
		},
		Server: ServerConfig{
			Port:      DefaultServerPort,
			NoBrowser: boolPtr(false),
		},
		Classifier: ClassifierConfig{
			TimeoutSeconds: DefaultClassifierTimeout,
		},
	}
}

// ScoringPolicy materializes the configured policy, falling back to the
// documented defaults for unset fields. The three weights override only as
// a complete set; a partial set is a config error.
func (c *ProjectConfig) ScoringPolicy() (models.ScoringPolicy, error) {
	p := models.DefaultScoringPolicy()

	set := 0
	for _, w := range []float64{c.Scoring.WeightICM, c.Scoring.WeightTE, c.Scoring.WeightExp} {
		if w != 0 {
			set++
		}
	}
	switch set {
	case 0:
	case 3:
		p.WeightICM = c.Scoring.WeightICM
		p.WeightTE = c.Scoring.WeightTE
		p.WeightExp = c.Scoring.WeightExp
	default:
		return models.ScoringPolicy{}, fmt.Errorf("scoring weights must be overridden together (weight_icm, weight_te, weight_exp)")
	}

	if c.Scoring.PairBonus != nil {
		p.PairBonus = *c.Scoring.PairBonus
	}
	if c.Scoring.ExpansionBonus != nil {
		p.ExpansionBonus = *c.Scoring.ExpansionBonus
	}
	if c.Scoring.Ceiling != 0 {
		p.Ceiling = c.Scoring.Ceiling
	}

	if err := p.Validate(); err != nil {
		return models.ScoringPolicy{}, err
	}
	return p, nil
}

// Load finds .blastograde.yaml by walking up from startDir (max 10 levels),
// validates it against the config schema, unmarshals it, and fills in
// missing fields with defaults. If no config file is found, returns
// defaults with a nil error. Real I/O errors are returned to the caller.
func Load(startDir string) (*ProjectConfig, error) {
	cfg := New()

	data, err := findConfigFile(startDir)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return nil, fmt.Errorf("loading %s: %w", ConfigFileName, err)
	}

	if errs := validation.ValidateConfigBytes(data); len(errs) > 0 {
		return nil, fmt.Errorf("invalid %s: %s", ConfigFileName, errs[0])
	}

	var fileCfg ProjectConfig
	if err := yaml.Unmarshal(data, &fileCfg); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", ConfigFileName, err)
	}

	mergeConfig(cfg, &fileCfg)
	return cfg, nil
}

// findConfigFile walks up from dir looking for the config file (max 10
// levels). Returns os.ErrNotExist if none is found; propagates real I/O
// errors instead of silently swallowing them.
func findConfigFile(dir string) ([]byte, error) {
	absDir, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("resolving path %q: %w", dir, err)
	}
	dir = absDir

	for i := 0; i < 10; i++ {
		p := filepath.Join(dir, ConfigFileName)
		data, err := os.ReadFile(p)
		if err == nil {
			return data, nil
		}
		if !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("reading %q: %w", p, err)
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return nil, os.ErrNotExist
}

// mergeConfig overlays non-zero file values onto the defaults.
func mergeConfig(dst, src *ProjectConfig) {
	if src.ReportsDir != "" {
		dst.ReportsDir = src.ReportsDir
	}
	dst.Scoring = src.Scoring

	if src.History.Capacity > 0 {
		dst.History.Capacity = src.History.Capacity
	}
	if src.History.SQLitePath != "" {
		dst.History.SQLitePath = src.History.SQLitePath
	}
	if src.Server.Port > 0 {
		dst.Server.Port = src.Server.Port
	}
	if src.Server.NoBrowser != nil {
		dst.Server.NoBrowser = src.Server.NoBrowser
	}
	if src.Classifier.Endpoint != "" {
		dst.Classifier.Endpoint = src.Classifier.Endpoint
	}
	if src.Classifier.TimeoutSeconds > 0 {
		dst.Classifier.TimeoutSeconds = src.Classifier.TimeoutSeconds
	}
}

func boolPtr(b bool) *bool { return &b }
