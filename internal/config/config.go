package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"

	"github.com/cleared-dev/txaudit/internal/audit"
)

// FileName is the default config file name.
const FileName = "txaudit.yaml"

// Config represents the top-level txaudit.yaml configuration.
type Config struct {
	Source     SourceConfig     `yaml:"source"`
	Visitors   []string         `yaml:"visitors"`
	Thresholds ThresholdsConfig `yaml:"thresholds"`
	Output     OutputConfig     `yaml:"output"`
}

// SourceConfig selects where transactions come from. An empty File means the
// built-in sample list.
type SourceConfig struct {
	File string `yaml:"file,omitempty"`
}

// ThresholdsConfig holds the suspicious-activity limits. Values are exclusive:
// only amounts strictly above a limit are flagged.
type ThresholdsConfig struct {
	Deposit      float64 `yaml:"deposit"`
	Withdrawal   float64 `yaml:"withdrawal"`
	InterestRate float64 `yaml:"interest_rate"` // percent
	Transfer     float64 `yaml:"transfer"`
}

// OutputConfig controls side outputs of a run.
type OutputConfig struct {
	FlagLog string `yaml:"flag_log,omitempty"` // CSV path; empty disables
}

// Load reads a txaudit.yaml file from disk.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}
	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	return cfg, nil
}

// Save writes a Config to a YAML file.
func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	return nil
}

// ResolvePaths rewrites relative file paths against base, normally the
// directory holding the config file. Absolute and empty paths are unchanged.
func (c *Config) ResolvePaths(base string) {
	c.Source.File = resolve(base, c.Source.File)
	c.Output.FlagLog = resolve(base, c.Output.FlagLog)
}

func resolve(base, path string) string {
	if path == "" || filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(base, path)
}

// Default returns a Config with the standard thresholds and both visitors.
func Default() *Config {
	return &Config{
		Visitors: []string{"report", "suspicious"},
		Thresholds: ThresholdsConfig{
			Deposit:      10_000,
			Withdrawal:   10_000,
			InterestRate: 15,
			Transfer:     20_000,
		},
	}
}

// Policy converts the configured thresholds to an audit.Policy.
func (t ThresholdsConfig) Policy() audit.Policy {
	return audit.Policy{
		Deposit:      decimal.NewFromFloat(t.Deposit),
		Withdrawal:   decimal.NewFromFloat(t.Withdrawal),
		InterestRate: decimal.NewFromFloat(t.InterestRate),
		Transfer:     decimal.NewFromFloat(t.Transfer),
	}
}
