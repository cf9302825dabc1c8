// Package nsfconfig holds the configuration for a single extraction run.
package nsfconfig

import (
	"os"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"
)

const (
	// DefaultDuration is the number of seconds of each track to emulate,
	// ported from nsfp.NSF's default.
	DefaultDuration = 120
	// DefaultPatternLength is the advisory notation grouping width.
	DefaultPatternLength = 256
	// DefaultTuning is the A4 reference frequency in Hz.
	DefaultTuning = 440
)

// ExtractionConfig configures one call to extract.Run. The zero value is
// valid; Resolve fills in documented defaults.
type ExtractionConfig struct {
	Duration      int    `yaml:"duration"`
	PatternLength int    `yaml:"pattern_length"`
	Tuning        int    `yaml:"tuning"`
	RunID         string `yaml:"run_id,omitempty"`
}

// Resolve returns a copy of cfg with every zero-valued field replaced by
// its documented default, and a RunID stamped in if one wasn't set.
func (cfg ExtractionConfig) Resolve() ExtractionConfig {
	out := cfg
	if out.Duration <= 0 {
		out.Duration = DefaultDuration
	}
	if out.PatternLength <= 0 {
		out.PatternLength = DefaultPatternLength
	}
	if out.Tuning <= 0 {
		out.Tuning = DefaultTuning
	}
	if out.RunID == "" {
		out.RunID = uuid.NewString()
	}
	return out
}

// Load reads an ExtractionConfig from a YAML file at path.
func Load(path string) (ExtractionConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return ExtractionConfig{}, err
	}
	var cfg ExtractionConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return ExtractionConfig{}, err
	}
	return cfg, nil
}
