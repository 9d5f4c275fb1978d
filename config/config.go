// Package config loads preprocess defaults from an optional YAML file.
// Command-line flags the user sets explicitly win over file values.
package config

import (
	"fmt"
	"os"

	"github.com/avollmer/partita/constants"
	"gopkg.in/yaml.v3"
)

type Preprocess struct {
	TargetFolder string    `yaml:"target_folder"`
	VoiceNum     int       `yaml:"voice_num"`
	Distribution []float64 `yaml:"voice_distribution"`
	Quantization []int     `yaml:"quantization"`
	PartRatio    float64   `yaml:"part_ratio"`
	IntervalLow  int       `yaml:"interval_low"`
	IntervalHigh int       `yaml:"interval_high"`
}

// Default returns the built-in preprocess parameters.
func Default() Preprocess {
	return Preprocess{
		TargetFolder: constants.DefaultTargetFolder,
		VoiceNum:     constants.DefaultVoiceNum,
		Distribution: constants.DefaultDistribution(),
		Quantization: constants.DefaultQuantization(),
		PartRatio:    constants.DefaultPartRatio,
		IntervalLow:  constants.DefaultIntervalLow,
		IntervalHigh: constants.DefaultIntervalHigh,
	}
}

// Load reads a YAML config file on top of the defaults.
func Load(path string) (Preprocess, error) {
	cfg := Default()
	dat, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("config: reading %v: %w", path, err)
	}
	if err := yaml.Unmarshal(dat, &cfg); err != nil {
		return cfg, fmt.Errorf("config: parsing %v: %w", path, err)
	}
	return cfg, nil
}
