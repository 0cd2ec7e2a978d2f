// Package config provides TOML run configuration merged over the reference
// defaults.
package config

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"

	"github.com/aquarisk/campy-qmra/indicator"
	"github.com/aquarisk/campy-qmra/model"
)

// FileConfig represents the TOML configuration file. Every field is
// optional; absent fields keep their defaults.
type FileConfig struct {
	Simulation   SimulationConfig   `toml:"simulation"`
	Exposure     ExposureConfig     `toml:"exposure"`
	Water        WaterConfig        `toml:"water"`
	DoseResponse DoseResponseConfig `toml:"dose-response"`
}

// SimulationConfig maps trial-loop settings.
type SimulationConfig struct {
	CohortSize *int   `toml:"cohort-size"`
	TrialCount *int   `toml:"trial-count"`
	Seed       *int64 `toml:"seed"`
}

// ExposureConfig maps the PERT triples, each as [min, mode, max] with an
// optional fourth shape element.
type ExposureConfig struct {
	Duration      []float64 `toml:"duration"`
	IngestionRate []float64 `toml:"ingestion-rate"`
}

// WaterConfig maps the concentration model.
type WaterConfig struct {
	BinBreaks  []float64 `toml:"bin-breaks"`
	GeometricP *float64  `toml:"geometric-p"`
}

// DoseResponseConfig maps the Beta-Poisson constants.
type DoseResponseConfig struct {
	Alpha *float64 `toml:"alpha"`
	N50   *float64 `toml:"n50"`
}

// Load reads a TOML config from the given path and merges it over
// model.DefaultConfig(). A missing file is not an error; an empty path
// returns the defaults.
func Load(path string) (model.AssessmentConfig, error) {
	cfg := model.DefaultConfig()
	if path == "" {
		return cfg, nil
	}
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("failed to stat config: %w", err)
	}

	var fileCfg FileConfig
	if _, err := toml.DecodeFile(path, &fileCfg); err != nil {
		return cfg, fmt.Errorf("failed to decode config: %w", err)
	}
	return merge(cfg, fileCfg)
}

func merge(cfg model.AssessmentConfig, fileCfg FileConfig) (model.AssessmentConfig, error) {
	if v := fileCfg.Simulation.CohortSize; v != nil {
		cfg.CohortSize = *v
	}
	if v := fileCfg.Simulation.TrialCount; v != nil {
		cfg.TrialCount = *v
	}
	if v := fileCfg.Simulation.Seed; v != nil {
		cfg.Seed = uint64(*v)
	}

	if len(fileCfg.Exposure.Duration) > 0 {
		params, err := pertParams("exposure.duration", fileCfg.Exposure.Duration)
		if err != nil {
			return cfg, err
		}
		cfg.Duration = params
	}
	if len(fileCfg.Exposure.IngestionRate) > 0 {
		params, err := pertParams("exposure.ingestion-rate", fileCfg.Exposure.IngestionRate)
		if err != nil {
			return cfg, err
		}
		cfg.IngestionRate = params
	}

	if len(fileCfg.Water.BinBreaks) > 0 {
		cfg.BinBreaks = append([]float64(nil), fileCfg.Water.BinBreaks...)
	}
	if v := fileCfg.Water.GeometricP; v != nil {
		cfg.GeometricP = *v
	}

	if v := fileCfg.DoseResponse.Alpha; v != nil {
		cfg.DoseResponse.Alpha = *v
	}
	if v := fileCfg.DoseResponse.N50; v != nil {
		cfg.DoseResponse.N50 = *v
	}

	return cfg, nil
}

func pertParams(key string, values []float64) (model.PertParams, error) {
	switch len(values) {
	case 3:
		return model.PertParams{Min: values[0], Mode: values[1], Max: values[2]}, nil
	case 4:
		return model.PertParams{Min: values[0], Mode: values[1], Max: values[2], Shape: values[3]}, nil
	default:
		return model.PertParams{}, fmt.Errorf("%s: want [min, mode, max] or [min, mode, max, shape], got %d values", key, len(values))
	}
}

// DefaultIndicatorRows is the surveyed E. coli percentile table with the
// risk attributed to each percentile by the reference assessment.
func DefaultIndicatorRows() []indicator.Row {
	return []indicator.Row{
		{Percentile: 5, Count: 10, Risk: 0.1},
		{Percentile: 25, Count: 30, Risk: 0.3},
		{Percentile: 50, Count: 52, Risk: 0.5},
		{Percentile: 75, Count: 130, Risk: 1.0},
		{Percentile: 90, Count: 260, Risk: 2.3},
		{Percentile: 95, Count: 410, Risk: 3.9},
		{Percentile: 97.5, Count: 550, Risk: 5.2},
		{Percentile: 99, Count: 1000, Risk: 8.9},
	}
}
