package model

import "fmt"

// PertParams parameterizes a modified-PERT distribution for one exposure
// variable. Shape 0 means the conventional steepness of 4.
type PertParams struct {
	Min   float64 `json:"min"`
	Mode  float64 `json:"mode"`
	Max   float64 `json:"max"`
	Shape float64 `json:"shape,omitempty"`
}

func (p PertParams) String() string {
	return fmt.Sprintf("(%v, %v, %v)", p.Min, p.Mode, p.Max)
}

// DoseResponseParams holds the Beta-Poisson constants for one pathogen
// strain. The defaults are fixed biological constants from the source
// literature and should not be varied without re-deriving them.
type DoseResponseParams struct {
	Alpha float64 `json:"alpha"`
	N50   float64 `json:"n50"`
}

// AssessmentConfig is the full immutable configuration of one assessment
// run. Multiple configurations can be simulated concurrently as long as each
// run gets its own copy.
type AssessmentConfig struct {
	// CohortSize is the number of people exposed to one water body per trial.
	CohortSize int `json:"cohort_size"`
	// TrialCount is the number of independent trials.
	TrialCount int `json:"trial_count"`

	// Duration of exposure in hours.
	Duration PertParams `json:"duration"`
	// IngestionRate in ml of water per hour.
	IngestionRate PertParams `json:"ingestion_rate"`

	// BinBreaks are the pathogen concentration breakpoints, counts per 100 ml.
	BinBreaks []float64 `json:"bin_breaks"`
	// GeometricP is the success probability of the geometric bin-index draw.
	GeometricP float64 `json:"geometric_p"`

	DoseResponse DoseResponseParams `json:"dose_response"`

	// Seed is the master seed; every trial derives its own stream from it.
	Seed uint64 `json:"seed"`
}

// DefaultConfig returns the reference configuration for Campylobacter jejuni
// in recreational freshwater.
func DefaultConfig() AssessmentConfig {
	return AssessmentConfig{
		CohortSize:    1000,
		TrialCount:    10000,
		Duration:      PertParams{Min: 0.25, Mode: 0.5, Max: 2},
		IngestionRate: PertParams{Min: 10, Mode: 50, Max: 100},
		BinBreaks:     []float64{0, 0.3, 1.2, 4.2, 28.8, 110, 2000},
		GeometricP:    0.42531,
		DoseResponse:  DoseResponseParams{Alpha: 0.145, N50: 896},
		Seed:          1,
	}
}
