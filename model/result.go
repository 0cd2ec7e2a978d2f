package model

// QuantileValue is one point of an empirical quantile summary.
type QuantileValue struct {
	Value    float64 `json:"v,omitempty"`
	Quantile float64 `json:"q,omitempty"`
}

// DensityPoint is one point of a smoothed outcome density estimate.
type DensityPoint struct {
	X     float64
	Value float64
}

// CdfPoint is one point of the cumulative distribution built from a density
// estimate.
type CdfPoint struct {
	X     float64
	Value float64
}

// RiskSummary reduces the trial-outcome sequence to summary statistics.
type RiskSummary struct {
	Mean      float64         `json:"mean,omitempty"`
	StdDev    float64         `json:"stddev,omitempty"`
	Quantiles []QuantileValue `json:"quantiles,omitempty"`
}

// GetQuantileValue returns the summary value for an exact probability point,
// if it was computed.
func (s *RiskSummary) GetQuantileValue(p float64) (QuantileValue, bool) {
	if s == nil {
		return QuantileValue{}, false
	}
	for _, q := range s.Quantiles {
		if q.Quantile == p {
			return q, true
		}
	}
	return QuantileValue{}, false
}

// AssessmentResult is the durable output of one assessment run: the ordered
// per-trial infected counts plus their summary. Everything downstream
// (plots, tables, the indicator mapping) derives from it.
type AssessmentResult struct {
	// Outcomes[i] is the number of infected people in trial i.
	Outcomes []float64   `json:"outcomes,omitempty"`
	Summary  RiskSummary `json:"summary,omitempty"`
}
