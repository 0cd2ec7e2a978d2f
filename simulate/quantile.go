package simulate

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/stat"

	"github.com/aquarisk/campy-qmra/common"
	"github.com/aquarisk/campy-qmra/model"
)

// Quantiles evaluates empirical quantiles of the outcome sequence at the
// given probability points, interpolating linearly between order statistics
// at rank (R-1)*p (Hyndman and Fan definition 7). p=0 and p=1 return the
// sequence minimum and maximum exactly.
func Quantiles(outcomes []float64, probs []float64) ([]model.QuantileValue, error) {
	if len(outcomes) == 0 {
		return nil, common.ErrorInvalidValue
	}
	sorted := append([]float64(nil), outcomes...)
	sort.Float64s(sorted)

	res := make([]model.QuantileValue, 0, len(probs))
	for _, p := range probs {
		if math.IsNaN(p) || p < 0 || p > 1 {
			return nil, common.ErrorInvalidQuantile
		}
		h := float64(len(sorted)-1) * p
		lo := int(math.Floor(h))
		value := sorted[lo]
		if lo+1 < len(sorted) {
			value += (h - float64(lo)) * (sorted[lo+1] - sorted[lo])
		}
		res = append(res, model.QuantileValue{Quantile: p, Value: value})
	}
	return res, nil
}

// Summarize reduces the outcome sequence to its mean, standard deviation and
// quantiles.
func Summarize(outcomes []float64, probs []float64) (*model.RiskSummary, error) {
	quantiles, err := Quantiles(outcomes, probs)
	if err != nil {
		return nil, err
	}
	summary := &model.RiskSummary{
		Mean:      stat.Mean(outcomes, nil),
		Quantiles: quantiles,
	}
	if len(outcomes) > 1 {
		summary.StdDev = stat.StdDev(outcomes, nil)
	}
	return summary, nil
}
