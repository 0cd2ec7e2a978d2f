// Package density smooths the trial-outcome sequence with a Gaussian kernel
// density estimate, so reports can draw continuous percentile curves instead
// of the raw integer step function. It consumes the simulation output and
// never feeds back into it.
package density

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/integrate/quad"

	"github.com/aquarisk/campy-qmra/common"
	"github.com/aquarisk/campy-qmra/model"
)

const (
	// defaultGridSize keeps CDF integration cheap; infected counts live on
	// a bounded integer range, so a fine grid adds nothing.
	defaultGridSize = 200

	// defaultCut extends the grid past the sample extremes, in bandwidths,
	// so the kernel tails go to zero.
	defaultCut = 3.0
)

// Estimator holds the density estimate of one trial-outcome sequence.
type Estimator struct {
	outcomes []float64 // sorted infected counts
	maxCount float64   // cohort size; no outcome can exceed it
	gridSize int
	cut      float64

	fitted  bool
	bw      float64
	grid    []float64
	kernel  *gaussianKernel
	density []model.DensityPoint
	cdf     []model.CdfPoint
}

// NewEstimator builds an estimator over per-trial infected counts. maxCount
// is the cohort size; outcomes are clipped into [0, maxCount].
func NewEstimator(outcomes []float64, maxCount float64) (*Estimator, error) {
	if len(outcomes) == 0 || !(maxCount > 0) || math.IsNaN(maxCount) {
		return nil, common.ErrorInvalidValue
	}

	sorted := make([]float64, 0, len(outcomes))
	for _, v := range outcomes {
		if math.IsNaN(v) {
			return nil, common.ErrorInvalidValue
		}
		sorted = append(sorted, math.Min(math.Max(v, 0), maxCount))
	}
	sort.Float64s(sorted)

	return &Estimator{
		outcomes: sorted,
		maxCount: maxCount,
		gridSize: defaultGridSize,
		cut:      defaultCut,
	}, nil
}

// Density fits the estimate if needed and returns the density grid and the
// selected bandwidth.
func (e *Estimator) Density() ([]model.DensityPoint, float64) {
	if e.fitted {
		return e.density, e.bw
	}

	kernel := &gaussianKernel{}
	bw := normalReferenceBandwidth(kernel, e.outcomes)
	if !(bw > 0) {
		// degenerate sample, e.g. every trial infected nobody
		bw = 0.5
	}
	kernel.h = bw

	lo := math.Max(e.outcomes[0]-e.cut*bw, 0)
	hi := math.Min(e.outcomes[len(e.outcomes)-1]+e.cut*bw, e.maxCount)
	if hi <= lo {
		hi = lo + 1
	}
	grid := linspace(lo, hi, e.gridSize)

	points := make([]model.DensityPoint, len(grid))
	for i, x := range grid {
		points[i] = model.DensityPoint{X: x, Value: kernel.density(e.outcomes, x)}
	}

	e.density = points
	e.bw = bw
	e.grid = grid
	e.kernel = kernel
	e.fitted = true

	return points, bw
}

// Cdf integrates the density from zero across the grid with fixed-order
// Gauss-Legendre quadrature.
func (e *Estimator) Cdf() ([]model.CdfPoint, error) {
	if !e.fitted {
		e.Density()
	}
	if len(e.cdf) > 0 {
		return e.cdf, nil
	}

	f := func(x float64) float64 {
		return e.kernel.density(e.outcomes, x)
	}

	newGrid := append([]float64{0}, e.grid...)
	res := make([]model.CdfPoint, 0, len(e.grid))

	var cumSum float64
	for i := 1; i < len(newGrid); i++ {
		cumSum += quad.Fixed(f, newGrid[i-1], newGrid[i], 50, nil, 0)
		res = append(res, model.CdfPoint{X: newGrid[i], Value: cumSum})
	}

	e.cdf = res
	return res, nil
}

// Quantile inverts the smoothed CDF at probability p by linear interpolation
// between grid points; out-of-range probabilities clamp to the grid ends.
func (e *Estimator) Quantile(p float64) (model.QuantileValue, error) {
	if math.IsNaN(p) || p < 0 || p > 1 {
		return model.QuantileValue{}, common.ErrorInvalidQuantile
	}

	cdf, err := e.Cdf()
	if err != nil {
		return model.QuantileValue{}, err
	}
	if len(cdf) == 0 {
		return model.QuantileValue{}, common.ErrorInvalidValue
	}

	if p <= cdf[0].Value {
		return model.QuantileValue{Quantile: p, Value: cdf[0].X}, nil
	}
	if p >= cdf[len(cdf)-1].Value {
		return model.QuantileValue{Quantile: p, Value: cdf[len(cdf)-1].X}, nil
	}

	for i := 1; i < len(cdf); i++ {
		if cdf[i].Value > p {
			lowerX, lowerP := cdf[i-1].X, cdf[i-1].Value
			upperX, upperP := cdf[i].X, cdf[i].Value
			value := lowerX + (upperX-lowerX)*(p-lowerP)/(upperP-lowerP)
			return model.QuantileValue{Quantile: p, Value: value}, nil
		}
	}
	return model.QuantileValue{Quantile: p, Value: cdf[len(cdf)-1].X}, nil
}

func linspace(start, stop float64, num int) []float64 {
	if num < 2 {
		return []float64{start}
	}
	step := (stop - start) / float64(num-1)
	grid := make([]float64, num)
	for i := 0; i < num; i++ {
		grid[i] = start + float64(i)*step
	}
	return grid
}
