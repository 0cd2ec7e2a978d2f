// Package concentration models the pathogen concentration of a water body as
// a discretized geometric-bin draw followed by a uniform draw within the bin.
package concentration

import (
	"math"

	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/stat/distuv"

	"github.com/aquarisk/campy-qmra/common"
)

// Bin is one concentration interval [Lower, Upper), counts per 100 ml.
type Bin struct {
	Index int
	Lower float64
	Upper float64
}

// BinTable partitions [0, max) into contiguous concentration bins.
type BinTable []Bin

// NewBinTable builds a table from ordered breakpoints. breaks of length k+1
// produce k bins.
func NewBinTable(breaks []float64) (BinTable, error) {
	if len(breaks) < 2 {
		return nil, common.ErrorInvalidBinTable
	}
	table := make(BinTable, 0, len(breaks)-1)
	for i := 0; i+1 < len(breaks); i++ {
		table = append(table, Bin{Index: i, Lower: breaks[i], Upper: breaks[i+1]})
	}
	if err := table.Validate(); err != nil {
		return nil, err
	}
	return table, nil
}

// Validate checks that the bins are indexed 0..k-1, contiguous,
// non-overlapping and monotonically increasing.
func (t BinTable) Validate() error {
	if len(t) == 0 {
		return common.ErrorInvalidBinTable
	}
	for i, bin := range t {
		if bin.Index != i {
			return common.ErrorInvalidBinTable
		}
		if math.IsNaN(bin.Lower) || math.IsNaN(bin.Upper) ||
			math.IsInf(bin.Lower, 0) || math.IsInf(bin.Upper, 0) {
			return common.ErrorInvalidBinTable
		}
		if !(bin.Lower < bin.Upper) {
			return common.ErrorInvalidBinTable
		}
		if i > 0 && t[i-1].Upper != bin.Lower {
			return common.ErrorInvalidBinTable
		}
	}
	return nil
}

// Max returns the upper bound of the last bin. No sampled concentration can
// reach it.
func (t BinTable) Max() float64 {
	return t[len(t)-1].Upper
}

// Sampler draws one shared concentration value per simulated water body.
type Sampler struct {
	table BinTable
	p     float64
}

func NewSampler(table BinTable, p float64) (*Sampler, error) {
	if err := table.Validate(); err != nil {
		return nil, err
	}
	if math.IsNaN(p) || !(p > 0 && p < 1) {
		return nil, common.ErrorInvalidParameters
	}
	return &Sampler{table: table, p: p}, nil
}

// Sample draws a bin index from the geometric distribution, then a uniform
// value within [bin.Lower, bin.Upper). The result is counts per 100 ml.
//
// Index draws past the last bin are clamped onto it, not redrawn. The extra
// mass in the top bin is intentional reference behavior.
func (s *Sampler) Sample(src rand.Source) float64 {
	idx := s.drawBinIndex(src)
	bin := s.table[idx]
	uniform := distuv.Uniform{Min: bin.Lower, Max: bin.Upper, Src: src}
	return uniform.Rand()
}

// drawBinIndex inverts the geometric CDF on one uniform draw: the number of
// failures before the first success with probability p.
func (s *Sampler) drawBinIndex(src rand.Source) int {
	u := rand.New(src).Float64()
	k := int(math.Floor(math.Log(1-u) / math.Log(1-s.p)))
	if k < 0 {
		k = 0
	}
	if k >= len(s.table) {
		k = len(s.table) - 1
	}
	return k
}
