// Package doseresponse maps an ingested pathogen dose to a probability of
// infection with the approximate Beta-Poisson model.
package doseresponse

import (
	"math"

	"github.com/aquarisk/campy-qmra/common"
	"github.com/aquarisk/campy-qmra/model"
)

// Campylobacter jejuni constants from the source literature.
const (
	DefaultAlpha = 0.145
	DefaultN50   = 896
)

// Model evaluates
//
//	P(infection) = 1 - (1 + dose/N50 * (2^(1/alpha) - 1))^(-alpha)
//
// for fixed alpha and N50.
type Model struct {
	alpha float64
	n50   float64
	scale float64 // 2^(1/alpha) - 1
}

func NewModel(params model.DoseResponseParams) (Model, error) {
	alpha, n50 := params.Alpha, params.N50
	if alpha == 0 && n50 == 0 {
		alpha, n50 = DefaultAlpha, DefaultN50
	}
	if math.IsNaN(alpha) || math.IsNaN(n50) || !(alpha > 0) || !(n50 > 0) ||
		math.IsInf(alpha, 0) || math.IsInf(n50, 0) {
		return Model{}, common.ErrorInvalidParameters
	}
	return Model{
		alpha: alpha,
		n50:   n50,
		scale: math.Pow(2, 1/alpha) - 1,
	}, nil
}

// InfectionProbability returns the infection probability for a non-negative
// dose. Evaluated through Log1p/Expm1 so the result is exactly 0 at dose 0
// and stays accurate out to very large doses.
func (m Model) InfectionProbability(dose float64) (float64, error) {
	if math.IsNaN(dose) || dose < 0 {
		return 0, common.ErrorInvalidDose
	}
	p := -math.Expm1(-m.alpha * math.Log1p(dose/m.n50*m.scale))
	if p > 1 {
		p = 1
	}
	return p, nil
}

// Alpha returns the shape constant.
func (m Model) Alpha() float64 { return m.alpha }

// N50 returns the median infectious dose.
func (m Model) N50() float64 { return m.n50 }
