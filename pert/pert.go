// Package pert draws samples from the modified-PERT distribution, used for
// the expert-elicited exposure variables (swim duration, ingestion rate).
package pert

import (
	"math"

	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/stat/distuv"

	"github.com/aquarisk/campy-qmra/common"
	"github.com/aquarisk/campy-qmra/model"
)

// DefaultShape is the conventional PERT steepness constant.
const DefaultShape = 4.0

// Sampler draws from one fixed PERT distribution. The PERT is a Beta
// distribution reparameterized by minimum, most likely and maximum value:
//
//	alpha = 1 + shape*(mode-min)/(max-min)
//	beta  = 1 + shape*(max-mode)/(max-min)
//	x     = min + (max-min)*Beta(alpha, beta)
type Sampler struct {
	min, mode, max float64
	alpha, beta    float64
}

func NewSampler(params model.PertParams) (*Sampler, error) {
	shape := params.Shape
	if shape == 0 {
		shape = DefaultShape
	}
	for _, v := range []float64{params.Min, params.Mode, params.Max, shape} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return nil, common.ErrorInvalidParameters
		}
	}
	if !(params.Min < params.Mode && params.Mode < params.Max) || shape <= 0 {
		return nil, common.ErrorInvalidParameters
	}

	span := params.Max - params.Min
	return &Sampler{
		min:   params.Min,
		mode:  params.Mode,
		max:   params.Max,
		alpha: 1 + shape*(params.Mode-params.Min)/span,
		beta:  1 + shape*(params.Max-params.Mode)/span,
	}, nil
}

// Sample draws one value in [min, max] from the given stream.
func (s *Sampler) Sample(src rand.Source) float64 {
	beta := distuv.Beta{Alpha: s.alpha, Beta: s.beta, Src: src}
	return s.min + (s.max-s.min)*beta.Rand()
}

// SampleN draws n independent values from the given stream.
func (s *Sampler) SampleN(n int, src rand.Source) []float64 {
	beta := distuv.Beta{Alpha: s.alpha, Beta: s.beta, Src: src}
	res := make([]float64, n)
	for i := range res {
		res[i] = s.min + (s.max-s.min)*beta.Rand()
	}
	return res
}
