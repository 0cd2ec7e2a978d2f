package density

import "math"

// gaussianKernel is the smoothing kernel. Outcome counts are non-negative,
// so callers clip the evaluation grid at zero instead of reflecting the
// kernel around the origin.
type gaussianKernel struct {
	h float64 // bandwidth
}

func (k *gaussianKernel) shape(x float64) float64 {
	return 0.3989422804014327 * math.Exp(-x*x/2.0)
}

// normalReferenceConstant is the plug-in constant for a second-order
// Gaussian kernel with unit variance and L2 norm 1/(2*sqrt(pi)).
func (k *gaussianKernel) normalReferenceConstant() float64 {
	l2Norm := 1.0 / (2.0 * math.Sqrt(math.Pi))
	numerator := math.Sqrt(math.Pi) * 8.0 * l2Norm // factorial(2)^3 = 8
	denom := 2.0 * 2.0 * 24.0                      // 2 * order * factorial(2*order)
	return 2 * math.Pow(numerator/denom, 0.2)
}

// density evaluates the kernel density estimate of xs at x.
func (k *gaussianKernel) density(xs []float64, x float64) float64 {
	if len(xs) == 0 {
		return math.NaN()
	}
	sum := 0.0
	for _, xi := range xs {
		sum += k.shape((xi - x) / k.h)
	}
	return sum / (k.h * float64(len(xs)))
}
