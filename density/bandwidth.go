package density

import (
	"math"

	"gonum.org/v1/gonum/stat"
)

// normalReferenceBandwidth selects the smoothing bandwidth by the normal
// reference rule with a robust spread estimate. xs must be sorted.
func normalReferenceBandwidth(k *gaussianKernel, xs []float64) float64 {
	C := k.normalReferenceConstant()
	A := selectSigma(xs)
	return C * A * math.Pow(float64(len(xs)), -0.2)
}

func selectSigma(xs []float64) float64 {
	const normalize = 1.349

	q75 := stat.Quantile(0.75, stat.Empirical, xs, nil)
	q25 := stat.Quantile(0.25, stat.Empirical, xs, nil)
	iqr := (q75 - q25) / normalize

	stdDev := stat.StdDev(xs, nil)

	if iqr > 0 && iqr < stdDev {
		return iqr
	}
	return stdDev
}
