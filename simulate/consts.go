package simulate

var (
	// DefaultQuantiles are the probability points reported by RunAssessment,
	// matching the published reference table.
	DefaultQuantiles = []float64{0, 0.025, 0.05, 0.1, 0.25, 0.5,
		0.75, 0.9, 0.95, 0.975, 1}
)

const (
	// dose = volume * concentration / PerVolumeML, because concentrations
	// are tabulated per 100 ml.
	PerVolumeML = 100.0
)
