package simulate

import (
	"golang.org/x/exp/rand"

	"github.com/aquarisk/campy-qmra/common"
	"github.com/aquarisk/campy-qmra/concentration"
	"github.com/aquarisk/campy-qmra/doseresponse"
	"github.com/aquarisk/campy-qmra/model"
	"github.com/aquarisk/campy-qmra/pert"
)

// ConcentrationSampler draws one shared pathogen concentration for a water
// body, counts per 100 ml.
type ConcentrationSampler interface {
	Sample(src rand.Source) float64
}

// CohortSimulator simulates one trial: a cohort of people exposed to the
// same water body on the same occasion.
type CohortSimulator struct {
	duration *pert.Sampler
	rate     *pert.Sampler
	conc     ConcentrationSampler
	dr       doseresponse.Model
}

func NewCohortSimulator(cfg model.AssessmentConfig) (*CohortSimulator, error) {
	duration, err := pert.NewSampler(cfg.Duration)
	if err != nil {
		return nil, err
	}
	rate, err := pert.NewSampler(cfg.IngestionRate)
	if err != nil {
		return nil, err
	}
	table, err := concentration.NewBinTable(cfg.BinBreaks)
	if err != nil {
		return nil, err
	}
	conc, err := concentration.NewSampler(table, cfg.GeometricP)
	if err != nil {
		return nil, err
	}
	dr, err := doseresponse.NewModel(cfg.DoseResponse)
	if err != nil {
		return nil, err
	}
	return &CohortSimulator{
		duration: duration,
		rate:     rate,
		conc:     conc,
		dr:       dr,
	}, nil
}

// Run returns n binary infection outcomes, one per person in input order.
//
// The concentration is drawn exactly once and shared across the cohort.
// Redrawing it per person would wash out the within-trial correlation and
// change the shape of the outcome distribution.
func (c *CohortSimulator) Run(n int, src rand.Source) ([]int, error) {
	if n <= 0 {
		return nil, common.ErrorInvalidCohortSize
	}

	durations := c.duration.SampleN(n, src)
	rates := c.rate.SampleN(n, src)
	conc := c.conc.Sample(src)

	rng := rand.New(src)
	outcomes := make([]int, n)
	for i := 0; i < n; i++ {
		volume := durations[i] * rates[i]
		dose := volume * conc / PerVolumeML
		p, err := c.dr.InfectionProbability(dose)
		if err != nil {
			return nil, err
		}
		if rng.Float64() < p {
			outcomes[i] = 1
		}
	}
	return outcomes, nil
}

// CountInfected reduces a cohort outcome vector to its infected count; only
// the sum survives a trial.
func CountInfected(outcomes []int) int {
	sum := 0
	for _, v := range outcomes {
		sum += v
	}
	return sum
}
