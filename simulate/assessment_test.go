package simulate

import (
	"context"
	"testing"

	"github.com/aquarisk/campy-qmra/model"
)

// Reference scenario: duration PERT (0.25, 0.5, 2) h, ingestion rate PERT
// (10, 50, 100) ml/h, the published bin breaks and dose-response constants,
// cohort 1000. The median infected count per trial should sit in single
// digits, with low double digits only far out in the upper tail.
func TestRunAssessmentReferenceScenario(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping full assessment in short mode")
	}

	cfg := model.DefaultConfig()
	cfg.TrialCount = 3000

	res, err := RunAssessment(context.Background(), cfg, RunOptions{})
	if err != nil {
		t.Fatalf("RunAssessment failed: %v", err)
	}
	if len(res.Outcomes) != cfg.TrialCount {
		t.Fatalf("got %d outcomes, want %d", len(res.Outcomes), cfg.TrialCount)
	}
	for i, v := range res.Outcomes {
		if v < 0 || v > float64(cfg.CohortSize) {
			t.Fatalf("trial %d outcome = %v outside [0, %d]", i, v, cfg.CohortSize)
		}
	}

	median, ok := res.Summary.GetQuantileValue(0.5)
	if !ok {
		t.Fatal("summary missing the median")
	}
	if median.Value < 0 || median.Value > 40 {
		t.Errorf("median infected = %v, want low counts", median.Value)
	}

	upper, ok := res.Summary.GetQuantileValue(0.975)
	if !ok {
		t.Fatal("summary missing the 97.5th percentile")
	}
	if upper.Value < median.Value {
		t.Errorf("q(0.975) = %v below median %v", upper.Value, median.Value)
	}

	maxOut, ok := res.Summary.GetQuantileValue(1)
	if !ok {
		t.Fatal("summary missing the maximum")
	}
	if maxOut.Value > float64(cfg.CohortSize) {
		t.Errorf("max infected = %v exceeds cohort size", maxOut.Value)
	}
}

func TestRunAssessmentSurfacesConfigErrors(t *testing.T) {
	cfg := model.DefaultConfig()
	cfg.TrialCount = -1
	if _, err := RunAssessment(context.Background(), cfg, RunOptions{}); err == nil {
		t.Fatal("want error for negative trial count")
	}

	// a failed configuration must not poison later ones
	cfg = model.DefaultConfig()
	cfg.CohortSize = 20
	cfg.TrialCount = 50
	if _, err := RunAssessment(context.Background(), cfg, RunOptions{}); err != nil {
		t.Fatalf("valid follow-up run failed: %v", err)
	}
}
