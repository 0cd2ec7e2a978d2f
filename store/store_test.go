package store

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/aquarisk/campy-qmra/model"
)

func testResult() *model.AssessmentResult {
	return &model.AssessmentResult{
		Outcomes: []float64{3, 5, 2, 8, 4},
		Summary: model.RiskSummary{
			Mean:   4.4,
			StdDev: 2.3,
			Quantiles: []model.QuantileValue{
				{Quantile: 0, Value: 2},
				{Quantile: 0.5, Value: 4},
				{Quantile: 1, Value: 8},
			},
		},
	}
}

func TestSaveAndLoadRunRoundTrip(t *testing.T) {
	st, err := Open(filepath.Join(t.TempDir(), "qmra.db"))
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	defer st.Close()

	cfg := model.DefaultConfig()
	cfg.TrialCount = 5

	ctx := context.Background()
	runID, err := st.SaveRun(ctx, cfg, testResult())
	if err != nil {
		t.Fatalf("SaveRun failed: %v", err)
	}

	loaded, err := st.LoadRun(ctx, runID)
	if err != nil {
		t.Fatalf("LoadRun failed: %v", err)
	}

	want := testResult()
	if len(loaded.Outcomes) != len(want.Outcomes) {
		t.Fatalf("got %d outcomes, want %d", len(loaded.Outcomes), len(want.Outcomes))
	}
	for i := range want.Outcomes {
		if loaded.Outcomes[i] != want.Outcomes[i] {
			t.Errorf("outcome %d = %v, want %v", i, loaded.Outcomes[i], want.Outcomes[i])
		}
	}
	if loaded.Summary.Mean != want.Summary.Mean {
		t.Errorf("mean = %v, want %v", loaded.Summary.Mean, want.Summary.Mean)
	}
	if len(loaded.Summary.Quantiles) != len(want.Summary.Quantiles) {
		t.Fatalf("got %d quantiles, want %d",
			len(loaded.Summary.Quantiles), len(want.Summary.Quantiles))
	}
	if q, ok := loaded.Summary.GetQuantileValue(0.5); !ok || q.Value != 4 {
		t.Errorf("median = %v (ok=%v), want 4", q.Value, ok)
	}
}

func TestLoadRunMissingID(t *testing.T) {
	st, err := Open(filepath.Join(t.TempDir(), "qmra.db"))
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	defer st.Close()

	if _, err := st.LoadRun(context.Background(), 12345); err == nil {
		t.Fatal("want error for unknown run id")
	}
}

func TestListRuns(t *testing.T) {
	st, err := Open(filepath.Join(t.TempDir(), "qmra.db"))
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	defer st.Close()

	ctx := context.Background()
	cfg := model.DefaultConfig()
	cfg.TrialCount = 5

	if _, err := st.SaveRun(ctx, cfg, testResult()); err != nil {
		t.Fatalf("SaveRun failed: %v", err)
	}
	cfg.Seed = 7
	if _, err := st.SaveRun(ctx, cfg, testResult()); err != nil {
		t.Fatalf("SaveRun failed: %v", err)
	}

	infos, err := st.ListRuns(ctx)
	if err != nil {
		t.Fatalf("ListRuns failed: %v", err)
	}
	if len(infos) != 2 {
		t.Fatalf("got %d runs, want 2", len(infos))
	}
	for _, info := range infos {
		if info.TrialCount != 5 || info.CohortSize != cfg.CohortSize {
			t.Errorf("unexpected run info: %+v", info)
		}
	}
}
