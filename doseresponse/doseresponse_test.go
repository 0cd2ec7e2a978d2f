package doseresponse

import (
	"fmt"
	"math"
	"testing"

	"github.com/aquarisk/campy-qmra/common"
	"github.com/aquarisk/campy-qmra/model"
)

func defaultModel(t *testing.T) Model {
	t.Helper()
	m, err := NewModel(model.DoseResponseParams{Alpha: DefaultAlpha, N50: DefaultN50})
	if err != nil {
		t.Fatalf("NewModel failed: %v", err)
	}
	return m
}

func TestInfectionProbabilityKnownPoints(t *testing.T) {
	m := defaultModel(t)

	var tests = []struct {
		dose float64
		want float64
		tol  float64
	}{
		{dose: 0, want: 0, tol: 0},
		// by construction P(N50) is exactly one half
		{dose: DefaultN50, want: 0.5, tol: 1e-12},
	}

	for _, test := range tests {
		t.Run(fmt.Sprint(test.dose), func(t *testing.T) {
			have, err := m.InfectionProbability(test.dose)
			if err != nil {
				t.Fatalf("InfectionProbability(%v) failed: %v", test.dose, err)
			}
			if math.Abs(have-test.want) > test.tol {
				t.Errorf("P(%v) = %v, want %v", test.dose, have, test.want)
			}
		})
	}
}

func TestInfectionProbabilityExactlyZeroAtZeroDose(t *testing.T) {
	m := defaultModel(t)
	p, err := m.InfectionProbability(0)
	if err != nil {
		t.Fatalf("InfectionProbability(0) failed: %v", err)
	}
	if p != 0 {
		t.Fatalf("P(0) = %v, want exactly 0", p)
	}
}

func TestInfectionProbabilityMonotoneAndBounded(t *testing.T) {
	m := defaultModel(t)

	prev := 0.0
	for dose := 1e-6; dose <= 1e7; dose *= 10 {
		p, err := m.InfectionProbability(dose)
		if err != nil {
			t.Fatalf("InfectionProbability(%v) failed: %v", dose, err)
		}
		if p <= 0 || p >= 1 {
			t.Fatalf("P(%v) = %v, want in (0, 1)", dose, p)
		}
		if p < prev {
			t.Fatalf("P(%v) = %v < P at previous dose %v, want non-decreasing", dose, p, prev)
		}
		prev = p
	}
}

func TestInfectionProbabilityRejectsNegativeDose(t *testing.T) {
	m := defaultModel(t)
	if _, err := m.InfectionProbability(-1); err != common.ErrorInvalidDose {
		t.Errorf("InfectionProbability(-1) err = %v, want ErrorInvalidDose", err)
	}
	if _, err := m.InfectionProbability(math.NaN()); err != common.ErrorInvalidDose {
		t.Errorf("InfectionProbability(NaN) err = %v, want ErrorInvalidDose", err)
	}
}

func TestNewModelRejectsBadConstants(t *testing.T) {
	bad := []model.DoseResponseParams{
		{Alpha: -0.1, N50: 896},
		{Alpha: 0.145, N50: -1},
		{Alpha: math.NaN(), N50: 896},
		{Alpha: 0.145, N50: math.Inf(1)},
	}
	for _, params := range bad {
		if _, err := NewModel(params); err != common.ErrorInvalidParameters {
			t.Errorf("NewModel(%+v) err = %v, want ErrorInvalidParameters", params, err)
		}
	}
}

func TestNewModelZeroValueUsesDefaults(t *testing.T) {
	m, err := NewModel(model.DoseResponseParams{})
	if err != nil {
		t.Fatalf("NewModel failed: %v", err)
	}
	if m.Alpha() != DefaultAlpha || m.N50() != DefaultN50 {
		t.Errorf("got alpha=%v n50=%v, want defaults %v, %v",
			m.Alpha(), m.N50(), DefaultAlpha, DefaultN50)
	}
}
