package concentration

import (
	"testing"

	"golang.org/x/exp/rand"

	"github.com/aquarisk/campy-qmra/common"
)

var referenceBreaks = []float64{0, 0.3, 1.2, 4.2, 28.8, 110, 2000}

func TestNewBinTableBuildsContiguousBins(t *testing.T) {
	table, err := NewBinTable(referenceBreaks)
	if err != nil {
		t.Fatalf("NewBinTable failed: %v", err)
	}
	if len(table) != 6 {
		t.Fatalf("got %d bins, want 6", len(table))
	}
	for i, bin := range table {
		if bin.Index != i {
			t.Errorf("bin %d has index %d", i, bin.Index)
		}
		if bin.Lower != referenceBreaks[i] || bin.Upper != referenceBreaks[i+1] {
			t.Errorf("bin %d = [%v, %v), want [%v, %v)",
				i, bin.Lower, bin.Upper, referenceBreaks[i], referenceBreaks[i+1])
		}
	}
	if table.Max() != 2000 {
		t.Errorf("table.Max() = %v, want 2000", table.Max())
	}
}

func TestNewBinTableRejectsBadBreaks(t *testing.T) {
	bad := [][]float64{
		nil,
		{0},
		{0, 0.3, 0.3},
		{0, 1.2, 0.3},
	}
	for _, breaks := range bad {
		if _, err := NewBinTable(breaks); err != common.ErrorInvalidBinTable {
			t.Errorf("NewBinTable(%v) err = %v, want ErrorInvalidBinTable", breaks, err)
		}
	}
}

func TestValidateCatchesGapsAndOverlaps(t *testing.T) {
	gap := BinTable{
		{Index: 0, Lower: 0, Upper: 1},
		{Index: 1, Lower: 2, Upper: 3},
	}
	if err := gap.Validate(); err != common.ErrorInvalidBinTable {
		t.Errorf("gap table err = %v, want ErrorInvalidBinTable", err)
	}

	overlap := BinTable{
		{Index: 0, Lower: 0, Upper: 2},
		{Index: 1, Lower: 1, Upper: 3},
	}
	if err := overlap.Validate(); err != common.ErrorInvalidBinTable {
		t.Errorf("overlap table err = %v, want ErrorInvalidBinTable", err)
	}

	badIndex := BinTable{
		{Index: 1, Lower: 0, Upper: 1},
	}
	if err := badIndex.Validate(); err != common.ErrorInvalidBinTable {
		t.Errorf("bad index table err = %v, want ErrorInvalidBinTable", err)
	}
}

func TestNewSamplerRejectsBadSuccessProbability(t *testing.T) {
	table, err := NewBinTable(referenceBreaks)
	if err != nil {
		t.Fatalf("NewBinTable failed: %v", err)
	}
	for _, p := range []float64{0, 1, -0.1, 1.5} {
		if _, err := NewSampler(table, p); err != common.ErrorInvalidParameters {
			t.Errorf("NewSampler(p=%v) err = %v, want ErrorInvalidParameters", p, err)
		}
	}
}

func TestSampleStaysWithinOuterBounds(t *testing.T) {
	table, err := NewBinTable(referenceBreaks)
	if err != nil {
		t.Fatalf("NewBinTable failed: %v", err)
	}
	sampler, err := NewSampler(table, 0.42531)
	if err != nil {
		t.Fatalf("NewSampler failed: %v", err)
	}

	src := rand.NewSource(3)
	for i := 0; i < 20000; i++ {
		v := sampler.Sample(src)
		if v < 0 || v >= 2000 {
			t.Fatalf("sample %d = %v outside [0, 2000)", i, v)
		}
	}
}

func TestSampleDeterministicForSeed(t *testing.T) {
	table, err := NewBinTable(referenceBreaks)
	if err != nil {
		t.Fatalf("NewBinTable failed: %v", err)
	}
	sampler, err := NewSampler(table, 0.42531)
	if err != nil {
		t.Fatalf("NewSampler failed: %v", err)
	}

	firstSrc, secondSrc := rand.NewSource(99), rand.NewSource(99)
	for i := 0; i < 100; i++ {
		first, second := sampler.Sample(firstSrc), sampler.Sample(secondSrc)
		if first != second {
			t.Fatalf("draw %d differs for identical seeds: %v != %v", i, first, second)
		}
	}
}

func TestSampleMassLeansTowardLowBins(t *testing.T) {
	table, err := NewBinTable(referenceBreaks)
	if err != nil {
		t.Fatalf("NewBinTable failed: %v", err)
	}
	sampler, err := NewSampler(table, 0.42531)
	if err != nil {
		t.Fatalf("NewSampler failed: %v", err)
	}

	src := rand.NewSource(5)
	const draws = 50000
	low := 0
	for i := 0; i < draws; i++ {
		if sampler.Sample(src) < 0.3 {
			low++
		}
	}
	// p = 0.42531 puts that share of mass in the first bin
	frac := float64(low) / draws
	if frac < 0.40 || frac > 0.45 {
		t.Errorf("first-bin fraction = %v, want near 0.425", frac)
	}
}
