// Package indicator maps observed E. coli indicator counts to simulated risk
// through a static survey table. This is deterministic lookup logic over
// pre-tabulated data; the risk column is supplied externally, not derived
// here.
package indicator

import (
	"math"

	"github.com/aquarisk/campy-qmra/common"
)

// Row pairs one surveyed E. coli percentile with its organism count and the
// risk attributed to that percentile.
type Row struct {
	// Percentile of the E. coli survey distribution, 0-100.
	Percentile float64
	// Count is E. coli per 100 ml at that percentile.
	Count float64
	// Risk is the probability of infection at that percentile, in percent.
	Risk float64
}

// Table interpolates risk against counts.
type Table struct {
	rows []Row
}

// NewTable validates the survey rows: at least two, counts strictly
// increasing, percentiles non-decreasing, everything finite.
func NewTable(rows []Row) (*Table, error) {
	if len(rows) < 2 {
		return nil, common.ErrorInvalidTable
	}
	for i, row := range rows {
		for _, v := range []float64{row.Percentile, row.Count, row.Risk} {
			if math.IsNaN(v) || math.IsInf(v, 0) {
				return nil, common.ErrorInvalidTable
			}
		}
		if row.Percentile < 0 || row.Percentile > 100 {
			return nil, common.ErrorInvalidTable
		}
		if i > 0 {
			if rows[i-1].Count >= row.Count || rows[i-1].Percentile > row.Percentile {
				return nil, common.ErrorInvalidTable
			}
		}
	}
	copied := append([]Row(nil), rows...)
	return &Table{rows: copied}, nil
}

// RiskAtCount interpolates the risk for an observed E. coli count. Counts
// outside the surveyed range clamp to the boundary rows; a count exactly on
// a row returns that row's risk.
func (t *Table) RiskAtCount(count float64) float64 {
	rows := t.rows
	if count <= rows[0].Count {
		return rows[0].Risk
	}
	last := len(rows) - 1
	if count >= rows[last].Count {
		return rows[last].Risk
	}
	for i := 1; i <= last; i++ {
		if rows[i].Count >= count {
			// hits on a surveyed row return the tabulated risk exactly
			if rows[i].Count == count {
				return rows[i].Risk
			}
			lower, upper := rows[i-1], rows[i]
			frac := (count - lower.Count) / (upper.Count - lower.Count)
			return lower.Risk + frac*(upper.Risk-lower.Risk)
		}
	}
	return rows[last].Risk
}

// Rows returns a copy of the table rows.
func (t *Table) Rows() []Row {
	return append([]Row(nil), t.rows...)
}
