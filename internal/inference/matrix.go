package inference

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/arjunks/enercast/internal/simulate"
)

// ErrFeatureColumnMismatch is returned when simulated rows lack a column
// the model expects.
var ErrFeatureColumnMismatch = errors.New("feature columns do not match model schema")

// Matrix is the serialized feature input for the model: rows of floats in
// an exact column order, paired with the calendar date each row simulates.
type Matrix struct {
	Columns []string
	Rows    [][]float64
	Dates   []time.Time
}

// Build selects and orders exactly the expected columns from simulated
// rows. When the model exposes no column names, the rows' natural layout is
// used. A missing expected column is a fatal precondition failure; the
// matrix is the seam between simulation and inference and must never
// silently reorder or drop model-required columns.
func Build(rows []simulate.Row, expected []string) (*Matrix, error) {
	if len(expected) == 0 {
		expected = simulate.NaturalColumns()
	}

	m := &Matrix{
		Columns: expected,
		Rows:    make([][]float64, 0, len(rows)),
		Dates:   make([]time.Time, 0, len(rows)),
	}

	for _, row := range rows {
		var missing []string
		vals := make([]float64, len(expected))
		for i, col := range expected {
			v, ok := row.Values[col]
			if !ok {
				missing = append(missing, col)
				continue
			}
			vals[i] = v
		}
		if len(missing) > 0 {
			return nil, fmt.Errorf("%w: missing %s", ErrFeatureColumnMismatch, strings.Join(missing, ", "))
		}
		m.Rows = append(m.Rows, vals)
		m.Dates = append(m.Dates, row.Date)
	}

	return m, nil
}
