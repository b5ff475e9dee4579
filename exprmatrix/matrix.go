// Package exprmatrix assembles resolved expression records into a dense,
// labeled matrix (gene symbol rows, sample columns) and reshapes matrices
// into the long format consumed by plotting tools.
package exprmatrix

import (
	"errors"
	"fmt"

	"github.com/jaclyn-taroni/2023-mdibl-fair/exprtable"
	"gonum.org/v1/gonum/mat"
)

// ErrDuplicateSymbol indicates that two resolved records share a symbol.
// This is a defect in duplicate resolution, not bad input data, and it is
// kept distinguishable from input errors for exactly that reason.
var ErrDuplicateSymbol = errors.New("duplicate symbol after resolution")

// Matrix is a dense numeric matrix with row and column labels. Rows are
// unique gene symbols (or latent variable identifiers, for factorization
// outputs); columns are sample identifiers in the order established at
// ingestion.
type Matrix struct {
	Rows    []string
	Samples []string
	Dense   *mat.Dense

	rowIndex map[string]int
}

// Assemble builds the symbol-by-sample expression matrix from the resolved
// record set. Each record must carry one value per sample column.
func Assemble(resolved []exprtable.AggregatedRecord, samples []string) (*Matrix, error) {
	m := &Matrix{
		Rows:     make([]string, 0, len(resolved)),
		Samples:  samples,
		rowIndex: make(map[string]int, len(resolved)),
	}

	data := make([]float64, 0, len(resolved)*len(samples))
	for _, rec := range resolved {
		if _, exists := m.rowIndex[rec.Symbol]; exists {
			return nil, fmt.Errorf("%w: %q", ErrDuplicateSymbol, rec.Symbol)
		}
		if len(rec.Values) != len(samples) {
			return nil, fmt.Errorf("%w: row %q has %d values, expected %d", exprtable.ErrColumnMismatch, rec.Symbol, len(rec.Values), len(samples))
		}

		m.rowIndex[rec.Symbol] = len(m.Rows)
		m.Rows = append(m.Rows, rec.Symbol)
		data = append(data, rec.Values...)
	}

	if len(m.Rows) == 0 {
		return nil, errors.New("no resolved records to assemble")
	}

	m.Dense = mat.NewDense(len(m.Rows), len(samples), data)

	return m, nil
}

// Row returns the values for the named row, or an error if the row label is
// unknown.
func (m *Matrix) Row(label string) ([]float64, error) {
	i, exists := m.index(label)
	if !exists {
		return nil, fmt.Errorf("no row labeled %q", label)
	}

	return mat.Row(nil, i, m.Dense), nil
}

// Dims returns the row and column counts.
func (m *Matrix) Dims() (r, c int) {
	return m.Dense.Dims()
}

func (m *Matrix) index(label string) (int, bool) {
	if m.rowIndex == nil {
		m.rowIndex = make(map[string]int, len(m.Rows))
		for i, row := range m.Rows {
			m.rowIndex[row] = i
		}
	}

	i, exists := m.rowIndex[label]
	return i, exists
}
