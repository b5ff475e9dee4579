package exprmatrix

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/carbocation/pfx"
	"gonum.org/v1/gonum/mat"
)

// WriteCSV writes the matrix as a delimited table: a header row of "symbol"
// plus the sample identifiers, then one row per matrix row. This is the
// hand-off format for the external factorization step.
func (m *Matrix) WriteCSV(w io.Writer, delim rune) error {
	cw := csv.NewWriter(w)
	cw.Comma = delim

	header := append([]string{"symbol"}, m.Samples...)
	if err := cw.Write(header); err != nil {
		return pfx.Err(err)
	}

	_, cols := m.Dense.Dims()
	line := make([]string, cols+1)
	for i, label := range m.Rows {
		line[0] = label
		for j := 0; j < cols; j++ {
			line[j+1] = strconv.FormatFloat(m.Dense.At(i, j), 'g', -1, 64)
		}
		if err := cw.Write(line); err != nil {
			return pfx.Err(err)
		}
	}

	cw.Flush()
	if err := cw.Error(); err != nil {
		return pfx.Err(err)
	}

	return nil
}

// ReadCSV reads a matrix previously written by WriteCSV, or any table of
// the same shape (label column followed by numeric columns), such as the
// latent-variable-by-sample matrix returned by factorization.
func ReadCSV(r io.Reader, delim rune) (*Matrix, error) {
	cr := csv.NewReader(r)
	cr.Comma = delim

	rows, err := cr.ReadAll()
	if err != nil {
		return nil, pfx.Err(err)
	}
	if len(rows) < 2 {
		return nil, fmt.Errorf("matrix table has %d rows; need a header and at least one data row", len(rows))
	}

	m := &Matrix{
		Samples:  rows[0][1:],
		rowIndex: make(map[string]int, len(rows)-1),
	}

	data := make([]float64, 0, (len(rows)-1)*len(m.Samples))
	for _, row := range rows[1:] {
		if _, exists := m.rowIndex[row[0]]; exists {
			return nil, fmt.Errorf("%w: %q", ErrDuplicateSymbol, row[0])
		}

		m.rowIndex[row[0]] = len(m.Rows)
		m.Rows = append(m.Rows, row[0])
		for j, field := range row[1:] {
			v, err := strconv.ParseFloat(field, 64)
			if err != nil {
				return nil, fmt.Errorf("row %q, column %q: %w", row[0], m.Samples[j], err)
			}
			data = append(data, v)
		}
	}

	m.Dense = mat.NewDense(len(m.Rows), len(m.Samples), data)

	return m, nil
}
