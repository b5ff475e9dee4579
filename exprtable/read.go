package exprtable

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/carbocation/pfx"
)

// Table is a fully ingested expression table: the fixed sample column order
// from the header row, and one Record per data row.
type Table struct {
	Samples []string
	Records []Record
}

// ReadTable parses a delimited expression table whose first header column
// names the gene identifier and whose remaining header columns name the
// samples. The schema is validated once, here at the ingestion boundary:
// every data row must carry exactly one value per sample column, and every
// value must parse as a float. Any violation aborts the read.
func ReadTable(r io.Reader, delim rune) (*Table, error) {
	cr := csv.NewReader(r)
	cr.Comma = delim
	cr.Comment = '#'

	// Column counts are checked against the header below so that the error
	// can name the offending row's identifier.
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if err != nil {
		return nil, pfx.Err(err)
	}
	if len(header) < 2 {
		return nil, fmt.Errorf("expression table header has %d columns; need an identifier column and at least one sample column", len(header))
	}

	t := &Table{Samples: header[1:]}

	for {
		row, err := cr.Read()
		if err == io.EOF {
			break
		} else if err != nil {
			return nil, pfx.Err(err)
		}

		if len(row) != len(header) {
			return nil, fmt.Errorf("%w: row %q has %d value columns, header has %d", ErrColumnMismatch, row[0], len(row)-1, len(header)-1)
		}

		rec := Record{
			CompositeID: row[0],
			Values:      make([]float64, 0, len(row)-1),
		}
		for i, field := range row[1:] {
			v, err := strconv.ParseFloat(field, 64)
			if err != nil {
				return nil, fmt.Errorf("row %q, sample %q: %w", row[0], t.Samples[i], err)
			}
			rec.Values = append(rec.Values, v)
		}

		t.Records = append(t.Records, rec)
	}

	return t, nil
}
