package exprtable

import (
	"encoding/csv"
	"fmt"
	"io"

	"github.com/carbocation/pfx"
	"github.com/gocarina/gocsv"
)

// SampleMetadata is one row of the sample metadata table: a sample
// identifier and its categorical label (tissue, treatment arm, etc).
type SampleMetadata struct {
	Sample string `csv:"refinebio_accession_code"`
	Label  string `csv:"refinebio_treatment"`
}

// ReadMetadata reads a tab-delimited sample metadata table and returns the
// sample -> label mapping consumed by the plotting tools. Samples appearing
// more than once are an error.
func ReadMetadata(r io.Reader) (map[string]string, error) {
	gocsv.SetCSVReader(func(in io.Reader) gocsv.CSVReader {
		cr := csv.NewReader(in)
		cr.Comma = '\t'
		cr.LazyQuotes = true
		return cr
	})

	rows := []*SampleMetadata{}
	if err := gocsv.Unmarshal(r, &rows); err != nil {
		return nil, pfx.Err(err)
	}

	labels := make(map[string]string, len(rows))
	for _, row := range rows {
		if _, exists := labels[row.Sample]; exists {
			return nil, fmt.Errorf("metadata lists sample %q more than once", row.Sample)
		}
		labels[row.Sample] = row.Label
	}

	return labels, nil
}
