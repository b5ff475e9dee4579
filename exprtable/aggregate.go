package exprtable

import (
	"fmt"

	"github.com/montanaflynn/stats"
)

// Mean returns the arithmetic mean of the record's sample values. A record
// with zero values has no defined mean and is an error, never a zero.
func Mean(values []float64) (float64, error) {
	if len(values) == 0 {
		return 0, ErrEmptyRecord
	}

	return stats.Mean(values)
}

// Aggregate computes the mean expression for every parsed record. The means
// drive duplicate resolution downstream; a record that cannot be aggregated
// aborts the batch, naming the record's symbol.
func Aggregate(records []ParsedRecord) ([]AggregatedRecord, error) {
	out := make([]AggregatedRecord, 0, len(records))
	for _, rec := range records {
		m, err := Mean(rec.Values)
		if err != nil {
			return nil, fmt.Errorf("aggregating %s (%s): %w", rec.Symbol, rec.EnsemblID, err)
		}

		out = append(out, AggregatedRecord{ParsedRecord: rec, Mean: m})
	}

	return out, nil
}
