// Package exprtable parses bulk RNA-seq expression tables into typed records
// whose gene identifiers have been split into a stable Ensembl ID and a
// human-readable symbol, and computes per-record summary statistics.
package exprtable

import "errors"

var (
	// ErrMalformedID indicates a composite gene identifier without the
	// expected delimiter between the stable ID and the symbol.
	ErrMalformedID = errors.New("malformed composite gene identifier")

	// ErrColumnMismatch indicates a row whose value count disagrees with the
	// sample header established at ingestion.
	ErrColumnMismatch = errors.New("sample column count mismatch")

	// ErrEmptyRecord indicates a record with zero sample values, for which
	// the mean is undefined.
	ErrEmptyRecord = errors.New("record has no sample values")
)

// Record is one raw measurement row: a composite identifier (stable ID and
// symbol joined by a delimiter) plus one value per sample column, in the
// fixed column order shared by every record of the table.
type Record struct {
	CompositeID string
	Values      []float64
}

// ParsedRecord is a Record whose composite identifier has been split. The
// original identifier can always be reassembled as EnsemblID + delimiter +
// Symbol.
type ParsedRecord struct {
	EnsemblID string
	Symbol    string
	Values    []float64
}

// AggregatedRecord carries the per-record mean expression across all sample
// columns. Mean is computed once at aggregation time and read thereafter.
type AggregatedRecord struct {
	ParsedRecord
	Mean float64
}
