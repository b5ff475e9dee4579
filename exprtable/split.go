package exprtable

import (
	"fmt"
	"strings"
)

// SplitID splits a composite gene identifier into its stable Ensembl ID and
// its gene symbol. Only the first occurrence of delim is a split point;
// symbols containing the delimiter themselves (e.g. "ENSG..._RP11-34P13.7"
// style composites with underscored symbols) keep everything after the first
// occurrence. An identifier without the delimiter is malformed.
func SplitID(id, delim string) (ensemblID, symbol string, err error) {
	idx := strings.Index(id, delim)
	if idx < 0 {
		return "", "", fmt.Errorf("%w: %q contains no %q", ErrMalformedID, id, delim)
	}

	ensemblID = id[:idx]
	symbol = id[idx+len(delim):]

	if symbol == "" {
		return "", "", fmt.Errorf("%w: %q has an empty symbol", ErrMalformedID, id)
	}

	return ensemblID, symbol, nil
}

// Parse splits the composite identifier of every record, discarding nothing:
// the stable ID is retained alongside the symbol even though downstream
// grouping happens on the symbol alone.
func Parse(records []Record, delim string) ([]ParsedRecord, error) {
	out := make([]ParsedRecord, 0, len(records))
	for _, rec := range records {
		ensemblID, symbol, err := SplitID(rec.CompositeID, delim)
		if err != nil {
			return nil, err
		}

		out = append(out, ParsedRecord{
			EnsemblID: ensemblID,
			Symbol:    symbol,
			Values:    rec.Values,
		})
	}

	return out, nil
}
