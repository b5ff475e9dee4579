// Package dedup collapses an expression table to one record per gene symbol,
// keeping the record with the highest mean expression and breaking exact
// ties with a caller-seeded random draw so that repeated runs reproduce the
// same choice.
package dedup

import (
	"errors"
	"math"
	"math/rand"
	"sort"

	"github.com/jaclyn-taroni/2023-mdibl-fair/exprtable"
)

// ErrNilSource indicates that no seeded random source was provided.
// Tie-breaking without one would not be reproducible.
var ErrNilSource = errors.New("dedup: nil random source")

// Report summarizes one resolution run for auditing.
type Report struct {
	// Groups is the number of distinct symbols seen.
	Groups int

	// TieSymbols lists every symbol whose maximum mean was shared by more
	// than one record, in the order the groups were processed.
	TieSymbols []string

	// NaNDropped counts records whose mean was NaN and therefore never won
	// a comparison against a real-valued record.
	NaNDropped int
}

// Resolve narrows records to exactly one per distinct symbol. Within each
// symbol group the record with the maximal mean survives; exact ties are
// broken by a uniform draw from rng. Groups are processed in sorted symbol
// order, so for a fixed seed and input set the sequence of draws, and
// therefore every tie-break outcome, is identical across runs.
//
// Means are compared under a total order in which NaN is strictly less than
// any real number, so a NaN mean never shadows a real maximum.
func Resolve(records []exprtable.AggregatedRecord, rng *rand.Rand) ([]exprtable.AggregatedRecord, *Report, error) {
	if rng == nil {
		return nil, nil, ErrNilSource
	}

	// Partition by symbol, preserving input order within each group.
	groups := make(map[string][]int)
	for i, rec := range records {
		groups[rec.Symbol] = append(groups[rec.Symbol], i)
	}

	// Canonical processing order. This keeps the draw sequence a pure
	// function of the seed and the input set, independent of map iteration.
	symbols := make([]string, 0, len(groups))
	for symbol := range groups {
		symbols = append(symbols, symbol)
	}
	sort.Strings(symbols)

	report := &Report{Groups: len(symbols)}
	resolved := make([]exprtable.AggregatedRecord, 0, len(symbols))

	for _, symbol := range symbols {
		group := groups[symbol]

		// Pass 1: the maximal mean under the NaN-last total order.
		best := records[group[0]].Mean
		for _, i := range group[1:] {
			if meanLess(best, records[i].Mean) {
				best = records[i].Mean
			}
		}

		// Pass 2: all records achieving it exactly.
		candidates := make([]int, 0, len(group))
		for _, i := range group {
			if meanEqual(records[i].Mean, best) {
				candidates = append(candidates, i)
			} else if math.IsNaN(records[i].Mean) {
				report.NaNDropped++
			}
		}

		pick := candidates[0]
		if len(candidates) > 1 {
			pick = candidates[rng.Intn(len(candidates))]
			report.TieSymbols = append(report.TieSymbols, symbol)
		}

		resolved = append(resolved, records[pick])
	}

	return resolved, report, nil
}

// meanLess orders means with NaN strictly below every real number.
func meanLess(a, b float64) bool {
	switch {
	case math.IsNaN(a):
		return !math.IsNaN(b)
	case math.IsNaN(b):
		return false
	default:
		return a < b
	}
}

// meanEqual treats two NaNs as equal so that an all-NaN group still yields
// exactly one survivor.
func meanEqual(a, b float64) bool {
	if math.IsNaN(a) && math.IsNaN(b) {
		return true
	}
	return a == b
}
