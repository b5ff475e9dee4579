package plier

import (
	"sort"

	"github.com/jaclyn-taroni/2023-mdibl-fair/exprmatrix"
)

// SummaryRow is one pathway/latent-variable association from the
// factorization summary: the prior gene set, the latent variable it loaded
// onto, and the cross-validated AUC, p-value, and FDR for that association.
type SummaryRow struct {
	Pathway string
	LV      string
	AUC     float64
	PValue  float64
	FDR     float64
}

// Result is everything the external factorization hands back: Z, the gene
// by latent variable loadings; B, the latent variable by sample values; U,
// the sparse prior set by latent variable associations; and the per-pair
// summary statistics.
type Result struct {
	Loadings   *exprmatrix.Matrix // Z: gene x LV
	LVBySample *exprmatrix.Matrix // B: LV x sample
	U          *exprmatrix.Matrix // gene set x LV
	Summary    []SummaryRow
}

// Factorizer decomposes an expression matrix against a prior. The concrete
// implementation (the PLIER package itself) lives outside this repository;
// tools here only prepare its inputs and reshape its outputs.
type Factorizer interface {
	Decompose(expr *exprmatrix.Matrix, prior *Prior) (*Result, error)
}

// SignificantPathways returns the summary rows at or below maxFDR, sorted
// by ascending FDR and then by pathway name for a stable listing.
func (r *Result) SignificantPathways(maxFDR float64) []SummaryRow {
	out := make([]SummaryRow, 0, len(r.Summary))
	for _, row := range r.Summary {
		if row.FDR <= maxFDR {
			out = append(out, row)
		}
	}

	sort.Slice(out, func(i, j int) bool {
		if out[i].FDR != out[j].FDR {
			return out[i].FDR < out[j].FDR
		}
		return out[i].Pathway < out[j].Pathway
	})

	return out
}

// LVSeries melts one latent variable's per-sample values into long format
// with metadata labels attached, ready for plotting.
func (r *Result) LVSeries(lv string, labels map[string]string) ([]exprmatrix.Observation, error) {
	return r.LVBySample.MeltRow(lv, labels)
}
