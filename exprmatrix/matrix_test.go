package exprmatrix

import (
	"bytes"
	"errors"
	"testing"

	"github.com/jaclyn-taroni/2023-mdibl-fair/exprtable"
)

func resolvedRecord(symbol string, values ...float64) exprtable.AggregatedRecord {
	return exprtable.AggregatedRecord{
		ParsedRecord: exprtable.ParsedRecord{
			EnsemblID: "ENSG-" + symbol,
			Symbol:    symbol,
			Values:    values,
		},
	}
}

func TestAssembleShape(t *testing.T) {
	samples := []string{"SRR001", "SRR002", "SRR003"}
	resolved := []exprtable.AggregatedRecord{
		resolvedRecord("DGCR5", 1, 2, 3),
		resolvedRecord("LINC01409", 4, 5, 6),
		resolvedRecord("RABGEF1", 7, 8, 9),
	}

	m, err := Assemble(resolved, samples)
	if err != nil {
		t.Fatal(err)
	}

	if r, c := m.Dims(); r != 3 || c != 3 {
		t.Fatalf("Dims() = (%d, %d), expected (3, 3)", r, c)
	}
	if m.Rows[1] != "LINC01409" || m.Samples[2] != "SRR003" {
		t.Fatalf("unexpected labels: rows %v, samples %v", m.Rows, m.Samples)
	}
	if m.Dense.At(2, 1) != 8 {
		t.Fatalf("At(2, 1) = %v, expected 8", m.Dense.At(2, 1))
	}

	row, err := m.Row("LINC01409")
	if err != nil {
		t.Fatal(err)
	}
	if row[0] != 4 || row[2] != 6 {
		t.Fatalf("Row(LINC01409) = %v", row)
	}
}

func TestAssembleDuplicateSymbolIsInvariantViolation(t *testing.T) {
	samples := []string{"SRR001"}
	resolved := []exprtable.AggregatedRecord{
		resolvedRecord("DGCR5", 1),
		resolvedRecord("DGCR5", 2),
	}

	_, err := Assemble(resolved, samples)
	if !errors.Is(err, ErrDuplicateSymbol) {
		t.Fatalf("error = %v, expected ErrDuplicateSymbol", err)
	}

	// A duplicate symbol is a resolver defect, not an input-data error: it
	// must not be confused with the ingestion error classes.
	if errors.Is(err, exprtable.ErrColumnMismatch) || errors.Is(err, exprtable.ErrMalformedID) {
		t.Fatalf("duplicate-symbol error overlaps an input error class: %v", err)
	}
}

func TestAssembleColumnMismatch(t *testing.T) {
	samples := []string{"SRR001", "SRR002"}
	resolved := []exprtable.AggregatedRecord{
		resolvedRecord("DGCR5", 1),
	}

	if _, err := Assemble(resolved, samples); !errors.Is(err, exprtable.ErrColumnMismatch) {
		t.Fatalf("error = %v, expected ErrColumnMismatch", err)
	}
}

func TestCSVRoundTrip(t *testing.T) {
	samples := []string{"SRR001", "SRR002"}
	resolved := []exprtable.AggregatedRecord{
		resolvedRecord("DGCR5", 1.25, -2),
		resolvedRecord("RABGEF1", 0, 3e-7),
	}

	m, err := Assemble(resolved, samples)
	if err != nil {
		t.Fatal(err)
	}

	var buf bytes.Buffer
	if err := m.WriteCSV(&buf, ','); err != nil {
		t.Fatal(err)
	}

	back, err := ReadCSV(&buf, ',')
	if err != nil {
		t.Fatal(err)
	}

	if len(back.Rows) != 2 || back.Rows[0] != "DGCR5" {
		t.Fatalf("unexpected rows after round trip: %v", back.Rows)
	}
	if back.Dense.At(0, 1) != -2 || back.Dense.At(1, 1) != 3e-7 {
		t.Fatalf("values did not survive the round trip: %+v", back.Dense)
	}
}

func TestMelt(t *testing.T) {
	samples := []string{"SRR001", "SRR002"}
	resolved := []exprtable.AggregatedRecord{
		resolvedRecord("LV1", 0.5, -0.5),
		resolvedRecord("LV2", 1.5, 2.5),
	}

	m, err := Assemble(resolved, samples)
	if err != nil {
		t.Fatal(err)
	}

	labels := map[string]string{"SRR001": "vehicle", "SRR002": "treated"}

	obs, err := m.Melt(labels)
	if err != nil {
		t.Fatal(err)
	}
	if len(obs) != 4 {
		t.Fatalf("expected 4 observations, got %d", len(obs))
	}

	row, err := m.MeltRow("LV2", labels)
	if err != nil {
		t.Fatal(err)
	}
	if len(row) != 2 || row[1].Value != 2.5 || row[1].Label != "treated" {
		t.Fatalf("unexpected LV2 observations: %+v", row)
	}
}

func TestMeltMissingLabel(t *testing.T) {
	samples := []string{"SRR001", "SRR002"}
	resolved := []exprtable.AggregatedRecord{
		resolvedRecord("LV1", 0.5, -0.5),
	}

	m, err := Assemble(resolved, samples)
	if err != nil {
		t.Fatal(err)
	}

	if _, err := m.Melt(map[string]string{"SRR001": "vehicle"}); err == nil {
		t.Fatal("expected an error for a sample without metadata")
	}
}
