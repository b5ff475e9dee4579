// expr2matrix collapses a bulk RNA-seq expression table to one row per gene
// symbol and writes the resulting symbol-by-sample matrix, ready for PLIER.
// Composite identifiers (Ensembl ID joined to symbol) are split, each row's
// mean expression is computed, and duplicate symbols are resolved by keeping
// the row with the highest mean. Exact ties are broken with a seeded random
// draw so that repeated runs with the same seed reproduce the same matrix.
package main

import (
	"bytes"
	"flag"
	"fmt"
	"io"
	"log"
	"math/rand"
	"os"

	"github.com/aybabtme/uniplot/histogram"
	fair "github.com/jaclyn-taroni/2023-mdibl-fair"
	_ "github.com/jaclyn-taroni/2023-mdibl-fair/compileinfoprint"
	"github.com/jaclyn-taroni/2023-mdibl-fair/dedup"
	"github.com/jaclyn-taroni/2023-mdibl-fair/exprmatrix"
	"github.com/jaclyn-taroni/2023-mdibl-fair/exprtable"
)

func main() {
	var (
		file    string
		out     string
		delim   string
		idDelim string
		seed    int64
		hist    bool
		audit   bool
	)

	flag.StringVar(&file, "file", "", "Path to the expression table. May be gzip/zip/xz/bzip2 compressed. First column is the composite gene identifier; remaining columns are samples.")
	flag.StringVar(&out, "out", "", "Path for the output matrix CSV. If empty, writes to stdout.")
	flag.StringVar(&delim, "delim", "", "Field delimiter of the input table. If empty, it is sniffed from the file.")
	flag.StringVar(&idDelim, "iddelim", "_", "Delimiter joining the stable gene ID to the gene symbol within the identifier column.")
	flag.Int64Var(&seed, "seed", 1234, "Seed for the random source that breaks ties between rows with equal mean expression.")
	flag.BoolVar(&hist, "hist", false, "Print a histogram of per-row mean expression to stderr.")
	flag.BoolVar(&audit, "audit", false, "Log which symbols required a random tie-break.")
	flag.Parse()

	if file == "" {
		flag.PrintDefaults()
		os.Exit(1)
	}

	if err := run(file, out, delim, idDelim, seed, hist, audit); err != nil {
		log.Fatalln(err)
	}
}

func run(file, out, delim, idDelim string, seed int64, hist, audit bool) error {
	f, err := os.Open(fair.ExpandHome(file))
	if err != nil {
		return fmt.Errorf("opening input: %w", err)
	}
	defer f.Close()

	rc, err := fair.MaybeDecompressReadCloserFromFile(f)
	if err != nil {
		return fmt.Errorf("opening input: %w", err)
	}
	defer rc.Close()

	// The whole table is processed in one batch pass, so buffering it also
	// lets the delimiter sniffer and the parser share one read.
	raw, err := io.ReadAll(rc)
	if err != nil {
		return fmt.Errorf("reading input: %w", err)
	}

	comma := []rune(delim)
	if len(comma) == 0 {
		comma = []rune{fair.DetermineDelimiter(bytes.NewReader(raw))}
	}

	table, err := exprtable.ReadTable(bytes.NewReader(raw), comma[0])
	if err != nil {
		return fmt.Errorf("parsing table: %w", err)
	}
	log.Println("Read", len(table.Records), "rows across", len(table.Samples), "samples")

	parsed, err := exprtable.Parse(table.Records, idDelim)
	if err != nil {
		return fmt.Errorf("splitting identifiers: %w", err)
	}

	aggregated, err := exprtable.Aggregate(parsed)
	if err != nil {
		return fmt.Errorf("computing row means: %w", err)
	}

	if hist {
		if err := printMeanHistogram(aggregated); err != nil {
			return fmt.Errorf("plotting mean histogram: %w", err)
		}
	}

	resolved, report, err := dedup.Resolve(aggregated, rand.New(rand.NewSource(seed)))
	if err != nil {
		return fmt.Errorf("resolving duplicates: %w", err)
	}
	log.Println("Resolved", len(table.Records), "rows to", len(resolved), "distinct symbols")

	if audit {
		log.Println(len(report.TieSymbols), "symbols required a random tie-break:", report.TieSymbols)
		if report.NaNDropped > 0 {
			log.Println(report.NaNDropped, "rows with undefined means lost to real-valued rows")
		}
	}

	matrix, err := exprmatrix.Assemble(resolved, table.Samples)
	if err != nil {
		return fmt.Errorf("assembling matrix: %w", err)
	}

	w := io.Writer(os.Stdout)
	if out != "" {
		outFile, err := os.Create(fair.ExpandHome(out))
		if err != nil {
			return fmt.Errorf("creating output: %w", err)
		}
		defer outFile.Close()
		w = outFile
	}

	if err := matrix.WriteCSV(w, ','); err != nil {
		return fmt.Errorf("writing matrix: %w", err)
	}

	return nil
}

func printMeanHistogram(aggregated []exprtable.AggregatedRecord) error {
	means := make([]float64, 0, len(aggregated))
	for _, rec := range aggregated {
		means = append(means, rec.Mean)
	}

	h := histogram.Hist(20, means)

	return histogram.Fprint(os.Stderr, h, histogram.Linear(40))
}
