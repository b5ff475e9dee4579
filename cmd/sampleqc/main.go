// sampleqc flags suspicious samples in an expression table before
// factorization: samples whose library size (sum of all gene values) falls
// beyond N standard deviations of the mean across samples.
package main

import (
	"bytes"
	"encoding/csv"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"strconv"

	"github.com/gonum/stat"

	fair "github.com/jaclyn-taroni/2023-mdibl-fair"
	_ "github.com/jaclyn-taroni/2023-mdibl-fair/compileinfoprint"
	"github.com/jaclyn-taroni/2023-mdibl-fair/exprtable"
)

func main() {
	var (
		file  string
		delim string
		sd    float64
	)

	flag.StringVar(&file, "file", "", "Path to the expression table. May be compressed.")
	flag.StringVar(&delim, "delim", "", "Field delimiter of the input table. If empty, it is sniffed from the file.")
	flag.Float64Var(&sd, "sd", 5.0, "Flag samples whose library size is beyond this many standard deviations of the mean.")
	flag.Parse()

	if file == "" {
		flag.PrintDefaults()
		os.Exit(1)
	}

	if err := run(file, delim, sd); err != nil {
		log.Fatalln(err)
	}
}

func run(file, delim string, sd float64) error {
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

	// Pass 1: library size per sample.
	sizes := make([]float64, len(table.Samples))
	for _, rec := range table.Records {
		for j, v := range rec.Values {
			sizes[j] += v
		}
	}

	m, s := stat.MeanStdDev(sizes, nil)
	log.Printf("Library size mean %.1f, SD %.1f across %d samples\n", m, s, len(sizes))

	// Pass 2: flag samples beyond the bounds.
	w := csv.NewWriter(os.Stdout)
	defer w.Flush()

	w.Write([]string{"sample", "library_size", "flag"})
	flagged := 0
	for j, sample := range table.Samples {
		why := ""
		if sizes[j] < m-sd*s || sizes[j] > m+sd*s {
			why = "LibrarySize"
			flagged++
		}
		w.Write([]string{sample, strconv.FormatFloat(sizes[j], 'f', 1, 64), why})
	}

	log.Println(flagged, "of", len(table.Samples), "samples flagged")

	return nil
}
