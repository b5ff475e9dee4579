// lvplot renders one latent variable's per-sample values as a scatter plot
// grouped by a categorical metadata label (e.g. treatment), for eyeballing
// whether a PLIER latent variable separates the groups.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"sort"

	chart "github.com/wcharczuk/go-chart/v2"

	fair "github.com/jaclyn-taroni/2023-mdibl-fair"
	_ "github.com/jaclyn-taroni/2023-mdibl-fair/compileinfoprint"
	"github.com/jaclyn-taroni/2023-mdibl-fair/exprmatrix"
	"github.com/jaclyn-taroni/2023-mdibl-fair/exprtable"
)

func main() {
	var (
		bFile    string
		metaFile string
		lv       string
		out      string
	)

	flag.StringVar(&bFile, "b", "", "Path to the latent-variable-by-sample matrix CSV (the B matrix from PLIER).")
	flag.StringVar(&metaFile, "meta", "", "Path to the tab-delimited sample metadata table.")
	flag.StringVar(&lv, "lv", "", "Latent variable row to plot.")
	flag.StringVar(&out, "out", "lv.png", "Output PNG path.")
	flag.Parse()

	if bFile == "" || metaFile == "" || lv == "" {
		flag.PrintDefaults()
		os.Exit(1)
	}

	if err := run(bFile, metaFile, lv, out); err != nil {
		log.Fatalln(err)
	}
}

func run(bFile, metaFile, lv, out string) error {
	bf, err := os.Open(fair.ExpandHome(bFile))
	if err != nil {
		return fmt.Errorf("opening B matrix: %w", err)
	}
	defer bf.Close()

	b, err := exprmatrix.ReadCSV(bf, ',')
	if err != nil {
		return fmt.Errorf("parsing B matrix: %w", err)
	}

	mf, err := os.Open(fair.ExpandHome(metaFile))
	if err != nil {
		return fmt.Errorf("opening metadata: %w", err)
	}
	defer mf.Close()

	labels, err := exprtable.ReadMetadata(mf)
	if err != nil {
		return fmt.Errorf("parsing metadata: %w", err)
	}

	obs, err := b.MeltRow(lv, labels)
	if err != nil {
		return fmt.Errorf("reshaping %s: %w", lv, err)
	}

	graph := buildChart(lv, obs)

	of, err := os.Create(fair.ExpandHome(out))
	if err != nil {
		return fmt.Errorf("creating output: %w", err)
	}
	defer of.Close()

	if err := graph.Render(chart.PNG, of); err != nil {
		return fmt.Errorf("rendering chart: %w", err)
	}

	log.Println("Wrote", out)

	return nil
}

// buildChart positions each metadata label at an integer x coordinate and
// scatters that label's per-sample values above it.
func buildChart(lv string, obs []exprmatrix.Observation) *chart.Chart {
	byLabel := make(map[string][]float64)
	for _, o := range obs {
		byLabel[o.Label] = append(byLabel[o.Label], o.Value)
	}

	labels := make([]string, 0, len(byLabel))
	for label := range byLabel {
		labels = append(labels, label)
	}
	sort.Strings(labels)

	series := make([]chart.Series, 0, len(labels))
	ticks := make([]chart.Tick, 0, len(labels)+2)
	ticks = append(ticks, chart.Tick{Value: 0, Label: ""})

	for i, label := range labels {
		values := byLabel[label]
		xs := make([]float64, len(values))
		for j := range xs {
			xs[j] = float64(i + 1)
		}

		series = append(series, chart.ContinuousSeries{
			Name: label,
			Style: chart.Style{
				StrokeWidth: chart.Disabled,
				DotWidth:    5,
				DotColor:    chart.GetDefaultColor(i),
			},
			XValues: xs,
			YValues: values,
		})
		ticks = append(ticks, chart.Tick{Value: float64(i + 1), Label: label})
	}
	ticks = append(ticks, chart.Tick{Value: float64(len(labels) + 1), Label: ""})

	graph := &chart.Chart{
		Title: lv,
		XAxis: chart.XAxis{
			Ticks: ticks,
		},
		YAxis: chart.YAxis{
			Name: "LV value",
		},
		Series: series,
	}

	return graph
}
