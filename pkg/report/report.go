// Package report renders benchmark results as charts.
package report

import (
	"fmt"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"github.com/gabigabogabu/stl-bench/pkg/bench"
)

// ChamferHistogram writes a histogram of mean normalized chamfer
// distances (reference against generated) across all results.
func ChamferHistogram(results []bench.Result, path string) error {
	if len(results) == 0 {
		return fmt.Errorf("report: no results to plot")
	}

	values := make(plotter.Values, len(results))
	for i, r := range results {
		values[i] = r.Metrics.Chamfer.MeanAB
	}

	plt := plot.New()
	plt.Title.Text = "Chamfer distance (mean, normalized)"
	plt.X.Label.Text = "distance / bounding diagonal"
	plt.Y.Label.Text = "models"

	h, err := plotter.NewHist(values, 16)
	if err != nil {
		return fmt.Errorf("report: building histogram: %w", err)
	}
	plt.Add(h)

	if err := plt.Save(20*vg.Centimeter, 15*vg.Centimeter, path); err != nil {
		return fmt.Errorf("report: saving %s: %w", path, err)
	}
	return nil
}

// ScoreBars writes a per-model bar chart of composite scores.
func ScoreBars(results []bench.Result, path string) error {
	if len(results) == 0 {
		return fmt.Errorf("report: no results to plot")
	}

	values := make(plotter.Values, len(results))
	names := make([]string, len(results))
	for i, r := range results {
		values[i] = r.Score
		names[i] = r.Thing
	}

	plt := plot.New()
	plt.Title.Text = "Composite score by model"
	plt.Y.Label.Text = "score"
	plt.Y.Max = 1

	bars, err := plotter.NewBarChart(values, vg.Points(20))
	if err != nil {
		return fmt.Errorf("report: building bar chart: %w", err)
	}
	plt.Add(bars)
	plt.NominalX(names...)

	if err := plt.Save(20*vg.Centimeter, 15*vg.Centimeter, path); err != nil {
		return fmt.Errorf("report: saving %s: %w", path, err)
	}
	return nil
}
