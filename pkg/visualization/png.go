package visualization

import (
	"fmt"
	"os"

	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"github.com/brianbland/gasrisk/pkg/analysis"
	"github.com/brianbland/gasrisk/pkg/risk"
)

var histogramFill = drawing.Color{R: 76, G: 175, B: 80, A: 150}

// GenerateSeriesChart plots the simulated base fees and their windowed maxima
func (g *Generator) GenerateSeriesChart(r *analysis.Result, filename string) error {
	data := g.prepareSeries(r)

	graph := chart.Chart{
		Title:  fmt.Sprintf("Simulated Gas Prices (Blocks %d-%d)", r.Config.Series.StartBlock, r.Config.Series.EndBlock),
		Width:  defaultChartOptions.Width,
		Height: defaultChartOptions.Height,
		Background: chart.Style{
			Padding: chart.Box{
				Top:    40,
				Left:   40,
				Right:  40,
				Bottom: 40,
			},
		},
		XAxis: chart.XAxis{
			Name: "Block Number",
		},
		YAxis: chart.YAxis{
			Name: "Base Fee (Gwei)",
		},
		Series: []chart.Series{
			chart.ContinuousSeries{
				Name:    "Gas Price",
				XValues: data.Blocks,
				YValues: data.Fees,
				Style: chart.Style{
					StrokeColor: chart.ColorBlue,
					StrokeWidth: 1,
				},
			},
			chart.ContinuousSeries{
				Name:    fmt.Sprintf("Max Gas Price (%d blocks)", r.CoveragePeriod),
				XValues: data.MaximaBlocks,
				YValues: data.Maxima,
				Style: chart.Style{
					StrokeColor: chart.ColorRed,
					StrokeWidth: 2,
				},
			},
		},
	}

	graph.Elements = []chart.Renderable{
		chart.LegendThin(&graph),
	}

	return renderPNG(&graph, filename)
}

// GenerateFitChart plots the density histogram of the maxima with the
// fitted GEV density on top
func (g *Generator) GenerateFitChart(r *analysis.Result, filename string) error {
	if len(r.Histogram) == 0 || len(r.Curve) == 0 {
		return fmt.Errorf("result has no histogram or density curve to plot")
	}

	histX, histY := histogramSteps(r.Histogram)
	curveX, curveY := curveValues(r.Curve)

	graph := chart.Chart{
		Title:  "Max Gas Price Distribution and Fitted GEV",
		Width:  defaultChartOptions.Width,
		Height: defaultChartOptions.Height,
		Background: chart.Style{
			Padding: chart.Box{
				Top:    40,
				Left:   40,
				Right:  40,
				Bottom: 40,
			},
		},
		XAxis: chart.XAxis{
			Name: "Max Gas Price (Gwei)",
		},
		YAxis: chart.YAxis{
			Name: "Density",
		},
		Series: []chart.Series{
			chart.ContinuousSeries{
				Name:    "Max Gas Prices",
				XValues: histX,
				YValues: histY,
				Style: chart.Style{
					StrokeColor: histogramFill,
					StrokeWidth: 1,
					FillColor:   histogramFill,
				},
			},
			chart.ContinuousSeries{
				Name: fmt.Sprintf("GEV fit (xi=%.3f, loc=%.2f, scale=%.2f)",
					r.GEV.Shape, r.GEV.Loc, r.GEV.Scale),
				XValues: curveX,
				YValues: curveY,
				Style: chart.Style{
					StrokeColor: chart.ColorRed,
					StrokeWidth: 2,
				},
			},
		},
	}

	graph.Elements = []chart.Renderable{
		chart.LegendThin(&graph),
	}

	return renderPNG(&graph, filename)
}

func renderPNG(graph *chart.Chart, filename string) error {
	file, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}
	defer file.Close()

	if err := graph.Render(chart.PNG, file); err != nil {
		return fmt.Errorf("failed to render chart: %w", err)
	}
	return nil
}

// histogramSteps outlines the bars as a step function so that a filled
// line series draws them.
func histogramSteps(bins []risk.Bin) ([]float64, []float64) {
	xs := make([]float64, 0, 2*len(bins)+2)
	ys := make([]float64, 0, 2*len(bins)+2)

	xs = append(xs, bins[0].Lower)
	ys = append(ys, 0)
	for _, b := range bins {
		xs = append(xs, b.Lower, b.Upper)
		ys = append(ys, b.Density, b.Density)
	}
	xs = append(xs, bins[len(bins)-1].Upper)
	ys = append(ys, 0)
	return xs, ys
}

func curveValues(points []risk.Point) ([]float64, []float64) {
	xs := make([]float64, len(points))
	ys := make([]float64, len(points))
	for i, p := range points {
		xs[i] = p.X
		ys[i] = p.Density
	}
	return xs, ys
}
