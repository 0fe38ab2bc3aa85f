package visualization

import (
	"fmt"
	"os"
	"strings"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"

	"github.com/brianbland/gasrisk/pkg/analysis"
)

func toolbox() charts.GlobalOpts {
	return charts.WithToolboxOpts(opts.Toolbox{
		Show: opts.Bool(true),
		Feature: &opts.ToolBoxFeature{
			SaveAsImage: &opts.ToolBoxFeatureSaveAsImage{
				Show:  opts.Bool(true),
				Type:  "png",
				Title: "Save as Image",
			},
			DataZoom: &opts.ToolBoxFeatureDataZoom{
				Show:  opts.Bool(true),
				Title: map[string]string{"zoom": "Zoom", "back": "Back"},
			},
		},
	})
}

func initialization() charts.GlobalOpts {
	return charts.WithInitializationOpts(opts.Initialization{
		Width:  fmt.Sprintf("%dpx", defaultChartOptions.Width),
		Height: fmt.Sprintf("%dpx", defaultChartOptions.Height),
	})
}

func lineData(xs, ys []float64) []opts.LineData {
	data := make([]opts.LineData, len(xs))
	for i := range xs {
		data[i] = opts.LineData{Value: []interface{}{xs[i], ys[i]}}
	}
	return data
}

// GenerateInteractiveSeriesChart writes an HTML chart of the fee history and
// its windowed maxima, optionally with a logarithmic Y axis
func (g *Generator) GenerateInteractiveSeriesChart(r *analysis.Result, filename string, useLogScale bool) error {
	data := g.prepareSeries(r)

	yAxisOpts := opts.YAxis{
		Name: "Base Fee (Gwei)",
		Type: "value",
	}
	subtitle := "Base Fee and Coverage Window Maxima"
	if useLogScale {
		// Fees are strictly positive so no clamping is needed on a log axis.
		yAxisOpts = opts.YAxis{
			Name: "Base Fee (Gwei) - Log Scale",
			Type: "log",
		}
		subtitle += " - Logarithmic Scale"
	}

	line := charts.NewLine()
	line.SetGlobalOptions(
		initialization(),
		charts.WithTitleOpts(opts.Title{
			Title:    fmt.Sprintf("Simulated Gas Prices (Blocks %d-%d)", r.Config.Series.StartBlock, r.Config.Series.EndBlock),
			Subtitle: subtitle,
		}),
		charts.WithXAxisOpts(opts.XAxis{
			Name: "Block Number",
			Type: "value",
		}),
		charts.WithYAxisOpts(yAxisOpts),
		charts.WithLegendOpts(opts.Legend{
			Show: opts.Bool(true),
			Top:  "10%",
		}),
		toolbox(),
	)

	line.AddSeries("Gas Price", lineData(data.Blocks, data.Fees),
		charts.WithLineStyleOpts(opts.LineStyle{
			Width: 1,
		}),
	).
		AddSeries(fmt.Sprintf("Max Gas Price (%d blocks)", r.CoveragePeriod), lineData(data.MaximaBlocks, data.Maxima),
			charts.WithLineStyleOpts(opts.LineStyle{
				Width: 2,
			}),
		)

	return renderHTML(line, filename)
}

// GenerateInteractiveFitChart writes an HTML chart of the maxima histogram
// and the fitted GEV density
func (g *Generator) GenerateInteractiveFitChart(r *analysis.Result, filename string) error {
	if len(r.Histogram) == 0 || len(r.Curve) == 0 {
		return fmt.Errorf("result has no histogram or density curve to plot")
	}

	histX, histY := histogramSteps(r.Histogram)
	curveX, curveY := curveValues(r.Curve)

	line := charts.NewLine()
	line.SetGlobalOptions(
		initialization(),
		charts.WithTitleOpts(opts.Title{
			Title:    "Max Gas Price Distribution and Fitted GEV",
			Subtitle: fmt.Sprintf("xi=%.4f loc=%.4f scale=%.4f", r.GEV.Shape, r.GEV.Loc, r.GEV.Scale),
		}),
		charts.WithXAxisOpts(opts.XAxis{
			Name: "Max Gas Price (Gwei)",
			Type: "value",
		}),
		charts.WithYAxisOpts(opts.YAxis{
			Name: "Density",
			Type: "value",
		}),
		charts.WithLegendOpts(opts.Legend{
			Show: opts.Bool(true),
			Top:  "10%",
		}),
		toolbox(),
	)

	line.AddSeries("Max Gas Prices", lineData(histX, histY),
		charts.WithLineStyleOpts(opts.LineStyle{
			Width: 1,
		}),
		charts.WithAreaStyleOpts(opts.AreaStyle{
			Opacity: 0.3,
		}),
	).
		AddSeries("GEV fit", lineData(curveX, curveY),
			charts.WithLineChartOpts(opts.LineChart{
				Smooth: opts.Bool(true),
			}),
			charts.WithLineStyleOpts(opts.LineStyle{
				Width: 2,
			}),
		)

	return renderHTML(line, filename)
}

func renderHTML(line *charts.Line, filename string) error {
	if !strings.HasSuffix(filename, ".html") {
		filename = strings.TrimSuffix(filename, ".png") + ".html"
	}

	file, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}
	defer file.Close()

	if err := line.Render(file); err != nil {
		return fmt.Errorf("failed to render chart: %w", err)
	}
	return nil
}
