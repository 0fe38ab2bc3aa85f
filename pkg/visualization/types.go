package visualization

import (
	"github.com/brianbland/gasrisk/pkg/analysis"
)

// Chart file names written by GenerateAll
const (
	SeriesPNG  = "gas_prices.png"
	FitPNG     = "max_gas_prices_fit.png"
	SeriesHTML = "gas_prices.html"
	FitHTML    = "max_gas_prices_fit.html"
)

// DefaultMaxPoints bounds the number of points plotted per series
const DefaultMaxPoints = 2000

// ChartGenerator defines the interface for generating charts
type ChartGenerator interface {
	GenerateSeriesChart(r *analysis.Result, filename string) error
	GenerateFitChart(r *analysis.Result, filename string) error
	GenerateInteractiveSeriesChart(r *analysis.Result, filename string, useLogScale bool) error
	GenerateInteractiveFitChart(r *analysis.Result, filename string) error
	GenerateAll(r *analysis.Result, dir string, useLogScale bool) ([]string, error)
}

// Generator implements ChartGenerator interface
type Generator struct {
	MaxPoints int
}

// NewGenerator creates a new chart generator
func NewGenerator() *Generator {
	return &Generator{MaxPoints: DefaultMaxPoints}
}

// ChartOptions contains styling and size options for charts
type ChartOptions struct {
	Width  int
	Height int
	Title  string
}

var defaultChartOptions = ChartOptions{Width: 1200, Height: 800}

// seriesData is the plotted form of the fee history and its maxima
type seriesData struct {
	Blocks       []float64
	Fees         []float64
	MaximaBlocks []float64
	Maxima       []float64
}

func (g *Generator) prepareSeries(r *analysis.Result) seriesData {
	start := float64(r.Config.Series.StartBlock)

	blocks := make([]float64, len(r.Fees))
	for i := range blocks {
		blocks[i] = start + float64(i)
	}
	// Each maximum is plotted at the first block of its window.
	maximaBlocks := blocks[:len(r.Maxima)]

	var data seriesData
	data.Blocks, data.Fees = downsample(blocks, r.Fees, g.MaxPoints)
	data.MaximaBlocks, data.Maxima = downsample(maximaBlocks, r.Maxima, g.MaxPoints)
	return data
}
