package visualization

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/brianbland/gasrisk/pkg/analysis"
)

// GenerateAll writes the PNG and HTML charts for r into dir and returns the
// paths written. The interactive series chart uses a log axis when
// useLogScale is set.
func (g *Generator) GenerateAll(r *analysis.Result, dir string, useLogScale bool) ([]string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create chart directory %s: %w", dir, err)
	}

	charts := []struct {
		name   string
		render func(string) error
	}{
		{SeriesPNG, func(p string) error { return g.GenerateSeriesChart(r, p) }},
		{FitPNG, func(p string) error { return g.GenerateFitChart(r, p) }},
		{SeriesHTML, func(p string) error { return g.GenerateInteractiveSeriesChart(r, p, useLogScale) }},
		{FitHTML, func(p string) error { return g.GenerateInteractiveFitChart(r, p) }},
	}

	paths := make([]string, 0, len(charts))
	for _, c := range charts {
		path := filepath.Join(dir, c.name)
		if err := c.render(path); err != nil {
			return paths, fmt.Errorf("failed to generate %s: %w", c.name, err)
		}
		paths = append(paths, path)
	}
	return paths, nil
}
