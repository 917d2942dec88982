// Package charts renders aggregate views as horizontal bar chart images.
// Values are plotted exactly as computed; nothing is rescaled or rounded
// for display.
package charts

import (
	"fmt"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"
)

// Series is one bar group sharing a color. Values align with the Spec's
// Categories by index.
type Series struct {
	Label  string
	Values []float64
}

// Spec describes one chart: categories along the nominal axis, the value
// axis label, and one series per color split.
type Spec struct {
	Title      string
	ValueLabel string
	Categories []string
	Series     []Series
}

const barWidth = 12 // points

// RenderBar draws a horizontal bar chart and writes it to path. The image
// format follows the file extension. Write failures are returned, never
// swallowed.
func RenderBar(spec Spec, path string) error {
	if len(spec.Categories) == 0 {
		return fmt.Errorf("chart %q: no categories to plot", spec.Title)
	}
	for _, s := range spec.Series {
		if len(s.Values) != len(spec.Categories) {
			return fmt.Errorf("chart %q: series %q has %d values for %d categories",
				spec.Title, s.Label, len(s.Values), len(spec.Categories))
		}
	}

	p := plot.New()
	p.Title.Text = spec.Title
	p.X.Label.Text = spec.ValueLabel

	grouped := len(spec.Series) > 1
	for i, s := range spec.Series {
		bars, err := plotter.NewBarChart(plotter.Values(s.Values), vg.Points(barWidth))
		if err != nil {
			return fmt.Errorf("chart %q: %w", spec.Title, err)
		}
		bars.Horizontal = true
		bars.Color = plotutil.Color(i)
		if grouped {
			bars.Offset = vg.Points((float64(i) - float64(len(spec.Series)-1)/2) * barWidth)
			p.Legend.Add(s.Label, bars)
		}
		p.Add(bars)
	}
	p.NominalY(spec.Categories...)
	p.Legend.Top = true

	if err := p.Save(10*vg.Inch, 6*vg.Inch, path); err != nil {
		return fmt.Errorf("write chart %q to %s: %w", spec.Title, path, err)
	}
	return nil
}
