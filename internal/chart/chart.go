// Package chart renders bar charts and scatterplots to image files.
package chart

import (
	"errors"
	"fmt"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"

	"github.com/statlook/statlook-cli/internal/analysis"
	"github.com/statlook/statlook-cli/internal/regress"
)

// Opts controls chart titles and dimensions. Zero dimensions fall back to
// 6x4 inches.
type Opts struct {
	Title    string
	XLabel   string
	YLabel   string
	WidthIn  float64
	HeightIn float64
}

func (o Opts) size() (w, h vg.Length) {
	wIn, hIn := o.WidthIn, o.HeightIn
	if wIn <= 0 {
		wIn = 6
	}
	if hIn <= 0 {
		hIn = 4
	}
	return vg.Length(wIn) * vg.Inch, vg.Length(hIn) * vg.Inch
}

// Bar renders one bar per category, height = aggregated measure, and saves
// the chart to path. The image format follows the file extension
// (.png, .svg, .pdf, ...).
func Bar(aggs []analysis.Aggregate, opt Opts, path string) error {
	if len(aggs) == 0 {
		return errors.New("no categories to chart")
	}
	p := plot.New()
	p.Title.Text = opt.Title
	p.X.Label.Text = opt.XLabel
	p.Y.Label.Text = opt.YLabel

	values := make(plotter.Values, len(aggs))
	labels := make([]string, len(aggs))
	for i, a := range aggs {
		values[i] = a.Value
		labels[i] = a.Label
	}
	bars, err := plotter.NewBarChart(values, vg.Points(24))
	if err != nil {
		return fmt.Errorf("build bar chart: %w", err)
	}
	bars.LineStyle.Width = 0
	bars.Color = plotutil.Color(0)
	p.Add(bars)
	p.NominalX(labels...)
	p.X.Tick.Label.Rotation = 0.5
	p.X.Tick.Label.XAlign = -0.8

	w, h := opt.size()
	if err := p.Save(w, h, path); err != nil {
		return fmt.Errorf("save chart: %w", err)
	}
	return nil
}

// ScatterFit renders predictor/response points overlaid with the straight
// line given by the fitted model's intercept and slope. The line comes from
// the model, not a fresh local fit, so plot and reported coefficients always
// agree.
func ScatterFit(x, y []float64, m *regress.Model, opt Opts, path string) error {
	if len(x) != len(y) {
		return fmt.Errorf("%w: %d vs %d", regress.ErrLengthMismatch, len(x), len(y))
	}
	if len(x) == 0 {
		return errors.New("no points to chart")
	}
	p := plot.New()
	p.Title.Text = opt.Title
	p.X.Label.Text = opt.XLabel
	p.Y.Label.Text = opt.YLabel
	if p.X.Label.Text == "" {
		p.X.Label.Text = m.XName
	}
	if p.Y.Label.Text == "" {
		p.Y.Label.Text = m.YName
	}

	pts := make(plotter.XYs, len(x))
	xMin, xMax := x[0], x[0]
	for i := range x {
		pts[i].X = x[i]
		pts[i].Y = y[i]
		if x[i] < xMin {
			xMin = x[i]
		}
		if x[i] > xMax {
			xMax = x[i]
		}
	}
	scatter, err := plotter.NewScatter(pts)
	if err != nil {
		return fmt.Errorf("build scatter: %w", err)
	}
	scatter.GlyphStyle.Radius = vg.Points(2.5)
	scatter.GlyphStyle.Color = plotutil.Color(0)

	line, err := plotter.NewLine(plotter.XYs{
		{X: xMin, Y: m.Predict(xMin)},
		{X: xMax, Y: m.Predict(xMax)},
	})
	if err != nil {
		return fmt.Errorf("build fit line: %w", err)
	}
	line.LineStyle.Width = vg.Points(1.5)
	line.LineStyle.Color = plotutil.Color(1)

	p.Add(scatter, line)
	p.Legend.Add("observed", scatter)
	p.Legend.Add("fitted", line)
	p.Legend.Top = true

	w, h := opt.size()
	if err := p.Save(w, h, path); err != nil {
		return fmt.Errorf("save chart: %w", err)
	}
	return nil
}
