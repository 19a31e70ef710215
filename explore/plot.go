package explore

import (
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"github.com/YuminosukeSato/idago/pkg/errors"
)

// PlotOptions controls histogram rendering.
type PlotOptions struct {
	// Title is drawn above the chart.
	Title string

	// XLabel and YLabel override the axis labels. Empty defaults to the
	// column name and "count".
	XLabel string
	YLabel string

	// Width and Height of the image. Zero values default to 16x10 cm.
	Width  vg.Length
	Height vg.Length
}

// SavePlot renders a fetched histogram as a bar chart. The image format
// follows the file extension (.png, .svg, .pdf).
func SavePlot(h *Histogram, path string, opts PlotOptions) error {
	if h == nil || h.NumBins() == 0 {
		return errors.Wrap(errors.ErrEmptyData, "explore.SavePlot")
	}

	p := plot.New()
	p.Title.Text = opts.Title
	p.X.Label.Text = opts.XLabel
	if p.X.Label.Text == "" {
		p.X.Label.Text = h.Column
	}
	p.Y.Label.Text = opts.YLabel
	if p.Y.Label.Text == "" {
		p.Y.Label.Text = "count"
	}

	bars, err := plotter.NewBarChart(plotter.Values(h.Counts), vg.Points(20))
	if err != nil {
		return errors.Wrap(err, "explore.SavePlot")
	}
	bars.LineStyle.Width = 0
	p.Add(bars)

	labels := make([]string, h.NumBins())
	for i, m := range h.Midpoints() {
		labels[i] = trimFloat(m)
	}
	p.NominalX(labels...)

	width, height := opts.Width, opts.Height
	if width == 0 {
		width = 16 * vg.Centimeter
	}
	if height == 0 {
		height = 10 * vg.Centimeter
	}
	if err := p.Save(width, height, path); err != nil {
		return errors.Wrap(err, "explore.SavePlot")
	}
	return nil
}

func trimFloat(v float64) string {
	return floatLiteral(v)
}
