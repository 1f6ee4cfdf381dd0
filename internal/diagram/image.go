package diagram

import (
	"fmt"
	"image/color"
	"math"
	"os"
	"path/filepath"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
)

// ExportResultsChart exports a grouped bar chart of the global safety
// coefficient and the local buckling factor per section. The format follows
// the file extension (png, svg, pdf); anything else gets ".png" appended.
func ExportResultsChart(data ResultsData, filename string) error {
	if len(data.SafeCoeff) == 0 {
		return fmt.Errorf("no sections to plot")
	}

	p := plot.New()
	p.Title.Text = "Panel Buckling Margins"
	p.X.Label.Text = "Section"
	p.Y.Label.Text = "Factor"

	// Failed sections are drawn as zero-height bars
	coeff := make(plotter.Values, len(data.SafeCoeff))
	lambda := make(plotter.Values, len(data.Lambda))
	for i := range coeff {
		if i < len(data.Valid) && !data.Valid[i] {
			continue
		}
		coeff[i] = finite(data.SafeCoeff[i])
		lambda[i] = finite(data.Lambda[i])
	}

	barWidth := vg.Points(14)

	coeffBars, err := plotter.NewBarChart(coeff, barWidth)
	if err != nil {
		return err
	}
	coeffBars.Color = color.RGBA{R: 100, G: 149, B: 237, A: 255}
	coeffBars.LineStyle.Width = vg.Length(0)
	coeffBars.Offset = -barWidth / 2

	lambdaBars, err := plotter.NewBarChart(lambda, barWidth)
	if err != nil {
		return err
	}
	lambdaBars.Color = color.RGBA{R: 255, G: 165, B: 0, A: 255}
	lambdaBars.LineStyle.Width = vg.Length(0)
	lambdaBars.Offset = barWidth / 2

	p.Add(coeffBars, lambdaBars)
	p.Legend.Add("SafeCoeff", coeffBars)
	p.Legend.Add("lambda min", lambdaBars)
	p.Legend.Top = true

	// Unity line: below it the section buckles
	unity, err := plotter.NewLine(plotter.XYs{
		{X: -0.5, Y: 1},
		{X: float64(len(coeff)) - 0.5, Y: 1},
	})
	if err != nil {
		return err
	}
	unity.LineStyle.Width = vg.Points(1.5)
	unity.LineStyle.Color = color.RGBA{R: 255, G: 0, B: 0, A: 255}
	unity.LineStyle.Dashes = []vg.Length{vg.Points(5), vg.Points(3)}
	p.Add(unity)

	p.NominalX(data.Labels...)

	return save(p, 8*vg.Inch, 6*vg.Inch, filename)
}

// ExportStackChart exports the fiber angle through the laminate thickness as
// a step plot
func ExportStackChart(data StackData, filename string) error {
	if len(data.Orientation) == 0 || len(data.Z) != len(data.Orientation)+1 {
		return fmt.Errorf("stack needs %d interface coordinates for %d plies", len(data.Orientation)+1, len(data.Orientation))
	}

	p := plot.New()
	p.Title.Text = "Laminate Stacking Sequence"
	p.X.Label.Text = "Orientation (deg)"
	p.Y.Label.Text = "z"
	p.X.Min, p.X.Max = -100, 100

	var pts plotter.XYs
	for i, angle := range data.Orientation {
		pts = append(pts,
			plotter.XY{X: angle, Y: data.Z[i]},
			plotter.XY{X: angle, Y: data.Z[i+1]},
		)
	}
	steps, err := plotter.NewLine(pts)
	if err != nil {
		return err
	}
	steps.LineStyle.Width = vg.Points(2)
	steps.LineStyle.Color = color.RGBA{R: 0, G: 100, B: 0, A: 255}
	p.Add(steps)

	// Mid-plane reference
	mid, err := plotter.NewLine(plotter.XYs{{X: -100, Y: 0}, {X: 100, Y: 0}})
	if err != nil {
		return err
	}
	mid.LineStyle.Color = color.Gray{Y: 128}
	mid.LineStyle.Dashes = []vg.Length{vg.Points(3), vg.Points(3)}
	p.Add(mid)

	return save(p, 6*vg.Inch, 8*vg.Inch, filename)
}

func save(p *plot.Plot, width, height vg.Length, filename string) error {
	dir := filepath.Dir(filename)
	if dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return err
		}
	}

	switch filepath.Ext(filename) {
	case ".png", ".svg", ".pdf":
		return p.Save(width, height, filename)
	default:
		return p.Save(width, height, filename+".png")
	}
}

func finite(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}
