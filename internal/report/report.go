// Package report writes a PDF summary of a laminate and panel run.
package report

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/alexiusacademia/golam/internal/laminate"
	"github.com/alexiusacademia/golam/internal/panel"
	"github.com/phpdave11/gofpdf"
	"gonum.org/v1/gonum/mat"
)

// Input holds everything the report shows
type Input struct {
	Title    string
	LoadCase string
	Date     time.Time

	Plies  []laminate.Ply
	Moduli laminate.Moduli
	ABD    mat.Matrix

	Run *panel.Run
}

// Write renders the report to path
func Write(path string, in Input) error {
	if in.Title == "" {
		in.Title = "Stiffened Panel Buckling Report"
	}
	if in.Date.IsZero() {
		in.Date = time.Now()
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 16)
	pdf.Cell(0, 10, in.Title)
	pdf.Ln(12)
	pdf.SetFont("Helvetica", "", 10)
	pdf.Cell(0, 6, fmt.Sprintf("Date: %s", in.Date.Format("2006-01-02")))
	pdf.Ln(6)
	if in.LoadCase != "" {
		pdf.Cell(0, 6, fmt.Sprintf("Load case: %s", in.LoadCase))
		pdf.Ln(6)
	}
	if in.Run != nil {
		pdf.Cell(0, 6, fmt.Sprintf("Stringer pitch: %g   Rib pitch: %g", in.Run.Pitches.Stringer, in.Run.Pitches.Rib))
		pdf.Ln(6)
		pdf.Cell(0, 6, fmt.Sprintf("Local buckling stiffness: %s   Bay width: %s",
			orDefault(string(in.Run.Options.Stiffness), string(panel.StiffnessLegacy)),
			orDefault(string(in.Run.Options.BayWidth), string(panel.BayWidthCover))))
		pdf.Ln(6)
	}
	pdf.Ln(4)

	heading(pdf, "Laminate")
	plyRows := make([][]string, len(in.Plies))
	for i, p := range in.Plies {
		plyRows[i] = []string{
			fmt.Sprintf("%d", p.Number), fmt.Sprintf("%g", p.Orientation),
			fmt.Sprintf("%g", p.E1), fmt.Sprintf("%g", p.E2), fmt.Sprintf("%g", p.G),
			fmt.Sprintf("%g", p.Thickness), fmt.Sprintf("%g", p.Nu21),
		}
	}
	grid(pdf, []string{"No.", "Angle", "E1", "E2", "G", "t", "nu21"}, plyRows, 25)
	pdf.Ln(4)

	grid(pdf, []string{"Ex", "Ey", "Gxy", "NUxy"}, [][]string{{
		fmt.Sprintf("%.1f", in.Moduli.Ex),
		fmt.Sprintf("%.1f", in.Moduli.Ey),
		fmt.Sprintf("%.1f", in.Moduli.Gxy),
		fmt.Sprintf("%.3f", in.Moduli.NuXY),
	}}, 40)
	pdf.Ln(4)

	if in.ABD != nil {
		heading(pdf, "ABD matrix")
		r, c := in.ABD.Dims()
		rows := make([][]string, r)
		for i := 0; i < r; i++ {
			rows[i] = make([]string, c)
			for j := 0; j < c; j++ {
				rows[i][j] = fmt.Sprintf("%.4g", in.ABD.At(i, j))
			}
		}
		grid(pdf, nil, rows, 30)
		pdf.Ln(4)
	}

	if in.Run != nil {
		heading(pdf, "Panel sections")
		rows := make([][]string, len(in.Run.Results))
		for i, res := range in.Run.Results {
			id := res.Section.ID
			if !res.OK() {
				rows[i] = []string{id, "-", "-", "-", "-", "-"}
				continue
			}
			rows[i] = []string{
				id,
				fmt.Sprintf("%.2f", res.EffectiveThickness),
				fmt.Sprintf("%.1f%%", res.Ratio*100),
				fmt.Sprintf("%.4g", res.Inertia),
				fmt.Sprintf("%.2f", res.SafeCoeff),
				fmt.Sprintf("%.2f", res.LambdaMin),
			}
		}
		grid(pdf, []string{"Section", "t_eff", "Ratio", "J", "SafeCoeff", "lambda"}, rows, 30)

		if failed := in.Run.Failed(); failed > 0 {
			pdf.Ln(4)
			pdf.SetFont("Helvetica", "", 9)
			for _, res := range in.Run.Results {
				if res.Err != nil {
					pdf.MultiCell(0, 5, res.Err.Error(), "", "L", false)
				}
			}
		}
	}

	dir := filepath.Dir(path)
	if dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return err
		}
	}
	return pdf.OutputFileAndClose(path)
}

func heading(pdf *gofpdf.Fpdf, text string) {
	pdf.SetFont("Helvetica", "B", 12)
	pdf.Cell(0, 8, text)
	pdf.Ln(9)
}

// grid draws a bordered table with an optional bold header row
func grid(pdf *gofpdf.Fpdf, header []string, rows [][]string, colWidth float64) {
	if header != nil {
		pdf.SetFont("Helvetica", "B", 9)
		for _, h := range header {
			pdf.CellFormat(colWidth, 6, h, "1", 0, "C", false, 0, "")
		}
		pdf.Ln(-1)
	}
	pdf.SetFont("Helvetica", "", 9)
	for _, row := range rows {
		for _, cell := range row {
			pdf.CellFormat(colWidth, 6, cell, "1", 0, "R", false, 0, "")
		}
		pdf.Ln(-1)
	}
}

func orDefault(s, def string) string {
	if s == "" {
		return def
	}
	return s
}
