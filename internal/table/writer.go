package table

import (
	"encoding/csv"
	"io"
	"strconv"
	"strings"

	"github.com/alexiusacademia/golam/internal/laminate"
	"github.com/alexiusacademia/golam/internal/panel"
)

// Output headers
var (
	LaminateHeader = splitHeader("number, orientation, E1, E2, G, thickness, nu21, , Ex, Ey, Gxy, NUxy")
	PanelHeader    = splitHeader("EffectiveThickness, ratio, SafeCoeff, lambd_min")
)

func splitHeader(s string) []string {
	cells := strings.Split(s, ",")
	for i := range cells {
		cells[i] = strings.TrimSpace(cells[i])
	}
	return cells
}

// Precision controls the decimals written for panel results
type Precision struct {
	Value int // effective thickness, SafeCoeff, lambda
	Ratio int // ratio, written as a percentage
}

// DefaultPrecision matches the established output files
var DefaultPrecision = Precision{Value: 2, Ratio: 1}

// FormatFixed renders v with prec decimals
func FormatFixed(v float64, prec int) string {
	return strconv.FormatFloat(v, 'f', prec, 64)
}

// FormatPercent renders a fraction as a percentage with prec decimals
func FormatPercent(v float64, prec int) string {
	return FormatFixed(v*100, prec)
}

// LaminateRecords builds the laminate output: the echoed plies with the
// effective moduli appended to the first row after a blank cell.
func LaminateRecords(t *LaminateTable, m laminate.Moduli) [][]string {
	records := [][]string{LaminateHeader}
	for i, echo := range t.Echo {
		row := append([]string(nil), echo...)
		if i == 0 {
			row = append(row, "",
				FormatFixed(m.Ex, 1),
				FormatFixed(m.Ey, 1),
				FormatFixed(m.Gxy, 1),
				FormatFixed(m.NuXY, 3),
			)
		}
		records = append(records, row)
	}
	return records
}

// PanelRecords builds the panel output, one row per section. Sections that
// failed are written with empty cells so rows stay aligned with the input.
func PanelRecords(results []panel.SectionResult, p Precision) [][]string {
	records := [][]string{PanelHeader}
	for _, r := range results {
		if !r.OK() {
			records = append(records, []string{"", "", "", ""})
			continue
		}
		records = append(records, []string{
			FormatFixed(r.EffectiveThickness, p.Value),
			FormatPercent(r.Ratio, p.Ratio),
			FormatFixed(r.SafeCoeff, p.Value),
			FormatFixed(r.LambdaMin, p.Value),
		})
	}
	return records
}

// WriteCSV writes records as CSV
func WriteCSV(w io.Writer, records [][]string) error {
	cw := csv.NewWriter(w)
	if err := cw.WriteAll(records); err != nil {
		return err
	}
	return cw.Error()
}
