package table

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"

	"github.com/alexiusacademia/golam/internal/laminate"
	"github.com/alexiusacademia/golam/internal/materials"
	"github.com/alexiusacademia/golam/internal/panel"
)

// LaminateTable is the parsed laminate input
type LaminateTable struct {
	Plies []laminate.Ply

	// Echo holds the cells of each ply in LaminateColumns order, with
	// material preset values filled in.
	Echo [][]string
}

// PanelTable is the parsed panel input
type PanelTable struct {
	Sections []panel.Section

	// Pitches come from the first data row
	Pitches panel.Pitches

	// PitchMismatches lists the 1-based rows whose step_string or step_rib
	// differ from the first row.
	PitchMismatches []int
}

// ReadLaminate parses a laminate CSV table
func ReadLaminate(r io.Reader) (*LaminateTable, error) {
	records, err := readCSV("laminate", r)
	if err != nil {
		return nil, err
	}
	return ParseLaminate(records)
}

// ReadPanel parses a panel CSV table
func ReadPanel(r io.Reader) (*PanelTable, error) {
	records, err := readCSV("panel", r)
	if err != nil {
		return nil, err
	}
	return ParsePanel(records)
}

// ReadLaminateFile reads a laminate table from a .csv or .xlsx file
func ReadLaminateFile(path string) (*LaminateTable, error) {
	records, err := readFile("laminate", path)
	if err != nil {
		return nil, err
	}
	return ParseLaminate(records)
}

// ReadPanelFile reads a panel table from a .csv or .xlsx file
func ReadPanelFile(path string) (*PanelTable, error) {
	records, err := readFile("panel", path)
	if err != nil {
		return nil, err
	}
	return ParsePanel(records)
}

func readFile(table, path string) ([][]string, error) {
	if isSpreadsheet(path) {
		return readXLSX(table, path)
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	return readCSV(table, f)
}

func readCSV(table string, r io.Reader) ([][]string, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	records, err := cr.ReadAll()
	if err != nil {
		var perr *csv.ParseError
		if errors.As(err, &perr) {
			return nil, &ParseError{Table: table, Row: perr.Line - 1, Err: perr.Err}
		}
		return nil, err
	}
	return records, nil
}

// ParseLaminate converts raw records (header first) into plies
func ParseLaminate(records [][]string) (*LaminateTable, error) {
	const name = "laminate"

	if len(records) == 0 {
		return nil, &ParseError{Table: name, Err: errors.New("table is empty")}
	}
	h, err := newHeader(name, records[0], LaminateColumns)
	if err != nil {
		return nil, err
	}

	t := &LaminateTable{}
	row := 0
	for _, record := range records[1:] {
		if isBlank(record) {
			continue
		}
		row++

		cells := make(map[string]string, len(LaminateColumns))
		for _, col := range LaminateColumns {
			if cells[col], err = h.cell(name, row, record, col); err != nil {
				return nil, err
			}
		}
		if err := fillFromMaterial(name, row, h, record, cells); err != nil {
			return nil, err
		}

		p := parser{table: name, row: row, cells: cells}
		ply := laminate.Ply{
			Number:      p.integer("number"),
			Orientation: p.float("orientation"),
			E1:          p.float("E1"),
			E2:          p.float("E2"),
			G:           p.float("G"),
			Thickness:   p.float("thickness"),
			Nu21:        p.float("nu21"),
		}
		if p.err != nil {
			return nil, p.err
		}

		echo := make([]string, len(LaminateColumns))
		for i, col := range LaminateColumns {
			echo[i] = cells[col]
		}
		t.Plies = append(t.Plies, ply)
		t.Echo = append(t.Echo, echo)
	}

	if len(t.Plies) == 0 {
		return nil, &ParseError{Table: name, Err: errors.New("no plies")}
	}
	return t, nil
}

// fillFromMaterial fills empty property cells from a material preset named
// in the optional material column.
func fillFromMaterial(table string, row int, h header, record []string, cells map[string]string) error {
	if _, ok := h[MaterialColumn]; !ok {
		return nil
	}
	name, err := h.cell(table, row, record, MaterialColumn)
	if err != nil || name == "" {
		return err
	}

	m, err := materials.Lookup(name)
	if err != nil {
		return &ParseError{Table: table, Row: row, Column: MaterialColumn, Value: name, Err: err}
	}

	defaults := map[string]float64{
		"E1":        m.E1,
		"E2":        m.E2,
		"G":         m.G,
		"nu21":      m.Nu21,
		"thickness": m.Thickness,
	}
	for col, v := range defaults {
		if cells[col] == "" {
			cells[col] = strconv.FormatFloat(v, 'g', -1, 64)
		}
	}
	return nil
}

// ParsePanel converts raw records (header first) into panel sections
func ParsePanel(records [][]string) (*PanelTable, error) {
	const name = "panel"

	if len(records) == 0 {
		return nil, &ParseError{Table: name, Err: errors.New("table is empty")}
	}
	h, err := newHeader(name, records[0], PanelColumns)
	if err != nil {
		return nil, err
	}

	t := &PanelTable{}
	row := 0
	for _, record := range records[1:] {
		if isBlank(record) {
			continue
		}
		row++

		cells := make(map[string]string, len(PanelColumns))
		for _, col := range PanelColumns {
			if cells[col], err = h.cell(name, row, record, col); err != nil {
				return nil, err
			}
		}

		p := parser{table: name, row: row, cells: cells}
		s := panel.Section{
			ID:             cells["sections"],
			RibWidth:       p.float("width_rib"),
			WebHeight:      p.float("web_string"),
			WebThickness:   p.float("thick_web"),
			BoomWidth:      p.float("boom_string"),
			BoomThickness:  p.float("thick_boom"),
			FilletRadius:   p.float("round_string"),
			HalfWaves:      p.integer("m"),
			CoverThickness: p.float("thick_cover"),
			S11:            p.float("S11"),
			S22:            p.float("S22"),
		}
		pitches := panel.Pitches{
			Stringer: p.float("step_string"),
			Rib:      p.float("step_rib"),
		}
		if p.err != nil {
			return nil, p.err
		}

		if row == 1 {
			t.Pitches = pitches
		} else if pitches != t.Pitches {
			t.PitchMismatches = append(t.PitchMismatches, row)
		}
		t.Sections = append(t.Sections, s)
	}

	if len(t.Sections) == 0 {
		return nil, &ParseError{Table: name, Err: errors.New("no sections")}
	}
	return t, nil
}

// strconv accepts "NaN" and "Inf"; no table quantity may take those values
var errNotFinite = errors.New("not a finite number")

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

// parser converts cells of one row, keeping the first error
type parser struct {
	table string
	row   int
	cells map[string]string
	err   error
}

func (p *parser) float(col string) float64 {
	if p.err != nil {
		return 0
	}
	v, err := strconv.ParseFloat(p.cells[col], 64)
	if err == nil && !finite(v) {
		err = errNotFinite
	}
	if err != nil {
		p.err = p.fail(col, err)
		return 0
	}
	return v
}

// integer accepts integral values written as floats ("3.0"), as spreadsheets
// tend to produce them.
func (p *parser) integer(col string) int {
	if p.err != nil {
		return 0
	}
	s := p.cells[col]
	if v, err := strconv.Atoi(s); err == nil {
		return v
	}
	f, err := strconv.ParseFloat(s, 64)
	if err == nil && !finite(f) {
		err = errNotFinite
	}
	if err != nil {
		p.err = p.fail(col, err)
		return 0
	}
	if f != float64(int(f)) {
		p.err = p.fail(col, fmt.Errorf("not an integer"))
		return 0
	}
	return int(f)
}

func (p *parser) fail(col string, err error) error {
	var numErr *strconv.NumError
	if errors.As(err, &numErr) {
		err = numErr.Err
	}
	return &ParseError{Table: p.table, Row: p.row, Column: col, Value: p.cells[col], Err: err}
}
