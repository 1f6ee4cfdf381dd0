// Package table converts between the flat input/output tables and the typed
// laminate and panel records. Numbers are parsed exactly once, here.
package table

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
)

// ErrMalformedInput is returned for missing columns or unparsable cells
var ErrMalformedInput = errors.New("malformed input")

// Column names of the input tables
var (
	LaminateColumns = []string{"number", "orientation", "E1", "E2", "G", "thickness", "nu21"}

	PanelColumns = []string{
		"width_rib", "web_string", "thick_web", "boom_string", "thick_boom",
		"round_string", "m", "thick_cover", "S11", "S22", "sections",
		"step_string", "step_rib",
	}
)

// MaterialColumn is the optional laminate column naming a material preset
const MaterialColumn = "material"

// ParseError locates a malformed cell or header
type ParseError struct {
	Table  string
	Row    int // 1-based data row; 0 for the header
	Column string
	Value  string
	Err    error
}

func (e *ParseError) Error() string {
	var loc string
	switch {
	case e.Row == 0:
		loc = "header"
	case e.Column != "":
		loc = fmt.Sprintf("row %d, column %q", e.Row, e.Column)
	default:
		loc = fmt.Sprintf("row %d", e.Row)
	}
	msg := fmt.Sprintf("%s table: %s: %s", e.Table, loc, ErrMalformedInput)
	if e.Value != "" {
		msg += fmt.Sprintf(": value %q", e.Value)
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *ParseError) Unwrap() []error {
	if e.Err == nil {
		return []error{ErrMalformedInput}
	}
	return []error{ErrMalformedInput, e.Err}
}

// header maps column names to record positions
type header map[string]int

func newHeader(table string, row []string, required []string) (header, error) {
	h := make(header, len(row))
	for i, name := range row {
		name = strings.TrimSpace(name)
		if i == 0 {
			name = strings.TrimPrefix(name, "\ufeff")
		}
		if name == "" {
			continue
		}
		if _, dup := h[name]; dup {
			return nil, &ParseError{Table: table, Column: name, Err: errors.New("duplicate column")}
		}
		h[name] = i
	}

	var missing []string
	for _, col := range required {
		if _, ok := h[col]; !ok {
			missing = append(missing, col)
		}
	}
	if len(missing) > 0 {
		return nil, &ParseError{Table: table, Err: fmt.Errorf("missing columns: %s", strings.Join(missing, ", "))}
	}
	return h, nil
}

// cell returns the trimmed value of a column, or a ParseError when the
// record is too short to hold it.
func (h header) cell(table string, row int, record []string, col string) (string, error) {
	i, ok := h[col]
	if !ok {
		return "", nil
	}
	if i >= len(record) {
		return "", &ParseError{Table: table, Row: row, Column: col, Err: errors.New("missing cell")}
	}
	return strings.TrimSpace(record[i]), nil
}

// isBlank reports whether every cell of a record is empty
func isBlank(record []string) bool {
	for _, c := range record {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}

// isSpreadsheet reports whether a path should be read with excelize
func isSpreadsheet(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx", ".xlsm":
		return true
	}
	return false
}
