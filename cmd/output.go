package cmd

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	tables "github.com/alexiusacademia/golam/internal/table"
	"github.com/jedib0t/go-pretty/v6/table"
	"gonum.org/v1/gonum/mat"
)

const rule = "───────────────────────────────────────────────────────────────"

func printTitle(w io.Writer, title string) {
	fmt.Fprintln(w)
	fmt.Fprintln(w, "═══════════════════════════════════════════════════════════════")
	fmt.Fprintf(w, "     %s\n", title)
	fmt.Fprintln(w, "═══════════════════════════════════════════════════════════════")
	fmt.Fprintln(w)
}

func printHeading(w io.Writer, heading string) {
	fmt.Fprintln(w, heading)
	fmt.Fprintln(w, rule)
}

// printMatrix renders m with a numbered header row and column
func printMatrix(w io.Writer, m mat.Matrix, format string) {
	r, c := m.Dims()
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleLight)

	header := make(table.Row, c+1)
	header[0] = ""
	for j := 0; j < c; j++ {
		header[j+1] = j + 1
	}
	t.AppendHeader(header)
	for i := 0; i < r; i++ {
		row := make(table.Row, c+1)
		row[0] = i + 1
		for j := 0; j < c; j++ {
			row[j+1] = fmt.Sprintf(format, m.At(i, j))
		}
		t.AppendRow(row)
	}
	t.Render()
}

// outputPath joins the configured output directory and file name, with the
// extension matching the configured format
func outputPath(name string) string {
	if cfg.Output.Format == "xlsx" {
		name = strings.TrimSuffix(name, filepath.Ext(name)) + ".xlsx"
	}
	return filepath.Join(cfg.Output.Dir, name)
}

// output is one result table and the configured file name it belongs to
type output struct {
	File  string
	Sheet tables.Sheet
}

// writeOutputs writes each table to its own CSV file, or all of them as
// sheets of one workbook named after the first file. It returns the paths
// written.
func writeOutputs(outputs ...output) ([]string, error) {
	if len(outputs) == 0 {
		return nil, nil
	}
	if cfg.Output.Format == "xlsx" {
		path := outputPath(outputs[0].File)
		sheets := make([]tables.Sheet, len(outputs))
		for i, o := range outputs {
			sheets[i] = o.Sheet
		}
		if err := ensureDir(path); err != nil {
			return nil, err
		}
		if err := tables.WriteXLSX(path, sheets); err != nil {
			return nil, fmt.Errorf("error writing %s: %w", path, err)
		}
		return []string{path}, nil
	}

	paths := make([]string, 0, len(outputs))
	for _, o := range outputs {
		path := outputPath(o.File)
		if err := writeCSVFile(path, o.Sheet.Records); err != nil {
			return paths, fmt.Errorf("error writing %s: %w", path, err)
		}
		paths = append(paths, path)
	}
	return paths, nil
}

func ensureDir(path string) error {
	if dir := filepath.Dir(path); dir != "." {
		return os.MkdirAll(dir, 0755)
	}
	return nil
}

func writeCSVFile(path string, records [][]string) error {
	if err := ensureDir(path); err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := tables.WriteCSV(f, records); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
