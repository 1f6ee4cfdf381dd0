package cmd

import (
	"fmt"
	"io"
	"path/filepath"

	"github.com/alexiusacademia/golam/internal/diagram"
	"github.com/alexiusacademia/golam/internal/laminate"
	tables "github.com/alexiusacademia/golam/internal/table"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
)

var (
	laminateAnalyzeFile        string
	laminateAnalyzeShowDiagram bool
	laminateAnalyzeShowMatrix  bool
	laminateAnalyzeChartFile   string
)

var laminateAnalyzeCmd = &cobra.Command{
	Use:   "analyze",
	Short: "Compute the ABD matrix and effective moduli of a laminate",
	Long: `Read a ply table, assemble the 6x6 ABD stiffness matrix of the stack,
invert it and report the effective in-plane moduli Ex, Ey, Gxy and NUxy.

The input rows are echoed into the output table with the moduli appended
to the first row.

Examples:
  golam laminate analyze -f stiffness_matrix.csv
  golam laminate analyze -f layup.xlsx --matrix --diagram
  golam laminate analyze -f layup.csv --chart stack.png`,
	RunE: runLaminateAnalyze,
}

func init() {
	laminateCmd.AddCommand(laminateAnalyzeCmd)

	laminateAnalyzeCmd.Flags().StringVarP(&laminateAnalyzeFile, "file", "f", "", "Path to laminate table (csv or xlsx) [required]")
	laminateAnalyzeCmd.MarkFlagRequired("file")

	laminateAnalyzeCmd.Flags().BoolVar(&laminateAnalyzeShowMatrix, "matrix", false, "Print the ABD and compliance matrices")
	laminateAnalyzeCmd.Flags().BoolVar(&laminateAnalyzeShowDiagram, "diagram", false, "Show ASCII ply stack diagram")
	laminateAnalyzeCmd.Flags().StringVar(&laminateAnalyzeChartFile, "chart", "", "Export stack chart to file (png, svg, pdf)")
}

func runLaminateAnalyze(cmd *cobra.Command, args []string) error {
	lt, err := tables.ReadLaminateFile(laminateAnalyzeFile)
	if err != nil {
		return fmt.Errorf("error loading laminate: %w", err)
	}
	logger.Debug("read laminate table", "file", laminateAnalyzeFile, "plies", len(lt.Plies))

	lam, err := laminate.NewLaminate(lt.Plies)
	if err != nil {
		return fmt.Errorf("error analyzing laminate: %w", err)
	}

	out := cmd.OutOrStdout()
	printTitle(out, "LAMINATE ANALYSIS - CLASSICAL LAMINATION THEORY")
	printLaminate(out, lam, laminateAnalyzeShowMatrix)

	if laminateAnalyzeShowDiagram {
		fmt.Fprint(out, diagram.DrawASCIIStack(stackData(lam)))
		fmt.Fprintln(out)
	}

	if laminateAnalyzeChartFile != "" {
		if err := diagram.ExportStackChart(stackData(lam), laminateAnalyzeChartFile); err != nil {
			return fmt.Errorf("error exporting stack chart: %w", err)
		}
		fmt.Fprintf(out, "  Stack chart exported to: %s\n", laminateAnalyzeChartFile)
	}

	paths, err := writeOutputs(output{
		File:  cfg.Output.LaminateFile,
		Sheet: tables.Sheet{Name: "laminate", Records: tables.LaminateRecords(lt, lam.Moduli())},
	})
	if err != nil {
		return err
	}
	for _, path := range paths {
		logger.Info("wrote laminate results", "file", path)
		fmt.Fprintf(out, "  Results written to: %s\n", filepath.Clean(path))
	}
	fmt.Fprintln(out)
	return nil
}

// Relative to the largest A entry
const couplingTolerance = 1e-6

// printLaminate prints the ply table, the moduli and optionally the matrices
func printLaminate(w io.Writer, lam *laminate.Laminate, matrices bool) {
	printHeading(w, "PLY STACK:")
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{"No.", "Angle (°)", "E1", "E2", "G", "nu21", "t"})
	for _, p := range lam.Plies() {
		t.AppendRow(table.Row{p.Number, p.Orientation, p.E1, p.E2, p.G, p.Nu21, p.Thickness})
	}
	t.AppendFooter(table.Row{"", "", "", "", "", "h", fmt.Sprintf("%g", lam.Thickness())})
	t.Render()
	fmt.Fprintln(w)

	symmetric, balanced := "no", "no"
	if lam.IsSymmetric(couplingTolerance) {
		symmetric = "yes"
	}
	if lam.IsBalanced(couplingTolerance) {
		balanced = "yes"
	}
	fmt.Fprintf(w, "  Symmetric (B = 0):        %s\n", symmetric)
	fmt.Fprintf(w, "  Balanced (A16 = A26 = 0): %s\n", balanced)
	fmt.Fprintln(w)

	m := lam.Moduli()
	printHeading(w, "EFFECTIVE MODULI:")
	t = table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{"Ex", "Ey", "Gxy", "NUxy"})
	t.AppendRow(table.Row{
		fmt.Sprintf("%.1f", m.Ex),
		fmt.Sprintf("%.1f", m.Ey),
		fmt.Sprintf("%.1f", m.Gxy),
		fmt.Sprintf("%.3f", m.NuXY),
	})
	t.Render()
	fmt.Fprintln(w)

	if matrices {
		printHeading(w, "ABD MATRIX:")
		printMatrix(w, lam.ABD(), "%.4g")
		fmt.Fprintln(w)
		printHeading(w, "COMPLIANCE MATRIX:")
		printMatrix(w, lam.Compliance(), "%.4e")
		fmt.Fprintln(w)
	}
}

func stackData(lam *laminate.Laminate) diagram.StackData {
	plies := lam.Plies()
	data := diagram.StackData{
		Z:           lam.Z(),
		Orientation: make([]float64, len(plies)),
		Numbers:     make([]int, len(plies)),
	}
	for i, p := range plies {
		data.Orientation[i] = p.Orientation
		data.Numbers[i] = p.Number
	}
	return data
}
