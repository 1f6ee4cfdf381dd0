package cmd

import (
	"fmt"
	"io"
	"path/filepath"

	"github.com/alexiusacademia/golam/internal/diagram"
	"github.com/alexiusacademia/golam/internal/laminate"
	"github.com/alexiusacademia/golam/internal/loads"
	"github.com/alexiusacademia/golam/internal/panel"
	"github.com/alexiusacademia/golam/internal/report"
	tables "github.com/alexiusacademia/golam/internal/table"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
)

var (
	panelLaminateFile string
	panelFile         string
	panelAllCases     bool
	panelShowDiagram  bool
	panelChartFile    string
	panelReportFile   string
)

var panelAnalyzeCmd = &cobra.Command{
	Use:   "analyze",
	Short: "Evaluate global and local buckling of panel sections",
	Long: `Evaluate every section of a panel table against a laminate:

  - effective skin thickness and stringer area ratio
  - moment of inertia of the stringer with its effective skin
  - Euler critical stress and global safety coefficient (SafeCoeff)
  - minimum local buckling factor over 5x5 half-wave modes (lambd_min)

A section that cannot be evaluated is reported and left blank in the
output; the other sections are still evaluated.

Examples:
  golam panel analyze -l stiffness_matrix.csv -p panel_analyzing.csv
  golam panel analyze -l layup.csv -p panel.csv --load-case ultimate
  golam panel analyze -l layup.csv -p panel.csv --all-cases --report panel.pdf
  golam panel analyze -l layup.csv -p panel.csv --stiffness bending --bay-width clear-span`,
	RunE: runPanelAnalyze,
}

func init() {
	panelCmd.AddCommand(panelAnalyzeCmd)

	f := panelAnalyzeCmd.Flags()
	f.StringVarP(&panelLaminateFile, "laminate", "l", "", "Path to laminate table (csv or xlsx) [required]")
	f.StringVarP(&panelFile, "panel", "p", "", "Path to panel table (csv or xlsx) [required]")
	panelAnalyzeCmd.MarkFlagRequired("laminate")
	panelAnalyzeCmd.MarkFlagRequired("panel")

	// Analysis options, also settable in the config file
	f.Float64("stringer-pitch", 0, "Override the stringer pitch of the panel table")
	f.Float64("rib-pitch", 0, "Override the rib pitch of the panel table")
	f.String("load-case", "limit", "Load case applied to S11 and S22 (see 'golam cases')")
	f.BoolVar(&panelAllCases, "all-cases", false, "Evaluate every load case and report the governing one")
	f.String("stiffness", string(panel.StiffnessLegacy), "ABD entries used as plate bending stiffness (legacy|bending)")
	f.String("bay-width", string(panel.BayWidthCover), "Local buckling bay width (cover|clear-span)")
	f.Bool("double-legs", false, "Count both boom legs in the inertia terms")

	// Output options
	f.BoolVar(&panelShowDiagram, "diagram", false, "Show ASCII chart of the results")
	f.StringVar(&panelChartFile, "chart", "", "Export results chart to file (png, svg, pdf)")
	f.StringVar(&panelReportFile, "report", "", "Write a PDF report")
}

func runPanelAnalyze(cmd *cobra.Command, args []string) error {
	lt, err := tables.ReadLaminateFile(panelLaminateFile)
	if err != nil {
		return fmt.Errorf("error loading laminate: %w", err)
	}
	lam, err := laminate.NewLaminate(lt.Plies)
	if err != nil {
		return fmt.Errorf("error analyzing laminate: %w", err)
	}

	pt, err := tables.ReadPanelFile(panelFile)
	if err != nil {
		return fmt.Errorf("error loading panel: %w", err)
	}
	for _, row := range pt.PitchMismatches {
		logger.Warn("pitch differs from first row, first row is used",
			"file", panelFile, "row", row,
			"step_string", pt.Pitches.Stringer, "step_rib", pt.Pitches.Rib)
	}
	pitches := cfg.Pitches(pt.Pitches)
	logger.Debug("read panel table", "file", panelFile, "sections", len(pt.Sections),
		"stringer_pitch", pitches.Stringer, "rib_pitch", pitches.Rib)
	logger.Debug("buckling variants", "stiffness", cfg.Buckling.Stiffness,
		"bay_width", cfg.Buckling.BayWidth, "double_legs", cfg.Buckling.DoubleLegs)

	cases := loads.LoadCases
	if !panelAllCases {
		lc, err := loads.Lookup(cfg.Panel.LoadCase)
		if err != nil {
			return err
		}
		cases = []loads.LoadCase{lc}
	}

	out := cmd.OutOrStdout()
	printTitle(out, "STIFFENED PANEL BUCKLING ANALYSIS")
	printLaminate(out, lam, false)

	printHeading(out, "PANEL:")
	fmt.Fprintf(out, "  Stringer pitch:     %g\n", pitches.Stringer)
	fmt.Fprintf(out, "  Rib pitch:          %g\n", pitches.Rib)
	fmt.Fprintf(out, "  Sections:           %d\n", len(pt.Sections))
	fmt.Fprintf(out, "  Plate stiffness:    %s\n", cfg.Buckling.Stiffness)
	fmt.Fprintf(out, "  Bay width:          %s\n", cfg.Buckling.BayWidth)
	fmt.Fprintln(out)

	runs := make([]loads.CaseRun, 0, len(cases))
	for _, lc := range cases {
		run, err := panel.Analyze(lam, lc.Apply(pt.Sections), pitches, cfg.PanelOptions())
		if err != nil {
			return fmt.Errorf("load case %s: %w", lc.ID, err)
		}
		for _, res := range run.Results {
			if res.Err != nil {
				logger.Warn("section not evaluated", "case", lc.ID, "err", res.Err)
			}
		}
		runs = append(runs, loads.CaseRun{Case: lc, Run: run})

		printHeading(out, fmt.Sprintf("LOAD CASE %s: %s", lc.ID, lc.Description))
		printResults(out, run)
		fmt.Fprintln(out)
	}

	selected := runs[0]
	if gov, k, ok := loads.Governing(runs); ok {
		selected = gov
		if len(runs) > 1 {
			fmt.Fprintf(out, "  Governing load case: %s (SafeCoeff = %.2f)\n", gov.Case.ID, k)
			fmt.Fprintln(out)
		}
	}
	printSummary(out, selected.Run)

	if panelShowDiagram {
		fmt.Fprint(out, diagram.DrawASCIIResults(resultsData(selected.Run)))
		fmt.Fprintln(out)
	}
	if panelChartFile != "" {
		if err := diagram.ExportResultsChart(resultsData(selected.Run), panelChartFile); err != nil {
			return fmt.Errorf("error exporting results chart: %w", err)
		}
		fmt.Fprintf(out, "  Results chart exported to: %s\n", panelChartFile)
	}
	if panelReportFile != "" {
		err := report.Write(panelReportFile, report.Input{
			LoadCase: selected.Case.ID,
			Plies:    lam.Plies(),
			Moduli:   lam.Moduli(),
			ABD:      lam.ABD(),
			Run:      selected.Run,
		})
		if err != nil {
			return fmt.Errorf("error writing report: %w", err)
		}
		fmt.Fprintf(out, "  Report written to: %s\n", panelReportFile)
	}

	paths, err := writeOutputs(
		output{File: cfg.Output.PanelFile, Sheet: tables.Sheet{Name: "panel", Records: tables.PanelRecords(selected.Run.Results, cfg.Precision())}},
		output{File: cfg.Output.LaminateFile, Sheet: tables.Sheet{Name: "laminate", Records: tables.LaminateRecords(lt, lam.Moduli())}},
	)
	if err != nil {
		return err
	}
	for _, path := range paths {
		logger.Info("wrote results", "file", path, "case", selected.Case.ID)
		fmt.Fprintf(out, "  Results written to: %s\n", filepath.Clean(path))
	}
	fmt.Fprintln(out)
	return nil
}

func printResults(w io.Writer, run *panel.Run) {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{"Section", "t_eff", "Ratio", "J", "σcr", "SafeCoeff", "λmin", "Mode", "Status"})
	for _, res := range run.Results {
		if !res.OK() {
			t.AppendRow(table.Row{res.Section.ID, "", "", "", "", "", "", "", "✗ not evaluated"})
			continue
		}
		status := "OK"
		if res.SafeCoeff < 1 || res.LambdaMin < 1 {
			status = "⚠ buckles"
		}
		t.AppendRow(table.Row{
			res.Section.ID,
			fmt.Sprintf("%.2f", res.EffectiveThickness),
			fmt.Sprintf("%.1f%%", res.Ratio*100),
			fmt.Sprintf("%.4g", res.Inertia),
			fmt.Sprintf("%.2f", res.CriticalStress),
			fmt.Sprintf("%.2f", res.SafeCoeff),
			fmt.Sprintf("%.2f", res.LambdaMin),
			fmt.Sprintf("(%d,%d)", res.Local.I, res.Local.J),
			status,
		})
	}
	t.Render()
}

func printSummary(w io.Writer, run *panel.Run) {
	printHeading(w, "SUMMARY:")
	if k, i, ok := run.MinSafeCoeff(); ok {
		fmt.Fprintf(w, "  Lowest SafeCoeff:   %.2f (section %s)\n", k, run.Results[i].Section.ID)
	}
	if l, i, ok := run.MinLambda(); ok {
		fmt.Fprintf(w, "  Lowest lambd_min:   %.2f (section %s)\n", l, run.Results[i].Section.ID)
	}
	if n := run.Failed(); n > 0 {
		fmt.Fprintf(w, "  Not evaluated:      %d of %d sections\n", n, len(run.Results))
	}
	fmt.Fprintln(w)
}

func resultsData(run *panel.Run) diagram.ResultsData {
	data := diagram.ResultsData{
		Labels:    make([]string, len(run.Results)),
		SafeCoeff: make([]float64, len(run.Results)),
		Lambda:    make([]float64, len(run.Results)),
		Valid:     make([]bool, len(run.Results)),
	}
	for i, res := range run.Results {
		data.Labels[i] = res.Section.ID
		if data.Labels[i] == "" {
			data.Labels[i] = fmt.Sprintf("#%d", i+1)
		}
		data.SafeCoeff[i] = res.SafeCoeff
		data.Lambda[i] = res.LambdaMin
		data.Valid[i] = res.OK()
	}
	return data
}
