package cmd

import (
	"github.com/alexiusacademia/golam/internal/loads"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
)

var casesCmd = &cobra.Command{
	Use:   "cases",
	Short: "List the built-in load cases",
	Long: `List the load cases that scale the tabulated S11 and S22 before a
panel analysis. The tabulated stresses are taken as limit values.

Examples:
  golam cases
  golam panel analyze -l layup.csv -p panel.csv --load-case ultimate`,
	Run: func(cmd *cobra.Command, args []string) {
		out := cmd.OutOrStdout()
		printTitle(out, "LOAD CASES")

		t := table.NewWriter()
		t.SetOutputMirror(out)
		t.SetStyle(table.StyleLight)
		t.AppendHeader(table.Row{"ID", "S11 factor", "S22 factor", "Description"})
		for _, lc := range loads.LoadCases {
			t.AppendRow(table.Row{lc.ID, lc.Axial, lc.Transverse, lc.Description})
		}
		t.Render()
	},
}

func init() {
	rootCmd.AddCommand(casesCmd)
}
