package cmd

import (
	"github.com/spf13/cobra"
)

var panelCmd = &cobra.Command{
	Use:   "panel",
	Short: "Stringer-stiffened panel buckling analysis",
	Long: `Check stringer-stiffened panels for global (Euler) and local
(Rayleigh-Ritz) buckling using the effective moduli and ABD matrix of a
laminate.

The panel is defined in a CSV or XLSX table with one row per section:

  width_rib, web_string, thick_web, boom_string, thick_boom,
  round_string, m, thick_cover, S11, S22, sections, step_string,
  step_rib

The stringer pitch (step_string) and rib pitch (step_rib) are taken
from the first row unless overridden.

Subcommands:
  analyze  - Evaluate every section of a panel table`,
}

func init() {
	rootCmd.AddCommand(panelCmd)
}
