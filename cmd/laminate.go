package cmd

import (
	"github.com/spf13/cobra"
)

var laminateCmd = &cobra.Command{
	Use:   "laminate",
	Short: "Composite laminate stiffness analysis",
	Long: `Analyze composite laminates using classical lamination theory.

The laminate is defined in a CSV or XLSX table with one row per ply,
listed from the top of the stack:

  number, orientation, E1, E2, G, thickness, nu21

A "material" column may name a preset instead of giving E1, E2, G,
nu21 and thickness; see 'golam laminate ply --help' for the presets.

Subcommands:
  analyze  - ABD matrix and effective moduli of a ply stack
  ply      - Reduced and transformed stiffness of a single ply`,
}

func init() {
	rootCmd.AddCommand(laminateCmd)
}
