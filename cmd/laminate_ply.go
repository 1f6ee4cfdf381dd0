package cmd

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/alexiusacademia/golam/internal/laminate"
	"github.com/alexiusacademia/golam/internal/materials"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
)

var (
	plyMaterial  string
	plyAngle     float64
	plyThickness float64
	plyE1        float64
	plyE2        float64
	plyG         float64
	plyNu21      float64
	plyList      bool
)

var laminatePlyCmd = &cobra.Command{
	Use:   "ply",
	Short: "Reduced and transformed stiffness of a single ply",
	Long: `Compute the reduced stiffness Qt of an orthotropic ply in its material
axes and the transformed stiffness Qbar in the laminate axes.

The ply is either a material preset or given by its elastic constants.

Examples:
  golam laminate ply --list
  golam laminate ply --material t300-5208 --angle 45
  golam laminate ply --e1 140000 --e2 10000 --g 5000 --nu21 0.3 --angle -30`,
	RunE: runLaminatePly,
}

func init() {
	laminateCmd.AddCommand(laminatePlyCmd)

	f := laminatePlyCmd.Flags()
	f.StringVarP(&plyMaterial, "material", "m", "", "Material preset name")
	f.BoolVar(&plyList, "list", false, "List the material presets")
	f.Float64VarP(&plyAngle, "angle", "a", 0, "Fiber orientation (degrees)")
	f.Float64VarP(&plyThickness, "thickness", "t", 0, "Ply thickness (preset nominal if omitted)")

	// Elastic constants
	f.Float64Var(&plyE1, "e1", 0, "Longitudinal modulus E1")
	f.Float64Var(&plyE2, "e2", 0, "Transverse modulus E2")
	f.Float64Var(&plyG, "g", 0, "In-plane shear modulus G12")
	f.Float64Var(&plyNu21, "nu21", 0, "Minor Poisson's ratio nu21")

	laminatePlyCmd.MarkFlagsMutuallyExclusive("material", "e1")
}

func runLaminatePly(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()

	if plyList {
		printMaterials(out)
		return nil
	}

	var ply laminate.Ply
	switch {
	case plyMaterial != "":
		m, err := materials.Lookup(plyMaterial)
		if err != nil {
			return err
		}
		ply = m.Ply(plyAngle, plyThickness)
	case plyE1 != 0:
		ply = laminate.Ply{
			Number: 1, Orientation: plyAngle,
			E1: plyE1, E2: plyE2, G: plyG, Nu21: plyNu21,
			Thickness: plyThickness,
		}
		if ply.Thickness == 0 {
			ply.Thickness = 1
		}
	default:
		return errors.New("give a --material preset or the elastic constants --e1 --e2 --g --nu21")
	}

	if err := ply.Validate(); err != nil {
		return err
	}

	printTitle(out, "PLY STIFFNESS - CLASSICAL LAMINATION THEORY")
	printHeading(out, "PLY PROPERTIES:")
	if plyMaterial != "" {
		fmt.Fprintf(out, "  Material:     %s\n", strings.ToLower(plyMaterial))
	}
	fmt.Fprintf(out, "  E1:           %g\n", ply.E1)
	fmt.Fprintf(out, "  E2:           %g\n", ply.E2)
	fmt.Fprintf(out, "  G12:          %g\n", ply.G)
	fmt.Fprintf(out, "  nu21:         %g\n", ply.Nu21)
	fmt.Fprintf(out, "  nu12:         %.4f\n", ply.Nu12())
	fmt.Fprintf(out, "  Thickness:    %g\n", ply.Thickness)
	fmt.Fprintf(out, "  Orientation:  %g°\n", ply.Orientation)
	fmt.Fprintln(out)

	printHeading(out, "REDUCED STIFFNESS Qt (material axes):")
	printMatrix(out, ply.ReducedStiffness(), "%.2f")
	fmt.Fprintln(out)

	printHeading(out, "TRANSFORMED STIFFNESS Qbar (laminate axes):")
	printMatrix(out, ply.TransformedStiffness(), "%.2f")
	fmt.Fprintln(out)
	return nil
}

func printMaterials(w io.Writer) {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{"Name", "E1", "E2", "G", "nu21", "t", "Description"})
	for _, name := range materials.Names() {
		m := materials.Presets[name]
		t.AppendRow(table.Row{m.Name, m.E1, m.E2, m.G, m.Nu21, m.Thickness, m.Description})
	}
	t.Render()
}
