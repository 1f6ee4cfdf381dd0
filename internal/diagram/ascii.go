package diagram

import (
	"fmt"
	"math"
	"strings"

	"github.com/guptarohit/asciigraph"
)

// StackData holds data for drawing a laminate stack
type StackData struct {
	Z           []float64 // Ply interfaces, len(Orientation)+1, top first
	Orientation []float64 // Degrees
	Numbers     []int     // Ply numbers as tabulated
}

// ResultsData holds per-section panel results for charts
type ResultsData struct {
	Labels    []string
	SafeCoeff []float64
	Lambda    []float64
	Valid     []bool // false for sections that failed
}

// DrawASCIIStack draws the ply stack with interface coordinates and a fill
// pattern per fiber direction
func DrawASCIIStack(data StackData) string {
	var sb strings.Builder

	widthChars := 30

	sb.WriteString("\n")
	sb.WriteString("  LAMINATE STACK\n")
	sb.WriteString("  ──────────────\n")

	n := len(data.Orientation)
	for i := 0; i <= n; i++ {
		var edge string
		switch i {
		case 0:
			edge = "┌" + strings.Repeat("─", widthChars) + "┐"
		case n:
			edge = "└" + strings.Repeat("─", widthChars) + "┘"
		default:
			edge = "├" + strings.Repeat("─", widthChars) + "┤"
		}
		sb.WriteString(fmt.Sprintf("  z = %9.4f %s\n", data.Z[i], edge))

		if i == n {
			break
		}

		label := fmt.Sprintf(" %+.0f° ", data.Orientation[i])
		fill := strings.Repeat(plyPattern(data.Orientation[i]), widthChars-len([]rune(label)))
		number := i + 1
		if i < len(data.Numbers) {
			number = data.Numbers[i]
		}
		sb.WriteString(fmt.Sprintf("  ply %-5d   │%s%s│\n", number, fill, label))
	}

	sb.WriteString("\n")
	sb.WriteString("  Legend:\n")
	sb.WriteString("  === 0°   ||| 90°   /// positive angle   \\\\\\ negative angle\n")

	return sb.String()
}

// plyPattern picks a fill character for a fiber angle
func plyPattern(deg float64) string {
	// Normalize to (-90, 90]
	a := math.Mod(deg, 180)
	if a > 90 {
		a -= 180
	} else if a <= -90 {
		a += 180
	}

	switch {
	case math.Abs(a) < 1e-9:
		return "="
	case math.Abs(a-90) < 1e-9:
		return "|"
	case a > 0:
		return "/"
	default:
		return "\\"
	}
}

// DrawASCIIResults plots the global safety coefficient and the local
// buckling factor of every evaluated section
func DrawASCIIResults(data ResultsData) string {
	var coeff, lambda []float64
	var labels []string
	for i := range data.SafeCoeff {
		if i < len(data.Valid) && !data.Valid[i] {
			continue
		}
		coeff = append(coeff, data.SafeCoeff[i])
		lambda = append(lambda, data.Lambda[i])
		labels = append(labels, data.Labels[i])
	}

	if len(coeff) == 0 {
		return "\n  No evaluated sections to plot.\n"
	}

	var sb strings.Builder
	sb.WriteString("\n")
	sb.WriteString(asciigraph.Plot(coeff,
		asciigraph.Height(10),
		asciigraph.Offset(3),
		asciigraph.Caption("Global safety coefficient by section"),
	))
	sb.WriteString("\n\n")
	sb.WriteString(asciigraph.Plot(lambda,
		asciigraph.Height(10),
		asciigraph.Offset(3),
		asciigraph.Caption("Local buckling factor by section"),
	))
	sb.WriteString("\n\n")
	sb.WriteString(fmt.Sprintf("  Sections (left to right): %s\n", strings.Join(labels, ", ")))

	return sb.String()
}
