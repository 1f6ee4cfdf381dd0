package materials

import (
	"fmt"
	"sort"
	"strings"

	"github.com/alexiusacademia/golam/internal/laminate"
)

// Material holds unidirectional ply properties (MPa, mm). Nu21 follows the
// laminate table convention: it is the ratio paired with E1, and the
// reciprocal ratio is derived as nu21*E2/E1.
type Material struct {
	Name        string
	Description string
	E1          float64
	E2          float64
	G           float64
	Nu21        float64
	Thickness   float64 // Nominal cured ply thickness
}

// Presets of commonly used ply materials, typical handbook values
var Presets = map[string]Material{
	"t300-5208": {
		Name: "t300-5208", Description: "T300/5208 carbon/epoxy",
		E1: 181000, E2: 10300, G: 7170, Nu21: 0.28, Thickness: 0.125,
	},
	"as4-3501-6": {
		Name: "as4-3501-6", Description: "AS4/3501-6 carbon/epoxy",
		E1: 138000, E2: 8960, G: 7100, Nu21: 0.30, Thickness: 0.13,
	},
	"e-glass-epoxy": {
		Name: "e-glass-epoxy", Description: "E-glass/epoxy",
		E1: 38600, E2: 8270, G: 4140, Nu21: 0.26, Thickness: 0.2,
	},
	"kevlar49-epoxy": {
		Name: "kevlar49-epoxy", Description: "Kevlar 49/epoxy",
		E1: 76000, E2: 5500, G: 2300, Nu21: 0.34, Thickness: 0.125,
	},
	"al-2024-t3": {
		Name: "al-2024-t3", Description: "Aluminium 2024-T3 sheet (isotropic)",
		E1: 73100, E2: 73100, G: 28000, Nu21: 0.33, Thickness: 1.0,
	},
}

// Lookup returns a preset by name, case-insensitively
func Lookup(name string) (Material, error) {
	if m, ok := Presets[strings.ToLower(strings.TrimSpace(name))]; ok {
		return m, nil
	}
	return Material{}, fmt.Errorf("unknown material %q (available: %s)", name, strings.Join(Names(), ", "))
}

// Names lists the preset names in sorted order
func Names() []string {
	names := make([]string, 0, len(Presets))
	for n := range Presets {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// Ply builds a ply of this material at the given orientation. A thickness
// of zero selects the nominal ply thickness.
func (m Material) Ply(orientation, thickness float64) laminate.Ply {
	if thickness == 0 {
		thickness = m.Thickness
	}
	return laminate.Ply{
		Orientation: orientation,
		E1:          m.E1,
		E2:          m.E2,
		G:           m.G,
		Nu21:        m.Nu21,
		Thickness:   thickness,
	}
}
