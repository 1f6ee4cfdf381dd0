package loads

import (
	"fmt"
	"strings"

	"github.com/alexiusacademia/golam/internal/panel"
)

// UltimateFactor is the factor of safety between limit and ultimate load
const UltimateFactor = 1.5

// LoadCase scales the tabulated in-plane stresses before analysis
type LoadCase struct {
	ID          string
	Description string
	// Factors on the tabulated stresses
	Axial      float64 // S11
	Transverse float64 // S22
}

// LoadCases are the built-in cases. The tabulated stresses are limit values.
var LoadCases = []LoadCase{
	{
		ID:          "limit",
		Description: "1.0 S11 + 1.0 S22 (limit load)",
		Axial:       1.0,
		Transverse:  1.0,
	},
	{
		ID:          "ultimate",
		Description: "1.5 S11 + 1.5 S22 (ultimate load)",
		Axial:       UltimateFactor,
		Transverse:  UltimateFactor,
	},
	{
		ID:          "axial-only",
		Description: "1.5 S11 (ultimate, transverse load removed)",
		Axial:       UltimateFactor,
		Transverse:  0,
	},
}

// Lookup finds a built-in load case by ID, case-insensitively
func Lookup(id string) (LoadCase, error) {
	for _, lc := range LoadCases {
		if strings.EqualFold(lc.ID, id) {
			return lc, nil
		}
	}
	ids := make([]string, len(LoadCases))
	for i, lc := range LoadCases {
		ids[i] = lc.ID
	}
	return LoadCase{}, fmt.Errorf("unknown load case %q (available: %s)", id, strings.Join(ids, ", "))
}

// Apply returns the sections with this case's factors applied
func (lc LoadCase) Apply(sections []panel.Section) []panel.Section {
	out := make([]panel.Section, len(sections))
	for i, s := range sections {
		out[i] = s.Scale(lc.Axial, lc.Transverse)
	}
	return out
}

// CaseRun pairs a load case with the panel analysis made under it
type CaseRun struct {
	Case LoadCase
	Run  *panel.Run
}

// Governing finds the case with the lowest global safety coefficient over
// all evaluated sections. ok is false when no case has an evaluated section.
func Governing(runs []CaseRun) (governing CaseRun, minCoeff float64, ok bool) {
	for _, cr := range runs {
		if cr.Run == nil {
			continue
		}
		k, _, found := cr.Run.MinSafeCoeff()
		if !found {
			continue
		}
		if !ok || k < minCoeff {
			governing, minCoeff, ok = cr, k, true
		}
	}
	return governing, minCoeff, ok
}
