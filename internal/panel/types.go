// Package panel evaluates buckling of a compression panel stiffened by
// T-section stringers: effective skin thickness, stringer area ratio, section
// moment of inertia, Euler global buckling and Rayleigh-Ritz local buckling.
package panel

import (
	"errors"
	"fmt"
	"math"
)

var (
	// ErrInvalidGeometry is returned when a cross-section produces
	// non-physical element areas or dimensions.
	ErrInvalidGeometry = errors.New("invalid geometry")

	// ErrDivisionByZero is returned when a pitch or load used as a
	// denominator is zero.
	ErrDivisionByZero = errors.New("division by zero")
)

// Section is one spanwise panel section. All lengths share the unit system
// of the input table.
type Section struct {
	ID string

	// Carried through from the input; not used by the computation
	RibWidth float64

	// Stringer web
	WebHeight    float64
	WebThickness float64

	// Stringer boom (flange)
	BoomWidth     float64
	BoomThickness float64

	// Inner fillet radius between web and boom
	FilletRadius float64

	// Half-wave count of the global buckling mode
	HalfWaves int

	// Skin
	CoverThickness float64

	// In-plane running stresses: axial and transverse
	S11 float64
	S22 float64
}

// Pitches are the analysis-wide stringer and rib spacings
type Pitches struct {
	Stringer float64
	Rib      float64
}

// Validate checks that both pitches can be used as denominators
func (p Pitches) Validate() error {
	if p.Stringer == 0 {
		return &ValidationError{msg: "stringer pitch is zero", err: ErrDivisionByZero}
	}
	if p.Rib == 0 {
		return &ValidationError{msg: "rib pitch is zero", err: ErrDivisionByZero}
	}
	if !positive(p.Stringer) || !positive(p.Rib) {
		return &ValidationError{
			msg: fmt.Sprintf("pitches must be positive (stringer=%g, rib=%g)", p.Stringer, p.Rib),
			err: ErrInvalidGeometry,
		}
	}
	return nil
}

// ExternalRadius is the fillet radius measured to the outer fibre:
// r + (t_web + t_boom)/2
func (s Section) ExternalRadius() float64 {
	return s.FilletRadius + (s.WebThickness+s.BoomThickness)/2
}

// Scale returns a copy of the section with S11 and S22 multiplied by the
// given factors.
func (s Section) Scale(axial, transverse float64) Section {
	s.S11 *= axial
	s.S22 *= transverse
	return s
}

// Validate checks the cross-section is physically meaningful
func (s Section) Validate() error {
	for _, v := range []struct {
		name  string
		value float64
	}{
		{"width_rib", s.RibWidth}, {"web_string", s.WebHeight}, {"boom_string", s.BoomWidth},
		{"round_string", s.FilletRadius}, {"S11", s.S11}, {"S22", s.S22},
	} {
		if !finite(v.value) {
			return &ValidationError{msg: fmt.Sprintf("%s must be finite, got %g", v.name, v.value), err: ErrInvalidGeometry}
		}
	}
	if !positive(s.WebThickness) || !positive(s.BoomThickness) || !positive(s.CoverThickness) {
		return &ValidationError{
			msg: fmt.Sprintf("thicknesses must be positive and finite (web=%g, boom=%g, cover=%g)",
				s.WebThickness, s.BoomThickness, s.CoverThickness),
			err: ErrInvalidGeometry,
		}
	}
	if !(s.FilletRadius >= 0) {
		return &ValidationError{msg: fmt.Sprintf("fillet radius must not be negative, got %g", s.FilletRadius), err: ErrInvalidGeometry}
	}
	if s.HalfWaves < 1 {
		return &ValidationError{msg: fmt.Sprintf("half-wave count m must be at least 1, got %d", s.HalfWaves), err: ErrInvalidGeometry}
	}

	rExt := s.ExternalRadius()
	if rExt > s.WebHeight/2 {
		return &ValidationError{
			msg: fmt.Sprintf("external fillet radius %g exceeds half the web height %g", rExt, s.WebHeight),
			err: ErrInvalidGeometry,
		}
	}
	if rExt > s.BoomWidth/2 {
		return &ValidationError{
			msg: fmt.Sprintf("external fillet radius %g exceeds half the boom width %g", rExt, s.BoomWidth),
			err: ErrInvalidGeometry,
		}
	}
	return nil
}

// positive is false for NaN, which fails every comparison
func positive(v float64) bool {
	return v > 0 && !math.IsInf(v, 1)
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

// ValidationError represents a section or pitch validation error
type ValidationError struct {
	msg string
	err error
}

func (e *ValidationError) Error() string {
	return e.err.Error() + ": " + e.msg
}

func (e *ValidationError) Unwrap() error {
	return e.err
}
