// Package laminate implements classical lamination theory for a stack of
// orthotropic plies: rotated reduced stiffness per ply, the 6x6 ABD matrix,
// its compliance and the homogenized engineering moduli.
package laminate

import (
	"errors"
	"fmt"
	"math"
)

var (
	// ErrSingularLaminate is returned when the ABD matrix cannot be inverted.
	ErrSingularLaminate = errors.New("singular laminate")

	// ErrDivisionByZero is returned when a property used as a denominator is zero.
	ErrDivisionByZero = errors.New("division by zero")

	// ErrInvalidPly is returned for physically inadmissible ply properties.
	ErrInvalidPly = errors.New("invalid ply")
)

// Ply is a single layer of the laminate. Stacking order is the order of the
// slice it lives in; the first ply is the top of the stack.
type Ply struct {
	Number      int     // Ply number as given in the input table
	Orientation float64 // Fiber angle (degrees)
	E1          float64 // Longitudinal modulus
	E2          float64 // Transverse modulus
	G           float64 // In-plane shear modulus
	Nu21        float64 // Poisson ratio as tabulated
	Thickness   float64 // Ply thickness
}

// Nu12 returns the reciprocal Poisson ratio nu21*E2/E1.
func (p Ply) Nu12() float64 {
	return p.Nu21 * p.E2 / p.E1
}

// Validate checks that the ply properties are physically admissible
func (p Ply) Validate() error {
	if p.E1 == 0 {
		return &ValidationError{msg: "E1 is zero", err: ErrDivisionByZero}
	}
	if !positive(p.E1) || !positive(p.E2) || !positive(p.G) {
		return &ValidationError{
			msg: fmt.Sprintf("moduli must be positive and finite (E1=%g, E2=%g, G=%g)", p.E1, p.E2, p.G),
			err: ErrInvalidPly,
		}
	}
	if math.IsNaN(p.Orientation) || math.IsInf(p.Orientation, 0) {
		return &ValidationError{msg: fmt.Sprintf("orientation must be finite, got %g", p.Orientation), err: ErrInvalidPly}
	}
	if !positive(p.Thickness) {
		return &ValidationError{msg: fmt.Sprintf("thickness must be positive and finite, got %g", p.Thickness), err: ErrInvalidPly}
	}
	if nn := p.Nu12() * p.Nu21; !(nn >= 0 && nn < 1) {
		return &ValidationError{msg: fmt.Sprintf("nu12*nu21 = %g is outside [0, 1)", nn), err: ErrInvalidPly}
	}
	return nil
}

// positive is false for NaN, which fails every comparison
func positive(v float64) bool {
	return v > 0 && !math.IsInf(v, 1)
}

// Moduli holds the effective engineering constants of a laminate
type Moduli struct {
	Ex   float64
	Ey   float64
	Gxy  float64
	NuXY float64
}

// ValidationError describes why a ply or laminate was rejected
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
