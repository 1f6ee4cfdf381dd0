package panel

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"
)

// ModeCount is the number of half-wave indices searched in each direction
// by the local buckling evaluation.
const ModeCount = 5

// Stiffness selects which ABD entries feed the local buckling formula
type Stiffness string

const (
	// StiffnessLegacy reads ABD positions [0,0], [0,1], [5,5] and [1,1] for
	// D11, D12, D66 and D22. This mixes A-block and D-block terms and
	// reproduces the established hand-calculation results.
	StiffnessLegacy Stiffness = "legacy"

	// StiffnessBending reads the bending block: [3,3], [3,4], [5,5], [4,4].
	StiffnessBending Stiffness = "bending"
)

// BayWidth selects the transverse length Ly of the local buckling bay
type BayWidth string

const (
	// BayWidthCover uses the skin thickness as Ly
	BayWidthCover BayWidth = "cover"

	// BayWidthClearSpan uses the clear skin span between booms,
	// stringer pitch - 2 * boom width.
	BayWidthClearSpan BayWidth = "clear-span"
)

// PlateStiffness holds the four bending terms of the Rayleigh-Ritz formula
type PlateStiffness struct {
	D11, D12, D22, D66 float64
}

// ReadPlateStiffness picks the plate terms out of a 6x6 ABD matrix
func ReadPlateStiffness(abd mat.Matrix, variant Stiffness) (PlateStiffness, error) {
	if r, c := abd.Dims(); r != 6 || c != 6 {
		return PlateStiffness{}, fmt.Errorf("ABD matrix must be 6x6, got %dx%d", r, c)
	}

	switch variant {
	case StiffnessLegacy, "":
		return PlateStiffness{
			D11: abd.At(0, 0),
			D12: abd.At(0, 1),
			D22: abd.At(1, 1),
			D66: abd.At(5, 5),
		}, nil
	case StiffnessBending:
		return PlateStiffness{
			D11: abd.At(3, 3),
			D12: abd.At(3, 4),
			D22: abd.At(4, 4),
			D66: abd.At(5, 5),
		}, nil
	}
	return PlateStiffness{}, fmt.Errorf("unknown stiffness variant %q", variant)
}

// CriticalStress is the Euler column buckling stress m²·π²·Ex·J / L²
func CriticalStress(halfWaves int, ex, inertia, ribPitch float64) (float64, error) {
	if ribPitch == 0 {
		return 0, &ValidationError{msg: "rib pitch is zero", err: ErrDivisionByZero}
	}
	m := float64(halfWaves)
	return m * m * math.Pi * math.Pi * ex * inertia / (ribPitch * ribPitch), nil
}

// SafetyCoefficient is the ratio of critical stress to applied axial stress
func SafetyCoefficient(critical, s11 float64) (float64, error) {
	if s11 == 0 {
		return 0, &ValidationError{msg: "axial load S11 is zero", err: ErrDivisionByZero}
	}
	return critical / s11, nil
}

// LocalBuckling is the outcome of the Rayleigh-Ritz search
type LocalBuckling struct {
	Grid   [ModeCount][ModeCount]float64 // Load factor for half-waves (i+1, j+1)
	Lambda float64                       // Minimum over the grid
	I, J   int                           // Half-wave counts at the minimum
}

// SearchLocalBuckling evaluates the load factor
//
//	λ(i,j) = π²(D11 a⁴ + 2(D12 + 2 D66) a² b² + D22 b⁴) / (Nx a² + Ny b²)
//
// with a = i/lx and b = j/ly for i, j in 1..ModeCount and returns the minimum.
// Ties keep the first cell in row-major order.
//
// Ny = 0 is accepted: S22 only enters the denominator next to Nx a², so an
// axial-only load (S22 = 0, S11 != 0) still gives a finite factor. The search
// fails with ErrDivisionByZero only when a denominator Nx a² + Ny b² is zero.
func SearchLocalBuckling(d PlateStiffness, lx, ly, nx, ny float64) (*LocalBuckling, error) {
	for _, v := range []float64{lx, ly, nx, ny, d.D11, d.D12, d.D22, d.D66} {
		if !finite(v) {
			return nil, &ValidationError{msg: fmt.Sprintf("non-finite input %g", v), err: ErrInvalidGeometry}
		}
	}
	if lx == 0 || ly == 0 {
		return nil, &ValidationError{msg: fmt.Sprintf("bay dimensions must be non-zero (Lx=%g, Ly=%g)", lx, ly), err: ErrDivisionByZero}
	}

	res := &LocalBuckling{Lambda: math.Inf(1)}
	for i := 1; i <= ModeCount; i++ {
		for j := 1; j <= ModeCount; j++ {
			a := float64(i) / lx
			b := float64(j) / ly
			a2, b2 := a*a, b*b

			den := nx*a2 + ny*b2
			if den == 0 {
				return nil, &ValidationError{
					msg: fmt.Sprintf("in-plane load term vanishes for mode (%d, %d)", i, j),
					err: ErrDivisionByZero,
				}
			}

			num := math.Pi * math.Pi * (d.D11*a2*a2 + 2*(d.D12+2*d.D66)*a2*b2 + d.D22*b2*b2)
			lambda := num / den
			res.Grid[i-1][j-1] = lambda

			if lambda < res.Lambda {
				res.Lambda = lambda
				res.I, res.J = i, j
			}
		}
	}
	return res, nil
}
