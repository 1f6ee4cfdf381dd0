package laminate

import (
	"math"

	"gonum.org/v1/gonum/mat"
)

// ZeroTolerance is the magnitude at or below which ABD and compliance
// entries are set to exactly zero.
const ZeroTolerance = 1e-10

// Coordinates returns the through-thickness ply interfaces, len(plies)+1
// values increasing from the top of the stack and centered on the mid-plane.
func Coordinates(plies []Ply) []float64 {
	z := make([]float64, len(plies)+1)
	for i, p := range plies {
		z[i+1] = z[i] + p.Thickness
	}

	half := z[len(z)-1] / 2
	for i := range z {
		z[i] -= half
	}
	return z
}

// Stiffness integrates the rotated ply stiffnesses over the coordinates z and
// assembles the 6x6 matrix [[A, B], [B, D]].
func Stiffness(qbar []*mat.Dense, z []float64) *mat.Dense {
	a := mat.NewDense(3, 3, nil)
	b := mat.NewDense(3, 3, nil)
	d := mat.NewDense(3, 3, nil)

	var term mat.Dense
	for i, q := range qbar {
		lo, hi := z[i], z[i+1]

		term.Scale(hi-lo, q)
		a.Add(a, &term)

		term.Scale(0.5*(hi*hi-lo*lo), q)
		b.Add(b, &term)

		term.Scale((hi*hi*hi-lo*lo*lo)/3, q)
		d.Add(d, &term)
	}

	abd := mat.NewDense(6, 6, nil)
	abd.Slice(0, 3, 0, 3).(*mat.Dense).Copy(a)
	abd.Slice(0, 3, 3, 6).(*mat.Dense).Copy(b)
	abd.Slice(3, 6, 0, 3).(*mat.Dense).Copy(b)
	abd.Slice(3, 6, 3, 6).(*mat.Dense).Copy(d)

	zeroSmall(abd)
	return abd
}

// zeroSmall clears entries with magnitude at or below ZeroTolerance
func zeroSmall(m *mat.Dense) {
	r, c := m.Dims()
	for i := 0; i < r; i++ {
		for j := 0; j < c; j++ {
			if math.Abs(m.At(i, j)) <= ZeroTolerance {
				m.Set(i, j, 0)
			}
		}
	}
}
