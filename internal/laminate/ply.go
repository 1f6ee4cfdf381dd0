package laminate

import (
	"math"

	"gonum.org/v1/gonum/mat"
)

// ReducedStiffness returns the plane-stress stiffness Qt in material axes
func (p Ply) ReducedStiffness() *mat.Dense {
	nu12 := p.Nu12()
	den := 1 - nu12*p.Nu21

	return mat.NewDense(3, 3, []float64{
		p.E1 / den, nu12 * p.E1 / den, 0,
		nu12 * p.E1 / den, p.E2 / den, 0,
		0, 0, p.G,
	})
}

// TransformedStiffness returns Qbar = T·Qt·T⁻¹, the reduced stiffness rotated
// into laminate axes by the ply orientation.
func (p Ply) TransformedStiffness() *mat.Dense {
	t, tinv := rotation(p.Orientation)

	var qbar mat.Dense
	qbar.Product(t, p.ReducedStiffness(), tinv)
	return &qbar
}

// rotation builds the transformation matrix and its inverse for an angle in degrees
func rotation(deg float64) (t, tinv *mat.Dense) {
	rad := deg * math.Pi / 180
	c, s := math.Cos(rad), math.Sin(rad)

	t = mat.NewDense(3, 3, []float64{
		c * c, s * s, 2 * c * s,
		s * s, c * c, -2 * c * s,
		-c * s, c * s, c*c - s*s,
	})
	tinv = mat.NewDense(3, 3, []float64{
		c * c, s * s, -c * s,
		s * s, c * c, c * s,
		2 * c * s, -2 * c * s, c*c - s*s,
	})
	return t, tinv
}
