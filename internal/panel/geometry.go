package panel

import (
	"fmt"
	"math"
)

// Geometry holds the cross-section properties of one stringer bay: the skin
// strip of width equal to the stringer pitch plus one T-stringer.
type Geometry struct {
	ExternalRadius float64

	// Element areas. Boom, web and fillet are per stringer leg.
	CoverArea  float64
	BoomArea   float64
	WebArea    float64
	FilletArea float64

	// Element centroid heights above the outer skin surface
	CoverY  float64
	BoomY   float64
	WebY    float64
	FilletY float64

	Centroid           float64 // Composite centroid height
	Inertia            float64 // Moment of inertia about the composite centroid
	EffectiveThickness float64 // Skin thickness smeared over the stringer pitch
	Ratio              float64 // Stringer share of the total compressed area
}

// CalculateGeometry computes the compressed-area properties of a section.
// With doubleLegs set, the parallel-axis inertia sum counts boom, web and
// fillet twice, consistent with the centroid average; otherwise they are
// counted once.
func (s Section) CalculateGeometry(stringerPitch float64, doubleLegs bool) (*Geometry, error) {
	if stringerPitch == 0 {
		return nil, &ValidationError{msg: "stringer pitch is zero", err: ErrDivisionByZero}
	}
	if !positive(stringerPitch) {
		return nil, &ValidationError{msg: fmt.Sprintf("stringer pitch must be positive and finite, got %g", stringerPitch), err: ErrInvalidGeometry}
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}

	g := &Geometry{}
	rExt := s.ExternalRadius()
	r := s.FilletRadius
	g.ExternalRadius = rExt

	g.CoverArea = stringerPitch * s.CoverThickness
	g.BoomArea = (s.BoomWidth - rExt) * s.BoomThickness
	g.WebArea = (s.WebHeight - rExt) * s.WebThickness
	g.FilletArea = math.Pi*rExt*rExt - math.Pi*r*r

	if g.CoverArea <= 0 || g.BoomArea <= 0 || g.WebArea <= 0 || g.FilletArea < 0 {
		return nil, &ValidationError{msg: "cross-section has non-positive element area", err: ErrInvalidGeometry}
	}

	legs := g.BoomArea + g.WebArea + g.FilletArea
	total := g.CoverArea + 2*legs

	g.EffectiveThickness = total / stringerPitch
	g.Ratio = 2 * legs / total

	// Own (centroidal) moments of inertia of each element
	jcBoom := (s.BoomWidth - rExt) * math.Pow(s.BoomThickness, 3) / 12
	jcWeb := s.WebThickness * math.Pow(s.WebHeight-rExt, 3) / 12
	jcFillet := math.Pi * math.Pow(2*rExt, 4) / 256 * (1 - math.Pow(r/rExt, 4))
	jcCover := stringerPitch * math.Pow(r, 3) / 12

	g.CoverY = s.CoverThickness / 2
	g.BoomY = s.BoomThickness/2 + s.CoverThickness
	g.WebY = s.CoverThickness + rExt + (s.WebHeight-rExt)/2
	g.FilletY = 4.0 / 3 / math.Pi * (rExt - r)

	g.Centroid = (g.CoverArea*g.CoverY +
		2*(g.BoomArea*g.BoomY+g.WebArea*g.WebY+g.FilletArea*g.FilletY)) / total

	y := g.Centroid
	legInertia := (jcBoom + g.BoomArea*sq(y-g.BoomY)) +
		(jcWeb + g.WebArea*sq(y-g.WebY)) +
		(jcFillet + g.FilletArea*sq(y-g.FilletY))
	if doubleLegs {
		legInertia *= 2
	}
	g.Inertia = jcCover + g.CoverArea*sq(y-g.CoverY) + legInertia

	return g, nil
}

func sq(x float64) float64 {
	return x * x
}
