package laminate

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"
)

// Laminate is an immutable, fully evaluated ply stack. All derived matrices
// are computed once by NewLaminate; accessors hand out copies, so a single
// Laminate can be shared by concurrent panel evaluations.
type Laminate struct {
	plies      []Ply
	qbar       []*mat.Dense
	z          []float64
	abd        *mat.Dense
	compliance *mat.Dense
	moduli     Moduli
}

// NewLaminate validates the plies and runs the stiffness pipeline
func NewLaminate(plies []Ply) (*Laminate, error) {
	if len(plies) == 0 {
		return nil, &ValidationError{msg: "laminate has no plies", err: ErrInvalidPly}
	}
	for i, p := range plies {
		if err := p.Validate(); err != nil {
			return nil, fmt.Errorf("ply %d: %w", i+1, err)
		}
	}

	lam := &Laminate{
		plies: append([]Ply(nil), plies...),
		qbar:  make([]*mat.Dense, len(plies)),
	}
	for i, p := range lam.plies {
		lam.qbar[i] = p.TransformedStiffness()
	}
	lam.z = Coordinates(lam.plies)
	lam.abd = Stiffness(lam.qbar, lam.z)

	var err error
	if lam.compliance, err = Compliance(lam.abd); err != nil {
		return nil, err
	}
	if lam.moduli, err = EffectiveModuli(lam.compliance, lam.Thickness()); err != nil {
		return nil, err
	}
	return lam, nil
}

// Plies returns a copy of the ply stack
func (l *Laminate) Plies() []Ply {
	return append([]Ply(nil), l.plies...)
}

// Z returns a copy of the interface coordinates
func (l *Laminate) Z() []float64 {
	return append([]float64(nil), l.z...)
}

// Thickness is the total laminate thickness max(z) - min(z)
func (l *Laminate) Thickness() float64 {
	return l.z[len(l.z)-1] - l.z[0]
}

// Moduli returns the effective engineering constants
func (l *Laminate) Moduli() Moduli {
	return l.moduli
}

// ABD returns a copy of the 6x6 stiffness matrix
func (l *Laminate) ABD() *mat.Dense {
	return mat.DenseCopyOf(l.abd)
}

// Compliance returns a copy of the 6x6 compliance matrix
func (l *Laminate) Compliance() *mat.Dense {
	return mat.DenseCopyOf(l.compliance)
}

// TransformedStiffness returns Qbar of ply i
func (l *Laminate) TransformedStiffness(i int) *mat.Dense {
	return mat.DenseCopyOf(l.qbar[i])
}

func (l *Laminate) A() *mat.Dense { return l.block(0, 0) }
func (l *Laminate) B() *mat.Dense { return l.block(0, 3) }
func (l *Laminate) D() *mat.Dense { return l.block(3, 3) }

func (l *Laminate) block(i, j int) *mat.Dense {
	return mat.DenseCopyOf(l.abd.Slice(i, i+3, j, j+3))
}

// IsSymmetric reports whether the coupling block B vanishes relative to the
// largest A entry.
func (l *Laminate) IsSymmetric(tol float64) bool {
	scale := mat.Max(l.A())
	b := l.B()
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			if math.Abs(b.At(i, j)) > tol*scale {
				return false
			}
		}
	}
	return true
}

// IsBalanced reports whether the extension-shear terms A16 and A26 vanish
func (l *Laminate) IsBalanced(tol float64) bool {
	a := l.A()
	scale := mat.Max(a)
	return math.Abs(a.At(0, 2)) <= tol*scale && math.Abs(a.At(1, 2)) <= tol*scale
}
