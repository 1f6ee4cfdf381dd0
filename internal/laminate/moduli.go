package laminate

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"
)

// Compliance inverts the ABD matrix. Entries at or below ZeroTolerance are
// cleared. Any inversion failure, including a condition number beyond
// gonum's tolerance, is reported as ErrSingularLaminate.
func Compliance(abd mat.Matrix) (*mat.Dense, error) {
	r, c := abd.Dims()
	for i := 0; i < r; i++ {
		for j := 0; j < c; j++ {
			if v := abd.At(i, j); math.IsNaN(v) || math.IsInf(v, 0) {
				return nil, fmt.Errorf("%w: ABD[%d,%d] is %g", ErrSingularLaminate, i, j, v)
			}
		}
	}

	var s mat.Dense
	if err := s.Inverse(abd); err != nil {
		var cond mat.Condition
		if errors.As(err, &cond) {
			return nil, fmt.Errorf("%w: condition number %g", ErrSingularLaminate, float64(cond))
		}
		return nil, fmt.Errorf("%w: %v", ErrSingularLaminate, err)
	}

	zeroSmall(&s)
	return &s, nil
}

// EffectiveModuli derives Ex, Ey, Gxy and nuxy from the compliance matrix and
// the total laminate thickness h.
func EffectiveModuli(s mat.Matrix, h float64) (Moduli, error) {
	if h == 0 {
		return Moduli{}, fmt.Errorf("%w: laminate thickness is zero", ErrDivisionByZero)
	}
	for _, i := range []int{0, 1, 2} {
		v := s.At(i, i)
		if v == 0 {
			return Moduli{}, fmt.Errorf("%w: compliance S%d%d is zero", ErrSingularLaminate, i, i)
		}
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return Moduli{}, fmt.Errorf("%w: compliance S%d%d is %g", ErrSingularLaminate, i, i, v)
		}
	}
	if v := s.At(0, 1); math.IsNaN(v) || math.IsInf(v, 0) {
		return Moduli{}, fmt.Errorf("%w: compliance S01 is %g", ErrSingularLaminate, v)
	}

	return Moduli{
		Ex:   1 / s.At(0, 0) / h,
		Ey:   1 / s.At(1, 1) / h,
		Gxy:  1 / s.At(2, 2) / h,
		NuXY: math.Abs(s.At(0, 1) / s.At(0, 0)),
	}, nil
}
