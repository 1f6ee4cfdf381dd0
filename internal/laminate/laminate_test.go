package laminate

import (
	"errors"
	"fmt"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"
)

func aluminum(angle, thickness float64) Ply {
	return Ply{Orientation: angle, E1: 70000, E2: 70000, G: 26900, Nu21: 0.3, Thickness: thickness}
}

func carbon(angle float64) Ply {
	return Ply{Orientation: angle, E1: 181000, E2: 10300, G: 7170, Nu21: 0.28, Thickness: 0.125}
}

func TestTransformedStiffness_ZeroAngleIsIdentityRotation(t *testing.T) {
	p := carbon(0)
	assert.True(t, mat.EqualApprox(p.ReducedStiffness(), p.TransformedStiffness(), 1e-9))
}

func TestTransformedStiffness_NinetyDegreesSwapsAxes(t *testing.T) {
	q := carbon(0).ReducedStiffness()
	qbar := carbon(90).TransformedStiffness()

	assert.InDelta(t, q.At(0, 0), qbar.At(1, 1), 1e-6)
	assert.InDelta(t, q.At(1, 1), qbar.At(0, 0), 1e-6)
	assert.InDelta(t, q.At(2, 2), qbar.At(2, 2), 1e-6)
}

func TestCoordinates(t *testing.T) {
	z := Coordinates([]Ply{aluminum(0, 1), aluminum(0, 2), aluminum(0, 1)})

	require.Len(t, z, 4)
	assert.InDeltaSlice(t, []float64{-2, -1, 1, 2}, z, 1e-12)
}

func TestNewLaminate_IsotropicPly(t *testing.T) {
	lam, err := NewLaminate([]Ply{aluminum(0, 1)})
	require.NoError(t, err)

	m := lam.Moduli()
	assert.InEpsilon(t, 70000, m.Ex, 1e-9)
	assert.InEpsilon(t, 70000, m.Ey, 1e-9)
	assert.InEpsilon(t, 26900, m.Gxy, 1e-9)
	assert.InDelta(t, 0.3, m.NuXY, 1e-9)

	// Single isotropic plate: A11 = E*h/(1-nu^2), D11 = E*h^3/(12(1-nu^2))
	abd := lam.ABD()
	assert.InEpsilon(t, 70000/(1-0.09), abd.At(0, 0), 1e-9)
	assert.InEpsilon(t, 70000/(1-0.09)/12, abd.At(3, 3), 1e-9)
	assert.Equal(t, 1.0, lam.Thickness())
}

func TestNewLaminate_ABDSymmetry(t *testing.T) {
	stacks := map[string][]Ply{
		"cross-ply":  {carbon(0), carbon(90)},
		"angle-ply":  {carbon(45), carbon(-45), carbon(0), carbon(30)},
		"quasi-iso":  {carbon(0), carbon(45), carbon(-45), carbon(90)},
		"mixed":      {aluminum(0, 0.5), carbon(60), carbon(-15)},
		"single-off": {carbon(33)},
	}

	for name, plies := range stacks {
		t.Run(name, func(t *testing.T) {
			lam, err := NewLaminate(plies)
			require.NoError(t, err)

			abd := lam.ABD()
			assert.True(t, mat.EqualApprox(abd, abd.T(), 1e-6), "ABD must be symmetric")
			assert.True(t, mat.EqualApprox(lam.A(), lam.A().T(), 1e-6))
			assert.True(t, mat.EqualApprox(lam.D(), lam.D().T(), 1e-6))
		})
	}
}

func TestNewLaminate_SymmetricStackHasNoCoupling(t *testing.T) {
	lam, err := NewLaminate([]Ply{carbon(0), carbon(45), carbon(-45), carbon(90), carbon(90), carbon(-45), carbon(45), carbon(0)})
	require.NoError(t, err)

	b := lam.B()
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			assert.InDelta(t, 0, b.At(i, j), 1e-6, "B[%d][%d]", i, j)
		}
	}
	assert.True(t, lam.IsSymmetric(1e-9))
	assert.True(t, lam.IsBalanced(1e-9))
}

func TestNewLaminate_UnsymmetricStackHasCoupling(t *testing.T) {
	lam, err := NewLaminate([]Ply{carbon(0), carbon(90)})
	require.NoError(t, err)

	assert.False(t, lam.IsSymmetric(1e-9))
	assert.NotZero(t, lam.B().At(0, 0))
}

func TestNewLaminate_ComplianceRoundTrip(t *testing.T) {
	lam, err := NewLaminate([]Ply{carbon(0), carbon(45), carbon(90), carbon(-45)})
	require.NoError(t, err)

	var product mat.Dense
	product.Mul(lam.ABD(), lam.Compliance())

	identity := mat.NewDiagDense(6, []float64{1, 1, 1, 1, 1, 1})
	assert.True(t, mat.EqualApprox(&product, identity, 1e-4))
}

func TestNewLaminate_CrossPlyIsOrthotropic(t *testing.T) {
	lam, err := NewLaminate([]Ply{carbon(0), carbon(90)})
	require.NoError(t, err)

	m := lam.Moduli()
	assert.InEpsilon(t, m.Ex, m.Ey, 1e-9)
}

func TestNewLaminate_Errors(t *testing.T) {
	tests := []struct {
		name    string
		plies   []Ply
		wantErr error
	}{
		{"empty", nil, ErrInvalidPly},
		{"zero E1", []Ply{{E1: 0, E2: 10, G: 5, Nu21: 0.3, Thickness: 1}}, ErrDivisionByZero},
		{"zero thickness", []Ply{aluminum(0, 0)}, ErrInvalidPly},
		{"negative shear", []Ply{{E1: 10, E2: 10, G: -1, Nu21: 0.3, Thickness: 1}}, ErrInvalidPly},
		{"poisson too large", []Ply{{E1: 10, E2: 10, G: 5, Nu21: 1.2, Thickness: 1}}, ErrInvalidPly},
		{"NaN E1", []Ply{{E1: math.NaN(), E2: 10, G: 5, Nu21: 0.3, Thickness: 1}}, ErrInvalidPly},
		{"NaN E2", []Ply{{E1: 10, E2: math.NaN(), G: 5, Nu21: 0.3, Thickness: 1}}, ErrInvalidPly},
		{"infinite shear", []Ply{{E1: 10, E2: 10, G: math.Inf(1), Nu21: 0.3, Thickness: 1}}, ErrInvalidPly},
		{"NaN thickness", []Ply{{E1: 10, E2: 10, G: 5, Nu21: 0.3, Thickness: math.NaN()}}, ErrInvalidPly},
		{"NaN poisson", []Ply{{E1: 10, E2: 10, G: 5, Nu21: math.NaN(), Thickness: 1}}, ErrInvalidPly},
		{"infinite orientation", []Ply{{Orientation: math.Inf(-1), E1: 10, E2: 10, G: 5, Nu21: 0.3, Thickness: 1}}, ErrInvalidPly},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewLaminate(tt.plies)
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestCompliance_Singular(t *testing.T) {
	_, err := Compliance(mat.NewDense(6, 6, nil))
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrSingularLaminate))
}

func TestCompliance_NonFinite(t *testing.T) {
	abd := mat.NewDiagDense(6, []float64{1, 1, 1, 1, 1, 1})
	m := mat.DenseCopyOf(abd)
	m.Set(2, 2, math.NaN())
	_, err := Compliance(m)
	assert.ErrorIs(t, err, ErrSingularLaminate)
}

func TestEffectiveModuli_NonFiniteCompliance(t *testing.T) {
	for _, v := range []float64{math.NaN(), math.Inf(1)} {
		s := mat.NewDense(6, 6, nil)
		for i := 0; i < 6; i++ {
			s.Set(i, i, 1)
		}
		s.Set(1, 1, v)
		_, err := EffectiveModuli(s, 1)
		assert.ErrorIs(t, err, ErrSingularLaminate, "S11 = %g", v)
	}
}

func TestEffectiveModuli_ZeroThickness(t *testing.T) {
	_, err := EffectiveModuli(mat.NewDiagDense(6, []float64{1, 1, 1, 1, 1, 1}), 0)
	assert.ErrorIs(t, err, ErrDivisionByZero)
}

func TestLaminate_AccessorsReturnCopies(t *testing.T) {
	lam, err := NewLaminate([]Ply{aluminum(0, 1)})
	require.NoError(t, err)

	abd := lam.ABD()
	abd.Set(0, 0, -1)
	assert.NotEqual(t, -1.0, lam.ABD().At(0, 0))

	z := lam.Z()
	z[0] = 100
	assert.Equal(t, -0.5, lam.Z()[0])
}

func Example() {
	plies := []Ply{
		{Number: 1, Orientation: 0, E1: 70000, E2: 70000, G: 26900, Nu21: 0.3, Thickness: 1},
	}
	lam, err := NewLaminate(plies)
	if err != nil {
		fmt.Println(err)
		return
	}
	m := lam.Moduli()
	fmt.Printf("Ex=%.1f Ey=%.1f Gxy=%.1f NUxy=%.3f\n", m.Ex, m.Ey, m.Gxy, m.NuXY)
	// Output:
	// Ex=70000.0 Ey=70000.0 Gxy=26900.0 NUxy=0.300
}
