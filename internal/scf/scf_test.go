package scf

import (
	"bytes"
	"errors"
	"log"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/keiran-rowell/hartee-fock/internal/integrals"
)

var (
	sto3gExps  = []float64{0.3425250914e+01, 0.6239137298e+00, 0.1688554040e+00}
	sto3gCoefs = []float64{0.1543289673e+00, 0.5353281423e+00, 0.4446345422e+00}

	g631Exps  = []float64{0.1873113696e+02, 0.2825394365e+01, 0.6401216923e+00}
	g631Coefs = []float64{0.3349460434e-01, 0.2347269535e+00, 0.8137573261e+00}
)

func h2Problem(t *testing.T, r float64, split bool) Problem {
	t.Helper()
	centers := []r3.Vec{{}, {Z: r}}
	var p Problem
	for _, c := range centers {
		if split {
			f, err := integrals.NewContracted(c, g631Exps, g631Coefs)
			require.NoError(t, err)
			p.Basis = append(p.Basis, f)
			f, err = integrals.NewContracted(c, []float64{0.1612777588}, []float64{1})
			require.NoError(t, err)
			p.Basis = append(p.Basis, f)
		} else {
			f, err := integrals.NewContracted(c, sto3gExps, sto3gCoefs)
			require.NoError(t, err)
			p.Basis = append(p.Basis, f)
		}
		p.Nuclei = append(p.Nuclei, integrals.Nucleus{Position: c, Charge: 1})
	}
	p.Electrons = 2
	return p
}

func TestH2STO3GEnergy(t *testing.T) {
	var buf bytes.Buffer
	opts := DefaultOptions()
	opts.Logger = log.New(&buf, "", 0)

	e, err := NewEngine(h2Problem(t, 1.4, false), opts)
	require.NoError(t, err)
	res, err := e.Run()
	require.NoError(t, err)

	assert.True(t, res.Converged)
	assert.Equal(t, StatusConverged, res.Status)
	assert.InDelta(t, -1.117, res.Energy, 1e-3)
	assert.InDelta(t, -1.1167, res.Energy, 2e-4)
	assert.InDelta(t, 1/1.4, res.Nuclear, 1e-15)
	assert.InDelta(t, res.Energy-res.Nuclear, res.Electronic, 1e-12)
	assert.InDelta(t, 2.0, res.ElectronCount, 1e-10)
	require.Len(t, res.OrbitalEnergies, 2)
	assert.InDelta(t, -0.578, res.OrbitalEnergies[0], 1e-3)
	assert.InDelta(t, 0.670, res.OrbitalEnergies[1], 1e-3)
	assert.Contains(t, buf.String(), "SCF converged after step")
}

func TestH2ConvergesMonotonically(t *testing.T) {
	e, err := NewEngine(h2Problem(t, 1.4, false), DefaultOptions())
	require.NoError(t, err)
	res, err := e.Run()
	require.NoError(t, err)

	require.LessOrEqual(t, res.Iterations, DefaultMaxIterations)
	require.Len(t, res.History, res.Iterations)
	for k := 2; k < len(res.History); k++ {
		assert.LessOrEqualf(t, res.History[k].Delta, res.History[k-1].Delta, "iteration %d", k+1)
	}
	assert.Less(t, res.History[len(res.History)-1].Delta, 1e-9)
}

func TestH2SplitValence(t *testing.T) {
	e, err := NewEngine(h2Problem(t, 1.4, true), DefaultOptions())
	require.NoError(t, err)
	res, err := e.Run()
	require.NoError(t, err)
	// below the minimal basis result, above the Hartree-Fock limit
	assert.Less(t, res.Energy, -1.1167)
	assert.Greater(t, res.Energy, -1.1336)
	assert.InDelta(t, 2.0, res.ElectronCount, 1e-9)
	for i := 1; i < len(res.OrbitalEnergies); i++ {
		assert.LessOrEqual(t, res.OrbitalEnergies[i-1], res.OrbitalEnergies[i])
	}
}

func TestHe2FillsTwoOrbitals(t *testing.T) {
	heExps := []float64{6.36242139, 1.15892300, 0.31364979}
	var p Problem
	for _, c := range []r3.Vec{{}, {Z: 5.6}} {
		f, err := integrals.NewContracted(c, heExps, sto3gCoefs)
		require.NoError(t, err)
		p.Basis = append(p.Basis, f)
		p.Nuclei = append(p.Nuclei, integrals.Nucleus{Position: c, Charge: 2})
	}
	p.Electrons = 4

	e, err := NewEngine(p, DefaultOptions())
	require.NoError(t, err)
	assert.Equal(t, 2, e.Occupied())
	res, err := e.Run()
	require.NoError(t, err)
	assert.True(t, res.Converged)
	assert.InDelta(t, 4.0, res.ElectronCount, 1e-9)
	// two nearly independent He atoms at -2.8078 each
	assert.InDelta(t, -5.6156, res.Energy, 1e-3)
	assert.Less(t, res.OrbitalEnergies[0], res.OrbitalEnergies[1])
}

func TestDIISReachesSameEnergy(t *testing.T) {
	plain, err := NewEngine(h2Problem(t, 1.9, true), DefaultOptions())
	require.NoError(t, err)
	want, err := plain.Run()
	require.NoError(t, err)

	opts := DefaultOptions()
	opts.DIIS = true
	opts.DIISSize = 4
	accel, err := NewEngine(h2Problem(t, 1.9, true), opts)
	require.NoError(t, err)
	got, err := accel.Run()
	require.NoError(t, err)

	assert.InDelta(t, want.Energy, got.Energy, 1e-7)
	assert.Equal(t, 0.0, got.History[0].DIISError)
}

func TestOddElectronCountFailsFast(t *testing.T) {
	// no basis at all: the electron count must be rejected first
	_, err := NewEngine(Problem{Electrons: 3}, DefaultOptions())
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrOddElectronCount))

	p := h2Problem(t, 1.4, false)
	p.Electrons = 1
	_, err = NewEngine(p, DefaultOptions())
	assert.ErrorIs(t, err, ErrOddElectronCount)
}

func TestElectronCountValidation(t *testing.T) {
	p := h2Problem(t, 1.4, false)
	p.Electrons = 6
	_, err := NewEngine(p, DefaultOptions())
	assert.ErrorIs(t, err, ErrTooManyElectrons)

	p.Electrons = -2
	_, err = NewEngine(p, DefaultOptions())
	assert.ErrorIs(t, err, ErrInvalidElectronCount)

	p.Electrons = 2
	p.Basis = nil
	_, err = NewEngine(p, DefaultOptions())
	assert.ErrorIs(t, err, integrals.ErrNoBasis)
}

func TestNonConvergenceIsReported(t *testing.T) {
	opts := DefaultOptions()
	opts.MaxIterations = 1
	e, err := NewEngine(h2Problem(t, 1.4, false), opts)
	require.NoError(t, err)

	res, err := e.Run()
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrNonConvergence)

	var nc *NonConvergenceError
	require.True(t, errors.As(err, &nc))
	assert.Equal(t, 1, nc.Iterations)
	assert.Greater(t, nc.Delta, opts.Threshold)

	require.NotNil(t, res)
	assert.False(t, res.Converged)
	assert.Equal(t, StatusMaxIterExceeded, res.Status)
	assert.Equal(t, 1, res.Iterations)
}

func TestInvalidOptions(t *testing.T) {
	opts := DefaultOptions()
	opts.Threshold = -1
	_, err := NewEngine(h2Problem(t, 1.4, false), opts)
	assert.ErrorIs(t, err, ErrInvalidOptions)

	// zero values fall back to defaults
	o, err := Options{}.withDefaults()
	require.NoError(t, err)
	assert.Equal(t, DefaultThreshold, o.Threshold)
	assert.Equal(t, DefaultMaxIterations, o.MaxIterations)
	assert.Equal(t, DefaultEigenFloor, o.EigenFloor)
	assert.NotNil(t, o.Logger)
}

func TestStepIsPure(t *testing.T) {
	e, err := NewEngine(h2Problem(t, 1.4, false), DefaultOptions())
	require.NoError(t, err)
	d := mat.NewDense(2, 2, nil)
	first, err := e.Step(d)
	require.NoError(t, err)
	second, err := e.Step(d)
	require.NoError(t, err)
	assert.Equal(t, first.Energy, second.Energy)
	assert.True(t, mat.Equal(first.Density, second.Density))
	assert.True(t, mat.Equal(d, mat.NewDense(2, 2, nil)))

	// zero density: the Fock matrix is the core Hamiltonian
	assert.True(t, mat.EqualApprox(first.Fock, e.Core(), 1e-15))
	_, err = e.Step(mat.NewDense(3, 3, nil))
	assert.ErrorIs(t, err, ErrDimensionMismatch)
}

func TestOrthogonalizer(t *testing.T) {
	for _, split := range []bool{false, true} {
		e, err := NewEngine(h2Problem(t, 1.4, split), DefaultOptions())
		require.NoError(t, err)
		x := e.Orthogonalizer()
		var tmp, xsx mat.Dense
		tmp.Mul(x.T(), e.Overlap())
		xsx.Mul(&tmp, x)
		n := e.NBasis()
		id := mat.NewDiagDense(n, ones(n))
		assert.True(t, mat.EqualApprox(&xsx, id, 1e-10), "X^T S X:\n%v", mat.Formatted(&xsx))
	}
}

func TestOrthogonalizerClipsSingularOverlap(t *testing.T) {
	s := mat.NewDense(2, 2, []float64{1, 1, 1, 1})
	x, err := Orthogonalizer(s, DefaultEigenFloor)
	require.NoError(t, err)
	for _, v := range x.RawMatrix().Data {
		assert.False(t, math.IsNaN(v) || math.IsInf(v, 0))
	}
}

func TestDiagonalizeSorted(t *testing.T) {
	a := mat.NewDense(3, 3, []float64{
		2, 0, 0,
		0, -1, 0.5,
		0, 0.5, 3,
	})
	vals, vecs, err := diagonalize(a)
	require.NoError(t, err)
	for i := 1; i < len(vals); i++ {
		assert.Less(t, vals[i-1], vals[i])
	}
	for i, v := range vals {
		col := mat.NewVecDense(3, mat.Col(nil, i, vecs))
		var av mat.VecDense
		av.MulVec(a, col)
		col.ScaleVec(v, col)
		assert.True(t, mat.EqualApprox(&av, col, 1e-12))
	}
}

func TestBuildG(t *testing.T) {
	p := h2Problem(t, 1.4, false)
	eri, err := integrals.BuildERI(p.Basis, 1)
	require.NoError(t, err)
	d := mat.NewDense(2, 2, []float64{0.6, 0.6, 0.6, 0.6})
	g, err := BuildG(eri, d, 4)
	require.NoError(t, err)

	for i := 0; i < 2; i++ {
		for j := 0; j < 2; j++ {
			want := 0.0
			for k := 0; k < 2; k++ {
				for l := 0; l < 2; l++ {
					want += d.At(k, l) * (eri.At(i, j, k, l) - 0.5*eri.At(i, l, k, j))
				}
			}
			assert.InDelta(t, want, g.At(i, j), 1e-14)
			assert.InDelta(t, g.At(i, j), g.At(j, i), 1e-14)
		}
	}
}

func TestDensityAndEnergyHelpers(t *testing.T) {
	c := mat.NewDense(2, 2, []float64{0.5, 1, 0.5, -1})
	d := Density(c, 1)
	assert.True(t, mat.EqualApprox(d, mat.NewDense(2, 2, []float64{0.5, 0.5, 0.5, 0.5}), 1e-15))
	assert.True(t, mat.Equal(Density(c, 0), mat.NewDense(2, 2, nil)))

	id := mat.NewDense(2, 2, []float64{1, 0, 0, 1})
	assert.InDelta(t, 1.0, ElectronCount(d, id), 1e-15)
	assert.InDelta(t, 1.0, ElectronicEnergy(d, id, id), 1e-15)
}

func TestStatusString(t *testing.T) {
	assert.Equal(t, "converged", StatusConverged.String())
	assert.Equal(t, "max iterations exceeded", StatusMaxIterExceeded.String())
	assert.Equal(t, "Status(9)", Status(9).String())
}

func ones(n int) []float64 {
	res := make([]float64, n)
	for i := range res {
		res[i] = 1
	}
	return res
}
