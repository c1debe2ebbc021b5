// linalg.go --  This file is part of goHF project.
// Mirzaeva Irina, 2023
//
//	goHF is distributed in the hope that it will be useful,
//	but WITHOUT ANY WARRANTY; without even the implied warranty
//	of MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.
//	See the GNU General Public License for more details.
//
//	You should have received a copy of the GNU General Public License
//	along with this program.  If not, see http://www.gnu.org/licenses/
//
// ------------------------------------------------
package scf

import (
	"cmp"
	"fmt"
	"math"

	"golang.org/x/exp/slices"
	"gonum.org/v1/gonum/mat"
)

// symmetric copies the average of a and its transpose into a SymDense.
func symmetric(a mat.Matrix) *mat.SymDense {
	n, _ := a.Dims()
	res := mat.NewSymDense(n, nil)
	for i := 0; i < n; i++ {
		for j := i; j < n; j++ {
			res.SetSym(i, j, 0.5*(a.At(i, j)+a.At(j, i)))
		}
	}
	return res
}

// Orthogonalizer returns the symmetric orthogonalization transform
// X = U L^(-1/2) U^T of the overlap matrix s. Eigenvalues below floor are
// raised to floor before inversion, so a near-linearly-dependent basis
// does not blow up.
func Orthogonalizer(s mat.Matrix, floor float64) (*mat.Dense, error) {
	n, _ := s.Dims()
	var eigsym mat.EigenSym
	if ok := eigsym.Factorize(symmetric(s), true); !ok {
		return nil, fmt.Errorf("%w: overlap matrix", ErrEigendecomposition)
	}
	var ev mat.Dense
	eigsym.VectorsTo(&ev)

	sqrtInv := eigsym.Values(nil)
	for i, v := range sqrtInv {
		if v < floor {
			v = floor
		}
		sqrtInv[i] = 1 / math.Sqrt(v)
	}

	var ud, x mat.Dense
	ud.Mul(&ev, mat.NewDiagDense(n, sqrtInv))
	x.Mul(&ud, ev.T())
	return &x, nil
}

type eigenPair struct {
	value float64
	col   int
}

// diagonalize solves the symmetric eigenproblem of a and returns the
// eigenvalues in ascending order with the eigenvectors as matching columns.
// The ordering is imposed here rather than trusted from the solver.
func diagonalize(a mat.Matrix) ([]float64, *mat.Dense, error) {
	n, _ := a.Dims()
	var eigsym mat.EigenSym
	if ok := eigsym.Factorize(symmetric(a), true); !ok {
		return nil, nil, fmt.Errorf("%w: transformed Fock matrix", ErrEigendecomposition)
	}
	vals := eigsym.Values(nil)
	var ev mat.Dense
	eigsym.VectorsTo(&ev)

	pairs := make([]eigenPair, n)
	for i, v := range vals {
		if math.IsNaN(v) {
			return nil, nil, fmt.Errorf("%w: NaN eigenvalue", ErrEigendecomposition)
		}
		pairs[i] = eigenPair{v, i}
	}
	slices.SortFunc(pairs, func(p, q eigenPair) int {
		return cmp.Compare(p.value, q.value)
	})

	sortedVals := make([]float64, n)
	sortedVecs := mat.NewDense(n, n, nil)
	col := make([]float64, n)
	for i, p := range pairs {
		sortedVals[i] = p.value
		sortedVecs.SetCol(i, mat.Col(col, p.col, &ev))
	}
	return sortedVals, sortedVecs, nil
}

// Density returns D = 2 sum_{occ} C[:,occ] C[:,occ]^T over the first nOcc
// columns of c, which must already be ordered by orbital energy.
func Density(c *mat.Dense, nOcc int) *mat.Dense {
	n, _ := c.Dims()
	d := mat.NewDense(n, n, nil)
	if nOcc == 0 {
		return d
	}
	occ := c.Slice(0, n, 0, nOcc)
	d.Mul(occ, occ.T())
	d.Scale(2, d)
	return d
}

// ElectronicEnergy returns 1/2 sum_ij D[i,j] (H[i,j] + F[i,j]).
func ElectronicEnergy(d, h, f mat.Matrix) float64 {
	var hf mat.Dense
	hf.Add(h, f)
	hf.MulElem(&hf, d)
	return 0.5 * mat.Sum(&hf)
}

// ElectronCount returns trace(D S), which equals the number of electrons
// for a density built from S-orthonormal orbitals.
func ElectronCount(d, s mat.Matrix) float64 {
	var ds mat.Dense
	ds.Mul(d, s)
	return mat.Trace(&ds)
}
