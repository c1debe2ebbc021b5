// fock.go --  This file is part of goHF project.
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
	"fmt"

	"gonum.org/v1/gonum/mat"

	"github.com/keiran-rowell/hartee-fock/internal/integrals"
	"github.com/keiran-rowell/hartee-fock/internal/parallel"
)

// BuildG forms the two-electron part of the Fock matrix,
//
//	G[i,j] = sum_kl D[k,l] ((ij|kl) - 1/2 (il|kj)),
//
// one independent work unit per element.
func BuildG(eri *integrals.ERI, d mat.Matrix, workers int) (*mat.Dense, error) {
	n := eri.N()
	if r, c := d.Dims(); r != n || c != n {
		return nil, fmt.Errorf("%w: density is %dx%d, basis has %d functions", ErrDimensionMismatch, r, c, n)
	}
	dens := mat.DenseCopyOf(d).RawMatrix().Data

	g := make([]float64, n*n)
	parallel.For(n*n, workers, func(idx int) {
		i, j := idx/n, idx%n
		res := 0.0
		for k := 0; k < n; k++ {
			for l := 0; l < n; l++ {
				J := eri.At(i, j, k, l)
				K := eri.At(i, l, k, j)
				res += dens[k*n+l] * (J - 0.5*K)
			}
		}
		g[idx] = res
	})
	return mat.NewDense(n, n, g), nil
}

// BuildFock returns F = H + G.
func BuildFock(h, g mat.Matrix) *mat.Dense {
	var f mat.Dense
	f.Add(h, g)
	return &f
}
