// eri.go --  This file is part of goHF project.
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
package integrals

import (
	"github.com/keiran-rowell/hartee-fock/internal/parallel"
)

// ERI is the n x n x n x n tensor of electron repulsion integrals (ij|kl)
// in chemists' notation, stored flat with compound index
// ((i*n+j)*n+k)*n+l.
type ERI struct {
	n    int
	data []float64
}

// Quartet is a canonical index quadruple: i>=j, k>=l and ij>=kl.
type Quartet struct {
	I, J, K, L int
}

// N returns the number of basis functions.
func (e *ERI) N() int { return e.n }

// Len returns the number of stored elements, n^4.
func (e *ERI) Len() int { return len(e.data) }

func (e *ERI) index(i, j, k, l int) int {
	return ((i*e.n+j)*e.n+k)*e.n + l
}

// At returns (ij|kl).
func (e *ERI) At(i, j, k, l int) float64 {
	return e.data[e.index(i, j, k, l)]
}

// Unique calls fn for every canonical quartet with its value, in the
// order the quartets are enumerated by BuildERI.
func (e *ERI) Unique(fn func(q Quartet, v float64)) {
	for _, q := range Quartets(e.n) {
		fn(q, e.At(q.I, q.J, q.K, q.L))
	}
}

// Quartets enumerates the symmetry-unique index quadruples for n
// functions. The pair index of (i,j) with i>=j is i(i+1)/2+j.
func Quartets(n int) []Quartet {
	nPairs := n * (n + 1) / 2
	res := make([]Quartet, 0, nPairs*(nPairs+1)/2)
	for i := 0; i < n; i++ {
		for j := 0; j <= i; j++ {
			ij := i*(i+1)/2 + j
			for k := 0; k < n; k++ {
				for l := 0; l <= k; l++ {
					kl := k*(k+1)/2 + l
					if kl > ij {
						continue
					}
					res = append(res, Quartet{i, j, k, l})
				}
			}
		}
	}
	return res
}

// scatter writes v into the eight positions related by permutational
// symmetry.
func (e *ERI) scatter(q Quartet, v float64) {
	i, j, k, l := q.I, q.J, q.K, q.L
	e.data[e.index(i, j, k, l)] = v
	e.data[e.index(j, i, k, l)] = v
	e.data[e.index(i, j, l, k)] = v
	e.data[e.index(j, i, l, k)] = v
	e.data[e.index(k, l, i, j)] = v
	e.data[e.index(l, k, i, j)] = v
	e.data[e.index(k, l, j, i)] = v
	e.data[e.index(l, k, j, i)] = v
}

// BuildERI computes each canonical quartet once, in parallel, and then
// fills the full tensor from the unique values.
func BuildERI(funcs []*ContractedGaussian, workers int) (*ERI, error) {
	n := len(funcs)
	if n == 0 {
		return nil, ErrNoBasis
	}
	quartets := Quartets(n)
	vals := make([]float64, len(quartets))
	parallel.For(len(quartets), workers, func(idx int) {
		q := quartets[idx]
		vals[idx] = contractRepulsion(funcs[q.I], funcs[q.J], funcs[q.K], funcs[q.L])
	})

	res := &ERI{n: n, data: make([]float64, n*n*n*n)}
	for idx, q := range quartets {
		res.scatter(q, vals[idx])
	}
	return res, nil
}

func contractRepulsion(fi, fj, fk, fl *ContractedGaussian) float64 {
	res := 0.0
	for _, pi := range fi.prims {
		for _, pj := range fj.prims {
			for _, pk := range fk.prims {
				for _, pl := range fl.prims {
					cicjckcl := pi.Coeff * pj.Coeff * pk.Coeff * pl.Coeff
					res += cicjckcl * Repulsion(pi.Alpha, pj.Alpha, pk.Alpha, pl.Alpha,
						fi.center, fj.center, fk.center, fl.center)
				}
			}
		}
	}
	return res
}

// NewERIFromUnique rebuilds a tensor for n functions from canonical
// quartet values, as read back from a dump.
func NewERIFromUnique(n int, vals map[Quartet]float64) *ERI {
	res := &ERI{n: n, data: make([]float64, n*n*n*n)}
	for q, v := range vals {
		res.scatter(q, v)
	}
	return res
}
