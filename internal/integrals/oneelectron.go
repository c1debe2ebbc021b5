// oneelectron.go --  This file is part of goHF project.
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
	"gonum.org/v1/gonum/mat"

	"github.com/keiran-rowell/hartee-fock/internal/parallel"
)

// OneElectron holds the overlap, kinetic and nuclear attraction matrices.
type OneElectron struct {
	S, T, V *mat.Dense
}

// Core returns the core Hamiltonian T+V as a new matrix.
func (o *OneElectron) Core() *mat.Dense {
	var h mat.Dense
	h.Add(o.T, o.V)
	return &h
}

type pairData struct {
	s, t, v float64
}

// BuildOneElectron contracts primitive overlap, kinetic and nuclear
// attraction integrals over every ordered pair of basis functions. Each
// pair is an independent work unit spread over workers goroutines.
func BuildOneElectron(funcs []*ContractedGaussian, nuclei []Nucleus, workers int) (*OneElectron, error) {
	nBasis := len(funcs)
	if nBasis == 0 {
		return nil, ErrNoBasis
	}

	pairs := make([]pairData, nBasis*nBasis)
	parallel.For(len(pairs), workers, func(idx int) {
		pairs[idx] = contractPair(funcs[idx/nBasis], funcs[idx%nBasis], nuclei)
	})

	res := &OneElectron{
		S: mat.NewDense(nBasis, nBasis, nil),
		T: mat.NewDense(nBasis, nBasis, nil),
		V: mat.NewDense(nBasis, nBasis, nil),
	}
	for idx, p := range pairs {
		i, j := idx/nBasis, idx%nBasis
		res.S.Set(i, j, p.s)
		res.T.Set(i, j, p.t)
		res.V.Set(i, j, p.v)
	}
	return res, nil
}

func contractPair(fi, fj *ContractedGaussian, nuclei []Nucleus) pairData {
	var res pairData
	ra, rb := fi.center, fj.center
	for _, pk := range fi.prims {
		for _, pl := range fj.prims {
			c1c2 := pk.Coeff * pl.Coeff
			s := Overlap(pk.Alpha, pl.Alpha, ra, rb)
			res.s += c1c2 * s
			res.t += c1c2 * Kinetic(pk.Alpha, pl.Alpha, ra, rb, s)
			for _, at := range nuclei {
				res.v += c1c2 * NuclearAttraction(pk.Alpha, pl.Alpha, ra, rb, at.Position, at.Charge)
			}
		}
	}
	return res
}
