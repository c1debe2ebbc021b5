// diis.go --  This file is part of goHF project.
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
	"math"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"
)

// diis keeps the recent Fock matrices and their commutator residuals for
// Pulay extrapolation. See
// https://github.com/psi4/psi4numpy/blob/master/Tutorials/03_Hartree-Fock/3b_rhf-diis.ipynb
type diis struct {
	size     int
	fList    []*mat.Dense
	residual []*mat.Dense
}

func newDIIS(size int) *diis {
	return &diis{size: size}
}

// push stores f with its residual X (F D S - S D F) X and returns the
// residual RMS.
func (dm *diis) push(f, d, s, x *mat.Dense) float64 {
	var term1, term2, tmp mat.Dense
	tmp.Mul(f, d)
	term1.Mul(&tmp, s)
	tmp.Mul(s, d)
	term2.Mul(&tmp, f)
	term1.Sub(&term1, &term2)

	var r mat.Dense
	tmp.Mul(x.T(), &term1)
	r.Mul(&tmp, x)

	dm.fList = append(dm.fList, mat.DenseCopyOf(f))
	dm.residual = append(dm.residual, &r)
	if len(dm.fList) > dm.size {
		dm.fList = dm.fList[1:]
		dm.residual = dm.residual[1:]
	}
	return rms(&r)
}

func rms(r *mat.Dense) float64 {
	sq := mat.DenseCopyOf(r)
	sq.MulElem(sq, sq)
	return math.Sqrt(stat.Mean(sq.RawMatrix().Data, nil))
}

// buildB returns the DIIS matrix: residual overlaps bordered by -1.
func (dm *diis) buildB() *mat.Dense {
	bDim := len(dm.fList) + 1
	res := mat.NewDense(bDim, bDim, nil)
	for i := 0; i < bDim-1; i++ {
		res.Set(i, bDim-1, -1)
		res.Set(bDim-1, i, -1)
	}
	var b mat.Dense
	for i := range dm.residual {
		for j := range dm.residual {
			b.MulElem(dm.residual[i], dm.residual[j])
			res.Set(i, j, mat.Sum(&b))
			b.Reset()
		}
	}
	return res
}

// extrapolate returns the DIIS combination of the stored Fock matrices,
// or false when the subspace is too small or the linear system is
// singular.
func (dm *diis) extrapolate() (*mat.Dense, bool) {
	if len(dm.fList) < 2 {
		return nil, false
	}
	bmat := dm.buildB()
	rhs := mat.NewVecDense(len(dm.fList)+1, nil)
	rhs.SetVec(len(dm.fList), -1)

	var lu mat.LU
	lu.Factorize(bmat)
	var coefs mat.VecDense
	if err := lu.SolveVecTo(&coefs, false, rhs); err != nil {
		return nil, false
	}

	r, c := dm.fList[0].Dims()
	f := mat.NewDense(r, c, nil)
	var fpart mat.Dense
	for j := range dm.fList {
		fpart.Scale(coefs.AtVec(j), dm.fList[j])
		f.Add(f, &fpart)
	}
	return f, true
}
