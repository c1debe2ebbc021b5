// contracted.go --  This file is part of goHF project.
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
	"fmt"
	"math"

	"gonum.org/v1/gonum/spatial/r3"
)

// Primitive is one term c*exp(-alpha|r-center|^2) of a contracted function.
type Primitive struct {
	Alpha float64
	Coeff float64
}

// ContractedGaussian is a normalized linear combination of s-type
// primitives sharing one center. It is built once by NewContracted and is
// read-only afterwards.
type ContractedGaussian struct {
	center r3.Vec
	prims  []Primitive
}

// NewContracted validates exponents and coefficients and returns the
// contracted function with its coefficients rescaled so that the
// self-overlap is one.
func NewContracted(center r3.Vec, exps, coefs []float64) (*ContractedGaussian, error) {
	if len(exps) == 0 {
		return nil, fmt.Errorf("%w: no primitives", ErrMalformedFunction)
	}
	if len(exps) != len(coefs) {
		return nil, fmt.Errorf("%w: %d exponents but %d coefficients", ErrMalformedFunction, len(exps), len(coefs))
	}
	for _, v := range []float64{center.X, center.Y, center.Z} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return nil, fmt.Errorf("%w: non-finite center", ErrMalformedFunction)
		}
	}
	prims := make([]Primitive, len(exps))
	for i := range exps {
		if !(exps[i] > 0) || math.IsInf(exps[i], 0) {
			return nil, fmt.Errorf("%w: exponent %d is %v", ErrMalformedFunction, i, exps[i])
		}
		if math.IsNaN(coefs[i]) || math.IsInf(coefs[i], 0) {
			return nil, fmt.Errorf("%w: coefficient %d is %v", ErrMalformedFunction, i, coefs[i])
		}
		prims[i] = Primitive{Alpha: exps[i], Coeff: coefs[i]}
	}
	cg := &ContractedGaussian{center: center, prims: prims}
	if err := cg.normalize(); err != nil {
		return nil, err
	}
	return cg, nil
}

// normalize is called exactly once, from NewContracted.
func (cg *ContractedGaussian) normalize() error {
	self := cg.selfOverlap()
	if !(self > 0) || math.IsInf(self, 0) {
		return fmt.Errorf("%w: self-overlap %v", ErrMalformedFunction, self)
	}
	factor := 1 / math.Sqrt(self)
	for i := range cg.prims {
		cg.prims[i].Coeff *= factor
	}
	return nil
}

func (cg *ContractedGaussian) selfOverlap() float64 {
	res := 0.0
	for _, pi := range cg.prims {
		for _, pj := range cg.prims {
			res += pi.Coeff * pj.Coeff * Overlap(pi.Alpha, pj.Alpha, cg.center, cg.center)
		}
	}
	return res
}

// Center returns the position the function is placed on.
func (cg *ContractedGaussian) Center() r3.Vec { return cg.center }

// Len returns the number of primitives.
func (cg *ContractedGaussian) Len() int { return len(cg.prims) }

// Primitives returns a copy of the normalized primitives.
func (cg *ContractedGaussian) Primitives() []Primitive {
	res := make([]Primitive, len(cg.prims))
	copy(res, cg.prims)
	return res
}
