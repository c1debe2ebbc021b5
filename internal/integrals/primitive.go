// primitive.go --  This file is part of goHF project.
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

// По мотивам https://github.com/nickelandcopper/HartreeFockPythonProgram/blob/main/Hartree_Fock_Program.ipynb

import (
	"math"

	"gonum.org/v1/gonum/spatial/r3"
)

// NormCoeff is the normalization constant (2a/pi)^(3/4) of an s-type
// primitive Gaussian with exponent a.
func NormCoeff(a float64) float64 {
	return math.Pow(2*a/math.Pi, 0.75)
}

// productCenter applies the Gaussian product theorem to exp(-a|r-ra|^2) and
// exp(-b|r-rb|^2). It returns the combined exponent zeta=a+b, the weighted
// center P=(a ra + b rb)/zeta and the prefactor K=exp(-ab/zeta |ra-rb|^2).
func productCenter(a, b float64, ra, rb r3.Vec) (zeta float64, p r3.Vec, k float64) {
	zeta = a + b
	p = r3.Scale(1/zeta, r3.Add(r3.Scale(a, ra), r3.Scale(b, rb)))
	k = math.Exp(-a * b / zeta * r3.Norm2(r3.Sub(ra, rb)))
	return zeta, p, k
}

// Overlap is the normalized overlap <a|b> of two s-type primitives.
func Overlap(a, b float64, ra, rb r3.Vec) float64 {
	p := a + b
	q := a * b / p
	return NormCoeff(a) * NormCoeff(b) * math.Pow(math.Pi/p, 1.5) * math.Exp(-q*r3.Norm2(r3.Sub(ra, rb)))
}

// Kinetic is the kinetic energy integral <a|-1/2 nabla^2|b>. It is
// expressed through the overlap s of the same pair, which the caller has
// already computed.
func Kinetic(a, b float64, ra, rb r3.Vec, s float64) float64 {
	mu := a * b / (a + b)
	return mu * (3 - 2*mu*r3.Norm2(r3.Sub(ra, rb))) * s
}

// NuclearAttraction is <a|-Z/|r-rc||b> for a point charge z at rc. The
// result is negative for a positive charge.
func NuclearAttraction(a, b float64, ra, rb, rc r3.Vec, z float64) float64 {
	zeta, p, k := productCenter(a, b, ra, rb)
	x := zeta * r3.Norm2(r3.Sub(p, rc))
	return -z * NormCoeff(a) * NormCoeff(b) * (2 * math.Pi / zeta) * k * Boys(x)
}

// Repulsion is the electron repulsion integral (ab|cd) in chemists'
// notation between four s-type primitives.
func Repulsion(a, b, c, d float64, ra, rb, rc, rd r3.Vec) float64 {
	zeta, p, kab := productCenter(a, b, ra, rb)
	eta, q, kcd := productCenter(c, d, rc, rd)
	rho := zeta * eta / (zeta + eta)
	x := rho * r3.Norm2(r3.Sub(p, q))

	norm := NormCoeff(a) * NormCoeff(b) * NormCoeff(c) * NormCoeff(d)
	term1 := 2 * math.Pow(math.Pi, 2.5) / (zeta * eta * math.Sqrt(zeta+eta))
	return norm * term1 * kab * kcd * Boys(x)
}
