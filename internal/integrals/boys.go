// boys.go --  This file is part of goHF project.
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

import "math"

// boysThreshold is the argument below which F0 is replaced by its x->0 limit.
const boysThreshold = 1e-10

// Boys returns the zeroth-order Boys function
//
//	F0(x) = sqrt(pi)/(2 sqrt(x)) * erf(sqrt(x))
//
// and exactly 1 for x below boysThreshold, where the closed form loses
// precision (coincident product centers).
func Boys(x float64) float64 {
	if x < boysThreshold {
		return 1.0
	}
	sx := math.Sqrt(x)
	return math.Sqrt(math.Pi) / (2 * sx) * math.Erf(sx)
}
