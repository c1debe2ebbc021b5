// nuclear.go --  This file is part of goHF project.
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

	"gonum.org/v1/gonum/spatial/r3"
)

// Nucleus is a point charge seen by the electrons.
type Nucleus struct {
	Position r3.Vec
	Charge   float64
}

// NuclearRepulsion returns sum Z_a Z_b / R_ab over all nucleus pairs.
func NuclearRepulsion(nuclei []Nucleus) (float64, error) {
	res := 0.0
	for i := range nuclei {
		for j := 0; j < i; j++ {
			r := r3.Norm(r3.Sub(nuclei[i].Position, nuclei[j].Position))
			if r == 0 {
				return 0, fmt.Errorf("%w: nuclei %d and %d", ErrCoincidentNuclei, j, i)
			}
			res += nuclei[i].Charge * nuclei[j].Charge / r
		}
	}
	return res, nil
}
