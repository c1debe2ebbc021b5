// errors.go --  This file is part of goHF project.
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

import "errors"

var (
	// ErrMalformedFunction is returned when a contracted function is built
	// from missing, mismatched or non-finite primitive data.
	ErrMalformedFunction = errors.New("integrals: malformed contracted function")

	// ErrNoBasis is returned when an integral build is asked for zero functions.
	ErrNoBasis = errors.New("integrals: empty basis")

	// ErrCoincidentNuclei is returned when two nuclei share a position, which
	// makes the nuclear repulsion energy infinite.
	ErrCoincidentNuclei = errors.New("integrals: coincident nuclei")
)
