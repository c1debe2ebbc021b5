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
package scf

import (
	"errors"
	"fmt"
)

var (
	// ErrEigendecomposition signals that the overlap or transformed Fock
	// matrix could not be diagonalized. No energy is reported.
	ErrEigendecomposition = errors.New("scf: eigendecomposition failed")

	// ErrOddElectronCount is returned before any integral work when the
	// electron count cannot be distributed over doubly occupied orbitals.
	ErrOddElectronCount = errors.New("scf: odd electron count in restricted closed-shell calculation")

	// ErrInvalidElectronCount is returned for negative electron counts.
	ErrInvalidElectronCount = errors.New("scf: negative electron count")

	// ErrTooManyElectrons is returned when N/2 exceeds the number of basis functions.
	ErrTooManyElectrons = errors.New("scf: more occupied orbitals than basis functions")

	// ErrNonConvergence is the sentinel wrapped by NonConvergenceError.
	ErrNonConvergence = errors.New("scf: not converged")

	// ErrInvalidOptions is returned for negative thresholds, floors or counts.
	ErrInvalidOptions = errors.New("scf: invalid options")

	// ErrDimensionMismatch is returned when a density does not match the basis.
	ErrDimensionMismatch = errors.New("scf: dimension mismatch")
)

// NonConvergenceError reports an SCF run that used up its iteration budget.
type NonConvergenceError struct {
	Iterations int
	Energy     float64
	Delta      float64
}

func (e *NonConvergenceError) Error() string {
	return fmt.Sprintf("scf: not converged after %d iterations (E = %.10f, dE = %.3e)", e.Iterations, e.Energy, e.Delta)
}

func (e *NonConvergenceError) Unwrap() error {
	return ErrNonConvergence
}
