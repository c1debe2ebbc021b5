// report.go --  This file is part of goHF project.
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
// Package report writes calculation results: matrices and orbitals as
// text, compressed ERI dumps and dissociation curve plots.
package report

import (
	"fmt"
	"io"
	"strings"

	"gonum.org/v1/gonum/mat"

	"github.com/keiran-rowell/hartee-fock/internal/integrals"
)

// Delimiter separates sections of the output file.
var Delimiter = strings.Repeat("-", 70)

// WriteMatrix prints name and m with eight decimals.
func WriteMatrix(w io.Writer, name string, m mat.Matrix) error {
	fa := mat.Formatted(m, mat.Prefix("    "), mat.Squeeze())
	_, err := fmt.Fprintf(w, "%s:\n    %.8f\n", name, fa)
	return err
}

// WriteOrbitals prints the orbital energies with their occupations,
// followed by the coefficient matrix (one orbital per column).
func WriteOrbitals(w io.Writer, eps []float64, c mat.Matrix, occupied int) error {
	if _, err := fmt.Fprintf(w, "%6s %6s %16s\n", "MO", "occ", "energy (a.u.)"); err != nil {
		return err
	}
	for i, e := range eps {
		occ := 0
		if i < occupied {
			occ = 2
		}
		if _, err := fmt.Fprintf(w, "%6d %6d %16.8f\n", i+1, occ, e); err != nil {
			return err
		}
	}
	return WriteMatrix(w, "MO coefficients", c)
}

// WriteBasis lists every contracted function with its center (Bohr) and
// normalized primitives.
func WriteBasis(w io.Writer, funcs []*integrals.ContractedGaussian) error {
	for i, f := range funcs {
		c := f.Center()
		if _, err := fmt.Fprintf(w, "%4d  center %12.6f %12.6f %12.6f  %d primitives\n", i+1, c.X, c.Y, c.Z, f.Len()); err != nil {
			return err
		}
		for _, p := range f.Primitives() {
			if _, err := fmt.Fprintf(w, "      %16.8f %16.8f\n", p.Alpha, p.Coeff); err != nil {
				return err
			}
		}
	}
	return nil
}
