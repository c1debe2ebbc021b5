// gohf.go --  This file is part of goHF project.
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
// Package gohf computes restricted closed-shell Hartree-Fock energies of
// small molecules in s-type contracted Gaussian basis sets.
//
// H2Energy is the minimal entry point:
//
//	e, err := gohf.H2Energy(1.4) // -1.1167 Hartree
//
// Energy accepts any closed-shell molecule and one of the embedded basis
// sets ("sto-3g", "6-31g").
package gohf

import (
	"github.com/keiran-rowell/hartee-fock/internal/basis"
	"github.com/keiran-rowell/hartee-fock/internal/calc"
	"github.com/keiran-rowell/hartee-fock/internal/molecule"
	"github.com/keiran-rowell/hartee-fock/internal/scf"
)

type (
	Molecule = molecule.Molecule
	Atom     = molecule.Atom
	Options  = scf.Options
	Result   = scf.Result
)

var (
	ErrOddElectronCount = scf.ErrOddElectronCount
	ErrNonConvergence   = scf.ErrNonConvergence
	ErrUnknownBasis     = basis.ErrUnknownBasis
)

// DefaultOptions returns a threshold of 1e-9 Hartree, 50 iterations and
// an overlap eigenvalue floor of 1e-15.
func DefaultOptions() Options {
	return scf.DefaultOptions()
}

// H2Energy returns the RHF/STO-3G total energy in Hartree of H2 with the
// nuclei at (0,0,0) and (0,0,R), R in Bohr.
func H2Energy(r float64) (float64, error) {
	mol, err := molecule.Diatomic("H", "H", r)
	if err != nil {
		return 0, err
	}
	res, err := Energy(mol, "sto-3g", DefaultOptions())
	if err != nil {
		return 0, err
	}
	return res.Energy, nil
}

// Energy runs an RHF calculation of mol in the named embedded basis set.
// When the SCF does not converge the last result is returned along with
// an error matching ErrNonConvergence.
func Energy(mol *Molecule, basisName string, opts Options) (*Result, error) {
	set, err := basis.Load(basisName)
	if err != nil {
		return nil, err
	}
	_, res, err := calc.Run(mol, set, opts)
	return res, err
}
