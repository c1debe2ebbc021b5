// molecule.go --  This file is part of goHF project.
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
package molecule

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/keiran-rowell/hartee-fock/internal/integrals"
)

// ABohr is the Bohr radius in Angstrom.
const ABohr = 0.52917720859

var (
	ErrUnknownElement = errors.New("molecule: unknown element")
	ErrMalformedXYZ   = errors.New("molecule: malformed xyz input")
)

// Atom is a nucleus with its element. Coords are in Bohr.
type Atom struct {
	Symbol string
	Z      int
	Coords r3.Vec
}

// Molecule is an ordered list of atoms with a net charge.
type Molecule struct {
	Atoms  []Atom
	Charge int
}

// NewAtom looks up the element and stores coordinates given in Bohr.
func NewAtom(symbol string, coords r3.Vec) (Atom, error) {
	z, err := AtomicNumber(symbol)
	if err != nil {
		return Atom{}, err
	}
	symb, _ := Symbol(z)
	return Atom{Symbol: symb, Z: z, Coords: coords}, nil
}

// Diatomic places atom a at the origin and atom b at distance r (Bohr)
// along z.
func Diatomic(a, b string, r float64) (*Molecule, error) {
	atA, err := NewAtom(a, r3.Vec{})
	if err != nil {
		return nil, err
	}
	atB, err := NewAtom(b, r3.Vec{Z: r})
	if err != nil {
		return nil, err
	}
	return &Molecule{Atoms: []Atom{atA, atB}}, nil
}

// Electrons returns the number of electrons, sum Z minus the charge.
func (m *Molecule) Electrons() int {
	result := -m.Charge
	for _, a := range m.Atoms {
		result += a.Z
	}
	return result
}

// Nuclei returns the point charges seen by the electrons.
func (m *Molecule) Nuclei() []integrals.Nucleus {
	res := make([]integrals.Nucleus, len(m.Atoms))
	for i, a := range m.Atoms {
		res[i] = integrals.Nucleus{Position: a.Coords, Charge: float64(a.Z)}
	}
	return res
}

// NucNuc returns the nuclear repulsion energy in Hartree.
func (m *Molecule) NucNuc() (float64, error) {
	return integrals.NuclearRepulsion(m.Nuclei())
}

// Distance returns the separation of atoms i and j in Bohr.
func (m *Molecule) Distance(i, j int) float64 {
	return r3.Norm(r3.Sub(m.Atoms[i].Coords, m.Atoms[j].Coords))
}

// ReadXYZ reads an XYZ file: an atom count, a comment line and one
// "symbol x y z" line per atom in Angstrom. Coordinates are converted to
// Bohr.
func ReadXYZ(r io.Reader) (*Molecule, error) {
	xyz := bufio.NewScanner(r)
	if !xyz.Scan() {
		return nil, fmt.Errorf("%w: missing atom count", ErrMalformedXYZ)
	}
	natoms, err := strconv.Atoi(strings.TrimSpace(xyz.Text()))
	if err != nil || natoms < 1 {
		return nil, fmt.Errorf("%w: bad atom count %q", ErrMalformedXYZ, xyz.Text())
	}
	if !xyz.Scan() {
		return nil, fmt.Errorf("%w: missing comment line", ErrMalformedXYZ)
	}

	mol := &Molecule{}
	for i := 0; i < natoms; i++ {
		if !xyz.Scan() {
			return nil, fmt.Errorf("%w: expected %d atoms, got %d", ErrMalformedXYZ, natoms, i)
		}
		at, err := ParseAtomLine(xyz.Text(), 1/ABohr)
		if err != nil {
			return nil, fmt.Errorf("%w: atom %d: %v", ErrMalformedXYZ, i+1, err)
		}
		mol.Atoms = append(mol.Atoms, at)
	}
	if err := xyz.Err(); err != nil {
		return nil, err
	}
	return mol, nil
}

// ParseAtomLine parses "symbol x y z", multiplying coordinates by scale
// to get Bohr.
func ParseAtomLine(line string, scale float64) (Atom, error) {
	words := strings.Fields(line)
	if len(words) < 4 {
		return Atom{}, fmt.Errorf("incorrect format of coordinates: %q", line)
	}
	var c [3]float64
	for k := range c {
		v, err := strconv.ParseFloat(words[k+1], 64)
		if err != nil {
			return Atom{}, err
		}
		c[k] = v * scale
	}
	return NewAtom(words[0], r3.Vec{X: c[0], Y: c[1], Z: c[2]})
}
