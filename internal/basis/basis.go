// basis.go --  This file is part of goHF project.
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
package basis

import (
	"embed"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/exp/slices"

	"github.com/keiran-rowell/hartee-fock/internal/integrals"
	"github.com/keiran-rowell/hartee-fock/internal/molecule"
)

var (
	// ErrMalformed is returned for missing, mismatched or non-numeric
	// exponent and coefficient data.
	ErrMalformed = errors.New("basis: malformed basis set input")

	// ErrUnknownBasis is returned by Load for names with no embedded data.
	ErrUnknownBasis = errors.New("basis: unknown basis set")

	// ErrMissingElement is returned when a molecule contains an element the
	// set does not describe.
	ErrMissingElement = errors.New("basis: element not in basis set")
)

//go:embed data/*.json
var embedded embed.FS

// Shell is one contracted s-type function of an element.
type Shell struct {
	Exponents    []float64
	Coefficients []float64
}

// Set is a basis set: contracted shells per atomic number.
type Set struct {
	Name        string
	Description string
	Elements    map[int][]Shell

	// Skipped counts contractions with angular momentum above zero, which
	// are not supported and were dropped while loading.
	Skipped int
}

func newSet() *Set {
	return &Set{Elements: make(map[int][]Shell)}
}

// Load returns one of the embedded basis sets ("sto-3g", "6-31g").
func Load(name string) (*Set, error) {
	fname := "data/" + strings.ToLower(strings.TrimSpace(name)) + ".json"
	f, err := embedded.Open(fname)
	if err != nil {
		return nil, fmt.Errorf("%w: %q", ErrUnknownBasis, name)
	}
	defer f.Close()
	return ParseBSE(f)
}

// LoadFile reads a basis set file. Files ending in .json are read as
// Basis Set Exchange JSON, anything else as goHF text format.
func LoadFile(path string) (*Set, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	if strings.EqualFold(filepath.Ext(path), ".json") {
		return ParseBSE(f)
	}
	return ParseText(f)
}

// ElementList returns the atomic numbers described by the set, ascending.
func (s *Set) ElementList() []int {
	res := make([]int, 0, len(s.Elements))
	for z := range s.Elements {
		res = append(res, z)
	}
	slices.Sort(res)
	return res
}

// Functions places the shells of each atom's element on that atom, atom
// by atom, and returns the normalized contracted functions.
func (s *Set) Functions(mol *molecule.Molecule) ([]*integrals.ContractedGaussian, error) {
	var res []*integrals.ContractedGaussian
	for i, at := range mol.Atoms {
		shells, ok := s.Elements[at.Z]
		if !ok || len(shells) == 0 {
			return nil, fmt.Errorf("%w: %s (atom %d) in %s", ErrMissingElement, at.Symbol, i+1, s.Name)
		}
		for k, sh := range shells {
			cg, err := integrals.NewContracted(at.Coords, sh.Exponents, sh.Coefficients)
			if err != nil {
				return nil, fmt.Errorf("%w: %s shell %d: %v", ErrMalformed, at.Symbol, k+1, err)
			}
			res = append(res, cg)
		}
	}
	return res, nil
}
