// elements.go --  This file is part of goHF project.
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
	_ "embed"
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"

	"golang.org/x/exp/slices"
)

//go:embed data/mendeleev.csv
var mendeleevCSV string

// Mendeleev is a small periodic table: parallel slices indexed by row.
type Mendeleev struct {
	Z          []int
	Symb, Name []string
	Mass       []float64
}

// ElemData is the table loaded from the embedded CSV at init.
var ElemData Mendeleev

func init() {
	if err := ElemData.build(strings.NewReader(mendeleevCSV)); err != nil {
		panic(err)
	}
}

func (m *Mendeleev) build(r io.Reader) error {
	rows, err := csv.NewReader(r).ReadAll()
	if err != nil {
		return fmt.Errorf("elements database: %w", err)
	}
	for i, words := range rows {
		if i == 0 {
			continue
		}
		z, err := strconv.Atoi(words[0])
		if err != nil {
			return fmt.Errorf("elements database line %d: %w", i+1, err)
		}
		mass, err := strconv.ParseFloat(words[3], 64)
		if err != nil {
			return fmt.Errorf("elements database line %d: %w", i+1, err)
		}
		m.Z = append(m.Z, z)
		m.Mass = append(m.Mass, mass)
		m.Symb = append(m.Symb, words[1])
		m.Name = append(m.Name, words[2])
	}
	return nil
}

// AtomicNumber returns Z for an element symbol, case-insensitively.
func AtomicNumber(symbol string) (int, error) {
	idx := slices.IndexFunc(ElemData.Symb, func(s string) bool {
		return strings.EqualFold(s, symbol)
	})
	if idx < 0 {
		return 0, fmt.Errorf("%w: %q", ErrUnknownElement, symbol)
	}
	return ElemData.Z[idx], nil
}

// Symbol returns the element symbol for atomic number z.
func Symbol(z int) (string, error) {
	idx := slices.Index(ElemData.Z, z)
	if idx < 0 {
		return "", fmt.Errorf("%w: Z=%d", ErrUnknownElement, z)
	}
	return ElemData.Symb[idx], nil
}
