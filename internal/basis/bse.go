// bse.go --  This file is part of goHF project.
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
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// bseFile mirrors the parts of the Basis Set Exchange JSON format that are
// read here. Numbers are stored as decimal strings.
type bseFile struct {
	Name        string                `json:"name"`
	Description string                `json:"description"`
	Elements    map[string]bseElement `json:"elements"`
}

type bseElement struct {
	ElectronShells []bseShell `json:"electron_shells"`
}

type bseShell struct {
	FunctionType    string     `json:"function_type"`
	AngularMomentum []int      `json:"angular_momentum"`
	Exponents       []string   `json:"exponents"`
	Coefficients    [][]string `json:"coefficients"`
}

// ParseBSE reads a Basis Set Exchange JSON document. Every coefficient
// row of an s-type shell becomes one contracted function; rows with
// higher angular momentum are counted in Set.Skipped.
func ParseBSE(r io.Reader) (*Set, error) {
	var doc bseFile
	if err := json.NewDecoder(r).Decode(&doc); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	if len(doc.Elements) == 0 {
		return nil, fmt.Errorf("%w: no elements", ErrMalformed)
	}

	set := newSet()
	set.Name = doc.Name
	set.Description = doc.Description
	for key, el := range doc.Elements {
		z, err := strconv.Atoi(strings.TrimSpace(key))
		if err != nil || z < 1 {
			return nil, fmt.Errorf("%w: element key %q", ErrMalformed, key)
		}
		for k, sh := range el.ElectronShells {
			shells, skipped, err := sh.contractions()
			if err != nil {
				return nil, fmt.Errorf("%w: element %d shell %d: %v", ErrMalformed, z, k+1, err)
			}
			set.Elements[z] = append(set.Elements[z], shells...)
			set.Skipped += skipped
		}
	}
	return set, nil
}

func (sh bseShell) contractions() ([]Shell, int, error) {
	if len(sh.Exponents) == 0 {
		return nil, 0, fmt.Errorf("no exponents")
	}
	if len(sh.Coefficients) == 0 {
		return nil, 0, fmt.Errorf("no coefficients")
	}
	if len(sh.AngularMomentum) == 0 {
		return nil, 0, fmt.Errorf("no angular momentum")
	}
	if len(sh.AngularMomentum) > 1 && len(sh.AngularMomentum) != len(sh.Coefficients) {
		return nil, 0, fmt.Errorf("%d angular momenta for %d coefficient rows", len(sh.AngularMomentum), len(sh.Coefficients))
	}
	exps, err := parseFloats(sh.Exponents)
	if err != nil {
		return nil, 0, fmt.Errorf("exponents: %v", err)
	}

	var res []Shell
	skipped := 0
	for k, row := range sh.Coefficients {
		l := sh.AngularMomentum[0]
		if len(sh.AngularMomentum) > 1 {
			l = sh.AngularMomentum[k]
		}
		if len(row) != len(exps) {
			return nil, 0, fmt.Errorf("%d exponents but %d coefficients", len(exps), len(row))
		}
		if l != 0 {
			skipped++
			continue
		}
		coefs, err := parseFloats(row)
		if err != nil {
			return nil, 0, fmt.Errorf("coefficients: %v", err)
		}
		res = append(res, Shell{Exponents: exps, Coefficients: coefs})
	}
	return res, skipped, nil
}

func parseFloats(words []string) ([]float64, error) {
	res := make([]float64, len(words))
	for i, w := range words {
		v, err := strconv.ParseFloat(strings.TrimSpace(w), 64)
		if err != nil {
			return nil, err
		}
		res[i] = v
	}
	return res, nil
}
