// text.go --  This file is part of goHF project.
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
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/keiran-rowell/hartee-fock/internal/molecule"
)

// ParseText reads the goHF text basis format:
//
//	BASIS STO-3G
//	ELEMENT H
//	H STO-3G minimal basis
//	1
//	1 0 3
//	3.42525091 0.15432897
//	0.62391373 0.53532814
//	0.16885540 0.44463454
//
// An element block starts with a keyword longer than two characters
// followed by the element symbol, then a description line, the number of
// orbitals, and for every orbital an "n l nPrim" line with nPrim
// "exponent coefficient" lines. Orbitals with l > 0 are skipped.
func ParseText(r io.Reader) (*Set, error) {
	var data []string
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		data = append(data, scanner.Text())
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}

	set := newSet()
	for j := 0; j < len(data); j++ {
		words := strings.Fields(data[j])
		if len(words) < 2 {
			continue
		}
		if strings.EqualFold(words[0], "basis") {
			set.Name = strings.Join(words[1:], " ")
			continue
		}
		if len(words[0]) <= 2 {
			continue
		}
		z, err := molecule.AtomicNumber(words[1])
		if err != nil {
			continue
		}
		if j+1 >= len(data) {
			return nil, fmt.Errorf("%w: element %s: missing description", ErrMalformed, words[1])
		}
		if set.Description == "" {
			set.Description = strings.TrimSpace(data[j+1])
		}
		next, err := set.readElement(z, data, j+2)
		if err != nil {
			return nil, fmt.Errorf("%w: element %s: %v", ErrMalformed, words[1], err)
		}
		j = next - 1
	}
	if len(set.Elements) == 0 {
		return nil, fmt.Errorf("%w: no element blocks", ErrMalformed)
	}
	return set, nil
}

// readElement parses the orbitals of one element starting at line pos and
// returns the first line after the block.
func (s *Set) readElement(z int, data []string, pos int) (int, error) {
	line := func() ([]string, error) {
		if pos >= len(data) {
			return nil, fmt.Errorf("unexpected end of input")
		}
		words := strings.Fields(data[pos])
		pos++
		return words, nil
	}

	words, err := line()
	if err != nil {
		return 0, err
	}
	if len(words) < 1 {
		return 0, fmt.Errorf("line %d: missing orbital count", pos)
	}
	nOrbs, err := strconv.Atoi(words[0])
	if err != nil || nOrbs < 1 {
		return 0, fmt.Errorf("line %d: bad orbital count %q", pos, words[0])
	}

	for k := 0; k < nOrbs; k++ {
		words, err := line()
		if err != nil {
			return 0, err
		}
		if len(words) < 3 {
			return 0, fmt.Errorf("line %d: expected \"n l nPrim\"", pos)
		}
		var nlp [3]int
		for i := range nlp {
			if nlp[i], err = strconv.Atoi(words[i]); err != nil {
				return 0, fmt.Errorf("line %d: %v", pos, err)
			}
		}
		l, nPrim := nlp[1], nlp[2]
		if nPrim < 1 {
			return 0, fmt.Errorf("line %d: %d primitives", pos, nPrim)
		}

		var sh Shell
		for p := 0; p < nPrim; p++ {
			words, err := line()
			if err != nil {
				return 0, err
			}
			if len(words) < 2 {
				return 0, fmt.Errorf("line %d: expected \"exponent coefficient\"", pos)
			}
			vals, err := parseFloats(words[:2])
			if err != nil {
				return 0, fmt.Errorf("line %d: %v", pos, err)
			}
			sh.Exponents = append(sh.Exponents, vals[0])
			sh.Coefficients = append(sh.Coefficients, vals[1])
		}
		if l != 0 {
			s.Skipped++
			continue
		}
		s.Elements[z] = append(s.Elements[z], sh)
	}
	return pos, nil
}
