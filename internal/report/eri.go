// eri.go --  This file is part of goHF project.
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
package report

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/klauspost/compress/zstd"

	"github.com/keiran-rowell/hartee-fock/internal/integrals"
)

// ErrBadDump is returned by ReadERI for malformed input.
var ErrBadDump = errors.New("report: malformed ERI dump")

// WriteERI writes the symmetry-unique integrals as zstd-compressed text:
// a header line "n <nbasis>" and then one "i j k l value" line per
// canonical quartet, indices starting at 1.
func WriteERI(w io.Writer, eri *integrals.ERI) error {
	zw, err := zstd.NewWriter(w, zstd.WithEncoderLevel(zstd.SpeedBestCompression))
	if err != nil {
		return err
	}
	bw := bufio.NewWriter(zw)
	fmt.Fprintf(bw, "n %d\n", eri.N())
	eri.Unique(func(q integrals.Quartet, v float64) {
		fmt.Fprintf(bw, "%d %d %d %d %s\n", q.I+1, q.J+1, q.K+1, q.L+1, strconv.FormatFloat(v, 'g', -1, 64))
	})
	if err := bw.Flush(); err != nil {
		zw.Close()
		return err
	}
	return zw.Close()
}

// ReadERI reads a dump written by WriteERI.
func ReadERI(r io.Reader) (*integrals.ERI, error) {
	zr, err := zstd.NewReader(r)
	if err != nil {
		return nil, err
	}
	defer zr.Close()

	scanner := bufio.NewScanner(zr)
	if !scanner.Scan() {
		if err := scanner.Err(); err != nil {
			return nil, err
		}
		return nil, fmt.Errorf("%w: empty", ErrBadDump)
	}
	words := strings.Fields(scanner.Text())
	if len(words) != 2 || words[0] != "n" {
		return nil, fmt.Errorf("%w: header %q", ErrBadDump, scanner.Text())
	}
	n, err := strconv.Atoi(words[1])
	if err != nil || n < 1 {
		return nil, fmt.Errorf("%w: header %q", ErrBadDump, scanner.Text())
	}

	vals := make(map[integrals.Quartet]float64)
	line := 1
	for scanner.Scan() {
		line++
		words := strings.Fields(scanner.Text())
		if len(words) == 0 {
			continue
		}
		if len(words) != 5 {
			return nil, fmt.Errorf("%w: line %d", ErrBadDump, line)
		}
		var idx [4]int
		for i := range idx {
			idx[i], err = strconv.Atoi(words[i])
			if err != nil || idx[i] < 1 || idx[i] > n {
				return nil, fmt.Errorf("%w: line %d: index %q", ErrBadDump, line, words[i])
			}
			idx[i]--
		}
		v, err := strconv.ParseFloat(words[4], 64)
		if err != nil {
			return nil, fmt.Errorf("%w: line %d: %v", ErrBadDump, line, err)
		}
		vals[integrals.Quartet{I: idx[0], J: idx[1], K: idx[2], L: idx[3]}] = v
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return integrals.NewERIFromUnique(n, vals), nil
}

// DumpERI writes the dump to a file.
func DumpERI(path string, eri *integrals.ERI) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := WriteERI(f, eri); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
