// report_test.go --  This file is part of goHF project.
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
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/klauspost/compress/zstd"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/keiran-rowell/hartee-fock/internal/calc"
	"github.com/keiran-rowell/hartee-fock/internal/integrals"
)

func h2ERI(t *testing.T) *integrals.ERI {
	t.Helper()
	exps := []float64{3.42525091, 0.62391373, 0.16885540}
	coefs := []float64{0.15432897, 0.53532814, 0.44463454}
	a, err := integrals.NewContracted(r3.Vec{}, exps, coefs)
	require.NoError(t, err)
	b, err := integrals.NewContracted(r3.Vec{Z: 1.4}, exps, coefs)
	require.NoError(t, err)
	eri, err := integrals.BuildERI([]*integrals.ContractedGaussian{a, b}, 1)
	require.NoError(t, err)
	return eri
}

func compress(t *testing.T, text string) []byte {
	t.Helper()
	var buf bytes.Buffer
	zw, err := zstd.NewWriter(&buf)
	require.NoError(t, err)
	_, err = zw.Write([]byte(text))
	require.NoError(t, err)
	require.NoError(t, zw.Close())
	return buf.Bytes()
}

func TestERIDump(t *testing.T) {
	eri := h2ERI(t)
	var buf bytes.Buffer
	require.NoError(t, WriteERI(&buf, eri))

	got, err := ReadERI(bytes.NewReader(buf.Bytes()))
	require.NoError(t, err)
	require.Equal(t, eri.N(), got.N())
	for i := 0; i < 2; i++ {
		for j := 0; j < 2; j++ {
			for k := 0; k < 2; k++ {
				for l := 0; l < 2; l++ {
					assert.Equal(t, eri.At(i, j, k, l), got.At(i, j, k, l))
				}
			}
		}
	}
	assert.InDelta(t, 0.7746, got.At(0, 0, 0, 0), 1e-4)

	path := filepath.Join(t.TempDir(), "eri.zst")
	require.NoError(t, DumpERI(path, eri))
	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()
	got, err = ReadERI(f)
	require.NoError(t, err)
	assert.Equal(t, eri.At(1, 0, 1, 0), got.At(0, 1, 0, 1))
}

func TestReadERIErrors(t *testing.T) {
	for name, text := range map[string]string{
		"header": "size 2\n",
		"count":  "n 0\n",
		"fields": "n 2\n1 1 1 0.77\n",
		"index":  "n 2\n3 1 1 1 0.77\n",
		"value":  "n 2\n1 1 1 1 abc\n",
	} {
		_, err := ReadERI(bytes.NewReader(compress(t, text)))
		assert.ErrorIs(t, err, ErrBadDump, name)
	}
	_, err := ReadERI(strings.NewReader("not zstd"))
	assert.Error(t, err)
}

func TestWriteMatrix(t *testing.T) {
	var buf bytes.Buffer
	m := mat.NewDense(2, 2, []float64{1, 0.6593, 0.6593, 1})
	require.NoError(t, WriteMatrix(&buf, "S", m))
	out := buf.String()
	assert.True(t, strings.HasPrefix(out, "S:\n"))
	assert.Contains(t, out, "0.65930000")

	buf.Reset()
	c := mat.NewDense(2, 2, []float64{0.5489, 1.2114, 0.5489, -1.2114})
	require.NoError(t, WriteOrbitals(&buf, []float64{-0.578, 0.670}, c, 1))
	lines := strings.Split(buf.String(), "\n")
	assert.Equal(t, []string{"1", "2", "-0.57800000"}, strings.Fields(lines[1]))
	assert.Equal(t, []string{"2", "0", "0.67000000"}, strings.Fields(lines[2]))
	assert.Contains(t, buf.String(), "MO coefficients:")
}

func TestWriteBasis(t *testing.T) {
	a, err := integrals.NewContracted(r3.Vec{Z: 1.4}, []float64{0.5, 0.1}, []float64{0.6, 0.4})
	require.NoError(t, err)
	b, err := integrals.NewContracted(r3.Vec{}, []float64{1.0}, []float64{1.0})
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, WriteBasis(&buf, []*integrals.ContractedGaussian{a, b}))
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 5)
	assert.Equal(t, []string{"1", "center", "0.000000", "0.000000", "1.400000", "2", "primitives"}, strings.Fields(lines[0]))
	assert.Equal(t, "0.50000000", strings.Fields(lines[1])[0])
	assert.Equal(t, "2", strings.Fields(lines[3])[0])
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) { return 0, os.ErrClosed }

func TestWritersReturnErrors(t *testing.T) {
	m := mat.NewDense(1, 1, []float64{1})
	assert.ErrorIs(t, WriteMatrix(failingWriter{}, "S", m), os.ErrClosed)
	assert.ErrorIs(t, WriteOrbitals(failingWriter{}, []float64{-0.5}, m, 1), os.ErrClosed)
	f, err := integrals.NewContracted(r3.Vec{}, []float64{1.0}, []float64{1.0})
	require.NoError(t, err)
	assert.ErrorIs(t, WriteBasis(failingWriter{}, []*integrals.ContractedGaussian{f}), os.ErrClosed)
}

func TestPlotScan(t *testing.T) {
	points := []calc.Point{
		{Distance: 1.0, Energy: -1.066, Converged: true},
		{Distance: 1.4, Energy: -1.1167, Converged: true},
		{Distance: 2.0, Energy: -1.049, Converged: false},
	}
	path := filepath.Join(t.TempDir(), "scan.png")
	require.NoError(t, PlotScan(points, "H2 STO-3G", path))
	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Positive(t, info.Size())

	assert.Error(t, PlotScan(nil, "empty", path))
}
