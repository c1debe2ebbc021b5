// basis_test.go --  This file is part of goHF project.
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
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/keiran-rowell/hartee-fock/internal/molecule"
)

func TestLoadEmbedded(t *testing.T) {
	set, err := Load("STO-3G")
	require.NoError(t, err)
	assert.Equal(t, "STO-3G", set.Name)
	assert.Equal(t, []int{1, 2}, set.ElementList())
	require.Len(t, set.Elements[1], 1)
	h := set.Elements[1][0]
	assert.InDeltaSlice(t, []float64{3.425250914, 0.6239137298, 0.168855404}, h.Exponents, 1e-12)
	assert.InDeltaSlice(t, []float64{0.1543289673, 0.5353281423, 0.4446345422}, h.Coefficients, 1e-12)
	assert.Zero(t, set.Skipped)

	set, err = Load(" 6-31g ")
	require.NoError(t, err)
	require.Len(t, set.Elements[1], 2)
	assert.Len(t, set.Elements[1][1].Exponents, 1)

	_, err = Load("cc-pvdz")
	assert.ErrorIs(t, err, ErrUnknownBasis)
}

func TestParseBSEErrors(t *testing.T) {
	for name, doc := range map[string]string{
		"syntax":      `{"elements": `,
		"empty":       `{"name": "x", "elements": {}}`,
		"key":         `{"elements": {"H": {"electron_shells": [{"angular_momentum": [0], "exponents": ["1.0"], "coefficients": [["1.0"]]}]}}}`,
		"mismatch":    `{"elements": {"1": {"electron_shells": [{"angular_momentum": [0], "exponents": ["1.0", "2.0"], "coefficients": [["1.0"]]}]}}}`,
		"nonnumeric":  `{"elements": {"1": {"electron_shells": [{"angular_momentum": [0], "exponents": ["one"], "coefficients": [["1.0"]]}]}}}`,
		"coefficient": `{"elements": {"1": {"electron_shells": [{"angular_momentum": [0], "exponents": ["1.0"], "coefficients": [["x"]]}]}}}`,
		"noexp":       `{"elements": {"1": {"electron_shells": [{"angular_momentum": [0], "exponents": [], "coefficients": [["1.0"]]}]}}}`,
	} {
		_, err := ParseBSE(strings.NewReader(doc))
		assert.ErrorIs(t, err, ErrMalformed, name)
	}
}

func TestParseBSESkipsHigherShells(t *testing.T) {
	doc := `{
  "name": "mini",
  "elements": {
    "3": {"electron_shells": [
      {"angular_momentum": [0], "exponents": ["16.1", "2.9"], "coefficients": [["0.15", "0.53"]]},
      {"angular_momentum": [0, 1], "exponents": ["0.63", "0.06"], "coefficients": [["-0.1", "1.0"], ["0.15", "0.9"]]},
      {"angular_momentum": [2], "exponents": ["0.2"], "coefficients": [["1.0"]]}
    ]}
  }
}`
	set, err := ParseBSE(strings.NewReader(doc))
	require.NoError(t, err)
	assert.Equal(t, "mini", set.Name)
	require.Len(t, set.Elements[3], 2)
	assert.Equal(t, 2, set.Skipped)
	assert.Equal(t, []float64{-0.1, 1.0}, set.Elements[3][1].Coefficients)
}

const textBasis = `BASIS STO-3G
! hydrogen and a p shell that is dropped
ELEMENT H
H STO-3G minimal basis
2
1 0 3
3.42525091 0.15432897
0.62391373 0.53532814
0.16885540 0.44463454
2 1 1
0.5 1.0
ELEMENT He
He STO-3G minimal basis
1
1 0 3
6.36242139 0.15432897
1.15892300 0.53532814
0.31364979 0.44463454
`

func TestParseText(t *testing.T) {
	set, err := ParseText(strings.NewReader(textBasis))
	require.NoError(t, err)
	assert.Equal(t, "STO-3G", set.Name)
	assert.Equal(t, "H STO-3G minimal basis", set.Description)
	assert.Equal(t, []int{1, 2}, set.ElementList())
	assert.Equal(t, 1, set.Skipped)
	require.Len(t, set.Elements[2], 1)
	assert.Equal(t, []float64{6.36242139, 1.158923, 0.31364979}, set.Elements[2][0].Exponents)

	for name, in := range map[string]string{
		"none":      "BASIS x\n",
		"count":     "ELEMENT H\nH\nfoo\n",
		"truncated": "ELEMENT H\nH\n1\n1 0 3\n3.4 0.15\n",
		"numbers":   "ELEMENT H\nH\n1\n1 0 1\n3.4 abc\n",
		"header":    "ELEMENT H\nH\n1\n1 0\n",
	} {
		_, err := ParseText(strings.NewReader(in))
		assert.ErrorIs(t, err, ErrMalformed, name)
	}
}

func TestFunctions(t *testing.T) {
	set, err := Load("6-31g")
	require.NoError(t, err)
	mol, err := molecule.Diatomic("H", "He", 1.4632)
	require.NoError(t, err)

	funcs, err := set.Functions(mol)
	require.NoError(t, err)
	require.Len(t, funcs, 4)
	assert.Equal(t, mol.Atoms[0].Coords, funcs[0].Center())
	assert.Equal(t, mol.Atoms[0].Coords, funcs[1].Center())
	assert.Equal(t, mol.Atoms[1].Coords, funcs[2].Center())
	assert.Equal(t, 3, funcs[0].Len())
	assert.Equal(t, 1, funcs[3].Len())

	mol, err = molecule.Diatomic("H", "Li", 3.0)
	require.NoError(t, err)
	_, err = set.Functions(mol)
	assert.ErrorIs(t, err, ErrMissingElement)
}

func TestLoadFile(t *testing.T) {
	dir := t.TempDir()
	txt := filepath.Join(dir, "sto3g.bas")
	require.NoError(t, os.WriteFile(txt, []byte(textBasis), 0o644))
	set, err := LoadFile(txt)
	require.NoError(t, err)
	assert.Len(t, set.Elements, 2)

	raw, err := embedded.ReadFile("data/sto-3g.json")
	require.NoError(t, err)
	js := filepath.Join(dir, "custom.JSON")
	require.NoError(t, os.WriteFile(js, raw, 0o644))
	set, err = LoadFile(js)
	require.NoError(t, err)
	assert.Equal(t, "STO-3G", set.Name)

	_, err = LoadFile(filepath.Join(dir, "missing.bas"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}
