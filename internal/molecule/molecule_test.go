package molecule

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/spatial/r3"
)

func TestAtomicNumber(t *testing.T) {
	for _, tc := range []struct {
		symbol string
		z      int
	}{
		{"H", 1}, {"he", 2}, {"HE", 2}, {"Cl", 17}, {"Ar", 18},
	} {
		z, err := AtomicNumber(tc.symbol)
		require.NoError(t, err)
		assert.Equal(t, tc.z, z, tc.symbol)
	}
	_, err := AtomicNumber("Xx")
	assert.ErrorIs(t, err, ErrUnknownElement)

	s, err := Symbol(2)
	require.NoError(t, err)
	assert.Equal(t, "He", s)
	_, err = Symbol(200)
	assert.ErrorIs(t, err, ErrUnknownElement)
	assert.Len(t, ElemData.Mass, len(ElemData.Z))
}

func TestDiatomic(t *testing.T) {
	mol, err := Diatomic("He", "h", 1.4632)
	require.NoError(t, err)
	require.Len(t, mol.Atoms, 2)
	assert.Equal(t, "H", mol.Atoms[1].Symbol)
	assert.Equal(t, 3, mol.Electrons())
	mol.Charge = 1
	assert.Equal(t, 2, mol.Electrons())
	assert.InDelta(t, 1.4632, mol.Distance(0, 1), 1e-15)

	nuc := mol.Nuclei()
	assert.Equal(t, 2.0, nuc[0].Charge)
	assert.Equal(t, r3.Vec{Z: 1.4632}, nuc[1].Position)

	e, err := mol.NucNuc()
	require.NoError(t, err)
	assert.InDelta(t, 2/1.4632, e, 1e-14)

	_, err = Diatomic("H", "Qq", 1)
	assert.ErrorIs(t, err, ErrUnknownElement)
}

func TestReadXYZ(t *testing.T) {
	in := "2\nhydrogen molecule\nH 0.0 0.0 0.0\nH 0.0 0.0 0.74\n"
	mol, err := ReadXYZ(strings.NewReader(in))
	require.NoError(t, err)
	require.Len(t, mol.Atoms, 2)
	assert.InDelta(t, 0.74/ABohr, mol.Atoms[1].Coords.Z, 1e-12)
	assert.Equal(t, 2, mol.Electrons())
}

func TestReadXYZMalformed(t *testing.T) {
	for name, in := range map[string]string{
		"empty":         "",
		"bad count":     "two\n\nH 0 0 0\n",
		"no comment":    "1\n",
		"missing atom":  "2\nc\nH 0 0 0\n",
		"short line":    "1\nc\nH 0 0\n",
		"bad float":     "1\nc\nH 0 x 0\n",
		"unknown atom":  "1\nc\nZz 0 0 0\n",
		"zero atoms":    "0\nc\n",
	} {
		t.Run(name, func(t *testing.T) {
			_, err := ReadXYZ(strings.NewReader(in))
			assert.ErrorIs(t, err, ErrMalformedXYZ)
		})
	}
}
