package catalog

import (
	"path/filepath"
	"testing"

	"MoleculeVision/shared/chem"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTemp(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "saves", "molecules.db"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func TestSeedAndLoad(t *testing.T) {
	s := openTemp(t)
	require.NoError(t, s.Seed(chem.Builtins()...))

	names, err := s.Names()
	require.NoError(t, err)
	assert.Equal(t, chem.BuiltinNames(), names)

	got, err := s.Load("cyclohexane")
	require.NoError(t, err)
	assert.Equal(t, chem.Cyclohexane(), got)
}

func TestSeedTwiceUpserts(t *testing.T) {
	s := openTemp(t)
	require.NoError(t, s.Seed(chem.Ethene()))
	require.NoError(t, s.Seed(chem.Ethene()))

	names, err := s.Names()
	require.NoError(t, err)
	assert.Equal(t, []string{"ethene"}, names)
}

func TestLoadMissing(t *testing.T) {
	s := openTemp(t)
	_, err := s.Load("benzene")
	assert.ErrorIs(t, err, ErrNotFound)
	assert.ErrorIs(t, s.Delete("benzene"), ErrNotFound)
}

func TestSaveRejectsInvalid(t *testing.T) {
	s := openTemp(t)
	bad := chem.NewDescription("ruim", "C").Place("X", 0, mgl64.Vec3{1, 0, 0})
	assert.ErrorIs(t, s.Save(bad), chem.ErrUnknownElement)

	assert.Error(t, s.Save(chem.NewDescription("", "C")))

	names, err := s.Names()
	require.NoError(t, err)
	assert.Empty(t, names)
}

func TestDelete(t *testing.T) {
	s := openTemp(t)
	require.NoError(t, s.Seed(chem.Butane(), chem.Ethene()))
	require.NoError(t, s.Delete("butane"))

	names, err := s.Names()
	require.NoError(t, err)
	assert.Equal(t, []string{"ethene"}, names)
}
