package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadMissingReturnsDefaults(t *testing.T) {
	cfg := LoadFrom(filepath.Join(t.TempDir(), "nao-existe.json"))
	assert.Equal(t, DefaultConfig(), cfg)
	assert.Equal(t, int32(100), cfg.Rate)
	assert.Equal(t, [3]float64{-6, 0, 0}, cfg.Start)
}

func TestSaveAndLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	cfg := DefaultConfig()
	cfg.Molecule = "butane"
	cfg.SpinAxis = [3]float64{0, 1, 0}
	require.NoError(t, cfg.SaveTo(path))

	got := LoadFrom(path)
	assert.Equal(t, "butane", got.Molecule)
	assert.Equal(t, [3]float64{0, 1, 0}, got.SpinAxis)
}

func TestPartialFileKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"molecule":"ethene"}`), 0644))

	got := LoadFrom(path)
	assert.Equal(t, "ethene", got.Molecule)
	assert.Equal(t, int32(1000), got.WindowWidth)
}

func TestInvalidFileFallsBack(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte(`{quebrado`), 0644))
	assert.Equal(t, DefaultConfig(), LoadFrom(path))
}
