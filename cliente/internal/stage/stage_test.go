package stage

import (
	"context"
	"testing"
	"time"

	"MoleculeVision/shared/chem"
	"MoleculeVision/shared/config"
	"MoleculeVision/shared/molecule"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewAppliesConfig(t *testing.T) {
	cfg := config.DefaultConfig()
	st := New(cfg)

	assert.Equal(t, mgl64.Vec3{0.57, 0.72, 1}, st.Scene.Background)
	assert.Equal(t, 0.4, st.Scene.Ambient)
	assert.Equal(t, 1000, st.Scene.Width)
	assert.Equal(t, 550, st.Scene.Height)
	assert.Equal(t, mgl64.Vec3{0, -3, -2}, st.Scene.Forward)

	require.NotNil(t, st.Ground)
	assert.Equal(t, mgl64.Vec3{0, -20, 0}, st.Ground.Pos)
	assert.Equal(t, mgl64.Vec3{40, 0.2, 40}, st.Ground.Size)
	assert.Equal(t, 0.3, st.Ground.Opacity)
	assert.Len(t, st.Scene.Nodes(), 1)

	assert.Equal(t, 0.01, st.Spinner.Angle)
	assert.Equal(t, mgl64.Vec3{1, 0, 1}, st.Spinner.Axis)
}

func TestNewWithoutGround(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.ShowGround = false

	st := New(cfg)
	require.NotNil(t, st.Ground)
	assert.False(t, st.GroundVisible())
	assert.Empty(t, st.Scene.Nodes())

	st.SetGround(true)
	assert.True(t, st.GroundVisible())
	assert.Len(t, st.Scene.Nodes(), 1)

	st.SetGround(true)
	assert.Len(t, st.Scene.Nodes(), 1)

	st.SetGround(false)
	assert.False(t, st.GroundVisible())
}

func TestGroundToggleKeepsMolecule(t *testing.T) {
	st := New(config.DefaultConfig())
	require.NoError(t, st.Load(chem.Cyclohexane()))

	st.SetGround(false)
	assert.Len(t, st.Scene.Nodes(), 1)
	assert.Len(t, st.Scene.Spheres(), 6)

	st.SetGround(true)
	assert.Len(t, st.Scene.Nodes(), 2)
	assert.Same(t, st.Ground, st.Scene.Nodes()[1])
}

func TestLoadReplacesMolecule(t *testing.T) {
	st := New(config.DefaultConfig())

	require.NoError(t, st.Load(chem.Cyclohexane()))
	assert.Equal(t, "cyclohexane", st.Name())
	assert.Len(t, st.Scene.Spheres(), 6)
	assert.Equal(t, mgl64.Vec3{-6, 0, 0}, st.Molecule.Group.Pos)

	require.NoError(t, st.Load(chem.Butane()))
	assert.Equal(t, "butane", st.Name())
	assert.Len(t, st.Scene.Nodes(), 2, "chão + uma molécula")
	assert.Len(t, st.Scene.Spheres(), 14)
	assert.Same(t, st.Molecule, st.Spinner.Target)
}

func TestLoadErrorKeepsCurrent(t *testing.T) {
	st := New(config.DefaultConfig())
	require.NoError(t, st.Load(chem.Cyclohexane()))

	bad := chem.NewDescription("quebrada", "C").Place("C", 3, mgl64.Vec3{1, 0, 0})
	err := st.Load(bad)
	require.ErrorIs(t, err, chem.ErrIndexOutOfRange)

	assert.Equal(t, "cyclohexane", st.Name())
	assert.Len(t, st.Scene.Spheres(), 6)

	flat := chem.NewDescription("plana", "C").Place("C", 0, mgl64.Vec3{0, 0, 1}, chem.BondDouble)
	require.ErrorIs(t, st.Load(flat), molecule.ErrDegenerateBond)
	assert.Len(t, st.Scene.Nodes(), 2)

	assert.Error(t, st.Load(nil))
}

func TestSpinnerRotatesLoadedMolecule(t *testing.T) {
	st := New(config.DefaultConfig())
	assert.False(t, st.Spinner.Step(), "sem molécula não há o que girar")

	require.NoError(t, st.Load(chem.Butane()))
	before := st.Scene.Spheres()[1].Center

	require.True(t, st.Spinner.Step())
	after := st.Scene.Spheres()[1].Center
	assert.NotEqual(t, before, after)
	assert.InDelta(t, before.Sub(st.Molecule.Group.Pos).Len(), after.Sub(st.Molecule.Group.Pos).Len(), 1e-9)
}

func TestRunSpinsUntilDeadline(t *testing.T) {
	st := New(config.DefaultConfig())
	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()

	_, err := st.Run(ctx, 100, 10)
	require.Error(t, err, "sem molécula")

	require.NoError(t, st.Load(chem.Ethene()))
	before := st.Molecule.Atoms[1].Center

	n, err := st.Run(ctx, 1000, 10)
	require.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Positive(t, n)
	assert.Equal(t, n, st.Spinner.Frame())
	assert.NotEqual(t, before, st.Molecule.Atoms[1].Center)
}
