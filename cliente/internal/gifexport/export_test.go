package gifexport

import (
	"image/gif"
	"math"
	"os"
	"path/filepath"
	"testing"

	"MoleculeVision/shared/anim"
	"MoleculeVision/shared/chem"
	"MoleculeVision/shared/molecule"
	"MoleculeVision/shared/scene"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIntersectSphere(t *testing.T) {
	sp := &scene.Sphere{Center: mgl64.Vec3{0, 0, 5}, Radius: 1}
	tHit, ok := intersectSphere(mgl64.Vec3{}, mgl64.Vec3{0, 0, 1}, sp)
	require.True(t, ok)
	assert.InDelta(t, 4, tHit, 1e-9)

	_, ok = intersectSphere(mgl64.Vec3{}, mgl64.Vec3{0, 1, 0}, sp)
	assert.False(t, ok)
}

func TestIntersectCylinder(t *testing.T) {
	cyl := &scene.Cylinder{Pos: mgl64.Vec3{-2, 0, 5}, Axis: mgl64.Vec3{4, 0, 0}, Radius: 0.5}

	// Lateral
	tHit, ok, n := intersectCylinder(mgl64.Vec3{}, mgl64.Vec3{0, 0, 1}, cyl)
	require.True(t, ok)
	assert.InDelta(t, 4.5, tHit, 1e-9)
	assert.InDelta(t, 0, n.Sub(mgl64.Vec3{0, 0, -1}).Len(), 1e-9)

	// Tampa
	tHit, ok, n = intersectCylinder(mgl64.Vec3{-10, 0, 5}, mgl64.Vec3{1, 0, 0}, cyl)
	require.True(t, ok)
	assert.InDelta(t, 8, tHit, 1e-9)
	assert.Equal(t, mgl64.Vec3{-1, 0, 0}, n)

	// Além do comprimento
	_, ok, _ = intersectCylinder(mgl64.Vec3{3, 0, 0}, mgl64.Vec3{0, 0, 1}, cyl)
	assert.False(t, ok)
}

func TestIntersectBox(t *testing.T) {
	b := &scene.Box{Pos: mgl64.Vec3{0, -20, 0}, Size: mgl64.Vec3{40, 0.2, 40}}
	tHit, ok, n := intersectBox(mgl64.Vec3{}, mgl64.Vec3{0, -1, 0}, b)
	require.True(t, ok)
	assert.InDelta(t, 19.9, tHit, 1e-9)
	assert.Equal(t, mgl64.Vec3{0, 1, 0}, n)

	_, ok, _ = intersectBox(mgl64.Vec3{}, mgl64.Vec3{0, 1, 0}, b)
	assert.False(t, ok)
}

func TestExportRotatesMolecule(t *testing.T) {
	sc := scene.New()
	sc.NewBox(mgl64.Vec3{0, -20, 0}, mgl64.Vec3{40, 0.2, 40}, mgl64.Vec3{1, 1, 1}, 0.3)
	m, err := molecule.Build(sc, mgl64.Vec3{-6, 0, 0}, chem.Cyclohexane())
	require.NoError(t, err)

	spin := anim.NewSpinner(m)
	opts := Options{Width: 48, Height: 27, Frames: 3, Delay: 5, FOV: math.Pi / 3, Every: 10}
	g, err := Export(sc, spin, opts)
	require.NoError(t, err)

	require.Len(t, g.Image, 3)
	assert.Equal(t, []int{5, 5, 5}, g.Delay)
	assert.Equal(t, 30, spin.Frame())

	// Boa parte do frame mostra a molécula, não o fundo
	frame := g.Image[0]
	bgIndex := uint8(frame.Palette.Index(toRGBA(sc.Background)))
	covered := 0
	for _, idx := range frame.Pix {
		if idx != bgIndex {
			covered++
		}
	}
	assert.Greater(t, covered, len(frame.Pix)/20)

	path := filepath.Join(t.TempDir(), "mol.gif")
	require.NoError(t, WriteFile(path, g))
	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()
	decoded, err := gif.DecodeAll(f)
	require.NoError(t, err)
	assert.Len(t, decoded.Image, 3)
}

func TestExportErrors(t *testing.T) {
	_, err := Export(scene.New(), anim.NewSpinner(nil), DefaultOptions())
	assert.Error(t, err)

	_, err = Export(scene.New(), anim.NewSpinner(nil), Options{})
	assert.Error(t, err)
}
