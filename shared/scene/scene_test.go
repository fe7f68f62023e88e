package scene

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// assertVec compara pela distância; ApproxEqualThreshold é relativo e
// falha perto de zero.
func assertVec(t *testing.T, want, got mgl64.Vec3) {
	t.Helper()
	assert.InDelta(t, 0, got.Sub(want).Len(), 1e-9, "esperado %v, obtido %v", want, got)
}

func TestGroupAdoptsChildren(t *testing.T) {
	s := New()
	a := s.NewSphere(mgl64.Vec3{1, 0, 0}, 1, mgl64.Vec3{1, 1, 1})
	b := s.NewSphere(mgl64.Vec3{2, 0, 0}, 1, mgl64.Vec3{1, 1, 1})
	ground := s.NewBox(mgl64.Vec3{0, -20, 0}, mgl64.Vec3{40, 0.2, 40}, mgl64.Vec3{1, 1, 1}, 0.3)
	require.Len(t, s.Nodes(), 3)

	g := s.NewGroup([]Node{a, b}, mgl64.Vec3{})
	require.Len(t, s.Nodes(), 2)
	assert.Same(t, ground, s.Nodes()[0])
	assert.Same(t, g, s.Nodes()[1])
	assert.Len(t, s.Spheres(), 2)

	assert.True(t, s.Remove(g))
	assert.False(t, s.Remove(g))
	assert.Empty(t, s.Spheres())

	s.Add(g)
	s.Add(g)
	assert.Len(t, s.Nodes(), 2, "Add não duplica")
	assert.Len(t, s.Spheres(), 2)
}

func TestGroupRotate(t *testing.T) {
	s := New()
	sp := s.NewSphere(mgl64.Vec3{2, 0, 0}, 1, mgl64.Vec3{})
	cyl := s.NewCylinder(mgl64.Vec3{1, 0, 0}, mgl64.Vec3{1, 0, 0}, 0.6, mgl64.Vec3{1, 1, 1}, 0.6)
	g := s.NewGroup([]Node{cyl, sp}, mgl64.Vec3{1, 0, 0})

	g.Rotate(math.Pi/2, mgl64.Vec3{0, 0, 1})

	assertVec(t, mgl64.Vec3{1, 1, 0}, sp.Center)
	assertVec(t, mgl64.Vec3{1, 0, 0}, cyl.Pos)
	assertVec(t, mgl64.Vec3{0, 1, 0}, cyl.Axis)
	assert.Equal(t, mgl64.Vec3{1, 0, 0}, g.Pos)
}

func TestRotateZeroAxisIsNoop(t *testing.T) {
	sp := &Sphere{Center: mgl64.Vec3{1, 2, 3}}
	g := &Group{Children: []Node{sp}}
	g.Rotate(1, mgl64.Vec3{})
	assert.Equal(t, mgl64.Vec3{1, 2, 3}, sp.Center)
}

func TestNestedGroupRotatesAboutOuterAnchor(t *testing.T) {
	s := New()
	c1 := s.NewCylinder(mgl64.Vec3{0, 1, 0}, mgl64.Vec3{1, 0, 0}, 0.4, mgl64.Vec3{}, 0.6)
	inner := s.NewGroup([]Node{c1}, mgl64.Vec3{0, 1, 0})
	outer := s.NewGroup([]Node{inner}, mgl64.Vec3{})

	outer.Rotate(math.Pi, mgl64.Vec3{0, 0, 1})

	assertVec(t, mgl64.Vec3{0, -1, 0}, c1.Pos)
	assertVec(t, mgl64.Vec3{0, -1, 0}, inner.Pos)
	assertVec(t, mgl64.Vec3{-1, 0, 0}, c1.Axis)

	var leaves int
	s.Walk(func(Node) { leaves++ })
	assert.Equal(t, 1, leaves)
}

func TestBoxRotation(t *testing.T) {
	b := &Box{Pos: mgl64.Vec3{1, 0, 0}, Orientation: mgl64.QuatIdent()}
	b.RotateAbout(math.Pi/2, mgl64.Vec3{0, 1, 0}, mgl64.Vec3{})
	assertVec(t, mgl64.Vec3{0, 0, -1}, b.Pos)
	assert.InDelta(t, 1, b.Orientation.Len(), 1e-12)
}

func TestBounds(t *testing.T) {
	s := New()
	_, _, ok := s.Bounds()
	assert.False(t, ok)

	s.NewBox(mgl64.Vec3{0, -20, 0}, mgl64.Vec3{40, 0.2, 40}, mgl64.Vec3{1, 1, 1}, 0.3)
	s.NewSphere(mgl64.Vec3{-2, 0, 0}, 1, mgl64.Vec3{})
	s.NewSphere(mgl64.Vec3{2, 0, 0}, 1.5, mgl64.Vec3{})

	center, radius, ok := s.Bounds()
	require.True(t, ok)
	assertVec(t, mgl64.Vec3{}, center)
	assert.InDelta(t, 3.5, radius, 1e-12, "caixas não entram no enquadramento")
}
