package chem

import (
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLookup(t *testing.T) {
	tests := []struct {
		symbol string
		radius float64
		color  mgl64.Vec3
	}{
		{"H", 1.2, mgl64.Vec3{0.8, 0.8, 0.8}},
		{"C", 1.7, mgl64.Vec3{0.1, 0.1, 0.1}},
		{"N", 1.5, mgl64.Vec3{0, 0, 1}},
		{"O", 1.4, mgl64.Vec3{1, 0, 0}},
		{"F", 1.35, mgl64.Vec3{0, 1, 0.3}},
		{"P", 1.9, mgl64.Vec3{1, 0.65, 0}},
		{"S", 1.85, mgl64.Vec3{1, 1, 0}},
		{"Cl", 1.8, mgl64.Vec3{0, 0.8, 0}},
	}

	for _, tt := range tests {
		spec, err := Lookup(tt.symbol)
		require.NoError(t, err, tt.symbol)
		assert.Equal(t, tt.radius, spec.Radius, tt.symbol)
		assert.Equal(t, tt.color, spec.Color, tt.symbol)
		assert.True(t, IsElement(tt.symbol))
	}
	assert.Len(t, Symbols(), len(tests))
}

func TestLookupUnknown(t *testing.T) {
	for _, sym := range []string{"X", "", "cl", "CL", "Na"} {
		_, err := Lookup(sym)
		assert.ErrorIs(t, err, ErrUnknownElement, "Lookup(%q)", sym)
		assert.False(t, IsElement(sym))
	}
}

func TestAtomPlacementDefaultsToSingle(t *testing.T) {
	e := AtomPlacement("C", 0, mgl64.Vec3{1, 0, 0})
	assert.Equal(t, KindAtomPlacement, e.Kind)
	assert.Equal(t, BondSingle, e.Bond)

	e = AtomPlacement("O", 0, mgl64.Vec3{1, 0, 0}, BondDouble)
	assert.Equal(t, BondDouble, e.Bond)

	e = ExtraBond(BondSingle, 0, 5)
	assert.Equal(t, KindExtraBond, e.Kind)
	assert.Equal(t, 0, e.A)
	assert.Equal(t, 5, e.B)
}

func TestExtraBondDoesNotAddAtoms(t *testing.T) {
	d := Cyclohexane()
	assert.Equal(t, 6, d.AtomCount())
	assert.Equal(t, 6, d.BondCount())

	// Índices de átomos contam apenas posicionamentos
	d = NewDescription("x", "C").
		Place("C", 0, mgl64.Vec3{1, 0, 0}).
		Place("C", 1, mgl64.Vec3{0, 1, 0}).
		Bond(BondSingle, 0, 2).
		Place("H", 2, mgl64.Vec3{0, 0, 1})
	assert.Equal(t, 4, d.AtomCount())
	assert.NoError(t, d.Validate())

	d.Bond(BondSingle, 3, 4)
	assert.ErrorIs(t, d.Validate(), ErrIndexOutOfRange)
}

func TestBondTypeValid(t *testing.T) {
	assert.True(t, BondSingle.Valid())
	assert.True(t, BondDouble.Valid())
	assert.False(t, BondType(0).Valid())
	assert.False(t, BondType(3).Valid())
	assert.Equal(t, "BondType(3)", BondType(3).String())
}

func TestBuiltinsAreValid(t *testing.T) {
	assert.Equal(t, []string{"butane", "cyclohexane", "ethene"}, BuiltinNames())
	for _, d := range Builtins() {
		assert.NoError(t, d.Validate(), d.Name)
	}

	d, ok := Builtin("butane")
	require.True(t, ok)
	assert.Equal(t, 14, d.AtomCount())

	_, ok = Builtin("benzene")
	assert.False(t, ok)
}

func TestTetraMagnitude(t *testing.T) {
	want := 2 * 0.6123724356957945 * VScale // 2*sqrt(3/8)*VScale
	for k := 1; k <= 4; k++ {
		assert.InDelta(t, want, Tetra(k).Len(), 1e-9, "Tetra(%d)", k)
	}
	assert.Equal(t, mgl64.Vec3{}, Tetra(0))
}
