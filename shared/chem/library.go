package chem

import (
	"math"
	"sort"

	"github.com/go-gl/mathgl/mgl64"
)

// VScale é o comprimento de escala dos vetores tetraédricos.
// Magnitude de cada vetor = 2 * sqrt(3/8) * VScale.
const VScale = 4.0

// HydrogenScale encurta as ligações C-H em relação às C-C.
const HydrogenScale = 0.7

// Tetra retorna o k-ésimo vetor do tetraedro (1-4). Tetra(0) é o vetor nulo.
func Tetra(k int) mgl64.Vec3 {
	h := 1 / math.Sqrt2
	switch k {
	case 1:
		return mgl64.Vec3{1, 0, -h}.Mul(VScale)
	case 2:
		return mgl64.Vec3{-1, 0, -h}.Mul(VScale)
	case 3:
		return mgl64.Vec3{0, 1, h}.Mul(VScale)
	case 4:
		return mgl64.Vec3{0, -1, h}.Mul(VScale)
	}
	return mgl64.Vec3{}
}

func hydro(k int, sign float64) mgl64.Vec3 {
	return Tetra(k).Mul(sign * HydrogenScale)
}

// Butane retorna o butano com todos os hidrogênios.
func Butane() *Description {
	return NewDescription("butane", "C").
		Place("C", 0, Tetra(1)).
		Place("C", 1, Tetra(2).Mul(-1)).
		Place("C", 2, Tetra(1)).
		Place("H", 0, hydro(2, 1)).
		Place("H", 0, hydro(3, 1)).
		Place("H", 0, hydro(4, 1)).
		Place("H", 1, hydro(3, -1)).
		Place("H", 1, hydro(4, -1)).
		Place("H", 2, hydro(3, 1)).
		Place("H", 2, hydro(4, 1)).
		Place("H", 3, hydro(2, -1)).
		Place("H", 3, hydro(3, -1)).
		Place("H", 3, hydro(4, -1))
}

// Cyclohexane retorna o esqueleto de carbonos do ciclo-hexano (cadeira),
// fechado por uma ligação extra entre o último carbono e a raiz.
func Cyclohexane() *Description {
	return NewDescription("cyclohexane", "C").
		Place("C", 0, Tetra(3)).
		Place("C", 1, Tetra(1).Mul(-1)).
		Place("C", 2, Tetra(4)).
		Place("C", 3, Tetra(3).Mul(-1)).
		Place("C", 4, Tetra(1)).
		Bond(BondSingle, 0, 5)
}

// Ethene retorna o eteno, exemplo de ligação dupla.
func Ethene() *Description {
	return NewDescription("ethene", "C").
		Place("C", 0, Tetra(1), BondDouble).
		Place("H", 0, hydro(3, 1)).
		Place("H", 0, hydro(4, 1)).
		Place("H", 1, hydro(3, 1)).
		Place("H", 1, hydro(4, 1))
}

var builtins = map[string]func() *Description{
	"butane":      Butane,
	"cyclohexane": Cyclohexane,
	"ethene":      Ethene,
}

// Builtin retorna uma cópia nova de uma molécula embutida.
func Builtin(name string) (*Description, bool) {
	fn, ok := builtins[name]
	if !ok {
		return nil, false
	}
	return fn(), true
}

// BuiltinNames lista as moléculas embutidas em ordem alfabética.
func BuiltinNames() []string {
	names := make([]string, 0, len(builtins))
	for name := range builtins {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Builtins retorna todas as moléculas embutidas.
func Builtins() []*Description {
	var out []*Description
	for _, name := range BuiltinNames() {
		d, _ := Builtin(name)
		out = append(out, d)
	}
	return out
}
