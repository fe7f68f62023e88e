// Package chem contém a tabela de elementos e as descrições de moléculas
// usadas pelo construtor de modelos bola-e-vareta.
package chem

import (
	"errors"
	"fmt"

	"github.com/go-gl/mathgl/mgl64"
)

// ErrUnknownElement indica um símbolo atômico fora da tabela.
var ErrUnknownElement = errors.New("elemento desconhecido")

// ElementSpec descreve como um elemento é desenhado.
type ElementSpec struct {
	Radius float64    // Raio de van der Waals (unidades de cena)
	Color  mgl64.Vec3 // RGB normalizado 0-1
}

// Raios de van der Waals de https://www.reed.edu/chemistry/ROCO/Geometry/vdw_radius.html
// e cores CPK (https://en.wikipedia.org/wiki/CPK_coloring).
var elements = map[string]ElementSpec{
	"H":  {1.2, mgl64.Vec3{0.8, 0.8, 0.8}}, // quase branco
	"C":  {1.7, mgl64.Vec3{0.1, 0.1, 0.1}}, // quase preto
	"N":  {1.5, mgl64.Vec3{0, 0, 1}},       // azul
	"O":  {1.4, mgl64.Vec3{1, 0, 0}},       // vermelho
	"F":  {1.35, mgl64.Vec3{0, 1, 0.3}},    // verde claro
	"P":  {1.9, mgl64.Vec3{1, 0.65, 0}},    // laranja
	"S":  {1.85, mgl64.Vec3{1, 1, 0}},      // amarelo
	"Cl": {1.8, mgl64.Vec3{0, 0.8, 0}},     // verde escuro
}

var symbols = []string{"H", "C", "N", "O", "F", "P", "S", "Cl"}

// Lookup retorna a especificação visual de um símbolo atômico.
func Lookup(symbol string) (ElementSpec, error) {
	spec, ok := elements[symbol]
	if !ok {
		return ElementSpec{}, fmt.Errorf("%w: %q", ErrUnknownElement, symbol)
	}
	return spec, nil
}

// IsElement informa se o símbolo está na tabela.
func IsElement(symbol string) bool {
	_, ok := elements[symbol]
	return ok
}

// Symbols retorna os símbolos conhecidos em ordem estável.
func Symbols() []string {
	out := make([]string, len(symbols))
	copy(out, symbols)
	return out
}
