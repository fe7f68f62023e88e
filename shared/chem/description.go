package chem

import (
	"errors"
	"fmt"

	"github.com/go-gl/mathgl/mgl64"
)

var (
	// ErrIndexOutOfRange indica uma referência a um átomo ainda não posicionado.
	ErrIndexOutOfRange = errors.New("índice de átomo fora do intervalo")

	// ErrUnsupportedBondType indica um tipo de ligação diferente de simples ou dupla.
	ErrUnsupportedBondType = errors.New("tipo de ligação não suportado")
)

// BondType é a ordem da ligação.
type BondType int

const (
	BondSingle BondType = 1
	BondDouble BondType = 2
)

// Valid informa se o tipo de ligação pode ser desenhado.
func (b BondType) Valid() bool {
	return b == BondSingle || b == BondDouble
}

func (b BondType) String() string {
	switch b {
	case BondSingle:
		return "simples"
	case BondDouble:
		return "dupla"
	}
	return fmt.Sprintf("BondType(%d)", int(b))
}

// EntryKind distingue as variantes de Entry.
type EntryKind int

const (
	KindAtomPlacement EntryKind = iota // Novo átomo relativo a um existente
	KindExtraBond                      // Ligação extra entre átomos existentes (fecha anéis)
)

// Entry é uma instrução da descrição da molécula.
// A variante é decidida na construção (Place ou Bond), nunca pelo conteúdo.
type Entry struct {
	Kind EntryKind

	// AtomPlacement
	Symbol string
	Parent int
	Offset mgl64.Vec3

	// ExtraBond
	A, B int

	Bond BondType
}

// AtomPlacement cria uma entrada que posiciona um átomo em Parent+Offset.
// O tipo de ligação é simples se omitido.
func AtomPlacement(symbol string, parent int, offset mgl64.Vec3, bond ...BondType) Entry {
	bt := BondSingle
	if len(bond) > 0 {
		bt = bond[0]
	}
	return Entry{Kind: KindAtomPlacement, Symbol: symbol, Parent: parent, Offset: offset, Bond: bt}
}

// ExtraBond cria uma ligação entre dois átomos já posicionados.
func ExtraBond(bond BondType, a, b int) Entry {
	return Entry{Kind: KindExtraBond, A: a, B: b, Bond: bond}
}

// Description é a receita de uma molécula: um átomo raiz seguido de entradas.
//
// Os índices das entradas apontam para a arena de átomos: 0 é a raiz e cada
// AtomPlacement acrescenta um átomo. Ligações extras não acrescentam átomos.
type Description struct {
	Name    string
	Root    string
	Entries []Entry
}

// NewDescription cria uma descrição com apenas o átomo raiz.
func NewDescription(name, root string) *Description {
	return &Description{Name: name, Root: root}
}

// Place acrescenta um AtomPlacement e retorna a descrição para encadeamento.
func (d *Description) Place(symbol string, parent int, offset mgl64.Vec3, bond ...BondType) *Description {
	d.Entries = append(d.Entries, AtomPlacement(symbol, parent, offset, bond...))
	return d
}

// Bond acrescenta uma ligação extra.
func (d *Description) Bond(bond BondType, a, b int) *Description {
	d.Entries = append(d.Entries, ExtraBond(bond, a, b))
	return d
}

// AtomCount retorna o número de átomos (raiz incluída).
func (d *Description) AtomCount() int {
	n := 1
	for _, e := range d.Entries {
		if e.Kind == KindAtomPlacement {
			n++
		}
	}
	return n
}

// BondCount retorna o número de ligações (posicionamentos + ligações extras).
func (d *Description) BondCount() int {
	return len(d.Entries)
}

// Validate percorre a descrição sem construir nada e rejeita símbolos
// desconhecidos, índices ainda não populados e tipos de ligação inválidos.
// O índice de entrada nos erros conta a raiz como 0.
func (d *Description) Validate() error {
	if _, err := Lookup(d.Root); err != nil {
		return fmt.Errorf("entrada 0: %w", err)
	}

	placed := 1
	for i, e := range d.Entries {
		pos := i + 1
		switch e.Kind {
		case KindAtomPlacement:
			if _, err := Lookup(e.Symbol); err != nil {
				return fmt.Errorf("entrada %d: %w", pos, err)
			}
			if e.Parent < 0 || e.Parent >= placed {
				return fmt.Errorf("entrada %d: pai %d (átomos posicionados: %d): %w", pos, e.Parent, placed, ErrIndexOutOfRange)
			}
			if !e.Bond.Valid() {
				return fmt.Errorf("entrada %d: %v: %w", pos, e.Bond, ErrUnsupportedBondType)
			}
			placed++
		case KindExtraBond:
			if e.A < 0 || e.A >= placed || e.B < 0 || e.B >= placed {
				return fmt.Errorf("entrada %d: ligação %d-%d (átomos posicionados: %d): %w", pos, e.A, e.B, placed, ErrIndexOutOfRange)
			}
			if !e.Bond.Valid() {
				return fmt.Errorf("entrada %d: %v: %w", pos, e.Bond, ErrUnsupportedBondType)
			}
		default:
			return fmt.Errorf("entrada %d: tipo de entrada desconhecido %d", pos, e.Kind)
		}
	}
	return nil
}
