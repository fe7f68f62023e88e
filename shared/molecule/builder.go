// Package molecule converte descrições de moléculas em geometria:
// esferas para os átomos e cilindros para as ligações, agrupadas num
// único objeto rígido.
package molecule

import (
	"fmt"

	"MoleculeVision/shared/chem"
	"MoleculeVision/shared/scene"

	"github.com/go-gl/mathgl/mgl64"
)

// Context é o contexto de renderização onde as primitivas são registradas.
// *scene.Scene o implementa.
type Context interface {
	NewSphere(center mgl64.Vec3, radius float64, color mgl64.Vec3) *scene.Sphere
	NewCylinder(pos, axis mgl64.Vec3, radius float64, color mgl64.Vec3, opacity float64) *scene.Cylinder
	NewGroup(children []scene.Node, pos mgl64.Vec3) *scene.Group
}

// Molecule é o resultado de Build.
type Molecule struct {
	Name      string
	Group     *scene.Group    // Ligações seguidas de átomos, ancorado em start
	Positions []mgl64.Vec3    // Posição absoluta de cada átomo na hora da construção
	Atoms     []*scene.Sphere // Mesma indexação de Positions
	Bonds     []scene.Node    // Na ordem das entradas
}

// Rotate gira a molécula em torno da âncora do grupo.
func (m *Molecule) Rotate(angle float64, axis mgl64.Vec3) {
	m.Group.Rotate(angle, axis)
}

// Resolve calcula as posições absolutas dos átomos sem criar geometria.
func Resolve(start mgl64.Vec3, d *chem.Description) ([]mgl64.Vec3, error) {
	if err := d.Validate(); err != nil {
		return nil, err
	}
	return resolve(start, d), nil
}

// resolve assume uma descrição válida.
func resolve(start mgl64.Vec3, d *chem.Description) []mgl64.Vec3 {
	positions := make([]mgl64.Vec3, 1, d.AtomCount())
	positions[0] = start
	for _, e := range d.Entries {
		if e.Kind == chem.KindAtomPlacement {
			positions = append(positions, positions[e.Parent].Add(e.Offset))
		}
	}
	return positions
}

// checkBonds verifica as ligações duplas antes de registrar qualquer primitiva.
func checkBonds(d *chem.Description, positions []mgl64.Vec3) error {
	atom := 1
	for i, e := range d.Entries {
		var a, b int
		switch e.Kind {
		case chem.KindAtomPlacement:
			a, b = e.Parent, atom
			atom++
		case chem.KindExtraBond:
			a, b = e.A, e.B
		}
		if e.Bond != chem.BondDouble {
			continue
		}
		if _, err := DoubleBondOffset(positions[b].Sub(positions[a])); err != nil {
			return fmt.Errorf("entrada %d: %w", i+1, err)
		}
	}
	return nil
}

// Build constrói a molécula descrita por d a partir de start e registra as
// primitivas em ctx. Em caso de erro nada é registrado.
func Build(ctx Context, start mgl64.Vec3, d *chem.Description) (*Molecule, error) {
	if err := d.Validate(); err != nil {
		return nil, fmt.Errorf("molécula %q: %w", d.Name, err)
	}
	positions := resolve(start, d)
	if err := checkBonds(d, positions); err != nil {
		return nil, fmt.Errorf("molécula %q: %w", d.Name, err)
	}

	m := &Molecule{
		Name:      d.Name,
		Positions: positions,
		Atoms:     make([]*scene.Sphere, 0, len(positions)),
		Bonds:     make([]scene.Node, 0, d.BondCount()),
	}

	root, _ := chem.Lookup(d.Root)
	m.Atoms = append(m.Atoms, ctx.NewSphere(start, root.Radius, root.Color))

	atom := 1
	for _, e := range d.Entries {
		var from, to mgl64.Vec3
		switch e.Kind {
		case chem.KindAtomPlacement:
			spec, _ := chem.Lookup(e.Symbol)
			m.Atoms = append(m.Atoms, ctx.NewSphere(positions[atom], spec.Radius, spec.Color))
			from, to = positions[e.Parent], positions[atom]
			atom++
		case chem.KindExtraBond:
			from, to = positions[e.A], positions[e.B]
		}

		bond, err := NewBond(ctx, from, to, e.Bond)
		if err != nil {
			// Inalcançável após Validate e checkBonds
			return nil, fmt.Errorf("molécula %q: %w", d.Name, err)
		}
		m.Bonds = append(m.Bonds, bond)
	}

	parts := make([]scene.Node, 0, len(m.Bonds)+len(m.Atoms))
	parts = append(parts, m.Bonds...)
	for _, a := range m.Atoms {
		parts = append(parts, a)
	}
	m.Group = ctx.NewGroup(parts, start)
	return m, nil
}
