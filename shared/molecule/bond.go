package molecule

import (
	"errors"
	"fmt"

	"MoleculeVision/shared/chem"
	"MoleculeVision/shared/scene"

	"github.com/go-gl/mathgl/mgl64"
)

// ErrDegenerateBond indica uma ligação dupla cujo deslocamento perpendicular
// não pode ser calculado (direção paralela ao eixo Z ou comprimento zero).
var ErrDegenerateBond = errors.New("ligação dupla degenerada")

// Aparência das ligações.
const (
	SingleBondRadius = 0.6
	DoubleBondRadius = 0.4
	BondOpacity      = 0.6
	DoubleBondGap    = 0.5 // Magnitude do deslocamento de cada cilindro da ligação dupla
)

// BondColor é o branco usado em todas as ligações.
var BondColor = mgl64.Vec3{1, 1, 1}

var zUnit = mgl64.Vec3{0, 0, 1}

// DoubleBondOffset retorna o vetor perpendicular a along, de magnitude
// DoubleBondGap, que separa os dois cilindros de uma ligação dupla.
// O vetor auxiliar along+Z só serve para semear o produto vetorial.
func DoubleBondOffset(along mgl64.Vec3) (mgl64.Vec3, error) {
	c := along.Cross(along.Add(zUnit))
	l := c.Len()
	if l == 0 {
		return mgl64.Vec3{}, fmt.Errorf("%w: direção %v", ErrDegenerateBond, along)
	}
	return c.Mul(DoubleBondGap / l), nil
}

// NewBond cria a primitiva de ligação entre start e end no contexto.
// Ligações simples são um cilindro; duplas são um grupo de dois cilindros
// paralelos deslocados por DoubleBondOffset.
func NewBond(ctx Context, start, end mgl64.Vec3, bond chem.BondType) (scene.Node, error) {
	along := end.Sub(start)

	switch bond {
	case chem.BondSingle:
		return ctx.NewCylinder(start, along, SingleBondRadius, BondColor, BondOpacity), nil
	case chem.BondDouble:
		offset, err := DoubleBondOffset(along)
		if err != nil {
			return nil, err
		}
		c1 := ctx.NewCylinder(start.Add(offset), along, DoubleBondRadius, BondColor, BondOpacity)
		c2 := ctx.NewCylinder(start.Sub(offset), along, DoubleBondRadius, BondColor, BondOpacity)
		return ctx.NewGroup([]scene.Node{c1, c2}, start), nil
	}
	return nil, fmt.Errorf("%v: %w", bond, chem.ErrUnsupportedBondType)
}
