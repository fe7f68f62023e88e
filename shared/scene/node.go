// Package scene implementa o contexto de renderização em memória: primitivas,
// grupos rígidos e as configurações da cena (fundo, luz ambiente, câmera).
package scene

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Node é qualquer elemento posicionado da cena.
type Node interface {
	// RotateAbout gira o nó rigidamente em torno de origin.
	RotateAbout(angle float64, axis, origin mgl64.Vec3)
}

// rotation retorna o quaternion de rotação ou false se o eixo for nulo.
func rotation(angle float64, axis mgl64.Vec3) (mgl64.Quat, bool) {
	l := axis.Len()
	if l == 0 || math.IsNaN(l) {
		return mgl64.QuatIdent(), false
	}
	return mgl64.QuatRotate(angle, axis.Mul(1/l)), true
}

func rotatePoint(q mgl64.Quat, p, origin mgl64.Vec3) mgl64.Vec3 {
	return origin.Add(q.Rotate(p.Sub(origin)))
}

// Sphere é um átomo.
type Sphere struct {
	Center mgl64.Vec3
	Radius float64
	Color  mgl64.Vec3
}

func (s *Sphere) RotateAbout(angle float64, axis, origin mgl64.Vec3) {
	q, ok := rotation(angle, axis)
	if !ok {
		return
	}
	s.Center = rotatePoint(q, s.Center, origin)
}

// Cylinder é uma ligação: base em Pos, estendendo-se por Axis.
type Cylinder struct {
	Pos     mgl64.Vec3
	Axis    mgl64.Vec3
	Radius  float64
	Color   mgl64.Vec3
	Opacity float64
}

// End retorna o centro da tampa final.
func (c *Cylinder) End() mgl64.Vec3 {
	return c.Pos.Add(c.Axis)
}

func (c *Cylinder) RotateAbout(angle float64, axis, origin mgl64.Vec3) {
	q, ok := rotation(angle, axis)
	if !ok {
		return
	}
	c.Pos = rotatePoint(q, c.Pos, origin)
	c.Axis = q.Rotate(c.Axis)
}

// Box é um paralelepípedo centrado em Pos (usado como chão).
type Box struct {
	Pos         mgl64.Vec3
	Size        mgl64.Vec3
	Color       mgl64.Vec3
	Opacity     float64
	Orientation mgl64.Quat
}

func (b *Box) RotateAbout(angle float64, axis, origin mgl64.Vec3) {
	q, ok := rotation(angle, axis)
	if !ok {
		return
	}
	b.Pos = rotatePoint(q, b.Pos, origin)
	b.Orientation = q.Mul(b.Orientation).Normalize()
}

// Group é um objeto composto que se move como corpo rígido.
type Group struct {
	Pos      mgl64.Vec3
	Children []Node
}

// Rotate gira o grupo em torno da própria âncora.
func (g *Group) Rotate(angle float64, axis mgl64.Vec3) {
	g.RotateAbout(angle, axis, g.Pos)
}

func (g *Group) RotateAbout(angle float64, axis, origin mgl64.Vec3) {
	q, ok := rotation(angle, axis)
	if !ok {
		return
	}
	for _, child := range g.Children {
		child.RotateAbout(angle, axis, origin)
	}
	// A âncora só se move quando origin != g.Pos
	g.Pos = rotatePoint(q, g.Pos, origin)
}

// Walk visita as primitivas folha do nó em ordem.
func Walk(n Node, fn func(Node)) {
	if g, ok := n.(*Group); ok {
		for _, child := range g.Children {
			Walk(child, fn)
		}
		return
	}
	fn(n)
}
