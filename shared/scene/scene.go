package scene

import (
	"math"
	"slices"

	"github.com/go-gl/mathgl/mgl64"
)

// Scene guarda as primitivas registradas e as configurações de exibição.
// Não é segura para uso concorrente; pertence ao loop que a desenha.
type Scene struct {
	Background mgl64.Vec3
	Ambient    float64
	Width      int
	Height     int
	Forward    mgl64.Vec3 // Direção para onde a câmera olha
	AutoScale  bool       // Reenquadrar a câmera a cada molécula nova

	nodes []Node
}

// New cria uma cena com as configurações padrão do visualizador.
func New() *Scene {
	return &Scene{
		Background: mgl64.Vec3{0.57, 0.72, 1}, // Azul claro
		Ambient:    0.4,
		Width:      1000,
		Height:     550,
		Forward:    mgl64.Vec3{0, -3, -2}, // Vista de cima
	}
}

// NewSphere cria e registra uma esfera.
func (s *Scene) NewSphere(center mgl64.Vec3, radius float64, color mgl64.Vec3) *Sphere {
	sp := &Sphere{Center: center, Radius: radius, Color: color}
	s.nodes = append(s.nodes, sp)
	return sp
}

// NewCylinder cria e registra um cilindro com base em pos e eixo axis.
func (s *Scene) NewCylinder(pos, axis mgl64.Vec3, radius float64, color mgl64.Vec3, opacity float64) *Cylinder {
	c := &Cylinder{Pos: pos, Axis: axis, Radius: radius, Color: color, Opacity: opacity}
	s.nodes = append(s.nodes, c)
	return c
}

// NewBox cria e registra uma caixa centrada em pos.
func (s *Scene) NewBox(pos, size, color mgl64.Vec3, opacity float64) *Box {
	b := &Box{Pos: pos, Size: size, Color: color, Opacity: opacity, Orientation: mgl64.QuatIdent()}
	s.nodes = append(s.nodes, b)
	return b
}

// NewGroup agrupa nós já registrados. Os filhos deixam o nível superior da
// cena e passam a pertencer ao grupo.
func (s *Scene) NewGroup(children []Node, pos mgl64.Vec3) *Group {
	g := &Group{Pos: pos, Children: slices.Clone(children)}
	s.nodes = slices.DeleteFunc(s.nodes, func(n Node) bool {
		return slices.Contains(g.Children, n)
	})
	s.nodes = append(s.nodes, g)
	return g
}

// Remove retira um nó de nível superior da cena.
func (s *Scene) Remove(n Node) bool {
	before := len(s.nodes)
	s.nodes = slices.DeleteFunc(s.nodes, func(m Node) bool { return m == n })
	return len(s.nodes) != before
}

// Add registra de novo um nó de nível superior retirado com Remove.
// Um nó já presente não é duplicado.
func (s *Scene) Add(n Node) {
	if slices.Contains(s.nodes, n) {
		return
	}
	s.nodes = append(s.nodes, n)
}

// Nodes retorna os nós de nível superior.
func (s *Scene) Nodes() []Node {
	return s.nodes
}

// Walk visita todas as primitivas folha da cena.
func (s *Scene) Walk(fn func(Node)) {
	for _, n := range s.nodes {
		Walk(n, fn)
	}
}

// Spheres retorna todas as esferas da cena.
func (s *Scene) Spheres() []*Sphere {
	var out []*Sphere
	s.Walk(func(n Node) {
		if sp, ok := n.(*Sphere); ok {
			out = append(out, sp)
		}
	})
	return out
}

// Cylinders retorna todos os cilindros da cena.
func (s *Scene) Cylinders() []*Cylinder {
	var out []*Cylinder
	s.Walk(func(n Node) {
		if c, ok := n.(*Cylinder); ok {
			out = append(out, c)
		}
	})
	return out
}

// Bounds retorna o centro médio das esferas e o raio da menor esfera centrada
// nele que contém todas. ok é false se a cena não tem esferas.
func (s *Scene) Bounds() (center mgl64.Vec3, radius float64, ok bool) {
	spheres := s.Spheres()
	if len(spheres) == 0 {
		return mgl64.Vec3{}, 0, false
	}
	for _, sp := range spheres {
		center = center.Add(sp.Center)
	}
	center = center.Mul(1 / float64(len(spheres)))
	for _, sp := range spheres {
		radius = math.Max(radius, sp.Center.Sub(center).Len()+sp.Radius)
	}
	return center, radius, true
}
