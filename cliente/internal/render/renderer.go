package render

import (
	"math"

	"MoleculeVision/shared/scene"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/go-gl/mathgl/mgl64"
)

// Renderer desenha as primitivas da cena com raylib.
type Renderer struct {
	Scene *scene.Scene

	SphereRings    int32
	SphereSlices   int32
	CylinderSides  int32
	WireframeAtoms bool

	diffuseScale float64
}

// NewRenderer cria um renderizador para a cena.
func NewRenderer(sc *scene.Scene) *Renderer {
	return &Renderer{
		Scene:         sc,
		SphereRings:   16,
		SphereSlices:  16,
		CylinderSides: 16,
		diffuseScale:  0.6,
	}
}

// Vec converte um vetor da cena para raylib.
func Vec(v mgl64.Vec3) rl.Vector3 {
	return rl.Vector3{X: float32(v[0]), Y: float32(v[1]), Z: float32(v[2])}
}

// Color converte RGB 0-1 e opacidade para rl.Color, clareando pelo termo ambiente.
func Color(c mgl64.Vec3, light, opacity float64) rl.Color {
	ch := func(v float64) uint8 {
		return uint8(math.Round(math.Max(0, math.Min(1, v)) * 255))
	}
	return rl.NewColor(ch(c[0]*light), ch(c[1]*light), ch(c[2]*light), ch(opacity))
}

// Background retorna a cor de fundo da cena.
func (r *Renderer) Background() rl.Color {
	return Color(r.Scene.Background, 1, 1)
}

// Draw desenha a cena. Deve ser chamado entre BeginMode3D e EndMode3D.
// Opacos primeiro, translúcidos depois.
func (r *Renderer) Draw() {
	light := r.Scene.Ambient + r.diffuseScale

	var translucent []scene.Node
	r.Scene.Walk(func(n scene.Node) {
		switch p := n.(type) {
		case *scene.Sphere:
			col := Color(p.Color, light, 1)
			if r.WireframeAtoms {
				rl.DrawSphereWires(Vec(p.Center), float32(p.Radius), r.SphereRings, r.SphereSlices, col)
			} else {
				rl.DrawSphereEx(Vec(p.Center), float32(p.Radius), r.SphereRings, r.SphereSlices, col)
			}
		case *scene.Cylinder:
			if p.Opacity < 1 {
				translucent = append(translucent, p)
				return
			}
			r.drawCylinder(p, light)
		case *scene.Box:
			if p.Opacity < 1 {
				translucent = append(translucent, p)
				return
			}
			r.drawBox(p, light)
		}
	})

	rl.BeginBlendMode(rl.BlendAlpha)
	for _, n := range translucent {
		switch p := n.(type) {
		case *scene.Cylinder:
			r.drawCylinder(p, light)
		case *scene.Box:
			r.drawBox(p, light)
		}
	}
	rl.EndBlendMode()
}

func (r *Renderer) drawCylinder(c *scene.Cylinder, light float64) {
	rad := float32(c.Radius)
	rl.DrawCylinderEx(Vec(c.Pos), Vec(c.End()), rad, rad, r.CylinderSides, Color(c.Color, light, c.Opacity))
}

func (r *Renderer) drawBox(b *scene.Box, light float64) {
	angle, axis := axisAngle(b.Orientation)

	rl.PushMatrix()
	rl.Translatef(float32(b.Pos[0]), float32(b.Pos[1]), float32(b.Pos[2]))
	if angle != 0 {
		rl.Rotatef(float32(angle*180/math.Pi), float32(axis[0]), float32(axis[1]), float32(axis[2]))
	}
	rl.DrawCubeV(rl.Vector3{}, Vec(b.Size), Color(b.Color, light, b.Opacity))
	rl.PopMatrix()
}

// axisAngle decompõe um quaternion unitário em ângulo (radianos) e eixo.
func axisAngle(q mgl64.Quat) (float64, mgl64.Vec3) {
	q = q.Normalize()
	s := math.Sqrt(1 - q.W*q.W)
	if s < 1e-9 {
		return 0, mgl64.Vec3{0, 1, 0}
	}
	return 2 * math.Acos(q.W), q.V.Mul(1 / s)
}
