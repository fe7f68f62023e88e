package camera

import (
	"math"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/go-gl/mathgl/mgl32"
)

// Mode define o tipo de projeção estritamente.
type Mode int

const (
	ModePerspective Mode = iota
	ModeOrthographic
)

// CameraController gerencia a órbita da câmera em torno da molécula.
// A orientação inicial vem do vetor forward da cena.
type CameraController struct {
	// Estado interno do Raylib
	RLCamera rl.Camera3D

	// Configurações
	Mode        Mode
	MinZoom     float32
	MaxZoom     float32
	RotateSpeed float32
	ZoomSpeed   float32

	// Estado da órbita
	Target rl.Vector3 // Ponto central
	Zoom   float32    // Distância até o alvo
	AngleY float32    // Azimute (radianos)
	AngleX float32    // Elevação (radianos), negativa olhando de cima
}

// New cria um controlador olhando na direção forward para target.
func New(target rl.Vector3, forward mgl32.Vec3, zoom float32) *CameraController {
	c := &CameraController{
		Mode:        ModePerspective,
		MinZoom:     5.0,
		MaxZoom:     200.0,
		RotateSpeed: 2.0,
		ZoomSpeed:   3.0,
		Target:      target,
		Zoom:        zoom,
	}
	c.SetForward(forward)

	c.RLCamera = rl.Camera3D{
		Up:         rl.Vector3{X: 0, Y: 1, Z: 0},
		Fovy:       45.0,
		Projection: rl.CameraPerspective,
	}
	c.Update()
	return c
}

// SetForward converte a direção de visão em ângulos de órbita.
func (c *CameraController) SetForward(forward mgl32.Vec3) {
	if forward.Len() == 0 {
		forward = mgl32.Vec3{0, 0, -1}
	}
	// A câmera fica do lado oposto ao forward
	back := forward.Normalize().Mul(-1)
	c.AngleX = -float32(math.Asin(float64(back.Y())))
	c.AngleY = float32(math.Atan2(float64(back.X()), float64(back.Z())))
}

// Update recalcula a posição da câmera a partir dos ângulos e do zoom.
func (c *CameraController) Update() {
	dist := c.Zoom

	// No modo ortográfico o zoom é controlado pelo Fovy (escala)
	if c.Mode == ModeOrthographic {
		c.RLCamera.Fovy = c.Zoom * 0.5
		c.RLCamera.Projection = rl.CameraOrthographic
		dist = 200.0 // Mantém a câmera longe para evitar clipping
	} else {
		c.RLCamera.Fovy = 45.0
		c.RLCamera.Projection = rl.CameraPerspective
	}

	// Coordenadas esféricas para cartesianas
	cosX := float32(math.Cos(float64(c.AngleX)))
	sinX := float32(math.Sin(float64(c.AngleX)))
	cosY := float32(math.Cos(float64(c.AngleY)))
	sinY := float32(math.Sin(float64(c.AngleY)))

	offset := mgl32.Vec3{cosX * sinY, -sinX, cosX * cosY}.Mul(dist)

	c.RLCamera.Position = rl.Vector3{
		X: c.Target.X + offset.X(),
		Y: c.Target.Y + offset.Y(),
		Z: c.Target.Z + offset.Z(),
	}
	c.RLCamera.Target = c.Target
}

// Fit centraliza em target e ajusta o zoom para uma esfera de raio radius
// caber no campo de visão vertical.
func (c *CameraController) Fit(target rl.Vector3, radius float32) {
	c.Target = target
	half := float64(45.0*rl.Deg2rad) / 2
	zoom := radius/float32(math.Sin(half)) + 1
	if zoom < c.MinZoom {
		zoom = c.MinZoom
	}
	if zoom > c.MaxZoom {
		zoom = c.MaxZoom
	}
	c.Zoom = zoom
	c.Update()
}

// SetMode alterna entre Perspectiva e Ortográfica.
func (c *CameraController) SetMode(mode Mode) {
	c.Mode = mode
	c.Update()
}

// HandleInput processa entrada do usuário. Retorna true se houve movimento.
func (c *CameraController) HandleInput() bool {
	moved := false

	// Zoom com Scroll
	if wheel := rl.GetMouseWheelMove(); wheel != 0 {
		moved = true
		c.Zoom -= wheel * c.ZoomSpeed
		if c.Zoom < c.MinZoom {
			c.Zoom = c.MinZoom
		}
		if c.Zoom > c.MaxZoom {
			c.Zoom = c.MaxZoom
		}
	}

	// Rotação com botão esquerdo (Orbit)
	if rl.IsMouseButtonDown(rl.MouseLeftButton) {
		delta := rl.GetMouseDelta()
		if delta.X != 0 || delta.Y != 0 {
			moved = true
		}
		c.AngleY -= delta.X * c.RotateSpeed * 0.005
		c.AngleX -= delta.Y * c.RotateSpeed * 0.005

		// Clamp na elevação para não virar a câmera de ponta cabeça
		limit := float32(89.0 * rl.Deg2rad)
		if c.AngleX > limit {
			c.AngleX = limit
		}
		if c.AngleX < -limit {
			c.AngleX = -limit
		}
	}

	if moved {
		c.Update()
	}
	return moved
}
