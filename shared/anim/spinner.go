// Package anim contém o loop de animação de taxa fixa que gira o objeto
// composto da molécula.
package anim

import (
	"context"
	"time"

	"github.com/go-gl/mathgl/mgl64"
)

// Padrões do visualizador.
const (
	DefaultRate  = 100  // Iterações por segundo
	DefaultAngle = 0.01 // Radianos por iteração
)

// DefaultAxis é o eixo de rotação padrão.
var DefaultAxis = mgl64.Vec3{1, 0, 1}

// Rotator é qualquer objeto que aceite uma rotação rígida incremental.
type Rotator interface {
	Rotate(angle float64, axis mgl64.Vec3)
}

// Spinner aplica uma rotação pequena ao alvo a cada passo.
type Spinner struct {
	Target Rotator
	Angle  float64
	Axis   mgl64.Vec3
	Paused bool

	frame int
}

// NewSpinner cria um spinner com ângulo e eixo padrão.
func NewSpinner(target Rotator) *Spinner {
	return &Spinner{Target: target, Angle: DefaultAngle, Axis: DefaultAxis}
}

// Frame retorna quantos passos já foram aplicados.
func (s *Spinner) Frame() int {
	return s.frame
}

// Step aplica uma rotação. Retorna false se pausado ou sem alvo.
func (s *Spinner) Step() bool {
	if s.Paused || s.Target == nil {
		return false
	}
	s.Target.Rotate(s.Angle, s.Axis)
	s.frame++
	return true
}

// Run executa Step a rate iterações por segundo até ctx ser cancelado.
// onFrame, se não for nil, é chamado após cada iteração (redesenho).
// A rotação e o callback rodam na goroutine chamadora.
func (s *Spinner) Run(ctx context.Context, rate int, onFrame func(frame int)) error {
	if rate <= 0 {
		rate = DefaultRate
	}
	ticker := time.NewTicker(time.Second / time.Duration(rate))
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			// Um tick pendente pode vencer o select depois do cancelamento.
			if err := ctx.Err(); err != nil {
				return err
			}
			s.Step()
			if onFrame != nil {
				onFrame(s.frame)
			}
		}
	}
}
