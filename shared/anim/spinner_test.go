package anim

import (
	"context"
	"testing"
	"time"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/stretchr/testify/assert"
)

type recorder struct {
	angles []float64
	axis   mgl64.Vec3
}

func (r *recorder) Rotate(angle float64, axis mgl64.Vec3) {
	r.angles = append(r.angles, angle)
	r.axis = axis
}

func TestStep(t *testing.T) {
	r := &recorder{}
	s := NewSpinner(r)

	assert.True(t, s.Step())
	assert.True(t, s.Step())
	assert.Equal(t, 2, s.Frame())
	assert.Equal(t, []float64{DefaultAngle, DefaultAngle}, r.angles)
	assert.Equal(t, DefaultAxis, r.axis)

	s.Paused = true
	assert.False(t, s.Step())
	assert.Equal(t, 2, s.Frame())

	assert.False(t, (&Spinner{}).Step())
}

func TestRunStopsOnCancel(t *testing.T) {
	r := &recorder{}
	s := NewSpinner(r)
	ctx, cancel := context.WithCancel(context.Background())

	frames := 0
	err := s.Run(ctx, 1000, func(frame int) {
		frames = frame
		if frame == 5 {
			cancel()
		}
	})

	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 5, frames)
	assert.Len(t, r.angles, 5)
}

func TestRunNoStepAfterCancel(t *testing.T) {
	// Taxa alta o bastante para sempre haver um tick pendente ao cancelar.
	for i := 0; i < 200; i++ {
		r := &recorder{}
		s := NewSpinner(r)
		ctx, cancel := context.WithCancel(context.Background())

		calls := 0
		err := s.Run(ctx, 1_000_000, func(frame int) {
			calls++
			cancel()
			time.Sleep(10 * time.Microsecond)
		})

		assert.ErrorIs(t, err, context.Canceled)
		if !assert.Equal(t, 1, calls, "iteração %d", i) || !assert.Len(t, r.angles, 1) {
			return
		}
	}
}

func TestRunCancelledBeforeStart(t *testing.T) {
	r := &recorder{}
	s := NewSpinner(r)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := s.Run(ctx, 1_000_000, nil)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Empty(t, r.angles)
	assert.Zero(t, s.Frame())
}

func TestRunRateLimited(t *testing.T) {
	s := NewSpinner(&recorder{})
	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	_ = s.Run(ctx, 20, nil) // Um tick a cada 50ms
	assert.LessOrEqual(t, s.Frame(), 1)
}
