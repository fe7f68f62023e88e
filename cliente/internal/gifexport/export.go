package gifexport

import (
	"errors"
	"fmt"
	"image"
	"image/color/palette"
	"image/draw"
	"image/gif"
	"log"
	"math"
	"os"

	"MoleculeVision/shared/anim"
	"MoleculeVision/shared/scene"

	"github.com/go-gl/mathgl/mgl64"
)

// Options controla a exportação.
type Options struct {
	Width  int
	Height int
	Frames int     // Número de passos do spinner gravados
	Delay  int     // Atraso entre frames em centésimos de segundo
	FOV    float64 // Radianos
	Every  int     // Passos do spinner entre frames gravados
}

// DefaultOptions retorna opções para um GIF pequeno.
func DefaultOptions() Options {
	return Options{
		Width:  400,
		Height: 220,
		Frames: 120,
		Delay:  5,
		FOV:    math.Pi / 3,
		Every:  5,
	}
}

// FrameCamera posiciona a câmera olhando na direção forward da cena e
// afastada o suficiente para enquadrar todas as esferas.
func FrameCamera(sc *scene.Scene, fov float64) (Camera, error) {
	center, radius, ok := sc.Bounds()
	if !ok {
		return Camera{}, errors.New("cena sem átomos")
	}

	fwd := sc.Forward
	if fwd.Len() == 0 {
		fwd = mgl64.Vec3{0, 0, -1}
	}
	dist := radius/math.Sin(fov/2) + 1
	return Camera{
		Eye:    center.Sub(fwd.Normalize().Mul(dist)),
		Target: center,
		Up:     mgl64.Vec3{0, 1, 0},
		FOV:    fov,
	}, nil
}

// Export avança o spinner e grava um frame a cada opts.Every passos.
// A câmera é enquadrada uma vez, antes do primeiro frame.
func Export(sc *scene.Scene, spin *anim.Spinner, opts Options) (*gif.GIF, error) {
	if opts.Width <= 0 || opts.Height <= 0 || opts.Frames <= 0 {
		return nil, fmt.Errorf("opções inválidas: %dx%d, %d frames", opts.Width, opts.Height, opts.Frames)
	}
	if opts.Every <= 0 {
		opts.Every = 1
	}

	cam, err := FrameCamera(sc, opts.FOV)
	if err != nil {
		return nil, err
	}
	light := DefaultLighting(sc.Ambient)

	out := &gif.GIF{LoopCount: 0}
	for frame := 0; frame < opts.Frames; frame++ {
		img := renderFrame(takeSnapshot(sc), cam, light, opts.Width, opts.Height)

		pal := image.NewPaletted(img.Bounds(), palette.Plan9)
		draw.Draw(pal, img.Bounds(), img, image.Point{}, draw.Src)
		out.Image = append(out.Image, pal)
		out.Delay = append(out.Delay, opts.Delay)

		for i := 0; i < opts.Every; i++ {
			spin.Step()
		}
		if (frame+1)%10 == 0 || frame+1 == opts.Frames {
			log.Printf("[GIF] Frame %d/%d renderizado", frame+1, opts.Frames)
		}
	}
	return out, nil
}

// WriteFile grava o GIF em path.
func WriteFile(path string, g *gif.GIF) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := gif.EncodeAll(f, g); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
