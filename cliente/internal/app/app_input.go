package app

import (
	"log"

	"MoleculeVision/cliente/internal/camera"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// updateCamera atualiza a câmera baseado no input.
func (a *App) updateCamera() {
	a.Cam.HandleInput()
	a.Cam.Update()

	// Alternar projeção com P
	if rl.IsKeyPressed(rl.KeyP) {
		if a.Cam.Mode == camera.ModePerspective {
			a.Cam.SetMode(camera.ModeOrthographic)
			log.Println("[Camera] Modo Ortográfico")
		} else {
			a.Cam.SetMode(camera.ModePerspective)
			log.Println("[Camera] Modo Perspectiva")
		}
	}
}

// updateInput processa entradas de teclado gerais.
func (a *App) updateInput() {
	if rl.IsKeyPressed(rl.KeyF3) {
		a.Config.ShowDebugInfo = !a.Config.ShowDebugInfo
	}

	// Pausar/retomar a rotação
	if rl.IsKeyPressed(rl.KeySpace) {
		a.stage.Spinner.Paused = !a.stage.Spinner.Paused
		log.Printf("[App] Rotação pausada: %v", a.stage.Spinner.Paused)
	}

	if rl.IsKeyPressed(rl.KeyN) {
		a.nextMolecule(1)
	}
	if rl.IsKeyPressed(rl.KeyB) {
		a.nextMolecule(-1)
	}

	if rl.IsKeyPressed(rl.KeyG) {
		a.Config.ShowGround = !a.stage.GroundVisible()
		a.stage.SetGround(a.Config.ShowGround)
	}

	// Reenquadramento automático a cada molécula
	if rl.IsKeyPressed(rl.KeyA) {
		a.stage.Scene.AutoScale = !a.stage.Scene.AutoScale
		a.Config.AutoScale = a.stage.Scene.AutoScale
		if a.Config.AutoScale {
			a.fitCamera()
		}
		log.Printf("[Camera] AutoScale: %v", a.Config.AutoScale)
	}

	if rl.IsKeyPressed(rl.KeyF4) {
		a.renderer.WireframeAtoms = !a.renderer.WireframeAtoms
	}

	if rl.IsKeyPressed(rl.KeyF11) {
		rl.ToggleFullscreen()
	}

	if rl.IsKeyPressed(rl.KeyEscape) {
		if a.State == StateViewing {
			a.State = StatePaused
			log.Println("[App] Pausado")
		} else if a.State == StatePaused {
			a.State = StateViewing
			log.Println("[App] Retomando")
		}
	}
}
