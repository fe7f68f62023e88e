package app

import (
	"fmt"
	"log"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// draw renderiza a cena.
func (a *App) draw() {
	rl.BeginDrawing()
	rl.ClearBackground(a.renderer.Background())

	a.drawScene()
	a.drawHUD()

	if a.State == StatePaused {
		a.drawPauseMenu()
	}

	rl.EndDrawing()
}

// drawScene renderiza a cena 3D.
func (a *App) drawScene() {
	rl.BeginMode3D(a.Cam.RLCamera)
	a.renderer.Draw()
	rl.EndMode3D()
}

// drawHUD desenha a interface sobreposta.
func (a *App) drawHUD() {
	// Nome da molécula sempre visível
	name := a.stage.Name()
	if a.stage.Spinner.Paused {
		name += " [PAUSADO]"
	}
	rl.DrawText(name, 10, 10, 20, rl.NewColor(30, 30, 40, 255))

	if !a.Config.ShowDebugInfo {
		return
	}

	width := int32(340)
	height := int32(200)
	x := int32(rl.GetScreenWidth()) - width - 10
	y := int32(10)

	rl.DrawRectangle(x, y, width, height, rl.NewColor(0, 0, 0, 180))
	rl.DrawRectangleLines(x, y, width, height, rl.NewColor(50, 50, 50, 255))

	// FPS
	fps := rl.GetFPS()
	fpsColor := rl.Green
	if fps < a.Config.Rate/2 {
		fpsColor = rl.Red
	} else if fps < a.Config.Rate*9/10 {
		fpsColor = rl.Yellow
	}
	rl.DrawText(fmt.Sprintf("FPS: %d / %d", fps, a.Config.Rate), x+10, y+10, 20, fpsColor)

	rl.DrawLine(x+10, y+35, x+width-10, y+35, rl.NewColor(100, 100, 100, 100))

	// Molécula
	rl.DrawText("MOLÉCULA", x+10, y+45, 12, rl.Gray)
	if m := a.stage.Molecule; m != nil {
		rl.DrawText(fmt.Sprintf("%s: %d átomos, %d ligações", m.Name, len(m.Atoms), len(m.Bonds)), x+10, y+60, 16, rl.White)
		rl.DrawText(fmt.Sprintf("Âncora: (%.1f, %.1f, %.1f)", m.Group.Pos[0], m.Group.Pos[1], m.Group.Pos[2]), x+10, y+80, 14, rl.LightGray)
	}
	rl.DrawText(fmt.Sprintf("Iteração: %d", a.stage.Spinner.Frame()), x+10, y+98, 14, rl.LightGray)

	rl.DrawLine(x+10, y+120, x+width-10, y+120, rl.NewColor(100, 100, 100, 100))

	// Catálogo
	rl.DrawText(fmt.Sprintf("Catálogo: %d/%d (na fila: %d)", a.current+1, len(a.names), a.incoming.Len()), x+10, y+128, 14, rl.Gold)
	rl.DrawText(a.getStatus(), x+10, y+145, 14, rl.LightGray)

	wireframeExtra := ""
	if a.renderer.WireframeAtoms {
		wireframeExtra = " [WIREFRAME]"
	}
	rl.DrawText("Espaço: Pausa | N/B: Molécula | G: Chão", x+10, y+165, 14, rl.SkyBlue)
	rl.DrawText(fmt.Sprintf("P: Projeção | A: Auto | F4: Arame | F3: HUD%s", wireframeExtra), x+10, y+182, 14, rl.SkyBlue)

	// Título no canto inferior direito
	title := "MoleculeVision v0.1.0"
	titleWidth := rl.MeasureText(title, 18)
	rl.DrawText(title,
		int32(rl.GetScreenWidth())-titleWidth-20, int32(rl.GetScreenHeight())-30,
		18, rl.NewColor(30, 30, 40, 150))
}

// drawPauseMenu desenha o menu de escape centralizado.
func (a *App) drawPauseMenu() {
	screenWidth := int32(rl.GetScreenWidth())
	screenHeight := int32(rl.GetScreenHeight())

	rl.DrawRectangle(0, 0, screenWidth, screenHeight, rl.NewColor(0, 0, 0, 150))

	panelWidth := int32(400)
	panelHeight := int32(250)
	panelX := (screenWidth - panelWidth) / 2
	panelY := (screenHeight - panelHeight) / 2

	rl.DrawRectangle(panelX, panelY, panelWidth, panelHeight, rl.NewColor(30, 30, 35, 255))
	rl.DrawRectangleLines(panelX, panelY, panelWidth, panelHeight, rl.White)

	menuTitle := "MENU DE PAUSA"
	titleWidth := rl.MeasureText(menuTitle, 24)
	rl.DrawText(menuTitle, panelX+(panelWidth-titleWidth)/2, panelY+30, 24, rl.Gold)

	buttonX := panelX + 50
	buttonWidth := panelWidth - 100
	buttonHeight := int32(40)

	if a.drawButton(buttonX, panelY+90, buttonWidth, buttonHeight, "RETOMAR (ESC)", rl.Green) {
		a.State = StateViewing
	}

	if a.drawButton(buttonX, panelY+150, buttonWidth, buttonHeight, "SAIR", rl.Red) {
		log.Println("[App] Encerrando aplicação pelo menu.")
		a.quit = true
	}
}

// drawButton desenha um botão genérico com hover e retorna true se clicado.
func (a *App) drawButton(x, y, w, h int32, text string, color rl.Color) bool {
	mousePos := rl.GetMousePosition()
	isHover := mousePos.X >= float32(x) && mousePos.X <= float32(x+w) &&
		mousePos.Y >= float32(y) && mousePos.Y <= float32(y+h)

	drawColor := color
	if isHover {
		drawColor.R += 30
		drawColor.G += 30
		drawColor.B += 30
	}

	rl.DrawRectangle(x, y, w, h, rl.NewColor(50, 50, 50, 255))
	rl.DrawRectangleLines(x, y, w, h, drawColor)

	textWidth := rl.MeasureText(text, 18)
	rl.DrawText(text, x+(w-textWidth)/2, y+(h-18)/2, 18, rl.White)

	return isHover && rl.IsMouseButtonPressed(rl.MouseLeftButton)
}
