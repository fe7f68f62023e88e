package app

import (
	"log"

	"MoleculeVision/cliente/internal/render"
	"MoleculeVision/shared/chem"
)

// loadBuiltin carrega uma molécula embutida; nome desconhecido cai em cyclohexane.
func (a *App) loadBuiltin(name string) {
	d, ok := chem.Builtin(name)
	if !ok {
		log.Printf("[App] Molécula embutida %q não existe, usando cyclohexane", name)
		d = chem.Cyclohexane()
	}
	a.show(d)
}

// show exibe d e sincroniza o índice do catálogo.
func (a *App) show(d *chem.Description) {
	if err := a.stage.Load(d); err != nil {
		log.Printf("[App] Erro ao construir molécula: %v", err)
		return
	}
	a.Config.Molecule = d.Name
	if a.stage.Scene.AutoScale {
		a.fitCamera()
	}
	for i, n := range a.names {
		if n == d.Name {
			a.current = i
			break
		}
	}
}

// nextMolecule avança step posições na lista de nomes, circularmente.
// Conectado, pede a molécula ao servidor; offline usa as embutidas.
func (a *App) nextMolecule(step int) {
	if len(a.names) == 0 {
		return
	}
	a.current = ((a.current+step)%len(a.names) + len(a.names)) % len(a.names)
	name := a.names[a.current]

	if a.netClient != nil && a.netClient.IsConnected() {
		if a.incoming.Contains(name) {
			return // Já chegou, será construída no próximo frame
		}
		if err := a.netClient.RequestMolecule(name); err != nil {
			log.Printf("[App] Erro ao pedir %s: %v", name, err)
		}
		return
	}
	a.loadBuiltin(name)
}

// processIncoming consome o que chegou do servidor sem bloquear o frame.
func (a *App) processIncoming() {
	select {
	case names := <-a.lists:
		if len(names) > 0 {
			a.names = names
			log.Printf("[App] Catálogo com %d moléculas", len(names))
		}
	default:
	}

	a.incoming.Drain(func(_ string, d *chem.Description) {
		a.show(d)
	})
}

// fitCamera enquadra a molécula atual.
func (a *App) fitCamera() {
	center, radius, ok := a.stage.Scene.Bounds()
	if !ok {
		return
	}
	a.Cam.Fit(render.Vec(center), float32(radius))
}
