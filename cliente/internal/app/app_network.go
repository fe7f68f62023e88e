package app

import (
	"fmt"
	"log"

	"MoleculeVision/shared/chem"
)

// connectServer conecta ao servidor de catálogo e pede a lista e a molécula inicial.
func (a *App) connectServer() {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("[PANIC] Erro em connectServer: %v", r)
		}
	}()

	nc := a.netClient

	nc.OnStatus = func(msg string, ok bool) {
		log.Printf("[Server] Status: %s (ok: %v)", msg, ok)
		if !ok {
			a.setStatus("Servidor: " + msg)
		}
	}

	nc.OnList = func(names []string) {
		select {
		case a.lists <- names:
		default:
			log.Println("[Network] Fila de listas cheia, descartando")
		}
	}

	nc.OnMolecule = func(d *chem.Description) {
		if !a.incoming.Push(d.Name, d) {
			log.Printf("[Network] %s já estava na fila, substituído", d.Name)
		}
	}

	a.setStatus("Conectando...")
	if err := nc.Connect(); err != nil {
		log.Printf("[Server] Erro ao conectar: %v", err)
		a.setStatus("Offline (moléculas embutidas)")
		return
	}
	log.Println("[Network] Conectado ao Servidor MoleculeVision!")
	a.setStatus(fmt.Sprintf("Conectado a %s", a.Config.ServerURL))

	if err := nc.RequestList(); err != nil {
		log.Printf("[Network] Erro ao pedir catálogo: %v", err)
	}
	if err := nc.RequestMolecule(a.Config.Molecule); err != nil {
		log.Printf("[Network] Erro ao pedir %s: %v", a.Config.Molecule, err)
	}
}
