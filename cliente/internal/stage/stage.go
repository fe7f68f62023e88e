// Package stage monta a cena exibida pelo cliente: configurações, chão e a
// molécula atual com seu spinner.
package stage

import (
	"context"
	"fmt"
	"log"

	"MoleculeVision/shared/anim"
	"MoleculeVision/shared/chem"
	"MoleculeVision/shared/config"
	"MoleculeVision/shared/molecule"
	"MoleculeVision/shared/scene"

	"github.com/go-gl/mathgl/mgl64"
)

// GroundColor é a cor do plano de chão.
var GroundColor = mgl64.Vec3{1, 1, 1}

// Stage é a cena com no máximo uma molécula girando.
type Stage struct {
	Scene    *scene.Scene
	Ground   *scene.Box
	Molecule *molecule.Molecule
	Spinner  *anim.Spinner

	start mgl64.Vec3
}

// New cria a cena a partir da configuração. O chão sempre é criado e só
// entra na cena se ShowGround.
func New(cfg *config.Config) *Stage {
	sc := scene.New()
	sc.Background = mgl64.Vec3(cfg.Background)
	sc.Ambient = cfg.Ambient
	sc.Width = int(cfg.WindowWidth)
	sc.Height = int(cfg.WindowHeight)
	sc.Forward = mgl64.Vec3(cfg.Forward)
	sc.AutoScale = cfg.AutoScale

	st := &Stage{
		Scene:   sc,
		Spinner: anim.NewSpinner(nil),
		start:   mgl64.Vec3(cfg.Start),
	}
	st.Spinner.Angle = cfg.SpinAngle
	st.Spinner.Axis = mgl64.Vec3(cfg.SpinAxis)

	st.Ground = sc.NewBox(mgl64.Vec3(cfg.GroundPos), mgl64.Vec3(cfg.GroundSize), GroundColor, cfg.GroundOpacity)
	st.SetGround(cfg.ShowGround)
	return st
}

// SetGround mostra ou esconde o chão. A caixa é mantida para voltar depois.
func (st *Stage) SetGround(show bool) {
	if show {
		st.Scene.Add(st.Ground)
	} else {
		st.Scene.Remove(st.Ground)
	}
}

// GroundVisible informa se o chão está registrado na cena.
func (st *Stage) GroundVisible() bool {
	for _, n := range st.Scene.Nodes() {
		if n == scene.Node(st.Ground) {
			return true
		}
	}
	return false
}

// Load troca a molécula atual por uma nova construída de d.
// Em caso de erro a molécula anterior é mantida, já que Build não registra nada.
func (st *Stage) Load(d *chem.Description) error {
	if d == nil {
		return fmt.Errorf("descrição nula")
	}

	m, err := molecule.Build(st.Scene, st.start, d)
	if err != nil {
		return err
	}
	if st.Molecule != nil {
		st.Scene.Remove(st.Molecule.Group)
	}

	st.Molecule = m
	st.Spinner.Target = m
	log.Printf("[Stage] Molécula %s carregada: %d átomos, %d ligações", d.Name, len(m.Atoms), len(m.Bonds))
	return nil
}

// Name retorna o nome da molécula atual ou "" se não houver.
func (st *Stage) Name() string {
	if st.Molecule == nil {
		return ""
	}
	return st.Molecule.Name
}

// Run gira a molécula a rate iterações por segundo, sem janela, até ctx
// terminar. A cada every iterações registra a posição do segundo átomo.
// Retorna o número de iterações aplicadas.
func (st *Stage) Run(ctx context.Context, rate, every int) (int, error) {
	if st.Molecule == nil {
		return 0, fmt.Errorf("nenhuma molécula carregada")
	}
	if every <= 0 {
		every = rate
	}
	start := st.Spinner.Frame()
	err := st.Spinner.Run(ctx, rate, func(frame int) {
		if every > 0 && frame%every == 0 {
			p := st.Molecule.Atoms[len(st.Molecule.Atoms)-1].Center
			log.Printf("[Stage] Iteração %d: último átomo em (%.2f, %.2f, %.2f)", frame, p[0], p[1], p[2])
		}
	})
	return st.Spinner.Frame() - start, err
}
