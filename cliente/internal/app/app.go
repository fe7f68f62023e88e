package app

import (
	"log"
	"sync"

	"MoleculeVision/cliente/internal/camera"
	"MoleculeVision/cliente/internal/client"
	"MoleculeVision/cliente/internal/render"
	"MoleculeVision/cliente/internal/stage"
	"MoleculeVision/shared/chem"
	"MoleculeVision/shared/config"
	"MoleculeVision/shared/util"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/go-gl/mathgl/mgl32"
)

// AppState representa os estados possíveis da aplicação.
type AppState int

const (
	StateViewing AppState = iota // Molécula girando
	StatePaused                  // Menu de pausa
)

// App é a aplicação principal do MoleculeVision.
type App struct {
	Config *config.Config
	State  AppState

	Cam *camera.CameraController

	stage    *stage.Stage
	renderer *render.Renderer

	// Catálogo: nomes disponíveis e índice da molécula atual
	names   []string
	current int

	// Comunicação com o servidor. Os callbacks rodam na goroutine de
	// leitura, então os resultados chegam ao loop pela fila e pelo canal.
	netClient *client.NetworkClient
	incoming  *util.KeyedQueue[string, *chem.Description]
	lists     chan []string
	statusMu  sync.Mutex
	status    string

	frameCount int
	quit       bool
}

// New cria uma nova instância da aplicação.
func New(cfg *config.Config) *App {
	return &App{
		Config:   cfg,
		State:    StateViewing,
		names:    chem.BuiltinNames(),
		incoming: util.NewKeyedQueue[string, *chem.Description](),
		lists:    make(chan []string, 2),
		status:   "Offline (moléculas embutidas)",
	}
}

// Run inicia o loop principal da aplicação.
func (a *App) Run() {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("[PANIC] Erro fatal recuperado: %v", r)
			panic(r)
		}
	}()

	rl.SetConfigFlags(rl.FlagMsaa4xHint | rl.FlagWindowResizable)
	rl.InitWindow(a.Config.WindowWidth, a.Config.WindowHeight, a.Config.WindowTitle)
	rl.SetTraceLogLevel(rl.LogWarning)

	if a.Config.Fullscreen {
		rl.ToggleFullscreen()
	}

	// Um frame por iteração do loop de rotação
	rl.SetTargetFPS(a.Config.Rate)
	rl.SetExitKey(0)

	fwd := a.Config.Forward
	a.Cam = camera.New(rl.Vector3{}, mgl32.Vec3{float32(fwd[0]), float32(fwd[1]), float32(fwd[2])}, 60)

	log.Println("[MoleculeVision] Janela inicializada com sucesso")
	log.Printf("[MoleculeVision] Resolução: %dx%d, %d iterações/s", a.Config.WindowWidth, a.Config.WindowHeight, a.Config.Rate)

	a.stage = stage.New(a.Config)
	a.renderer = render.NewRenderer(a.stage.Scene)

	a.loadBuiltin(a.Config.Molecule)

	if a.Config.ServerURL != "" {
		a.netClient = client.NewNetworkClient(a.Config.ServerURL)
		go a.connectServer()
	}

	for !rl.WindowShouldClose() && !a.quit {
		a.update()
		a.draw()
	}

	a.shutdown()
	rl.CloseWindow()
}

// update atualiza a lógica a cada frame.
func (a *App) update() {
	a.frameCount++

	switch a.State {
	case StateViewing:
		a.processIncoming()
		a.updateCamera()
		a.updateInput()
		a.stage.Spinner.Step()
	case StatePaused:
		a.updateInput()
	}
}

func (a *App) setStatus(s string) {
	a.statusMu.Lock()
	a.status = s
	a.statusMu.Unlock()
}

func (a *App) getStatus() string {
	a.statusMu.Lock()
	defer a.statusMu.Unlock()
	return a.status
}

// shutdown realiza a limpeza de recursos.
func (a *App) shutdown() {
	log.Println("[App] Finalizando aplicação...")

	if a.netClient != nil {
		a.netClient.Close()
	}

	if err := a.Config.Save(); err != nil {
		log.Printf("[MoleculeVision] Erro ao salvar configurações: %v", err)
	}
}
