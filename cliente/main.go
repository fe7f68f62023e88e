package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"os"
	"os/signal"
	"runtime"
	"time"

	"MoleculeVision/cliente/internal/app"
	"MoleculeVision/cliente/internal/gifexport"
	"MoleculeVision/cliente/internal/stage"
	"MoleculeVision/shared/chem"
	"MoleculeVision/shared/config"
)

func main() {
	// Raylib/OpenGL exige rodar na thread principal do SO
	runtime.LockOSThread()

	serverURL := flag.String("server", "", "URL do servidor de catálogo (ex: ws://localhost:8080/ws)")
	moleculeName := flag.String("molecule", "", "Molécula inicial (butane, cyclohexane, ethene)")
	fullscreen := flag.Bool("fullscreen", false, "Iniciar em tela cheia")
	debug := flag.Bool("debug", false, "Mostrar informações de debug")
	width := flag.Int("width", 0, "Largura da janela")
	height := flag.Int("height", 0, "Altura da janela")
	gifPath := flag.String("gif", "", "Exporta um GIF animado sem abrir janela")
	frames := flag.Int("frames", 0, "Frames do GIF exportado")
	headless := flag.Bool("headless", false, "Girar a molécula sem janela, registrando no log")
	duration := flag.Duration("duration", 0, "Duração do modo -headless (0 = até Ctrl+C)")
	flag.Parse()

	f, err := os.OpenFile("debug_mv.log", os.O_RDWR|os.O_CREATE|os.O_APPEND, 0666)
	if err == nil {
		log.SetOutput(f)
		log.Println("--- INICIANDO MOLECULE VISION ---")
	}

	log.SetFlags(log.Ltime | log.Lshortfile)
	log.Println("╔══════════════════════════════════════╗")
	log.Println("║        MoleculeVision v0.1.0         ║")
	log.Println("║  Modelos bola-e-vareta rotacionando  ║")
	log.Println("╚══════════════════════════════════════╝")

	cfg := config.Load()

	// Flags sobrescrevem o config salvo
	if *serverURL != "" {
		cfg.ServerURL = *serverURL
	}
	if *moleculeName != "" {
		cfg.Molecule = *moleculeName
	}
	if *fullscreen {
		cfg.Fullscreen = true
	}
	if *debug {
		cfg.ShowDebugInfo = true
	}
	if *width > 0 {
		cfg.WindowWidth = int32(*width)
	}
	if *height > 0 {
		cfg.WindowHeight = int32(*height)
	}

	if *gifPath != "" {
		if err := exportGIF(cfg, *gifPath, *frames); err != nil {
			log.Fatalf("[GIF] Falha ao exportar: %v", err)
		}
		return
	}

	if *headless {
		if err := runHeadless(cfg, *duration); err != nil {
			log.Fatalf("[Stage] %v", err)
		}
		return
	}

	application := app.New(cfg)
	application.Run()
}

// newStage monta a cena com a molécula embutida do config.
func newStage(cfg *config.Config) (*stage.Stage, error) {
	d, ok := chem.Builtin(cfg.Molecule)
	if !ok {
		log.Printf("[Stage] Molécula %q não existe, usando cyclohexane", cfg.Molecule)
		d = chem.Cyclohexane()
	}
	st := stage.New(cfg)
	if err := st.Load(d); err != nil {
		return nil, err
	}
	return st, nil
}

// runHeadless gira a molécula na taxa do config até Ctrl+C ou o fim de d.
func runHeadless(cfg *config.Config, d time.Duration) error {
	st, err := newStage(cfg)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	if d > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, d)
		defer cancel()
	}

	n, err := st.Run(ctx, int(cfg.Rate), int(cfg.Rate))
	log.Printf("[Stage] Encerrado após %d iterações", n)
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return nil
	}
	return err
}

// exportGIF monta a cena sem janela e grava a animação em path.
func exportGIF(cfg *config.Config, path string, frames int) error {
	st, err := newStage(cfg)
	if err != nil {
		return err
	}

	opts := gifexport.DefaultOptions()
	if frames > 0 {
		opts.Frames = frames
	}

	g, err := gifexport.Export(st.Scene, st.Spinner, opts)
	if err != nil {
		return err
	}
	if err := gifexport.WriteFile(path, g); err != nil {
		return err
	}
	log.Printf("[GIF] %s gravado (%d frames)", path, len(g.Image))
	return nil
}
