package main

import (
	"flag"
	"io"
	"log"
	"net"
	"net/http"
	"os"

	"MoleculeVision/servidor/internal/hub"
	"MoleculeVision/shared/catalog"
	"MoleculeVision/shared/chem"
	"MoleculeVision/shared/config"
)

func main() {
	cfg := config.Load()

	dbPath := flag.String("db", cfg.CatalogPath, "Caminho do banco SQLite do catálogo")
	seed := flag.Bool("seed", true, "Gravar as moléculas embutidas no catálogo ao iniciar")
	flag.Parse()

	log.SetFlags(log.Ltime | log.Lshortfile)

	// Configurar Log em Arquivo para depuração
	if err := os.MkdirAll("tmp", 0755); err == nil {
		logFile, err := os.OpenFile("tmp/server.log", os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
		if err == nil {
			// MultiWriter para logar no console e no arquivo simultaneamente
			mw := io.MultiWriter(os.Stdout, logFile)
			log.SetOutput(mw)
		}
	}
	log.Println("╔══════════════════════════════════════╗")
	log.Println("║    MoleculeVision SERVER v0.1.0      ║")
	log.Println("╚══════════════════════════════════════╝")

	// Inicializar Catálogo (SQLite)
	store, err := catalog.Open(*dbPath)
	if err != nil {
		log.Fatalf("Erro fatal: não foi possível abrir o catálogo: %v", err)
	}
	defer store.Close()

	if *seed {
		if err := store.Seed(chem.Builtins()...); err != nil {
			log.Fatalf("Erro ao semear catálogo: %v", err)
		}
	}

	h := hub.New(store)
	go h.Run()

	http.HandleFunc("/ws", h.ServeWs)

	port := "8080"
	if p := os.Getenv("PORT"); p != "" {
		port = p
	}

	// Verifica se a porta está livre antes de subir o servidor HTTP
	addr := "127.0.0.1:" + port
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		log.Printf("ERRO CRÍTICO: Não foi possível abrir a porta %s. Há outra instância rodando?", port)
		log.Fatalf("Erro ao iniciar servidor: %v", err)
	}

	log.Printf("Servidor MoleculeVision iniciado em %s", addr)
	if err := http.Serve(ln, nil); err != nil {
		log.Fatalf("Erro fatal no servidor HTTP: %v", err)
	}
}
