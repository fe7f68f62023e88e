package main

import (
	"flag"
	"fmt"
	"log"
	"net"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"time"
)

func exe(name string) string {
	if runtime.GOOS == "windows" {
		return name + ".exe"
	}
	return name
}

// waitForServer tenta abrir uma conexão TCP até addr responder ou estourar o prazo.
func waitForServer(addr string, timeout time.Duration) error {
	deadline := time.Now().Add(timeout)
	for time.Now().Before(deadline) {
		conn, err := net.DialTimeout("tcp", addr, 500*time.Millisecond)
		if err == nil {
			conn.Close()
			return nil
		}
		time.Sleep(250 * time.Millisecond)
	}
	return fmt.Errorf("servidor em %s não respondeu em %v", addr, timeout)
}

func main() {
	port := flag.String("port", "8080", "Porta do servidor de catálogo")
	molecule := flag.String("molecule", "", "Molécula inicial do cliente")
	offline := flag.Bool("offline", false, "Abrir só o cliente, com as moléculas embutidas")
	flag.Parse()

	fmt.Println("╔══════════════════════════════════════╗")
	fmt.Println("║      MoleculeVision Launcher         ║")
	fmt.Println("╚══════════════════════════════════════╝")

	clientArgs := []string{}
	if *molecule != "" {
		clientArgs = append(clientArgs, "-molecule", *molecule)
	}

	var serverCmd *exec.Cmd
	if !*offline {
		fmt.Println("[1/2] Iniciando Servidor...")
		serverCmd = exec.Command(filepath.Join(".", exe("server")))
		serverCmd.Dir = "servidor"
		serverCmd.Env = append(os.Environ(), "PORT="+*port)
		serverCmd.Stdout = os.Stdout
		serverCmd.Stderr = os.Stderr
		if err := serverCmd.Start(); err != nil {
			log.Fatalf("Erro ao iniciar servidor: %v", err)
		}

		fmt.Println("Aguardando o catálogo ficar disponível...")
		if err := waitForServer("localhost:"+*port, 15*time.Second); err != nil {
			serverCmd.Process.Kill()
			log.Fatalf("Erro: %v", err)
		}
		clientArgs = append(clientArgs, "-server", "ws://localhost:"+*port+"/ws")
	}

	fmt.Println("[2/2] Abrindo Cliente...")

	absClientPath, err := filepath.Abs(filepath.Join("cliente", exe("client")))
	if err != nil {
		log.Fatalf("Erro ao resolver caminho do cliente: %v", err)
	}

	clientCmd := exec.Command(absClientPath, clientArgs...)
	clientCmd.Dir = "cliente" // config.json e debug_mv.log ficam junto do cliente

	if err := clientCmd.Run(); err != nil {
		fmt.Printf("ERRO: cliente em %s terminou com falha: %v\n", absClientPath, err)
	}

	if serverCmd != nil {
		fmt.Println("Cliente fechado, encerrando servidor...")
		serverCmd.Process.Kill()
		serverCmd.Wait()
	}
}
