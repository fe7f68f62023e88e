package main

import (
	"flag"
	"fmt"
	"os"
	"os/exec"
	"runtime"
	"strings"
	"time"
)

// Cores para o terminal (ANSI)
const (
	ColorReset  = "\033[0m"
	ColorRed    = "\033[31m"
	ColorGreen  = "\033[32m"
	ColorYellow = "\033[33m"
	ColorCyan   = "\033[36m"
)

// component descreve um binário do projeto.
type component struct {
	name    string
	dir     string
	output  string
	cgo     bool
	ldflags string
}

func exe(name string) string {
	if runtime.GOOS == "windows" {
		return name + ".exe"
	}
	return name
}

func components() []component {
	// Servidor e cliente precisam de CGO (go-sqlite3 e raylib).
	clientFlags := "-s -w"
	serverFlags := "-s -w"
	if runtime.GOOS == "windows" {
		clientFlags = "-extldflags=-static -s -w -H=windowsgui"
		serverFlags = "-extldflags=-static -s -w"
	}
	return []component{
		{"SERVIDOR (CGO + SQLite)", "servidor", "servidor/" + exe("server"), true, serverFlags},
		{"CLIENTE (CGO + Raylib)", "cliente", "cliente/" + exe("client"), true, clientFlags},
		{"LAUNCHER (Pure Go)", "launcher", exe("MoleculeVision"), false, "-s -w"},
	}
}

func main() {
	runTests := flag.Bool("test", false, "Rodar go test ./shared/... antes de compilar")
	noPause := flag.Bool("no-pause", false, "Não esperar Enter ao terminar")
	flag.Parse()

	fmt.Println(ColorCyan + "╔══════════════════════════════════════╗" + ColorReset)
	fmt.Println(ColorCyan + "║    MoleculeVision Native Builder     ║" + ColorReset)
	fmt.Println(ColorCyan + "╚══════════════════════════════════════╝" + ColorReset)

	start := time.Now()

	setupEnvironment()

	if *runTests {
		if err := testPackages("./shared/...", "./servidor/...", "./cliente/internal/stage/...", "./cliente/internal/gifexport/..."); err != nil {
			fatal(err, *noPause)
		}
	}

	list := components()
	for i, c := range list {
		fmt.Printf(ColorYellow+"\n[%d/%d]"+ColorReset, i+1, len(list))
		if err := buildComponent(c); err != nil {
			fatal(err, *noPause)
		}
	}

	fmt.Printf("\n"+ColorCyan+"Build finalizada com sucesso em %v!"+ColorReset+"\n", time.Since(start).Round(time.Second))
	fmt.Println(ColorYellow + "Dica: Execute o '" + exe("MoleculeVision") + "' para visualizar." + ColorReset)

	if !*noPause {
		fmt.Println("\nPressione Enter para sair...")
		fmt.Scanln()
	}
}

func testPackages(pkgs ...string) error {
	fmt.Println(ColorYellow + "\n[T] Rodando testes..." + ColorReset)
	cmd := exec.Command("go", append([]string{"test"}, pkgs...)...)
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("testes falharam: %w", err)
	}
	fmt.Println(ColorGreen + "  - Testes OK" + ColorReset)
	return nil
}

func setupEnvironment() {
	fmt.Println(ColorYellow + "\n[0] Configurando ambiente de compilação..." + ColorReset)

	// Adicionar MSYS2 ao PATH se estiver no Windows
	if runtime.GOOS == "windows" {
		msysPath := `C:\msys64\mingw64\bin`
		currentPath := os.Getenv("PATH")
		if !strings.Contains(currentPath, msysPath) {
			os.Setenv("PATH", msysPath+";"+currentPath)
			fmt.Printf("  - PATH atualizado: %s adicionado.\n", msysPath)
		}
		os.Setenv("CC", "gcc")
		fmt.Println("  - Compilador C: gcc (MSYS2)")
	}
}

func buildComponent(c component) error {
	fmt.Printf(ColorYellow+" Compilando %s..."+ColorReset+"\n", c.name)

	cgoValue := "0"
	if c.cgo {
		cgoValue = "1"
	}
	os.Setenv("CGO_ENABLED", cgoValue)

	args := []string{"build", "-ldflags", c.ldflags, "-o", c.output, "./" + c.dir}
	cmd := exec.Command("go", args...)
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr

	if err := cmd.Run(); err != nil {
		return fmt.Errorf("falha ao compilar %s: %w", c.name, err)
	}

	fmt.Printf(ColorGreen+"  - %s compilado com sucesso -> %s"+ColorReset+"\n", c.name, c.output)
	return nil
}

func fatal(err error, noPause bool) {
	fmt.Printf("\n"+ColorRed+"[ERRO FATAL] %v"+ColorReset+"\n", err)
	if !noPause {
		fmt.Println("Pressione Enter para sair...")
		fmt.Scanln()
	}
	os.Exit(1)
}
