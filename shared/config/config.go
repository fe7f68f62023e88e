package config

import (
	"encoding/json"
	"os"
	"path/filepath"
)

// Config armazena as configurações do MoleculeVision.
type Config struct {
	// Janela
	WindowWidth  int32  `json:"window_width"`
	WindowHeight int32  `json:"window_height"`
	WindowTitle  string `json:"window_title"`
	Fullscreen   bool   `json:"fullscreen"`
	Rate         int32  `json:"rate"` // Iterações do loop por segundo (também o FPS alvo)

	// Cena
	Background [3]float64 `json:"background"`
	Ambient    float64    `json:"ambient"`
	Forward    [3]float64 `json:"forward"` // Direção da câmera
	AutoScale  bool       `json:"autoscale"`

	// Chão
	ShowGround    bool       `json:"show_ground"`
	GroundPos     [3]float64 `json:"ground_pos"`
	GroundSize    [3]float64 `json:"ground_size"`
	GroundOpacity float64    `json:"ground_opacity"`

	// Molécula
	Molecule  string     `json:"molecule"`
	Start     [3]float64 `json:"start"`
	SpinAngle float64    `json:"spin_angle"` // Radianos por iteração
	SpinAxis  [3]float64 `json:"spin_axis"`

	// Servidor de catálogo (Usado pelo Cliente)
	ServerURL string `json:"server_url"`

	// Catálogo (Usado pelo Servidor)
	CatalogPath string `json:"catalog_path"`

	// Debug
	ShowDebugInfo bool `json:"show_debug_info"`
}

// DefaultConfig retorna a configuração padrão.
func DefaultConfig() *Config {
	return &Config{
		WindowWidth:  1000,
		WindowHeight: 550,
		WindowTitle:  "MoleculeVision",
		Fullscreen:   false,
		Rate:         100,

		Background: [3]float64{0.57, 0.72, 1}, // Azul claro
		Ambient:    0.4,
		Forward:    [3]float64{0, -3, -2}, // Vista de cima
		AutoScale:  false,

		ShowGround:    true,
		GroundPos:     [3]float64{0, -20, 0},
		GroundSize:    [3]float64{40, 0.2, 40},
		GroundOpacity: 0.3,

		Molecule:  "cyclohexane",
		Start:     [3]float64{-6, 0, 0},
		SpinAngle: 0.01,
		SpinAxis:  [3]float64{1, 0, 1},

		ServerURL: "",

		CatalogPath: filepath.Join("saves", "molecules.db"),

		ShowDebugInfo: false,
	}
}

// Path retorna o caminho do arquivo de configuração.
func Path() string {
	execDir, err := os.Executable()
	if err != nil {
		return "config.json"
	}
	return filepath.Join(filepath.Dir(execDir), "config.json")
}

// Load carrega as configurações do arquivo padrão.
// Se o arquivo não existir, retorna as configurações padrão.
func Load() *Config {
	return LoadFrom(Path())
}

// LoadFrom carrega as configurações de um arquivo JSON específico.
// Arquivo ausente ou inválido resulta na configuração padrão.
func LoadFrom(path string) *Config {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg
	}

	if err := json.Unmarshal(data, cfg); err != nil {
		return DefaultConfig()
	}

	return cfg
}

// Save salva as configurações no arquivo padrão.
func (c *Config) Save() error {
	return c.SaveTo(Path())
}

// SaveTo salva as configurações em um arquivo JSON.
func (c *Config) SaveTo(path string) error {
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}
