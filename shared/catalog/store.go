// Package catalog persiste descrições de moléculas em SQLite.
package catalog

import (
	"bytes"
	"encoding/gob"
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"MoleculeVision/shared/chem"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// ErrNotFound indica uma molécula ausente do catálogo.
var ErrNotFound = errors.New("molécula não encontrada no catálogo")

// MoleculeModel representa o esquema do banco de dados para uma molécula
type MoleculeModel struct {
	Name      string `gorm:"primaryKey"`
	Atoms     int
	Bonds     int
	Data      []byte // Descrição serializada em GOB
	UpdatedAt time.Time
}

// Store é o catálogo de moléculas.
type Store struct {
	DB *gorm.DB
}

// Open abre (ou cria) o banco SQLite em path e roda as migrações.
func Open(path string) (*Store, error) {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, err
		}
	}

	// Logger silencioso em produção
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("falha ao conectar no SQLite: %w", err)
	}

	if err := db.AutoMigrate(&MoleculeModel{}); err != nil {
		return nil, fmt.Errorf("falha na migração do banco: %w", err)
	}

	log.Printf("[Catalog] Banco de dados SQLite aberto: %s", path)
	return &Store{DB: db}, nil
}

// Close fecha a conexão com o banco.
func (s *Store) Close() error {
	sqlDB, err := s.DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// Save valida e grava (upsert) uma descrição.
func (s *Store) Save(d *chem.Description) error {
	if d.Name == "" {
		return fmt.Errorf("descrição sem nome")
	}
	if err := d.Validate(); err != nil {
		return fmt.Errorf("molécula %q inválida: %w", d.Name, err)
	}

	var buf bytes.Buffer
	if err := gob.NewEncoder(&buf).Encode(d); err != nil {
		return fmt.Errorf("erro GOB ao serializar %q: %w", d.Name, err)
	}

	model := MoleculeModel{
		Name:  d.Name,
		Atoms: d.AtomCount(),
		Bonds: d.BondCount(),
		Data:  buf.Bytes(),
	}
	if err := s.DB.Save(&model).Error; err != nil {
		log.Printf("[Catalog] ERRO ao salvar molécula %s: %v", d.Name, err)
		return err
	}
	return nil
}

// Seed grava as descrições informadas, sobrescrevendo versões anteriores.
func (s *Store) Seed(descs ...*chem.Description) error {
	for _, d := range descs {
		if err := s.Save(d); err != nil {
			return err
		}
	}
	log.Printf("[Catalog] %d moléculas semeadas", len(descs))
	return nil
}

// Load busca uma descrição pelo nome.
func (s *Store) Load(name string) (*chem.Description, error) {
	var model MoleculeModel
	if err := s.DB.First(&model, "name = ?", name).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: %q", ErrNotFound, name)
		}
		return nil, err
	}

	var d chem.Description
	if err := gob.NewDecoder(bytes.NewReader(model.Data)).Decode(&d); err != nil {
		return nil, fmt.Errorf("erro GOB ao ler %q: %w", name, err)
	}
	return &d, nil
}

// Names lista os nomes do catálogo em ordem alfabética.
func (s *Store) Names() ([]string, error) {
	var names []string
	err := s.DB.Model(&MoleculeModel{}).Order("name").Pluck("name", &names).Error
	return names, err
}

// Delete remove uma molécula do catálogo.
func (s *Store) Delete(name string) error {
	res := s.DB.Delete(&MoleculeModel{}, "name = ?", name)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("%w: %q", ErrNotFound, name)
	}
	return nil
}
