// Package storage owns the JSON files backing the site: the single document
// holding the four content collections, and the contact fallback file.
package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/labmath/labmath-site/internal/models"
	log "github.com/sirupsen/logrus"
)

// Store reads and rewrites the whole dataset as one JSON document. It is the
// only code that touches the file; callers always go through Load/Save/Update.
type Store struct {
	path string
	mu   sync.Mutex
}

func NewStore(path string) *Store {
	return &Store{path: path}
}

// Load returns the current document. A missing or unreadable file yields a
// fresh default with four empty collections; the default is not persisted, so
// a later Load on a still-missing file builds it again.
func (s *Store) Load() *models.Document {
	raw, err := os.ReadFile(s.path)
	if err != nil {
		if !os.IsNotExist(err) {
			log.WithError(err).WithField("file", s.path).Warn("Failed to read data file, using empty document")
		}
		return defaultDocument()
	}

	var doc models.Document
	if err := json.Unmarshal(raw, &doc); err != nil {
		log.WithError(err).WithField("file", s.path).Warn("Data file is corrupt, using empty document")
		return defaultDocument()
	}
	return &doc
}

// Save stamps last_update and rewrites the document wholesale. The write goes
// through a temp file plus rename so readers never see a half-written file.
func (s *Store) Save(doc *models.Document) error {
	doc.LastUpdate = time.Now().Format(time.RFC3339)

	raw, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal document: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("failed to create data directory: %w", err)
	}

	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, raw, 0o644); err != nil {
		return fmt.Errorf("failed to write data file: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return fmt.Errorf("failed to replace data file: %w", err)
	}
	return nil
}

// Update runs fn on the current document and saves the result. The whole
// load-mutate-save cycle holds the store mutex, so two in-process writers
// cannot silently drop each other's changes. Writers in other processes are
// still unguarded.
func (s *Store) Update(fn func(doc *models.Document) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc := s.Load()
	if err := fn(doc); err != nil {
		return err
	}
	return s.Save(doc)
}

func defaultDocument() *models.Document {
	return &models.Document{
		Activites:    []models.Activite{},
		Realisations: []models.Realisation{},
		Annonces:     []models.Annonce{},
		Offres:       []models.Offre{},
		LastUpdate:   time.Now().Format(time.RFC3339),
	}
}
