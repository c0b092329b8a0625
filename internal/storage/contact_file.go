package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/labmath/labmath-site/internal/models"
	log "github.com/sirupsen/logrus"
)

// ContactFileStore is the fallback persistence for contact submissions when
// no database is configured or the insert fails. The file is a plain JSON
// array, rewritten wholesale on every append.
type ContactFileStore struct {
	path string
	mu   sync.Mutex
}

func NewContactFileStore(path string) *ContactFileStore {
	return &ContactFileStore{path: path}
}

// Append stores the contact with a sequential identifier (count of existing
// records + 1) and returns the assigned id.
func (s *ContactFileStore) Append(contact models.Contact) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	contacts := s.read()
	contact.ID = int64(len(contacts) + 1)
	contacts = append(contacts, contact)

	raw, err := json.MarshalIndent(contacts, "", "  ")
	if err != nil {
		return 0, fmt.Errorf("failed to marshal contacts: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return 0, fmt.Errorf("failed to create data directory: %w", err)
	}
	if err := os.WriteFile(s.path, raw, 0o644); err != nil {
		return 0, fmt.Errorf("failed to write contacts file: %w", err)
	}
	return contact.ID, nil
}

// List returns up to limit contacts, newest first.
func (s *ContactFileStore) List(limit int) []models.Contact {
	s.mu.Lock()
	defer s.mu.Unlock()

	contacts := s.read()
	// Appended in arrival order, so newest are at the end.
	out := make([]models.Contact, 0, len(contacts))
	for i := len(contacts) - 1; i >= 0 && len(out) < limit; i-- {
		out = append(out, contacts[i])
	}
	return out
}

func (s *ContactFileStore) read() []models.Contact {
	raw, err := os.ReadFile(s.path)
	if err != nil {
		if !os.IsNotExist(err) {
			log.WithError(err).WithField("file", s.path).Warn("Failed to read contacts file")
		}
		return nil
	}
	var contacts []models.Contact
	if err := json.Unmarshal(raw, &contacts); err != nil {
		log.WithError(err).WithField("file", s.path).Warn("Contacts file is corrupt, starting over")
		return nil
	}
	return contacts
}
