// Package store persists user-created characters in the same layout the
// web client keeps in browser-local storage: one key, one JSON array of
// character records with ISO-formatted timestamps.
package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"character-chat/backend/internal/models"
	"character-chat/backend/pkg/logger"
)

// UserCreatedKey is the storage key for user-created characters.
const UserCreatedKey = "userCreatedCharacters"

// LocalStore is a file-backed key/value store, one JSON file per key.
type LocalStore struct {
	dir string
	log *logger.Logger
	mu  sync.Mutex
}

// NewLocalStore creates the store directory if needed.
func NewLocalStore(dir string, log *logger.Logger) (*LocalStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create store directory: %w", err)
	}
	return &LocalStore{dir: dir, log: log}, nil
}

func (s *LocalStore) pathFor(key string) string {
	return filepath.Join(s.dir, key+".json")
}

// Load reads the user-created characters. A missing file yields an empty
// set; corrupt content is logged and also yields an empty set, never an
// error. Timestamps rehydrate from their ISO form via encoding/json.
func (s *LocalStore) Load() ([]models.Character, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := os.ReadFile(s.pathFor(UserCreatedKey))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return []models.Character{}, nil
		}
		return nil, fmt.Errorf("failed to read character store: %w", err)
	}

	var characters []models.Character
	if err := json.Unmarshal(data, &characters); err != nil {
		s.log.Error("Failed to load saved characters, starting empty",
			"key", UserCreatedKey,
			"error", err.Error(),
		)
		return []models.Character{}, nil
	}

	return characters, nil
}

// Save writes the full user-created set, replacing the previous content.
func (s *LocalStore) Save(characters []models.Character) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := json.MarshalIndent(characters, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode characters: %w", err)
	}

	tmp := s.pathFor(UserCreatedKey) + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("failed to write character store: %w", err)
	}
	if err := os.Rename(tmp, s.pathFor(UserCreatedKey)); err != nil {
		return fmt.Errorf("failed to replace character store: %w", err)
	}

	return nil
}
