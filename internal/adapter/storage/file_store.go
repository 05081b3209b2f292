package storage

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"github.com/velocity-rentals/velocity_rental_service/internal/core/ports"
)

// Collection keys; each one is a JSON array in its own file under the data
// directory.
const (
	usersKey        = "users"
	modelsKey       = "bike_models"
	instancesKey    = "bike_instances"
	reservationsKey = "reservations"
)

// FileStore is the local record store: whole-collection JSON load/save with a
// single RW mutex shared by every repository built on it. The mutex makes
// each read-modify-write cycle a serialized transaction, which is the
// concurrency model this driver promises.
//
// Corrupt or missing files are substituted with seed data (catalogs, mock
// users) or an empty collection, never a fatal error: the service always has
// baseline data to serve. Fail-open is deliberate for demo-grade data.
type FileStore struct {
	mu     sync.RWMutex
	dir    string
	logger ports.LoggerPort
}

func NewFileStore(dir string, logger ports.LoggerPort) (*FileStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create data dir: %w", err)
	}
	return &FileStore{dir: dir, logger: logger}, nil
}

func (s *FileStore) path(key string) string {
	return filepath.Join(s.dir, key+".json")
}

// read unmarshals the collection into v. Callers must hold at least the read
// lock. A missing file reports fs.ErrNotExist so callers can seed; malformed
// JSON is logged and treated the same way.
func (s *FileStore) read(key string, v interface{}) error {
	data, err := os.ReadFile(s.path(key))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return err
		}
		return fmt.Errorf("failed to read collection %s: %w", key, err)
	}
	if err := json.Unmarshal(data, v); err != nil {
		s.logger.Warn("Corrupt collection, substituting defaults", map[string]interface{}{
			"collection": key,
			"error":      err.Error(),
		})
		return fs.ErrNotExist
	}
	return nil
}

// write replaces the whole collection on disk. Callers must hold the write
// lock.
func (s *FileStore) write(key string, v interface{}) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal collection %s: %w", key, err)
	}
	tmp := s.path(key) + ".tmp"
	if err := os.WriteFile(tmp, data, 0o600); err != nil {
		return fmt.Errorf("failed to write collection %s: %w", key, err)
	}
	return os.Rename(tmp, s.path(key))
}
