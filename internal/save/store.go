package save

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/rs/zerolog/log"
)

// Store loads and saves the record
type Store interface {
	Load() (*Data, error)
	Save(d *Data) error
	Close() error
}

// FileStore keeps the record as a JSON file
type FileStore struct {
	path string
}

// NewFileStore creates a store for the file at path
func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

// Path is the save file location
func (s *FileStore) Path() string { return s.path }

// Load reads the save file. An absent file is recreated with defaults. A
// file that cannot be parsed is moved aside to <path>.corrupt and
// replaced with defaults. A file from a newer build is left alone and
// ErrUnsupportedVersion is returned.
func (s *FileStore) Load() (*Data, error) {
	raw, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		log.Info().Str("path", s.path).Msg("no save file; creating defaults")
		d := Default()
		return d, s.Save(d)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read save file %s: %w", s.path, err)
	}

	d, err := Decode(raw)
	if errors.Is(err, ErrUnsupportedVersion) {
		return nil, fmt.Errorf("save file %s: %w", s.path, err)
	}
	if err != nil {
		corrupt := s.path + ".corrupt"
		log.Warn().Err(err).Str("path", s.path).Str("moved_to", corrupt).Msg("save file is malformed; starting from defaults")
		if rerr := os.Rename(s.path, corrupt); rerr != nil {
			return nil, fmt.Errorf("failed to move malformed save file: %w", rerr)
		}
		d = Default()
		return d, s.Save(d)
	}
	return d, nil
}

// Save writes the record, creating parent directories as needed
func (s *FileStore) Save(d *Data) error {
	data, err := d.Encode()
	if err != nil {
		return err
	}

	if dir := filepath.Dir(s.path); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("mkdir %s: %w", dir, err)
		}
	}

	if err := os.WriteFile(s.path, data, 0644); err != nil {
		return fmt.Errorf("failed to write save file: %w", err)
	}
	return nil
}

// Close is a no-op for files
func (s *FileStore) Close() error { return nil }

// Open returns the store for a backend name: "json" or "sqlite"
func Open(backend, path string) (Store, error) {
	switch backend {
	case "", "json":
		return NewFileStore(path), nil
	case "sqlite":
		st, err := OpenSQLite(path)
		if err != nil {
			return nil, err
		}
		return st, nil
	default:
		return nil, fmt.Errorf("unknown save backend: %s", backend)
	}
}
