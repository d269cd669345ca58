package storage

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

const (
	authFileName = "auth.json"
	prefFileName = "preferences.json"
)

// FileStore keeps the auth record and preferences as JSON files under a
// directory. Writes go through a temp file plus rename so a crash mid-write
// can never leave a partial record behind.
type FileStore struct {
	dir string
}

// NewFileStore creates the backing directory if needed.
func NewFileStore(dir string) (*FileStore, error) {
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return nil, fmt.Errorf("storage: create dir: %w", err)
	}
	return &FileStore{dir: dir}, nil
}

func (s *FileStore) writeFile(name string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("storage: marshal %s: %w", name, err)
	}
	path := filepath.Join(s.dir, name)
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o600); err != nil {
		return fmt.Errorf("storage: write %s: %w", name, err)
	}
	if err := os.Rename(tmp, path); err != nil {
		return fmt.Errorf("storage: rename %s: %w", name, err)
	}
	return nil
}

func (s *FileStore) readFile(name string, v any) error {
	data, err := os.ReadFile(filepath.Join(s.dir, name))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return ErrNotFound
		}
		return fmt.Errorf("storage: read %s: %w", name, err)
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("storage: unmarshal %s: %w", name, err)
	}
	return nil
}

// SaveAuth persists the whole record in one atomic write.
func (s *FileStore) SaveAuth(rec AuthRecord) error {
	return s.writeFile(authFileName, rec)
}

// LoadAuth returns ErrNotFound when nothing has been persisted yet.
func (s *FileStore) LoadAuth() (*AuthRecord, error) {
	var rec AuthRecord
	if err := s.readFile(authFileName, &rec); err != nil {
		return nil, err
	}
	return &rec, nil
}

// ClearAuth removes every persisted auth field at once.
func (s *FileStore) ClearAuth() error {
	err := os.Remove(filepath.Join(s.dir, authFileName))
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("storage: clear auth: %w", err)
	}
	return nil
}

type preferences struct {
	Language string `json:"language"`
}

func (s *FileStore) SaveLanguage(lang string) error {
	return s.writeFile(prefFileName, preferences{Language: lang})
}

func (s *FileStore) Language() (string, error) {
	var prefs preferences
	if err := s.readFile(prefFileName, &prefs); err != nil {
		return "", err
	}
	return prefs.Language, nil
}
