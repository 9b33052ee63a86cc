package session

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"gopkg.in/yaml.v3"
)

// FileStore keeps the identity in a small YAML file.
type FileStore struct {
	Path string
}

type sessionFile struct {
	CurrentUser string `yaml:"currentUser"`
}

// DefaultPath is <user config dir>/papertrade/session.yaml.
func DefaultPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "papertrade", "session.yaml"), nil
}

func (f FileStore) Load() (string, error) {
	data, err := os.ReadFile(f.Path)
	if errors.Is(err, os.ErrNotExist) {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	var sf sessionFile
	if err := yaml.Unmarshal(data, &sf); err != nil {
		return "", fmt.Errorf("parse %s: %w", f.Path, err)
	}
	return sf.CurrentUser, nil
}

func (f FileStore) Save(user string) error {
	data, err := yaml.Marshal(sessionFile{CurrentUser: user})
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(f.Path), 0o700); err != nil {
		return err
	}
	return os.WriteFile(f.Path, data, 0o600)
}

func (f FileStore) Clear() error {
	err := os.Remove(f.Path)
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	return err
}

// MemStore is an in-memory Store.
type MemStore struct {
	mu   sync.Mutex
	user string
}

func (m *MemStore) Load() (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.user, nil
}

func (m *MemStore) Save(user string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.user = user
	return nil
}

func (m *MemStore) Clear() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.user = ""
	return nil
}
