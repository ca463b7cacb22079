// Package localstore persists the small key/value state the browser frontend
// kept in localStorage: identity, theme, and language preference.
package localstore

import (
	"os"
	"path/filepath"
	"sync"

	"gopkg.in/yaml.v3"

	"github.com/agri-sahayak/sahayak-cli/internal/domain"
)

// Keys the rest of the client reads and writes.
const (
	KeyUserID   = "user_id"
	KeyUserName = "user_name"
	KeyTheme    = "theme"
	KeyLanguage = "language"
)

type Store struct {
	mu     sync.RWMutex
	path   string
	values map[string]string
}

var _ domain.StateStore = (*Store)(nil)

// Open loads the state file under dir, creating the directory if needed. A
// missing file is an empty store; a corrupt one is replaced on next write.
func Open(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return nil, err
	}
	s := &Store{
		path:   filepath.Join(dir, "state.yaml"),
		values: make(map[string]string),
	}
	if data, err := os.ReadFile(s.path); err == nil {
		_ = yaml.Unmarshal(data, &s.values)
		if s.values == nil {
			s.values = make(map[string]string)
		}
	}
	return s, nil
}

func (s *Store) Get(key string) (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	v, ok := s.values[key]
	return v, ok
}

func (s *Store) Set(key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.values[key] = value
	return s.flushLocked()
}

func (s *Store) Delete(key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.values[key]; !ok {
		return nil
	}
	delete(s.values, key)
	return s.flushLocked()
}

// flushLocked rewrites the file atomically so a crash mid-write cannot leave
// a truncated state file behind.
func (s *Store) flushLocked() error {
	data, err := yaml.Marshal(s.values)
	if err != nil {
		return err
	}
	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o600); err != nil {
		return err
	}
	return os.Rename(tmp, s.path)
}
