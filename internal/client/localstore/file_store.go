package localstore

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sync"
)

// FileStore persists keys as a single JSON file, the client-side
// equivalent of browser local storage. Reads of a missing or corrupted
// file behave as an empty store.
type FileStore struct {
	mu   sync.Mutex
	path string
}

// NewFileStore creates a store backed by the given file path
func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

// DefaultPath returns the conventional state-file location under the
// user config directory.
func DefaultPath() (string, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(configDir, "sitebuilder", "local_storage.json"), nil
}

func (s *FileStore) Get(key string) (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	values := s.load()
	value, ok := values[key]
	return value, ok
}

func (s *FileStore) Set(key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	values := s.load()
	values[key] = value
	return s.save(values)
}

func (s *FileStore) Remove(key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	values := s.load()
	if _, ok := values[key]; !ok {
		return nil
	}
	delete(values, key)
	return s.save(values)
}

// load reads the state file; missing or malformed content yields an
// empty map rather than an error.
func (s *FileStore) load() map[string]string {
	data, err := os.ReadFile(s.path)
	if err != nil {
		return make(map[string]string)
	}

	var values map[string]string
	if err := json.Unmarshal(data, &values); err != nil || values == nil {
		return make(map[string]string)
	}
	return values
}

func (s *FileStore) save(values map[string]string) error {
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return err
	}

	data, err := json.MarshalIndent(values, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(s.path, data, 0600)
}
