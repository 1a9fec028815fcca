// Package store persists integer scores between runs.
package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

// File keeps scores as a JSON object of key to integer. Every Save rewrites
// the whole file synchronously.
type File struct {
	path string

	mu     sync.Mutex
	values map[string]int
	loaded bool
}

func NewFile(path string) *File {
	return &File{path: path}
}

func (f *File) Path() string { return f.path }

// Load returns the stored value and whether it was present. A missing file
// is an empty store.
func (f *File) Load(key string) (int, bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if err := f.read(); err != nil {
		return 0, false, err
	}
	v, ok := f.values[key]
	return v, ok, nil
}

func (f *File) Save(key string, value int) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if err := f.read(); err != nil {
		// Corrupt content is replaced rather than blocking new scores.
		f.values = map[string]int{}
		f.loaded = true
	}
	f.values[key] = value

	data, err := json.Marshal(f.values)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(f.path), 0o755); err != nil {
		return fmt.Errorf("save %s: %w", key, err)
	}
	if err := os.WriteFile(f.path, data, 0o644); err != nil {
		return fmt.Errorf("save %s: %w", key, err)
	}
	return nil
}

func (f *File) read() error {
	if f.loaded {
		return nil
	}
	data, err := os.ReadFile(f.path)
	if errors.Is(err, os.ErrNotExist) {
		f.values = map[string]int{}
		f.loaded = true
		return nil
	}
	if err != nil {
		return err
	}

	values := map[string]int{}
	if err := json.Unmarshal(data, &values); err != nil {
		// Older saves held a bare number.
		var legacy int
		if json.Unmarshal(data, &legacy) != nil {
			return fmt.Errorf("read %s: %w", f.path, err)
		}
		values = map[string]int{"highScore": legacy}
	}
	f.values = values
	f.loaded = true
	return nil
}

// Memory is a process-local store, used when nothing can be persisted.
type Memory struct {
	mu     sync.Mutex
	values map[string]int
}

func NewMemory() *Memory {
	return &Memory{values: map[string]int{}}
}

func (m *Memory) Load(key string) (int, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.values[key]
	return v, ok, nil
}

func (m *Memory) Save(key string, value int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.values[key] = value
	return nil
}
