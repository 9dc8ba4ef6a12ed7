// Package state persists small facts between runs: the last GoCube used
// and the last journal session. Cube geometry is never stored here.
package state

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/SeamusWaldron/cubeengine/internal/config"
)

// AppState is the persisted state.
type AppState struct {
	LastDeviceAddr string `json:"last_device_addr,omitempty"`
	LastDeviceName string `json:"last_device_name,omitempty"`
	LastSessionID  string `json:"last_session_id,omitempty"`
}

// File manages the state file.
type File struct {
	path string

	mu    sync.Mutex
	state AppState
}

// DefaultPath returns ~/.cubeengine/state.json.
func DefaultPath() (string, error) {
	dir, err := config.DefaultDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "state.json"), nil
}

// Open loads path if it exists. A missing file is an empty state.
func Open(path string) (*File, error) {
	f := &File{path: path}
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return f, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read state file: %w", err)
	}
	if err := json.Unmarshal(data, &f.state); err != nil {
		return nil, fmt.Errorf("failed to parse state file: %w", err)
	}
	return f, nil
}

// OpenDefault opens the state file at the default path.
func OpenDefault() (*File, error) {
	path, err := DefaultPath()
	if err != nil {
		return nil, err
	}
	return Open(path)
}

// State returns a copy of the current state.
func (f *File) State() AppState {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.state
}

// SetLastDevice records the device most recently connected.
func (f *File) SetLastDevice(addr, name string) error {
	return f.update(func(s *AppState) {
		s.LastDeviceAddr = addr
		s.LastDeviceName = name
	})
}

// SetLastSession records the most recent journal session.
func (f *File) SetLastSession(id string) error {
	return f.update(func(s *AppState) {
		s.LastSessionID = id
	})
}

func (f *File) update(fn func(*AppState)) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	fn(&f.state)

	data, err := json.MarshalIndent(f.state, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal state: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(f.path), 0755); err != nil {
		return fmt.Errorf("failed to create state directory: %w", err)
	}
	if err := os.WriteFile(f.path, data, 0644); err != nil {
		return fmt.Errorf("failed to write state file: %w", err)
	}
	return nil
}

// Preferred returns the index of the remembered device among addrs, or 0.
func (f *File) Preferred(addrs []string) int {
	last := f.State().LastDeviceAddr
	for i, a := range addrs {
		if last != "" && a == last {
			return i
		}
	}
	return 0
}
