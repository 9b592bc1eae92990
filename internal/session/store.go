package session

import (
	"encoding/json"
	"os"
	"path/filepath"

	"plume/internal/theme"
)

// Store handles session state persistence.
type Store struct {
	path string
}

// NewStore creates a store that persists to the given data directory.
func NewStore(dataDir string) *Store {
	return &Store{
		path: filepath.Join(dataDir, "state.json"),
	}
}

// Load reads the session state from disk.
func (s *Store) Load() (State, error) {
	state := Default()

	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return state, nil
		}
		return state, err
	}

	if err := json.Unmarshal(data, &state); err != nil {
		return Default(), err
	}

	return state, nil
}

// Save writes the session state to disk.
func (s *Store) Save(state State) error {
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(state, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(s.path, data, 0644)
}

// ThemePreference returns the persisted theme, if one was ever saved.
// Implements theme.Store.
func (s *Store) ThemePreference() (theme.Mode, bool) {
	state, err := s.Load()
	if err != nil || state.Theme == "" {
		return "", false
	}
	switch theme.Mode(state.Theme) {
	case theme.Dark, theme.Light:
		return theme.Mode(state.Theme), true
	}
	return "", false
}

// SaveThemePreference persists an explicit theme choice, keeping the rest of
// the state intact.
func (s *Store) SaveThemePreference(m theme.Mode) error {
	state, err := s.Load()
	if err != nil {
		state = Default()
	}
	state.Theme = string(m)
	return s.Save(state)
}
