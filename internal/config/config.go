package config

import (
	"os"
	"path/filepath"
)

type Config struct {
	Site            string // blog base URL or local directory
	Listen          string
	Serve           bool
	DebounceMS      int // search debounce window in milliseconds
	NoCache         bool
	CommentsAPI     string
	CommentsRepo    string
	CommentsMapping string
	CommentsLang    string
}

func Default() Config {
	return Config{
		Listen:          ":2222",
		Serve:           false,
		DebounceMS:      300,
		CommentsMapping: "pathname",
		CommentsLang:    "en",
	}
}

// DataDir returns the plume data directory, respecting XDG_DATA_HOME.
// Session state and the offline cache live here.
func DataDir() string {
	if xdg := os.Getenv("XDG_DATA_HOME"); xdg != "" {
		return filepath.Join(xdg, "plume")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".local", "share", "plume")
}
