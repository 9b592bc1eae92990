package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
)

// fileConfig mirrors Config with pointer fields so we can distinguish
// "not set" from zero values when merging TOML.
type fileConfig struct {
	Site            *string `toml:"site"`
	Listen          *string `toml:"listen"`
	DebounceMS      *int    `toml:"debounce_ms"`
	CommentsAPI     *string `toml:"comments_api"`
	CommentsRepo    *string `toml:"comments_repo"`
	CommentsMapping *string `toml:"comments_mapping"`
	CommentsLang    *string `toml:"comments_lang"`
}

// ConfigDir returns the plume config directory, respecting XDG_CONFIG_HOME.
func ConfigDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "plume")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", "plume")
}

// ConfigPath returns the full path to config.toml.
func ConfigPath() string {
	return filepath.Join(ConfigDir(), "config.toml")
}

// LoadFile reads config.toml and merges non-nil fields into cfg.
// Returns true if the file existed, false otherwise.
func LoadFile(cfg *Config) (bool, error) {
	path := ConfigPath()
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return false, nil
	}
	if err != nil {
		return false, err
	}

	var fc fileConfig
	if err := toml.Unmarshal(data, &fc); err != nil {
		return true, err
	}

	if fc.Site != nil {
		cfg.Site = expandSite(*fc.Site)
	}
	if fc.Listen != nil {
		cfg.Listen = *fc.Listen
	}
	if fc.DebounceMS != nil {
		cfg.DebounceMS = *fc.DebounceMS
	}
	if fc.CommentsAPI != nil {
		cfg.CommentsAPI = *fc.CommentsAPI
	}
	if fc.CommentsRepo != nil {
		cfg.CommentsRepo = *fc.CommentsRepo
	}
	if fc.CommentsMapping != nil {
		cfg.CommentsMapping = *fc.CommentsMapping
	}
	if fc.CommentsLang != nil {
		cfg.CommentsLang = *fc.CommentsLang
	}

	return true, nil
}

// expandSite expands ~ for directory sites and leaves URLs alone.
func expandSite(site string) string {
	if strings.HasPrefix(site, "http://") || strings.HasPrefix(site, "https://") {
		return site
	}
	return ExpandHome(site)
}

// ExpandHome replaces a leading ~ with the user's home directory.
func ExpandHome(path string) string {
	if !strings.HasPrefix(path, "~") {
		return path
	}
	home, _ := os.UserHomeDir()
	if path == "~" {
		return home
	}
	return filepath.Join(home, path[2:])
}
