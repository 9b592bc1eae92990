// Package comments integrates an external giscus-style discussion widget.
// The widget is embedded lazily: nothing is fetched until a post detail view
// first asks for its discussion, and theme-sync calls before that point are
// no-ops.
package comments

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sync"
	"time"

	"plume/internal/catalog"
	"plume/internal/theme"
)

// Config identifies the discussion backend. An empty Endpoint disables the
// widget entirely.
type Config struct {
	Endpoint string // discussion lookup API base URL
	Repo     string // repository identity, "owner/name"
	Mapping  string // how posts map to discussions: "pathname" or "title"
	Lang     string // widget language tag
}

// Discussion is the widget's answer for one post.
type Discussion struct {
	URL   string `json:"url"`
	Count int    `json:"count"`
}

// Widget is the embedded comment collaborator. A nil *Widget is valid and
// makes every call a no-op, which is how an unconfigured blog behaves.
type Widget struct {
	cfg    Config
	client *http.Client

	mu     sync.Mutex
	loaded bool
	theme  theme.Mode
}

// New creates the widget for a config. Returns nil when no endpoint is
// configured, so callers can hold a widget unconditionally.
func New(cfg Config) *Widget {
	if cfg.Endpoint == "" {
		return nil
	}
	if cfg.Mapping == "" {
		cfg.Mapping = "pathname"
	}
	return &Widget{
		cfg:    cfg,
		client: &http.Client{Timeout: 10 * time.Second},
	}
}

// SetTheme receives a theme-sync call. Before the widget has loaded once
// there is nothing to update and the call is a no-op; afterwards the theme
// tags every subsequent request.
func (w *Widget) SetTheme(m theme.Mode) {
	if w == nil {
		return
	}
	w.mu.Lock()
	defer w.mu.Unlock()
	if !w.loaded {
		return
	}
	w.theme = m
}

// Load fetches the discussion for a post. The first successful call marks
// the widget as present for theme syncing.
func (w *Widget) Load(ctx context.Context, post catalog.Post, mode theme.Mode) (Discussion, error) {
	if w == nil {
		return Discussion{}, nil
	}

	term := post.File
	if w.cfg.Mapping == "title" {
		term = post.Title
	}

	q := url.Values{}
	q.Set("repo", w.cfg.Repo)
	q.Set("term", term)
	q.Set("theme", string(w.currentTheme(mode)))
	if w.cfg.Lang != "" {
		q.Set("lang", w.cfg.Lang)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, w.cfg.Endpoint+"?"+q.Encode(), nil)
	if err != nil {
		return Discussion{}, err
	}

	resp, err := w.client.Do(req)
	if err != nil {
		return Discussion{}, err
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return Discussion{}, fmt.Errorf("discussion lookup: %s", resp.Status)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return Discussion{}, err
	}
	var d Discussion
	if err := json.Unmarshal(body, &d); err != nil {
		return Discussion{}, fmt.Errorf("decode discussion: %w", err)
	}

	w.mu.Lock()
	w.loaded = true
	w.theme = w.currentThemeLocked(mode)
	w.mu.Unlock()

	return d, nil
}

// Loaded reports whether the widget has been embedded at least once.
func (w *Widget) Loaded() bool {
	if w == nil {
		return false
	}
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.loaded
}

func (w *Widget) currentTheme(fallback theme.Mode) theme.Mode {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.currentThemeLocked(fallback)
}

func (w *Widget) currentThemeLocked(fallback theme.Mode) theme.Mode {
	if w.loaded && w.theme != "" {
		return w.theme
	}
	return fallback
}
