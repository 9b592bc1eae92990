package comments

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"plume/internal/catalog"
	"plume/internal/theme"
)

func TestNilWidgetIsNoOp(t *testing.T) {
	var w *Widget

	w.SetTheme(theme.Dark) // must not panic
	if w.Loaded() {
		t.Error("nil widget is never loaded")
	}
	if _, err := w.Load(context.Background(), catalog.Post{File: "a.md"}, theme.Light); err != nil {
		t.Errorf("nil widget Load should no-op: %v", err)
	}
}

func TestNewWithoutEndpoint(t *testing.T) {
	if w := New(Config{Repo: "me/blog"}); w != nil {
		t.Error("no endpoint means no widget")
	}
}

func TestLoadBuildsRequest(t *testing.T) {
	var gotQuery map[string][]string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query()
		_, _ = w.Write([]byte(`{"url": "https://github.com/me/blog/discussions/7", "count": 3}`))
	}))
	defer srv.Close()

	w := New(Config{Endpoint: srv.URL, Repo: "me/blog", Lang: "en"})

	d, err := w.Load(context.Background(), catalog.Post{File: "a.md", Title: "A"}, theme.Dark)
	if err != nil {
		t.Fatal(err)
	}
	if d.Count != 3 || d.URL == "" {
		t.Errorf("discussion: %+v", d)
	}

	if got := gotQuery["repo"]; len(got) != 1 || got[0] != "me/blog" {
		t.Errorf("repo param: %v", got)
	}
	if got := gotQuery["term"]; len(got) != 1 || got[0] != "a.md" {
		t.Errorf("default mapping should use the file identifier: %v", got)
	}
	if got := gotQuery["theme"]; len(got) != 1 || got[0] != "dark" {
		t.Errorf("theme param: %v", got)
	}
	if !w.Loaded() {
		t.Error("widget should be marked loaded after a successful fetch")
	}
}

func TestTitleMapping(t *testing.T) {
	var term string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		term = r.URL.Query().Get("term")
		_, _ = w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	w := New(Config{Endpoint: srv.URL, Repo: "me/blog", Mapping: "title"})
	if _, err := w.Load(context.Background(), catalog.Post{File: "a.md", Title: "My Post"}, theme.Light); err != nil {
		t.Fatal(err)
	}
	if term != "My Post" {
		t.Errorf("term = %q, want the post title", term)
	}
}

func TestSetThemeBeforeLoadIsNoOp(t *testing.T) {
	var themes []string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		themes = append(themes, r.URL.Query().Get("theme"))
		_, _ = w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	w := New(Config{Endpoint: srv.URL, Repo: "me/blog"})

	// Theme sync before the widget exists on the page: dropped.
	w.SetTheme(theme.Dark)

	if _, err := w.Load(context.Background(), catalog.Post{File: "a.md"}, theme.Light); err != nil {
		t.Fatal(err)
	}
	if themes[0] != "light" {
		t.Errorf("pre-load SetTheme must not stick, got %q", themes[0])
	}

	// After load the sync applies to subsequent requests.
	w.SetTheme(theme.Dark)
	if _, err := w.Load(context.Background(), catalog.Post{File: "a.md"}, theme.Light); err != nil {
		t.Fatal(err)
	}
	if themes[1] != "dark" {
		t.Errorf("post-load SetTheme should win, got %q", themes[1])
	}
}
