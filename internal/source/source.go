// Package source retrieves blog resources: the post index and individual
// post documents. A blog is either served over HTTP or read from a local
// directory; both expose the same layout (posts.json next to a posts/
// directory of markdown files).
package source

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"
)

// IndexFile is the well-known name of the post index resource.
const IndexFile = "posts.json"

// PostsDir is the directory holding per-post documents, relative to the root.
const PostsDir = "posts"

// Source retrieves raw blog resources.
type Source interface {
	// Index returns the raw post index document.
	Index(ctx context.Context) ([]byte, error)
	// Document returns the raw document for a post file identifier.
	Document(ctx context.Context, file string) ([]byte, error)
	// Location describes the source for display and logging.
	Location() string
}

// DocumentError reports an unreachable per-post document. It is recoverable:
// the detail panel shows it inline and the rest of the app stays interactive.
type DocumentError struct {
	File string
	Err  error
}

func (e *DocumentError) Error() string { return fmt.Sprintf("load post %s: %v", e.File, e.Err) }
func (e *DocumentError) Unwrap() error { return e.Err }

// Detect picks the source implementation for a target: an http(s) URL gets
// the HTTP source, anything else is treated as a directory path.
func Detect(target string) (Source, error) {
	if strings.HasPrefix(target, "http://") || strings.HasPrefix(target, "https://") {
		return NewHTTP(target)
	}
	return NewDir(target), nil
}

// HTTP fetches blog resources relative to a base URL.
type HTTP struct {
	base   *url.URL
	client *http.Client
}

// NewHTTP creates an HTTP source for the given base URL.
func NewHTTP(base string) (*HTTP, error) {
	u, err := url.Parse(strings.TrimSuffix(base, "/") + "/")
	if err != nil {
		return nil, fmt.Errorf("parse blog url: %w", err)
	}
	return &HTTP{
		base:   u,
		client: &http.Client{Timeout: 15 * time.Second},
	}, nil
}

func (h *HTTP) Location() string { return h.base.String() }

func (h *HTTP) Index(ctx context.Context) ([]byte, error) {
	return h.get(ctx, IndexFile)
}

func (h *HTTP) Document(ctx context.Context, file string) ([]byte, error) {
	if err := checkFile(file); err != nil {
		return nil, &DocumentError{File: file, Err: err}
	}
	data, err := h.get(ctx, path.Join(PostsDir, file))
	if err != nil {
		return nil, &DocumentError{File: file, Err: err}
	}
	return data, nil
}

func (h *HTTP) get(ctx context.Context, rel string) ([]byte, error) {
	u := h.base.JoinPath(rel)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, err
	}

	resp, err := h.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("GET %s: %s", u, resp.Status)
	}
	return io.ReadAll(resp.Body)
}

// Dir reads blog resources from a local directory.
type Dir struct {
	root string
}

// NewDir creates a directory source rooted at the given path.
func NewDir(root string) *Dir {
	return &Dir{root: root}
}

func (d *Dir) Location() string { return d.root }

func (d *Dir) Index(context.Context) ([]byte, error) {
	return os.ReadFile(filepath.Join(d.root, IndexFile))
}

func (d *Dir) Document(_ context.Context, file string) ([]byte, error) {
	if err := checkFile(file); err != nil {
		return nil, &DocumentError{File: file, Err: err}
	}
	data, err := os.ReadFile(filepath.Join(d.root, PostsDir, file))
	if err != nil {
		return nil, &DocumentError{File: file, Err: err}
	}
	return data, nil
}

// Root returns the directory this source reads from.
func (d *Dir) Root() string { return d.root }

// checkFile rejects file identifiers that would escape the posts directory.
func checkFile(file string) error {
	if file == "" {
		return fmt.Errorf("empty file identifier")
	}
	if strings.HasPrefix(file, "/") || strings.Contains(file, "..") {
		return fmt.Errorf("invalid file identifier %q", file)
	}
	return nil
}
