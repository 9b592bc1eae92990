package source

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
)

func TestHTTPSource(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/blog/posts.json":
			_, _ = w.Write([]byte(`[{"file":"a.md","title":"A","date":"2024-01-01"}]`))
		case "/blog/posts/a.md":
			_, _ = w.Write([]byte("---\ntitle: A\n---\nbody"))
		default:
			http.NotFound(w, r)
		}
	}))
	defer srv.Close()

	src, err := NewHTTP(srv.URL + "/blog")
	if err != nil {
		t.Fatal(err)
	}

	idx, err := src.Index(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if len(idx) == 0 {
		t.Error("empty index body")
	}

	doc, err := src.Document(context.Background(), "a.md")
	if err != nil {
		t.Fatal(err)
	}
	if string(doc) != "---\ntitle: A\n---\nbody" {
		t.Errorf("document body: %q", doc)
	}
}

func TestHTTPSourceMissingDocument(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	defer srv.Close()

	src, err := NewHTTP(srv.URL)
	if err != nil {
		t.Fatal(err)
	}

	_, err = src.Document(context.Background(), "gone.md")
	var de *DocumentError
	if !errors.As(err, &de) {
		t.Fatalf("expected *DocumentError, got %T: %v", err, err)
	}
	if de.File != "gone.md" {
		t.Errorf("File = %q", de.File)
	}
}

func TestDirSource(t *testing.T) {
	tmp := t.TempDir()
	os.MkdirAll(filepath.Join(tmp, PostsDir), 0755)
	os.WriteFile(filepath.Join(tmp, IndexFile), []byte(`[]`), 0644)
	os.WriteFile(filepath.Join(tmp, PostsDir, "note.md"), []byte("hello"), 0644)

	src := NewDir(tmp)

	if _, err := src.Index(context.Background()); err != nil {
		t.Fatal(err)
	}

	doc, err := src.Document(context.Background(), "note.md")
	if err != nil {
		t.Fatal(err)
	}
	if string(doc) != "hello" {
		t.Errorf("document body: %q", doc)
	}
}

func TestDirSourceRejectsTraversal(t *testing.T) {
	src := NewDir(t.TempDir())

	for _, file := range []string{"", "../secrets", "/etc/passwd"} {
		if _, err := src.Document(context.Background(), file); err == nil {
			t.Errorf("expected error for file %q", file)
		}
	}
}

func TestDetect(t *testing.T) {
	if src, err := Detect("https://blog.example.com"); err != nil {
		t.Fatal(err)
	} else if _, ok := src.(*HTTP); !ok {
		t.Errorf("expected HTTP source, got %T", src)
	}

	if src, err := Detect("/srv/blog"); err != nil {
		t.Fatal(err)
	} else if _, ok := src.(*Dir); !ok {
		t.Errorf("expected Dir source, got %T", src)
	}
}
