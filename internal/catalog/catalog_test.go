package catalog

import (
	"context"
	"errors"
	"reflect"
	"sort"
	"testing"
)

type staticSource struct {
	data []byte
	err  error
}

func (s staticSource) Index(context.Context) ([]byte, error) { return s.data, s.err }

func TestLoad(t *testing.T) {
	src := staticSource{data: []byte(`[
		{"file": "a.md", "title": "A", "date": "2024-01-01", "tags": ["go", "tui"]},
		{"file": "b.md", "title": "B", "date": "2024-02-01", "category": "notes"}
	]`)}

	cat, err := Load(context.Background(), src)
	if err != nil {
		t.Fatal(err)
	}
	if len(cat.Posts) != 2 {
		t.Fatalf("expected 2 posts, got %d", len(cat.Posts))
	}
	if cat.Posts[0].File != "a.md" || cat.Posts[1].Category != "notes" {
		t.Errorf("posts decoded wrong: %+v", cat.Posts)
	}
	if !reflect.DeepEqual(cat.Tags, []string{"go", "tui"}) {
		t.Errorf("tags: got %v", cat.Tags)
	}
}

func TestLoadUnreachable(t *testing.T) {
	src := staticSource{err: errors.New("connection refused")}

	cat, err := Load(context.Background(), src)
	if cat != nil {
		t.Error("failed load must not produce partial state")
	}
	var le *LoadError
	if !errors.As(err, &le) {
		t.Fatalf("expected *LoadError, got %T", err)
	}
}

func TestLoadInvalidShape(t *testing.T) {
	src := staticSource{data: []byte(`{"not": "an array"}`)}

	if _, err := Load(context.Background(), src); err == nil {
		t.Fatal("expected decode error")
	} else {
		var le *LoadError
		if !errors.As(err, &le) {
			t.Fatalf("expected *LoadError, got %T", err)
		}
	}
}

func TestExtractTags(t *testing.T) {
	posts := []Post{
		{File: "a.md", Tags: []string{"zsh", "go"}},
		{File: "b.md", Tags: []string{"go", "linux"}},
		{File: "c.md"}, // no tags at all
		{File: "d.md", Tags: []string{"go"}},
	}

	got := ExtractTags(posts)
	want := []string{"go", "linux", "zsh"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("ExtractTags = %v, want %v", got, want)
	}
	if !sort.StringsAreSorted(got) {
		t.Error("tags must be sorted ascending")
	}
}

func TestExtractTagsEmpty(t *testing.T) {
	if got := ExtractTags(nil); len(got) != 0 {
		t.Errorf("expected no tags, got %v", got)
	}
}

func TestFind(t *testing.T) {
	cat := FromPosts([]Post{{File: "a.md", Title: "A"}, {File: "b.md", Title: "B"}})

	if p, ok := cat.Find("b.md"); !ok || p.Title != "B" {
		t.Errorf("Find(b.md) = %+v, %v", p, ok)
	}
	if _, ok := cat.Find("missing.md"); ok {
		t.Error("Find should miss on unknown file")
	}
}
