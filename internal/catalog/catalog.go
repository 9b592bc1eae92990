package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
)

// Post is one entry of the blog index. Posts are immutable once loaded.
type Post struct {
	File     string   `json:"file"`
	Title    string   `json:"title"`
	Date     string   `json:"date"` // ISO-8601, e.g. 2024-03-01
	Category string   `json:"category,omitempty"`
	Excerpt  string   `json:"excerpt,omitempty"`
	Tags     []string `json:"tags,omitempty"`
}

// Catalog holds every post of a blog plus the derived tag set. It is built
// once per load and read-only afterwards.
type Catalog struct {
	Posts []Post
	Tags  []string
}

// IndexSource retrieves the raw post index document.
type IndexSource interface {
	Index(ctx context.Context) ([]byte, error)
}

// LoadError reports an unreachable or undecodable post index. Loading is
// all-or-nothing: on failure no catalog state exists.
type LoadError struct {
	Err error
}

func (e *LoadError) Error() string { return fmt.Sprintf("load post index: %v", e.Err) }
func (e *LoadError) Unwrap() error { return e.Err }

// Load fetches and decodes the post index from src.
func Load(ctx context.Context, src IndexSource) (*Catalog, error) {
	data, err := src.Index(ctx)
	if err != nil {
		return nil, &LoadError{Err: err}
	}

	var posts []Post
	if err := json.Unmarshal(data, &posts); err != nil {
		return nil, &LoadError{Err: err}
	}

	return &Catalog{Posts: posts, Tags: ExtractTags(posts)}, nil
}

// FromPosts builds a catalog from an already decoded post list.
func FromPosts(posts []Post) *Catalog {
	return &Catalog{Posts: posts, Tags: ExtractTags(posts)}
}

// ExtractTags returns the set of distinct tags appearing in any post, sorted
// lexicographically. Pure; recomputed from scratch on every call.
func ExtractTags(posts []Post) []string {
	seen := make(map[string]bool)
	for _, p := range posts {
		for _, tag := range p.Tags {
			seen[tag] = true
		}
	}

	tags := make([]string, 0, len(seen))
	for tag := range seen {
		tags = append(tags, tag)
	}
	sort.Strings(tags)
	return tags
}

// Find returns the post with the given file identifier, if present.
func (c *Catalog) Find(file string) (Post, bool) {
	for _, p := range c.Posts {
		if p.File == file {
			return p, true
		}
	}
	return Post{}, false
}
