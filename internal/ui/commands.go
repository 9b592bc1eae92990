package ui

import (
	"context"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"plume/internal/catalog"
	"plume/internal/markdown"
)

const fetchTimeout = 30 * time.Second

// loadCatalog fetches and decodes the post index. When the source fails and
// an offline copy exists, the copy is served instead; only when both fail
// does the app end up in its error state.
func (a *App) loadCatalog() tea.Cmd {
	src := a.src
	db := a.cache
	site := a.site
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), fetchTimeout)
		defer cancel()

		cat, err := catalog.Load(ctx, src)
		if err != nil {
			if db != nil {
				if cached, ok, cacheErr := db.LoadCatalog(site); cacheErr == nil && ok {
					return catalogLoadedMsg{cat: cached, fromCache: true}
				}
			}
			return catalogErrMsg{err: err}
		}

		if db != nil {
			// A failed cache write never blocks reading the live catalog.
			_ = db.SaveCatalog(site, cat.Posts)
		}
		return catalogLoadedMsg{cat: cat}
	}
}

// loadDocument fetches one post body, falling back to the cached copy when
// the source is unreachable.
func (a *App) loadDocument(post catalog.Post, gen uint64) tea.Cmd {
	src := a.src
	db := a.cache
	site := a.site
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), fetchTimeout)
		defer cancel()

		raw, err := src.Document(ctx, post.File)
		if err != nil {
			if db != nil {
				if body, ok, cacheErr := db.GetDocument(site, post.File); cacheErr == nil && ok {
					doc := markdown.ParseFrontMatter(body)
					return docLoadedMsg{gen: gen, post: enrich(post, doc), doc: doc, cached: true}
				}
			}
			return docErrMsg{gen: gen, post: post, err: err}
		}

		if db != nil {
			_ = db.PutDocument(site, post.File, string(raw))
		}
		doc := markdown.ParseFrontMatter(string(raw))
		return docLoadedMsg{gen: gen, post: enrich(post, doc), doc: doc}
	}
}

// enrich fills index gaps from the document itself: the title from front
// matter (or the filename), the excerpt from the body.
func enrich(post catalog.Post, doc markdown.Document) catalog.Post {
	if post.Title == "" {
		if t := doc.Meta["title"]; t != "" {
			post.Title = t
		} else {
			post.Title = strings.TrimSuffix(post.File, ".md")
		}
	}
	if post.Excerpt == "" {
		post.Excerpt = markdown.Excerpt(doc.Body, 200)
	}
	return post
}

// loadDiscussion asks the comment widget for the post's discussion.
func (a *App) loadDiscussion(post catalog.Post) tea.Cmd {
	w := a.widget
	mode := a.themes.Mode()
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		d, err := w.Load(ctx, post, mode)
		return discussionMsg{file: post.File, d: d, err: err}
	}
}
