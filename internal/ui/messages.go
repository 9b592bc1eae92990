package ui

import (
	"plume/internal/catalog"
	"plume/internal/comments"
	"plume/internal/markdown"
)

// catalogLoadedMsg carries a fully loaded catalog. fromCache is set when the
// source was unreachable and the offline copy stepped in.
type catalogLoadedMsg struct {
	cat       *catalog.Catalog
	fromCache bool
}

// catalogErrMsg means the index could not be loaded from the source or the
// cache. No catalog state exists after this message.
type catalogErrMsg struct{ err error }

// docLoadedMsg carries a fetched and parsed post document. gen ties the
// result to the request that started it so stale fetches are dropped.
type docLoadedMsg struct {
	gen    uint64
	post   catalog.Post
	doc    markdown.Document
	cached bool
}

// docErrMsg reports a failed document fetch. Recoverable: shown inline in the
// detail panel.
type docErrMsg struct {
	gen  uint64
	post catalog.Post
	err  error
}

// searchFiredMsg is sent by the debouncer when a search query survives the
// quiet window (or was flushed).
type searchFiredMsg struct{ query string }

// discussionMsg carries the comment widget's answer for a post.
type discussionMsg struct {
	file string
	d    comments.Discussion
	err  error
}

// sourceChangedMsg is sent by the directory watcher when blog content
// changed on disk.
type sourceChangedMsg struct{}
