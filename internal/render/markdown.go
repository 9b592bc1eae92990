// Package render projects markdown bodies into terminal output through
// glamour. Syntax highlighting comes with the glamour styles; when a renderer
// cannot be built or fails, a minimal plain-text fallback keeps the panel
// readable instead of blank.
package render

import (
	"strconv"
	"strings"
	"sync"

	"github.com/charmbracelet/glamour"

	"plume/internal/theme"
)

var (
	rendererMu sync.Mutex
	// Cache renderers by wrap width + style. Building one is not free, and
	// WithAutoStyle can block on terminal queries, so styles are always
	// passed in explicitly from the theme controller.
	renderers = map[string]*glamour.TermRenderer{}
)

// Markdown renders a post body for the given theme mode, word-wrapped to
// width. Falls back to Plain on any renderer failure.
func Markdown(body string, mode theme.Mode, width int) string {
	body = strings.TrimSpace(body)
	if body == "" {
		return ""
	}
	if width < 10 {
		width = 10
	}

	style := mode.GlamourStyle()
	key := style + ":" + strconv.Itoa(width)

	rendererMu.Lock()
	r := renderers[key]
	if r == nil {
		rr, err := glamour.NewTermRenderer(
			glamour.WithStandardStyle(style),
			glamour.WithWordWrap(width),
		)
		if err != nil {
			rendererMu.Unlock()
			return Plain(body)
		}
		renderers[key] = rr
		r = rr
	}
	rendererMu.Unlock()

	out, err := r.Render(body)
	if err != nil {
		return Plain(body)
	}
	return strings.TrimRight(out, "\n")
}

// Plain is the minimal fallback when no markdown renderer is available:
// angle brackets are escaped and newlines pass through unchanged.
func Plain(body string) string {
	body = strings.ReplaceAll(body, "<", "&lt;")
	return strings.ReplaceAll(body, ">", "&gt;")
}
