package ssh

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/ssh"
	bts "github.com/charmbracelet/wish/bubbletea"

	"plume/internal/cache"
	"plume/internal/comments"
	"plume/internal/config"
	"plume/internal/source"
	"plume/internal/ui"
)

// NewProgramHandler builds a per-session Bubble Tea program. Sessions share
// the blog source and the offline cache; each gets its own app and comment
// widget. The app needs its program handle for the debouncer and the file
// watcher, which is why this is a ProgramHandler rather than a plain Handler.
func NewProgramHandler(cfg config.Config, src source.Source, db *cache.DB) bts.ProgramHandler {
	return func(sess ssh.Session) *tea.Program {
		widget := comments.New(comments.Config{
			Endpoint: cfg.CommentsAPI,
			Repo:     cfg.CommentsRepo,
			Mapping:  cfg.CommentsMapping,
			Lang:     cfg.CommentsLang,
		})

		// Remote sessions don't persist reader state on the server, and
		// the background color has to come from the client's terminal,
		// not the server's stdout.
		renderer := bts.MakeRenderer(sess)
		a := ui.New(cfg, src, db, nil, widget, renderer.HasDarkBackground)

		opts := append([]tea.ProgramOption{tea.WithAltScreen()}, bts.MakeOptions(sess)...)
		p := tea.NewProgram(a, opts...)
		a.SetProgram(p)

		// Sessions can end without a quit key (dropped connection, closed
		// terminal); release the session's watcher either way.
		go func() {
			p.Wait()
			a.Close()
		}()

		return p
	}
}
