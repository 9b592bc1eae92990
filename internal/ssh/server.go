package ssh

import (
	"errors"
	"fmt"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/charmbracelet/ssh"
	"github.com/charmbracelet/wish"
	"github.com/charmbracelet/wish/activeterm"
	bts "github.com/charmbracelet/wish/bubbletea"
	"github.com/charmbracelet/wish/logging"
	"github.com/muesli/termenv"

	"plume/internal/cache"
	"plume/internal/config"
	"plume/internal/source"
)

// Server exposes the reader over SSH, so a blog can be browsed with nothing
// but an ssh client.
type Server struct {
	server *ssh.Server
}

// New creates the SSH server for a blog source.
func New(cfg config.Config, src source.Source, db *cache.DB) (*Server, error) {
	hostKeyPath := filepath.Join(config.DataDir(), "ssh_host_key")

	s, err := wish.NewServer(
		wish.WithAddress(cfg.Listen),
		wish.WithHostKeyPath(hostKeyPath),
		wish.WithMiddleware(
			logging.MiddlewareWithLogger(log.Default()),
			activeterm.Middleware(),
			bts.MiddlewareWithProgramHandler(NewProgramHandler(cfg, src, db), termenv.ANSI256),
		),
	)
	if err != nil {
		return nil, fmt.Errorf("create ssh server: %w", err)
	}

	return &Server{server: s}, nil
}

// ListenAndServe starts the SSH server. A clean shutdown via Close is not an
// error.
func (s *Server) ListenAndServe() error {
	if err := s.server.ListenAndServe(); err != nil && !errors.Is(err, ssh.ErrServerClosed) {
		return err
	}
	return nil
}

// Close stops the SSH server.
func (s *Server) Close() error {
	return s.server.Close()
}
