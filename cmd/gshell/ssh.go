package main

import (
	"context"
	"errors"
	"fmt"
	"net"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/charmbracelet/ssh"
	"github.com/charmbracelet/wish"
	"github.com/charmbracelet/wish/bubbletea"

	"github.com/zlovtnik/gshell/cmd/gshell/ui"
	"github.com/zlovtnik/gshell/internal/config"
)

const shutdownTimeout = 30 * time.Second

// serveSSH serves one shell session per SSH connection until ctx is done or
// the process is interrupted.
func serveSSH(ctx context.Context, cfg *config.Config, logger *log.Logger) error {
	if dir := filepath.Dir(cfg.SSH.KeyPath); dir != "." {
		if err := os.MkdirAll(dir, 0o700); err != nil {
			return fmt.Errorf("create host key directory: %w", err)
		}
	}

	addr := net.JoinHostPort(cfg.SSH.Host, cfg.SSH.Port)
	s, err := wish.NewServer(
		wish.WithAddress(addr),
		wish.WithHostKeyPath(cfg.SSH.KeyPath),
		wish.WithMiddleware(
			bubbletea.Middleware(teaHandler(cfg, logger)),
			loggingMiddleware(logger),
		),
	)
	if err != nil {
		return fmt.Errorf("create SSH server: %w", err)
	}

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	errc := make(chan error, 1)
	logger.Info("starting SSH server", "addr", addr)
	go func() {
		if err := s.ListenAndServe(); err != nil && !errors.Is(err, ssh.ErrServerClosed) {
			errc <- err
		}
		close(errc)
	}()

	select {
	case err := <-errc:
		if err != nil {
			return fmt.Errorf("SSH server: %w", err)
		}
		return nil
	case <-ctx.Done():
	}
	logger.Info("shutting down SSH server")

	sctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := s.Shutdown(sctx); err != nil && !errors.Is(err, ssh.ErrServerClosed) {
		return fmt.Errorf("shutdown SSH server: %w", err)
	}
	return nil
}

// teaHandler builds an independent shell, with its own history, for each
// session.
func teaHandler(cfg *config.Config, logger *log.Logger) bubbletea.Handler {
	return func(s ssh.Session) (tea.Model, []tea.ProgramOption) {
		sessionLog := logger.With("user", s.User())
		m, err := newModel(cfg, sessionLog, s.User())
		if err != nil {
			sessionLog.Error("failed to create session", "err", err)
			return errorModel{err: err}, nil
		}
		if pty, _, ok := s.Pty(); ok {
			m.width = max(pty.Window.Width, ui.MinWidth)
			m.height = pty.Window.Height
		}
		return m, []tea.ProgramOption{tea.WithAltScreen()}
	}
}

// errorModel is a minimal model for displaying startup errors
type errorModel struct {
	err error
}

func (m errorModel) Init() tea.Cmd { return nil }
func (m errorModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if _, ok := msg.(tea.KeyMsg); ok {
		return m, tea.Quit
	}
	return m, nil
}
func (m errorModel) View() string {
	return fmt.Sprintf("\n  Error: %v\n\n  Press any key to exit.\n", m.err)
}

// loggingMiddleware logs SSH connections
func loggingMiddleware(logger *log.Logger) wish.Middleware {
	return func(next ssh.Handler) ssh.Handler {
		return func(s ssh.Session) {
			logger.Info("SSH session started",
				"user", s.User(),
				"remote", s.RemoteAddr().String(),
			)
			next(s)
			logger.Info("SSH session ended",
				"user", s.User(),
				"remote", s.RemoteAddr().String(),
			)
		}
	}
}
