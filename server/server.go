// ABOUTME: SSH server hosting one independent showreel TUI per session
// ABOUTME: Sessions share the catalog and the live config but never engine state

// Package server serves the showreel over SSH with wish. Each session runs its own Bubble Tea
// program, frame clock and carousels; the configuration is shared and reloaded from disk.
package server

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/ssh"
	"github.com/charmbracelet/wish"
	"github.com/charmbracelet/wish/activeterm"
	bm "github.com/charmbracelet/wish/bubbletea"
	"github.com/charmbracelet/wish/logging"
	"go.uber.org/zap"

	"showreel/config"
	"showreel/media"
	"showreel/tui"
)

// Server wires config, catalog and middleware into a wish SSH server
type Server struct {
	cfg        config.ServerConfig
	shared     *config.SharedConfig
	configPath string
	catalog    media.Catalog
	log        *zap.Logger
	ssh        *ssh.Server
	sessions   atomic.Int64
}

// New creates a server listening on the configured address
func New(shared *config.SharedConfig, configPath string, catalog media.Catalog, log *zap.Logger) (*Server, error) {
	if err := catalog.Validate(); err != nil {
		return nil, fmt.Errorf("failed to create server: %w", err)
	}

	if log == nil {
		log = zap.NewNop()
	}

	s := &Server{
		cfg:        shared.Get().Server,
		shared:     shared,
		configPath: configPath,
		catalog:    catalog,
		log:        log,
	}

	// Middleware runs last to first: logging wraps the terminal check, which wraps the program
	sshServer, err := wish.NewServer(
		wish.WithAddress(s.cfg.Address()),
		wish.WithHostKeyPath(s.cfg.HostKeyPath),
		wish.WithIdleTimeout(s.cfg.IdleTimeoutDuration()),
		wish.WithMiddleware(
			bm.Middleware(s.handler),
			activeterm.Middleware(),
			logging.Middleware(),
		),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create SSH server: %w", err)
	}

	s.ssh = sshServer

	return s, nil
}

// Address returns the configured listen address
func (s *Server) Address() string {
	return s.ssh.Addr
}

// Sessions returns the number of open sessions
func (s *Server) Sessions() int64 {
	return s.sessions.Load()
}

// Run serves until ctx is cancelled. The config file is watched for the whole run.
func (s *Server) Run(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	watchDone := make(chan struct{})

	go func() {
		defer close(watchDone)

		if err := watchConfig(ctx, s.configPath, s.shared, s.log); err != nil {
			s.log.Warn("config watcher stopped", zap.Error(err))
		}
	}()

	shutdownDone := make(chan struct{})

	go func() {
		defer close(shutdownDone)

		<-ctx.Done()

		if err := s.ssh.Shutdown(context.Background()); err != nil {
			s.log.Warn("SSH shutdown failed", zap.Error(err))
		}
	}()

	s.log.Info("serving showreel over SSH",
		zap.String("address", s.Address()),
		zap.String("host_key_path", s.cfg.HostKeyPath),
		zap.Duration("idle_timeout", s.cfg.IdleTimeoutDuration()),
		zap.Int("rows", len(s.catalog.Rows)))

	err := s.ssh.ListenAndServe()

	cancel()
	<-watchDone
	<-shutdownDone

	if err == nil || errors.Is(err, ssh.ErrServerClosed) {
		return nil
	}

	return fmt.Errorf("failed to serve: %w", err)
}

// handler creates the per-session model
func (s *Server) handler(sess ssh.Session) (tea.Model, []tea.ProgramOption) {
	log := s.log.With(zap.String("user", sess.User()), zap.String("remote", sess.RemoteAddr().String()))

	open := s.sessions.Add(1)
	log.Info("session started", zap.Int64("sessions", open))

	go func() {
		<-sess.Context().Done()
		log.Info("session ended", zap.Int64("sessions", s.sessions.Add(-1)))
	}()

	m, err := tui.NewModel(tui.Options{Catalog: s.catalog}, tui.Dependencies{
		Config:     s.shared,
		ConfigPath: s.configPath,
		Logger:     log,
	})
	if err != nil {
		log.Error("failed to create session model", zap.Error(err))
		_, _ = fmt.Fprintf(sess, "showreel unavailable: %v\n", err)

		return nil, nil
	}

	return m, []tea.ProgramOption{tea.WithAltScreen(), tea.WithMouseAllMotion()}
}
