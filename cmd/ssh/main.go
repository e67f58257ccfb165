package main

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"net"
	"os"
	"os/signal"
	"strings"
	"sync"
	"syscall"
	"time"

	"github.com/charmbracelet/log"
	"github.com/charmbracelet/ssh"
	"github.com/charmbracelet/wish"
	"github.com/charmbracelet/wish/activeterm"
	"github.com/charmbracelet/wish/logging"
	"github.com/muesli/termenv"

	"github.com/tomz197/portfolio/internal/app"
	"github.com/tomz197/portfolio/internal/audio"
	"github.com/tomz197/portfolio/internal/config"
	"github.com/tomz197/portfolio/internal/draw"
	lg "github.com/tomz197/portfolio/internal/logging"
	"github.com/tomz197/portfolio/internal/prefs"
)

func main() {
	configPath := flag.String("config", "", "path to a config file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "portfolio-ssh: %v\n", err)
		os.Exit(1)
	}
	logger := lg.New(os.Stderr, cfg.LogLevel)
	if err := run(cfg, logger); err != nil {
		logger.Fatal("server error", "err", err)
	}
}

func run(cfg *config.Config, logger *log.Logger) error {
	workingDir, err := os.Getwd()
	if err != nil {
		logger.Warn("Failed to get working directory", "err", err)
	}
	logger.Info("SSH config", "host", cfg.SSH.Host, "port", cfg.SSH.Port, "hostKey", cfg.SSH.HostKey, "workingDir", workingDir)

	// One store serves every visitor; owners keep their rows apart.
	store, err := app.OpenStore(cfg.Prefs, logger)
	if err != nil {
		return err
	}
	defer store.Close()

	serverCtx, cancelSessions := context.WithCancel(context.Background())
	defer cancelSessions()
	h := &handler{cfg: cfg, logger: logger, store: store, ctx: serverCtx}

	opts := []ssh.Option{
		wish.WithAddress(net.JoinHostPort(cfg.SSH.Host, cfg.SSH.Port)),
		wish.WithMiddleware(
			h.middleware,
			activeterm.Middleware(),
			logging.MiddlewareWithLogger(logger),
		),
		// Set TCP_NODELAY to reduce latency for pointer input
		ssh.WrapConn(func(ctx ssh.Context, conn net.Conn) net.Conn {
			if tcpConn, ok := conn.(*net.TCPConn); ok {
				_ = tcpConn.SetNoDelay(true)
			}
			return conn
		}),
	}
	if cfg.SSH.HostKey != "" {
		opts = append(opts, wish.WithHostKeyPath(cfg.SSH.HostKey))
	}

	s, err := wish.NewServer(opts...)
	if err != nil {
		return fmt.Errorf("failed to create server: %w", err)
	}

	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGINT, syscall.SIGTERM)

	errCh := make(chan error, 1)
	logger.Info("Starting SSH server", "addr", net.JoinHostPort(cfg.SSH.Host, cfg.SSH.Port))
	go func() {
		if err := s.ListenAndServe(); err != nil && !errors.Is(err, ssh.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case <-done:
	case err := <-errCh:
		return err
	}
	logger.Info("Shutting down server...")

	// End every session so visitors get their terminal back, then wait.
	cancelSessions()
	h.wait(15 * time.Second)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := s.Shutdown(ctx); err != nil {
		return fmt.Errorf("shutdown error: %w", err)
	}
	return nil
}

type handler struct {
	cfg      *config.Config
	logger   *log.Logger
	store    prefs.Store
	ctx      context.Context
	sessions sync.WaitGroup
}

// middleware runs one portfolio session per SSH session.
func (h *handler) middleware(next ssh.Handler) ssh.Handler {
	return func(sess ssh.Session) {
		pty, winCh, ok := sess.Pty()
		if !ok {
			fmt.Fprintln(sess, "Error: PTY required. Please connect with: ssh -t user@host")
			return
		}
		h.sessions.Add(1)
		defer h.sessions.Done()

		logger := h.logger.With("user", sess.User())
		logger.Info("New session", "terminal", pty.Term, "size", fmt.Sprintf("%dx%d", pty.Window.Width, pty.Window.Height))

		// Create a terminal size tracker that updates on window changes
		sizeTracker := newSizeTracker(pty.Window.Width, pty.Window.Height)
		go func() {
			for win := range winCh {
				sizeTracker.update(win.Width, win.Height)
			}
		}()

		ctx, cancel := context.WithCancel(sess.Context())
		defer cancel()
		stop := context.AfterFunc(h.ctx, cancel)
		defer stop()

		a := app.New(ctx, pty.Window.Width, pty.Window.Height, app.Options{
			Config:      h.cfg,
			Logger:      logger,
			Store:       h.store,
			Owner:       sess.User(),
			Player:      audio.NewBellPlayer(sess),
			TermSize:    sizeTracker.getSize,
			Profile:     colorProfile(pty.Term, sess.Environ()),
			IdleTimeout: h.cfg.SSH.IdleTimeout,
		})
		defer a.Close()

		if err := a.Run(ctx, bufio.NewReader(sess), sess); err != nil {
			logger.Error("Session error", "err", err)
		}
		logger.Info("Session ended")
		next(sess)
	}
}

// wait blocks until every session ended or d passed.
func (h *handler) wait(d time.Duration) {
	done := make(chan struct{})
	go func() {
		h.sessions.Wait()
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(d):
		h.logger.Warn("Sessions still open at shutdown")
	}
}

// colorProfile guesses the visitor's colour support from the PTY request.
func colorProfile(term string, environ []string) termenv.Profile {
	for _, kv := range environ {
		if kv == "COLORTERM=truecolor" || kv == "COLORTERM=24bit" {
			return termenv.TrueColor
		}
	}
	switch {
	case strings.Contains(term, "truecolor"), strings.Contains(term, "direct"):
		return termenv.TrueColor
	case strings.Contains(term, "256color"):
		return termenv.ANSI256
	case term == "" || term == "dumb":
		return termenv.Ascii
	default:
		return termenv.ANSI
	}
}

// sizeTracker tracks terminal size from SSH window change events.
type sizeTracker struct {
	mu     sync.RWMutex
	width  int
	height int
}

func newSizeTracker(width, height int) *sizeTracker {
	return &sizeTracker{width: width, height: height}
}

func (s *sizeTracker) update(width, height int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.width = width
	s.height = height
}

func (s *sizeTracker) getSize() (int, int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.width, s.height, nil
}

// Ensure sizeTracker.getSize satisfies draw.TermSizeFunc
var _ draw.TermSizeFunc = (*sizeTracker)(nil).getSize
