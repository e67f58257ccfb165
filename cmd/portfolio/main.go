package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/muesli/termenv"
	"golang.org/x/term"

	"github.com/tomz197/portfolio/internal/app"
	"github.com/tomz197/portfolio/internal/audio"
	"github.com/tomz197/portfolio/internal/config"
	"github.com/tomz197/portfolio/internal/draw"
	"github.com/tomz197/portfolio/internal/logging"
)

func main() {
	configPath := flag.String("config", "", "path to a config file")
	flag.Parse()

	if err := run(*configPath); err != nil {
		fmt.Fprintf(os.Stderr, "portfolio: %v\n", err)
		os.Exit(1)
	}
}

func run(configPath string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}

	// The terminal is the display, so logs go to a file.
	logFile, err := logging.OpenFile(cfg.LogFile)
	if err != nil {
		return err
	}
	defer logFile.Close()
	logger := logging.New(logFile, cfg.LogLevel)

	store, err := app.OpenStore(cfg.Prefs, logger)
	if err != nil {
		return err
	}
	defer store.Close()

	var player audio.Player = audio.Nop{}
	if cfg.Audio {
		sp := audio.NewSpeakerPlayer(logger)
		defer sp.Close()
		player = sp
	}

	fd := int(os.Stdin.Fd())
	oldState, err := term.MakeRaw(fd)
	if err != nil {
		return fmt.Errorf("failed to enable raw mode: %w", err)
	}
	defer func() {
		_ = term.Restore(fd, oldState)
	}()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cols, rows, err := draw.DefaultTermSizeFunc()
	if err != nil {
		cols, rows = 80, 24
	}
	a := app.New(ctx, cols, rows, app.Options{
		Config:   cfg,
		Logger:   logger,
		Store:    store,
		Owner:    owner(),
		Player:   player,
		TermSize: draw.DefaultTermSizeFunc,
		Profile:  termenv.EnvColorProfile(),
	})
	defer a.Close()

	if err := a.Run(ctx, os.Stdin, os.Stdout); err != nil {
		logger.Error("session failed", "err", err)
		return err
	}
	return nil
}

func owner() string {
	if u := os.Getenv("USER"); u != "" {
		return u
	}
	return "local"
}
