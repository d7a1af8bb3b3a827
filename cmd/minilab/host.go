package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/muesli/termenv"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-minilab/internal/config"
	"github.com/vovakirdan/tui-minilab/internal/platform/tui"
	"github.com/vovakirdan/tui-minilab/internal/render"
	"github.com/vovakirdan/tui-minilab/internal/session"
	"github.com/vovakirdan/tui-minilab/internal/storage"
)

var errNoTerminal = errors.New("stdout is not a terminal")

// expandHome replaces a leading ~ with the home directory.
func expandHome(path string) string {
	if !strings.HasPrefix(path, "~") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, path[1:])
}

// resolveTier picks the tier from --age when set, otherwise from --tier.
func resolveTier(th config.Thresholds) (config.Tier, error) {
	if flagAge > 0 {
		return config.TierFromAttribute(flagAge, th), nil
	}
	return config.TierForPreset(flagTier)
}

// terminalSize returns the size of stdout, or 80x24 when unknown.
func terminalSize() (int, int) {
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		return w, h
	}
	return 80, 24
}

// setupFileLogging sends logs to --log-file so they never draw over the
// game. The returned func closes the file.
func setupFileLogging() (*log.Logger, func(), error) {
	level, err := log.ParseLevel(flagLogLevel)
	if err != nil {
		return nil, nil, fmt.Errorf("log level: %w", err)
	}

	path := expandHome(flagLogFile)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, nil, fmt.Errorf("create log directory: %w", err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
	if err != nil {
		return nil, nil, fmt.Errorf("open log file: %w", err)
	}

	logger := log.NewWithOptions(f, log.Options{
		ReportTimestamp: true,
		Prefix:          "minilab",
		Level:           level,
	})
	// Package-level logging (renderer downgrades) must not hit the screen either.
	log.SetDefault(logger)
	return logger, func() { f.Close() }, nil
}

// newLocalHost wires configuration, storage, logging and a session manager
// for the local terminal.
func newLocalHost() (*tui.Host, func(), error) {
	if !term.IsTerminal(int(os.Stdout.Fd())) {
		return nil, nil, errNoTerminal
	}

	logger, closeLog, err := setupFileLogging()
	if err != nil {
		return nil, nil, err
	}

	cfg, err := config.Load(flagConfig)
	if err != nil {
		closeLog()
		return nil, nil, err
	}
	tier, err := resolveTier(cfg.Thresholds)
	if err != nil {
		closeLog()
		return nil, nil, err
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open results database: %v\n", err)
		logger.Warn("open results database", "err", err)
		store = nil
	}

	env := render.Probe(render.ProbeOptions{
		LowMemoryMB: cfg.Session.LowMemoryMB,
		Profile:     termenv.EnvColorProfile(),
	})
	if !env.Stable() {
		logger.Info("unstable terminal", "term", env.Term, "reason", env.Reason())
	}

	builder := config.NewBuilder(cfg.Tables)
	manager := session.NewManager(session.Options{
		Settings: cfg.Session,
		Builder:  &builder,
		Env:      env,
		Logger:   logger,
		Hooks: session.Hooks{
			OnResult: tui.ResultRecorder(store, logger),
		},
		TickRate: flagFPS,
	})

	width, height := terminalSize()
	host := &tui.Host{
		Manager:  manager,
		Store:    store,
		Logger:   logger,
		Tier:     tier,
		Seed:     flagSeed,
		TickRate: flagFPS,
		Width:    width,
		Height:   height,
	}

	cleanup := func() {
		if store != nil {
			store.Close()
		}
		closeLog()
	}
	return host, cleanup, nil
}
