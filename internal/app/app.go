// Package app provides the core application initialization and lifecycle management.
package app

import (
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/kbo-tools/kbolookup/internal/browser"
	"github.com/kbo-tools/kbolookup/internal/config"
	"github.com/kbo-tools/kbolookup/internal/ratelimit"
)

// Application holds all application dependencies and manages their lifecycle.
//
// It is created once at startup and shared across all CLI commands.
// Use Close() to ensure the browser is shut down on exit.
type Application struct {
	Config    *config.Config
	Logger    *zerolog.Logger
	Pacer     *ratelimit.Pacer
	session   *browser.Session
	sessionMu sync.Mutex
	startTime time.Time
}

// New creates and initializes a new Application. The browser session is not
// started here: only the lookup command needs one, and the normalize command
// should never launch Chrome.
func New(cfg *config.Config) (*Application, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config is required")
	}

	logLevel := zerolog.InfoLevel
	switch cfg.LogLevel {
	case "debug":
		logLevel = zerolog.DebugLevel
	case "warn":
		logLevel = zerolog.WarnLevel
	case "error":
		logLevel = zerolog.ErrorLevel
	}
	zerolog.SetGlobalLevel(logLevel)

	var logWriter io.Writer
	if cfg.JSONLog {
		logWriter = os.Stderr
	} else {
		logWriter = zerolog.NewConsoleWriter()
	}
	logger := log.Output(logWriter).With().Timestamp().Logger()
	log.Logger = logger

	logger.Debug().
		Str("level", cfg.LogLevel).
		Bool("json", cfg.JSONLog).
		Msg("Logger initialized")

	pacer := ratelimit.NewPacer(cfg.PaceDelay)
	logger.Debug().
		Dur("pace_delay", cfg.PaceDelay).
		Msg("Pacer initialized")

	return &Application{
		Config:    cfg,
		Logger:    &logger,
		Pacer:     pacer,
		startTime: time.Now(),
	}, nil
}

// EnsureSession lazily launches the shared browser session.
func (a *Application) EnsureSession() (*browser.Session, error) {
	a.sessionMu.Lock()
	defer a.sessionMu.Unlock()

	if a.session != nil {
		return a.session, nil
	}

	a.Logger.Debug().Msg("Starting browser session on demand")
	s, err := browser.NewSession(a.Config)
	if err != nil {
		return nil, err
	}
	a.session = s
	return s, nil
}

// Close shuts down the application: the browser session is the only resource
// with real teardown. Errors are logged, not propagated, so shutdown always
// completes.
func (a *Application) Close() {
	a.sessionMu.Lock()
	defer a.sessionMu.Unlock()

	if a.session != nil {
		if err := a.session.Close(); err != nil {
			a.Logger.Warn().Err(err).Msg("Error closing browser session")
		}
		a.session = nil
	}

	a.Logger.Debug().Dur("uptime", time.Since(a.startTime)).Msg("Application shutdown complete")
}
