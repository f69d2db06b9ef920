// Package app wires the calculator engine to its configuration,
// logging, persistence, and the interactive prompt loop, and manages
// the session lifecycle.
package app

import (
	"io"
	"os"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/dshills/tally/internal/config"
	"github.com/dshills/tally/internal/config/loader"
	"github.com/dshills/tally/internal/engine/calculator"
	"github.com/dshills/tally/internal/persist"
)

// Options configures the application.
type Options struct {
	// ConfigPath is the path to the configuration file.
	ConfigPath string

	// LogLevel overrides the configured logging verbosity when non-empty.
	LogLevel string

	// Debug forces debug-level logging.
	Debug bool

	// Stdin and Stdout replace the process streams, mainly for tests.
	Stdin  io.Reader
	Stdout io.Writer
}

// Application is the central coordinator for a calculator session.
type Application struct {
	cfg    *config.Config
	logger *zap.Logger
	calc   *calculator.Calculator

	sessionID uuid.UUID

	// History file watching
	watcher        *persist.FileWatcher
	lastSave       atomic.Int64
	externalChange atomic.Bool

	in  io.Reader
	out io.Writer

	shutdownOnce sync.Once
}

// New creates an application: configuration is resolved, the logger and
// calculator constructed, and the standard observers registered.
func New(opts Options) (*Application, error) {
	cfg, err := loader.Load(opts.ConfigPath)
	if err != nil {
		return nil, &InitError{Component: "config", Err: err}
	}
	if opts.LogLevel != "" {
		cfg.LogLevel = opts.LogLevel
	}
	if opts.Debug {
		cfg.LogLevel = "debug"
	}
	if err := cfg.Validate(); err != nil {
		return nil, &InitError{Component: "config", Err: err}
	}

	logger, err := NewLogger(cfg.LogLevel, cfg.LogFile)
	if err != nil {
		return nil, &InitError{Component: "logger", Err: err}
	}

	app := &Application{
		cfg:       cfg,
		logger:    logger,
		sessionID: uuid.New(),
		in:        opts.Stdin,
		out:       opts.Stdout,
	}
	if app.in == nil {
		app.in = os.Stdin
	}
	if app.out == nil {
		app.out = os.Stdout
	}

	app.calc = calculator.New(cfg, calculator.WithLogger(logger))
	app.calc.Observe(NewLoggingObserver(logger.Named("observer")))
	if cfg.AutoSave {
		app.calc.Observe(NewAutoSaveObserver(cfg.HistoryFile, app.calc, app.markSaved))
	}

	// Watch the history file so external edits can be surfaced.
	// A watcher failure degrades the feature, not the session.
	watcher, err := persist.WatchFile(cfg.HistoryFile)
	if err != nil {
		logger.Warn("history watcher unavailable", zap.Error(err))
	} else {
		app.watcher = watcher
		go app.watchHistoryFile()
	}

	logger.Info("session started",
		zap.String("session_id", app.sessionID.String()),
		zap.Int("precision", cfg.Precision),
		zap.Int("max_history_size", cfg.MaxHistorySize),
		zap.Bool("auto_save", cfg.AutoSave))

	return app, nil
}

// Calculator exposes the engine facade.
func (app *Application) Calculator() *calculator.Calculator {
	return app.calc
}

// Config returns the resolved configuration.
func (app *Application) Config() *config.Config {
	return app.cfg
}

// Shutdown flushes state on exit: the history is saved when auto-save
// is enabled and the watcher and logger are released. Safe to call more
// than once.
func (app *Application) Shutdown() {
	app.shutdownOnce.Do(func() {
		if app.cfg.AutoSave {
			if err := persist.Save(app.cfg.HistoryFile, app.calc.ExportRecords()); err != nil {
				app.logger.Error("saving history on exit", zap.Error(err))
			}
		}
		if app.watcher != nil {
			app.watcher.Close()
		}
		app.logger.Info("session ended", zap.String("session_id", app.sessionID.String()))
		_ = app.logger.Sync()
	})
}

// markSaved records that this process just wrote the history file.
func (app *Application) markSaved() {
	app.lastSave.Store(time.Now().UnixNano())
}

// watchHistoryFile flags history file changes that this process did not
// cause. Events within two seconds of our own save are ours: the atomic
// rename shows up as a create in the watched directory.
func (app *Application) watchHistoryFile() {
	for {
		select {
		case ev, ok := <-app.watcher.Events():
			if !ok {
				return
			}
			last := time.Unix(0, app.lastSave.Load())
			if ev.Time.Sub(last) < 2*time.Second {
				continue
			}
			app.externalChange.Store(true)
			app.logger.Info("history file changed on disk", zap.String("path", ev.Path))

		case err, ok := <-app.watcher.Errors():
			if !ok {
				return
			}
			app.logger.Warn("history watcher error", zap.Error(err))
		}
	}
}
