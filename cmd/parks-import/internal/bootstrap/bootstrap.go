package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/goliatone/go-parks/internal/importer"
	"github.com/goliatone/go-parks/internal/logging"
	"github.com/goliatone/go-parks/internal/logging/console"
	"github.com/goliatone/go-parks/internal/logging/gologger"
	"github.com/goliatone/go-parks/internal/markdown"
	"github.com/goliatone/go-parks/internal/parks"
	"github.com/goliatone/go-parks/internal/runtimeconfig"
	"github.com/goliatone/go-parks/internal/storage"
	"github.com/goliatone/go-parks/internal/validation"
	"github.com/goliatone/go-parks/pkg/interfaces"
	"github.com/uptrace/bun"
)

// Options captures configuration for the importer CLI bootstrap.
type Options struct {
	Config runtimeconfig.Config
	// Terminal receives the console mirror of the log. Nil disables it. The
	// gologger provider ignores it and writes to go-logger's own output.
	Terminal io.Writer
}

// Module holds the wired import service and the resources it owns.
type Module struct {
	Service  *importer.Service
	Provider interfaces.LoggerProvider
	Logger   interfaces.Logger
	// LogPath is the absolute path of the log file written by this run.
	LogPath string
	DB      *bun.DB

	closers []func() error
}

// Close releases the database and the log file.
func (m *Module) Close() error {
	if m == nil {
		return nil
	}
	var errs []error
	for i := len(m.closers) - 1; i >= 0; i-- {
		if err := m.closers[i](); err != nil {
			errs = append(errs, err)
		}
	}
	m.closers = nil
	return errors.Join(errs...)
}

// BuildModule opens the log file, the database and the schema, then wires the
// import pipeline. Dry runs never open the database.
func BuildModule(ctx context.Context, opts Options) (*Module, error) {
	cfg := opts.Config
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	module := &Module{}
	logFile, logPath, err := openLogFile(cfg.Logging)
	if err != nil {
		return nil, err
	}
	module.LogPath = logPath
	module.closers = append(module.closers, logFile.Close)

	provider, err := newLoggerProvider(cfg.Logging, logFile, opts.Terminal)
	if err != nil {
		_ = module.Close()
		return nil, err
	}
	module.Provider = provider
	module.Logger = logging.ImporterLogger(provider)

	var store importer.ParkStore
	if !cfg.DryRun {
		db, err := storage.Open(ctx, storage.Config{Driver: cfg.Storage.Driver, DSN: cfg.Storage.DSN})
		if err != nil {
			module.Logger.Error("bootstrap.database.open_failed", "error", err)
			_ = module.Close()
			return nil, fmt.Errorf("open database: %w", err)
		}
		module.DB = db
		module.closers = append(module.closers, db.Close)

		if err := storage.EnsureSchema(ctx, db); err != nil {
			module.Logger.Error("bootstrap.schema.failed", "error", err)
			_ = module.Close()
			return nil, fmt.Errorf("ensure schema: %w", err)
		}
		store = storage.NewParkRepository(db, storage.WithLogger(logging.StorageLogger(provider)))
	}

	validator, err := validation.NewDetailValidator()
	if err != nil {
		_ = module.Close()
		return nil, err
	}

	module.Service = importer.NewService(store,
		importer.WithLogger(module.Logger),
		importer.WithParser(markdown.NewGoldmarkParser(markdown.ParseOptions{
			Extensions: cfg.Markdown.Extensions,
		})),
		importer.WithExtractor(parks.NewExtractor(logging.ExtractorLogger(provider))),
		importer.WithValidator(validator),
		importer.WithLoaderConfig(markdown.LoaderConfig{
			Pattern:   cfg.Markdown.Pattern,
			Recursive: cfg.Markdown.Recursive,
		}),
		importer.WithDryRun(cfg.DryRun),
	)

	module.Logger.Info("bootstrap.ready",
		"driver", storage.NormalizeDriver(cfg.Storage.Driver),
		"dsn", redactDSN(cfg.Storage.DSN),
		"log_file", logPath,
		"dry_run", cfg.DryRun,
	)
	return module, nil
}

// openLogFile truncates the log file so each run starts clean.
func openLogFile(cfg runtimeconfig.LoggingConfig) (*os.File, string, error) {
	path, err := filepath.Abs(cfg.LogPath())
	if err != nil {
		return nil, "", fmt.Errorf("resolve log path: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, "", fmt.Errorf("create log directory: %w", err)
	}
	file, err := os.Create(path)
	if err != nil {
		return nil, "", fmt.Errorf("open log file: %w", err)
	}
	return file, path, nil
}

func newLoggerProvider(cfg runtimeconfig.LoggingConfig, file io.Writer, terminal io.Writer) (interfaces.LoggerProvider, error) {
	level, ok := console.ParseLevel(cfg.Level)
	if !ok {
		level = console.LevelInfo
	}
	providers := []interfaces.LoggerProvider{
		console.NewProvider(console.Options{Writer: file, MinLevel: &level}),
	}
	if terminal == nil {
		return logging.Tee(providers...), nil
	}

	switch strings.ToLower(strings.TrimSpace(cfg.Provider)) {
	case "gologger":
		// go-logger writes to its own output; terminal is not used.
		provider, err := gologger.NewProvider(gologger.Config{
			Level:     cfg.Level,
			Format:    cfg.Format,
			AddSource: cfg.AddSource,
			Focus:     cfg.Focus,
		})
		if err != nil {
			return nil, err
		}
		providers = append(providers, provider)
	default:
		providers = append(providers, console.NewProvider(console.Options{
			Writer:   terminal,
			MinLevel: &level,
			Compact:  !strings.EqualFold(strings.TrimSpace(cfg.Format), "full"),
		}))
	}
	return logging.Tee(providers...), nil
}

func redactDSN(dsn string) string {
	at := strings.LastIndex(dsn, "@")
	scheme := strings.Index(dsn, "://")
	if at < 0 || scheme < 0 || at < scheme {
		return dsn
	}
	return dsn[:scheme+3] + "***" + dsn[at:]
}
