package runtimeconfig

import (
	"errors"
	"fmt"
	"path/filepath"
	"strconv"
	"strings"
)

var ErrContentDirRequired = errors.New("parks config: content directory is required")
var ErrPatternInvalid = errors.New("parks config: file pattern is invalid")
var ErrStorageDriverUnknown = errors.New("parks config: storage driver is invalid")
var ErrStorageDSNRequired = errors.New("parks config: storage dsn is required")
var ErrLoggingProviderRequired = errors.New("parks config: logging provider is required")
var ErrLoggingProviderUnknown = errors.New("parks config: logging provider is invalid")
var ErrLoggingLevelInvalid = errors.New("parks config: logging level is invalid")
var ErrLoggingFormatInvalid = errors.New("parks config: logging format is invalid")
var ErrLogFileRequired = errors.New("parks config: log file is required")

// ErrEnvValueInvalid is returned by ApplyEnv for values that do not parse.
var ErrEnvValueInvalid = errors.New("parks config: environment value is invalid")

// Config aggregates everything the importer needs at runtime.
type Config struct {
	Markdown MarkdownConfig
	Storage  StorageConfig
	Logging  LoggingConfig
	DryRun   bool
}

// MarkdownConfig captures discovery and parser behaviour.
type MarkdownConfig struct {
	ContentDir string
	Pattern    string
	Recursive  bool
	// Extensions names extra goldmark extensions; tables are always enabled.
	Extensions []string
}

// StorageConfig selects the database backend.
type StorageConfig struct {
	Driver string
	DSN    string
}

// LoggingConfig captures provider-specific options for runtime logging.
type LoggingConfig struct {
	Provider  string
	Level     string
	Format    string
	AddSource bool
	Focus     []string
	Dir       string
	File      string
}

// LogPath joins Dir and File.
func (l LoggingConfig) LogPath() string {
	return filepath.Join(l.Dir, l.File)
}

// DefaultConfig returns the defaults of the command line importer.
func DefaultConfig() Config {
	return Config{
		Markdown: MarkdownConfig{
			ContentDir: filepath.Join("assets", "Parks"),
			Pattern:    "*.md",
			Recursive:  true,
		},
		Storage: StorageConfig{
			Driver: "sqlite",
			DSN:    "national_parks.db",
		},
		Logging: LoggingConfig{
			Provider: "console",
			Level:    "info",
			Format:   "",
			Dir:      "logs",
			File:     "processing.log",
		},
	}
}

// Validate performs high-level consistency checks.
func (cfg Config) Validate() error {
	if strings.TrimSpace(cfg.Markdown.ContentDir) == "" {
		return ErrContentDirRequired
	}
	if pattern := strings.TrimSpace(cfg.Markdown.Pattern); pattern != "" {
		if _, err := filepath.Match(pattern, "guide.md"); err != nil {
			return fmt.Errorf("%w: %s", ErrPatternInvalid, pattern)
		}
	}
	if driver := normalizeDriver(cfg.Storage.Driver); !isSupportedDriver(driver) {
		return fmt.Errorf("%w: %s", ErrStorageDriverUnknown, driver)
	}
	if strings.TrimSpace(cfg.Storage.DSN) == "" {
		return ErrStorageDSNRequired
	}

	provider := normalizeProvider(cfg.Logging.Provider)
	if provider == "" {
		return ErrLoggingProviderRequired
	}
	if !isSupportedProvider(provider) {
		return fmt.Errorf("%w: %s", ErrLoggingProviderUnknown, provider)
	}
	if level := strings.TrimSpace(cfg.Logging.Level); level != "" && !isSupportedLevel(level) {
		return fmt.Errorf("%w: %s", ErrLoggingLevelInvalid, level)
	}
	if format := strings.TrimSpace(cfg.Logging.Format); format != "" && !isSupportedFormat(provider, format) {
		return fmt.Errorf("%w: %s", ErrLoggingFormatInvalid, format)
	}
	if strings.TrimSpace(cfg.Logging.File) == "" {
		return ErrLogFileRequired
	}
	return nil
}

// ApplyEnv overlays PARKS_* variables read through lookup, typically
// os.LookupEnv. Unset variables leave the field untouched.
func (cfg *Config) ApplyEnv(lookup func(string) (string, bool)) error {
	if lookup == nil {
		return nil
	}
	str := func(key string, dst *string) {
		if value, ok := lookup(key); ok {
			*dst = strings.TrimSpace(value)
		}
	}
	list := func(key string, dst *[]string) {
		if value, ok := lookup(key); ok {
			*dst = splitList(value)
		}
	}
	var errs []error
	boolean := func(key string, dst *bool) {
		value, ok := lookup(key)
		if !ok || strings.TrimSpace(value) == "" {
			return
		}
		parsed, err := strconv.ParseBool(strings.TrimSpace(value))
		if err != nil {
			errs = append(errs, fmt.Errorf("%w: %s=%q", ErrEnvValueInvalid, key, value))
			return
		}
		*dst = parsed
	}

	str("PARKS_CONTENT_DIR", &cfg.Markdown.ContentDir)
	str("PARKS_PATTERN", &cfg.Markdown.Pattern)
	boolean("PARKS_RECURSIVE", &cfg.Markdown.Recursive)
	list("PARKS_MARKDOWN_EXTENSIONS", &cfg.Markdown.Extensions)
	str("PARKS_DB_DRIVER", &cfg.Storage.Driver)
	str("PARKS_DB_DSN", &cfg.Storage.DSN)
	str("PARKS_LOG_PROVIDER", &cfg.Logging.Provider)
	str("PARKS_LOG_LEVEL", &cfg.Logging.Level)
	str("PARKS_LOG_FORMAT", &cfg.Logging.Format)
	boolean("PARKS_LOG_ADD_SOURCE", &cfg.Logging.AddSource)
	list("PARKS_LOG_FOCUS", &cfg.Logging.Focus)
	str("PARKS_LOG_DIR", &cfg.Logging.Dir)
	str("PARKS_LOG_FILE", &cfg.Logging.File)
	boolean("PARKS_DRY_RUN", &cfg.DryRun)

	return errors.Join(errs...)
}

func splitList(value string) []string {
	var out []string
	for _, part := range strings.Split(value, ",") {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

func normalizeDriver(driver string) string {
	return strings.ToLower(strings.TrimSpace(driver))
}

func isSupportedDriver(driver string) bool {
	switch driver {
	case "", "sqlite", "sqlite3", "postgres", "postgresql", "pg":
		return true
	default:
		return false
	}
}

func normalizeProvider(provider string) string {
	return strings.ToLower(strings.TrimSpace(provider))
}

func isSupportedProvider(provider string) bool {
	switch provider {
	case "console", "gologger":
		return true
	default:
		return false
	}
}

func isSupportedLevel(level string) bool {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "trace", "debug", "info", "warn", "warning", "error", "fatal":
		return true
	default:
		return false
	}
}

func isSupportedFormat(provider, format string) bool {
	format = strings.ToLower(strings.TrimSpace(format))
	if provider == "console" {
		return format == "full" || format == "compact"
	}
	switch format {
	case "json", "console", "pretty":
		return true
	default:
		return false
	}
}
