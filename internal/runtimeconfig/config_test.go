package runtimeconfig_test

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/goliatone/go-parks/internal/runtimeconfig"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig_IsValid(t *testing.T) {
	cfg := runtimeconfig.DefaultConfig()

	if err := cfg.Validate(); err != nil {
		t.Fatalf("Validate() returned unexpected error: %v", err)
	}
	assert.Equal(t, filepath.Join("assets", "Parks"), cfg.Markdown.ContentDir)
	assert.Equal(t, "national_parks.db", cfg.Storage.DSN)
	assert.Equal(t, filepath.Join("logs", "processing.log"), cfg.Logging.LogPath())
	assert.True(t, cfg.Markdown.Recursive)
}

func TestConfigValidate_RequiresContentDir(t *testing.T) {
	cfg := runtimeconfig.DefaultConfig()
	cfg.Markdown.ContentDir = " "

	err := cfg.Validate()
	if !errors.Is(err, runtimeconfig.ErrContentDirRequired) {
		t.Fatalf("expected ErrContentDirRequired, got %v", err)
	}
}

func TestConfigValidate_RejectsBadPattern(t *testing.T) {
	cfg := runtimeconfig.DefaultConfig()
	cfg.Markdown.Pattern = "[*.md"

	err := cfg.Validate()
	if !errors.Is(err, runtimeconfig.ErrPatternInvalid) {
		t.Fatalf("expected ErrPatternInvalid, got %v", err)
	}
}

func TestConfigValidate_Storage(t *testing.T) {
	cfg := runtimeconfig.DefaultConfig()
	cfg.Storage.Driver = "mysql"
	if err := cfg.Validate(); !errors.Is(err, runtimeconfig.ErrStorageDriverUnknown) {
		t.Fatalf("expected ErrStorageDriverUnknown, got %v", err)
	}

	cfg = runtimeconfig.DefaultConfig()
	cfg.Storage.Driver = "postgres"
	cfg.Storage.DSN = ""
	if err := cfg.Validate(); !errors.Is(err, runtimeconfig.ErrStorageDSNRequired) {
		t.Fatalf("expected ErrStorageDSNRequired, got %v", err)
	}
}

func TestConfigValidate_RequiresLoggingProvider(t *testing.T) {
	cfg := runtimeconfig.DefaultConfig()
	cfg.Logging.Provider = ""

	err := cfg.Validate()
	if !errors.Is(err, runtimeconfig.ErrLoggingProviderRequired) {
		t.Fatalf("expected ErrLoggingProviderRequired, got %v", err)
	}
}

func TestConfigValidate_RejectsUnknownLoggingProvider(t *testing.T) {
	cfg := runtimeconfig.DefaultConfig()
	cfg.Logging.Provider = "syslog"

	err := cfg.Validate()
	if !errors.Is(err, runtimeconfig.ErrLoggingProviderUnknown) {
		t.Fatalf("expected ErrLoggingProviderUnknown, got %v", err)
	}
}

func TestConfigValidate_LoggingFormatDependsOnProvider(t *testing.T) {
	cfg := runtimeconfig.DefaultConfig()
	cfg.Logging.Provider = "gologger"
	cfg.Logging.Format = "xml"
	if err := cfg.Validate(); !errors.Is(err, runtimeconfig.ErrLoggingFormatInvalid) {
		t.Fatalf("expected ErrLoggingFormatInvalid, got %v", err)
	}

	cfg.Logging.Format = "json"
	if err := cfg.Validate(); err != nil {
		t.Fatalf("expected json accepted for gologger, got %v", err)
	}

	cfg.Logging.Provider = "console"
	if err := cfg.Validate(); !errors.Is(err, runtimeconfig.ErrLoggingFormatInvalid) {
		t.Fatalf("expected json rejected for console, got %v", err)
	}

	cfg.Logging.Format = "compact"
	if err := cfg.Validate(); err != nil {
		t.Fatalf("expected compact accepted for console, got %v", err)
	}
}

func TestConfigValidate_RejectsInvalidLevel(t *testing.T) {
	cfg := runtimeconfig.DefaultConfig()
	cfg.Logging.Level = "loud"

	if err := cfg.Validate(); !errors.Is(err, runtimeconfig.ErrLoggingLevelInvalid) {
		t.Fatalf("expected ErrLoggingLevelInvalid, got %v", err)
	}
}

func TestConfigValidate_RequiresLogFile(t *testing.T) {
	cfg := runtimeconfig.DefaultConfig()
	cfg.Logging.File = ""

	if err := cfg.Validate(); !errors.Is(err, runtimeconfig.ErrLogFileRequired) {
		t.Fatalf("expected ErrLogFileRequired, got %v", err)
	}
}

func TestApplyEnv_OverlaysValues(t *testing.T) {
	env := map[string]string{
		"PARKS_CONTENT_DIR":         "guides",
		"PARKS_RECURSIVE":           "false",
		"PARKS_DB_DRIVER":           "postgres",
		"PARKS_DB_DSN":              "postgres://localhost/parks?sslmode=disable",
		"PARKS_LOG_LEVEL":           "debug",
		"PARKS_LOG_FOCUS":           "parks.importer, parks.storage",
		"PARKS_MARKDOWN_EXTENSIONS": "gfm,footnote",
		"PARKS_DRY_RUN":             "1",
	}
	cfg := runtimeconfig.DefaultConfig()

	err := cfg.ApplyEnv(func(key string) (string, bool) {
		value, ok := env[key]
		return value, ok
	})
	require.NoError(t, err)

	assert.Equal(t, "guides", cfg.Markdown.ContentDir)
	assert.False(t, cfg.Markdown.Recursive)
	assert.Equal(t, "postgres", cfg.Storage.Driver)
	assert.Equal(t, "postgres://localhost/parks?sslmode=disable", cfg.Storage.DSN)
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, []string{"parks.importer", "parks.storage"}, cfg.Logging.Focus)
	assert.Equal(t, []string{"gfm", "footnote"}, cfg.Markdown.Extensions)
	assert.True(t, cfg.DryRun)
	assert.Equal(t, "*.md", cfg.Markdown.Pattern, "unset variables keep defaults")
}

func TestApplyEnv_ReportsBadBooleans(t *testing.T) {
	cfg := runtimeconfig.DefaultConfig()

	err := cfg.ApplyEnv(func(key string) (string, bool) {
		if key == "PARKS_DRY_RUN" {
			return "maybe", true
		}
		return "", false
	})
	if !errors.Is(err, runtimeconfig.ErrEnvValueInvalid) {
		t.Fatalf("expected ErrEnvValueInvalid, got %v", err)
	}
	assert.False(t, cfg.DryRun)
}
