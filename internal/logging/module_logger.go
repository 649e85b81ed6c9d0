package logging

import (
	"context"
	"strings"

	"github.com/goliatone/go-parks/pkg/interfaces"
)

const (
	rootModule      = "parks"
	importerModule  = "parks.importer"
	extractorModule = "parks.extractor"
	storageModule   = "parks.storage"
	markdownModule  = "parks.markdown"
)

const (
	fieldFilePath = "file"
	fieldParkName = "park"
	fieldSection  = "section"
	fieldRunID    = "run_id"
)

// ModuleLogger returns a module-scoped logger, defaulting to a no-op
// implementation when no provider is supplied. The returned logger attaches
// the module identifier as structured context.
func ModuleLogger(provider interfaces.LoggerProvider, module string) interfaces.Logger {
	if module == "" {
		module = rootModule
	}

	logger := NoOp()
	if provider != nil {
		if provided := provider.GetLogger(module); provided != nil {
			logger = provided
		}
	}

	return WithFields(logger, map[string]any{
		"module": module,
	})
}

// ImporterLogger returns the logger namespace reserved for the import pipeline.
func ImporterLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, importerModule)
}

// ExtractorLogger returns the logger namespace reserved for section extraction.
func ExtractorLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, extractorModule)
}

// StorageLogger returns the logger namespace reserved for the relational loader.
func StorageLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, storageModule)
}

// MarkdownLogger returns the logger namespace reserved for discovery and parsing.
func MarkdownLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, markdownModule)
}

// WithFileContext enriches the logger with the file being processed and the
// park it describes. Empty values are ignored.
func WithFileContext(logger interfaces.Logger, path, park string) interfaces.Logger {
	fields := map[string]any{}
	if trimmed := strings.TrimSpace(path); trimmed != "" {
		fields[fieldFilePath] = trimmed
	}
	if trimmed := strings.TrimSpace(park); trimmed != "" {
		fields[fieldParkName] = trimmed
	}
	return WithFields(logger, fields)
}

// WithSection tags entries with the document section currently in scope.
func WithSection(logger interfaces.Logger, section string) interfaces.Logger {
	if strings.TrimSpace(section) == "" {
		return logger
	}
	return WithFields(logger, map[string]any{fieldSection: section})
}

// WithRunID tags entries with the identifier of an import run.
func WithRunID(logger interfaces.Logger, runID string) interfaces.Logger {
	if strings.TrimSpace(runID) == "" {
		return logger
	}
	return WithFields(logger, map[string]any{fieldRunID: runID})
}

// NoOp returns a logger that drops every log entry.
func NoOp() interfaces.Logger {
	return noopLogger{}
}

type noopLogger struct{}

var _ interfaces.Logger = noopLogger{}

func (noopLogger) Trace(string, ...any) {}
func (noopLogger) Debug(string, ...any) {}
func (noopLogger) Info(string, ...any)  {}
func (noopLogger) Warn(string, ...any)  {}
func (noopLogger) Error(string, ...any) {}
func (noopLogger) Fatal(string, ...any) {}

func (n noopLogger) WithFields(map[string]any) interfaces.Logger {
	return n
}

func (n noopLogger) WithContext(context.Context) interfaces.Logger {
	return n
}
