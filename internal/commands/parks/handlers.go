package parkscmd

import (
	"context"
	"errors"
	"fmt"

	command "github.com/goliatone/go-command"
	"github.com/goliatone/go-parks/internal/commands"
	"github.com/goliatone/go-parks/internal/importer"
	"github.com/goliatone/go-parks/internal/logging"
	"github.com/goliatone/go-parks/pkg/interfaces"
)

const (
	importDirectoryOperation = "parks.import_directory"
	importFileOperation      = "parks.import_file"

	contentDirMissingCode = "PARKS_CONTENT_DIR_MISSING"
)

var (
	_ command.Commander[ImportDirectoryCommand] = (*ImportDirectoryHandler)(nil)
	_ command.Commander[ImportFileCommand]      = (*ImportFileHandler)(nil)
)

// Importer is the slice of importer.Service the handlers drive.
type Importer interface {
	RunWithOptions(ctx context.Context, dir string, opts importer.RunOptions) (*importer.Summary, error)
	ImportFile(ctx context.Context, path string) (importer.FileResult, error)
}

// SummarySink receives the summary of every completed directory import.
type SummarySink func(*importer.Summary)

// FileResultSink receives the outcome of a single file import.
type FileResultSink func(importer.FileResult)

// ImportDirectoryHandler runs a directory import through the shared handler.
type ImportDirectoryHandler struct {
	inner *commands.Handler[ImportDirectoryCommand]
}

// NewImportDirectoryHandler binds the handler to service. sink may be nil.
func NewImportDirectoryHandler(service Importer, logger interfaces.Logger, sink SummarySink, opts ...commands.HandlerOption[ImportDirectoryCommand]) *ImportDirectoryHandler {
	baseLogger := logger
	if baseLogger == nil {
		baseLogger = logging.NoOp()
	}

	exec := func(ctx context.Context, msg ImportDirectoryCommand) error {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		summary, err := service.RunWithOptions(ctx, msg.Directory, importer.RunOptions{DryRun: msg.DryRun})
		if summary != nil && sink != nil {
			sink(summary)
		}
		if err != nil {
			if errors.Is(err, importer.ErrContentDirMissing) {
				return commands.ValidationError(err, contentDirMissingCode, "content directory missing")
			}
			return err
		}

		logging.WithFields(baseLogger, map[string]any{
			"run_id":    summary.RunID,
			"found":     summary.Found,
			"succeeded": summary.Succeeded,
			"skipped":   summary.Skipped,
			"failed":    summary.Failed,
			"dry_run":   summary.DryRun,
		}).Info("parks.command.import_directory.completed")
		return nil
	}

	handlerOpts := []commands.HandlerOption[ImportDirectoryCommand]{
		commands.WithLogger[ImportDirectoryCommand](baseLogger),
		commands.WithOperation[ImportDirectoryCommand](importDirectoryOperation),
		commands.WithMessageFields(func(msg ImportDirectoryCommand) map[string]any {
			fields := map[string]any{
				"directory": msg.Directory,
			}
			if msg.DryRun {
				fields["dry_run"] = true
			}
			return fields
		}),
		commands.WithTelemetry(commands.DefaultTelemetry[ImportDirectoryCommand](baseLogger)),
	}
	handlerOpts = append(handlerOpts, opts...)

	return &ImportDirectoryHandler{
		inner: commands.NewHandler(exec, handlerOpts...),
	}
}

// Execute satisfies command.Commander[ImportDirectoryCommand].
func (h *ImportDirectoryHandler) Execute(ctx context.Context, msg ImportDirectoryCommand) error {
	return h.inner.Execute(ctx, msg)
}

// ImportFileHandler imports one guide. A skipped or failed file is returned
// as an error so single-file callers see it.
type ImportFileHandler struct {
	inner *commands.Handler[ImportFileCommand]
}

// NewImportFileHandler binds the handler to service. sink may be nil.
func NewImportFileHandler(service Importer, logger interfaces.Logger, sink FileResultSink, opts ...commands.HandlerOption[ImportFileCommand]) *ImportFileHandler {
	baseLogger := logger
	if baseLogger == nil {
		baseLogger = logging.NoOp()
	}

	exec := func(ctx context.Context, msg ImportFileCommand) error {
		result, err := service.ImportFile(ctx, msg.Path)
		if sink != nil {
			sink(result)
		}
		if err != nil {
			return err
		}
		if result.Status != importer.StatusImported {
			return fmt.Errorf("%s %s: %w", result.Status, result.Path, result.Error)
		}
		return nil
	}

	handlerOpts := []commands.HandlerOption[ImportFileCommand]{
		commands.WithLogger[ImportFileCommand](baseLogger),
		commands.WithOperation[ImportFileCommand](importFileOperation),
		commands.WithMessageFields(func(msg ImportFileCommand) map[string]any {
			return map[string]any{"path": msg.Path}
		}),
		commands.WithTelemetry(commands.DefaultTelemetry[ImportFileCommand](baseLogger)),
	}
	handlerOpts = append(handlerOpts, opts...)

	return &ImportFileHandler{
		inner: commands.NewHandler(exec, handlerOpts...),
	}
}

// Execute satisfies command.Commander[ImportFileCommand].
func (h *ImportFileHandler) Execute(ctx context.Context, msg ImportFileCommand) error {
	return h.inner.Execute(ctx, msg)
}
