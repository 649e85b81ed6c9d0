package parkscmd

import (
	"errors"

	"github.com/goliatone/go-parks/internal/commands"
	"github.com/goliatone/go-parks/pkg/interfaces"
)

// CommandRegistry is the minimal registration contract expected when wiring command handlers.
type CommandRegistry interface {
	RegisterCommand(handler any) error
}

// HandlerSet groups the handlers built by RegisterParkCommands.
type HandlerSet struct {
	ImportDirectory *ImportDirectoryHandler
	ImportFile      *ImportFileHandler
}

// Option customises handler wiring during registration.
type Option func(*options)

type options struct {
	summarySink    SummarySink
	fileSink       FileResultSink
	directoryOpts  []commands.HandlerOption[ImportDirectoryCommand]
	importFileOpts []commands.HandlerOption[ImportFileCommand]
}

// WithSummarySink receives every directory import summary.
func WithSummarySink(sink SummarySink) Option {
	return func(cfg *options) {
		cfg.summarySink = sink
	}
}

// WithFileResultSink receives every single-file import result.
func WithFileResultSink(sink FileResultSink) Option {
	return func(cfg *options) {
		cfg.fileSink = sink
	}
}

// WithDirectoryHandlerOptions forwards options to the ImportDirectoryHandler constructor.
func WithDirectoryHandlerOptions(opts ...commands.HandlerOption[ImportDirectoryCommand]) Option {
	return func(cfg *options) {
		cfg.directoryOpts = append(cfg.directoryOpts, opts...)
	}
}

// WithFileHandlerOptions forwards options to the ImportFileHandler constructor.
func WithFileHandlerOptions(opts ...commands.HandlerOption[ImportFileCommand]) Option {
	return func(cfg *options) {
		cfg.importFileOpts = append(cfg.importFileOpts, opts...)
	}
}

// RegisterParkCommands builds the park import handlers and registers them
// with reg when one is supplied.
func RegisterParkCommands(reg CommandRegistry, service Importer, provider interfaces.LoggerProvider, opts ...Option) (*HandlerSet, error) {
	if service == nil {
		return nil, errors.New("parks command registration: service is nil")
	}

	cfg := options{}
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}

	logger := commands.CommandLogger(provider, "parks")
	set := &HandlerSet{
		ImportDirectory: NewImportDirectoryHandler(service, logger, cfg.summarySink, cfg.directoryOpts...),
		ImportFile:      NewImportFileHandler(service, logger, cfg.fileSink, cfg.importFileOpts...),
	}

	if reg != nil {
		if err := reg.RegisterCommand(set.ImportDirectory); err != nil {
			return nil, err
		}
		if err := reg.RegisterCommand(set.ImportFile); err != nil {
			return nil, err
		}
	}
	return set, nil
}
