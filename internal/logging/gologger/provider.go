package gologger

import (
	"context"
	"fmt"
	"maps"
	"slices"
	"strings"
	"sync"

	glog "github.com/goliatone/go-logger/glog"

	"github.com/goliatone/go-parks/internal/logging"
	"github.com/goliatone/go-parks/pkg/interfaces"
)

// Config selects level, output format and focus for the go-logger backend.
// go-logger owns its output stream, so entries go to its default destination
// rather than a caller supplied writer.
type Config struct {
	Level     string
	Format    string
	AddSource bool
	Focus     []string
}

var levelNames = map[string]string{
	"trace":   glog.Trace,
	"debug":   glog.Debug,
	"info":    glog.Info,
	"warn":    glog.Warn,
	"warning": glog.Warn,
	"error":   glog.Error,
	"fatal":   glog.Fatal,
}

// Formats lists the go-logger output formats accepted in Config.Format.
var Formats = []string{"console", "json", "pretty"}

// Provider hands out go-logger children, one per module name.
type Provider struct {
	root *glog.BaseLogger

	mu       sync.Mutex
	children map[string]interfaces.Logger
}

// NewProvider builds the go-logger root logger from cfg.
func NewProvider(cfg Config) (*Provider, error) {
	format := strings.ToLower(strings.TrimSpace(cfg.Format))
	if format == "" {
		format = "console"
	}

	var options []glog.Option
	switch format {
	case "console":
		options = append(options, glog.WithLoggerTypeConsole())
	case "json":
		options = append(options, glog.WithLoggerTypeJSON())
	case "pretty":
		options = append(options, glog.WithLoggerTypePretty())
	default:
		return nil, fmt.Errorf("gologger: format %q not one of %s", cfg.Format, strings.Join(Formats, ", "))
	}
	if level, ok := levelNames[strings.ToLower(strings.TrimSpace(cfg.Level))]; ok {
		options = append(options, glog.WithLevel(level))
	}
	if cfg.AddSource {
		options = append(options, glog.WithAddSource(true))
	}

	root := glog.NewLogger(options...)
	if focus := compact(cfg.Focus); len(focus) > 0 {
		root.Focus(focus...)
	}
	return &Provider{root: root, children: map[string]interfaces.Logger{}}, nil
}

// GetLogger returns the child logger for name, creating it on first use.
func (p *Provider) GetLogger(name string) interfaces.Logger {
	if p == nil || p.root == nil {
		return logging.NoOp()
	}
	name = strings.TrimSpace(name)

	p.mu.Lock()
	defer p.mu.Unlock()
	if logger, ok := p.children[name]; ok {
		return logger
	}
	var logger interfaces.Logger
	if name == "" {
		logger = newAdapter(p.root, nil)
	} else {
		logger = newAdapter(p.root.GetLogger(name), nil)
	}
	if p.children == nil {
		p.children = map[string]interfaces.Logger{}
	}
	p.children[name] = logger
	return logger
}

func newAdapter(inner glog.Logger, fields []any) interfaces.Logger {
	if inner == nil {
		return logging.NoOp()
	}
	return &adapter{inner: inner, fields: fields}
}

// adapter satisfies interfaces.Logger. Children without native field support
// carry their fields and append them to every entry's key/value args.
type adapter struct {
	inner  glog.Logger
	fields []any
}

func (l *adapter) args(args []any) []any {
	if len(l.fields) == 0 {
		return args
	}
	return append(slices.Clone(args), l.fields...)
}

func (l *adapter) Trace(msg string, args ...any) { l.inner.Trace(msg, l.args(args)...) }
func (l *adapter) Debug(msg string, args ...any) { l.inner.Debug(msg, l.args(args)...) }
func (l *adapter) Info(msg string, args ...any)  { l.inner.Info(msg, l.args(args)...) }
func (l *adapter) Warn(msg string, args ...any)  { l.inner.Warn(msg, l.args(args)...) }
func (l *adapter) Error(msg string, args ...any) { l.inner.Error(msg, l.args(args)...) }
func (l *adapter) Fatal(msg string, args ...any) { l.inner.Fatal(msg, l.args(args)...) }

func (l *adapter) WithFields(fields map[string]any) interfaces.Logger {
	if len(fields) == 0 {
		return l
	}
	if native, ok := l.inner.(glog.FieldsLogger); ok {
		return newAdapter(native.WithFields(maps.Clone(fields)), l.fields)
	}
	carried := slices.Clone(l.fields)
	for _, key := range slices.Sorted(maps.Keys(fields)) {
		carried = append(carried, key, fields[key])
	}
	return newAdapter(l.inner, carried)
}

func (l *adapter) WithContext(ctx context.Context) interfaces.Logger {
	if ctx == nil {
		return l
	}
	return newAdapter(l.inner.WithContext(ctx), l.fields)
}

func compact(values []string) []string {
	out := make([]string, 0, len(values))
	for _, value := range values {
		if value = strings.TrimSpace(value); value != "" {
			out = append(out, value)
		}
	}
	return out
}
