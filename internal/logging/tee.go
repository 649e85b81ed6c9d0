package logging

import (
	"context"

	"github.com/goliatone/go-parks/pkg/interfaces"
)

// Tee returns a provider whose loggers forward every entry to the loggers of
// all supplied providers. Nil providers are skipped. It is how the importer
// writes to its log file and mirrors to the terminal at the same time.
func Tee(providers ...interfaces.LoggerProvider) interfaces.LoggerProvider {
	filtered := make([]interfaces.LoggerProvider, 0, len(providers))
	for _, provider := range providers {
		if provider != nil {
			filtered = append(filtered, provider)
		}
	}
	return teeProvider{providers: filtered}
}

type teeProvider struct {
	providers []interfaces.LoggerProvider
}

func (p teeProvider) GetLogger(name string) interfaces.Logger {
	loggers := make([]interfaces.Logger, 0, len(p.providers))
	for _, provider := range p.providers {
		if logger := provider.GetLogger(name); logger != nil {
			loggers = append(loggers, logger)
		}
	}
	switch len(loggers) {
	case 0:
		return NoOp()
	case 1:
		return loggers[0]
	}
	return teeLogger(loggers)
}

type teeLogger []interfaces.Logger

var (
	_ interfaces.Logger       = teeLogger(nil)
	_ interfaces.FieldsLogger = teeLogger(nil)
)

func (t teeLogger) Trace(msg string, args ...any) {
	for _, l := range t {
		l.Trace(msg, args...)
	}
}

func (t teeLogger) Debug(msg string, args ...any) {
	for _, l := range t {
		l.Debug(msg, args...)
	}
}

func (t teeLogger) Info(msg string, args ...any) {
	for _, l := range t {
		l.Info(msg, args...)
	}
}

func (t teeLogger) Warn(msg string, args ...any) {
	for _, l := range t {
		l.Warn(msg, args...)
	}
}

func (t teeLogger) Error(msg string, args ...any) {
	for _, l := range t {
		l.Error(msg, args...)
	}
}

// Fatal writes the entry at error level to every logger but the last, then
// hands it to the last one's Fatal, which may exit the process.
func (t teeLogger) Fatal(msg string, args ...any) {
	if len(t) == 0 {
		return
	}
	last := len(t) - 1
	for _, l := range t[:last] {
		l.Error(msg, args...)
	}
	t[last].Fatal(msg, args...)
}

func (t teeLogger) WithFields(fields map[string]any) interfaces.Logger {
	out := make(teeLogger, len(t))
	for i, l := range t {
		out[i] = WithFields(l, fields)
	}
	return out
}

func (t teeLogger) WithContext(ctx context.Context) interfaces.Logger {
	out := make(teeLogger, len(t))
	for i, l := range t {
		out[i] = l.WithContext(ctx)
	}
	return out
}
