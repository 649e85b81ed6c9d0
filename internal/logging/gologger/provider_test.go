package gologger

import (
	"context"
	"testing"

	glog "github.com/goliatone/go-logger/glog"

	"github.com/goliatone/go-parks/internal/logging"
)

func TestNewProviderFormats(t *testing.T) {
	cases := []struct {
		format  string
		wantErr bool
	}{
		{format: ""},
		{format: "console"},
		{format: "JSON"},
		{format: " pretty "},
		{format: "compact", wantErr: true},
		{format: "xml", wantErr: true},
	}
	for _, tc := range cases {
		_, err := NewProvider(Config{Level: "debug", Format: tc.format})
		if tc.wantErr && err == nil {
			t.Fatalf("format %q: expected error", tc.format)
		}
		if !tc.wantErr && err != nil {
			t.Fatalf("format %q: unexpected error %v", tc.format, err)
		}
	}
}

func TestProviderReusesModuleLoggers(t *testing.T) {
	p, err := NewProvider(Config{Level: "warn", Focus: []string{" parks.importer ", ""}})
	if err != nil {
		t.Fatalf("NewProvider: %v", err)
	}

	first := p.GetLogger("parks.importer")
	if again := p.GetLogger(" parks.importer "); again != first {
		t.Fatal("expected the cached child logger for the same module")
	}
	if other := p.GetLogger("parks.storage"); other == first {
		t.Fatal("expected distinct loggers per module")
	}
	logging.WithFields(first, map[string]any{"file": "zion.md"}).Debug("importer.file.started")
}

func TestAdapterUsesNativeFields(t *testing.T) {
	stub := &fieldStub{}
	logger := newAdapter(stub, nil)

	fields := map[string]any{"park": "Zion National Park"}
	child := logging.WithFields(logger, fields)
	fields["park"] = "Arches National Park"
	child.Info("storage.park.committed", "park_id", 7)

	if len(stub.fields) != 1 || stub.fields[0]["park"] != "Zion National Park" {
		t.Fatalf("expected cloned native fields, got %#v", stub.fields)
	}
	if got := stub.entries[0].args; len(got) != 2 || got[0] != "park_id" {
		t.Fatalf("expected args untouched, got %#v", got)
	}
}

func TestAdapterCarriesFieldsWithoutNativeSupport(t *testing.T) {
	stub := &plainStub{}
	logger := newAdapter(stub, nil)

	child := logging.WithFields(
		logging.WithFields(logger, map[string]any{"run_id": "run-1"}),
		map[string]any{"section": "fees", "file": "zion.md"})
	child.Warn("extractor.table.skipped", "index", 3)
	logger.Warn("extractor.name_missing")

	want := []any{"index", 3, "run_id", "run-1", "file", "zion.md", "section", "fees"}
	got := stub.entries[0].args
	if len(got) != len(want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("arg %d: expected %v, got %v", i, want[i], got[i])
		}
	}
	if len(stub.entries[1].args) != 0 {
		t.Fatalf("parent logger must not see child fields, got %v", stub.entries[1].args)
	}

	ctx := context.WithValue(context.Background(), struct{}{}, "run-1")
	child.WithContext(ctx).Error("importer.file.failed")
	if stub.ctx != ctx {
		t.Fatal("expected context to reach go-logger")
	}
	if got := stub.entries[2].args; len(got) != 6 {
		t.Fatalf("expected fields to survive WithContext, got %v", got)
	}
}

func TestNilProviderReturnsNoOp(t *testing.T) {
	var p *Provider
	if p.GetLogger("parks.importer") == nil {
		t.Fatal("expected a usable logger from nil provider")
	}
}

type entry struct {
	level string
	msg   string
	args  []any
}

type plainStub struct {
	entries []entry
	ctx     context.Context
}

var _ glog.Logger = (*plainStub)(nil)

func (s *plainStub) record(level, msg string, args []any) {
	s.entries = append(s.entries, entry{level: level, msg: msg, args: args})
}

func (s *plainStub) Trace(msg string, args ...any) { s.record("trace", msg, args) }
func (s *plainStub) Debug(msg string, args ...any) { s.record("debug", msg, args) }
func (s *plainStub) Info(msg string, args ...any)  { s.record("info", msg, args) }
func (s *plainStub) Warn(msg string, args ...any)  { s.record("warn", msg, args) }
func (s *plainStub) Error(msg string, args ...any) { s.record("error", msg, args) }
func (s *plainStub) Fatal(msg string, args ...any) { s.record("fatal", msg, args) }

func (s *plainStub) WithContext(ctx context.Context) glog.Logger {
	s.ctx = ctx
	return s
}

type fieldStub struct {
	plainStub
	fields []map[string]any
}

var _ glog.FieldsLogger = (*fieldStub)(nil)

func (s *fieldStub) WithFields(fields map[string]any) glog.Logger {
	s.fields = append(s.fields, fields)
	return s
}
