package gologger

import (
	"context"
	"reflect"
	"testing"

	glog "github.com/goliatone/go-logger/glog"

	"github.com/goliatone/go-pagebuilder/pkg/interfaces"
)

func TestNewProviderFormats(t *testing.T) {
	for _, format := range []string{"", "json", "Console", "pretty"} {
		p, err := NewProvider(Config{Level: "debug", Format: format, Focus: []string{" pagebuilder.pages ", ""}})
		if err != nil {
			t.Fatalf("format %q: %v", format, err)
		}
		moduleLogger := p.GetLogger("pagebuilder.pages")
		fields, ok := moduleLogger.(interfaces.FieldsLogger)
		if !ok {
			t.Fatalf("format %q: expected fields logger, got %T", format, moduleLogger)
		}
		fields.WithFields(map[string]any{"entity_kind": "pages"}).Debug("provider.ready")
	}

	if _, err := NewProvider(Config{Format: "xml"}); err == nil {
		t.Fatal("expected unsupported format error")
	}
}

func TestNilProviderReturnsNoOp(t *testing.T) {
	var p *Provider
	if p.GetLogger("pagebuilder") == nil {
		t.Fatal("expected no-op logger")
	}
}

func TestLoggerDelegates(t *testing.T) {
	stub := &stubLogger{}
	adapted, ok := adapt(stub).(*logger)
	if !ok {
		t.Fatal("expected adapt to return the go-logger adapter")
	}

	adapted.Trace("t")
	adapted.Debug("d")
	adapted.Info("i")
	adapted.Warn("w")
	adapted.Error("e")
	adapted.Fatal("f")
	if want := []string{"trace", "debug", "info", "warn", "error", "fatal"}; !reflect.DeepEqual(stub.calls, want) {
		t.Fatalf("expected %v, got %v", want, stub.calls)
	}

	fields := map[string]any{"entity_kind": "elements"}
	adapted.WithFields(fields)
	fields["entity_kind"] = "pages"
	if len(stub.fields) != 1 || stub.fields[0]["entity_kind"] != "elements" {
		t.Fatalf("expected fields to be copied before delegation, got %v", stub.fields)
	}
	if adapted.WithFields(nil) != interfaces.Logger(adapted) {
		t.Fatal("expected empty fields to return the same logger")
	}

	ctx := context.WithValue(context.Background(), struct{}{}, "request")
	adapted.WithContext(ctx)
	if len(stub.contexts) != 1 || stub.contexts[0] != ctx {
		t.Fatalf("expected context to reach go-logger, got %v", stub.contexts)
	}
}

func TestPairsAreSorted(t *testing.T) {
	got := pairs(map[string]any{"b": 2, "a": 1})
	if want := []any{"a", 1, "b", 2}; !reflect.DeepEqual(got, want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
}

type stubLogger struct {
	calls    []string
	fields   []map[string]any
	contexts []context.Context
}

var _ glog.Logger = (*stubLogger)(nil)
var _ glog.FieldsLogger = (*stubLogger)(nil)

func (s *stubLogger) Trace(string, ...any) { s.calls = append(s.calls, "trace") }
func (s *stubLogger) Debug(string, ...any) { s.calls = append(s.calls, "debug") }
func (s *stubLogger) Info(string, ...any)  { s.calls = append(s.calls, "info") }
func (s *stubLogger) Warn(string, ...any)  { s.calls = append(s.calls, "warn") }
func (s *stubLogger) Error(string, ...any) { s.calls = append(s.calls, "error") }
func (s *stubLogger) Fatal(string, ...any) { s.calls = append(s.calls, "fatal") }

func (s *stubLogger) WithContext(ctx context.Context) glog.Logger {
	s.contexts = append(s.contexts, ctx)
	return s
}

func (s *stubLogger) WithFields(fields map[string]any) glog.Logger {
	s.fields = append(s.fields, fields)
	return s
}
