package logger

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestLoggerInit(t *testing.T) {
	if err := Init(); err != nil {
		t.Fatalf("failed to initialize console logger: %v", err)
	}
	defer func() {
		if err := Sync(); err != nil {
			t.Errorf("failed to sync logger: %v", err)
		}
	}()

	if Get() == nil {
		t.Fatal("logger is nil after initialization")
	}

	if err := Init(WithFormat("json")); err != nil {
		t.Fatalf("failed to initialize json logger: %v", err)
	}
	if Get() == nil {
		t.Fatal("logger is nil after initialization")
	}
}

func TestLoggerInitUnknownFormat(t *testing.T) {
	if err := Init(WithFormat("xml")); err == nil {
		t.Fatal("expected error for unknown format")
	}
}

func TestLoggerFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "marquee.log")
	if err := Init(WithFormat("json"), WithFile(path, 1, 1, 1)); err != nil {
		t.Fatalf("failed to initialize file logger: %v", err)
	}

	Get().Info(context.Background(), "written to file", String("k", "v"))
	if err := Sync(); err != nil {
		t.Fatalf("failed to sync logger: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("failed to read log file: %v", err)
	}
	if len(data) == 0 {
		t.Fatal("log file is empty")
	}
}

func TestLoggerNamed(t *testing.T) {
	if err := Init(); err != nil {
		t.Fatalf("failed to initialize logger: %v", err)
	}

	namedLogger := Named("test")
	if namedLogger == nil {
		t.Fatal("named logger is nil")
	}
	namedLogger.Info(context.Background(), "test message")
}

func TestLoggerFields(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	log := FromZap(zap.New(core))

	ctx := WithRequestID(context.Background(), "req-1")
	log.Named("catalog").Warn(ctx, "movie not found",
		Int("index", 42),
		String("op", "getMovie"),
		Error(errors.New("boom")),
	)

	entries := logs.All()
	if len(entries) != 1 {
		t.Fatalf("expected 1 entry, got %d", len(entries))
	}
	e := entries[0]
	if e.Message != "movie not found" {
		t.Errorf("unexpected message %q", e.Message)
	}
	if e.LoggerName != "catalog" {
		t.Errorf("unexpected logger name %q", e.LoggerName)
	}
	fields := e.ContextMap()
	if fields["index"] != int64(42) {
		t.Errorf("unexpected index field %v", fields["index"])
	}
	if fields["request_id"] != "req-1" {
		t.Errorf("unexpected request_id field %v", fields["request_id"])
	}
	if fields["error"] != "boom" {
		t.Errorf("unexpected error field %v", fields["error"])
	}
}

func TestSetLevelString(t *testing.T) {
	tests := []struct {
		in      string
		want    string
		wantErr bool
	}{
		{in: "debug", want: "debug"},
		{in: "WARNING", want: "warn"},
		{in: " error ", want: "error"},
		{in: "", want: "info"},
		{in: "loud", wantErr: true},
	}
	for _, tt := range tests {
		err := SetLevelString(tt.in)
		if tt.wantErr {
			if err == nil {
				t.Errorf("%q: expected error", tt.in)
			}
			continue
		}
		if err != nil {
			t.Errorf("%q: unexpected error: %v", tt.in, err)
		}
		if Level() != tt.want {
			t.Errorf("%q: expected level %s, got %s", tt.in, tt.want, Level())
		}
	}
	_ = SetLevelString("info")
}
