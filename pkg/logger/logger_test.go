package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"

	"github.com/rs/zerolog"
)

func TestContextFieldsArePropagated(t *testing.T) {
	var buf bytes.Buffer
	logg := New(Options{ServiceName: "test", Output: &buf, Level: zerolog.InfoLevel})

	ctx := logg.WithRequestID(context.Background(), "req-123")
	ctx = logg.WithSessionID(ctx, "sess-9")
	logg.Info(ctx, "hello")

	var entry map[string]any
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("log output is not JSON: %v", err)
	}
	if entry["request_id"] != "req-123" {
		t.Fatalf("request_id missing from log entry: %v", entry)
	}
	if entry["session_id"] != "sess-9" {
		t.Fatalf("session_id missing from log entry: %v", entry)
	}
	if entry["service"] != "test" {
		t.Fatalf("service missing from log entry: %v", entry)
	}
}

func TestParseLevel(t *testing.T) {
	if ParseLevel("DEBUG") != zerolog.DebugLevel {
		t.Fatalf("expected debug level")
	}
	if ParseLevel("") != zerolog.InfoLevel {
		t.Fatalf("empty level should default to info")
	}
	if ParseLevel("bogus") != zerolog.InfoLevel {
		t.Fatalf("unknown level should default to info")
	}
}
