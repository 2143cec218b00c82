package logger

import (
	"bytes"
	"context"
	"testing"

	"github.com/rs/zerolog"
)

func TestNew(t *testing.T) {
	log := New(false)
	if log.GetLevel() != zerolog.InfoLevel {
		t.Errorf("Expected info level by default, got %s", log.GetLevel())
	}
}

func TestNew_Debug(t *testing.T) {
	log := New(true)
	if log.GetLevel() != zerolog.DebugLevel {
		t.Errorf("Expected debug level, got %s", log.GetLevel())
	}
}

func TestNewWithWriter(t *testing.T) {
	buf := &bytes.Buffer{}
	log := NewWithWriter(buf)

	log.Info().Msg("test message")

	output := buf.String()
	if output == "" {
		t.Error("Expected log output, got empty string")
	}
	if !containsString(output, "test message") {
		t.Errorf("Expected output to contain 'test message', got: %s", output)
	}
}

func TestWithContext(t *testing.T) {
	log := New(false)
	ctx := context.Background()

	ctxWithLogger := WithContext(ctx, log)

	if ctxWithLogger.Value(LoggerKey) == nil {
		t.Error("Expected logger in context, got nil")
	}
}

func TestFromContext(t *testing.T) {
	buf := &bytes.Buffer{}
	testLog := NewWithWriter(buf)
	ctx := WithContext(context.Background(), testLog)

	retrievedLog := FromContext(ctx)
	retrievedLog.Info().Msg("test")

	if buf.Len() == 0 {
		t.Error("Expected log output from retrieved logger")
	}
}

func TestFromContextOr_PrefersContextLogger(t *testing.T) {
	ctxBuf := &bytes.Buffer{}
	fallbackBuf := &bytes.Buffer{}
	ctx := WithContext(context.Background(), NewWithWriter(ctxBuf))

	log := FromContextOr(ctx, NewWithWriter(fallbackBuf))
	log.Info().Msg("routed")

	if ctxBuf.Len() == 0 {
		t.Error("Expected context logger to receive the message")
	}
	if fallbackBuf.Len() != 0 {
		t.Errorf("Expected fallback logger to stay silent, got: %s", fallbackBuf.String())
	}
}

func TestFromContextOr_Fallback(t *testing.T) {
	buf := &bytes.Buffer{}

	log := FromContextOr(context.Background(), NewWithWriter(buf))
	log.Info().Msg("routed")

	if !containsString(buf.String(), "routed") {
		t.Errorf("Expected fallback logger to receive the message, got: %s", buf.String())
	}
}

func TestFromContext_DefaultLogger(t *testing.T) {
	ctx := context.Background()

	// Should return a default logger when none is in context
	log := FromContext(ctx)

	if log.GetLevel() == zerolog.Disabled {
		t.Error("Expected default logger to be enabled")
	}
}

// Helper function to check if a string contains a substring
func containsString(s, substr string) bool {
	return len(s) >= len(substr) && (s == substr || len(substr) == 0 ||
		(len(s) > 0 && (s[:len(substr)] == substr || containsString(s[1:], substr))))
}
