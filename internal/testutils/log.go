package testutils

import (
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
)

// ExpectedRecord is a partial log record to assert against. An empty Message
// only checks the level.
type ExpectedRecord struct {
	Level   slog.Level
	Message string
}

// Compare asserts that have matches the expected level and message fragment.
func (want ExpectedRecord) Compare(t *testing.T, have slog.Record) {
	t.Helper()

	assert.Equal(t, want.Level, have.Level, "log level should match")
	if want.Message != "" {
		assert.Contains(t, have.Message, want.Message, "log message should contain the expected fragment")
	}
}

// MockHandler is a slog.Handler that records every record it receives, so
// tests can assert on what a component logged.
type MockHandler struct {
	HandleCalls []slog.Record
}

// NewMockHandler returns a MockHandler ready to be wrapped in slog.New.
func NewMockHandler() MockHandler {
	return MockHandler{HandleCalls: make([]slog.Record, 0)}
}

func (h *MockHandler) Enabled(context.Context, slog.Level) bool {
	return true
}

func (h *MockHandler) Handle(_ context.Context, record slog.Record) error {
	h.HandleCalls = append(h.HandleCalls, record)
	return nil
}

func (h *MockHandler) WithAttrs([]slog.Attr) slog.Handler {
	return h
}

func (h *MockHandler) WithGroup(string) slog.Handler {
	return h
}
