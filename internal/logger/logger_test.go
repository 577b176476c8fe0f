package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http/httptest"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decodeLine(t *testing.T, buf *bytes.Buffer) map[string]any {
	t.Helper()
	var entry map[string]any
	require.NoError(t, json.Unmarshal(bytes.TrimSpace(buf.Bytes()), &entry), "log output: %s", buf.String())
	return entry
}

func TestNew_EntryShape(t *testing.T) {
	t.Cleanup(func() { zerolog.SetGlobalLevel(zerolog.DebugLevel) })

	tests := []struct {
		name string
		role string
	}{
		{name: "api server", role: "registro-horas-server"},
		{name: "operator cli", role: "registro-horas-cli"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			l := New(&buf, tt.role, "info")

			l.Info().Str("path", "/api/auth/login").Msg("login succeeded")

			entry := decodeLine(t, &buf)
			assert.Equal(t, tt.role, entry["role"])
			assert.Equal(t, "info", entry["level"])
			assert.Equal(t, "/api/auth/login", entry["path"])
			assert.Contains(t, entry, "time")
			// the caller is recorded as a function name under "func"
			assert.Contains(t, entry["func"], "TestNew_EntryShape")
		})
	}
}

func TestNew_LevelFiltersEntries(t *testing.T) {
	t.Cleanup(func() { zerolog.SetGlobalLevel(zerolog.DebugLevel) })

	var buf bytes.Buffer
	l := New(&buf, "registro-horas-server", "warn")

	l.Info().Msg("token reused")
	assert.Zero(t, buf.Len(), "info is below the configured level")

	l.Warn().Msg("rejecting bearer token")
	assert.Equal(t, "warn", decodeLine(t, &buf)["level"])
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want zerolog.Level
	}{
		{"debug", zerolog.DebugLevel},
		{" WARN ", zerolog.WarnLevel},
		{"error", zerolog.ErrorLevel},
		{"", zerolog.InfoLevel},
		{"verbose", zerolog.InfoLevel},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseLevel(tt.in))
		})
	}
}

func TestNop_DiscardsOutput(t *testing.T) {
	l := Nop()
	require.NotNil(t, l)

	assert.NotPanics(t, func() { l.Error().Str("principal", "ana").Msg("dropped") })
	assert.Equal(t, zerolog.Disabled, l.GetLevel())
}

func TestGetChildLogger_FieldsStayOnChild(t *testing.T) {
	t.Cleanup(func() { zerolog.SetGlobalLevel(zerolog.DebugLevel) })

	var buf bytes.Buffer
	parent := New(&buf, "registro-horas-server", "debug")

	child := parent.GetChildLogger()
	child.UpdateContext(func(c zerolog.Context) zerolog.Context {
		return c.Str("trace_id", "trace-42")
	})

	child.Info().Msg("from child")
	childEntry := decodeLine(t, &buf)
	assert.Equal(t, "trace-42", childEntry["trace_id"])
	assert.Equal(t, "registro-horas-server", childEntry["role"])

	buf.Reset()
	parent.Info().Msg("from parent")
	assert.NotContains(t, decodeLine(t, &buf), "trace_id")
}

func TestFromContext(t *testing.T) {
	t.Cleanup(func() { zerolog.SetGlobalLevel(zerolog.DebugLevel) })

	t.Run("attached logger is returned", func(t *testing.T) {
		var buf bytes.Buffer
		l := New(&buf, "registro-horas-server", "debug")
		ctx := l.WithContext(context.Background())

		FromContext(ctx).Info().Msg("cleanup finished")
		assert.Equal(t, "cleanup finished", decodeLine(t, &buf)["message"])
	})

	t.Run("bare context never yields nil", func(t *testing.T) {
		l := FromContext(context.Background())
		require.NotNil(t, l)
		assert.NotPanics(t, func() { l.Info().Msg("nowhere") })
	})
}

func TestFromRequest(t *testing.T) {
	t.Cleanup(func() { zerolog.SetGlobalLevel(zerolog.DebugLevel) })

	var buf bytes.Buffer
	l := New(&buf, "registro-horas-server", "debug")

	req := httptest.NewRequest("GET", "/api/auth/me", nil)
	req = req.WithContext(l.WithContext(req.Context()))

	FromRequest(req).Info().Msg("identity bound")
	assert.Equal(t, "identity bound", decodeLine(t, &buf)["message"])
}
