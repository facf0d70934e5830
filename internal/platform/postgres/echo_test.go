package postgres

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEchoQuery_EmitsAtDebugLevel(t *testing.T) {
	var buf bytes.Buffer
	log := slog.New(slog.NewJSONHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

	echoQuery(context.Background(), log, `
		SELECT id, name
		FROM users
		WHERE id = $1
	`)

	out := buf.String()
	assert.Contains(t, out, "executing query")
	// The statement is collapsed onto one line for readable log output.
	assert.Contains(t, out, "SELECT id, name FROM users WHERE id = $1")
}

func TestEchoQuery_SilentAboveDebugLevel(t *testing.T) {
	var buf bytes.Buffer
	log := slog.New(slog.NewJSONHandler(&buf, &slog.HandlerOptions{Level: slog.LevelInfo}))

	echoQuery(context.Background(), log, `SELECT 1`)

	assert.Empty(t, buf.String())
}
