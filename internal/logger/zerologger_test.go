package logger

import (
	"bytes"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decodeLine(t *testing.T, buf *bytes.Buffer) map[string]any {
	t.Helper()
	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	return entry
}

func TestZeroLogger_TypedFields(t *testing.T) {
	var buf bytes.Buffer
	log := NewWithWriter("development", &buf)

	log.Info("offer set cached",
		Field{Key: "user_id", Value: "user-1"},
		Field{Key: "offers", Value: 2},
		Field{Key: "cached", Value: true},
	)

	entry := decodeLine(t, &buf)
	assert.Equal(t, "info", entry["level"])
	assert.Equal(t, "offer set cached", entry["message"])
	assert.Equal(t, "user-1", entry["user_id"])
	assert.Equal(t, float64(2), entry["offers"])
	assert.Equal(t, true, entry["cached"])
	assert.Contains(t, entry, "time")
}

func TestZeroLogger_ErrorField(t *testing.T) {
	var buf bytes.Buffer
	log := NewWithWriter("development", &buf)

	log.Warn("airline lookup failed", Field{Key: "err", Value: errors.New("boom")})

	entry := decodeLine(t, &buf)
	assert.Equal(t, "warn", entry["level"])
	assert.Equal(t, "boom", entry["err"])
}

func TestZeroLogger_ProductionSuppressesDebug(t *testing.T) {
	var buf bytes.Buffer
	log := NewWithWriter("production", &buf)

	log.Debug("noise")
	assert.Zero(t, buf.Len())

	log.Info("signal")
	assert.NotZero(t, buf.Len())
}
