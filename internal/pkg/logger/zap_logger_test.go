package logger

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestZapLoggerWritesJSONFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "app.log")
	log := NewZapLogger(path, true)

	log.Info("DOCUMENT", "Document created", map[string]interface{}{"document_id": "d1"})
	log.Error("DOCUMENT", "Store failed", map[string]interface{}{"error": errors.New("conn reset")})
	log.Debug("DOCUMENT", "not written to file", nil)
	_ = log.Sync()

	raw, err := os.ReadFile(path)
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(string(raw)), "\n")
	require.Len(t, lines, 2)

	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(lines[0]), &entry))
	assert.Equal(t, "INFO", entry["level"])
	assert.Equal(t, "Document created", entry["message"])
	assert.Equal(t, "DOCUMENT", entry["module"])
	assert.Equal(t, map[string]interface{}{"document_id": "d1"}, entry["details"])

	require.NoError(t, json.Unmarshal([]byte(lines[1]), &entry))
	assert.Equal(t, "conn reset", entry["error"])
}

func TestNopLogger(t *testing.T) {
	var log ILogger = NewNopLogger()
	assert.NotPanics(t, func() {
		log.Warn("X", "ignored", nil)
		_ = log.Sync()
	})
}
