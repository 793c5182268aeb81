package logger

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/hashicorp/go-hclog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	assert.Equal(t, hclog.Debug, ParseLevel("debug"))
	assert.Equal(t, hclog.Warn, ParseLevel(" WARN "))
	assert.Equal(t, hclog.Info, ParseLevel(""))
	assert.Equal(t, hclog.Info, ParseLevel("loud"))
}

func TestConfigure_JSON(t *testing.T) {
	prev := Root()
	t.Cleanup(func() { SetRoot(prev) })

	var buf bytes.Buffer
	Configure(Options{Level: "debug", Format: "json", Output: &buf})

	Named("matcher").Debug("persona matched", "persona_id", "horror_host", "score", 10)

	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "persona matched", entry["@message"])
	assert.Equal(t, "cinebot.matcher", entry["@module"])
	assert.Equal(t, "horror_host", entry["persona_id"])
	assert.Equal(t, float64(10), entry["score"])
}

func TestPackageFunctions_RespectLevel(t *testing.T) {
	prev := Root()
	t.Cleanup(func() { SetRoot(prev) })

	var buf bytes.Buffer
	Configure(Options{Level: "warn", Output: &buf})

	Info("hidden")
	Debug("hidden")
	assert.Empty(t, buf.String())

	Warn("catalog incomplete", "personas", 0)
	Error("reload failed")
	assert.Contains(t, buf.String(), "catalog incomplete")
	assert.Contains(t, buf.String(), "personas=0")
	assert.Contains(t, buf.String(), "reload failed")
}
