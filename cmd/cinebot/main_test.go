package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/hashicorp/go-hclog"
	"github.com/mantonx/cinebot/internal/config"
	"github.com/mantonx/cinebot/internal/modules/chatbotmodule/core/persona"
	"github.com/mantonx/cinebot/internal/modules/chatbotmodule/service"
	"github.com/mantonx/cinebot/internal/modules/chatbotmodule/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func execute(t *testing.T, args ...string) string {
	t.Helper()
	classifyFlags.response, classifyFlags.language, classifyFlags.asJSON = "", "", false
	personasFlags.format, personasFlags.context, personasFlags.write = "table", "", ""
	fallbackFlags.intent, fallbackFlags.language, fallbackFlags.name, fallbackFlags.genre, fallbackFlags.seed = "", "en", "", "", 0
	rootFlags.logLevel = "error"

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&bytes.Buffer{})
	rootCmd.SetArgs(append([]string{"--config", filepath.Join(t.TempDir(), "none.yaml")}, args...))
	require.NoError(t, rootCmd.Execute())
	return out.String()
}

func TestClassifyCommand(t *testing.T) {
	out := execute(t, "classify", "--json", "tell", "me", "about", "some", "scary", "horror", "movies")

	var got types.Classification
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	assert.Equal(t, types.IntentInfo, got.Intent)
	assert.Equal(t, types.ContextHorror, got.Context)
	assert.Equal(t, types.EmotionFriendly, got.Emotion)
	assert.Equal(t, "horror_host", got.PersonaID)
}

func TestClassifyCommand_Text(t *testing.T) {
	out := execute(t, "classify", "recommend a bollywood film")
	assert.Contains(t, out, "Intent:   recommend")
	assert.Contains(t, out, "Context:  bollywood")
}

func TestPersonasCommand(t *testing.T) {
	out := execute(t, "personas", "--context", "bengali")
	assert.Contains(t, out, "bengali_storyteller")
	assert.NotContains(t, out, "horror_host")

	out = execute(t, "personas", "--format", "yaml")
	records, err := persona.ParseYAML([]byte(out))
	require.NoError(t, err)
	assert.Len(t, records, 51)
}

func TestPersonasCommand_WriteThenFileSource(t *testing.T) {
	path := filepath.Join(t.TempDir(), "personas.yaml")
	execute(t, "personas", "--write", path)
	require.FileExists(t, path)

	t.Setenv("CINEBOT_CATALOG_SOURCE", "file")
	t.Setenv("CINEBOT_CATALOG_FILE", path)
	out := execute(t, "personas", "--format", "json")

	var records []types.PersonaRecord
	require.NoError(t, json.Unmarshal([]byte(out), &records))
	assert.Len(t, records, 51)
	assert.Equal(t, "friendly_guide", records[0].ID)
}

func TestFallbackCommand(t *testing.T) {
	out := execute(t, "fallback", "--intent", "rating", "--seed", "7", "--name", "Rahim")
	assert.Contains(t, out, "[info] ")
	assert.Contains(t, out, "Rahim")

	out = execute(t, "fallback", "--language", "hi", "--seed", "7", "नमस्ते")
	assert.Contains(t, out, "[greeting] ")
}

func TestDefaultLanguageWatcher(t *testing.T) {
	svc := service.NewChatbotService(service.Options{
		Config: config.ChatbotConfig{DefaultLanguage: "en"},
		Logger: hclog.NewNullLogger(),
	})
	watch := defaultLanguageWatcher(svc, hclog.NewNullLogger())

	oldConfig, newConfig := config.DefaultConfig(), config.DefaultConfig()
	newConfig.Server.Port = 9090
	watch(oldConfig, newConfig)
	assert.Equal(t, types.LanguageEnglish, svc.Language(""))

	newConfig.Chatbot.DefaultLanguage = "hi"
	watch(oldConfig, newConfig)
	assert.Equal(t, types.LanguageHindi, svc.Language(""))
}

func TestMain(m *testing.M) {
	os.Unsetenv("CINEBOT_CONFIG")
	os.Exit(m.Run())
}
