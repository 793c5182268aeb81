package api

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/hashicorp/go-hclog"
	"github.com/mantonx/cinebot/internal/config"
	"github.com/mantonx/cinebot/internal/modules/chatbotmodule/service"
	"github.com/mantonx/cinebot/internal/modules/chatbotmodule/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type zeroRand struct{}

func (zeroRand) Intn(int) int { return 0 }

func init() {
	gin.SetMode(gin.TestMode)
}

func setupRouter(t *testing.T) *gin.Engine {
	t.Helper()
	svc := service.NewChatbotService(service.Options{
		Config: config.ChatbotConfig{DefaultLanguage: "en"},
		Rand:   zeroRand{},
		Logger: hclog.NewNullLogger(),
	})
	r := gin.New()
	RegisterRoutes(r, NewHandler(svc, "test"))
	return r
}

func doJSON(t *testing.T, r http.Handler, method, path string, body interface{}, headers ...string) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	for i := 0; i+1 < len(headers); i += 2 {
		req.Header.Set(headers[i], headers[i+1])
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var out map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	return out
}

func TestClassifyEndpoint(t *testing.T) {
	r := setupRouter(t)

	w := doJSON(t, r, "POST", "/api/chatbot/classify", map[string]string{
		"message": "tell me about some scary horror movies",
	})
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Language       types.Language       `json:"language"`
		Classification types.Classification `json:"classification"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, types.LanguageEnglish, resp.Language)
	assert.Equal(t, types.IntentInfo, resp.Classification.Intent)
	assert.Equal(t, types.ContextHorror, resp.Classification.Context)
	assert.Equal(t, types.EmotionFriendly, resp.Classification.Emotion)
	assert.Equal(t, "horror_host", resp.Classification.PersonaID)
	assert.Equal(t, "horror_host", resp.Classification.Avatar.ID)
}

func TestClassifyEndpoint_MissingMessage(t *testing.T) {
	r := setupRouter(t)

	w := doJSON(t, r, "POST", "/api/chatbot/classify", map[string]string{"language": "en"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "VALIDATION_ERROR")
}

func TestTurnEndpoint(t *testing.T) {
	r := setupRouter(t)

	w := doJSON(t, r, "POST", "/api/chatbot/turn", map[string]interface{}{
		"message":             "tell me about some scary horror movies",
		"previous_persona_id": "friendly_guide",
	})
	require.Equal(t, http.StatusOK, w.Code)

	var res service.Result
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &res))
	assert.True(t, res.Fallback)
	assert.Equal(t, types.CategoryInfo, res.Category)
	assert.Equal(t, "horror_host", res.PersonaID)
	assert.True(t, res.PersonaChanged)
	assert.NotEmpty(t, res.TurnID)
}

func TestTurnEndpoint_AcceptLanguage(t *testing.T) {
	r := setupRouter(t)

	w := doJSON(t, r, "POST", "/api/chatbot/turn", map[string]string{"message": "নমস্কার"},
		"Accept-Language", "bn-BD,bn;q=0.9,en;q=0.5")
	require.Equal(t, http.StatusOK, w.Code)

	var res service.Result
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &res))
	assert.Equal(t, types.LanguageBengali, res.Language)
	assert.Equal(t, types.IntentGreeting, res.Intent)
}

func TestTurnEndpoint_EmptyMessage(t *testing.T) {
	r := setupRouter(t)

	w := doJSON(t, r, "POST", "/api/chatbot/turn", map[string]string{"message": ""})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestFallbackEndpoint(t *testing.T) {
	r := setupRouter(t)

	w := doJSON(t, r, "POST", "/api/chatbot/fallback", map[string]interface{}{
		"intent":  "rating",
		"message": "how good is it",
		"personalization": map[string]string{
			"display_name": "Rahim",
		},
	})
	require.Equal(t, http.StatusOK, w.Code)

	resp := decode(t, w)
	assert.Equal(t, "info", resp["category"])
	assert.Equal(t, "Good question! Rahim, which movie would you like to know more about?", resp["response"])
}

func TestPersonaEndpoints(t *testing.T) {
	r := setupRouter(t)

	w := doJSON(t, r, "GET", "/api/chatbot/personas", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, float64(51), decode(t, w)["count"])

	w = doJSON(t, r, "GET", "/api/chatbot/personas?context=western", nil)
	require.Equal(t, http.StatusOK, w.Code)
	resp := decode(t, w)
	assert.Equal(t, float64(3), resp["count"])
	assert.Equal(t, float64(51), resp["total"])

	w = doJSON(t, r, "GET", "/api/chatbot/personas/horror_host", nil)
	require.Equal(t, http.StatusOK, w.Code)
	avatar := decode(t, w)["avatar"].(map[string]interface{})
	assert.Equal(t, "horror_host", avatar["id"])

	w = doJSON(t, r, "GET", "/api/chatbot/personas/nobody", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "NOT_FOUND")
}

func TestReseedAndReloadEndpoints(t *testing.T) {
	r := setupRouter(t)

	w := doJSON(t, r, "POST", "/api/chatbot/personas/reseed", ReseedRequest{Personas: []types.PersonaRecord{
		{ID: "friendly_guide", Contexts: []types.Context{types.ContextGeneral}, Emotions: []types.Emotion{types.EmotionFriendly}},
	}})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, float64(1), decode(t, w)["count"])

	// no general persona
	w = doJSON(t, r, "POST", "/api/chatbot/personas/reseed", ReseedRequest{Personas: []types.PersonaRecord{
		{ID: "horror_host", Contexts: []types.Context{types.ContextHorror}, Emotions: []types.Emotion{types.EmotionSurprised}},
	}})
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)

	w = doJSON(t, r, "POST", "/api/chatbot/personas/reload", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, float64(51), decode(t, w)["count"])
}

func TestHealthEndpoint(t *testing.T) {
	r := setupRouter(t)

	w := doJSON(t, r, "GET", "/api/chatbot/health", nil)
	require.Equal(t, http.StatusOK, w.Code)
	resp := decode(t, w)
	assert.Equal(t, "healthy", resp["status"])
	assert.Equal(t, "test", resp["version"])
	assert.Equal(t, float64(51), resp["personas"])
}

func TestNegotiateLanguage(t *testing.T) {
	tests := []struct {
		header string
		want   types.Language
	}{
		{"", ""},
		{"en-US,en;q=0.9", types.LanguageEnglish},
		{"bn-BD,bn;q=0.9", types.LanguageBengali},
		{"hi-IN", types.LanguageHindi},
		{"fr-FR", ""},
		{";;;", ""},
	}

	for _, tt := range tests {
		t.Run(tt.header, func(t *testing.T) {
			assert.Equal(t, tt.want, NegotiateLanguage(tt.header))
		})
	}
}

func TestUpsertPersonaEndpoint(t *testing.T) {
	r := setupRouter(t)

	w := doJSON(t, r, "PUT", "/api/chatbot/personas/noir_detective", types.PersonaRecord{
		DisplayName: "Noir Detective",
		Contexts:    []types.Context{types.ContextThriller},
		Emotions:    []types.Emotion{types.EmotionThoughtful},
	})
	require.Equal(t, http.StatusCreated, w.Code)
	resp := decode(t, w)
	assert.Equal(t, true, resp["created"])
	assert.Equal(t, float64(52), resp["count"])

	w = doJSON(t, r, "GET", "/api/chatbot/personas/noir_detective", nil)
	require.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, r, "PUT", "/api/chatbot/personas/noir_detective", types.PersonaRecord{
		ID:          "noir_detective",
		DisplayName: "Hard-Boiled Detective",
		Contexts:    []types.Context{types.ContextThriller},
		Emotions:    []types.Emotion{types.EmotionConfident},
	})
	require.Equal(t, http.StatusOK, w.Code)
	resp = decode(t, w)
	assert.Equal(t, false, resp["created"])
	assert.Equal(t, float64(52), resp["count"])
}

func TestUpsertPersonaEndpoint_Rejected(t *testing.T) {
	r := setupRouter(t)

	w := doJSON(t, r, "PUT", "/api/chatbot/personas/noir_detective", types.PersonaRecord{
		ID:       "someone_else",
		Contexts: []types.Context{types.ContextThriller},
		Emotions: []types.Emotion{types.EmotionThoughtful},
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// no emotions
	w = doJSON(t, r, "PUT", "/api/chatbot/personas/noir_detective", types.PersonaRecord{
		Contexts: []types.Context{types.ContextThriller},
	})
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)

	w = doJSON(t, r, "GET", "/api/chatbot/personas", nil)
	assert.Equal(t, float64(51), decode(t, w)["count"])
}
