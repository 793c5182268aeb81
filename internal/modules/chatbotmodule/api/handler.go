package api

import (
	"context"
	"fmt"
	"net/http"
	"runtime"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shirou/gopsutil/v4/mem"

	apierrors "github.com/mantonx/cinebot/internal/api"
	"github.com/mantonx/cinebot/internal/modules/chatbotmodule/core/fallback"
	"github.com/mantonx/cinebot/internal/modules/chatbotmodule/core/persona"
	"github.com/mantonx/cinebot/internal/modules/chatbotmodule/service"
	"github.com/mantonx/cinebot/internal/modules/chatbotmodule/types"
)

// ChatService is the slice of service.ChatbotService the handlers use.
type ChatService interface {
	Language(lang types.Language) types.Language
	Classify(in types.ClassificationInput) types.Classification
	HandleTurn(ctx context.Context, turn service.Turn) (*service.Result, error)
	Fallback(lang types.Language, intent types.Intent, message string, p fallback.Personalization) fallback.Choice
	Catalog() *persona.Catalog
	Persona(id string) (types.PersonaRecord, error)
	ReloadCatalog(ctx context.Context) (*persona.Catalog, error)
	ReseedCatalog(ctx context.Context, records []types.PersonaRecord) (*persona.Catalog, error)
	UpsertPersona(ctx context.Context, record types.PersonaRecord) (*persona.Catalog, bool, error)
}

// Handler provides HTTP handlers for chatbot operations
type Handler struct {
	service ChatService
	version string
	started time.Time
}

// NewHandler creates a new API handler
func NewHandler(svc ChatService, version string) *Handler {
	return &Handler{
		service: svc,
		version: version,
		started: time.Now(),
	}
}

// ClassifyRequest is the body of POST /classify.
type ClassifyRequest struct {
	Message  string `json:"message" binding:"required"`
	Response string `json:"response"`
	Language string `json:"language"`
}

// FallbackRequest is the body of POST /fallback.
type FallbackRequest struct {
	Message         string                   `json:"message"`
	Intent          string                   `json:"intent"`
	Language        string                   `json:"language"`
	Personalization fallback.Personalization `json:"personalization"`
}

// ReseedRequest is the body of POST /personas/reseed. An empty list restores
// the built-in catalog.
type ReseedRequest struct {
	Personas []types.PersonaRecord `json:"personas"`
}

// requestLanguage prefers the body field, then Accept-Language.
func requestLanguage(c *gin.Context, body string) types.Language {
	if strings.TrimSpace(body) != "" {
		return types.ParseLanguage(body)
	}
	return NegotiateLanguage(c.GetHeader("Accept-Language"))
}

// Classify handles POST /api/chatbot/classify
func (h *Handler) Classify(c *gin.Context) {
	var req ClassifyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.RespondWithValidationError(c, "classify", err)
		return
	}

	lang := h.service.Language(requestLanguage(c, req.Language))
	result := h.service.Classify(types.ClassificationInput{
		MessageText:  req.Message,
		ResponseText: req.Response,
		Language:     lang,
	})

	c.JSON(http.StatusOK, gin.H{
		"language":       lang,
		"classification": result,
	})
}

// Turn handles POST /api/chatbot/turn
func (h *Handler) Turn(c *gin.Context) {
	var turn service.Turn
	if err := c.ShouldBindJSON(&turn); err != nil {
		apierrors.RespondWithValidationError(c, "turn", err)
		return
	}
	if turn.ID == "" {
		turn.ID = c.GetString("request_id")
	}
	turn.Language = requestLanguage(c, string(turn.Language))

	result, err := h.service.HandleTurn(c.Request.Context(), turn)
	if err != nil {
		apierrors.RespondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// Fallback handles POST /api/chatbot/fallback
func (h *Handler) Fallback(c *gin.Context) {
	var req FallbackRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.RespondWithValidationError(c, "fallback", err)
		return
	}

	lang := h.service.Language(requestLanguage(c, req.Language))
	choice := h.service.Fallback(lang, types.Intent(strings.ToLower(strings.TrimSpace(req.Intent))), req.Message, req.Personalization)
	c.JSON(http.StatusOK, gin.H{
		"language": lang,
		"category": choice.Category,
		"response": choice.Text,
	})
}

// ListPersonas handles GET /api/chatbot/personas
func (h *Handler) ListPersonas(c *gin.Context) {
	catalog := h.service.Catalog()
	records := catalog.Records()

	if ctx := c.Query("context"); ctx != "" {
		filtered := make([]types.PersonaRecord, 0, len(records))
		for _, p := range records {
			if p.HasContext(types.Context(ctx)) {
				filtered = append(filtered, p)
			}
		}
		records = filtered
	}

	c.JSON(http.StatusOK, gin.H{
		"personas": records,
		"count":    len(records),
		"total":    catalog.Len(),
	})
}

// GetPersona handles GET /api/chatbot/personas/:id
func (h *Handler) GetPersona(c *gin.Context) {
	p, err := h.service.Persona(c.Param("id"))
	if err != nil {
		apierrors.RespondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"persona": p,
		"avatar":  p.Avatar(),
	})
}

// UpsertPersona handles PUT /api/chatbot/personas/:id. The body id may be
// omitted; when present it must match the path.
func (h *Handler) UpsertPersona(c *gin.Context) {
	id := c.Param("id")
	var record types.PersonaRecord
	if err := c.ShouldBindJSON(&record); err != nil {
		apierrors.RespondWithValidationError(c, "upsert_persona", err)
		return
	}
	if record.ID == "" {
		record.ID = id
	}
	if record.ID != id {
		apierrors.RespondWithValidationError(c, "upsert_persona", fmt.Errorf("body id %q does not match path id %q", record.ID, id))
		return
	}

	catalog, created, err := h.service.UpsertPersona(c.Request.Context(), record)
	if err != nil {
		apierrors.RespondWithError(c, err)
		return
	}

	status := http.StatusOK
	if created {
		status = http.StatusCreated
	}
	c.JSON(status, gin.H{
		"success": true,
		"created": created,
		"persona": record,
		"count":   catalog.Len(),
	})
}

// ReloadPersonas handles POST /api/chatbot/personas/reload
func (h *Handler) ReloadPersonas(c *gin.Context) {
	catalog, err := h.service.ReloadCatalog(c.Request.Context())
	if err != nil {
		apierrors.RespondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"count":   catalog.Len(),
	})
}

// ReseedPersonas handles POST /api/chatbot/personas/reseed
func (h *Handler) ReseedPersonas(c *gin.Context) {
	var req ReseedRequest
	if c.Request.ContentLength != 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			apierrors.RespondWithValidationError(c, "reseed", err)
			return
		}
	}

	catalog, err := h.service.ReseedCatalog(c.Request.Context(), req.Personas)
	if err != nil {
		apierrors.RespondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"count":   catalog.Len(),
	})
}

// Health handles GET /api/chatbot/health
func (h *Handler) Health(c *gin.Context) {
	var ms runtime.MemStats
	runtime.ReadMemStats(&ms)

	resp := gin.H{
		"status":     "healthy",
		"version":    h.version,
		"uptime":     time.Since(h.started).Round(time.Second).String(),
		"personas":   h.service.Catalog().Len(),
		"goroutines": runtime.NumGoroutine(),
		"heap_alloc": ms.HeapAlloc,
	}

	if vm, err := mem.VirtualMemoryWithContext(c.Request.Context()); err == nil {
		resp["host_memory"] = gin.H{
			"total":        vm.Total,
			"available":    vm.Available,
			"used_percent": vm.UsedPercent,
		}
	}

	if h.service.Catalog().Len() == 0 {
		resp["status"] = "degraded"
	}
	c.JSON(http.StatusOK, resp)
}
