package service

import (
	"context"

	"github.com/mantonx/cinebot/internal/modules/chatbotmodule/types"
)

// HistoryEntry is one prior message in the conversation, oldest first.
type HistoryEntry struct {
	Role string `json:"role"` // "user" or "assistant"
	Text string `json:"text"`
}

// ResponderRequest is what an AI responder receives for one turn.
type ResponderRequest struct {
	TurnID    string         `json:"turn_id"`
	Message   string         `json:"message"`
	Language  types.Language `json:"language"`
	Intent    types.Intent   `json:"intent"`
	PersonaID string         `json:"persona_id,omitempty"`
	History   []HistoryEntry `json:"history,omitempty"`
}

// Responder generates a reply for a turn. Any error, or an empty reply, makes
// the service answer from the fallback bank instead.
type Responder interface {
	Respond(ctx context.Context, req ResponderRequest) (string, error)
}

// ResponderFunc adapts a function to the Responder interface.
type ResponderFunc func(ctx context.Context, req ResponderRequest) (string, error)

func (f ResponderFunc) Respond(ctx context.Context, req ResponderRequest) (string, error) {
	return f(ctx, req)
}
