package service

import (
	"github.com/mantonx/cinebot/internal/modules/chatbotmodule/core/fallback"
	"github.com/mantonx/cinebot/internal/modules/chatbotmodule/types"
)

// Turn is one user message and the state the caller carries between turns.
type Turn struct {
	ID                string                   `json:"id,omitempty"`
	Message           string                   `json:"message"`
	Language          types.Language           `json:"language,omitempty"`
	PreviousPersonaID string                   `json:"previous_persona_id,omitempty"`
	Personalization   fallback.Personalization `json:"personalization"`
	History           []HistoryEntry           `json:"history,omitempty"`
}

// Result is the reply for a turn together with its classification.
type Result struct {
	TurnID   string         `json:"turn_id"`
	Response string         `json:"response"`
	Language types.Language `json:"language"`
	// Fallback is set when the reply came from the canned bank.
	Fallback       bool           `json:"fallback"`
	Category       types.Category `json:"category,omitempty"`
	PersonaChanged bool           `json:"persona_changed"`

	types.Classification
}
