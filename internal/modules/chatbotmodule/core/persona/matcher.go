package persona

import (
	"github.com/hashicorp/go-hclog"
	"github.com/mantonx/cinebot/internal/modules/chatbotmodule/types"
)

// Score weights.
const (
	ContextWeight = 10
	EmotionWeight = 5
	GeneralBonus  = 1
)

// Score rates how well p fits ctx and emo. The general bonus stacks with the
// context weight when ctx is itself general.
func Score(p types.PersonaRecord, ctx types.Context, emo types.Emotion) int {
	score := 0
	if p.HasContext(ctx) {
		score += ContextWeight
	}
	if p.HasEmotion(emo) {
		score += EmotionWeight
	}
	if p.HasContext(types.ContextGeneral) {
		score += GeneralBonus
	}
	return score
}

// MatchPersona returns the highest scoring persona. Only a strictly greater
// score replaces the current best, so the earliest persona wins a tie. An
// empty catalog or an all-zero score yields the default persona.
func MatchPersona(catalog []types.PersonaRecord, ctx types.Context, emo types.Emotion) types.MatchResult {
	return match(catalog, ctx, emo, nil)
}

func match(catalog []types.PersonaRecord, ctx types.Context, emo types.Emotion, visit func(types.PersonaRecord, int)) types.MatchResult {
	result := types.MatchResult{
		PersonaID: types.DefaultPersonaID,
		Context:   ctx,
		Emotion:   emo,
	}

	for _, p := range catalog {
		score := Score(p, ctx, emo)
		if visit != nil {
			visit(p, score)
		}
		if score > result.Score {
			result.PersonaID = p.ID
			result.Score = score
		}
	}
	return result
}

// Matcher runs MatchPersona against a Store and logs the decision.
type Matcher struct {
	store  *Store
	logger hclog.Logger
}

// NewMatcher creates a matcher reading from store.
func NewMatcher(store *Store, logger hclog.Logger) *Matcher {
	if logger == nil {
		logger = hclog.NewNullLogger()
	}
	return &Matcher{
		store:  store,
		logger: logger.Named("persona-matcher"),
	}
}

// Match scores the current catalog snapshot. The snapshot is read once so a
// concurrent reload never mixes two catalogs in one decision.
func (m *Matcher) Match(ctx types.Context, emo types.Emotion) types.MatchResult {
	return m.MatchCatalog(m.store.Load(), ctx, emo)
}

// MatchCatalog scores a snapshot the caller already holds.
func (m *Matcher) MatchCatalog(catalog *Catalog, ctx types.Context, emo types.Emotion) types.MatchResult {
	var visit func(types.PersonaRecord, int)
	if m.logger.IsTrace() {
		visit = func(p types.PersonaRecord, score int) {
			m.logger.Trace("persona candidate", "persona_id", p.ID, "score", score)
		}
	}

	result := match(catalog.Records(), ctx, emo, visit)
	if result.Score == 0 {
		m.logger.Debug("no persona scored, using default",
			"context", ctx,
			"emotion", emo,
			"catalog_size", catalog.Len())
	} else {
		m.logger.Debug("persona matched",
			"persona_id", result.PersonaID,
			"context", ctx,
			"emotion", emo,
			"score", result.Score)
	}
	return result
}
