// Package analyzer derives a topical context and an emotion tag from chat text.
package analyzer

import (
	"github.com/mantonx/cinebot/internal/modules/chatbotmodule/core/taxonomy"
	"github.com/mantonx/cinebot/internal/modules/chatbotmodule/types"
)

// Analyzer scans text against the ordered context and emotion tables.
// It holds no mutable state and is safe for concurrent use.
type Analyzer struct {
	taxonomy *taxonomy.Taxonomy
}

// NewAnalyzer creates an analyzer over tax.
func NewAnalyzer(tax *taxonomy.Taxonomy) *Analyzer {
	return &Analyzer{taxonomy: tax}
}

// Context returns the first context, in table order, with a keyword found in
// text, or general.
func (a *Analyzer) Context(text string) types.Context {
	if a.taxonomy == nil {
		return types.ContextGeneral
	}
	normalized := taxonomy.Normalize(text)
	for _, ck := range a.taxonomy.Contexts {
		if _, ok := taxonomy.ContainsAny(normalized, ck.Keywords); ok {
			return ck.Context
		}
	}
	return types.ContextGeneral
}

// Emotion returns the first emotion, in table order, with a keyword found in
// text, or friendly.
func (a *Analyzer) Emotion(text string) types.Emotion {
	if a.taxonomy == nil {
		return types.EmotionFriendly
	}
	normalized := taxonomy.Normalize(text)
	for _, ek := range a.taxonomy.Emotions {
		if _, ok := taxonomy.ContainsAny(normalized, ek.Keywords); ok {
			return ek.Emotion
		}
	}
	return types.EmotionFriendly
}

// Analyze runs both scans over the space-joined message and response.
func (a *Analyzer) Analyze(in types.ClassificationInput) (types.Context, types.Emotion) {
	text := in.CombinedText()
	return a.Context(text), a.Emotion(text)
}

var defaultAnalyzer = NewAnalyzer(taxonomy.Default())

// AnalyzeContext runs the built-in context table.
func AnalyzeContext(text string) types.Context {
	return defaultAnalyzer.Context(text)
}

// AnalyzeEmotion runs the built-in emotion table.
func AnalyzeEmotion(text string) types.Emotion {
	return defaultAnalyzer.Emotion(text)
}
