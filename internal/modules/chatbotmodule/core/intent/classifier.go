// Package intent detects what a chat user is trying to do.
package intent

import (
	"github.com/mantonx/cinebot/internal/modules/chatbotmodule/core/taxonomy"
	"github.com/mantonx/cinebot/internal/modules/chatbotmodule/types"
)

// Classifier maps message text to an intent using per-language keyword tables.
// It is safe for concurrent use.
type Classifier struct {
	taxonomy *taxonomy.Taxonomy
}

// NewClassifier creates a classifier over tax. A nil taxonomy yields a
// classifier that always answers general.
func NewClassifier(tax *taxonomy.Taxonomy) *Classifier {
	return &Classifier{taxonomy: tax}
}

// Classify returns the first intent in types.IntentPriority whose keywords
// occur in the message. Languages without a table use English.
func (c *Classifier) Classify(message string, lang types.Language) types.Intent {
	intent, _ := c.Explain(message, lang)
	return intent
}

// Explain is Classify plus the keyword that decided the result ("" for general).
func (c *Classifier) Explain(message string, lang types.Language) (types.Intent, string) {
	if c.taxonomy == nil || message == "" {
		return types.IntentGeneral, ""
	}

	table, _ := c.taxonomy.IntentTableFor(lang)
	if len(table) == 0 {
		return types.IntentGeneral, ""
	}

	normalized := taxonomy.Normalize(message)
	for _, intent := range types.IntentPriority {
		if kw, ok := taxonomy.ContainsAny(normalized, table[intent]); ok {
			return intent, kw
		}
	}
	return types.IntentGeneral, ""
}

// ClassifyIntent runs the built-in tables.
func ClassifyIntent(message string, lang types.Language) types.Intent {
	return defaultClassifier.Classify(message, lang)
}

var defaultClassifier = NewClassifier(taxonomy.Default())
