package fallback

import (
	"sync"

	"github.com/mantonx/cinebot/internal/modules/chatbotmodule/types"
)

// RandSource is the slice of *math/rand.Rand the selector needs.
type RandSource interface {
	Intn(n int) int
}

// Choice is a selected response and the category it came from.
type Choice struct {
	Category types.Category `json:"category"`
	Text     string         `json:"text"`
}

// SelectFallback picks a response from the built-in bank. A nil rng always
// picks the first template.
func SelectFallback(lang types.Language, intent types.Intent, message string, rng RandSource) string {
	return pick(defaultBank, lang, ResolveCategory(intent, message), rng).Text
}

var defaultBank = DefaultBank()

func pick(bank Bank, lang types.Language, category types.Category, rng RandSource) Choice {
	table := bank.table(lang)
	templates := table[category]
	if len(templates) == 0 {
		return Choice{Category: types.CategoryDefault, Text: firstDefault(bank, table)}
	}

	i := 0
	if rng != nil && len(templates) > 1 {
		i = rng.Intn(len(templates))
	}
	return Choice{Category: category, Text: templates[i]}
}

func firstDefault(bank Bank, table map[types.Category][]string) string {
	if d := table[types.CategoryDefault]; len(d) > 0 {
		return d[0]
	}
	if d := bank[types.LanguageEnglish][types.CategoryDefault]; len(d) > 0 {
		return d[0]
	}
	return ""
}

// Selector owns a bank and a random source shared across requests.
type Selector struct {
	bank Bank

	mu  sync.Mutex
	rng RandSource
}

// NewSelector creates a selector. A nil bank uses DefaultBank.
func NewSelector(bank Bank, rng RandSource) *Selector {
	if bank == nil {
		bank = DefaultBank()
	}
	return &Selector{bank: bank, rng: rng}
}

// Bank returns the selector's response bank.
func (s *Selector) Bank() Bank {
	return s.bank
}

// Select resolves the category and picks a template. *rand.Rand is not safe
// for concurrent use, so draws are serialized.
func (s *Selector) Select(lang types.Language, intent types.Intent, message string) Choice {
	category := ResolveCategory(intent, message)

	s.mu.Lock()
	defer s.mu.Unlock()
	return pick(s.bank, lang, category, s.rng)
}
