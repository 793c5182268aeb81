// Package types holds the value types shared by the chatbot module's components.
package types

import "strings"

// Language is a chat language code.
type Language string

const (
	LanguageEnglish  Language = "en"
	LanguageBengali  Language = "bn"
	LanguageHindi    Language = "hi"
	LanguageBanglish Language = "banglish" // romanized Bengali
)

// SupportedLanguages lists the languages that ship with keyword and response tables.
var SupportedLanguages = []Language{LanguageEnglish, LanguageBengali, LanguageHindi, LanguageBanglish}

// ParseLanguage normalizes a free-form code. Unknown codes are returned as-is
// (lower-cased) so callers can decide how to fall back.
func ParseLanguage(code string) Language {
	c := strings.ToLower(strings.TrimSpace(code))
	switch c {
	case "", "en", "en-us", "en-gb", "english":
		return LanguageEnglish
	case "bn", "bn-bd", "bn-in", "bangla", "bengali":
		return LanguageBengali
	case "hi", "hi-in", "hindi":
		return LanguageHindi
	case "banglish", "bn-latn", "bn_latn":
		return LanguageBanglish
	}
	return Language(c)
}

// Intent is the inferred conversational goal of a user message.
type Intent string

const (
	IntentSearch    Intent = "search"
	IntentRecommend Intent = "recommend"
	IntentInfo      Intent = "info"
	IntentRating    Intent = "rating"
	IntentSimilar   Intent = "similar"
	IntentGreeting  Intent = "greeting"
	IntentGeneral   Intent = "general"
)

// IntentPriority is the order in which intents are tested. First hit wins.
var IntentPriority = []Intent{
	IntentSearch,
	IntentRecommend,
	IntentInfo,
	IntentRating,
	IntentSimilar,
	IntentGreeting,
}

// Context is a coarse topical tag derived from conversation text.
type Context string

const (
	ContextAction      Context = "action"
	ContextRomance     Context = "romance"
	ContextComedy      Context = "comedy"
	ContextHorror      Context = "horror"
	ContextThriller    Context = "thriller"
	ContextSciFi       Context = "sci-fi"
	ContextBollywood   Context = "bollywood"
	ContextBengali     Context = "bengali"
	ContextAnime       Context = "anime"
	ContextDocumentary Context = "documentary"
	ContextMusical     Context = "musical"
	ContextWestern     Context = "western"
	ContextFantasy     Context = "fantasy"
	ContextSuperhero   Context = "superhero"
	ContextMystery     Context = "mystery"
	ContextDrama       Context = "drama"
	ContextFamily      Context = "family"
	ContextGeneral     Context = "general"
)

// Emotion is a coarse affect tag derived from conversation text.
type Emotion string

const (
	EmotionHappy      Emotion = "happy"
	EmotionExcited    Emotion = "excited"
	EmotionCalm       Emotion = "calm"
	EmotionThoughtful Emotion = "thoughtful"
	EmotionSurprised  Emotion = "surprised"
	EmotionConfident  Emotion = "confident"
	EmotionHelpful    Emotion = "helpful"
	EmotionFriendly   Emotion = "friendly"
)

// Category selects a bucket of canned fallback responses.
type Category string

const (
	CategoryGreeting  Category = "greeting"
	CategorySearch    Category = "search"
	CategoryRecommend Category = "recommend"
	CategoryInfo      Category = "info"
	CategoryDefault   Category = "default"
)

// DefaultPersonaID is returned whenever no persona scores above zero.
const DefaultPersonaID = "friendly_guide"

// PersonaRecord describes one selectable avatar.
type PersonaRecord struct {
	ID          string    `json:"id" yaml:"id"`
	DisplayName string    `json:"display_name" yaml:"display_name"`
	ImageRef    string    `json:"image_ref" yaml:"image_ref"`
	Contexts    []Context `json:"contexts" yaml:"contexts"`
	Emotions    []Emotion `json:"emotions" yaml:"emotions"`
	Description string    `json:"description" yaml:"description"`
}

// HasContext reports whether c is one of the persona's contexts.
func (p PersonaRecord) HasContext(c Context) bool {
	for _, pc := range p.Contexts {
		if pc == c {
			return true
		}
	}
	return false
}

// HasEmotion reports whether e is one of the persona's emotions.
func (p PersonaRecord) HasEmotion(e Emotion) bool {
	for _, pe := range p.Emotions {
		if pe == e {
			return true
		}
	}
	return false
}

// Avatar returns the display-only view of the persona.
func (p PersonaRecord) Avatar() AvatarDescriptor {
	return AvatarDescriptor{
		ID:          p.ID,
		DisplayName: p.DisplayName,
		ImageRef:    p.ImageRef,
		Description: p.Description,
	}
}

// AvatarDescriptor is what the display layer renders next to a response.
type AvatarDescriptor struct {
	ID          string `json:"id"`
	DisplayName string `json:"display_name"`
	ImageRef    string `json:"image_ref"`
	Description string `json:"description"`
}

// ClassificationInput is built per chat turn and never persisted.
type ClassificationInput struct {
	MessageText  string   `json:"message"`
	ResponseText string   `json:"response"`
	Language     Language `json:"language"`
}

// CombinedText is the text the context and emotion analyzers scan.
func (in ClassificationInput) CombinedText() string {
	return in.MessageText + " " + in.ResponseText
}

// MatchResult is the outcome of persona matching. Score is informational.
type MatchResult struct {
	PersonaID string  `json:"persona_id"`
	Context   Context `json:"context"`
	Emotion   Emotion `json:"emotion"`
	Score     int     `json:"score"`
}

// Classification is the full output of one classification call.
type Classification struct {
	Intent    Intent           `json:"intent"`
	Context   Context          `json:"context"`
	Emotion   Emotion          `json:"emotion"`
	PersonaID string           `json:"persona_id"`
	Score     int              `json:"score"`
	Avatar    AvatarDescriptor `json:"avatar"`
}
