package fallback

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/mantonx/cinebot/internal/modules/chatbotmodule/types"
)

// Personalization is optional user data woven into a selected response.
type Personalization struct {
	DisplayName   string `json:"display_name,omitempty"`
	FavoriteGenre string `json:"favorite_genre,omitempty"`
}

var genreSentences = map[types.Language]string{
	types.LanguageEnglish:  "Since you enjoy %s, I'll keep that in mind.",
	types.LanguageBengali:  "আপনি %s পছন্দ করেন, সেটা মাথায় রাখছি।",
	types.LanguageHindi:    "आपको %s पसंद है, मैं इसका ध्यान रखूँगा।",
	types.LanguageBanglish: "Tumi %s pochondo koro, seta mathay rakhbo.",
}

// Personalize applies both personalization steps. Empty fields are skipped.
func Personalize(text string, lang types.Language, p Personalization) string {
	text = WithName(text, p.DisplayName)
	return WithGenre(text, lang, p.FavoriteGenre)
}

// WithName splices name in right after the first "!":
//
//	"Hello! How can I help?" -> "Hello! Rahim, how can I help?"
//
// A template without "!" gets the name as a prefix.
func WithName(text, name string) string {
	name = strings.TrimSpace(name)
	if name == "" {
		return text
	}

	idx := strings.Index(text, "!")
	if idx < 0 {
		return name + ", " + lowerFirst(text)
	}

	rest := strings.TrimLeft(text[idx+1:], " ")
	if rest == "" {
		return text[:idx] + ", " + name + "!"
	}
	return text[:idx+1] + " " + name + ", " + lowerFirst(rest)
}

// WithGenre appends a sentence acknowledging genre.
func WithGenre(text string, lang types.Language, genre string) string {
	genre = strings.TrimSpace(genre)
	if genre == "" {
		return text
	}
	format, ok := genreSentences[lang]
	if !ok {
		format = genreSentences[types.LanguageEnglish]
	}
	return text + " " + fmt.Sprintf(format, genre)
}

// lowerFirst lower-cases the first letter unless it is the pronoun "I".
func lowerFirst(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError || !unicode.IsUpper(r) {
		return s
	}
	if r == 'I' {
		next, _ := utf8.DecodeRuneInString(s[size:])
		if size == len(s) || next == ' ' || next == '\'' {
			return s
		}
	}
	return string(unicode.ToLower(r)) + s[size:]
}
