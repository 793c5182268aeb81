package api

import (
	"golang.org/x/text/language"

	"github.com/mantonx/cinebot/internal/modules/chatbotmodule/types"
)

var (
	supportedTags = []language.Tag{
		language.English,
		language.Bengali,
		language.Hindi,
		language.MustParse("bn-Latn"),
	}
	supportedLanguages = []types.Language{
		types.LanguageEnglish,
		types.LanguageBengali,
		types.LanguageHindi,
		types.LanguageBanglish,
	}
	languageMatcher = language.NewMatcher(supportedTags)
)

// NegotiateLanguage picks a chat language from an Accept-Language header.
// It returns "" when the header is empty, malformed or names nothing close
// to a supported language.
func NegotiateLanguage(header string) types.Language {
	if header == "" {
		return ""
	}
	tags, _, err := language.ParseAcceptLanguage(header)
	if err != nil || len(tags) == 0 {
		return ""
	}
	_, idx, conf := languageMatcher.Match(tags...)
	if conf == language.No {
		return ""
	}
	return supportedLanguages[idx]
}
