package taxonomy

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/unicode/norm"
)

// Normalize lower-cases text with Unicode case mapping and composes it to NFC
// so that Bengali and Devanagari keywords match regardless of how the client
// encoded combining marks.
func Normalize(text string) string {
	// Casers carry state and must not be shared between goroutines.
	lower := cases.Lower(language.Und).String(text)
	return norm.NFC.String(lower)
}

// ContainsAny reports whether normalized text contains any keyword, and
// returns the first keyword that matched.
func ContainsAny(normalized string, keywords []string) (string, bool) {
	for _, kw := range keywords {
		if kw == "" {
			continue
		}
		if strings.Contains(normalized, kw) {
			return kw, true
		}
	}
	return "", false
}
