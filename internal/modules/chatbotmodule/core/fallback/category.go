package fallback

import (
	"regexp"
	"strings"

	"github.com/mantonx/cinebot/internal/modules/chatbotmodule/types"
)

// intentCategories maps intents with a direct response category.
var intentCategories = map[types.Intent]types.Category{
	types.IntentGreeting:  types.CategoryGreeting,
	types.IntentSearch:    types.CategorySearch,
	types.IntentRecommend: types.CategoryRecommend,
	types.IntentInfo:      types.CategoryInfo,
	types.IntentRating:    types.CategoryInfo,
	types.IntentSimilar:   types.CategoryRecommend,
}

type cue struct {
	category types.Category
	pattern  *regexp.Regexp
}

// cues are tried in order. Words must stand alone: \b only understands ASCII,
// so boundaries are whitespace, punctuation or the ends of the text.
var cues = []cue{
	{types.CategoryGreeting, wordPattern(
		"hello", "hi", "hey", "good morning", "good evening", "namaste", "salam",
		"nomoskar", "নমস্কার", "হ্যালো", "সালাম", "नमस्ते", "नमस्कार", "हैलो",
	)},
	{types.CategorySearch, wordPattern(
		"find", "search", "look for", "looking for", "where", "khujo", "khuje",
		"খুঁজে", "খুঁজুন", "খুঁজছি", "খোঁজ", "খোজো", "खोज", "खोजो", "ढूंढो", "ढूंढिए",
	)},
	{types.CategoryRecommend, wordPattern(
		"recommend", "suggest", "suggestion", "should i watch", "ki dekhbo",
		"সাজেস্ট", "সুপারিশ", "কী দেখব", "सुझाव", "सुझाओ", "क्या देखूं",
	)},
	{types.CategoryInfo, wordPattern(
		"what", "who", "when", "tell me", "about", "plot", "cast", "details",
		"somporke", "সম্পর্কে", "তথ্য", "কে", "जानकारी", "बारे", "कौन",
	)},
}

func wordPattern(words ...string) *regexp.Regexp {
	quoted := make([]string, len(words))
	for i, w := range words {
		quoted[i] = regexp.QuoteMeta(w)
	}
	return regexp.MustCompile(`(?i)(?:^|[\s\p{P}])(?:` + strings.Join(quoted, "|") + `)(?:[\s\p{P}]|$)`)
}

// ResolveCategory maps intent to a response category. Intents without a
// direct mapping fall back to cue words in the message, then to default.
// Category names are accepted as intents, so "default" resolves to itself.
func ResolveCategory(intent types.Intent, message string) types.Category {
	if c, ok := intentCategories[intent]; ok {
		return c
	}
	if types.Category(intent) == types.CategoryDefault {
		return types.CategoryDefault
	}
	for _, c := range cues {
		if c.pattern.MatchString(message) {
			return c.category
		}
	}
	return types.CategoryDefault
}
