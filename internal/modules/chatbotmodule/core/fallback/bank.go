// Package fallback picks a canned reply when no AI responder is available.
package fallback

import (
	"fmt"

	chatErrors "github.com/mantonx/cinebot/internal/modules/chatbotmodule/errors"
	"github.com/mantonx/cinebot/internal/modules/chatbotmodule/types"
)

// Bank maps language and category to response templates.
type Bank map[types.Language]map[types.Category][]string

// Validate requires an English table with a non-empty default category, since
// every lookup ends there.
func (b Bank) Validate() error {
	en, ok := b[types.LanguageEnglish]
	if !ok {
		return chatErrors.ConfigError("validate_bank", fmt.Errorf("english: %w", chatErrors.ErrUnsupportedLanguage))
	}
	if len(en[types.CategoryDefault]) == 0 {
		return chatErrors.ConfigError("validate_bank", fmt.Errorf("english default responses: %w", chatErrors.ErrEmptyTaxonomy))
	}
	return nil
}

// table returns the language's table, or English.
func (b Bank) table(lang types.Language) map[types.Category][]string {
	if t, ok := b[lang]; ok && len(t) > 0 {
		return t
	}
	return b[types.LanguageEnglish]
}

// Templates returns the templates Select would choose from.
func (b Bank) Templates(lang types.Language, category types.Category) []string {
	return b.table(lang)[category]
}

// DefaultBank returns the built-in responses.
func DefaultBank() Bank {
	return Bank{
		types.LanguageEnglish: {
			types.CategoryGreeting: {
				"Hello! How can I help you find a great movie today?",
				"Hi there! Looking for something to watch?",
				"Welcome back! What are you in the mood for?",
			},
			types.CategorySearch: {
				"Sure! Tell me the title or an actor and I'll look it up.",
				"Happy to search! Which movie or show do you have in mind?",
				"Let's find it! Give me a name, a year or a genre.",
			},
			types.CategoryRecommend: {
				"Great idea! Tell me a genre you like and I'll suggest something.",
				"I'd love to recommend something! Are you after something light or intense?",
				"Movie night! Do you prefer new releases or classics?",
			},
			types.CategoryInfo: {
				"Good question! Which movie would you like to know more about?",
				"I can help with that! Tell me the title and I'll share what I know.",
				"Sure thing! Name the film and I'll pull up the details.",
			},
			types.CategoryDefault: {
				"I'm here to help with movies and shows! Try asking for a recommendation.",
				"Sorry, I didn't quite catch that! Could you rephrase?",
				"Let's talk movies! Ask me to find or recommend a film.",
			},
		},
		types.LanguageBengali: {
			types.CategoryGreeting: {
				"নমস্কার! আজ কোন সিনেমা দেখতে চান?",
				"হ্যালো! আমি আপনাকে কীভাবে সাহায্য করতে পারি?",
			},
			types.CategorySearch: {
				"অবশ্যই! সিনেমার নাম বা অভিনেতার নাম বলুন।",
				"চলুন খুঁজি! কোন সিনেমাটা খুঁজছেন?",
			},
			types.CategoryRecommend: {
				"দারুণ! কোন ধরনের সিনেমা আপনার পছন্দ?",
				"আমি সাজেস্ট করতে পারি! হালকা কিছু না কি রোমাঞ্চকর?",
			},
			types.CategoryInfo: {
				"ভালো প্রশ্ন! কোন সিনেমা সম্পর্কে জানতে চান?",
				"অবশ্যই! সিনেমার নাম বলুন, আমি তথ্য দিচ্ছি।",
			},
			types.CategoryDefault: {
				"আমি সিনেমা নিয়ে সাহায্য করতে এখানে আছি! একটা সাজেশন চেয়ে দেখুন।",
				"দুঃখিত, বুঝতে পারিনি! আবার বলবেন?",
			},
		},
		types.LanguageHindi: {
			types.CategoryGreeting: {
				"नमस्ते! आज कौन सी फिल्म देखना चाहेंगे?",
				"हैलो! मैं आपकी कैसे मदद कर सकता हूँ?",
			},
			types.CategorySearch: {
				"ज़रूर! फिल्म का नाम या कलाकार बताइए।",
				"चलिए ढूंढते हैं! आप कौन सी फिल्म खोज रहे हैं?",
			},
			types.CategoryRecommend: {
				"बढ़िया! आपको किस तरह की फिल्में पसंद हैं?",
				"मैं सुझाव दे सकता हूँ! कुछ हल्का या कुछ रोमांचक?",
			},
			types.CategoryInfo: {
				"अच्छा सवाल! किस फिल्म के बारे में जानना चाहेंगे?",
				"ज़रूर! फिल्म का नाम बताइए, मैं जानकारी देता हूँ।",
			},
			types.CategoryDefault: {
				"मैं फिल्मों में आपकी मदद के लिए हूँ! कोई सुझाव माँगकर देखिए।",
				"माफ़ कीजिए, मैं समझ नहीं पाया! दोबारा बताएँगे?",
			},
		},
		types.LanguageBanglish: {
			types.CategoryGreeting: {
				"Hello! Aaj ki movie dekhte chao?",
				"Nomoskar! Kemon acho, ki dekhbe aaj?",
			},
			types.CategorySearch: {
				"Obosshoi! Movie er naam ba actor er naam bolo.",
				"Cholo khuji! Kon movie ta khujcho?",
			},
			types.CategoryRecommend: {
				"Darun! Kon type er movie pochondo koro?",
				"Ami suggest korte pari! Halka kichu na thrilling kichu?",
			},
			types.CategoryInfo: {
				"Bhalo proshno! Kon movie somporke jante chao?",
				"Obosshoi! Movie er naam bolo, ami details dichhi.",
			},
			types.CategoryDefault: {
				"Ami movie niye help korte achi! Ekta suggestion chaye dekho.",
				"Sorry, bujhte parini! Abar bolbe?",
			},
		},
	}
}
