// Package taxonomy holds the keyword tables used by the intent classifier and
// the context/emotion analyzer.
//
// Matching is plain substring containment on lower-cased text, so every
// keyword is stored lower-case and very short English tokens ("hi", "hey",
// "elf") are deliberately absent: they occur inside ordinary words.
package taxonomy

import (
	"fmt"

	chatErrors "github.com/mantonx/cinebot/internal/modules/chatbotmodule/errors"
	"github.com/mantonx/cinebot/internal/modules/chatbotmodule/types"
)

// ContextKeywords pairs a context with the keywords that select it.
type ContextKeywords struct {
	Context  types.Context `yaml:"context" json:"context"`
	Keywords []string      `yaml:"keywords" json:"keywords"`
}

// EmotionKeywords pairs an emotion with the keywords that select it.
type EmotionKeywords struct {
	Emotion  types.Emotion `yaml:"emotion" json:"emotion"`
	Keywords []string      `yaml:"keywords" json:"keywords"`
}

// IntentTable maps each intent to its keywords for one language. Iteration
// order comes from types.IntentPriority, never from the map.
type IntentTable map[types.Intent][]string

// Taxonomy is an immutable set of keyword tables. Contexts and Emotions are
// ordered: the first category with a matching keyword wins.
type Taxonomy struct {
	Contexts []ContextKeywords
	Emotions []EmotionKeywords
	Intents  map[types.Language]IntentTable
}

// IntentTableFor returns the table for lang, falling back to English. The
// second value is the language whose table was returned.
func (t *Taxonomy) IntentTableFor(lang types.Language) (IntentTable, types.Language) {
	if table, ok := t.Intents[lang]; ok && len(table) > 0 {
		return table, lang
	}
	return t.Intents[types.LanguageEnglish], types.LanguageEnglish
}

// Validate reports incomplete tables. Classification still works on an
// invalid taxonomy (it returns defaults); callers log the error.
func (t *Taxonomy) Validate() error {
	if t == nil || len(t.Contexts) == 0 {
		return chatErrors.ConfigError("validate_taxonomy", fmt.Errorf("contexts: %w", chatErrors.ErrEmptyTaxonomy))
	}
	if len(t.Emotions) == 0 {
		return chatErrors.ConfigError("validate_taxonomy", fmt.Errorf("emotions: %w", chatErrors.ErrEmptyTaxonomy))
	}
	if len(t.Intents[types.LanguageEnglish]) == 0 {
		return chatErrors.ConfigError("validate_taxonomy", fmt.Errorf("english intents: %w", chatErrors.ErrUnsupportedLanguage))
	}

	seen := make(map[types.Context]bool, len(t.Contexts))
	for _, ck := range t.Contexts {
		if seen[ck.Context] {
			return chatErrors.ConfigError("validate_taxonomy", fmt.Errorf("context %q listed twice", ck.Context))
		}
		seen[ck.Context] = true
		if len(ck.Keywords) == 0 {
			return chatErrors.ConfigError("validate_taxonomy", fmt.Errorf("context %q: %w", ck.Context, chatErrors.ErrEmptyTaxonomy))
		}
	}
	return nil
}

// Languages returns the languages that have their own intent table.
func (t *Taxonomy) Languages() []types.Language {
	langs := make([]types.Language, 0, len(t.Intents))
	for _, lang := range types.SupportedLanguages {
		if _, ok := t.Intents[lang]; ok {
			langs = append(langs, lang)
		}
	}
	return langs
}

// Default returns the built-in tables.
func Default() *Taxonomy {
	t := &Taxonomy{
		Contexts: defaultContexts(),
		Emotions: defaultEmotions(),
		Intents:  defaultIntents(),
	}
	t.normalizeKeywords()
	return t
}

// normalizeKeywords puts every keyword in the same form Normalize gives the
// scanned text.
func (t *Taxonomy) normalizeKeywords() {
	for i := range t.Contexts {
		t.Contexts[i].Keywords = normalizeAll(t.Contexts[i].Keywords)
	}
	for i := range t.Emotions {
		t.Emotions[i].Keywords = normalizeAll(t.Emotions[i].Keywords)
	}
	for _, table := range t.Intents {
		for intent, keywords := range table {
			table[intent] = normalizeAll(keywords)
		}
	}
}

func normalizeAll(keywords []string) []string {
	out := make([]string, len(keywords))
	for i, kw := range keywords {
		out[i] = Normalize(kw)
	}
	return out
}

func defaultContexts() []ContextKeywords {
	return []ContextKeywords{
		{Context: types.ContextAction, Keywords: []string{"action", "fight", "explosion", "chase", "martial arts", "stunt", "অ্যাকশন", "एक्शन"}},
		{Context: types.ContextRomance, Keywords: []string{"romance", "romantic", "love story", "valentine", "couple", "date night", "রোমান্টিক", "ভালোবাসা", "प्यार", "रोमांटिक"}},
		{Context: types.ContextComedy, Keywords: []string{"comedy", "funny", "laugh", "hilarious", "humor", "humour", "কমেডি", "হাসির", "कॉमेडी", "मज़ेदार"}},
		{Context: types.ContextHorror, Keywords: []string{"horror", "scary", "ghost", "haunted", "zombie", "creepy", "ভূত", "ভৌতিক", "भूत", "डरावनी"}},
		{Context: types.ContextThriller, Keywords: []string{"thriller", "suspense", "heist", "tense", "থ্রিলার", "थ्रिलर"}},
		{Context: types.ContextSciFi, Keywords: []string{"sci-fi", "science fiction", "space", "alien", "robot", "time travel", "futuristic", "কল্পবিজ্ঞান", "साइंस फिक्शन"}},
		{Context: types.ContextBollywood, Keywords: []string{"bollywood", "hindi film", "hindi movie", "shah rukh", "srk", "salman", "aamir", "বলিউড", "बॉलीवुड"}},
		{Context: types.ContextBengali, Keywords: []string{"bengali", "bangla", "kolkata", "tollywood", "satyajit", "uttam kumar", "বাংলা", "কলকাতা"}},
		{Context: types.ContextAnime, Keywords: []string{"anime", "manga", "ghibli", "naruto", "one piece", "অ্যানিমে", "एनीमे"}},
		{Context: types.ContextDocumentary, Keywords: []string{"documentary", "true story", "real life", "biopic", "ডকুমেন্টারি", "वृत्तचित्र"}},
		{Context: types.ContextMusical, Keywords: []string{"musical", "song", "music", "dance", "singing", "গান", "गाना", "संगीत"}},
		{Context: types.ContextWestern, Keywords: []string{"western", "cowboy", "wild west", "gunslinger"}},
		{Context: types.ContextFantasy, Keywords: []string{"fantasy", "magic", "dragon", "wizard", "fairy tale", "রূপকথা", "जादू"}},
		{Context: types.ContextSuperhero, Keywords: []string{"superhero", "super hero", "marvel", "avengers", "batman", "spider-man", "spiderman", "superman", "dc comics"}},
		{Context: types.ContextMystery, Keywords: []string{"mystery", "detective", "whodunit", "murder", "investigation", "রহস্য", "গোয়েন্দা", "रहस्य", "जासूस"}},
		{Context: types.ContextDrama, Keywords: []string{"drama", "emotional", "tearjerker", "নাটক", "ड्रामा"}},
		{Context: types.ContextFamily, Keywords: []string{"family", "kids", "children", "animated", "cartoon", "পারিবারিক", "पारिवारिक"}},
	}
}

func defaultEmotions() []EmotionKeywords {
	return []EmotionKeywords{
		{Emotion: types.EmotionHappy, Keywords: []string{"happy", "glad", "great", "wonderful", "enjoy", "delighted", "খুশি", "আনন্দ", "खुश"}},
		{Emotion: types.EmotionExcited, Keywords: []string{"excited", "exciting", "amazing", "awesome", "thrilling", "can't wait", "wow", "দারুণ", "शानदार"}},
		{Emotion: types.EmotionCalm, Keywords: []string{"calm", "relax", "peaceful", "chill", "cozy", "শান্ত", "शांत"}},
		{Emotion: types.EmotionThoughtful, Keywords: []string{"think", "interesting", "wonder", "consider", "curious", "ভাবছি", "सोच"}},
		{Emotion: types.EmotionSurprised, Keywords: []string{"surprise", "unexpected", "shocking", "unbelievable", "plot twist", "omg", "অবাক", "हैरान"}},
		{Emotion: types.EmotionConfident, Keywords: []string{"definitely", "certainly", "absolutely", "for sure", "guaranteed", "trust me", "অবশ্যই", "ज़रूर", "जरूर"}},
		{Emotion: types.EmotionHelpful, Keywords: []string{"help", "assist", "here are", "here is", "let me", "sure", "সাহায্য", "मदद"}},
	}
}

func defaultIntents() map[types.Language]IntentTable {
	return map[types.Language]IntentTable{
		types.LanguageEnglish: {
			types.IntentSearch:    {"find", "search", "look for", "looking for", "where can i watch", "show me", "locate"},
			types.IntentRecommend: {"recommend", "suggest", "what should i watch", "something to watch", "any good", "best movie", "must watch", "must-watch"},
			types.IntentInfo:      {"tell me about", "what is", "who is", "who directed", "plot", "story of", "cast of", "information", "details", "release date"},
			types.IntentRating:    {"rating", "rated", "imdb", "score", "review", "how good"},
			types.IntentSimilar:   {"similar", "like this", "movies like", "shows like", "same as", "alike"},
			types.IntentGreeting:  {"hello", "hi there", "hey there", "good morning", "good afternoon", "good evening", "greetings", "howdy", "namaste", "what's up", "whats up"},
		},
		types.LanguageBengali: {
			types.IntentSearch:    {"খুঁজ", "খোঁজ", "সার্চ", "কোথায় দেখতে পাব"},
			types.IntentRecommend: {"সাজেস্ট", "সুপারিশ", "কী দেখব", "কি দেখব", "পরামর্শ", "রেকমেন্ড"},
			types.IntentInfo:      {"সম্পর্কে", "তথ্য", "বিস্তারিত", "কাহিনী", "কে পরিচালনা"},
			types.IntentRating:    {"রেটিং", "রিভিউ", "কেমন হয়েছে"},
			types.IntentSimilar:   {"মতো", "একই রকম", "অনুরূপ"},
			types.IntentGreeting:  {"হ্যালো", "নমস্কার", "আসসালামু আলাইকুম", "সালাম", "শুভ সকাল", "কেমন আছ"},
		},
		types.LanguageHindi: {
			types.IntentSearch:    {"खोज", "ढूंढ", "ढूँढ", "सर्च", "कहाँ देख"},
			types.IntentRecommend: {"सुझा", "सिफारिश", "क्या देखूं", "क्या देखूँ", "रिकमेंड"},
			types.IntentInfo:      {"के बारे में", "जानकारी", "बताओ", "बताइए", "कहानी", "विवरण"},
			types.IntentRating:    {"रेटिंग", "समीक्षा", "रिव्यू", "कैसी है"},
			types.IntentSimilar:   {"जैसी", "जैसा", "समान", "मिलती-जुलती"},
			types.IntentGreeting:  {"नमस्ते", "नमस्कार", "हैलो", "हेलो", "सुप्रभात", "प्रणाम"},
		},
		types.LanguageBanglish: {
			types.IntentSearch:    {"khujo", "khuji", "khuje", "khunje", "search koro", "kothay dekhbo", "find"},
			types.IntentRecommend: {"suggest", "recommend", "ki dekhbo", "kon movie", "valo movie", "bhalo movie"},
			types.IntentInfo:      {"somporke", "shomporke", "bolo", "bolen", "details", "kahini", "golpo"},
			types.IntentRating:    {"rating", "review", "kemon hoyeche", "kemon laglo"},
			types.IntentSimilar:   {"er moto", "moto", "similar", "same type"},
			types.IntentGreeting:  {"hello", "salam", "assalamu", "nomoskar", "kemon acho", "kemon achen", "shubho sokal"},
		},
	}
}
