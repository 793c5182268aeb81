package taxonomy

import (
	"testing"

	chatErrors "github.com/mantonx/cinebot/internal/modules/chatbotmodule/errors"
	"github.com/mantonx/cinebot/internal/modules/chatbotmodule/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault_Valid(t *testing.T) {
	tax := Default()
	require.NoError(t, tax.Validate())

	assert.Equal(t, types.ContextAction, tax.Contexts[0].Context)
	assert.Equal(t, types.EmotionHappy, tax.Emotions[0].Emotion)
	assert.ElementsMatch(t, types.SupportedLanguages, tax.Languages())
}

func TestDefault_EveryLanguageCoversEveryIntent(t *testing.T) {
	tax := Default()
	for lang, table := range tax.Intents {
		for _, intent := range types.IntentPriority {
			assert.NotEmpty(t, table[intent], "language %s has no keywords for %s", lang, intent)
		}
	}
}

func TestDefault_KeywordsAreNormalized(t *testing.T) {
	tax := Default()
	for _, ck := range tax.Contexts {
		for _, kw := range ck.Keywords {
			assert.Equal(t, Normalize(kw), kw)
		}
	}
	for _, table := range tax.Intents {
		for _, keywords := range table {
			for _, kw := range keywords {
				assert.Equal(t, Normalize(kw), kw)
			}
		}
	}
}

func TestIntentTableFor_FallsBackToEnglish(t *testing.T) {
	tax := Default()

	table, lang := tax.IntentTableFor("fr")
	assert.Equal(t, types.LanguageEnglish, lang)
	assert.Equal(t, tax.Intents[types.LanguageEnglish], table)

	_, lang = tax.IntentTableFor(types.LanguageHindi)
	assert.Equal(t, types.LanguageHindi, lang)
}

func TestValidate_Incomplete(t *testing.T) {
	tests := []struct {
		name string
		tax  *Taxonomy
	}{
		{name: "nil", tax: nil},
		{name: "no contexts", tax: &Taxonomy{Emotions: Default().Emotions, Intents: Default().Intents}},
		{name: "no emotions", tax: &Taxonomy{Contexts: Default().Contexts, Intents: Default().Intents}},
		{name: "no english", tax: &Taxonomy{Contexts: Default().Contexts, Emotions: Default().Emotions}},
		{name: "empty context keywords", tax: &Taxonomy{
			Contexts: []ContextKeywords{{Context: types.ContextAction}},
			Emotions: Default().Emotions,
			Intents:  Default().Intents,
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.tax.Validate()
			require.Error(t, err)
			assert.Equal(t, chatErrors.ErrorTypeConfig, chatErrors.GetType(err))
		})
	}
}

func TestNormalize(t *testing.T) {
	assert.Equal(t, "tell me about horror", Normalize("Tell ME About HORROR"))
	assert.Equal(t, "বাংলা", Normalize("বাংলা"))
}

func TestContainsAny(t *testing.T) {
	kw, ok := ContainsAny("some scary horror movies", []string{"", "ghost", "horror", "scary"})
	assert.True(t, ok)
	assert.Equal(t, "horror", kw)

	_, ok = ContainsAny("nothing here", []string{"ghost"})
	assert.False(t, ok)
}
