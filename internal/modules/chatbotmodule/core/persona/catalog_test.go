package persona

import (
	"fmt"
	"sync"
	"testing"

	chatErrors "github.com/mantonx/cinebot/internal/modules/chatbotmodule/errors"
	"github.com/mantonx/cinebot/internal/modules/chatbotmodule/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultCatalog(t *testing.T) {
	catalog := DefaultCatalog()
	require.NoError(t, Validate(catalog))

	assert.Len(t, catalog, len(coreCatalog)+31)
	assert.Equal(t, types.DefaultPersonaID, catalog[0].ID)

	c := NewCatalog(catalog)
	host, ok := c.Get("horror_host")
	require.True(t, ok)
	assert.True(t, host.HasContext(types.ContextHorror))
	assert.False(t, host.HasContext(types.ContextGeneral))
}

func TestDefaultCatalog_ReturnsFreshCopies(t *testing.T) {
	a := DefaultCatalog()
	a[0].Contexts[0] = types.ContextHorror
	b := DefaultCatalog()
	assert.Equal(t, types.ContextGeneral, b[0].Contexts[0])
}

func TestGeneratedAvatars(t *testing.T) {
	avatars := GeneratedAvatars()
	require.Len(t, avatars, 31)

	assert.Equal(t, "avatar_01", avatars[0].ID)
	assert.Equal(t, []types.Context{types.ContextAction}, avatars[0].Contexts)
	assert.Equal(t, []types.Emotion{types.EmotionHappy}, avatars[0].Emotions)
	assert.Equal(t, "Happy Action Fan", avatars[0].DisplayName)
	assert.Equal(t, "avatars/avatar_01.png", avatars[0].ImageRef)

	assert.Equal(t, types.ContextHorror, avatars[3].Contexts[0])
	assert.Equal(t, types.EmotionThoughtful, avatars[3].Emotions[0])

	assert.Equal(t, "avatar_18", avatars[17].ID)
	assert.Equal(t, types.ContextAction, avatars[17].Contexts[0])
	assert.Equal(t, types.EmotionThoughtful, avatars[17].Emotions[0])

	assert.Equal(t, "Confident Sci Fi Fan", avatars[5].DisplayName)

	for i, a := range avatars {
		n := i + 1
		assert.Equal(t, fmt.Sprintf("avatar_%02d", n), a.ID)
		assert.Equal(t, generatedContexts[(n-1)%17], a.Contexts[0], a.ID)
		assert.Equal(t, generatedEmotions[(n-1)%7], a.Emotions[0], a.ID)
		assert.False(t, a.HasContext(types.ContextGeneral), a.ID)
		assert.False(t, a.HasEmotion(types.EmotionFriendly), a.ID)
	}
	assert.Equal(t, avatars, GeneratedAvatars())
}

func TestValidate(t *testing.T) {
	general := rec("g", []types.Context{types.ContextGeneral}, []types.Emotion{types.EmotionFriendly})

	tests := []struct {
		name    string
		records []types.PersonaRecord
		want    error
	}{
		{"empty", nil, chatErrors.ErrEmptyCatalog},
		{"missing id", []types.PersonaRecord{general, rec("", []types.Context{types.ContextAction}, []types.Emotion{types.EmotionHappy})}, chatErrors.ErrInvalidPersona},
		{"no contexts", []types.PersonaRecord{general, rec("x", nil, []types.Emotion{types.EmotionHappy})}, chatErrors.ErrInvalidPersona},
		{"no emotions", []types.PersonaRecord{general, rec("x", []types.Context{types.ContextAction}, nil)}, chatErrors.ErrInvalidPersona},
		{"duplicate", []types.PersonaRecord{general, general}, chatErrors.ErrDuplicatePersona},
		{"no general", []types.PersonaRecord{rec("x", []types.Context{types.ContextAction}, []types.Emotion{types.EmotionHappy})}, chatErrors.ErrNoGeneralPersona},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Validate(tt.records)
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.want)
			assert.Equal(t, chatErrors.ErrorTypeCatalog, chatErrors.GetType(err))
		})
	}

	assert.NoError(t, Validate([]types.PersonaRecord{general}))
}

func TestCatalog_Lookup(t *testing.T) {
	c := NewCatalog(DefaultCatalog())

	assert.Equal(t, len(DefaultCatalog()), c.Len())
	assert.Equal(t, "Horror Host", c.Avatar("horror_host").DisplayName)
	assert.Equal(t, types.DefaultPersonaID, c.Avatar("missing").ID)

	empty := NewCatalog(nil)
	assert.Equal(t, types.AvatarDescriptor{ID: "missing"}, empty.Avatar("missing"))

	var nilCatalog *Catalog
	assert.Zero(t, nilCatalog.Len())
	assert.Nil(t, nilCatalog.Records())
}

func TestCatalog_IsolatedFromInput(t *testing.T) {
	records := []types.PersonaRecord{rec("g", []types.Context{types.ContextGeneral}, []types.Emotion{types.EmotionFriendly})}
	c := NewCatalog(records)
	records[0].Contexts[0] = types.ContextAction
	records[0].ID = "changed"

	p, ok := c.Get("g")
	require.True(t, ok)
	assert.Equal(t, types.ContextGeneral, p.Contexts[0])
}

func TestStore_ReplaceKeepsPreviousOnError(t *testing.T) {
	store := NewStore(NewCatalog(DefaultCatalog()))
	before := store.Load()

	_, err := store.Replace(nil)
	require.Error(t, err)
	assert.Same(t, before, store.Load())

	next, err := store.Replace([]types.PersonaRecord{rec("g", []types.Context{types.ContextGeneral}, []types.Emotion{types.EmotionFriendly})})
	require.NoError(t, err)
	assert.Same(t, next, store.Load())
	assert.Equal(t, 1, store.Load().Len())
}

func TestStore_NilCatalogServesDefault(t *testing.T) {
	store := NewStore(nil)
	got := MatchPersona(store.Load().Records(), types.ContextAction, types.EmotionHappy)
	assert.Equal(t, types.DefaultPersonaID, got.PersonaID)
}

func TestStore_ConcurrentReadersSeeWholeSnapshots(t *testing.T) {
	small := []types.PersonaRecord{rec("g", []types.Context{types.ContextGeneral}, []types.Emotion{types.EmotionFriendly})}
	full := DefaultCatalog()
	store := NewStore(NewCatalog(full))

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 200; j++ {
				n := store.Load().Len()
				assert.True(t, n == len(small) || n == len(full), "unexpected catalog size %d", n)
			}
		}()
	}
	for i := 0; i < 50; i++ {
		if i%2 == 0 {
			_, _ = store.Replace(small)
		} else {
			_, _ = store.Replace(full)
		}
	}
	wg.Wait()
}
