package persona

import (
	"fmt"
	"strings"

	"github.com/mantonx/cinebot/internal/modules/chatbotmodule/types"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// DefaultCatalog returns the built-in catalog: the hand-authored personas
// followed by the generated avatars.
func DefaultCatalog() []types.PersonaRecord {
	out := make([]types.PersonaRecord, 0, len(coreCatalog)+generatedAvatarCount)
	for _, p := range coreCatalog {
		p.Contexts = append([]types.Context(nil), p.Contexts...)
		p.Emotions = append([]types.Emotion(nil), p.Emotions...)
		out = append(out, p)
	}
	return append(out, GeneratedAvatars()...)
}

// coreCatalog is ordered so that the general guide comes first and each
// genre host precedes every generated avatar sharing its context.
var coreCatalog = []types.PersonaRecord{
	{
		ID: types.DefaultPersonaID, DisplayName: "Friendly Guide", ImageRef: "avatars/friendly_guide.png",
		Contexts:    []types.Context{types.ContextGeneral},
		Emotions:    []types.Emotion{types.EmotionFriendly, types.EmotionHelpful, types.EmotionHappy},
		Description: "Your everyday movie companion.",
	},
	{
		ID: "action_hero", DisplayName: "Action Hero", ImageRef: "avatars/action_hero.png",
		Contexts:    []types.Context{types.ContextAction, types.ContextThriller, types.ContextSuperhero},
		Emotions:    []types.Emotion{types.EmotionExcited, types.EmotionConfident},
		Description: "Lives for car chases and last-second escapes.",
	},
	{
		ID: "romance_muse", DisplayName: "Romance Muse", ImageRef: "avatars/romance_muse.png",
		Contexts:    []types.Context{types.ContextRomance, types.ContextDrama},
		Emotions:    []types.Emotion{types.EmotionHappy, types.EmotionCalm, types.EmotionThoughtful},
		Description: "Knows every love story worth a rewatch.",
	},
	{
		ID: "comedy_jester", DisplayName: "Comedy Jester", ImageRef: "avatars/comedy_jester.png",
		Contexts:    []types.Context{types.ContextComedy, types.ContextFamily},
		Emotions:    []types.Emotion{types.EmotionHappy, types.EmotionExcited},
		Description: "Never misses a punchline.",
	},
	{
		ID: "horror_host", DisplayName: "Horror Host", ImageRef: "avatars/horror_host.png",
		Contexts:    []types.Context{types.ContextHorror, types.ContextThriller, types.ContextMystery},
		Emotions:    []types.Emotion{types.EmotionSurprised, types.EmotionThoughtful},
		Description: "Keeps the lights off and the jump scares coming.",
	},
	{
		ID: "scifi_explorer", DisplayName: "Sci-Fi Explorer", ImageRef: "avatars/scifi_explorer.png",
		Contexts:    []types.Context{types.ContextSciFi, types.ContextFantasy},
		Emotions:    []types.Emotion{types.EmotionThoughtful, types.EmotionExcited, types.EmotionSurprised},
		Description: "Charts a course through space operas and time loops.",
	},
	{
		ID: "bollywood_star", DisplayName: "Bollywood Star", ImageRef: "avatars/bollywood_star.png",
		Contexts:    []types.Context{types.ContextBollywood, types.ContextMusical, types.ContextRomance},
		Emotions:    []types.Emotion{types.EmotionExcited, types.EmotionHappy, types.EmotionConfident},
		Description: "Song, dance and drama in every answer.",
	},
	{
		ID: "bengali_storyteller", DisplayName: "Bengali Storyteller", ImageRef: "avatars/bengali_storyteller.png",
		Contexts:    []types.Context{types.ContextBengali, types.ContextDrama, types.ContextDocumentary},
		Emotions:    []types.Emotion{types.EmotionThoughtful, types.EmotionCalm, types.EmotionFriendly},
		Description: "From Satyajit Ray to modern Tollywood.",
	},
	{
		ID: "anime_otaku", DisplayName: "Anime Otaku", ImageRef: "avatars/anime_otaku.png",
		Contexts:    []types.Context{types.ContextAnime, types.ContextFantasy},
		Emotions:    []types.Emotion{types.EmotionExcited, types.EmotionHappy},
		Description: "Has opinions on every studio and every season.",
	},
	{
		ID: "documentary_scholar", DisplayName: "Documentary Scholar", ImageRef: "avatars/documentary_scholar.png",
		Contexts:    []types.Context{types.ContextDocumentary},
		Emotions:    []types.Emotion{types.EmotionThoughtful, types.EmotionConfident, types.EmotionHelpful},
		Description: "Real stories, carefully told.",
	},
	{
		ID: "musical_maestro", DisplayName: "Musical Maestro", ImageRef: "avatars/musical_maestro.png",
		Contexts:    []types.Context{types.ContextMusical},
		Emotions:    []types.Emotion{types.EmotionHappy, types.EmotionExcited},
		Description: "Hums the soundtrack before the credits roll.",
	},
	{
		ID: "western_ranger", DisplayName: "Western Ranger", ImageRef: "avatars/western_ranger.png",
		Contexts:    []types.Context{types.ContextWestern, types.ContextAction},
		Emotions:    []types.Emotion{types.EmotionConfident, types.EmotionCalm},
		Description: "Rides in at high noon with a recommendation.",
	},
	{
		ID: "fantasy_wizard", DisplayName: "Fantasy Wizard", ImageRef: "avatars/fantasy_wizard.png",
		Contexts:    []types.Context{types.ContextFantasy, types.ContextFamily},
		Emotions:    []types.Emotion{types.EmotionSurprised, types.EmotionThoughtful},
		Description: "Dragons, quests and enchanted forests.",
	},
	{
		ID: "superhero_sidekick", DisplayName: "Superhero Sidekick", ImageRef: "avatars/superhero_sidekick.png",
		Contexts:    []types.Context{types.ContextSuperhero, types.ContextAction},
		Emotions:    []types.Emotion{types.EmotionExcited, types.EmotionConfident, types.EmotionHelpful},
		Description: "Knows the watch order of every cinematic universe.",
	},
	{
		ID: "mystery_detective", DisplayName: "Mystery Detective", ImageRef: "avatars/mystery_detective.png",
		Contexts:    []types.Context{types.ContextMystery, types.ContextThriller},
		Emotions:    []types.Emotion{types.EmotionThoughtful, types.EmotionConfident},
		Description: "Spots the twist in the first ten minutes.",
	},
	{
		ID: "drama_critic", DisplayName: "Drama Critic", ImageRef: "avatars/drama_critic.png",
		Contexts:    []types.Context{types.ContextDrama, types.ContextGeneral},
		Emotions:    []types.Emotion{types.EmotionThoughtful, types.EmotionCalm},
		Description: "Weighs every performance.",
	},
	{
		ID: "family_buddy", DisplayName: "Family Buddy", ImageRef: "avatars/family_buddy.png",
		Contexts:    []types.Context{types.ContextFamily, types.ContextComedy, types.ContextGeneral},
		Emotions:    []types.Emotion{types.EmotionHappy, types.EmotionFriendly, types.EmotionHelpful},
		Description: "Picks something everyone on the couch will enjoy.",
	},
	{
		ID: "zen_companion", DisplayName: "Zen Companion", ImageRef: "avatars/zen_companion.png",
		Contexts:    []types.Context{types.ContextGeneral},
		Emotions:    []types.Emotion{types.EmotionCalm, types.EmotionThoughtful},
		Description: "Slow cinema and quiet evenings.",
	},
	{
		ID: "hype_critic", DisplayName: "Hype Critic", ImageRef: "avatars/hype_critic.png",
		Contexts:    []types.Context{types.ContextGeneral},
		Emotions:    []types.Emotion{types.EmotionExcited, types.EmotionConfident, types.EmotionSurprised},
		Description: "Always first in line on opening night.",
	},
	{
		ID: "help_desk", DisplayName: "Help Desk", ImageRef: "avatars/help_desk.png",
		Contexts:    []types.Context{types.ContextGeneral},
		Emotions:    []types.Emotion{types.EmotionHelpful, types.EmotionFriendly},
		Description: "Answers the practical questions.",
	},
}

const generatedAvatarCount = 31

// generatedContexts and generatedEmotions are cycled independently, so avatar
// n (1-based) gets generatedContexts[(n-1)%17] and generatedEmotions[(n-1)%7].
var (
	generatedContexts = []types.Context{
		types.ContextAction, types.ContextRomance, types.ContextComedy, types.ContextHorror,
		types.ContextThriller, types.ContextSciFi, types.ContextBollywood, types.ContextBengali,
		types.ContextAnime, types.ContextDocumentary, types.ContextMusical, types.ContextWestern,
		types.ContextFantasy, types.ContextSuperhero, types.ContextMystery, types.ContextDrama,
		types.ContextFamily,
	}
	generatedEmotions = []types.Emotion{
		types.EmotionHappy, types.EmotionExcited, types.EmotionCalm, types.EmotionThoughtful,
		types.EmotionSurprised, types.EmotionConfident, types.EmotionHelpful,
	}
)

// GeneratedAvatars returns the 31 templated avatars. Avatar n (1-based) is
//
//	id:       avatar_NN
//	contexts: [generatedContexts[(n-1)%17]]
//	emotions: [generatedEmotions[(n-1)%7]]
//
// e.g. avatar_01 is action/happy, avatar_04 is horror/thoughtful and
// avatar_18 is action/thoughtful. None of them carries general or friendly,
// so they never outrank a hand-authored persona on the default tags.
func GeneratedAvatars() []types.PersonaRecord {
	title := cases.Title(language.English)
	out := make([]types.PersonaRecord, generatedAvatarCount)
	for i := range out {
		ctx := generatedContexts[i%len(generatedContexts)]
		emo := generatedEmotions[i%len(generatedEmotions)]
		id := fmt.Sprintf("avatar_%02d", i+1)
		out[i] = types.PersonaRecord{
			ID:          id,
			DisplayName: title.String(fmt.Sprintf("%s %s fan", emo, strings.ReplaceAll(string(ctx), "-", " "))),
			ImageRef:    "avatars/" + id + ".png",
			Contexts:    []types.Context{ctx},
			Emotions:    []types.Emotion{emo},
			Description: fmt.Sprintf("A %s companion for %s picks.", emo, ctx),
		}
	}
	return out
}
