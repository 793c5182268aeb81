package main

import (
	"fmt"
	"math/rand"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/mantonx/cinebot/internal/modules/chatbotmodule/core/fallback"
	"github.com/mantonx/cinebot/internal/modules/chatbotmodule/types"
)

var fallbackFlags struct {
	intent   string
	language string
	name     string
	genre    string
	seed     int64
}

var fallbackCmd = &cobra.Command{
	Use:   "fallback [message]",
	Short: "Print a canned fallback reply",
	RunE:  runFallback,
}

func init() {
	f := fallbackCmd.Flags()
	f.StringVarP(&fallbackFlags.intent, "intent", "i", "", "Intent or category (greeting, search, recommend, info, rating, similar, default)")
	f.StringVarP(&fallbackFlags.language, "language", "l", "en", "Language code")
	f.StringVar(&fallbackFlags.name, "name", "", "User display name to weave in")
	f.StringVar(&fallbackFlags.genre, "genre", "", "User favorite genre to acknowledge")
	f.Int64Var(&fallbackFlags.seed, "seed", 0, "Random seed; 0 seeds from the clock")
}

func runFallback(cmd *cobra.Command, args []string) error {
	seed := fallbackFlags.seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	lang := types.ParseLanguage(fallbackFlags.language)
	message := strings.Join(args, " ")

	selector := fallback.NewSelector(nil, rand.New(rand.NewSource(seed)))
	choice := selector.Select(lang, types.Intent(fallbackFlags.intent), message)
	text := fallback.Personalize(choice.Text, lang, fallback.Personalization{
		DisplayName:   fallbackFlags.name,
		FavoriteGenre: fallbackFlags.genre,
	})

	fmt.Fprintf(cmd.OutOrStdout(), "[%s] %s\n", choice.Category, text)
	return nil
}
