package main

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mantonx/cinebot/internal/config"
	"github.com/mantonx/cinebot/internal/modules/chatbotmodule/types"
)

var classifyFlags struct {
	response string
	language string
	asJSON   bool
}

var classifyCmd = &cobra.Command{
	Use:   "classify <message>",
	Short: "Classify a message and show the matched persona",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runClassify,
}

func init() {
	f := classifyCmd.Flags()
	f.StringVarP(&classifyFlags.response, "response", "r", "", "Most recent bot response, scanned for context and emotion")
	f.StringVarP(&classifyFlags.language, "language", "l", "", "Language code (en, bn, hi, banglish)")
	f.BoolVar(&classifyFlags.asJSON, "json", false, "Print JSON")
}

func runClassify(cmd *cobra.Command, args []string) error {
	svc, cleanup, err := newService(cmd.Context(), config.Get())
	if err != nil {
		return err
	}
	defer cleanup()

	result := svc.Classify(types.ClassificationInput{
		MessageText:  strings.Join(args, " "),
		ResponseText: classifyFlags.response,
		Language:     types.Language(classifyFlags.language),
	})

	out := cmd.OutOrStdout()
	if classifyFlags.asJSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(result)
	}

	fmt.Fprintf(out, "Intent:   %s\n", result.Intent)
	fmt.Fprintf(out, "Context:  %s\n", result.Context)
	fmt.Fprintf(out, "Emotion:  %s\n", result.Emotion)
	fmt.Fprintf(out, "Persona:  %s (score %d)\n", result.PersonaID, result.Score)
	fmt.Fprintf(out, "Avatar:   %s %s\n", result.Avatar.DisplayName, result.Avatar.ImageRef)
	return nil
}
