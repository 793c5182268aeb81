package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/mantonx/cinebot/internal/config"
	"github.com/mantonx/cinebot/internal/logger"
)

// version is set at build time via -ldflags.
var version = "dev"

var rootFlags struct {
	configPath string
	logLevel   string
}

var rootCmd = &cobra.Command{
	Use:   "cinebot",
	Short: "Movie chatbot engine: intent, context, emotion and persona matching",
	Long: "cinebot classifies chat messages into an intent, a topical context and an\n" +
		"emotion, matches them to a persona avatar and serves canned fallback replies.",
	SilenceUsage: true,
	CompletionOptions: cobra.CompletionOptions{
		HiddenDefaultCmd: true,
	},
	PersistentPreRunE: loadConfig,
}

func init() {
	f := rootCmd.PersistentFlags()
	f.StringVarP(&rootFlags.configPath, "config", "c", os.Getenv("CINEBOT_CONFIG"), "Config file (yaml or json)")
	f.StringVar(&rootFlags.logLevel, "log-level", "", "Override the configured log level")

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(classifyCmd)
	rootCmd.AddCommand(personasCmd)
	rootCmd.AddCommand(fallbackCmd)
	rootCmd.Version = version
}

func loadConfig(cmd *cobra.Command, _ []string) error {
	if err := config.Load(rootFlags.configPath); err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	cfg := config.Get()

	level := cfg.Logging.Level
	if rootFlags.logLevel != "" {
		level = rootFlags.logLevel
	}
	logger.Configure(logger.Options{
		Level:  level,
		Format: cfg.Logging.Format,
		Output: cmd.ErrOrStderr(),
		Color:  cfg.Logging.EnableColors,
	})
	return nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
