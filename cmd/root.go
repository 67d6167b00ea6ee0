package cmd

import (
	"io"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/kavya/lexis/internal/config"
	"github.com/kavya/lexis/internal/store"
)

var rootCmd = &cobra.Command{
	Use:   "lexis",
	Short: "English writing accuracy scorer",
	Long:  "Lexis scores learner messages across grammar, spelling, vocabulary, fluency, punctuation, and capitalization, with tier-aware depth and history smoothing.",
	RunE: func(cmd *cobra.Command, args []string) error {
		return cmd.Help()
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().String("db", "", "Path to SQLite database file (overrides LEXIS_DB env var)")

	rootCmd.AddCommand(analyzeCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(versionCmd)
}

// resolveDBPath returns the database path using --db flag (highest priority),
// then LEXIS_DB env var, then the default XDG path.
func resolveDBPath(cmd *cobra.Command) (string, error) {
	if p, _ := cmd.Flags().GetString("db"); p != "" {
		return p, store.EnsureDir(p)
	}
	return store.DefaultDBPath()
}

// newLogger builds the process logger from the logging config.
func newLogger(cfg *config.Config) zerolog.Logger {
	level, err := zerolog.ParseLevel(cfg.Logging.Level)
	if err != nil {
		level = zerolog.InfoLevel
	}
	var w io.Writer = os.Stderr
	if cfg.Logging.Pretty {
		w = zerolog.ConsoleWriter{Out: os.Stderr}
	}
	return zerolog.New(w).Level(level).With().Timestamp().Logger()
}
