package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/kavya/lexis/internal/accuracy"
	"github.com/kavya/lexis/internal/config"
	"github.com/kavya/lexis/internal/store"
	"github.com/kavya/lexis/internal/tui"
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Start the interactive scoring playground",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		cfg, err := config.Load()
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		log := newLogger(cfg)

		// Open the store for LLM event logging. The playground still works
		// without it.
		var eventRepo store.EventRepo
		dbPath, err := resolveDBPath(cmd)
		if err == nil {
			if st, err := store.Open(dbPath); err == nil {
				defer st.Close()
				eventRepo = st.EventRepo()
			} else {
				log.Warn().Err(err).Msg("store unavailable, llm events will not be recorded")
			}
		}

		tierFlag, _ := cmd.Flags().GetString("tier")
		levelFlag, _ := cmd.Flags().GetString("level")

		svc := buildService(ctx, cfg, eventRepo, log)
		return tui.Run(svc, accuracy.Tier(tierFlag), accuracy.Level(levelFlag))
	},
}

func init() {
	playCmd.SetContext(context.Background())
	playCmd.Flags().String("tier", string(accuracy.TierPremium), "subscription tier (free|pro|premium)")
	playCmd.Flags().String("level", string(accuracy.LevelIntermediate), "learner level (beginner|intermediate|advanced|expert)")
}
