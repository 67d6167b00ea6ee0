package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/kavya/lexis/internal/accuracy"
	"github.com/kavya/lexis/internal/config"
	"github.com/kavya/lexis/internal/engine"
	"github.com/kavya/lexis/internal/store"
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze [message]",
	Short: "Score one message",
	Long:  "Scores a message passed as an argument, or read from stdin when no argument is given. With --user, the prior snapshot is loaded from the database and the weighted result saved back.",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		message, err := readMessage(cmd, args)
		if err != nil {
			return err
		}

		cfg, err := config.Load()
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		log := newLogger(cfg)

		tierFlag, _ := cmd.Flags().GetString("tier")
		levelFlag, _ := cmd.Flags().GetString("level")
		tutor, _ := cmd.Flags().GetString("tutor")
		asJSON, _ := cmd.Flags().GetBool("json")
		user, _ := cmd.Flags().GetString("user")

		req := accuracy.AnalysisRequest{
			Message:       message,
			TutorResponse: tutor,
			Tier:          accuracy.Tier(tierFlag),
			Level:         accuracy.Level(levelFlag),
		}

		var (
			snapshots store.SnapshotRepo
			events    store.EventRepo
		)
		if user != "" {
			dbPath, err := resolveDBPath(cmd)
			if err != nil {
				return fmt.Errorf("resolve DB path: %w", err)
			}
			st, err := store.Open(dbPath)
			if err != nil {
				return fmt.Errorf("open store: %w", err)
			}
			defer st.Close()
			snapshots = st.SnapshotRepo()
			events = st.EventRepo()

			prior, err := snapshots.Latest(ctx, user)
			if err != nil {
				return fmt.Errorf("load prior snapshot: %w", err)
			}
			req.Prior = prior
		}

		svc := buildService(ctx, cfg, events, log)
		res, err := svc.Analyze(ctx, req)
		if err != nil {
			return fmt.Errorf("analyze: %w", err)
		}

		if snapshots != nil {
			if err := snapshots.Save(ctx, user, res.Pair.Weighted); err != nil {
				return fmt.Errorf("save snapshot: %w", err)
			}
		}

		if asJSON {
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(res)
		}

		printSummary(cmd.OutOrStdout(), res)
		return nil
	},
}

func init() {
	analyzeCmd.Flags().String("tier", string(accuracy.TierFree), "subscription tier (free|pro|premium)")
	analyzeCmd.Flags().String("level", string(accuracy.LevelIntermediate), "learner level (beginner|intermediate|advanced|expert)")
	analyzeCmd.Flags().String("tutor", "", "tutor response to mine for correction evidence")
	analyzeCmd.Flags().Bool("json", false, "emit the full result as JSON")
	analyzeCmd.Flags().String("user", "", "user id for history smoothing against stored snapshots")
}

// readMessage takes the message from the argument list or, failing that,
// from stdin.
func readMessage(cmd *cobra.Command, args []string) (string, error) {
	if len(args) == 1 {
		return args[0], nil
	}
	data, err := io.ReadAll(cmd.InOrStdin())
	if err != nil {
		return "", fmt.Errorf("read stdin: %w", err)
	}
	return strings.TrimSpace(string(data)), nil
}

func printSummary(w io.Writer, res *engine.Result) {
	for _, line := range res.Summary() {
		fmt.Fprintln(w, line)
	}
}
