package commands

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/balkashynov/tudu/internal/config"
	"github.com/balkashynov/tudu/internal/db"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show recent changes sent to the server",
	Long: `Show the local journal of status changes and task creations, newest
first, including the ones the server rejected.`,
	Args: cobra.NoArgs,
	RunE: runHistory,
}

func init() {
	historyCmd.Flags().Int("limit", 20, "number of entries to show")
	historyCmd.Flags().Int64("task", 0, "only show entries for this task id")
}

func runHistory(cmd *cobra.Command, args []string) error {
	limit, _ := cmd.Flags().GetInt("limit")
	taskID, _ := cmd.Flags().GetInt64("task")

	// the journal needs no server credentials
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return err
	}
	if !cfg.Journal.Enabled {
		return errors.New("the journal is disabled (journal.enabled in config)")
	}
	j, err := db.Open(cfg.Journal.Path)
	if err != nil {
		return err
	}
	defer j.Close()

	var entries []db.Mutation
	if taskID > 0 {
		entries, err = j.ForTask(cmd.Context(), taskID)
		if err == nil && limit > 0 && len(entries) > limit {
			entries = entries[:limit]
		}
	} else {
		entries, err = j.Recent(cmd.Context(), limit)
	}
	if err != nil {
		return fmt.Errorf("failed to read journal: %w", err)
	}

	out := cmd.OutOrStdout()
	if len(entries) == 0 {
		fmt.Fprintln(out, "No history yet.")
		return nil
	}

	fmt.Fprintf(out, "Recent changes (%d):\n\n", len(entries))
	for _, e := range entries {
		mark := "✅"
		if !e.OK {
			mark = "❌"
		}
		switch e.Kind {
		case "create":
			fmt.Fprintf(out, "  %s  %s created %q\n", e.CreatedAt.Local().Format("2006-01-02 15:04"), mark, e.TaskName)
		default:
			fmt.Fprintf(out, "  %s  %s #%d %s: %s → %s\n",
				e.CreatedAt.Local().Format("2006-01-02 15:04"), mark, e.TaskID, e.TaskName, e.FromStatus, e.ToStatus)
		}
		if e.Error != "" {
			fmt.Fprintf(out, "      %s\n", e.Error)
		}
	}
	return nil
}
