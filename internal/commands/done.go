package commands

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/balkashynov/tudu/internal/board"
	"github.com/balkashynov/tudu/internal/models"
)

var doneCmd = &cobra.Command{
	Use:   "done [task-id]",
	Short: "Mark a task as completed",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return setStatus(cmd, args[0], models.StatusDone)
	},
}

var undoneCmd = &cobra.Command{
	Use:   "undone [task-id]",
	Short: "Mark a task back to not started",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return setStatus(cmd, args[0], models.StatusNotStarted)
	},
}

var statusCmd = &cobra.Command{
	Use:   "status [task-id] [status]",
	Short: "Set a task's status",
	Long: `Set a task's status. Status is a number or a name:
  0 not started, 1 in progress, 2 done, 3 archived, 4 waiting`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		status, err := models.ParseStatus(args[1])
		if err != nil {
			return err
		}
		return setStatus(cmd, args[0], status)
	},
}

// setStatus loads the task so the full record can be sent back with the
// new status
func setStatus(cmd *cobra.Command, rawID string, status models.Status) error {
	id, err := strconv.ParseInt(rawID, 10, 64)
	if err != nil {
		return fmt.Errorf("invalid task ID '%s'", rawID)
	}

	a, err := setup(cmd, false)
	if err != nil {
		return err
	}
	defer a.Close()

	ctx := cmd.Context()
	b := board.New()
	if err := b.Load(ctx, a.client); err != nil {
		return err
	}
	task, ok := b.Find(id)
	if !ok {
		return fmt.Errorf("task #%d not found", id)
	}

	notice, err := b.SetStatus(ctx, a.client, a.recorder(), task, status)
	if err != nil {
		if notice.Message != "" {
			return fmt.Errorf("%s: %s", notice.Title, notice.Message)
		}
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "✅ %s: #%d %s\n", notice.Title, task.ID, task.Name)
	return nil
}
