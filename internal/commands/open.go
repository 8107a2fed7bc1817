package commands

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/balkashynov/tudu/internal/board"
	"github.com/balkashynov/tudu/internal/browser"
	"github.com/balkashynov/tudu/internal/models"
)

var openCmd = &cobra.Command{
	Use:   "open [task-id|uid]",
	Short: "Open a task in the browser",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := setup(cmd, false)
		if err != nil {
			return err
		}
		defer a.Close()

		b := board.New()
		if err := b.Load(cmd.Context(), a.client); err != nil {
			return err
		}

		var task models.Task
		var ok bool
		if id, err := strconv.ParseInt(args[0], 10, 64); err == nil {
			task, ok = b.Find(id)
		}
		if !ok {
			task, ok = b.FindUID(args[0])
		}
		if !ok {
			return fmt.Errorf("task %s not found", args[0])
		}
		if task.UID == "" {
			return fmt.Errorf("task #%d has no uid to link to", task.ID)
		}

		url := a.client.TaskURL(task.UID)
		fmt.Fprintln(cmd.OutOrStdout(), url)

		if printOnly, _ := cmd.Flags().GetBool("print"); printOnly {
			return nil
		}
		return browser.Open(url)
	},
}

func init() {
	openCmd.Flags().Bool("print", false, "only print the link")
}
