package commands

import (
	"github.com/spf13/cobra"

	"github.com/balkashynov/tudu/internal/models"
)

var archiveCmd = &cobra.Command{
	Use:     "archive [task-id]",
	Aliases: []string{"a"},
	Short:   "Archive a task",
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return setStatus(cmd, args[0], models.StatusArchived)
	},
}

var unarchiveCmd = &cobra.Command{
	Use:     "unarchive [task-id]",
	Aliases: []string{"ua"},
	Short:   "Unarchive a task (move back to not started)",
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return setStatus(cmd, args[0], models.StatusNotStarted)
	},
}
