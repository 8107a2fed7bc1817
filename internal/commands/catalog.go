package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

var projectsCmd = &cobra.Command{
	Use:   "projects",
	Short: "List projects",
	Long:  "List projects with their ids, for use with 'tudu ls --project' and 'tudu add -p'.",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := setup(cmd, false)
		if err != nil {
			return err
		}
		defer a.Close()

		// a failed fetch reads as an empty list; details are in the log
		projects := a.client.ListProjects(cmd.Context())
		out := cmd.OutOrStdout()
		if len(projects) == 0 {
			fmt.Fprintln(out, "No projects found.")
			return nil
		}
		fmt.Fprintf(out, "%-6s %s\n", "ID", "NAME")
		for _, p := range projects {
			fmt.Fprintf(out, "%-6d %s\n", p.Key(), p.Name)
		}
		return nil
	},
}

var tagsCmd = &cobra.Command{
	Use:   "tags",
	Short: "List tags",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := setup(cmd, false)
		if err != nil {
			return err
		}
		defer a.Close()

		tags := a.client.ListTags(cmd.Context())
		out := cmd.OutOrStdout()
		if len(tags) == 0 {
			fmt.Fprintln(out, "No tags found.")
			return nil
		}
		for _, t := range tags {
			fmt.Fprintf(out, "#%s\n", t.Name)
		}
		return nil
	},
}
