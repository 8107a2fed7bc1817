package commands

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/balkashynov/tudu/internal/board"
	"github.com/balkashynov/tudu/internal/browser"
	"github.com/balkashynov/tudu/internal/filter"
	"github.com/balkashynov/tudu/internal/models"
	"github.com/balkashynov/tudu/internal/parser"
	"github.com/balkashynov/tudu/internal/tui"
)

var listCmd = &cobra.Command{
	Use:     "ls",
	Aliases: []string{"list"},
	Short:   "List tasks",
	Long: `List tasks from the server.

In a terminal the list opens interactively. --no-ui, --json, --done and
--open print instead. --status and --project filter independently in
printed output; the interactive dropdown applies one of them at a time.`,
	Args: cobra.NoArgs,
	RunE: runList,
}

func init() {
	listCmd.Flags().StringP("status", "s", "", "filter by status: 0-4 or a name (done, in progress, ...)")
	listCmd.Flags().StringP("project", "p", "", "filter by project id, or no-project")
	listCmd.Flags().Bool("done", false, "show only completed tasks")
	listCmd.Flags().Bool("open", false, "show only tasks that are not completed")
	listCmd.Flags().Bool("json", false, "print tasks as JSON")
	listCmd.Flags().Bool("no-ui", false, "print a plain table instead of the interactive list")
	listCmd.MarkFlagsMutuallyExclusive("done", "open")
}

func runList(cmd *cobra.Command, args []string) error {
	facets, err := listFacets(cmd)
	if err != nil {
		return err
	}
	completion := filter.CompletionAll
	if done, _ := cmd.Flags().GetBool("done"); done {
		completion = filter.CompletionDone
	}
	if open, _ := cmd.Flags().GetBool("open"); open {
		completion = filter.CompletionOpen
	}
	jsonOut, _ := cmd.Flags().GetBool("json")
	noUI, _ := cmd.Flags().GetBool("no-ui")

	interactive := !noUI && !jsonOut && completion == filter.CompletionAll && isTerminal(cmd.OutOrStdout())

	a, err := setup(cmd, interactive)
	if err != nil {
		return err
	}
	defer a.Close()

	if interactive {
		return tui.RunList(cmd.Context(), a.client, tui.ListOptions{
			Endpoint:   a.cfg.APIURL,
			DateLayout: a.cfg.DateFormat,
			Filter:     dropdownValue(facets),
			Recorder:   a.recorder(),
			Open:       browser.Open,
		})
	}

	b := board.New()
	if err := b.Load(cmd.Context(), a.client); err != nil {
		return err
	}
	tasks := filter.ApplyCompletion(filter.Apply(b.Tasks(), facets), completion)

	if jsonOut {
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(tasks)
	}
	printTasks(cmd.OutOrStdout(), b, tasks, a.cfg.DateFormat)
	return nil
}

// listFacets turns --status and --project into filter facets
func listFacets(cmd *cobra.Command) (filter.Facets, error) {
	facets := filter.All()

	if raw, _ := cmd.Flags().GetString("status"); raw != "" && raw != filter.StatusAll {
		status, err := models.ParseStatus(raw)
		if err != nil {
			return facets, err
		}
		facets.Status = strconv.Itoa(int(status))
	}

	if raw, _ := cmd.Flags().GetString("project"); raw != "" {
		project, err := filter.ParseProject(raw)
		if err != nil {
			return facets, fmt.Errorf("invalid project %q: use a project id or %s", raw, filter.NoProject)
		}
		facets.Project = project
	}
	return facets, nil
}

// dropdownValue picks the single dropdown entry matching facets. The
// status facet wins when both are set.
func dropdownValue(f filter.Facets) string {
	switch {
	case f.Status != "" && f.Status != filter.StatusAll:
		return filter.StatusSelection(f.Status).String()
	case f.Project != "":
		return filter.ProjectSelection(f.Project).String()
	default:
		return ""
	}
}

func printTasks(w io.Writer, b *board.Board, tasks []models.Task, layout string) {
	if len(tasks) == 0 {
		fmt.Fprintln(w, "No tasks found. Use 'tudu add \"task name\"' to create one.")
		return
	}

	fmt.Fprintf(w, "%-6s %-12s %-40s %-15s %-8s %-12s %s\n", "ID", "STATUS", "NAME", "PROJECT", "PRIORITY", "DUE", "TAGS")
	fmt.Fprintln(w, strings.Repeat("-", 110))

	for _, task := range tasks {
		due := parser.FormatDate(task.DueDate, layout)
		if due == "" {
			due = "-"
		}
		fmt.Fprintf(w, "%-6d %-12s %-40s %-15s %-8s %-12s %s\n",
			task.ID,
			task.Status,
			clip(task.Name, 40),
			clip(b.ProjectName(task), 15),
			task.Priority,
			due,
			strings.Join(task.TagNames(), ","))
	}
}

// clip shortens s to n runes
func clip(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n-3]) + "..."
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && isatty.IsTerminal(f.Fd())
}
