package commands

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/balkashynov/tudu/internal/api"
	"github.com/balkashynov/tudu/internal/board"
	"github.com/balkashynov/tudu/internal/models"
	"github.com/balkashynov/tudu/internal/parser"
	"github.com/balkashynov/tudu/internal/tui"
)

var addCmd = &cobra.Command{
	Use:   "add [task name]",
	Short: "Create a new task",
	Long: `Create a new task on the server.

Modes:
  Interactive: tudu add -i (or just 'tudu add' with no arguments)
  Quick: tudu add "Task name" (with optional flags)
  Smart parsing: tudu add "Fix bug #urgent @backend +high due:tomorrow"

Smart parsing syntax:
  #tag1,tag2  - Tags (comma-separated or individual)
  @project    - Project name or id
  +priority   - Priority (low/medium/high or 1/2/3)
  due:3days   - Due date (dd/mm/yyyy, yyyy-mm-dd, today, tomorrow, X days, X hours, X weeks)

Flags take precedence over parsed values.`,
	Args: cobra.ArbitraryArgs,
	RunE: runAdd,
}

func init() {
	addCmd.Flags().BoolP("interactive", "i", false, "open the create form")
	addCmd.Flags().StringP("project", "p", "", "project name or id")
	addCmd.Flags().StringSliceP("tags", "t", nil, "comma-separated tags")
	addCmd.Flags().String("priority", "", "priority: low|medium|high (default medium)")
	addCmd.Flags().String("due", "", "due date")
	addCmd.Flags().String("status", "", "initial status (default not started)")
	addCmd.Flags().String("note", "", "task note")
}

func runAdd(cmd *cobra.Command, args []string) error {
	interactive, _ := cmd.Flags().GetBool("interactive")
	parsed := parser.ParseTitle(strings.Join(args, " "))
	applyAddFlags(cmd, &parsed)

	// parsing problems are fixed in the form rather than rejected
	if len(parsed.Errors) > 0 && len(args) > 0 {
		fmt.Fprintf(cmd.ErrOrStderr(), "⚠️  Found issues with parsing: %s\n", strings.Join(parsed.Errors, ", "))
		interactive = true
	}
	if len(args) == 0 {
		interactive = true
	}

	a, err := setup(cmd, interactive)
	if err != nil {
		return err
	}
	defer a.Close()

	if interactive {
		return tui.RunCreateForm(cmd.Context(), a.client, a.recorder(), prefill(cmd, parsed))
	}
	return directAdd(cmd, a, parsed)
}

// applyAddFlags overrides parsed values with explicit flags
func applyAddFlags(cmd *cobra.Command, parsed *parser.ParsedTask) {
	if project, _ := cmd.Flags().GetString("project"); project != "" {
		parsed.Project = project
	}
	if tags, _ := cmd.Flags().GetStringSlice("tags"); len(tags) > 0 {
		parsed.Tags = tags
	}
	if priority, _ := cmd.Flags().GetString("priority"); priority != "" {
		if parser.ValidPriority(priority) {
			parsed.Priority = parser.NormalizePriority(priority)
		} else {
			parsed.Errors = append(parsed.Errors, fmt.Sprintf("Invalid priority '%s'. Use: low, medium, high, 1, 2, or 3", priority))
		}
	}
	if due, _ := cmd.Flags().GetString("due"); due != "" {
		d, err := parser.ParseDueDate(due)
		if err != nil {
			parsed.Errors = append(parsed.Errors, err.Error())
		} else {
			parsed.DueDate = d
		}
	}
}

func prefill(cmd *cobra.Command, parsed parser.ParsedTask) tui.Prefill {
	pre := tui.Prefill{
		Name:     parsed.Name,
		Priority: parsed.Priority,
		Project:  parsed.Project,
		Tags:     parsed.Tags,
	}
	pre.Note, _ = cmd.Flags().GetString("note")
	if parsed.DueDate != nil {
		pre.Due = parsed.DueDate.Format("2006-01-02")
	}
	return pre
}

func directAdd(cmd *cobra.Command, a *app, parsed parser.ParsedTask) error {
	ctx := cmd.Context()
	if strings.TrimSpace(parsed.Name) == "" {
		return errors.New("task name is required")
	}

	draft := api.Draft{
		Name:     parsed.Name,
		Priority: parser.NormalizePriority(parsed.Priority),
		DueDate:  parsed.DueDate,
		Status:   models.StatusNotStarted,
	}
	draft.Note, _ = cmd.Flags().GetString("note")
	if raw, _ := cmd.Flags().GetString("status"); raw != "" {
		status, err := models.ParseStatus(raw)
		if err != nil {
			return err
		}
		draft.Status = status
	}
	if parsed.Project != "" {
		id, err := resolveProject(ctx, a.client, parsed.Project)
		if err != nil {
			return err
		}
		draft.ProjectID = id
	}
	for _, name := range parsed.Tags {
		draft.Tags = append(draft.Tags, models.Tag{Name: name})
	}

	notice, err := board.Create(ctx, a.client, a.recorder(), draft)
	if err != nil {
		return fmt.Errorf("%s: %s", notice.Title, notice.Message)
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "✅ %s: %s\n", notice.Title, draft.Name)
	if parsed.Project != "" {
		fmt.Fprintf(out, "  Project: %s\n", parsed.Project)
	}
	if len(parsed.Tags) > 0 {
		fmt.Fprintf(out, "  Tags: %s\n", strings.Join(parsed.Tags, ", "))
	}
	fmt.Fprintf(out, "  Priority: %s\n", draft.Priority)
	if draft.DueDate != nil {
		fmt.Fprintf(out, "  Due: %s\n", parser.FormatDueDate(draft.DueDate, a.cfg.DateFormat))
	}
	return nil
}

// resolveProject maps a project name or id to the server's id
func resolveProject(ctx context.Context, repo board.Repository, ref string) (*int64, error) {
	projects := repo.ListProjects(ctx)
	if id, err := strconv.ParseInt(ref, 10, 64); err == nil {
		for _, p := range projects {
			if p.Key() == id {
				return p.ID, nil
			}
		}
		// the projects list may have soft-failed; trust an explicit id
		return &id, nil
	}
	for _, p := range projects {
		if strings.EqualFold(p.Name, ref) {
			return p.ID, nil
		}
	}
	return nil, fmt.Errorf("unknown project %q (see 'tudu projects')", ref)
}
