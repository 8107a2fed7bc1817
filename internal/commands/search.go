package commands

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/balkashynov/tudu/internal/board"
	"github.com/balkashynov/tudu/internal/models"
)

var searchCmd = &cobra.Command{
	Use:   "search [query]",
	Short: "Search tasks across all fields",
	Long: `Search the fetched tasks with ranked matching:
- Exact match (highest priority)
- Prefix match
- Suffix match
- Contains (lowest priority)

Search is case insensitive and looks at name, note, project, tags, status
and priority.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		query := strings.Join(args, " ")
		jsonOutput, _ := cmd.Flags().GetBool("json")
		limit, _ := cmd.Flags().GetInt("limit")

		a, err := setup(cmd, false)
		if err != nil {
			return err
		}
		defer a.Close()

		b := board.New()
		if err := b.Load(cmd.Context(), a.client); err != nil {
			return err
		}

		tasks := searchTasks(b, query)
		if limit > 0 && len(tasks) > limit {
			tasks = tasks[:limit]
		}

		if jsonOutput {
			return renderSearchJSON(cmd.OutOrStdout(), tasks, query)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Search results for '%s' (%d found):\n\n", query, len(tasks))
		if len(tasks) > 0 {
			printTasks(cmd.OutOrStdout(), b, tasks, a.cfg.DateFormat)
		}
		return nil
	},
}

func init() {
	searchCmd.Flags().Bool("json", false, "print results as JSON")
	searchCmd.Flags().Int("limit", 0, "maximum number of results (0 for all)")
}

// Match ranks, best first
const (
	rankNone = iota
	rankContains
	rankSuffix
	rankPrefix
	rankExact
)

// searchTasks returns the tasks matching query, best match first and
// server order within a rank
func searchTasks(b *board.Board, query string) []models.Task {
	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" {
		return nil
	}

	type hit struct {
		task models.Task
		rank int
	}
	var hits []hit
	for _, task := range b.Tasks() {
		fields := []string{task.Name, task.Note, b.ProjectName(task), task.Status.String(), task.Priority}
		fields = append(fields, task.TagNames()...)

		best := rankNone
		for _, f := range fields {
			best = max(best, matchRank(strings.ToLower(f), query))
		}
		if best > rankNone {
			hits = append(hits, hit{task: task, rank: best})
		}
	}

	sort.SliceStable(hits, func(i, j int) bool { return hits[i].rank > hits[j].rank })
	out := make([]models.Task, len(hits))
	for i, h := range hits {
		out[i] = h.task
	}
	return out
}

func matchRank(field, query string) int {
	switch {
	case field == "":
		return rankNone
	case field == query:
		return rankExact
	case strings.HasPrefix(field, query):
		return rankPrefix
	case strings.HasSuffix(field, query):
		return rankSuffix
	case strings.Contains(field, query):
		return rankContains
	default:
		return rankNone
	}
}

// renderSearchJSON outputs search results as JSON
func renderSearchJSON(w io.Writer, tasks []models.Task, query string) error {
	type searchResult struct {
		Query string        `json:"query"`
		Count int           `json:"count"`
		Tasks []models.Task `json:"tasks"`
	}
	if tasks == nil {
		tasks = []models.Task{}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(searchResult{Query: query, Count: len(tasks), Tasks: tasks})
}
