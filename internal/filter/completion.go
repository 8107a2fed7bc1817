package filter

import (
	"fmt"

	"github.com/balkashynov/tudu/internal/models"
)

// Completion is the three-way done/open toggle. It is a separate policy
// from Facets and the two are not combined on the same control.
type Completion int

const (
	CompletionAll Completion = iota
	CompletionDone
	CompletionOpen
)

func (c Completion) String() string {
	switch c {
	case CompletionDone:
		return "done"
	case CompletionOpen:
		return "open"
	default:
		return "all"
	}
}

// ParseCompletion accepts all, done/completed, open/uncompleted
func ParseCompletion(s string) (Completion, error) {
	switch s {
	case "", "all":
		return CompletionAll, nil
	case "done", "completed":
		return CompletionDone, nil
	case "open", "uncompleted":
		return CompletionOpen, nil
	}
	return CompletionAll, fmt.Errorf("unknown completion filter %q", s)
}

// Match reports whether task passes the toggle
func (c Completion) Match(task models.Task) bool {
	switch c {
	case CompletionDone:
		return task.Completed()
	case CompletionOpen:
		return !task.Completed()
	default:
		return true
	}
}

// ApplyCompletion returns the tasks passing c in their original order
func ApplyCompletion(tasks []models.Task, c Completion) []models.Task {
	visible := make([]models.Task, 0, len(tasks))
	for _, task := range tasks {
		if c.Match(task) {
			visible = append(visible, task)
		}
	}
	return visible
}
