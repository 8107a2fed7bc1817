package board

import (
	"context"
	"fmt"

	"github.com/balkashynov/tudu/internal/api"
	"github.com/balkashynov/tudu/internal/filter"
	"github.com/balkashynov/tudu/internal/models"
)

// Repository is the remote side of a board
type Repository interface {
	ListTasks(ctx context.Context) ([]models.Task, error)
	ListProjects(ctx context.Context) []models.Project
	ListTags(ctx context.Context) []models.Tag
	UpdateTaskStatus(ctx context.Context, task models.Task, status models.Status) error
	CreateTask(ctx context.Context, draft api.Draft) error
}

// Board is the in-memory state of one list view: the fetched tasks and
// projects plus the filter dropdown. It lives for a single invocation.
type Board struct {
	tasks    []models.Task
	projects []models.Project
	control  *filter.Control
	loaded   bool
}

// New returns an empty board
func New() *Board {
	return &Board{control: filter.NewControl()}
}

// Load fetches projects then tasks, one login each. A projects failure is
// absorbed by the repository; a tasks failure leaves the board empty.
func (b *Board) Load(ctx context.Context, repo Repository) error {
	projects := repo.ListProjects(ctx)

	tasks, err := repo.ListTasks(ctx)
	if err != nil {
		return fmt.Errorf("failed to load tasks: %w", err)
	}

	b.projects = projects
	b.tasks = tasks
	b.loaded = true
	return nil
}

// Loaded reports whether a Load has succeeded
func (b *Board) Loaded() bool {
	return b.loaded
}

// Tasks returns every fetched task in server order
func (b *Board) Tasks() []models.Task {
	return b.tasks
}

// Projects returns the fetched projects
func (b *Board) Projects() []models.Project {
	return b.projects
}

// Control returns the filter dropdown
func (b *Board) Control() *filter.Control {
	return b.control
}

// SetFilter applies a dropdown value such as "status-2" or "project-7"
func (b *Board) SetFilter(value string) error {
	return b.control.Set(value)
}

// Visible recomputes the filtered task list from the full collection
func (b *Board) Visible() []models.Task {
	return filter.Apply(b.tasks, b.control.Facets())
}

// Find returns the task with the given id
func (b *Board) Find(id int64) (models.Task, bool) {
	for _, t := range b.tasks {
		if t.ID == id {
			return t, true
		}
	}
	return models.Task{}, false
}

// FindUID returns the task with the given external id
func (b *Board) FindUID(uid string) (models.Task, bool) {
	for _, t := range b.tasks {
		if t.UID == uid {
			return t, true
		}
	}
	return models.Task{}, false
}

// ProjectName resolves the task's project, or "" when it has none or the
// project was not fetched.
func (b *Board) ProjectName(task models.Task) string {
	if !task.HasProject() {
		return ""
	}
	for _, p := range b.projects {
		if p.Key() == *task.ProjectID {
			return p.Name
		}
	}
	return ""
}

// Apply records a status change the server has already confirmed. Only
// the task with a matching id changes.
func (b *Board) Apply(id int64, status models.Status) {
	for i := range b.tasks {
		if b.tasks[i].ID == id {
			b.tasks[i].Status = status
		}
	}
}
