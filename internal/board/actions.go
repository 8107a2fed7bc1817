package board

import (
	"context"
	"errors"

	"github.com/balkashynov/tudu/internal/api"
	"github.com/balkashynov/tudu/internal/models"
)

// Style of a transient notice
type Style int

const (
	Success Style = iota
	Failure
)

// Notice is the toast shown after a user action
type Notice struct {
	Style   Style
	Title   string
	Message string
}

// EventKind names the mutation an Event describes
type EventKind string

const (
	EventUpdate EventKind = "update"
	EventCreate EventKind = "create"
)

// Event describes one attempted mutation and its outcome
type Event struct {
	Kind     EventKind
	TaskID   int64
	TaskUID  string
	TaskName string
	From     models.Status
	To       models.Status
	Err      error
}

// Recorder receives every mutation attempt
type Recorder interface {
	Record(ctx context.Context, ev Event) error
}

// ToggleTarget is the status the detail view's primary action moves a
// task to: done tasks go back to not started, everything else to done.
func ToggleTarget(task models.Task) models.Status {
	if task.Completed() {
		return models.StatusNotStarted
	}
	return models.StatusDone
}

// ToggleTitle is the label of that action
func ToggleTitle(task models.Task) string {
	if task.Completed() {
		return "Mark as Not Started"
	}
	return "Complete Task"
}

// StatusChange is the outcome of asking the server for a new status
type StatusChange struct {
	Task models.Task
	To   models.Status
	Err  error
}

// Notice returns the toast for the change
func (c StatusChange) Notice() Notice {
	if c.Err != nil {
		return failureNotice("Failed to update task", c.Err)
	}
	return Notice{Style: Success, Title: "Task marked as " + c.To.Verb()}
}

// RequestStatus performs the remote update and journals it. It touches no
// board state, so it is safe to run off the UI loop.
func RequestStatus(ctx context.Context, repo Repository, rec Recorder, task models.Task, status models.Status) StatusChange {
	err := repo.UpdateTaskStatus(ctx, task, status)
	record(ctx, rec, Event{
		Kind:     EventUpdate,
		TaskID:   task.ID,
		TaskUID:  task.UID,
		TaskName: task.Name,
		From:     task.Status,
		To:       status,
		Err:      err,
	})
	return StatusChange{Task: task, To: status, Err: err}
}

// Confirm applies a change the server accepted and reports whether
// anything was applied. Failed changes are ignored.
func (b *Board) Confirm(c StatusChange) bool {
	if c.Err != nil {
		return false
	}
	b.Apply(c.Task.ID, c.To)
	return true
}

// SetStatus asks the server to move task to status. The board changes only
// after the server confirms; on failure nothing local changes and the
// returned notice carries the reason.
func (b *Board) SetStatus(ctx context.Context, repo Repository, rec Recorder, task models.Task, status models.Status) (Notice, error) {
	change := RequestStatus(ctx, repo, rec, task, status)
	b.Confirm(change)
	return change.Notice(), change.Err
}

// Create posts a new task. The board is not reloaded; the caller decides
// whether to discard the draft.
func Create(ctx context.Context, repo Repository, rec Recorder, draft api.Draft) (Notice, error) {
	err := repo.CreateTask(ctx, draft)
	record(ctx, rec, Event{
		Kind:     EventCreate,
		TaskName: draft.Name,
		To:       draft.Status,
		Err:      err,
	})
	if err != nil {
		return failureNotice("Failed to create task", err), err
	}
	return Notice{Style: Success, Title: "Task created successfully"}, nil
}

func failureNotice(title string, err error) Notice {
	var updErr *api.UpdateError
	var createErr *api.CreateError
	switch {
	case errors.As(err, &updErr):
		return Notice{Style: Failure, Title: title, Message: updErr.StatusText}
	case errors.As(err, &createErr):
		return Notice{Style: Failure, Title: title, Message: createErr.StatusText}
	default:
		return Notice{Style: Failure, Title: "Error", Message: err.Error()}
	}
}

func record(ctx context.Context, rec Recorder, ev Event) {
	if rec == nil {
		return
	}
	// journal failures never affect the action itself
	_ = rec.Record(ctx, ev)
}
