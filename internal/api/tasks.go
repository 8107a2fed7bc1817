package api

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/balkashynov/tudu/internal/models"
)

const tasksPath = "/api/tasks?type=all&client_side_filtering=true"

// wireTimeLayout is the canonical timestamp sent on writes
// (2006-01-02T15:04:05.000Z, always UTC).
const wireTimeLayout = "2006-01-02T15:04:05.000Z07:00"

// FormatWireTime renders t the way the server expects due dates on writes.
// Display formatting lives elsewhere and must not reuse this.
func FormatWireTime(t time.Time) string {
	return t.UTC().Format(wireTimeLayout)
}

// ListTasks fetches every task. A non-2xx response is a *FetchError and an
// unrecognised body is a *ShapeError.
func (c *Client) ListTasks(ctx context.Context) ([]models.Task, error) {
	raw, err := c.get(ctx, "tasks", tasksPath)
	if err != nil {
		return nil, err
	}

	col, ok := Normalize[models.Task](raw, "tasks")
	if !ok {
		return nil, &ShapeError{Resource: "tasks"}
	}
	c.logger.Debug("fetched tasks", "count", len(col.Items), "shape", col.Shape)
	return col.Items, nil
}

// UpdatePayload is the full-record body sent by UpdateTaskStatus
type UpdatePayload struct {
	Name      string        `json:"name"`
	Priority  string        `json:"priority"`
	DueDate   string        `json:"due_date,omitempty"`
	Status    models.Status `json:"status"`
	Note      string        `json:"note"`
	ProjectID *int64        `json:"project_id,omitempty"`
	// nil omits the key; an empty list is sent as []
	Tags      *[]models.Tag `json:"tags,omitempty"`
}

// NewUpdatePayload resends every mutable field of task unchanged, with only
// the status replaced. The server treats PATCH bodies as whole records.
func NewUpdatePayload(task models.Task, status models.Status) UpdatePayload {
	p := UpdatePayload{
		Name:     task.Name,
		Priority: task.Priority,
		Status:   status,
		Note:     task.Note,
	}
	if task.DueDate != nil {
		p.DueDate = FormatWireTime(*task.DueDate)
	}
	if task.HasProject() {
		id := *task.ProjectID
		p.ProjectID = &id
	}
	if task.Tags != nil {
		tags := task.Tags
		p.Tags = &tags
	}
	return p
}

// UpdateTaskStatus logs in and writes task back with the new status. On
// success the caller updates its own copy of the task.
func (c *Client) UpdateTaskStatus(ctx context.Context, task models.Task, status models.Status) error {
	sess, err := c.Authenticate(ctx)
	if err != nil {
		return err
	}

	path := fmt.Sprintf("/api/task/%d", task.ID)
	resp, err := c.do(ctx, http.MethodPatch, path, sess, NewUpdatePayload(task, status))
	if err != nil {
		return fmt.Errorf("%w #%d: %w", ErrUpdate, task.ID, err)
	}
	defer resp.Body.Close()
	drain(resp)

	if !ok(resp) {
		return &UpdateError{TaskID: task.ID, StatusCode: resp.StatusCode, StatusText: statusText(resp)}
	}
	return nil
}

// Draft is a task being assembled by the user before creation
type Draft struct {
	Name      string
	Priority  string
	DueDate   *time.Time
	Status    models.Status
	Note      string
	ProjectID *int64
	Tags      []models.Tag
}

// CreatePayload is the body sent by CreateTask
type CreatePayload struct {
	Name      string        `json:"name"`
	Priority  string        `json:"priority"`
	DueDate   string        `json:"due_date,omitempty"`
	Status    models.Status `json:"status"`
	Note      string        `json:"note"`
	ProjectID *int64        `json:"project_id,omitempty"`
	Tags      []models.Tag  `json:"tags,omitempty"`
}

// NewCreatePayload converts a draft into the creation body
func NewCreatePayload(d Draft) CreatePayload {
	p := CreatePayload{
		Name:     d.Name,
		Priority: d.Priority,
		Status:   d.Status,
		Note:     d.Note,
	}
	if p.Priority == "" {
		p.Priority = models.PriorityMedium
	}
	if d.DueDate != nil {
		p.DueDate = FormatWireTime(*d.DueDate)
	}
	if d.ProjectID != nil && *d.ProjectID != 0 {
		id := *d.ProjectID
		p.ProjectID = &id
	}
	if len(d.Tags) > 0 {
		p.Tags = make([]models.Tag, 0, len(d.Tags))
		for _, tag := range d.Tags {
			p.Tags = append(p.Tags, models.Tag{Name: tag.Name})
		}
	}
	return p
}

// CreateTask logs in and posts the draft
func (c *Client) CreateTask(ctx context.Context, d Draft) error {
	sess, err := c.Authenticate(ctx)
	if err != nil {
		return err
	}

	resp, err := c.do(ctx, http.MethodPost, "/api/task", sess, NewCreatePayload(d))
	if err != nil {
		return fmt.Errorf("%w: %w", ErrCreate, err)
	}
	defer resp.Body.Close()
	drain(resp)

	if !ok(resp) {
		return &CreateError{StatusCode: resp.StatusCode, StatusText: statusText(resp)}
	}
	return nil
}
