package models

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// Task represents a task as served by the remote API
type Task struct {
	ID        int64      `json:"id"`
	UID       string     `json:"uid"`
	Name      string     `json:"name"`
	Note      string     `json:"note,omitempty"`
	Status    Status     `json:"status"`
	Priority  string     `json:"priority"`
	DueDate   *time.Time `json:"due_date,omitempty"`
	ProjectID *int64     `json:"project_id,omitempty"`
	Tags      []Tag      `json:"tags,omitempty"`
}

// Project groups tasks on the server
type Project struct {
	ID   *int64 `json:"id"`
	UID  string `json:"uid"`
	Name string `json:"name"`
}

// Tag is attached to tasks by reference
type Tag struct {
	ID   *int64 `json:"id,omitempty"`
	UID  string `json:"uid,omitempty"`
	Name string `json:"name"`
}

// Valid reports whether the project carries both an id and a name
func (p Project) Valid() bool {
	return p.ID != nil && p.Name != ""
}

// Key returns the project id, or 0 for an invalid project
func (p Project) Key() int64 {
	if p.ID == nil {
		return 0
	}
	return *p.ID
}

// Valid reports whether the tag has a name
func (t Tag) Valid() bool {
	return t.Name != ""
}

// Completed reports whether the task is done
func (t Task) Completed() bool {
	return t.Status == StatusDone
}

// HasProject reports whether the task references a project
func (t Task) HasProject() bool {
	return t.ProjectID != nil && *t.ProjectID != 0
}

// TagNames returns the names of the attached tags in order
func (t Task) TagNames() []string {
	names := make([]string, 0, len(t.Tags))
	for _, tag := range t.Tags {
		names = append(names, tag.Name)
	}
	return names
}

// WithStatus returns a copy of the task carrying the new status
func (t Task) WithStatus(s Status) Task {
	t.Status = s
	return t
}

// timestamp layouts accepted from the server, most specific first
var dueLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// ParseTimestamp parses a due date as the server sends it
func ParseTimestamp(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	for _, layout := range dueLayouts {
		if ts, err := time.Parse(layout, s); err == nil {
			return ts, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognised timestamp %q", s)
}

// UnmarshalJSON accepts due dates under either due_date or dueDate and
// tolerates empty or unparsable values by leaving the due date unset.
func (t *Task) UnmarshalJSON(data []byte) error {
	type plain Task
	var aux struct {
		plain
		DueDate    *string `json:"due_date"`
		DueDateAlt *string `json:"dueDate"`
	}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	*t = Task(aux.plain)
	t.DueDate = nil

	raw := aux.DueDate
	if raw == nil || *raw == "" {
		raw = aux.DueDateAlt
	}
	if raw != nil && *raw != "" {
		if ts, err := ParseTimestamp(*raw); err == nil {
			t.DueDate = &ts
		}
	}
	return nil
}
