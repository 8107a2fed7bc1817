package models

import (
	"encoding/json"
	"testing"
	"time"
)

func TestStatusString(t *testing.T) {
	tests := []struct {
		status Status
		want   string
	}{
		{StatusNotStarted, "Not Started"},
		{StatusInProgress, "In Progress"},
		{StatusDone, "Done"},
		{StatusArchived, "Archived"},
		{StatusWaiting, "Waiting"},
		{Status(7), "Unknown"},
		{Status(-1), "Unknown"},
	}

	for _, tt := range tests {
		if got := tt.status.String(); got != tt.want {
			t.Errorf("Status(%d).String() = %q, want %q", int(tt.status), got, tt.want)
		}
	}
}

func TestParseStatus(t *testing.T) {
	tests := []struct {
		input   string
		want    Status
		wantErr bool
	}{
		{"0", StatusNotStarted, false},
		{"2", StatusDone, false},
		{"done", StatusDone, false},
		{"In Progress", StatusInProgress, false},
		{"in-progress", StatusInProgress, false},
		{"completed", StatusDone, false},
		{"5", 0, true},
		{"later", 0, true},
	}

	for _, tt := range tests {
		got, err := ParseStatus(tt.input)
		if tt.wantErr {
			if err == nil {
				t.Errorf("ParseStatus(%q) expected error", tt.input)
			}
			continue
		}
		if err != nil {
			t.Errorf("ParseStatus(%q) unexpected error: %v", tt.input, err)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseStatus(%q) = %v, want %v", tt.input, got, tt.want)
		}
	}
}

func TestTaskUnmarshalDueDate(t *testing.T) {
	input := `{
		"id": 4,
		"uid": "abc123",
		"name": "Write report",
		"status": 1,
		"priority": "high",
		"due_date": "2025-03-14T09:30:00.000Z",
		"project_id": 9,
		"tags": [{"uid": "t1", "name": "work"}]
	}`

	var task Task
	if err := json.Unmarshal([]byte(input), &task); err != nil {
		t.Fatalf("Unmarshal failed: %v", err)
	}

	if task.ID != 4 || task.UID != "abc123" || task.Name != "Write report" {
		t.Errorf("Unexpected identity fields: %+v", task)
	}
	if task.Status != StatusInProgress {
		t.Errorf("Expected status In Progress, got %v", task.Status)
	}
	want := time.Date(2025, 3, 14, 9, 30, 0, 0, time.UTC)
	if task.DueDate == nil || !task.DueDate.Equal(want) {
		t.Errorf("Expected due date %v, got %v", want, task.DueDate)
	}
	if !task.HasProject() || *task.ProjectID != 9 {
		t.Errorf("Expected project 9, got %v", task.ProjectID)
	}
	if names := task.TagNames(); len(names) != 1 || names[0] != "work" {
		t.Errorf("Expected tag names [work], got %v", names)
	}
}

func TestTaskUnmarshalAlternateDueKey(t *testing.T) {
	var task Task
	if err := json.Unmarshal([]byte(`{"id":1,"name":"A","status":0,"dueDate":"2025-01-02"}`), &task); err != nil {
		t.Fatalf("Unmarshal failed: %v", err)
	}
	if task.DueDate == nil || task.DueDate.Day() != 2 {
		t.Errorf("Expected due date from dueDate key, got %v", task.DueDate)
	}
}

func TestTaskUnmarshalKeepsUnknownStatus(t *testing.T) {
	var task Task
	if err := json.Unmarshal([]byte(`{"id":1,"name":"A","status":9,"due_date":null}`), &task); err != nil {
		t.Fatalf("Unmarshal failed: %v", err)
	}
	if task.Status != Status(9) {
		t.Errorf("Expected raw status 9 to be preserved, got %d", int(task.Status))
	}
	if task.Status.String() != "Unknown" {
		t.Errorf("Expected Unknown display text, got %q", task.Status.String())
	}
	if task.DueDate != nil {
		t.Errorf("Expected no due date, got %v", task.DueDate)
	}
}

func TestProjectValid(t *testing.T) {
	id := int64(1)
	if !(Project{ID: &id, Name: "A"}).Valid() {
		t.Error("Expected project with id and name to be valid")
	}
	if (Project{Name: "B"}).Valid() {
		t.Error("Expected project without id to be invalid")
	}
	if (Project{ID: &id}).Valid() {
		t.Error("Expected project without name to be invalid")
	}
}
