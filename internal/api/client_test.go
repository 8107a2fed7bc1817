package api

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/balkashynov/tudu/internal/models"
)

func TestAuthenticate(t *testing.T) {
	f := newFakeServer()
	client := f.start(t)

	sess, err := client.Authenticate(context.Background())
	if err != nil {
		t.Fatalf("Authenticate failed: %v", err)
	}
	if sess.Cookie != testCookie {
		t.Errorf("Expected cookie %q, got %q", testCookie, sess.Cookie)
	}
}

func TestAuthenticateRejected(t *testing.T) {
	f := newFakeServer()
	f.loginStatus = http.StatusUnauthorized
	client := f.start(t)

	_, err := client.Authenticate(context.Background())
	if !errors.Is(err, ErrAuthentication) {
		t.Fatalf("Expected ErrAuthentication, got %v", err)
	}
	var authErr *AuthenticationError
	if !errors.As(err, &authErr) {
		t.Fatalf("Expected *AuthenticationError, got %T", err)
	}
	if authErr.StatusText != "Unauthorized" {
		t.Errorf("Expected status text 'Unauthorized', got %q", authErr.StatusText)
	}
}

func TestAuthenticateUnreachable(t *testing.T) {
	client := NewClient(Credentials{Endpoint: "http://127.0.0.1:1", Email: "a", Password: "b"})

	_, err := client.Authenticate(context.Background())
	if !errors.Is(err, ErrAuthentication) {
		t.Fatalf("Expected ErrAuthentication for transport failure, got %v", err)
	}
}

func TestListTasksShapes(t *testing.T) {
	elems := `[{"id":1,"uid":"a","name":"A","status":0,"priority":"low"},{"id":2,"uid":"b","name":"B","status":2,"priority":"high"}]`
	bodies := map[string]string{
		"bare":  elems,
		"data":  `{"data":` + elems + `}`,
		"tasks": `{"tasks":` + elems + `}`,
	}

	for name, body := range bodies {
		t.Run(name, func(t *testing.T) {
			f := newFakeServer()
			f.tasksBody = body
			client := f.start(t)

			tasks, err := client.ListTasks(context.Background())
			if err != nil {
				t.Fatalf("ListTasks failed: %v", err)
			}
			if len(tasks) != 2 {
				t.Fatalf("Expected 2 tasks, got %d", len(tasks))
			}
			if tasks[0].ID != 1 || tasks[1].ID != 2 {
				t.Errorf("Expected order [1 2], got [%d %d]", tasks[0].ID, tasks[1].ID)
			}
			if tasks[1].Status != models.StatusDone {
				t.Errorf("Expected task 2 to be done, got %v", tasks[1].Status)
			}
			if f.tasksQuery["type"] != "all" || f.tasksQuery["client_side_filtering"] != "true" {
				t.Errorf("Unexpected tasks query: %v", f.tasksQuery)
			}
		})
	}
}

func TestListTasksFetchError(t *testing.T) {
	f := newFakeServer()
	f.tasksStatus = http.StatusInternalServerError
	client := f.start(t)

	_, err := client.ListTasks(context.Background())
	if !errors.Is(err, ErrFetch) {
		t.Fatalf("Expected ErrFetch, got %v", err)
	}
	if errors.Is(err, ErrShape) {
		t.Error("Fetch failure must not be reported as a shape error")
	}
}

func TestListTasksShapeError(t *testing.T) {
	f := newFakeServer()
	f.tasksBody = `{"items":[{"id":1}]}`
	client := f.start(t)

	_, err := client.ListTasks(context.Background())
	if !errors.Is(err, ErrShape) {
		t.Fatalf("Expected ErrShape, got %v", err)
	}
}

func TestListTasksLoginFailure(t *testing.T) {
	f := newFakeServer()
	f.loginStatus = http.StatusForbidden
	client := f.start(t)

	tasks, err := client.ListTasks(context.Background())
	if !errors.Is(err, ErrAuthentication) {
		t.Fatalf("Expected ErrAuthentication, got %v", err)
	}
	if tasks != nil {
		t.Errorf("Expected no tasks, got %v", tasks)
	}
}

func TestEveryOperationLogsIn(t *testing.T) {
	f := newFakeServer()
	client := f.start(t)
	ctx := context.Background()

	client.ListProjects(ctx)
	if _, err := client.ListTasks(ctx); err != nil {
		t.Fatalf("ListTasks failed: %v", err)
	}
	if err := client.UpdateTaskStatus(ctx, models.Task{ID: 1, Name: "A"}, models.StatusDone); err != nil {
		t.Fatalf("UpdateTaskStatus failed: %v", err)
	}

	if got := f.loginCount(); got != 3 {
		t.Errorf("Expected one login per operation (3), got %d", got)
	}
}

func TestListProjectsFiltersInvalid(t *testing.T) {
	f := newFakeServer()
	f.projectsBody = `{"projects":[{"id":1,"name":"A"},{"id":null,"name":"B"},{"name":"C"}]}`
	client := f.start(t)

	projects := client.ListProjects(context.Background())
	if len(projects) != 1 {
		t.Fatalf("Expected 1 project, got %d: %+v", len(projects), projects)
	}
	if projects[0].Key() != 1 || projects[0].Name != "A" {
		t.Errorf("Expected project {1 A}, got %+v", projects[0])
	}
}

func TestListProjectsSoftFail(t *testing.T) {
	f := newFakeServer()
	f.projectsStatus = http.StatusInternalServerError
	client := f.start(t)

	projects := client.ListProjects(context.Background())
	if projects == nil || len(projects) != 0 {
		t.Errorf("Expected empty non-nil projects, got %v", projects)
	}
}

func TestListTagsSoftFailOnLogin(t *testing.T) {
	f := newFakeServer()
	f.loginStatus = http.StatusUnauthorized
	client := f.start(t)

	if tags := client.ListTags(context.Background()); len(tags) != 0 {
		t.Errorf("Expected no tags, got %v", tags)
	}
}

func TestListTags(t *testing.T) {
	f := newFakeServer()
	f.tagsBody = `{"data":[{"uid":"t1","name":"work"},{"uid":"t2"},{"uid":"t3","name":"home"}]}`
	client := f.start(t)

	tags := client.ListTags(context.Background())
	if len(tags) != 2 || tags[0].Name != "work" || tags[1].Name != "home" {
		t.Errorf("Expected [work home], got %+v", tags)
	}
}

func TestUpdateTaskStatusSendsFullRecord(t *testing.T) {
	f := newFakeServer()
	client := f.start(t)

	due := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	project := int64(7)
	task := models.Task{
		ID:        42,
		UID:       "uid-42",
		Name:      "Ship it",
		Note:      "remember the changelog",
		Status:    models.StatusInProgress,
		Priority:  "high",
		DueDate:   &due,
		ProjectID: &project,
		Tags:      []models.Tag{{UID: "t1", Name: "release"}},
	}

	if err := client.UpdateTaskStatus(context.Background(), task, models.StatusDone); err != nil {
		t.Fatalf("UpdateTaskStatus failed: %v", err)
	}
	if len(f.patched) != 1 {
		t.Fatalf("Expected 1 PATCH, got %d", len(f.patched))
	}
	if f.patchedPaths[0] != "/api/task/42" {
		t.Errorf("Expected PATCH /api/task/42, got %s", f.patchedPaths[0])
	}

	body := f.patched[0]
	if body["name"] != "Ship it" || body["priority"] != "high" || body["note"] != "remember the changelog" {
		t.Errorf("Unmodified fields not resent verbatim: %v", body)
	}
	if body["status"] != float64(2) {
		t.Errorf("Expected status 2, got %v", body["status"])
	}
	if body["due_date"] != "2025-06-01T12:00:00.000Z" {
		t.Errorf("Expected canonical due date, got %v", body["due_date"])
	}
	if body["project_id"] != float64(7) {
		t.Errorf("Expected project_id 7, got %v", body["project_id"])
	}
	tags, ok := body["tags"].([]any)
	if !ok || len(tags) != 1 {
		t.Fatalf("Expected one tag, got %v", body["tags"])
	}
	if tag := tags[0].(map[string]any); tag["name"] != "release" || tag["uid"] != "t1" {
		t.Errorf("Expected tag to be resent verbatim, got %v", tag)
	}
}

func TestUpdateTaskStatusOmitsAbsentFields(t *testing.T) {
	f := newFakeServer()
	client := f.start(t)

	task := models.Task{ID: 3, Name: "Bare", Priority: "low"}
	if err := client.UpdateTaskStatus(context.Background(), task, models.StatusWaiting); err != nil {
		t.Fatalf("UpdateTaskStatus failed: %v", err)
	}

	body := f.patched[0]
	for _, key := range []string{"due_date", "project_id", "tags"} {
		if _, present := body[key]; present {
			t.Errorf("Expected %s to be omitted, got %v", key, body[key])
		}
	}
	if note, present := body["note"]; !present || note != "" {
		t.Errorf("Expected empty note to be sent, got %v", note)
	}
}

func TestUpdateTaskStatusResendsEmptyTags(t *testing.T) {
	f := newFakeServer()
	client := f.start(t)

	task := models.Task{ID: 5, Name: "Untagged", Priority: "medium", Tags: []models.Tag{}}
	if err := client.UpdateTaskStatus(context.Background(), task, models.StatusDone); err != nil {
		t.Fatalf("UpdateTaskStatus failed: %v", err)
	}

	tags, present := f.patched[0]["tags"]
	if !present {
		t.Fatal("Expected empty tags to be sent")
	}
	if list, ok := tags.([]any); !ok || len(list) != 0 {
		t.Errorf("Expected tags to be [], got %v", tags)
	}
}

func TestUpdateTaskStatusRejected(t *testing.T) {
	f := newFakeServer()
	f.patchStatus = http.StatusForbidden
	client := f.start(t)

	err := client.UpdateTaskStatus(context.Background(), models.Task{ID: 5, Name: "X"}, models.StatusDone)
	if !errors.Is(err, ErrUpdate) {
		t.Fatalf("Expected ErrUpdate, got %v", err)
	}
	var updErr *UpdateError
	if !errors.As(err, &updErr) || updErr.StatusText != "Forbidden" {
		t.Errorf("Expected status text 'Forbidden', got %v", err)
	}
}

func TestCreateTask(t *testing.T) {
	f := newFakeServer()
	client := f.start(t)

	due := time.Date(2025, 12, 24, 23, 59, 59, 0, time.UTC)
	project := int64(3)
	draft := Draft{
		Name:      "Buy gifts",
		Priority:  "high",
		DueDate:   &due,
		Status:    models.StatusInProgress,
		Note:      "list in notes app",
		ProjectID: &project,
		Tags:      []models.Tag{{UID: "x", Name: "family"}},
	}
	if err := client.CreateTask(context.Background(), draft); err != nil {
		t.Fatalf("CreateTask failed: %v", err)
	}

	body := f.created[0]
	if body["name"] != "Buy gifts" || body["priority"] != "high" || body["status"] != float64(1) {
		t.Errorf("Unexpected create body: %v", body)
	}
	if body["due_date"] != "2025-12-24T23:59:59.000Z" {
		t.Errorf("Expected canonical due date, got %v", body["due_date"])
	}
	if body["project_id"] != float64(3) {
		t.Errorf("Expected project_id 3, got %v", body["project_id"])
	}
	tags := body["tags"].([]any)
	if len(tags) != 1 || tags[0].(map[string]any)["name"] != "family" {
		t.Errorf("Expected tag reference by name, got %v", tags)
	}
}

func TestCreateTaskMinimal(t *testing.T) {
	f := newFakeServer()
	client := f.start(t)

	if err := client.CreateTask(context.Background(), Draft{Name: "Quick"}); err != nil {
		t.Fatalf("CreateTask failed: %v", err)
	}

	body := f.created[0]
	if body["priority"] != "medium" {
		t.Errorf("Expected default priority medium, got %v", body["priority"])
	}
	if body["status"] != float64(0) {
		t.Errorf("Expected status 0, got %v", body["status"])
	}
	for _, key := range []string{"due_date", "project_id", "tags"} {
		if _, present := body[key]; present {
			t.Errorf("Expected %s to be omitted", key)
		}
	}
}

func TestCreateTaskRejected(t *testing.T) {
	f := newFakeServer()
	f.createStatus = http.StatusUnprocessableEntity
	client := f.start(t)

	err := client.CreateTask(context.Background(), Draft{Name: "Bad"})
	if !errors.Is(err, ErrCreate) {
		t.Fatalf("Expected ErrCreate, got %v", err)
	}
	var createErr *CreateError
	if !errors.As(err, &createErr) || createErr.StatusCode != http.StatusUnprocessableEntity {
		t.Errorf("Expected 422 CreateError, got %v", err)
	}
}

func TestTaskURL(t *testing.T) {
	tests := []struct {
		endpoint string
		uid      string
		want     string
	}{
		{"https://tasks.example.com", "abc", "https://tasks.example.com/task/abc"},
		{"https://tasks.example.com/", "abc", "https://tasks.example.com/task/abc"},
	}
	for _, tt := range tests {
		if got := TaskURL(tt.endpoint, tt.uid); got != tt.want {
			t.Errorf("TaskURL(%q, %q) = %q, want %q", tt.endpoint, tt.uid, got, tt.want)
		}
	}
}

func TestFormatWireTime(t *testing.T) {
	loc := time.FixedZone("UTC+2", 2*60*60)
	ts := time.Date(2025, 1, 2, 10, 0, 0, 0, loc)

	if got := FormatWireTime(ts); got != "2025-01-02T08:00:00.000Z" {
		t.Errorf("Expected UTC canonical form, got %s", got)
	}
}
