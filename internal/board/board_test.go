package board

import (
	"context"
	"errors"
	"testing"

	"github.com/balkashynov/tudu/internal/api"
	"github.com/balkashynov/tudu/internal/models"
)

// stubRepo implements Repository in memory
type stubRepo struct {
	tasks       []models.Task
	tasksErr    error
	projects    []models.Project
	tags        []models.Tag
	updateErr   error
	createErr   error
	calls       []string
	updated     []models.Status
	createdName string
}

func (s *stubRepo) ListTasks(ctx context.Context) ([]models.Task, error) {
	s.calls = append(s.calls, "tasks")
	if s.tasksErr != nil {
		return nil, s.tasksErr
	}
	out := make([]models.Task, len(s.tasks))
	copy(out, s.tasks)
	return out, nil
}

func (s *stubRepo) ListProjects(ctx context.Context) []models.Project {
	s.calls = append(s.calls, "projects")
	if s.projects == nil {
		return []models.Project{}
	}
	return s.projects
}

func (s *stubRepo) ListTags(ctx context.Context) []models.Tag {
	s.calls = append(s.calls, "tags")
	return s.tags
}

func (s *stubRepo) UpdateTaskStatus(ctx context.Context, task models.Task, status models.Status) error {
	s.calls = append(s.calls, "update")
	if s.updateErr != nil {
		return s.updateErr
	}
	s.updated = append(s.updated, status)
	return nil
}

func (s *stubRepo) CreateTask(ctx context.Context, draft api.Draft) error {
	s.calls = append(s.calls, "create")
	if s.createErr != nil {
		return s.createErr
	}
	s.createdName = draft.Name
	return nil
}

// memRecorder keeps events in memory
type memRecorder struct {
	events []Event
}

func (m *memRecorder) Record(ctx context.Context, ev Event) error {
	m.events = append(m.events, ev)
	return nil
}

func ptr(v int64) *int64 { return &v }

func TestLoadAndFilterScenario(t *testing.T) {
	repo := &stubRepo{tasks: []models.Task{
		{ID: 1, Status: models.StatusNotStarted, Name: "A"},
		{ID: 2, Status: models.StatusDone, Name: "B"},
	}}
	b := New()
	ctx := context.Background()

	if err := b.Load(ctx, repo); err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if len(repo.calls) != 2 || repo.calls[0] != "projects" || repo.calls[1] != "tasks" {
		t.Errorf("Expected projects then tasks, got %v", repo.calls)
	}

	if err := b.SetFilter("status-0"); err != nil {
		t.Fatalf("SetFilter failed: %v", err)
	}
	visible := b.Visible()
	if len(visible) != 1 || visible[0].ID != 1 {
		t.Fatalf("Expected only task 1 visible, got %+v", visible)
	}

	rec := &memRecorder{}
	notice, err := b.SetStatus(ctx, repo, rec, visible[0], models.StatusDone)
	if err != nil {
		t.Fatalf("SetStatus failed: %v", err)
	}
	if notice.Style != Success || notice.Title != "Task marked as completed" {
		t.Errorf("Unexpected notice: %+v", notice)
	}

	task1, _ := b.Find(1)
	if task1.Status != models.StatusDone || task1.Name != "A" {
		t.Errorf("Expected task 1 to be {A done}, got %+v", task1)
	}
	task2, _ := b.Find(2)
	if task2.Status != models.StatusDone || task2.Name != "B" {
		t.Errorf("Task 2 must be unchanged, got %+v", task2)
	}

	if len(b.Visible()) != 0 {
		t.Errorf("Expected no not-started tasks after completion, got %+v", b.Visible())
	}

	if len(rec.events) != 1 || rec.events[0].Err != nil || rec.events[0].From != models.StatusNotStarted {
		t.Errorf("Expected one successful update event, got %+v", rec.events)
	}
}

func TestLoadLoginFailureLeavesBoardEmpty(t *testing.T) {
	authErr := &api.AuthenticationError{StatusCode: 401, StatusText: "Unauthorized"}
	repo := &stubRepo{tasksErr: authErr}
	b := New()

	err := b.Load(context.Background(), repo)
	if !errors.Is(err, api.ErrAuthentication) {
		t.Fatalf("Expected authentication error, got %v", err)
	}
	if b.Loaded() || len(b.Tasks()) != 0 {
		t.Errorf("Board must stay empty after a failed load, got %+v", b.Tasks())
	}
}

func TestLoadWithoutProjectsStillRenders(t *testing.T) {
	repo := &stubRepo{tasks: []models.Task{
		{ID: 1, Name: "A", ProjectID: ptr(3)},
		{ID: 2, Name: "B"},
	}}
	b := New()

	if err := b.Load(context.Background(), repo); err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if len(b.Visible()) != 2 {
		t.Fatalf("Expected both tasks visible, got %d", len(b.Visible()))
	}
	for _, task := range b.Tasks() {
		if name := b.ProjectName(task); name != "" {
			t.Errorf("Expected unresolved project for task %d, got %q", task.ID, name)
		}
	}
}

func TestProjectName(t *testing.T) {
	repo := &stubRepo{
		tasks:    []models.Task{{ID: 1, Name: "A", ProjectID: ptr(3)}},
		projects: []models.Project{{ID: ptr(3), Name: "Garden"}},
	}
	b := New()
	if err := b.Load(context.Background(), repo); err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if name := b.ProjectName(b.Tasks()[0]); name != "Garden" {
		t.Errorf("Expected Garden, got %q", name)
	}
	if err := b.SetFilter("project-3"); err != nil {
		t.Fatalf("SetFilter failed: %v", err)
	}
	if len(b.Visible()) != 1 {
		t.Errorf("Expected task in project 3 to be visible")
	}
}

func TestSetStatusFailureLeavesStateUnchanged(t *testing.T) {
	repo := &stubRepo{
		tasks:     []models.Task{{ID: 1, Name: "A", Status: models.StatusInProgress}},
		updateErr: &api.UpdateError{TaskID: 1, StatusCode: 500, StatusText: "Internal Server Error"},
	}
	b := New()
	ctx := context.Background()
	if err := b.Load(ctx, repo); err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	rec := &memRecorder{}
	notice, err := b.SetStatus(ctx, repo, rec, b.Tasks()[0], models.StatusDone)
	if !errors.Is(err, api.ErrUpdate) {
		t.Fatalf("Expected ErrUpdate, got %v", err)
	}
	if notice.Style != Failure || notice.Title != "Failed to update task" || notice.Message != "Internal Server Error" {
		t.Errorf("Unexpected notice: %+v", notice)
	}
	if task, _ := b.Find(1); task.Status != models.StatusInProgress {
		t.Errorf("Task must keep its status after a failed update, got %v", task.Status)
	}
	if len(rec.events) != 1 || rec.events[0].Err == nil {
		t.Errorf("Expected failed event to be recorded, got %+v", rec.events)
	}
}

func TestSetStatusLoginFailureNotice(t *testing.T) {
	repo := &stubRepo{
		tasks:     []models.Task{{ID: 1, Name: "A"}},
		updateErr: &api.AuthenticationError{StatusCode: 401, StatusText: "Unauthorized"},
	}
	b := New()
	ctx := context.Background()
	_ = b.Load(ctx, repo)

	notice, err := b.SetStatus(ctx, repo, nil, b.Tasks()[0], models.StatusDone)
	if err == nil {
		t.Fatal("Expected error")
	}
	if notice.Title != "Error" || notice.Message != "login failed: Unauthorized" {
		t.Errorf("Unexpected notice: %+v", notice)
	}
}

func TestToggleTarget(t *testing.T) {
	done := models.Task{Status: models.StatusDone}
	open := models.Task{Status: models.StatusWaiting}

	if ToggleTarget(done) != models.StatusNotStarted || ToggleTitle(done) != "Mark as Not Started" {
		t.Error("Done tasks should toggle back to not started")
	}
	if ToggleTarget(open) != models.StatusDone || ToggleTitle(open) != "Complete Task" {
		t.Error("Open tasks should toggle to done")
	}
}

func TestCreate(t *testing.T) {
	repo := &stubRepo{}
	rec := &memRecorder{}

	notice, err := Create(context.Background(), repo, rec, api.Draft{Name: "New"})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if notice.Title != "Task created successfully" || repo.createdName != "New" {
		t.Errorf("Unexpected result: %+v, created %q", notice, repo.createdName)
	}
	if len(rec.events) != 1 || rec.events[0].Kind != EventCreate {
		t.Errorf("Expected a create event, got %+v", rec.events)
	}

	repo.createErr = &api.CreateError{StatusCode: 400, StatusText: "Bad Request"}
	notice, err = Create(context.Background(), repo, rec, api.Draft{Name: "Broken"})
	if !errors.Is(err, api.ErrCreate) {
		t.Fatalf("Expected ErrCreate, got %v", err)
	}
	if notice.Style != Failure || notice.Message != "Bad Request" {
		t.Errorf("Unexpected failure notice: %+v", notice)
	}
}

func TestConfirmIgnoresFailedChange(t *testing.T) {
	repo := &stubRepo{tasks: []models.Task{{ID: 1, Name: "A", Status: models.StatusWaiting}}}
	b := New()
	_ = b.Load(context.Background(), repo)

	failed := StatusChange{Task: b.Tasks()[0], To: models.StatusDone, Err: errors.New("boom")}
	if b.Confirm(failed) {
		t.Error("Confirm must not apply a failed change")
	}
	if task, _ := b.Find(1); task.Status != models.StatusWaiting {
		t.Errorf("Expected status to stay Waiting, got %v", task.Status)
	}

	ok := StatusChange{Task: b.Tasks()[0], To: models.StatusArchived}
	if !b.Confirm(ok) {
		t.Error("Confirm should apply an accepted change")
	}
	if task, _ := b.Find(1); task.Status != models.StatusArchived {
		t.Errorf("Expected Archived, got %v", task.Status)
	}
	if ok.Notice().Title != "Task marked as archived" {
		t.Errorf("Unexpected notice: %+v", ok.Notice())
	}
}
