package tui

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/balkashynov/tudu/internal/api"
	"github.com/balkashynov/tudu/internal/board"
	"github.com/balkashynov/tudu/internal/models"
	"github.com/balkashynov/tudu/internal/parser"
)

// Field is one row of the create form
type Field int

const (
	FieldName Field = iota
	FieldPriority
	FieldDue
	FieldStatus
	FieldNote
	FieldProject
	FieldTags
	fieldCount
)

var fieldLabels = [fieldCount]string{"Name", "Priority", "Due", "Status", "Note", "Project", "Tags"}

// Prefill seeds the form, usually from an inline title
type Prefill struct {
	Name     string
	Priority string
	Due      string
	Note     string
	Project  string // matched by name once projects load
	Tags     []string
}

type (
	catalogMsg struct {
		projects []models.Project
		tags     []models.Tag
	}
	createdMsg struct {
		name   string
		notice board.Notice
		err    error
	}
)

// FormModel creates tasks one after another until the user leaves
type FormModel struct {
	ctx  context.Context
	repo board.Repository
	rec  board.Recorder

	width  int
	height int

	inputs   map[Field]*textinput.Model
	focus    Field
	priority int // index into models.Priorities
	status   int // index into models.Statuses
	project  int // 0 is "None", otherwise index+1 into projects

	projects       []models.Project
	tags           []models.Tag
	catalogLoaded  bool
	pendingProject string

	submitting    bool
	validationErr string
	notice        *board.Notice
	noticeSeq     int

	created   []string
	cancelled bool
}

// NewFormModel creates the form. Projects and tags load on Init.
func NewFormModel(ctx context.Context, repo board.Repository, rec board.Recorder, pre Prefill) FormModel {
	m := FormModel{
		ctx:    ctx,
		repo:   repo,
		rec:    rec,
		inputs: map[Field]*textinput.Model{},
	}

	for _, f := range []Field{FieldName, FieldDue, FieldNote, FieldTags} {
		in := textinput.New()
		in.Width = 60
		in.TextStyle = lipgloss.NewStyle().Foreground(lipgloss.Color(ColorPrimaryText))
		in.PlaceholderStyle = lipgloss.NewStyle().Foreground(lipgloss.Color(ColorPlaceholder))
		in.Cursor.Style = lipgloss.NewStyle().Foreground(lipgloss.Color(ColorAccentBright))
		m.inputs[f] = &in
	}
	m.inputs[FieldName].Placeholder = "Task name (required)"
	m.inputs[FieldName].CharLimit = 200
	m.inputs[FieldDue].Placeholder = "dd/mm/yyyy, yyyy-mm-dd, tomorrow, 3 days"
	m.inputs[FieldDue].CharLimit = 50
	m.inputs[FieldNote].Placeholder = "Additional notes"
	m.inputs[FieldNote].CharLimit = 500
	m.inputs[FieldTags].Placeholder = "comma,separated,tags"
	m.inputs[FieldTags].CharLimit = 200
	m.inputs[FieldName].Focus()

	m.reset()
	m.inputs[FieldName].SetValue(pre.Name)
	m.inputs[FieldDue].SetValue(pre.Due)
	m.inputs[FieldNote].SetValue(pre.Note)
	m.inputs[FieldTags].SetValue(strings.Join(pre.Tags, ","))
	if pre.Priority != "" {
		m.priority = indexOf(models.Priorities, parser.NormalizePriority(pre.Priority))
	}
	m.pendingProject = pre.Project

	return m
}

// Init initializes the model
func (m FormModel) Init() tea.Cmd {
	ctx, repo := m.ctx, m.repo
	return tea.Batch(textinput.Blink, func() tea.Msg {
		return catalogMsg{projects: repo.ListProjects(ctx), tags: repo.ListTags(ctx)}
	})
}

// Created lists the names of tasks created in this session
func (m FormModel) Created() []string {
	return m.created
}

// Cancelled reports whether the user left without creating anything
func (m FormModel) Cancelled() bool {
	return m.cancelled
}

// Update handles messages
func (m FormModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		w := min(80, max(30, m.width*2/3-20))
		for _, in := range m.inputs {
			in.Width = w
		}
		return m, nil

	case catalogMsg:
		m.projects = msg.projects
		m.tags = msg.tags
		m.catalogLoaded = true
		if m.pendingProject != "" {
			m.project = 0
			for i, p := range m.projects {
				if strings.EqualFold(p.Name, m.pendingProject) {
					m.project = i + 1
				}
			}
			if m.project == 0 {
				m.validationErr = fmt.Sprintf("Unknown project %q", m.pendingProject)
			}
			m.pendingProject = ""
		}
		return m, nil

	case createdMsg:
		m.submitting = false
		if msg.err == nil {
			m.created = append(m.created, msg.name)
			m.reset()
			m = m.move(int(FieldName) - int(m.focus))
		}
		return m.showNotice(msg.notice)

	case noticeExpiredMsg:
		if msg.seq == m.noticeSeq {
			m.notice = nil
		}
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			m.cancelled = len(m.created) == 0
			return m, tea.Quit
		case "esc":
			m.cancelled = len(m.created) == 0
			return m, tea.Quit
		case "ctrl+s":
			return m.submit()
		case "enter":
			if m.focus == FieldTags {
				return m.submit()
			}
			return m.move(1), nil
		case "tab", "down":
			return m.move(1), nil
		case "shift+tab", "up":
			return m.move(-1), nil
		case "left", "right":
			if m.cycle(msg.String() == "right") {
				return m, nil
			}
		}
	}

	in, ok := m.inputs[m.focus]
	if !ok {
		return m, nil
	}
	updated, cmd := in.Update(msg)
	*in = updated
	return m, cmd
}

// cycle steps a choice field and reports whether the focus is one
func (m *FormModel) cycle(forward bool) bool {
	step := -1
	if forward {
		step = 1
	}
	wrap := func(v, n int) int { return ((v+step)%n + n) % n }
	switch m.focus {
	case FieldPriority:
		m.priority = wrap(m.priority, len(models.Priorities))
	case FieldStatus:
		m.status = wrap(m.status, len(models.Statuses))
	case FieldProject:
		m.project = wrap(m.project, len(m.projects)+1)
	default:
		return false
	}
	return true
}

func (m FormModel) move(delta int) FormModel {
	if in, ok := m.inputs[m.focus]; ok {
		in.Blur()
	}
	m.focus = Field((int(m.focus) + delta + int(fieldCount)) % int(fieldCount))
	if in, ok := m.inputs[m.focus]; ok {
		in.Focus()
	}
	return m
}

// reset clears the draft for the next task
func (m *FormModel) reset() {
	for _, in := range m.inputs {
		in.SetValue("")
	}
	m.priority = indexOf(models.Priorities, models.PriorityMedium)
	m.status = 0
	m.project = 0
	m.validationErr = ""
}

// Draft builds the request from the current field values
func (m FormModel) Draft() (api.Draft, error) {
	name := strings.TrimSpace(m.inputs[FieldName].Value())
	if name == "" {
		return api.Draft{}, errors.New("task name is required")
	}

	due, err := parser.ParseDueDate(m.inputs[FieldDue].Value())
	if err != nil {
		return api.Draft{}, err
	}

	draft := api.Draft{
		Name:     name,
		Priority: models.Priorities[m.priority],
		DueDate:  due,
		Status:   models.Statuses[m.status],
		Note:     strings.TrimSpace(m.inputs[FieldNote].Value()),
	}
	if m.project > 0 {
		draft.ProjectID = m.projects[m.project-1].ID
	}
	for _, raw := range strings.Split(m.inputs[FieldTags].Value(), ",") {
		if tag := strings.TrimSpace(raw); tag != "" {
			draft.Tags = append(draft.Tags, m.knownTag(tag))
		}
	}
	return draft, nil
}

func (m FormModel) knownTag(name string) models.Tag {
	for _, t := range m.tags {
		if strings.EqualFold(t.Name, name) {
			return t
		}
	}
	return models.Tag{Name: name}
}

func (m FormModel) submit() (tea.Model, tea.Cmd) {
	if m.submitting {
		return m, nil
	}
	draft, err := m.Draft()
	if err != nil {
		m.validationErr = err.Error()
		return m, nil
	}
	m.validationErr = ""
	m.submitting = true

	ctx, repo, rec := m.ctx, m.repo, m.rec
	return m, func() tea.Msg {
		notice, err := board.Create(ctx, repo, rec, draft)
		return createdMsg{name: draft.Name, notice: notice, err: err}
	}
}

func (m FormModel) showNotice(n board.Notice) (FormModel, tea.Cmd) {
	m.notice = &n
	m.noticeSeq++
	seq := m.noticeSeq
	return m, tea.Tick(noticeTTL, func(time.Time) tea.Msg {
		return noticeExpiredMsg{seq: seq}
	})
}

// View renders the TUI
func (m FormModel) View() string {
	if m.cancelled {
		return ""
	}

	var b strings.Builder
	b.WriteString(lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(ColorAccentBright)).Render("Create New Task"))
	b.WriteString("\n\n")

	labelStyle := lipgloss.NewStyle().Width(10).Foreground(lipgloss.Color(ColorSecondaryText))
	activeLabel := labelStyle.Foreground(lipgloss.Color(ColorAccentBright)).Bold(true)

	for f := Field(0); f < fieldCount; f++ {
		label := labelStyle
		if f == m.focus {
			label = activeLabel
		}
		b.WriteString(label.Render(fieldLabels[f]))
		b.WriteString(" ")
		b.WriteString(m.renderValue(f))
		b.WriteString("\n")
	}

	if m.focus == FieldTags && len(m.tags) > 0 {
		names := make([]string, 0, len(m.tags))
		for _, t := range m.tags {
			names = append(names, t.Name)
		}
		b.WriteString("\n")
		b.WriteString(lipgloss.NewStyle().Foreground(lipgloss.Color(ColorDisabledText)).Render("Known tags: " + strings.Join(names, ", ")))
		b.WriteString("\n")
	}

	if m.validationErr != "" {
		b.WriteString("\n")
		b.WriteString(lipgloss.NewStyle().Foreground(lipgloss.Color(ColorError)).Render(m.validationErr))
		b.WriteString("\n")
	}
	if m.notice != nil {
		color := ColorSuccess
		if m.notice.Style == board.Failure {
			color = ColorError
		}
		text := m.notice.Title
		if m.notice.Message != "" {
			text += ": " + m.notice.Message
		}
		b.WriteString("\n")
		b.WriteString(lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(color)).Render(text))
		b.WriteString("\n")
	}

	help := "tab/↓ next · ←/→ change · ctrl+s create · esc quit"
	if m.submitting {
		help = "Creating task..."
	}
	b.WriteString("\n")
	b.WriteString(lipgloss.NewStyle().Foreground(lipgloss.Color(ColorHelpText)).Italic(true).Render(help))

	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(ColorBorder)).
		Padding(1, 2).
		Render(b.String())
}

func (m FormModel) renderValue(f Field) string {
	if in, ok := m.inputs[f]; ok {
		return in.View()
	}

	var value string
	switch f {
	case FieldPriority:
		p := models.Priorities[m.priority]
		value = lipgloss.NewStyle().Foreground(lipgloss.Color(priorityColor(p))).Render(p)
	case FieldStatus:
		value = models.Statuses[m.status].String()
	case FieldProject:
		switch {
		case !m.catalogLoaded:
			value = "Loading..."
		case m.project == 0:
			value = "None"
		default:
			value = m.projects[m.project-1].Name
		}
	}
	if f == m.focus {
		return lipgloss.NewStyle().Foreground(lipgloss.Color(ColorAccentBright)).Render("‹ " + value + " ›")
	}
	return lipgloss.NewStyle().Foreground(lipgloss.Color(ColorPrimaryText)).Render("  " + value)
}

func indexOf[T comparable](items []T, v T) int {
	for i, it := range items {
		if it == v {
			return i
		}
	}
	return 0
}
