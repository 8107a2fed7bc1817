package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/balkashynov/tudu/internal/api"
	"github.com/balkashynov/tudu/internal/board"
	"github.com/balkashynov/tudu/internal/filter"
	"github.com/balkashynov/tudu/internal/models"
	"github.com/balkashynov/tudu/internal/parser"
)

// Focus represents what UI element has focus
type Focus int

const (
	FocusTable Focus = iota
	FocusFilter
	FocusDetail
)

const noticeTTL = 3 * time.Second

// ListOptions configures the task list
type ListOptions struct {
	Endpoint   string
	DateLayout string
	Filter     string // initial dropdown value, e.g. "status-1"
	Recorder   board.Recorder
	Open       func(url string) error
}

// Messages produced by the list's commands
type (
	loadedMsg struct {
		board *board.Board
		err   error
	}
	statusChangedMsg struct {
		change board.StatusChange
	}
	noticeExpiredMsg struct {
		seq int
	}
)

// ListModel represents the TUI model for listing tasks
type ListModel struct {
	ctx    context.Context
	repo   board.Repository
	opts   ListOptions
	width  int
	height int

	board    *board.Board
	visible  []models.Task
	selected int // index in visible
	loading  bool
	busy     bool
	err      error

	focus        Focus
	filterCursor int
	filterItems  []filter.Option

	notice    *board.Notice
	noticeSeq int

	shimmer *Shimmer

	currentPage  int
	tasksPerPage int
}

// NewListModel creates a list that loads its board on Init
func NewListModel(ctx context.Context, repo board.Repository, opts ListOptions) ListModel {
	b := board.New()
	if opts.Filter != "" {
		// an invalid initial value keeps the default "all" view
		_ = b.SetFilter(opts.Filter)
	}
	return ListModel{
		ctx:          ctx,
		repo:         repo,
		opts:         opts,
		board:        b,
		loading:      true,
		focus:        FocusTable,
		shimmer:      NewShimmer(DefaultShimmerConfig()),
		tasksPerPage: 10,
	}
}

// Init initializes the model
func (m ListModel) Init() tea.Cmd {
	return tea.Batch(m.load(), m.shimmer.Tick())
}

// load builds a fresh board off the UI loop, keeping the current selection
func (m ListModel) load() tea.Cmd {
	ctx, repo := m.ctx, m.repo
	sel := m.board.Control().Selection()
	return func() tea.Msg {
		b := board.New()
		b.Control().Select(sel)
		if err := b.Load(ctx, repo); err != nil {
			return loadedMsg{err: err}
		}
		return loadedMsg{board: b}
	}
}

// requestStatus runs the remote update off the UI loop
func (m ListModel) requestStatus(task models.Task, status models.Status) tea.Cmd {
	ctx, repo, rec := m.ctx, m.repo, m.opts.Recorder
	return func() tea.Msg {
		return statusChangedMsg{change: board.RequestStatus(ctx, repo, rec, task, status)}
	}
}

// Update handles messages
func (m ListModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case shimmerTickMsg:
		m.shimmer.Advance()
		return m, m.shimmer.Tick()

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		// header, column headers, pagination, help and borders
		m.tasksPerPage = max(3, m.height-12)
		m = m.clampPage()
		return m, nil

	case loadedMsg:
		m.loading = false
		if msg.err != nil {
			if m.board.Loaded() {
				// keep showing the last good board
				return m.showNotice(board.Notice{Style: board.Failure, Title: "Error", Message: msg.err.Error()})
			}
			m.err = msg.err
			return m, nil
		}
		m.err = nil
		m.board = msg.board
		return m.refresh(), nil

	case statusChangedMsg:
		m.busy = false
		if m.board.Confirm(msg.change) {
			m = m.refresh()
		}
		return m.showNotice(msg.change.Notice())

	case noticeExpiredMsg:
		if msg.seq == m.noticeSeq {
			m.notice = nil
		}
		return m, nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
		switch m.focus {
		case FocusFilter:
			return m.handleFilterKeys(msg)
		case FocusDetail:
			return m.handleDetailKeys(msg)
		default:
			return m.handleTableKeys(msg)
		}
	}

	return m, nil
}

func (m ListModel) handleTableKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "esc":
		return m, tea.Quit
	case "up", "k":
		return m.moveSelection(-1), nil
	case "down", "j":
		return m.moveSelection(1), nil
	case "left", "h":
		return m.turnPage(-1), nil
	case "right", "l":
		return m.turnPage(1), nil
	case "f":
		return m.openFilter(), nil
	case "r":
		if m.loading {
			return m, nil
		}
		m.loading = true
		return m, m.load()
	}

	if m.loading || m.err != nil {
		return m, nil
	}
	task, ok := m.current()
	if !ok {
		return m, nil
	}
	switch msg.String() {
	case "enter":
		m.focus = FocusDetail
		return m, nil
	case " ", "d":
		return m.toggle(task)
	case "o":
		return m.openInBrowser(task)
	}
	return m, nil
}

func (m ListModel) handleDetailKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	task, ok := m.current()
	if !ok {
		m.focus = FocusTable
		return m, nil
	}
	switch msg.String() {
	case "esc", "q", "backspace":
		m.focus = FocusTable
	case "enter", " ", "d":
		return m.toggle(task)
	case "o":
		return m.openInBrowser(task)
	}
	return m, nil
}

func (m ListModel) handleFilterKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc", "f":
		m.focus = FocusTable
	case "up", "k":
		if m.filterCursor > 0 {
			m.filterCursor--
		}
	case "down", "j":
		if m.filterCursor < len(m.filterItems)-1 {
			m.filterCursor++
		}
	case "enter":
		if m.filterCursor < len(m.filterItems) {
			// options come from filter.Options, so Set cannot fail here
			_ = m.board.SetFilter(m.filterItems[m.filterCursor].Value)
		}
		m.focus = FocusTable
		m.selected = 0
		m.currentPage = 0
		m = m.refresh()
	}
	return m, nil
}

// toggle starts a completion toggle unless one is already in flight
func (m ListModel) toggle(task models.Task) (tea.Model, tea.Cmd) {
	if m.busy {
		return m, nil
	}
	m.busy = true
	return m, m.requestStatus(task, board.ToggleTarget(task))
}

func (m ListModel) openInBrowser(task models.Task) (tea.Model, tea.Cmd) {
	if m.opts.Open == nil || task.UID == "" {
		return m, nil
	}
	if err := m.opts.Open(api.TaskURL(m.opts.Endpoint, task.UID)); err != nil {
		return m.showNotice(board.Notice{Style: board.Failure, Title: "Error", Message: err.Error()})
	}
	return m, nil
}

func (m ListModel) showNotice(n board.Notice) (ListModel, tea.Cmd) {
	m.notice = &n
	m.noticeSeq++
	seq := m.noticeSeq
	return m, tea.Tick(noticeTTL, func(time.Time) tea.Msg {
		return noticeExpiredMsg{seq: seq}
	})
}

func (m ListModel) openFilter() ListModel {
	m.filterItems = nil
	current := m.board.Control().Value()
	m.filterCursor = 0
	for _, section := range filter.Options(m.board.Projects()) {
		for _, opt := range section.Options {
			if opt.Value == current {
				m.filterCursor = len(m.filterItems)
			}
			m.filterItems = append(m.filterItems, opt)
		}
	}
	m.focus = FocusFilter
	return m
}

// refresh recomputes the visible rows after the board changed
func (m ListModel) refresh() ListModel {
	m.visible = m.board.Visible()
	if m.selected >= len(m.visible) {
		m.selected = max(0, len(m.visible)-1)
	}
	if len(m.visible) == 0 && m.focus == FocusDetail {
		m.focus = FocusTable
	}
	return m.clampPage()
}

func (m ListModel) current() (models.Task, bool) {
	if m.selected < 0 || m.selected >= len(m.visible) {
		return models.Task{}, false
	}
	return m.visible[m.selected], true
}

func (m ListModel) moveSelection(delta int) ListModel {
	next := m.selected + delta
	if next < 0 || next >= len(m.visible) {
		return m
	}
	m.selected = next
	m.shimmer.Reset()
	m.currentPage = m.selected / m.tasksPerPage
	return m
}

func (m ListModel) turnPage(delta int) ListModel {
	next := m.currentPage + delta
	if next < 0 || next >= m.pages() {
		return m
	}
	m.currentPage = next
	m.selected = min(next*m.tasksPerPage, len(m.visible)-1)
	m.shimmer.Reset()
	return m
}

func (m ListModel) pages() int {
	return max(1, (len(m.visible)+m.tasksPerPage-1)/m.tasksPerPage)
}

func (m ListModel) clampPage() ListModel {
	if m.tasksPerPage > 0 {
		m.currentPage = m.selected / m.tasksPerPage
	}
	return m
}

// View renders the TUI
func (m ListModel) View() string {
	if m.width == 0 || m.height == 0 || (m.loading && !m.board.Loaded()) {
		return "Loading..."
	}
	if m.err != nil && !m.board.Loaded() {
		return m.renderError()
	}

	leftWidth := m.width * 60 / 100
	rightWidth := m.width - leftWidth - 1

	var right string
	if m.focus == FocusFilter {
		right = m.renderFilter(rightWidth)
	} else {
		right = m.renderTaskDetails(rightWidth)
	}

	content := lipgloss.JoinHorizontal(lipgloss.Top, m.renderTaskTable(leftWidth), " ", right)

	return lipgloss.JoinVertical(
		lipgloss.Left,
		"",
		content,
		m.renderNotice(),
		m.renderHelpBar(),
	)
}

func (m ListModel) renderError() string {
	title := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(ColorError)).Render("Failed to load tasks")
	body := lipgloss.NewStyle().Foreground(lipgloss.Color(ColorSecondaryText)).Render(m.err.Error())
	help := lipgloss.NewStyle().Foreground(lipgloss.Color(ColorHelpText)).Italic(true).Render("r retry · q quit")
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(ColorError)).
		Padding(1, 2).
		Render(title + "\n\n" + body + "\n\n" + help)
}

// renderTaskTable renders the left panel with the task table
func (m ListModel) renderTaskTable(width int) string {
	var b strings.Builder

	headerStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(ColorAccentBright))
	heading := "Tasks"
	if m.board.Control().Facets().Restrictive() {
		heading += " · " + m.filterTitle()
	}
	if m.loading {
		heading += " (refreshing)"
	}
	b.WriteString(headerStyle.Render(heading))
	b.WriteString("\n\n")

	if len(m.visible) == 0 {
		emptyStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(ColorSecondaryText)).Italic(true)
		b.WriteString(emptyStyle.Render("No tasks found"))
		return panel(width).Render(b.String())
	}

	idWidth := 6
	statusWidth := 13
	dueWidth := 10
	titleWidth := max(20, width-4-idWidth-statusWidth-dueWidth-6)

	columnHeaderStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(ColorAccentBright)).Padding(0, 1)
	b.WriteString(columnHeaderStyle.Render(fmt.Sprintf("%-*s %-*s %-*s %-*s",
		idWidth, "ID", titleWidth, "TITLE", statusWidth, "STATUS", dueWidth, "DUE")))
	b.WriteString("\n\n")

	start := m.currentPage * m.tasksPerPage
	end := min(start+m.tasksPerPage, len(m.visible))
	for i := start; i < end; i++ {
		task := m.visible[i]
		selected := i == m.selected

		title := truncate(task.Name, titleWidth)
		if selected {
			title = m.shimmer.Render(title)
		}
		title = pad(title, titleWidth)

		status := lipgloss.NewStyle().
			Foreground(lipgloss.Color(statusColor(task.Completed(), task.Status == models.StatusArchived))).
			Render(pad(task.Status.String(), statusWidth))

		row := fmt.Sprintf("%-*s %s %s %s", idWidth, fmt.Sprintf("#%d", task.ID), title, status, dueCell(task.DueDate, dueWidth))
		if selected {
			b.WriteString(lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(lipgloss.Color(ColorAccentMain)).
				Padding(0, 1).
				Render(row))
		} else {
			b.WriteString(" " + row)
		}
		b.WriteString("\n")
	}

	if m.pages() > 1 {
		pageStyle := lipgloss.NewStyle().
			Foreground(lipgloss.Color(ColorHelpText)).
			Align(lipgloss.Center).
			Width(width - 2).
			MarginTop(1)
		b.WriteString(pageStyle.Render(fmt.Sprintf("Page %d/%d (%d tasks)", m.currentPage+1, m.pages(), len(m.visible))))
	}

	return panel(width).Render(b.String())
}

// renderTaskDetails renders the right panel with task details
func (m ListModel) renderTaskDetails(width int) string {
	var b strings.Builder

	task, ok := m.current()
	if !ok {
		logo := lipgloss.NewStyle().Foreground(lipgloss.Color(ColorAccentMain)).Bold(true).Align(lipgloss.Center).Width(width)
		empty := lipgloss.NewStyle().Foreground(lipgloss.Color(ColorSecondaryText)).Italic(true).Align(lipgloss.Center).Width(width).MarginTop(2)
		b.WriteString(logo.Render("tudu"))
		b.WriteString("\n")
		b.WriteString(empty.Render("Select a task to view details"))
		return panel(width).Render(b.String())
	}

	label := lipgloss.NewStyle().Foreground(lipgloss.Color(ColorSecondaryText))
	accent := lipgloss.NewStyle().Foreground(lipgloss.Color(ColorAccentBright))

	b.WriteString(lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(ColorPrimaryText)).Width(width - 2).Render(task.Name))
	b.WriteString("\n\n")

	b.WriteString(label.Render("Status: "))
	b.WriteString(lipgloss.NewStyle().Bold(true).
		Foreground(lipgloss.Color(statusColor(task.Completed(), task.Status == models.StatusArchived))).
		Render(task.Status.String()))
	b.WriteString("\n")

	if task.Priority != "" {
		b.WriteString(label.Render("Priority: "))
		b.WriteString(lipgloss.NewStyle().Foreground(lipgloss.Color(priorityColor(task.Priority))).Render(task.Priority))
		b.WriteString("\n")
	}

	b.WriteString(label.Render("Due Date: "))
	if task.DueDate != nil {
		b.WriteString(lipgloss.NewStyle().Foreground(lipgloss.Color(ColorWarning)).Render(parser.FormatDate(task.DueDate, m.opts.DateLayout)))
	} else {
		b.WriteString(lipgloss.NewStyle().Foreground(lipgloss.Color(ColorDisabledText)).Render("-"))
	}
	b.WriteString("\n")

	if name := m.board.ProjectName(task); name != "" {
		b.WriteString(label.Render("Project: "))
		b.WriteString(accent.Render(name))
		b.WriteString("\n")
	}
	if names := task.TagNames(); len(names) > 0 {
		b.WriteString(label.Render("Tags: "))
		b.WriteString(accent.Render(strings.Join(names, ", ")))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	noteStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(ColorSecondaryText)).Italic(true).Width(width - 2)
	if task.Note != "" {
		b.WriteString(noteStyle.Render(task.Note))
	} else {
		b.WriteString(noteStyle.Foreground(lipgloss.Color(ColorDisabledText)).Render("No notes available."))
	}

	if m.focus == FocusDetail {
		action := board.ToggleTitle(task)
		if m.busy {
			action = "Updating..."
		}
		b.WriteString("\n\n")
		b.WriteString(lipgloss.NewStyle().
			Foreground(lipgloss.Color(ColorPrimaryText)).
			Background(lipgloss.Color(ColorAccentMain)).
			Padding(0, 2).
			Render(action))
	}

	border := ColorBorder
	if m.focus == FocusDetail {
		border = ColorAccentMain
	}
	return panel(width).BorderForeground(lipgloss.Color(border)).Render(b.String())
}

// renderFilter renders the dropdown in place of the detail panel
func (m ListModel) renderFilter(width int) string {
	var b strings.Builder
	heading := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(ColorAccentBright))
	normal := lipgloss.NewStyle().Foreground(lipgloss.Color(ColorSecondaryText))
	active := lipgloss.NewStyle().Foreground(lipgloss.Color(ColorPrimaryText)).Background(lipgloss.Color(ColorAccentMain))

	i := 0
	for _, section := range filter.Options(m.board.Projects()) {
		b.WriteString(heading.Render(section.Title))
		b.WriteString("\n")
		for _, opt := range section.Options {
			line := "  " + opt.Title
			if i == m.filterCursor {
				b.WriteString(active.Render("› " + opt.Title))
			} else {
				b.WriteString(normal.Render(line))
			}
			b.WriteString("\n")
			i++
		}
		b.WriteString("\n")
	}
	return panel(width).BorderForeground(lipgloss.Color(ColorAccentMain)).Render(strings.TrimRight(b.String(), "\n"))
}

func (m ListModel) renderNotice() string {
	if m.notice == nil {
		return ""
	}
	color := ColorSuccess
	if m.notice.Style == board.Failure {
		color = ColorError
	}
	text := m.notice.Title
	if m.notice.Message != "" {
		text += ": " + m.notice.Message
	}
	return lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(color)).Padding(0, 1).Render(text)
}

// renderHelpBar renders the help bar with hotkey hints
func (m ListModel) renderHelpBar() string {
	var help string
	switch m.focus {
	case FocusFilter:
		help = "↑/↓ choose · enter apply · esc close"
	case FocusDetail:
		help = "enter/space toggle · o open · esc back"
	default:
		help = "↑/↓ nav · ←/→ page · enter details · space done · f filter · o open · r reload · q quit"
	}
	return lipgloss.NewStyle().
		Foreground(lipgloss.Color(ColorHelpText)).
		Italic(true).
		Align(lipgloss.Center).
		Width(m.width).
		Render(help)
}

// filterTitle names the active dropdown entry
func (m ListModel) filterTitle() string {
	value := m.board.Control().Value()
	for _, section := range filter.Options(m.board.Projects()) {
		for _, opt := range section.Options {
			if opt.Value == value {
				return opt.Title
			}
		}
	}
	return value
}

func panel(width int) lipgloss.Style {
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(ColorBorder)).
		Width(width)
}

// dueCell renders the short due column
func dueCell(due *time.Time, width int) string {
	if due == nil {
		return lipgloss.NewStyle().Foreground(lipgloss.Color(ColorDisabledText)).Render(pad("-", width))
	}
	days := int(time.Until(*due).Hours() / 24)
	var text, color string
	switch {
	case time.Until(*due) < 0:
		text, color = "OVERDUE", ColorError
	case days == 0:
		text, color = "TODAY", ColorWarning
	case days == 1:
		text, color = "TOMORROW", ColorWarning
	case days <= 7:
		text, color = fmt.Sprintf("%dd", days), ColorAccentBright
	default:
		text, color = due.Local().Format("02/01"), ColorSecondaryText
	}
	return lipgloss.NewStyle().Foreground(lipgloss.Color(color)).Render(pad(text, width))
}

// truncate shortens s to width cells, rune-safe
func truncate(s string, width int) string {
	if lipgloss.Width(s) <= width {
		return s
	}
	runes := []rune(s)
	for len(runes) > 0 && lipgloss.Width(string(runes))+3 > width {
		runes = runes[:len(runes)-1]
	}
	return string(runes) + "..."
}

// pad right-pads styled text to width cells
func pad(s string, width int) string {
	if w := lipgloss.Width(s); w < width {
		return s + strings.Repeat(" ", width-w)
	}
	return s
}
