package tui

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/balkashynov/tudu/internal/board"
)

// RunList starts the interactive task list
func RunList(ctx context.Context, repo board.Repository, opts ListOptions) error {
	p := tea.NewProgram(NewListModel(ctx, repo, opts), tea.WithAltScreen(), tea.WithContext(ctx))
	finalModel, err := p.Run()
	if err != nil {
		return err
	}

	// a load error is already on screen while the list runs; repeat it on exit
	if m, ok := finalModel.(ListModel); ok && m.err != nil {
		return m.err
	}
	return nil
}

// RunCreateForm starts the interactive create form
func RunCreateForm(ctx context.Context, repo board.Repository, rec board.Recorder, pre Prefill) error {
	p := tea.NewProgram(NewFormModel(ctx, repo, rec, pre), tea.WithAltScreen(), tea.WithContext(ctx))
	finalModel, err := p.Run()
	if err != nil {
		return err
	}

	// Handle exit messages after TUI closes
	if m, ok := finalModel.(FormModel); ok {
		if m.Cancelled() {
			fmt.Println("❌ Task creation cancelled.")
		}
		for _, name := range m.Created() {
			fmt.Printf("✅ New task %q added\n", name)
		}
	}
	return nil
}
