// Package bubbletea provides the Bubble Tea terminal UI for a scout research
// session. The UI is a pure function of the session's conversation snapshot:
// store changes are delivered as [StoreChangedMsg] and the model re-renders
// from [scout.Session.Snapshot].
package bubbletea

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"
)

// Run creates and runs the Bubble Tea program. It blocks until the program
// exits. When ctx is cancelled the program quits.
func Run(ctx context.Context, m Model) error {
	return run(ctx, m, tea.WithAltScreen(), tea.WithMouseCellMotion())
}

func run(ctx context.Context, m Model, opts ...tea.ProgramOption) error {
	m.ctx = ctx
	p := tea.NewProgram(m, opts...)
	done := make(chan struct{})
	defer close(done)
	go func() {
		select {
		case <-ctx.Done():
			p.Quit()
		case <-done:
		}
	}()
	_, err := p.Run()
	return err
}

// StoreChangedMsg signals that the conversation changed since the last
// render. Bursts of changes are coalesced into one message.
type StoreChangedMsg struct{}

// SendDoneMsg signals that a send finished. A failure has already been
// recorded as the conversation's banner. A send that finishes after the
// conversation was cleared only triggers a redraw.
type SendDoneMsg struct {
	Err error

	run int
}

// ClearDoneMsg signals that the conversation was cleared. It ends any send
// still in flight as far as the UI is concerned.
type ClearDoneMsg struct {
	Err error
}
