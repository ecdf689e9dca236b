package bubbletea

import tea "github.com/charmbracelet/bubbletea"

// notifier turns store change callbacks into Bubble Tea messages. It holds at
// most one pending signal: changes that arrive while one is queued collapse
// into it, so a fast stream never blocks on the render loop.
type notifier chan struct{}

func newNotifier() notifier {
	return make(notifier, 1)
}

func (n notifier) notify() {
	select {
	case n <- struct{}{}:
	default:
	}
}

// wait returns a command that blocks until the next change.
func (n notifier) wait() tea.Cmd {
	return func() tea.Msg {
		<-n
		return StoreChangedMsg{}
	}
}
