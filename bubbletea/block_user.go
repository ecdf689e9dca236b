package bubbletea

import (
	"time"

	"github.com/charmbracelet/lipgloss"
)

var _ MessageBlock = (*UserMessageBlock)(nil)

// UserMessageBlock renders a user message under a "You" header with a
// colored left rule.
type UserMessageBlock struct {
	text   string
	at     time.Time
	styles Styles
}

// NewUserMessageBlock creates a UserMessageBlock.
func NewUserMessageBlock(text string, at time.Time, styles Styles) *UserMessageBlock {
	return &UserMessageBlock{text: text, at: at, styles: styles}
}

func (b *UserMessageBlock) View(width int) string {
	body := b.styles.UserBody.Width(max(width-2, 1)).Render(b.text)
	return lipgloss.JoinVertical(lipgloss.Left,
		header("You", b.at, b.styles.UserMsg, b.styles),
		body,
	)
}

// header renders "label · 15:04".
func header(label string, at time.Time, style lipgloss.Style, styles Styles) string {
	h := style.Render(label)
	if !at.IsZero() {
		h += styles.Muted.Render(" · " + at.Format("15:04"))
	}
	return h
}
