package bubbletea

import "github.com/charmbracelet/lipgloss"

var _ MessageBlock = (*ErrorBlock)(nil)

// ErrorBlock renders the conversation's error banner.
type ErrorBlock struct {
	text   string
	styles Styles
}

// NewErrorBlock creates an ErrorBlock.
func NewErrorBlock(text string, styles Styles) *ErrorBlock {
	return &ErrorBlock{text: text, styles: styles}
}

func (b *ErrorBlock) View(width int) string {
	// Border and padding take four columns.
	inner := max(width-4, 1)
	content := lipgloss.NewStyle().Width(inner).Render("⚠ " + b.text)
	return b.styles.ErrorBanner.Render(content)
}
