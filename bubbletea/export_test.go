package bubbletea

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"
)

// RunProgram exports run for testing.
func RunProgram(ctx context.Context, m Model, opts ...tea.ProgramOption) error {
	return run(ctx, m, opts...)
}

// BlockSeparator exports blockSeparator for testing.
func BlockSeparator(prev, curr MessageBlock) string {
	return blockSeparator(prev, curr)
}

// RenderContent exports renderContent for testing.
func RenderContent(m Model) string {
	return m.renderContent()
}

// TruncateTitle exports truncateTitle for testing.
func TruncateTitle(title string) string {
	return truncateTitle(title)
}
