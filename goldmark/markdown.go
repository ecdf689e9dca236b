// Package goldmark renders model replies, which arrive as markdown, into
// ANSI-styled terminal text. Parsing is done by goldmark with the Linkify and
// Strikethrough extensions; styling is done with lipgloss using the colors of
// a [scout.Theme].
package goldmark

import "github.com/fwojciec/scout"

// Render parses markdown source and returns ANSI-styled terminal output.
// Paragraphs, quotes and list items are word-wrapped to width. Code blocks
// are rendered without reflow.
func Render(source string, width int, theme scout.Theme) string {
	if source == "" {
		return ""
	}
	if width <= 0 {
		width = 80
	}
	return NewRenderer(theme).Render(source, width)
}
