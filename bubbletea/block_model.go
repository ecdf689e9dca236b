package bubbletea

import (
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/fwojciec/scout"
	"github.com/fwojciec/scout/goldmark"
)

var _ MessageBlock = (*ModelMessageBlock)(nil)

// ModelMessageBlock renders a model reply as markdown under a "Scout" header.
// Replies grow while they stream; paragraphs that can no longer change
// (everything before the last blank line outside a code fence) are rendered
// once per width and cached, so each fragment only re-renders the tail.
type ModelMessageBlock struct {
	text     string
	at       time.Time
	renderer *goldmark.Renderer
	styles   Styles

	// finalizedRaw is the stable prefix ending at the last blank line.
	finalizedRaw     string
	finalizedByWidth map[int]string
}

// NewModelMessageBlock creates an empty ModelMessageBlock.
func NewModelMessageBlock(at time.Time, theme scout.Theme, styles Styles) *ModelMessageBlock {
	return &ModelMessageBlock{
		at:               at,
		renderer:         goldmark.NewRenderer(theme),
		styles:           styles,
		finalizedByWidth: make(map[int]string),
	}
}

// SetText replaces the reply text. Cached rendering survives as long as the
// new text still starts with the finalized prefix.
func (b *ModelMessageBlock) SetText(text string) {
	if text == b.text {
		return
	}
	if b.finalizedRaw != "" && !strings.HasPrefix(text, b.finalizedRaw+"\n\n") {
		b.finalizedRaw = ""
		clear(b.finalizedByWidth)
	}
	b.text = text
	b.promoteFinalized()
}

// Text returns the current reply text.
func (b *ModelMessageBlock) Text() string { return b.text }

func (b *ModelMessageBlock) View(width int) string {
	h := header("Scout", b.at, b.styles.ModelMsg, b.styles)
	body := b.body(width)
	if body == "" {
		return h
	}
	return lipgloss.JoinVertical(lipgloss.Left, h, body)
}

func (b *ModelMessageBlock) body(width int) string {
	finalized := b.renderFinalized(width)
	trailing := b.trailingRaw()
	if hasUnclosedFence(trailing) {
		// Close the fence for display only.
		trailing += "\n```"
	}
	if strings.TrimSpace(trailing) == "" {
		return finalized
	}
	rendered := b.renderer.Render(trailing, width)
	if finalized == "" {
		return rendered
	}
	return strings.TrimRight(finalized, "\n") + "\n\n" + strings.TrimLeft(rendered, "\n")
}

// promoteFinalized moves the finalized boundary to the last blank line that
// is not inside a fenced code block.
func (b *ModelMessageBlock) promoteFinalized() {
	raw := b.text
	for end := len(raw); ; {
		idx := strings.LastIndex(raw[:end], "\n\n")
		if idx <= 0 {
			return
		}
		candidate := raw[:idx]
		if !hasUnclosedFence(candidate) {
			if candidate != b.finalizedRaw {
				b.finalizedRaw = candidate
				clear(b.finalizedByWidth)
			}
			return
		}
		end = idx
	}
}

func (b *ModelMessageBlock) renderFinalized(width int) string {
	if width <= 0 || b.finalizedRaw == "" {
		return ""
	}
	if cached, ok := b.finalizedByWidth[width]; ok {
		return cached
	}
	rendered := b.renderer.Render(b.finalizedRaw, width)
	b.finalizedByWidth[width] = rendered
	return rendered
}

func (b *ModelMessageBlock) trailingRaw() string {
	if b.finalizedRaw == "" {
		return b.text
	}
	return strings.TrimPrefix(b.text, b.finalizedRaw+"\n\n")
}

// hasUnclosedFence reports whether s has an odd number of "```" markers.
func hasUnclosedFence(s string) bool {
	return strings.Count(s, "```")%2 == 1
}
