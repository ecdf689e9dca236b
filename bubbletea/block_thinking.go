package bubbletea

var _ MessageBlock = (*ThinkingBlock)(nil)

// ThinkingBlock is shown in place of a reply that has not received any
// content yet.
type ThinkingBlock struct {
	frame  string
	styles Styles
}

// NewThinkingBlock creates a ThinkingBlock drawn with the current spinner
// frame.
func NewThinkingBlock(frame string, styles Styles) *ThinkingBlock {
	return &ThinkingBlock{frame: frame, styles: styles}
}

func (b *ThinkingBlock) View(width int) string {
	return b.styles.Thinking.Render(b.frame + " Researching...")
}
