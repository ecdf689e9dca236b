package bubbletea

// MessageBlock is a renderable element in the conversation.
// View takes a width parameter so the root model controls layout and blocks
// are testable in isolation.
type MessageBlock interface {
	View(width int) string
}

// blockSeparator returns the spacing placed before curr. Sources hug the
// reply they belong to; everything else gets a blank line.
func blockSeparator(prev, curr MessageBlock) string {
	if prev == nil {
		return ""
	}
	if _, ok := curr.(*SourcesBlock); ok {
		return "\n"
	}
	return "\n\n"
}
