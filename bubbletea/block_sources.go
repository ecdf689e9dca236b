package bubbletea

import (
	"fmt"
	"strings"

	"github.com/fwojciec/scout"
	"github.com/mattn/go-runewidth"
)

// maxTitleWidth is the display width source titles are truncated to.
const maxTitleWidth = 50

var _ MessageBlock = (*SourcesBlock)(nil)

// SourcesBlock renders the web sources a reply was grounded on: a
// "N Sources Found" rule followed by one card per citation.
type SourcesBlock struct {
	citations []scout.Citation
	styles    Styles
}

// NewSourcesBlock creates a SourcesBlock.
func NewSourcesBlock(citations []scout.Citation, styles Styles) *SourcesBlock {
	return &SourcesBlock{citations: citations, styles: styles}
}

func (b *SourcesBlock) View(width int) string {
	var sb strings.Builder
	sb.WriteString(b.rule(width))
	for i, c := range b.citations {
		sb.WriteString("\n")
		index := b.styles.Source.Render(fmt.Sprintf("[%d]", i+1))
		sb.WriteString(index + " " + b.styles.Muted.Render(c.Domain()) + "\n")
		sb.WriteString("    " + b.styles.SourceTitle.Render(truncateTitle(c.Title)) + "\n")
		sb.WriteString("    " + b.styles.Muted.Render(runewidth.Truncate(c.URI, max(width-4, 10), "…")))
	}
	return sb.String()
}

func (b *SourcesBlock) rule(width int) string {
	label := fmt.Sprintf(" %d Sources Found ", len(b.citations))
	side := max((width-runewidth.StringWidth(label))/2, 2)
	line := strings.Repeat("─", side)
	return b.styles.Source.Render(line + label + line)
}

// truncateTitle shortens titles wider than maxTitleWidth cells, ending them
// with "...".
func truncateTitle(title string) string {
	return runewidth.Truncate(title, maxTitleWidth, "...")
}
