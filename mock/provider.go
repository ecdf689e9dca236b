// Package mock provides test doubles for scout interfaces using function fields.
package mock

import (
	"context"

	"github.com/fwojciec/scout"
)

// Interface compliance checks.
var (
	_ scout.Provider  = (*Provider)(nil)
	_ scout.Chat      = (*Chat)(nil)
	_ scout.TextModer = (*Chat)(nil)
)

// Provider is a test double for scout.Provider.
// Set NewChatFn before calling NewChat.
type Provider struct {
	NewChatFn func(ctx context.Context, config scout.ChatConfig) (scout.Chat, error)
}

// NewChat delegates to NewChatFn.
func (p *Provider) NewChat(ctx context.Context, config scout.ChatConfig) (scout.Chat, error) {
	return p.NewChatFn(ctx, config)
}

// Chat is a test double for scout.Chat. Mode is reported through TextMode;
// the zero value is scout.TextCumulative.
type Chat struct {
	StreamFn func(ctx context.Context, text string) (scout.Stream, error)
	Mode     scout.TextMode
}

// Stream delegates to StreamFn.
func (c *Chat) Stream(ctx context.Context, text string) (scout.Stream, error) {
	return c.StreamFn(ctx, text)
}

// TextMode returns Mode.
func (c *Chat) TextMode() scout.TextMode { return c.Mode }
