package gemini

import (
	"context"
	"errors"
	"fmt"
	"iter"

	"github.com/fwojciec/scout"
	"google.golang.org/genai"
)

// Interface compliance checks.
var (
	_ scout.Provider  = (*Client)(nil)
	_ scout.Chat      = (*Chat)(nil)
	_ scout.TextModer = (*Chat)(nil)
)

// Client implements [scout.Provider] for the Google Gemini API.
type Client struct {
	client *genai.Client
}

// Option configures a [Client].
type Option func(*genai.ClientConfig)

// WithBaseURL points the client at a different API endpoint.
func WithBaseURL(url string) Option {
	return func(c *genai.ClientConfig) { c.HTTPOptions.BaseURL = url }
}

// New creates a Gemini [Client] with the given API key. A missing key is
// reported as a *scout.InitializationError.
func New(ctx context.Context, apiKey string, opts ...Option) (*Client, error) {
	if apiKey == "" {
		return nil, &scout.InitializationError{Err: errors.New("gemini: API key is required")}
	}
	cfg := &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	}
	for _, o := range opts {
		o(cfg)
	}
	gc, err := genai.NewClient(ctx, cfg)
	if err != nil {
		return nil, &scout.InitializationError{Err: fmt.Errorf("gemini: %w", err)}
	}
	return &Client{client: gc}, nil
}

// NewChat creates a provider-side conversation. The genai chat keeps the
// history, so each send only carries the new user text.
func (c *Client) NewChat(ctx context.Context, config scout.ChatConfig) (scout.Chat, error) {
	if err := config.Validate(); err != nil {
		return nil, &scout.InitializationError{Err: fmt.Errorf("gemini: %w", err)}
	}
	chat, err := c.client.Chats.Create(ctx, config.Model, BuildConfig(config), nil)
	if err != nil {
		return nil, &scout.InitializationError{Err: fmt.Errorf("gemini: %w", err)}
	}
	return NewChat(chat), nil
}

// BuildConfig converts a scout.ChatConfig into generation settings.
// Exported for testing.
func BuildConfig(config scout.ChatConfig) *genai.GenerateContentConfig {
	temp := float32(config.Temperature)
	gc := &genai.GenerateContentConfig{
		Temperature: &temp,
	}
	if config.SystemInstruction != "" {
		gc.SystemInstruction = &genai.Content{
			Parts: []*genai.Part{{Text: config.SystemInstruction}},
		}
	}
	if config.SearchGrounding {
		gc.Tools = []*genai.Tool{{GoogleSearch: &genai.GoogleSearch{}}}
	}
	return gc
}

// Sender is the part of *genai.Chat that Chat relies on.
type Sender interface {
	SendMessageStream(ctx context.Context, parts ...genai.Part) iter.Seq2[*genai.GenerateContentResponse, error]
}

// Chat implements [scout.Chat] over a genai chat.
type Chat struct {
	sender Sender
}

// NewChat wraps a genai chat, or any other Sender.
func NewChat(s Sender) *Chat {
	return &Chat{sender: s}
}

// Stream sends text and returns the streamed reply.
func (c *Chat) Stream(ctx context.Context, text string) (scout.Stream, error) {
	seq := c.sender.SendMessageStream(ctx, genai.Part{Text: text})
	return NewStreamFromIter(ctx, seq), nil
}

// TextMode reports that Gemini streams text deltas, not the text so far.
func (c *Chat) TextMode() scout.TextMode { return scout.TextDelta }
