package scout

import "context"

// StreamState indicates the current state of a Stream.
type StreamState int

const (
	StreamStateNew       StreamState = iota // Before Next() is ever called.
	StreamStateStreaming                    // Mid-stream, receiving fragments.
	StreamStateComplete                     // Next() returned io.EOF.
	StreamStateError                        // Next() returned non-EOF error.
	StreamStateClosed                       // Close() called before terminal state.
)

// Fragment is one incremental unit of a streamed response. Citations holds
// the batch attached to this fragment only; it is nil when the fragment
// carried none.
type Fragment struct {
	Text      string
	Citations []Citation
}

// Stream uses a pull-based iterator pattern. Next returns io.EOF once the
// response is exhausted and any other error when the provider fails. The
// stream is finite and cannot be restarted. Cancellation flows through the
// context passed to Chat.Stream().
type Stream interface {
	Next() (Fragment, error)
	State() StreamState
	Close() error
}

// Chat is an opaque handle to one provider-side conversation. The provider,
// not the client, keeps the conversation context between sends.
type Chat interface {
	Stream(ctx context.Context, text string) (Stream, error)
}

// Provider creates chat handles. It is a strategy interface for LLM backends.
type Provider interface {
	NewChat(ctx context.Context, config ChatConfig) (Chat, error)
}

// ProviderFunc adapts a function to the Provider interface.
type ProviderFunc func(ctx context.Context, config ChatConfig) (Chat, error)

// NewChat calls f(ctx, config).
func (f ProviderFunc) NewChat(ctx context.Context, config ChatConfig) (Chat, error) {
	return f(ctx, config)
}

// TextMode describes how a provider fills Fragment.Text.
type TextMode int

const (
	// TextCumulative means each fragment carries the full text so far.
	TextCumulative TextMode = iota
	// TextDelta means each fragment carries only the newly generated text.
	TextDelta
)

// TextModer is implemented by chats that declare their fragment text
// contract. Chats that do not implement it are treated as TextCumulative.
type TextModer interface {
	TextMode() TextMode
}
