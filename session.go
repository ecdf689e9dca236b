package scout

import (
	"context"
	"strings"
	"sync"

	"go.uber.org/zap"
)

// Seed texts for the conversation.
const (
	WelcomeText = "Greetings. I am the **IDOS Deep Research AI**. \n\n" +
		"I'm connected to real-time data sources to help you navigate the IDOS ecosystem, " +
		"decentralized identity standards, and access management protocols.\n\n" +
		"What would you like to research today?"
	ClearedText = "Chat memory cleared. Ready for a new research topic."
)

// Session is the top-level controller for one ongoing conversation. It owns
// the single live chat handle and the conversation store.
//
// The handle lives in a single-owner cell that Clear replaces wholesale. A
// send in flight keeps using the handle it started with; once the store has
// been cleared, its updates reference IDs that no longer exist and are
// dropped.
type Session struct {
	provider Provider
	config   ChatConfig
	store    *Store
	logger   *zap.Logger

	mu   sync.Mutex
	chat Chat
}

// SessionOption configures a Session.
type SessionOption func(*Session)

// WithLogger sets the logger. The default discards everything.
func WithLogger(l *zap.Logger) SessionOption {
	return func(s *Session) { s.logger = l }
}

// WithStore sets the conversation store. The default is NewStore().
func WithStore(st *Store) SessionOption {
	return func(s *Session) { s.store = st }
}

// NewSession creates a Session. Call Start before the first Send.
func NewSession(provider Provider, config ChatConfig, opts ...SessionOption) *Session {
	s := &Session{
		provider: provider,
		config:   config,
		logger:   zap.NewNop(),
	}
	for _, o := range opts {
		o(s)
	}
	if s.store == nil {
		s.store = NewStore()
	}
	return s
}

// Config returns the configuration every chat handle is created with.
func (s *Session) Config() ChatConfig { return s.config }

// Snapshot returns the current conversation state.
func (s *Session) Snapshot() Snapshot { return s.store.Snapshot() }

// OnChange registers fn to be called after every change to the conversation.
func (s *Session) OnChange(fn func()) { s.store.OnChange(fn) }

// Start creates the first chat handle and seeds the welcome message. When the
// provider rejects the configuration, the failure is recorded as the
// conversation's banner and returned as an *InitializationError.
func (s *Session) Start(ctx context.Context) error {
	chat, err := s.newChat(ctx)
	if err != nil {
		s.store.SetError(initFailedText)
		return err
	}
	s.setChat(chat)
	s.store.seed(Message{ID: WelcomeID, Role: RoleModel, Text: WelcomeText})
	return nil
}

// Send appends text and a streaming placeholder to the conversation, streams
// the reply into the placeholder, and finalizes it whether or not the stream
// succeeds. A failure is recorded as the banner and returned.
func (s *Session) Send(ctx context.Context, text string) error {
	text = strings.TrimSpace(text)
	if text == "" {
		return ErrEmptyMessage
	}
	chat := s.currentChat()
	if chat == nil {
		return ErrNoChat
	}

	_, id := s.store.AppendExchange(text)
	defer s.store.Finalize(id)

	log := s.logger.With(zap.String("message_id", string(id)))
	log.Debug("send started", zap.Int("chars", len(text)))

	var fragments, citations int
	err := Send(ctx, chat, text, func(full string, cites []Citation) {
		fragments++
		citations = len(cites)
		s.store.ApplyFragment(id, full, cites)
	})
	if err != nil {
		log.Warn("send failed", zap.Int("fragments", fragments), zap.Error(err))
		s.store.Fail(id, err)
		return err
	}
	log.Info("send finished",
		zap.Int("fragments", fragments),
		zap.Int("citations", citations),
		zap.Int("messages", s.store.Len()))
	return nil
}

// Clear discards the conversation and its chat handle, then starts over with
// a fresh handle and a single seed message. The conversation is cleared even
// when the new handle cannot be created; that failure becomes the banner and
// is returned as an *InitializationError.
func (s *Session) Clear(ctx context.Context) error {
	chat, err := s.newChat(ctx)
	s.setChat(chat)
	s.store.Clear(ClearedText)
	if err != nil {
		s.store.SetError(initFailedText)
		return err
	}
	s.logger.Info("conversation cleared")
	return nil
}

func (s *Session) newChat(ctx context.Context) (Chat, error) {
	if err := s.config.Validate(); err != nil {
		s.logger.Error("invalid chat config", zap.Error(err))
		return nil, asInitializationError(err)
	}
	chat, err := s.provider.NewChat(ctx, s.config)
	if err != nil {
		s.logger.Error("create chat failed", zap.Error(err))
		return nil, asInitializationError(err)
	}
	s.logger.Info("chat created",
		zap.String("model", s.config.Model),
		zap.Float64("temperature", s.config.Temperature),
		zap.Bool("search_grounding", s.config.SearchGrounding))
	return chat, nil
}

func (s *Session) currentChat() Chat {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.chat
}

func (s *Session) setChat(c Chat) {
	s.mu.Lock()
	s.chat = c
	s.mu.Unlock()
}
