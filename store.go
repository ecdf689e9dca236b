package scout

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// Snapshot is a read-only copy of the conversation state handed to renderers.
type Snapshot struct {
	Messages []Message
	// Pending is true while some message is still streaming.
	Pending bool
	// Awaiting is true while the streaming message has received neither text
	// nor citations.
	Awaiting bool
	// Err is the banner text of the last failure, or empty.
	Err string
}

// Store is the ordered, in-memory conversation log. It is append-only except
// for in-place updates of the streaming reply, located by ID. Updates that
// reference an ID no longer present are silently dropped, so a stream that
// outlives a Clear can never write into the fresh conversation.
//
// Store is safe for concurrent use.
type Store struct {
	mu       sync.RWMutex
	messages []Message
	err      string
	onChange func()

	newID func() MessageID
	now   func() time.Time
}

// StoreOption configures a Store.
type StoreOption func(*Store)

// WithIDFunc sets the generator for message IDs. The default produces random
// UUIDs.
func WithIDFunc(fn func() MessageID) StoreOption {
	return func(s *Store) { s.newID = fn }
}

// WithClock sets the time source for message timestamps.
func WithClock(fn func() time.Time) StoreOption {
	return func(s *Store) { s.now = fn }
}

// NewStore returns an empty Store.
func NewStore(opts ...StoreOption) *Store {
	s := &Store{
		newID: func() MessageID { return MessageID(uuid.NewString()) },
		now:   time.Now,
	}
	for _, o := range opts {
		o(s)
	}
	return s
}

// OnChange registers fn to be called after every mutation. fn runs outside
// the store's lock and may call Snapshot.
func (s *Store) OnChange(fn func()) {
	s.mu.Lock()
	s.onChange = fn
	s.mu.Unlock()
}

// AppendExchange appends a user message and an empty streaming model
// placeholder in one step, so readers never observe one without the other.
// It also clears the banner of any earlier failure.
func (s *Store) AppendExchange(userText string) (Message, MessageID) {
	s.mu.Lock()
	now := s.now()
	user := Message{
		ID:        s.newID(),
		Role:      RoleUser,
		Text:      userText,
		Timestamp: now,
	}
	placeholder := Message{
		ID:        s.newID(),
		Role:      RoleModel,
		Streaming: true,
		Timestamp: now,
	}
	s.messages = append(s.messages, user, placeholder)
	s.err = ""
	s.mu.Unlock()

	s.changed()
	return user, placeholder.ID
}

// ApplyFragment replaces the text of the streaming message id with text. Its
// citations are replaced only when citations is non-empty: a later fragment
// without citations never clears earlier ones. Messages that are missing or
// no longer streaming are left untouched.
func (s *Store) ApplyFragment(id MessageID, text string, citations []Citation) {
	s.mu.Lock()
	i := s.indexOf(id)
	if i < 0 || !s.messages[i].Streaming {
		s.mu.Unlock()
		return
	}
	s.messages[i].Text = text
	if len(citations) > 0 {
		s.messages[i].Citations = append([]Citation(nil), citations...)
	}
	s.mu.Unlock()

	s.changed()
}

// Finalize marks message id as no longer streaming. It is idempotent and does
// nothing when id is not present.
func (s *Store) Finalize(id MessageID) {
	s.mu.Lock()
	i := s.indexOf(id)
	if i < 0 || !s.messages[i].Streaming {
		s.mu.Unlock()
		return
	}
	s.messages[i].Streaming = false
	s.mu.Unlock()

	s.changed()
}

// Fail records err as the banner for the send that produced message id. It
// does nothing when id is no longer present.
func (s *Store) Fail(id MessageID, err error) {
	s.mu.Lock()
	if s.indexOf(id) < 0 {
		s.mu.Unlock()
		return
	}
	s.err = bannerText(err)
	s.mu.Unlock()

	s.changed()
}

// SetError records text as the banner unconditionally.
func (s *Store) SetError(text string) {
	s.mu.Lock()
	s.err = text
	s.mu.Unlock()

	s.changed()
}

// Clear resets the conversation to a single fresh model message with the
// given text and clears the banner. It returns the new seed message.
func (s *Store) Clear(seedText string) Message {
	s.mu.Lock()
	seed := Message{
		ID:        s.newID(),
		Role:      RoleModel,
		Text:      seedText,
		Timestamp: s.now(),
	}
	s.reset(seed)
	s.mu.Unlock()

	s.changed()
	return seed
}

// seed resets the conversation to msg, keeping msg's ID.
func (s *Store) seed(msg Message) {
	s.mu.Lock()
	if msg.Timestamp.IsZero() {
		msg.Timestamp = s.now()
	}
	s.reset(msg)
	s.mu.Unlock()

	s.changed()
}

// Snapshot returns a deep copy of the current state.
func (s *Store) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	snap := Snapshot{
		Messages: make([]Message, len(s.messages)),
		Err:      s.err,
	}
	for i, m := range s.messages {
		snap.Messages[i] = m.clone()
		if m.Streaming {
			snap.Pending = true
			snap.Awaiting = m.Text == "" && len(m.Citations) == 0
		}
	}
	return snap
}

// Len returns the number of messages in the conversation.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.messages)
}

// reset must be called with mu held.
func (s *Store) reset(seed Message) {
	s.messages = []Message{seed}
	s.err = ""
}

// indexOf must be called with mu held. It scans from the end, where the
// streaming reply lives.
func (s *Store) indexOf(id MessageID) int {
	for i := len(s.messages) - 1; i >= 0; i-- {
		if s.messages[i].ID == id {
			return i
		}
	}
	return -1
}

func (s *Store) changed() {
	s.mu.RLock()
	fn := s.onChange
	s.mu.RUnlock()
	if fn != nil {
		fn()
	}
}
