package scout

import (
	"net/url"
	"slices"
	"strings"
	"time"
)

// MessageID identifies a message within a conversation. Once assigned it never
// changes, and a conversation never holds two messages with the same ID.
type MessageID string

// WelcomeID is the ID of the seed message shown when a session starts.
const WelcomeID MessageID = "welcome"

// Message is a single entry in the conversation log.
//
// Text is replaced wholesale by each fragment applied to a streaming message,
// never appended to by consumers. Streaming is true only for the in-flight
// model reply.
type Message struct {
	ID        MessageID
	Role      Role
	Text      string
	Streaming bool
	Citations []Citation
	Timestamp time.Time
}

// clone returns a copy of m that shares no mutable state with it.
func (m Message) clone() Message {
	m.Citations = slices.Clone(m.Citations)
	return m
}

// Citation is a web source the model consulted while grounding its answer.
// Citations are produced by the provider only.
type Citation struct {
	URI   string
	Title string
}

// Domain returns the citation's host without a leading "www.", or "Source"
// when the URI has no host.
func (c Citation) Domain() string {
	u, err := url.Parse(c.URI)
	if err != nil || u.Hostname() == "" {
		return "Source"
	}
	return strings.TrimPrefix(u.Hostname(), "www.")
}
