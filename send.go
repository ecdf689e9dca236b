package scout

import (
	"context"
	"errors"
	"io"
	"slices"
	"strings"
)

// FragmentFunc receives the running totals after each stream fragment.
// citations is nil until the first non-empty citation batch has arrived.
type FragmentFunc func(text string, citations []Citation)

// Send streams a reply to text on chat, calling onFragment after every
// fragment in stream order. It returns nil once the stream is exhausted and a
// *StreamError if the stream fails to open or fails mid-flight; in the latter
// case onFragment may already have been called any number of times.
//
// Send does not serialize itself: callers must not run two sends on the same
// chat at once. It does not finalize the reply either; that is left to the
// caller, which has to do it whether or not Send succeeds.
func Send(ctx context.Context, chat Chat, text string, onFragment FragmentFunc) error {
	if chat == nil {
		return ErrNoChat
	}
	text = strings.TrimSpace(text)
	if text == "" {
		return ErrEmptyMessage
	}

	var acc accumulator
	if tm, ok := chat.(TextModer); ok {
		acc.mode = tm.TextMode()
	}

	stream, err := chat.Stream(ctx, text)
	if err != nil {
		return asStreamError(err)
	}
	defer stream.Close()

	for {
		frag, err := stream.Next()
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return asStreamError(err)
		}
		acc.add(frag)
		if onFragment != nil {
			onFragment(acc.text(), acc.citationsSoFar())
		}
	}
}

// accumulator folds fragments into running totals.
type accumulator struct {
	mode      TextMode
	full      strings.Builder
	last      string
	citations []Citation
}

func (a *accumulator) add(f Fragment) {
	switch a.mode {
	case TextDelta:
		a.full.WriteString(f.Text)
	default:
		a.last = f.Text
	}
	// Repeated citations across fragments are kept verbatim.
	a.citations = append(a.citations, f.Citations...)
}

func (a *accumulator) text() string {
	if a.mode == TextDelta {
		return a.full.String()
	}
	return a.last
}

// citationsSoFar returns a copy so receivers may retain it.
func (a *accumulator) citationsSoFar() []Citation {
	if len(a.citations) == 0 {
		return nil
	}
	return slices.Clone(a.citations)
}
