package mock

import (
	"io"
	"sync/atomic"

	"github.com/fwojciec/scout"
)

// Interface compliance check.
var _ scout.Stream = (*Stream)(nil)

// Stream is a test double for scout.Stream.
// Set the function fields for the methods you need. NextFn panics when nil to
// catch missing setup. CloseFn and StateFn are nil-safe (no-op and zero
// value) because callers commonly defer stream.Close() and these methods
// rarely need custom behavior.
type Stream struct {
	NextFn  func() (scout.Fragment, error)
	StateFn func() scout.StreamState
	CloseFn func() error
}

// Next delegates to NextFn.
func (s *Stream) Next() (scout.Fragment, error) {
	return s.NextFn()
}

// State delegates to StateFn. Returns StreamStateNew when StateFn is nil.
func (s *Stream) State() scout.StreamState {
	if s.StateFn == nil {
		return scout.StreamStateNew
	}
	return s.StateFn()
}

// Close delegates to CloseFn. Returns nil when CloseFn is not set.
func (s *Stream) Close() error {
	if s.CloseFn == nil {
		return nil
	}
	return s.CloseFn()
}

// Fragments is a scripted stream. It yields each fragment in order, then
// ends with Err, or io.EOF when Err is nil.
type Fragments struct {
	Stream

	frags  []scout.Fragment
	err    error
	pos    int
	st     scout.StreamState
	closed atomic.Int32
}

// NewFragments returns a scripted stream over frags ending with err.
func NewFragments(frags []scout.Fragment, err error) *Fragments {
	f := &Fragments{frags: frags, err: err}
	f.NextFn = f.next
	f.StateFn = func() scout.StreamState { return f.st }
	f.CloseFn = func() error {
		f.closed.Add(1)
		if f.st == scout.StreamStateNew || f.st == scout.StreamStateStreaming {
			f.st = scout.StreamStateClosed
		}
		return nil
	}
	return f
}

// Closed reports how many times Close was called.
func (f *Fragments) Closed() int { return int(f.closed.Load()) }

func (f *Fragments) next() (scout.Fragment, error) {
	switch f.st {
	case scout.StreamStateClosed:
		return scout.Fragment{}, scout.ErrStreamClosed
	case scout.StreamStateComplete:
		return scout.Fragment{}, io.EOF
	case scout.StreamStateError:
		return scout.Fragment{}, f.err
	}
	if f.pos < len(f.frags) {
		frag := f.frags[f.pos]
		f.pos++
		f.st = scout.StreamStateStreaming
		return frag, nil
	}
	if f.err != nil {
		f.st = scout.StreamStateError
		return scout.Fragment{}, f.err
	}
	f.st = scout.StreamStateComplete
	return scout.Fragment{}, io.EOF
}
