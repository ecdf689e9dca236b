package gemini

import (
	"context"
	"fmt"
	"io"
	"iter"
	"strings"

	"github.com/fwojciec/scout"
	"google.golang.org/genai"
)

// stream implements [scout.Stream] by wrapping the genai SDK's streaming
// iterator. Every SDK response becomes exactly one fragment.
type stream struct {
	pull  func() (*genai.GenerateContentResponse, error, bool)
	stop  func()
	state scout.StreamState
	err   error
}

// Interface compliance check.
var _ scout.Stream = (*stream)(nil)

// NewStreamFromIter wraps a genai response iterator as a [scout.Stream].
// Exported for testing.
func NewStreamFromIter(_ context.Context, seq iter.Seq2[*genai.GenerateContentResponse, error]) scout.Stream {
	next, stop := iter.Pull2(seq)
	return &stream{
		pull:  next,
		stop:  stop,
		state: scout.StreamStateNew,
	}
}

func (s *stream) Next() (scout.Fragment, error) {
	switch s.state {
	case scout.StreamStateComplete:
		return scout.Fragment{}, io.EOF
	case scout.StreamStateError:
		return scout.Fragment{}, s.err
	case scout.StreamStateClosed:
		return scout.Fragment{}, fmt.Errorf("gemini: %w", scout.ErrStreamClosed)
	}
	resp, err, ok := s.pull()
	if !ok {
		s.state = scout.StreamStateComplete
		return scout.Fragment{}, io.EOF
	}
	if err != nil {
		s.state = scout.StreamStateError
		s.err = fmt.Errorf("gemini: %w", err)
		return scout.Fragment{}, s.err
	}
	s.state = scout.StreamStateStreaming
	return ExtractFragment(resp), nil
}

func (s *stream) State() scout.StreamState {
	return s.state
}

func (s *stream) Close() error {
	if s.state != scout.StreamStateComplete && s.state != scout.StreamStateError {
		s.state = scout.StreamStateClosed
	}
	s.stop()
	return nil
}

// ExtractFragment pulls the answer text and web citations out of one
// streamed response. Thought parts are skipped. Grounding chunks without a
// web source are dropped; a web source without a title falls back to its
// domain. Exported for testing.
func ExtractFragment(resp *genai.GenerateContentResponse) scout.Fragment {
	var f scout.Fragment
	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0] == nil {
		return f
	}
	cand := resp.Candidates[0]

	if cand.Content != nil {
		var b strings.Builder
		for _, p := range cand.Content.Parts {
			if p == nil || p.Thought {
				continue
			}
			b.WriteString(p.Text)
		}
		f.Text = b.String()
	}

	if gm := cand.GroundingMetadata; gm != nil {
		for _, chunk := range gm.GroundingChunks {
			if chunk == nil || chunk.Web == nil || chunk.Web.URI == "" {
				continue
			}
			title := chunk.Web.Title
			if title == "" {
				title = chunk.Web.Domain
			}
			f.Citations = append(f.Citations, scout.Citation{URI: chunk.Web.URI, Title: title})
		}
	}
	return f
}
