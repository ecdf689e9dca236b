package gemini_test

import (
	"context"
	"errors"
	"io"
	"iter"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/fwojciec/scout"
	"github.com/fwojciec/scout/gemini"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/genai"
)

func TestNew_MissingKey(t *testing.T) {
	t.Parallel()
	_, err := gemini.New(context.Background(), "")
	var ie *scout.InitializationError
	require.ErrorAs(t, err, &ie)
	assert.Contains(t, err.Error(), "API key is required")
}

func TestClient_NewChat(t *testing.T) {
	t.Parallel()

	c, err := gemini.New(context.Background(), "test-key")
	require.NoError(t, err)

	t.Run("creates a delta-mode chat", func(t *testing.T) {
		t.Parallel()
		chat, err := c.NewChat(context.Background(), scout.DefaultChatConfig())
		require.NoError(t, err)
		tm, ok := chat.(scout.TextModer)
		require.True(t, ok)
		assert.Equal(t, scout.TextDelta, tm.TextMode())
	})

	t.Run("rejects invalid config", func(t *testing.T) {
		t.Parallel()
		cfg := scout.DefaultChatConfig()
		cfg.Temperature = 2
		_, err := c.NewChat(context.Background(), cfg)
		var ie *scout.InitializationError
		require.ErrorAs(t, err, &ie)
		assert.ErrorIs(t, err, scout.ErrValidation)
	})
}

func TestClient_WithBaseURL(t *testing.T) {
	t.Parallel()

	type request struct {
		path string
		body string
	}
	requests := make(chan request, 1)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		select {
		case requests <- request{path: r.URL.Path, body: string(body)}:
		default:
			t.Errorf("unexpected extra request to %s", r.URL.Path)
		}
		w.Header().Set("Content-Type", "text/event-stream")
		_, _ = io.WriteString(w, `data: {"candidates":[{"content":{"role":"model","parts":[{"text":"IDOS is "}]}}]}`+"\n\n")
		_, _ = io.WriteString(w, `data: {"candidates":[{"content":{"role":"model","parts":[{"text":"an identity layer."}]}}]}`+"\n\n")
	}))
	defer srv.Close()

	c, err := gemini.New(context.Background(), "test-key", gemini.WithBaseURL(srv.URL))
	require.NoError(t, err)
	chat, err := c.NewChat(context.Background(), scout.DefaultChatConfig())
	require.NoError(t, err)

	s, err := chat.Stream(context.Background(), "What is IDOS?")
	require.NoError(t, err)
	defer s.Close()

	var text strings.Builder
	for {
		f, err := s.Next()
		if errors.Is(err, io.EOF) {
			break
		}
		require.NoError(t, err)
		text.WriteString(f.Text)
	}
	assert.Equal(t, "IDOS is an identity layer.", text.String())
	assert.Equal(t, scout.StreamStateComplete, s.State())

	got := <-requests
	assert.Contains(t, got.path, ":streamGenerateContent")
	assert.Contains(t, got.body, "What is IDOS?")
	assert.Contains(t, got.body, "googleSearch")
}

func TestBuildConfig(t *testing.T) {
	t.Parallel()

	t.Run("grounded research config", func(t *testing.T) {
		t.Parallel()
		got := gemini.BuildConfig(scout.ChatConfig{
			Model:             "gemini-2.5-flash",
			Temperature:       0.7,
			SystemInstruction: "You are a researcher.",
			SearchGrounding:   true,
		})
		require.NotNil(t, got.Temperature)
		assert.InDelta(t, 0.7, *got.Temperature, 1e-6)
		require.NotNil(t, got.SystemInstruction)
		require.Len(t, got.SystemInstruction.Parts, 1)
		assert.Equal(t, "You are a researcher.", got.SystemInstruction.Parts[0].Text)
		require.Len(t, got.Tools, 1)
		assert.NotNil(t, got.Tools[0].GoogleSearch)
	})

	t.Run("grounding disabled", func(t *testing.T) {
		t.Parallel()
		got := gemini.BuildConfig(scout.ChatConfig{Model: "m", Temperature: 0})
		assert.Nil(t, got.Tools)
		assert.Nil(t, got.SystemInstruction)
		require.NotNil(t, got.Temperature)
		assert.Zero(t, *got.Temperature)
	})
}

// fakeSender records sent parts and replays scripted responses.
type fakeSender struct {
	parts  []genai.Part
	chunks []*genai.GenerateContentResponse
}

func (f *fakeSender) SendMessageStream(_ context.Context, parts ...genai.Part) iter.Seq2[*genai.GenerateContentResponse, error] {
	f.parts = append(f.parts, parts...)
	return mockChunks(f.chunks, nil)
}

func TestChat_Stream(t *testing.T) {
	t.Parallel()

	sender := &fakeSender{chunks: []*genai.GenerateContentResponse{
		textChunk("IDOS is"),
		textChunk(" a decentralized identity layer."),
	}}
	chat := gemini.NewChat(sender)

	var got []string
	err := scout.Send(context.Background(), chat, "What is IDOS?", func(text string, _ []scout.Citation) {
		got = append(got, text)
	})
	require.NoError(t, err)

	require.Len(t, sender.parts, 1)
	assert.Equal(t, "What is IDOS?", sender.parts[0].Text)
	assert.Equal(t, []string{"IDOS is", "IDOS is a decentralized identity layer."}, got)
}
