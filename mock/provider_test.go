package mock_test

import (
	"context"
	"errors"
	"testing"

	"github.com/fwojciec/scout"
	"github.com/fwojciec/scout/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProvider_NewChat(t *testing.T) {
	t.Parallel()
	t.Run("delegates to NewChatFn", func(t *testing.T) {
		t.Parallel()
		var c mock.Chat
		var gotConfig scout.ChatConfig
		p := mock.Provider{
			NewChatFn: func(ctx context.Context, config scout.ChatConfig) (scout.Chat, error) {
				gotConfig = config
				return &c, nil
			},
		}
		got, err := p.NewChat(context.Background(), scout.ChatConfig{Model: "m"})
		require.NoError(t, err)
		assert.Equal(t, &c, got)
		assert.Equal(t, "m", gotConfig.Model)
	})

	t.Run("returns error", func(t *testing.T) {
		t.Parallel()
		wantErr := errors.New("missing key")
		p := mock.Provider{
			NewChatFn: func(ctx context.Context, config scout.ChatConfig) (scout.Chat, error) {
				return nil, wantErr
			},
		}
		_, err := p.NewChat(context.Background(), scout.ChatConfig{})
		assert.ErrorIs(t, err, wantErr)
	})

	t.Run("panics when NewChatFn not set", func(t *testing.T) {
		t.Parallel()
		p := mock.Provider{}
		assert.Panics(t, func() {
			_, _ = p.NewChat(context.Background(), scout.ChatConfig{})
		})
	})
}

func TestChat_Stream(t *testing.T) {
	t.Parallel()
	t.Run("delegates to StreamFn", func(t *testing.T) {
		t.Parallel()
		var s mock.Stream
		var gotText string
		c := mock.Chat{
			StreamFn: func(ctx context.Context, text string) (scout.Stream, error) {
				gotText = text
				return &s, nil
			},
		}
		got, err := c.Stream(context.Background(), "hello")
		require.NoError(t, err)
		assert.Equal(t, &s, got)
		assert.Equal(t, "hello", gotText)
	})

	t.Run("reports configured text mode", func(t *testing.T) {
		t.Parallel()
		assert.Equal(t, scout.TextCumulative, (&mock.Chat{}).TextMode())
		assert.Equal(t, scout.TextDelta, (&mock.Chat{Mode: scout.TextDelta}).TextMode())
	})
}
