package bubbletea_test

import (
	"context"
	"io"
	"regexp"
	"runtime"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/fwojciec/scout"
	bt "github.com/fwojciec/scout/bubbletea"
	"github.com/fwojciec/scout/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var idosCitations = []scout.Citation{
	{URI: "https://www.idos.network/", Title: "idOS | The identity layer"},
	{URI: "https://docs.idos.network/grants", Title: "Access grants"},
}

// scriptedChat returns a chat whose every send replays frags cumulatively and
// ends with err.
func scriptedChat(frags []scout.Fragment, err error) *mock.Chat {
	return &mock.Chat{
		StreamFn: func(ctx context.Context, text string) (scout.Stream, error) {
			return mock.NewFragments(frags, err), nil
		},
	}
}

// groundedChat answers with a two-fragment grounded reply.
func groundedChat() *mock.Chat {
	return scriptedChat([]scout.Fragment{
		{Text: "IDOS is"},
		{Text: "IDOS is a decentralized identity layer.", Citations: idosCitations},
	}, nil)
}

// startedSession returns a started session backed by chat.
func startedSession(t *testing.T, chat scout.Chat) *scout.Session {
	t.Helper()
	p := &mock.Provider{
		NewChatFn: func(ctx context.Context, config scout.ChatConfig) (scout.Chat, error) {
			return chat, nil
		},
	}
	s := scout.NewSession(p, scout.DefaultChatConfig())
	require.NoError(t, s.Start(context.Background()))
	return s
}

// initModel creates a model and sends a WindowSizeMsg to initialize the viewport.
func initModel(t *testing.T, s *scout.Session) bt.Model {
	t.Helper()
	return initModelWithSize(t, s, 80, 24)
}

func initModelWithSize(t *testing.T, s *scout.Session, width, height int) bt.Model {
	t.Helper()
	m := bt.New(s, scout.DefaultTheme())
	return updateModel(t, m, tea.WindowSizeMsg{Width: width, Height: height})
}

// updateModel sends a message and returns the updated Model.
func updateModel(t *testing.T, m bt.Model, msg tea.Msg) bt.Model {
	t.Helper()
	model, _ := updateModelCmd(t, m, msg)
	return model
}

func updateModelCmd(t *testing.T, m bt.Model, msg tea.Msg) (bt.Model, tea.Cmd) {
	t.Helper()
	updated, cmd := m.Update(msg)
	model, ok := updated.(bt.Model)
	require.True(t, ok)
	return model, cmd
}

// typeText feeds text to the model as rune key presses.
func typeText(t *testing.T, m bt.Model, text string) bt.Model {
	t.Helper()
	for _, r := range text {
		m = updateModel(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
	return m
}

var ansi = regexp.MustCompile(`\x1b\[[0-9;]*[a-zA-Z]`)

// plain strips ANSI escape sequences.
func plain(s string) string {
	return ansi.ReplaceAllString(s, "")
}

// headless runs the program without a terminal.
var headless = []tea.ProgramOption{
	tea.WithInput(nil),
	tea.WithOutput(io.Discard),
	tea.WithoutSignalHandler(),
}

// watchingCtx reports whether a goroutine started by Run to watch its
// context is still alive.
func watchingCtx() bool {
	buf := make([]byte, 1<<20)
	buf = buf[:runtime.Stack(buf, true)]
	return strings.Contains(string(buf), "scout/bubbletea.run.func1")
}

func TestRun(t *testing.T) {
	t.Parallel()

	t.Run("quits when ctx is cancelled", func(t *testing.T) {
		t.Parallel()
		m := bt.New(startedSession(t, groundedChat()), scout.DefaultTheme())
		ctx, cancel := context.WithCancel(context.Background())
		errc := make(chan error, 1)
		go func() { errc <- bt.RunProgram(ctx, m, headless...) }()
		cancel()

		select {
		case err := <-errc:
			require.NoError(t, err)
		case <-time.After(5 * time.Second):
			t.Fatal("program did not quit")
		}
	})

	t.Run("stops watching ctx after the program exits", func(t *testing.T) {
		t.Parallel()
		m := bt.New(startedSession(t, groundedChat()), scout.DefaultTheme())
		killCtx, kill := context.WithCancel(context.Background())
		opts := append([]tea.ProgramOption{tea.WithContext(killCtx)}, headless...)
		errc := make(chan error, 1)
		go func() { errc <- bt.RunProgram(context.Background(), m, opts...) }()
		kill()

		select {
		case err := <-errc:
			assert.ErrorIs(t, err, tea.ErrProgramKilled)
		case <-time.After(5 * time.Second):
			t.Fatal("program did not exit")
		}
		assert.Eventually(t, func() bool { return !watchingCtx() }, 5*time.Second, 10*time.Millisecond)
	})
}
