package chat

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fixedClock() func() time.Time {
	now := time.Date(2024, 1, 15, 10, 30, 0, 0, time.UTC)
	return func() time.Time { return now }
}

func TestNewSession_SeedsGreeting(t *testing.T) {
	tests := []struct {
		name     string
		greeting string
		want     string
	}{
		{name: "custom greeting", greeting: "Welcome!", want: "Welcome!"},
		{name: "empty falls back", greeting: "", want: DefaultGreeting},
		{name: "blank falls back", greeting: "  \t", want: DefaultGreeting},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewSession(tt.greeting, WithClock(fixedClock()))

			require.Equal(t, 1, s.Len())
			first := s.Last()
			assert.Equal(t, SenderBot, first.Sender)
			assert.Equal(t, tt.want, first.Content)
			assert.NotEmpty(t, first.ID)
			assert.False(t, s.Awaiting())
		})
	}
}

func TestSession_Append(t *testing.T) {
	s := NewSession("", WithClock(fixedClock()))

	assert.False(t, s.Append(NewMessage(SenderUser, "   ", time.Now())), "blank user message is dropped")
	assert.Equal(t, 1, s.Len())

	assert.True(t, s.Append(NewMessage(SenderUser, "hello", time.Now())))
	assert.True(t, s.Append(NewMessage(SenderBot, "", time.Now())), "bot messages are not content-checked")
	assert.Equal(t, 3, s.Len())
}

func TestSession_MessagesIsCopy(t *testing.T) {
	s := NewSession("hi")
	msgs := s.Messages()
	msgs[0].Content = "changed"

	assert.Equal(t, "hi", s.Last().Content)
}

func TestSession_Input(t *testing.T) {
	s := NewSession("")
	s.SetInput("draft")
	assert.Equal(t, "draft", s.Input())

	s.ClearInput()
	assert.Empty(t, s.Input())
}

func TestSession_AllIsRestartable(t *testing.T) {
	s := NewSession("hi")
	s.Append(NewMessage(SenderUser, "a", time.Now()))
	s.Append(NewMessage(SenderBot, "b", time.Now()))

	collect := func() []string {
		var out []string
		for msg := range s.All() {
			out = append(out, msg.Content)
		}
		return out
	}

	first := collect()
	second := collect()
	assert.Equal(t, []string{"hi", "a", "b"}, first)
	assert.Equal(t, first, second)
}

func TestSession_AllStopsEarly(t *testing.T) {
	s := NewSession("hi")
	s.Append(NewMessage(SenderUser, "a", time.Now()))

	count := 0
	for range s.All() {
		count++
		break
	}
	assert.Equal(t, 1, count)
}

func TestNewMessage_UniqueIDs(t *testing.T) {
	now := time.Now()
	seen := make(map[string]bool)
	for range 1000 {
		msg := NewMessage(SenderUser, "x", now)
		require.False(t, seen[msg.ID], "duplicate id %s", msg.ID)
		seen[msg.ID] = true
	}
}
