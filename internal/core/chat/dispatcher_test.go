package chat

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeChatter returns canned replies and counts calls.
type fakeChatter struct {
	calls   atomic.Int32
	reply   func(message string) (string, error)
	lastMsg atomic.Value
}

func (f *fakeChatter) Chat(_ context.Context, message string) (string, error) {
	f.calls.Add(1)
	f.lastMsg.Store(message)
	return f.reply(message)
}

func echoChatter(replies map[string]string) *fakeChatter {
	return &fakeChatter{reply: func(message string) (string, error) {
		if r, ok := replies[message]; ok {
			return r, nil
		}
		return "echo: " + message, nil
	}}
}

func failingChatter(err error) *fakeChatter {
	return &fakeChatter{reply: func(string) (string, error) { return "", err }}
}

func newTestDispatcher(t *testing.T, c Chatter) (*Session, *Dispatcher) {
	t.Helper()
	s := NewSession("hello there", WithClock(fixedClock()))
	d := NewDispatcher(s, c, Options{Logger: zerolog.Nop()})
	return s, d
}

func TestDispatcher_RoundTrip(t *testing.T) {
	chatter := echoChatter(map[string]string{"Hi": "Hello"})
	s, d := newTestDispatcher(t, chatter)
	s.SetInput("Hi")

	reply, ok := d.Submit(context.Background(), "Hi")
	require.True(t, ok)
	assert.False(t, reply.Failed())

	msgs := s.Messages()
	require.Len(t, msgs, 3)
	assert.Equal(t, SenderUser, msgs[1].Sender)
	assert.Equal(t, "Hi", msgs[1].Content)
	assert.Equal(t, SenderBot, msgs[2].Sender)
	assert.Equal(t, "Hello", msgs[2].Content)
	assert.False(t, s.Awaiting())
	assert.Empty(t, s.Input())
	assert.Equal(t, int32(1), chatter.calls.Load())
}

func TestDispatcher_FailureAppendsApology(t *testing.T) {
	chatter := failingChatter(errors.New("connection refused"))
	s, d := newTestDispatcher(t, chatter)

	reply, ok := d.Submit(context.Background(), "Hi")
	require.True(t, ok)
	assert.True(t, reply.Failed())

	last := s.Last()
	assert.Equal(t, SenderBot, last.Sender)
	assert.Equal(t, DefaultApology, last.Content)
	assert.NotContains(t, last.Content, "connection refused")
	assert.False(t, s.Awaiting())
	assert.Equal(t, int32(1), chatter.calls.Load())
}

func TestDispatcher_CustomApology(t *testing.T) {
	s := NewSession("")
	d := NewDispatcher(s, failingChatter(errors.New("boom")), Options{Apology: "oops", Logger: zerolog.Nop()})

	d.Submit(context.Background(), "Hi")
	assert.Equal(t, "oops", s.Last().Content)
	assert.Equal(t, "oops", d.Apology())
}

func TestDispatcher_RejectsBlankInput(t *testing.T) {
	inputs := []string{"", " ", "\t\n", "   \r\n  "}

	for _, in := range inputs {
		t.Run(fmt.Sprintf("%q", in), func(t *testing.T) {
			chatter := echoChatter(nil)
			s, d := newTestDispatcher(t, chatter)

			_, ok := d.Submit(context.Background(), in)
			assert.False(t, ok)
			assert.Equal(t, 1, s.Len())
			assert.False(t, s.Awaiting())
			assert.Equal(t, int32(0), chatter.calls.Load())
		})
	}
}

func TestDispatcher_DropsSubmissionWhileAwaiting(t *testing.T) {
	chatter := echoChatter(nil)
	s, d := newTestDispatcher(t, chatter)

	turn, ok := d.Begin("first")
	require.True(t, ok)
	require.True(t, s.Awaiting())
	lenAfterFirst := s.Len()

	_, ok = d.Begin("second")
	assert.False(t, ok)
	_, ok = d.Submit(context.Background(), "third")
	assert.False(t, ok)
	assert.Equal(t, lenAfterFirst, s.Len())
	assert.Equal(t, int32(0), chatter.calls.Load(), "no call issued until Exchange")

	d.Complete(d.Exchange(context.Background(), turn))
	assert.Equal(t, int32(1), chatter.calls.Load())
	assert.False(t, s.Awaiting())

	_, ok = d.Begin("fourth")
	assert.True(t, ok, "gate reopens after completion")
}

func TestDispatcher_IgnoresStaleReply(t *testing.T) {
	s, d := newTestDispatcher(t, echoChatter(nil))

	first, ok := d.Begin("one")
	require.True(t, ok)
	_, ok = d.Complete(d.Exchange(context.Background(), first))
	require.True(t, ok)

	n := s.Len()
	_, ok = d.Complete(Reply{Turn: first.ID, Content: "late duplicate"})
	assert.False(t, ok)
	assert.Equal(t, n, s.Len())

	second, ok := d.Begin("two")
	require.True(t, ok)
	_, ok = d.Complete(Reply{Turn: first.ID, Content: "wrong turn"})
	assert.False(t, ok)
	assert.True(t, s.Awaiting())

	_, ok = d.Complete(d.Exchange(context.Background(), second))
	assert.True(t, ok)
	assert.False(t, s.Awaiting())
}

func TestDispatcher_TimeoutIsFailure(t *testing.T) {
	blocking := &fakeChatter{}
	s := NewSession("")
	d := NewDispatcher(s, chatterFunc(func(ctx context.Context, _ string) (string, error) {
		blocking.calls.Add(1)
		<-ctx.Done()
		return "", ctx.Err()
	}), Options{Timeout: 20 * time.Millisecond, Logger: zerolog.Nop()})

	reply, ok := d.Submit(context.Background(), "Hi")
	require.True(t, ok)
	assert.ErrorIs(t, reply.Err, context.DeadlineExceeded)
	assert.Equal(t, DefaultApology, s.Last().Content)
	assert.False(t, s.Awaiting())
	assert.Equal(t, int32(1), blocking.calls.Load())
}

func TestDispatcher_TranscriptInvariants(t *testing.T) {
	calls := 0
	chatter := &fakeChatter{reply: func(message string) (string, error) {
		calls++
		if calls%3 == 0 {
			return "", errors.New("flaky")
		}
		return "re: " + message, nil
	}}
	s, d := newTestDispatcher(t, chatter)

	inputs := []string{"a", "", "b", "  ", "c", "d", "e", "\n", "f"}
	var before []Message
	for _, in := range inputs {
		before = s.Messages()
		d.Submit(context.Background(), in)

		after := s.Messages()
		require.GreaterOrEqual(t, len(after), len(before), "transcript never shrinks")
		assert.Equal(t, before, after[:len(before)], "existing entries are unchanged")
		assert.False(t, s.Awaiting())
	}

	msgs := s.Messages()
	assert.Equal(t, SenderBot, msgs[0].Sender)
	for i := 1; i < len(msgs); i += 2 {
		require.Equal(t, SenderUser, msgs[i].Sender, "index %d", i)
		require.Less(t, i+1, len(msgs), "user message at %d has no reply", i)
		assert.Equal(t, SenderBot, msgs[i+1].Sender, "index %d", i+1)
	}
	assert.Equal(t, SenderBot, s.Last().Sender)
}

type chatterFunc func(ctx context.Context, message string) (string, error)

func (f chatterFunc) Chat(ctx context.Context, message string) (string, error) {
	return f(ctx, message)
}
