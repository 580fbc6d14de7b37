package chat

import (
	"iter"
	"strings"
	"time"
)

// DefaultGreeting seeds every new session.
const DefaultGreeting = "Hi! Feel free to ask me anything."

// Session holds the transcript, the composer text and the in-flight gate.
//
// A Session is not safe for concurrent use. It is owned by a single event
// loop and only mutated from there.
type Session struct {
	transcript []Message
	input      string
	awaiting   bool
	now        func() time.Time
}

// SessionOption configures a Session.
type SessionOption func(*Session)

// WithClock overrides the clock used to stamp new messages.
func WithClock(now func() time.Time) SessionOption {
	return func(s *Session) {
		s.now = now
	}
}

// NewSession creates a session seeded with a single bot greeting.
// An empty greeting falls back to DefaultGreeting.
func NewSession(greeting string, opts ...SessionOption) *Session {
	s := &Session{now: time.Now}
	for _, opt := range opts {
		opt(s)
	}

	if strings.TrimSpace(greeting) == "" {
		greeting = DefaultGreeting
	}
	s.transcript = []Message{NewMessage(SenderBot, greeting, s.now())}

	return s
}

// Append adds msg to the end of the transcript. User messages with blank
// content are dropped and Append returns false.
func (s *Session) Append(msg Message) bool {
	if msg.FromUser() && strings.TrimSpace(msg.Content) == "" {
		return false
	}
	s.transcript = append(s.transcript, msg)
	return true
}

// Awaiting reports whether a reply is pending.
func (s *Session) Awaiting() bool {
	return s.awaiting
}

// SetAwaiting toggles the in-flight gate.
func (s *Session) SetAwaiting(v bool) {
	s.awaiting = v
}

// Input returns the text currently being composed.
func (s *Session) Input() string {
	return s.input
}

// SetInput replaces the composer text.
func (s *Session) SetInput(text string) {
	s.input = text
}

// ClearInput empties the composer.
func (s *Session) ClearInput() {
	s.input = ""
}

// Len returns the number of messages in the transcript.
func (s *Session) Len() int {
	return len(s.transcript)
}

// Last returns the most recent message. The greeting guarantees there is one.
func (s *Session) Last() Message {
	return s.transcript[len(s.transcript)-1]
}

// Messages returns a copy of the transcript.
func (s *Session) Messages() []Message {
	out := make([]Message, len(s.transcript))
	copy(out, s.transcript)
	return out
}

// All iterates the transcript in insertion order. Messages appended while
// iterating are not visited.
func (s *Session) All() iter.Seq[Message] {
	return func(yield func(Message) bool) {
		snapshot := s.transcript[:len(s.transcript):len(s.transcript)]
		for _, msg := range snapshot {
			if !yield(msg) {
				return
			}
		}
	}
}

func (s *Session) stamp(sender Sender, content string) Message {
	return NewMessage(sender, content, s.now())
}
