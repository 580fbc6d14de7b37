package chat

import (
	"context"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// Defaults for Dispatcher options.
const (
	DefaultApology = "Sorry, something went wrong while processing your message."
	DefaultTimeout = 30 * time.Second
)

// Chatter sends one message to the remote assistant and returns its reply.
type Chatter interface {
	Chat(ctx context.Context, message string) (string, error)
}

// Options configures a Dispatcher.
type Options struct {
	Apology string        // bot message used for every failed exchange
	Timeout time.Duration // upper bound for one exchange, 0 means DefaultTimeout
	Logger  zerolog.Logger
}

// Turn is an accepted user submission waiting for its reply.
type Turn struct {
	ID   uint64
	User Message
}

// Reply is the outcome of exchanging a Turn with the remote assistant.
type Reply struct {
	Turn    uint64
	Content string
	Err     error
}

// Failed returns true if the exchange did not produce a usable reply.
func (r Reply) Failed() bool {
	return r.Err != nil
}

// Dispatcher mediates exactly one round trip per user turn and keeps at most
// one exchange in flight.
type Dispatcher struct {
	session *Session
	chatter Chatter
	apology string
	timeout time.Duration
	log     zerolog.Logger

	seq     uint64
	current uint64
}

// NewDispatcher creates a dispatcher that writes to session and sends through chatter.
func NewDispatcher(session *Session, chatter Chatter, opts Options) *Dispatcher {
	if opts.Apology == "" {
		opts.Apology = DefaultApology
	}
	if opts.Timeout <= 0 {
		opts.Timeout = DefaultTimeout
	}

	return &Dispatcher{
		session: session,
		chatter: chatter,
		apology: opts.Apology,
		timeout: opts.Timeout,
		log:     opts.Logger,
	}
}

// Apology returns the message shown when an exchange fails.
func (d *Dispatcher) Apology() string {
	return d.apology
}

// Begin accepts text as the next user turn. Blank text, or any text while a
// reply is pending, is dropped and Begin returns false. On success the user
// message is appended, the composer cleared and the gate closed.
func (d *Dispatcher) Begin(text string) (Turn, bool) {
	if strings.TrimSpace(text) == "" || d.session.Awaiting() {
		return Turn{}, false
	}

	msg := d.session.stamp(SenderUser, text)
	if !d.session.Append(msg) {
		return Turn{}, false
	}
	d.session.ClearInput()
	d.session.SetAwaiting(true)

	d.seq++
	d.current = d.seq

	return Turn{ID: d.current, User: msg}, true
}

// Exchange performs the single network call for t. It never touches the
// session and may run off the event loop.
func (d *Dispatcher) Exchange(ctx context.Context, t Turn) Reply {
	ctx, cancel := context.WithTimeout(ctx, d.timeout)
	defer cancel()

	start := time.Now()
	content, err := d.chatter.Chat(ctx, t.User.Content)
	if err != nil {
		d.log.Warn().
			Err(err).
			Uint64("turn", t.ID).
			Dur("elapsed", time.Since(start)).
			Msg("chat exchange failed")
		return Reply{Turn: t.ID, Err: err}
	}

	d.log.Debug().
		Uint64("turn", t.ID).
		Dur("elapsed", time.Since(start)).
		Int("reply_len", len(content)).
		Msg("chat exchange complete")

	return Reply{Turn: t.ID, Content: content}
}

// Complete appends the bot message for r and opens the gate. A reply for a
// turn that is not in flight is ignored and Complete returns false.
func (d *Dispatcher) Complete(r Reply) (Message, bool) {
	if !d.session.Awaiting() || r.Turn != d.current {
		return Message{}, false
	}

	content := r.Content
	if r.Failed() {
		content = d.apology
	}

	msg := d.session.stamp(SenderBot, content)
	d.session.Append(msg)
	d.session.SetAwaiting(false)

	return msg, true
}

// Submit runs a whole turn synchronously: Begin, Exchange and Complete.
func (d *Dispatcher) Submit(ctx context.Context, text string) (Reply, bool) {
	turn, ok := d.Begin(text)
	if !ok {
		return Reply{}, false
	}

	reply := d.Exchange(ctx, turn)
	d.Complete(reply)

	return reply, true
}
