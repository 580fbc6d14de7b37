package render

import (
	"iter"
	"strings"
	"time"

	"github.com/charmbracelet/glamour"

	"github.com/foliochat/folio/internal/core/chat"
)

// Renderer defaults.
const (
	DefaultStyle    = "tokyo-night"
	DefaultWordWrap = 80
	minWordWrap     = 10
)

// Align is the horizontal placement of a row.
type Align int

const (
	AlignLeft Align = iota
	AlignRight
)

// AlignFor returns the placement for messages from sender.
func AlignFor(sender chat.Sender) Align {
	if sender == chat.SenderUser {
		return AlignRight
	}
	return AlignLeft
}

// Row is one rendered transcript entry.
type Row struct {
	ID        string
	Sender    chat.Sender
	Align     Align
	Body      string
	CreatedAt time.Time
}

// Options configures a Renderer.
type Options struct {
	Style    string // glamour standard style name
	WordWrap int    // upper bound for wrapping bot replies
}

// Renderer produces display rows for messages. Bodies are cached by message
// ID since messages never change; the cache is reset when the width changes.
type Renderer struct {
	sanitizer *Sanitizer
	style     string
	maxWrap   int
	wrap      int
	md        *glamour.TermRenderer
	cache     map[string]string
}

// New creates a renderer.
func New(opts Options) *Renderer {
	if opts.Style == "" {
		opts.Style = DefaultStyle
	}
	if opts.WordWrap <= 0 {
		opts.WordWrap = DefaultWordWrap
	}

	return &Renderer{
		sanitizer: NewSanitizer(),
		style:     opts.Style,
		maxWrap:   opts.WordWrap,
		wrap:      opts.WordWrap,
		cache:     make(map[string]string),
	}
}

// SetWidth bounds the wrap width to the available columns.
func (r *Renderer) SetWidth(width int) {
	wrap := min(max(width, minWordWrap), r.maxWrap)
	if wrap == r.wrap {
		return
	}
	r.wrap = wrap
	r.md = nil
	clear(r.cache)
}

// Wrap returns the current wrap width.
func (r *Renderer) Wrap() int {
	return r.wrap
}

// Body returns the display text for msg. User messages are sanitized but
// otherwise shown as typed; bot replies are rendered as markdown.
func (r *Renderer) Body(msg chat.Message) string {
	if body, ok := r.cache[msg.ID]; ok {
		return body
	}

	body := r.sanitizer.Sanitize(msg.Content)
	if !msg.FromUser() {
		body = r.markdown(body)
	}

	r.cache[msg.ID] = body
	return body
}

// Rows maps msgs to display rows, one per message, in order.
func (r *Renderer) Rows(msgs iter.Seq[chat.Message]) iter.Seq[Row] {
	return func(yield func(Row) bool) {
		for msg := range msgs {
			row := Row{
				ID:        msg.ID,
				Sender:    msg.Sender,
				Align:     AlignFor(msg.Sender),
				Body:      r.Body(msg),
				CreatedAt: msg.CreatedAt,
			}
			if !yield(row) {
				return
			}
		}
	}
}

// markdown renders sanitized markdown, falling back to the input on error.
func (r *Renderer) markdown(s string) string {
	if r.md == nil {
		md, err := glamour.NewTermRenderer(
			glamour.WithStandardStyle(r.style),
			glamour.WithWordWrap(r.wrap),
		)
		if err != nil {
			return s
		}
		r.md = md
	}

	rendered, err := r.md.Render(s)
	if err != nil {
		return s
	}

	out := trimDecorative(strings.TrimRight(rendered, "\n"))
	if out == "" {
		return s
	}
	return out
}
