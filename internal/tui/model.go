package tui

import (
	"context"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/rs/zerolog"

	"github.com/foliochat/folio/internal/backend"
	"github.com/foliochat/folio/internal/core/chat"
	"github.com/foliochat/folio/internal/render"
	"github.com/foliochat/folio/internal/styles"
)

// chromeHeight is the number of lines around the transcript: header, two
// dividers, composer and help.
const chromeHeight = 5

// notifyTimeout bounds a contact form submission.
const notifyTimeout = 15 * time.Second

// Notifier delivers contact form submissions.
type Notifier interface {
	Notify(ctx context.Context, n backend.Notification) error
}

// Options configures the TUI behavior.
type Options struct {
	Renderer       *render.Renderer // nil uses render defaults
	Notifier       Notifier         // nil disables the contact form
	ContactSuccess string
	ContactFailure string
	Logger         zerolog.Logger
}

// replyMsg carries the outcome of one exchange back to the event loop.
type replyMsg struct {
	reply chat.Reply
}

// contactSentMsg is sent when a contact submission finishes.
type contactSentMsg struct {
	err error
}

// Model is the main Bubble Tea model for the chat client.
type Model struct {
	ctx        context.Context
	cancel     context.CancelFunc
	session    *chat.Session
	dispatcher *chat.Dispatcher
	notifier   Notifier
	log        zerolog.Logger

	transcript *TranscriptView
	input      textinput.Model
	spinner    spinner.Model
	help       help.Model
	keys       keyMap

	state          UIState
	contact        *ContactForm
	contactPending bool
	contactOK      string
	contactFailed  string
	status         string
	statusErr      bool

	width    int
	height   int
	quitting bool
}

// New creates a chat model over session. All transcript changes go through
// dispatcher.
func New(session *chat.Session, dispatcher *chat.Dispatcher, opts Options) Model {
	r := opts.Renderer
	if r == nil {
		r = render.New(render.Options{})
	}

	ti := textinput.New()
	ti.Placeholder = "Ask me anything..."
	ti.Prompt = ""
	ti.SetValue(session.Input())
	ti.Focus()

	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = spinnerStyle

	h := help.New()
	h.Styles.ShortKey = helpStyle.UnsetPaddingLeft()
	h.Styles.ShortDesc = helpStyle.UnsetPaddingLeft()
	h.Styles.ShortSeparator = helpStyle.UnsetPaddingLeft()
	h.ShortSeparator = " " + iconDot + " "

	keys := defaultKeyMap()
	if opts.Notifier == nil {
		keys.Contact.SetEnabled(false)
	}

	success := opts.ContactSuccess
	if success == "" {
		success = "Message sent."
	}
	failure := opts.ContactFailure
	if failure == "" {
		failure = "Please try again."
	}

	ctx, cancel := context.WithCancel(context.Background())

	transcript := NewTranscriptView(r)
	transcript.Sync(session.All())

	return Model{
		ctx:           ctx,
		cancel:        cancel,
		session:       session,
		dispatcher:    dispatcher,
		notifier:      opts.Notifier,
		log:           opts.Logger,
		transcript:    transcript,
		input:         ti,
		spinner:       s,
		help:          h,
		keys:          keys,
		state:         stateChatting,
		contactOK:     success,
		contactFailed: failure,
	}
}

// Init initializes the model.
func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

// Session returns the session backing the model.
func (m Model) Session() *chat.Session {
	return m.session
}

// Update handles messages.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.input.Width = max(msg.Width-6, 1)
		m.help.Width = msg.Width
		m.transcript.SetSize(msg.Width, max(msg.Height-chromeHeight, 1))
		return m, nil

	case replyMsg:
		if _, ok := m.dispatcher.Complete(msg.reply); !ok {
			m.log.Debug().Uint64("turn", msg.reply.Turn).Msg("ignoring stale reply")
			return m, nil
		}
		m.transcript.Sync(m.session.All())
		return m, nil

	case contactSentMsg:
		m.contactPending = false
		if msg.err != nil {
			m.log.Warn().Err(msg.err).Msg("contact submission failed")
			m.status = m.contactFailed
			m.statusErr = true
		} else {
			m.status = m.contactOK
			m.statusErr = false
		}
		return m, nil

	case spinner.TickMsg:
		if !m.session.Awaiting() && !m.contactPending {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case tea.MouseMsg:
		if m.state == stateChatting {
			return m, m.transcript.Update(msg)
		}

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	if m.state == stateContact {
		return m.updateContactForm(msg)
	}

	return m.updateInput(msg)
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.Quit) {
		m.quitting = true
		m.cancel()
		return m, tea.Quit
	}

	if m.state == stateContact {
		if msg.String() == keyEsc {
			m.state = stateChatting
			m.contact = nil
			return m, nil
		}
		return m.updateContactForm(msg)
	}

	switch {
	case key.Matches(msg, m.keys.Send):
		return m.send()
	case key.Matches(msg, m.keys.Contact):
		return m.openContact()
	case key.Matches(msg, m.keys.PageUp):
		m.transcript.PageUp()
		return m, nil
	case key.Matches(msg, m.keys.PageDown):
		m.transcript.PageDown()
		return m, nil
	}

	return m.updateInput(msg)
}

// send starts a turn for the composer text. The exchange runs as a command
// and reports back through replyMsg.
func (m Model) send() (tea.Model, tea.Cmd) {
	m.session.SetInput(m.input.Value())

	turn, ok := m.dispatcher.Begin(m.session.Input())
	if !ok {
		return m, nil
	}
	m.input.Reset()
	m.transcript.Sync(m.session.All())

	return m, tea.Batch(m.exchange(turn), m.spinner.Tick)
}

func (m Model) exchange(turn chat.Turn) tea.Cmd {
	ctx, d := m.ctx, m.dispatcher
	return func() tea.Msg {
		return replyMsg{reply: d.Exchange(ctx, turn)}
	}
}

func (m Model) openContact() (tea.Model, tea.Cmd) {
	if m.notifier == nil || m.contactPending {
		return m, nil
	}
	m.contact = NewContactForm(backend.Notification{})
	m.state = stateContact
	m.status = ""
	return m, m.contact.Form().Init()
}

// updateContactForm routes msg to the form and sends it once completed.
func (m Model) updateContactForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	if m.contact == nil {
		m.state = stateChatting
		return m, nil
	}

	form, cmd := m.contact.Form().Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.contact.form = f
	}

	switch {
	case m.contact.Submitted():
		n := m.contact.Notification()
		m.contact = nil
		m.state = stateChatting
		m.contactPending = true
		return m, tea.Batch(m.notify(n), m.spinner.Tick)
	case m.contact.Cancelled():
		m.contact = nil
		m.state = stateChatting
		return m, nil
	}

	return m, cmd
}

func (m Model) notify(n backend.Notification) tea.Cmd {
	ctx, notifier := m.ctx, m.notifier
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(ctx, notifyTimeout)
		defer cancel()
		return contactSentMsg{err: notifier.Notify(ctx, n)}
	}
}

func (m Model) updateInput(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	m.session.SetInput(m.input.Value())
	return m, cmd
}

// View renders the UI.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	w := m.width
	if w == 0 {
		w = 80
	}
	h := m.height
	if h == 0 {
		h = 24
	}

	divider := dividerStyle.Render(strings.Repeat("─", w))
	mainView := lipgloss.JoinVertical(
		lipgloss.Left,
		m.headerView(w),
		divider,
		m.transcript.View(),
		divider,
		m.composerView(),
		m.helpView(),
	)

	if m.state == stateContact && m.contact != nil {
		content := lipgloss.JoinVertical(
			lipgloss.Left,
			modalTitleStyle.Render("Get in touch"),
			"",
			m.contact.View(),
			modalHelpStyle.Render("esc cancel"),
		)
		return lipgloss.Place(w, h, lipgloss.Center, lipgloss.Center, modalStyle.Render(content))
	}

	return mainView
}

func (m Model) headerView(width int) string {
	banner := styles.BannerStyle.Render(styles.Banner)

	var status string
	switch {
	case m.contactPending:
		status = m.spinner.View() + " sending"
	case m.status != "" && m.statusErr:
		status = statusErrStyle.Render(m.status)
	case m.status != "":
		status = statusOKStyle.Render(m.status)
	}

	gap := max(width-lipgloss.Width(banner)-lipgloss.Width(status)-2, 1)
	return headerStyle.Render(banner + strings.Repeat(" ", gap) + status)
}

// composerView shows the input and the send affordance. While a reply is
// pending the affordance is a spinner.
func (m Model) composerView() string {
	affordance := sendIdleStyle.Render(iconSend)
	if m.session.Awaiting() {
		affordance = m.spinner.View()
	}
	return lipgloss.JoinHorizontal(
		lipgloss.Left,
		promptStyle.Render(" > "),
		m.input.View(),
		" ",
		affordance,
	)
}

func (m Model) helpView() string {
	keys := m.keys
	keys.Send.SetEnabled(!m.session.Awaiting())
	return helpStyle.Render(m.help.View(keys))
}
