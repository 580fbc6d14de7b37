package tui

import (
	"iter"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/foliochat/folio/internal/core/chat"
	"github.com/foliochat/folio/internal/render"
)

// maxBubbleRatio is the share of the view width a bubble may take.
const maxBubbleRatio = 0.9

// TranscriptView lays out transcript rows inside a scrollable viewport and
// follows the newest row.
type TranscriptView struct {
	viewport viewport.Model
	renderer *render.Renderer
	msgs     iter.Seq[chat.Message]
	rows     int
	width    int
	height   int
}

// NewTranscriptView creates an empty view using r for message bodies.
func NewTranscriptView(r *render.Renderer) *TranscriptView {
	vp := viewport.New(0, 0)
	vp.Style = lipgloss.NewStyle()

	return &TranscriptView{
		viewport: vp,
		renderer: r,
	}
}

// SetSize sets the view dimensions and relayouts the current transcript.
func (v *TranscriptView) SetSize(width, height int) {
	v.width = max(width, 1)
	v.height = max(height, 1)
	v.viewport.Width = v.width
	v.viewport.Height = v.height
	v.renderer.SetWidth(v.bubbleWidth() - bubbleFrame)

	if v.msgs == nil {
		return
	}

	follow := v.viewport.AtBottom()
	v.layout()
	if follow {
		v.viewport.GotoBottom()
	}
}

// Sync lays out msgs. When the row count changed the viewport moves to the
// last row, after the new content is set.
func (v *TranscriptView) Sync(msgs iter.Seq[chat.Message]) {
	v.msgs = msgs

	n := v.layout()
	if n != v.rows {
		v.rows = n
		v.viewport.GotoBottom()
	}
}

// Update forwards mouse input to the viewport.
func (v *TranscriptView) Update(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	v.viewport, cmd = v.viewport.Update(msg)
	return cmd
}

// PageUp scrolls half a page up.
func (v *TranscriptView) PageUp() {
	v.viewport.ScrollUp(max(v.height/2, 1))
}

// PageDown scrolls half a page down.
func (v *TranscriptView) PageDown() {
	v.viewport.ScrollDown(max(v.height/2, 1))
}

// Rows returns the number of rows laid out.
func (v *TranscriptView) Rows() int {
	return v.rows
}

// AtBottom reports whether the newest row is visible.
func (v *TranscriptView) AtBottom() bool {
	return v.viewport.AtBottom()
}

// YOffset returns the current scroll offset.
func (v *TranscriptView) YOffset() int {
	return v.viewport.YOffset
}

// MaxYOffset returns the offset that shows the last line at the bottom.
func (v *TranscriptView) MaxYOffset() int {
	return max(v.viewport.TotalLineCount()-v.viewport.Height, 0)
}

// View renders the viewport.
func (v *TranscriptView) View() string {
	return v.viewport.View()
}

func (v *TranscriptView) layout() int {
	var b strings.Builder
	n := 0
	for row := range v.renderer.Rows(v.msgs) {
		if n > 0 {
			b.WriteString("\n")
		}
		b.WriteString(v.renderRow(row))
		n++
	}
	v.viewport.SetContent(b.String())
	return n
}

func (v *TranscriptView) bubbleWidth() int {
	return max(int(float64(v.width)*maxBubbleRatio), bubbleFrame+1)
}

// renderRow draws one message as a labelled bubble aligned by sender.
func (v *TranscriptView) renderRow(row render.Row) string {
	style := botBubbleStyle
	label := "folio"
	pos := lipgloss.Left
	if row.Align == render.AlignRight {
		style = userBubbleStyle
		label = "you"
		pos = lipgloss.Right
	}

	inner := v.bubbleWidth() - bubbleFrame
	textWidth := min(lipgloss.Width(row.Body), inner)
	bubble := style.Width(textWidth + bubbleFrame - 2).Render(row.Body)

	meta := metaStyle.Render(label + " " + iconDot + " " + row.CreatedAt.Format("15:04"))
	block := lipgloss.JoinVertical(pos, meta, bubble)

	return lipgloss.PlaceHorizontal(v.width, pos, block)
}
