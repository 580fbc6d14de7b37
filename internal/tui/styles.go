// Package tui implements the Bubble Tea chat client for folio.
package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/foliochat/folio/internal/styles"
)

// Styles used for rendering the TUI.
var (
	headerStyle = lipgloss.NewStyle().
			PaddingLeft(1)

	dividerStyle = styles.DividerStyle

	// Bot replies sit on the left in a muted bubble.
	botBubbleStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(styles.ColorPanel).
			Foreground(styles.ColorWhite).
			Padding(0, 1)

	// User messages sit on the right in an accent bubble.
	userBubbleStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(styles.ColorBlue).
			Foreground(styles.ColorWhite).
			Padding(0, 1)

	metaStyle = lipgloss.NewStyle().
			Foreground(styles.ColorGray)

	promptStyle = lipgloss.NewStyle().
			Foreground(styles.ColorBlue).
			Bold(true)

	sendIdleStyle = lipgloss.NewStyle().
			Foreground(styles.ColorBlue)

	statusOKStyle = lipgloss.NewStyle().
			Foreground(styles.ColorGreen)

	statusErrStyle = lipgloss.NewStyle().
			Foreground(styles.ColorYellow)

	spinnerStyle = lipgloss.NewStyle().
			Foreground(styles.ColorBlue)

	helpStyle = lipgloss.NewStyle().
			Foreground(styles.ColorGray).
			PaddingLeft(1)

	modalStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(styles.ColorBlue).
			Padding(1, 2)

	modalTitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(styles.ColorWhite)

	modalHelpStyle = lipgloss.NewStyle().
			Foreground(styles.ColorGray).
			MarginTop(1)
)

// Icons and symbols.
const (
	iconSend = "➤"
	iconDot  = "•"
)

// bubbleFrame is the horizontal space taken by bubble border and padding.
const bubbleFrame = 4
