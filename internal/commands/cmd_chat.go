package commands

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v3"

	"github.com/foliochat/folio/internal/store/jsonfile"
	"github.com/foliochat/folio/internal/tui"
)

type ChatCmd struct {
	flags         *Flags
	transcriptOut string
}

// NewChatCmd creates the interactive chat command.
func NewChatCmd(flags *Flags) *ChatCmd {
	return &ChatCmd{
		flags: flags,
	}
}

// Flags returns the chat flags for registration on the root command.
func (cmd *ChatCmd) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "transcript-out",
			Usage:       "write the transcript as JSON to this path on exit",
			Sources:     cli.EnvVars("FOLIO_TRANSCRIPT_OUT"),
			Destination: &cmd.transcriptOut,
		},
	}
}

// Run executes the TUI. Exported for use as default command.
func (cmd *ChatCmd) Run(ctx context.Context, c *cli.Command) error {
	return cmd.run(ctx, c)
}

func (cmd *ChatCmd) run(_ context.Context, _ *cli.Command) error {
	cfg := cmd.flags.config()
	logger := log.With().Str("component", "chat").Logger()

	session, dispatcher := cmd.flags.newConversation(cmd.flags.Client, logger)

	m := tui.New(session, dispatcher, tui.Options{
		Renderer:       cmd.flags.newRenderer(),
		Notifier:       cmd.flags.Client,
		ContactSuccess: cfg.Contact.Success,
		ContactFailure: cfg.Contact.Failure,
		Logger:         logger,
	})

	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseCellMotion())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("run tui: %w", err)
	}

	if cmd.transcriptOut != "" {
		store := jsonfile.New(cmd.transcriptOut)
		if err := store.Export(cmd.flags.Client.BaseURL(), session.Messages()); err != nil {
			return fmt.Errorf("export transcript: %w", err)
		}
		log.Info().Str("path", store.Path()).Int("messages", session.Len()).Msg("transcript exported")
	}

	return nil
}
