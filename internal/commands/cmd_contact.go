package commands

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/charmbracelet/huh"
	"github.com/hay-kot/criterio"
	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v3"

	"github.com/foliochat/folio/internal/backend"
	"github.com/foliochat/folio/internal/core/validate"
	"github.com/foliochat/folio/internal/printer"
	"github.com/foliochat/folio/internal/tui"
)

// contactTimeout bounds the notification request.
const contactTimeout = 15 * time.Second

type ContactCmd struct {
	flags *Flags
	note  backend.Notification
}

// NewContactCmd creates the contact command.
func NewContactCmd(flags *Flags) *ContactCmd {
	return &ContactCmd{flags: flags}
}

// Register adds the contact command to the application.
func (cmd *ContactCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:      "contact",
		Usage:     "Leave a message for the site owner",
		UsageText: "folio contact [--name <name> --email <email> --message <text>]",
		Description: `Sends your name, email and a message to the site owner.

When all three flags are given the message is sent directly. Otherwise an
interactive form is shown, prefilled with any flags that were set.`,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "name",
				Usage:       "your name",
				Destination: &cmd.note.Name,
			},
			&cli.StringFlag{
				Name:        "email",
				Usage:       "address to reply to",
				Destination: &cmd.note.Email,
			},
			&cli.StringFlag{
				Name:        "message",
				Aliases:     []string{"m"},
				Usage:       "message body",
				Destination: &cmd.note.Message,
			},
		},
		Action: cmd.run,
	})
	return app
}

func (cmd *ContactCmd) run(ctx context.Context, _ *cli.Command) error {
	note := cmd.note

	if !complete(note) {
		form := tui.NewContactForm(note)
		if err := form.Form().RunWithContext(ctx); err != nil {
			if errors.Is(err, huh.ErrUserAborted) {
				return nil
			}
			return fmt.Errorf("contact form: %w", err)
		}
		note = form.Notification()
	}

	if err := validateNotification(note); err != nil {
		return err
	}

	return cmd.send(ctx, note)
}

func (cmd *ContactCmd) send(ctx context.Context, note backend.Notification) error {
	p := printer.Ctx(ctx)
	cfg := cmd.flags.config()

	ctx, cancel := context.WithTimeout(ctx, contactTimeout)
	defer cancel()

	if err := cmd.flags.Client.Notify(ctx, note); err != nil {
		log.Warn().Err(err).Msg("contact submission failed")
		p.Warnf("%s", cfg.Contact.Failure)
		return cli.Exit("", 1)
	}

	p.Successf("%s", cfg.Contact.Success)
	return nil
}

func complete(n backend.Notification) bool {
	return n.Name != "" && n.Email != "" && n.Message != ""
}

// validateNotification reports every invalid field of n.
func validateNotification(n backend.Notification) error {
	var errs criterio.FieldErrorsBuilder

	if err := validate.Required("name", n.Name); err != nil {
		errs = errs.Append("name", err)
	}
	if err := validate.Email(n.Email); err != nil {
		errs = errs.Append("email", err)
	}
	if err := validate.Required("message", n.Message); err != nil {
		errs = errs.Append("message", err)
	}

	return errs.ToError()
}
