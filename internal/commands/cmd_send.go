package commands

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v3"
	"golang.org/x/term"

	"github.com/foliochat/folio/internal/render"
)

type SendCmd struct {
	flags *Flags
	plain bool
}

// NewSendCmd creates the one-shot send command.
func NewSendCmd(flags *Flags) *SendCmd {
	return &SendCmd{flags: flags}
}

// Register adds the send command to the application.
func (cmd *SendCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:      "send",
		Usage:     "Send one message and print the reply",
		UsageText: "folio send [options] [message...]",
		Description: `Sends a single message to the assistant and prints its reply.

The message is taken from the arguments, or from stdin when no arguments are
given and stdin is not a terminal.

Examples:
  folio send "What projects have you worked on?"
  echo "Tell me about your stack" | folio send`,
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:        "plain",
				Usage:       "print the sanitized reply without markdown styling",
				Destination: &cmd.plain,
			},
		},
		Action: cmd.run,
	})
	return app
}

func (cmd *SendCmd) run(ctx context.Context, c *cli.Command) error {
	message, err := readMessage(c.Args().Slice(), os.Stdin, term.IsTerminal(int(os.Stdin.Fd())))
	if err != nil {
		return err
	}

	logger := log.With().Str("component", "send").Logger()
	session, dispatcher := cmd.flags.newConversation(cmd.flags.Client, logger)

	reply, ok := dispatcher.Submit(ctx, message)
	if !ok {
		return errors.New("message is empty")
	}

	out := c.Root().Writer
	if out == nil {
		out = os.Stdout
	}

	last := session.Last()
	if cmd.plain {
		_, _ = fmt.Fprintln(out, render.NewSanitizer().Sanitize(last.Content))
	} else {
		_, _ = fmt.Fprintln(out, strings.TrimRight(cmd.flags.newRenderer().Body(last), "\n"))
	}

	if reply.Failed() {
		return cli.Exit("", 1)
	}
	return nil
}

// readMessage joins args, or reads stdin when there are none and it is piped.
func readMessage(args []string, stdin io.Reader, stdinIsTerminal bool) (string, error) {
	if len(args) > 0 {
		return strings.Join(args, " "), nil
	}

	if stdinIsTerminal {
		return "", errors.New("no message provided (stdin is a terminal); pass it as an argument or pipe it in")
	}

	data, err := io.ReadAll(stdin)
	if err != nil {
		return "", fmt.Errorf("read stdin: %w", err)
	}
	return strings.TrimRight(string(data), "\r\n"), nil
}
