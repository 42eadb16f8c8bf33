package handler

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"photoedit/internal/core/domain"
	"photoedit/internal/core/domain/command"
	"photoedit/internal/core/port"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
)

// Console reads one command per line and dispatches it through the registry. Commands run one at a time on the
// reading goroutine, so the editing session never sees concurrent edits.
type Console struct {
	commandRegistry port.CommandRegistry
	textSender      port.TextSender
	timeout         time.Duration
}

func NewConsole(commandRegistry port.CommandRegistry, textSender port.TextSender, timeout time.Duration) *Console {
	return &Console{commandRegistry: commandRegistry, textSender: textSender, timeout: timeout}
}

// Run processes lines from in until EOF, a quit command, or ctx is cancelled.
func (c *Console) Run(ctx context.Context, in io.Reader) error {
	scanner := bufio.NewScanner(in)
	id := 0

	for scanner.Scan() {
		if err := ctx.Err(); err != nil {
			return err
		}

		text := strings.TrimSpace(scanner.Text())
		if text == "" || strings.HasPrefix(text, "#") {
			continue
		}

		cmd := command.ParseCommand(text)
		if cmd == "quit" || cmd == "exit" {
			log.Debug().Msg("console closed by user")
			return nil
		}

		id++
		c.Handle(ctx, &domain.Message{ID: id, Text: text})
	}

	return scanner.Err()
}

// Handle dispatches a single message. Command failures are reported to the user and logged, never returned.
func (c *Console) Handle(ctx context.Context, message *domain.Message) {
	log.Debug().Str("message", message.Text).Msg("received command")

	cmd := command.ParseCommand(message.Text)
	commandHandler, err := c.commandRegistry.Get(cmd)
	if err != nil {
		log.Debug().Str("command", cmd).Msg("no handler for command")
		_ = c.textSender.NotifyAndReturnError(ctx, fmt.Errorf("unknown command %q, try help", cmd), message)
		return
	}

	if err := commandHandler.Respond(ctx, c.timeout, message); err != nil {
		log.Err(err).Str("command", cmd).Msg("failed to respond to command")
	}
}
