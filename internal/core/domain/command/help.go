package command

import (
	"context"
	"photoedit/internal/core/domain"
	"photoedit/internal/core/port"
	"strings"
	"time"
)

type usager interface {
	Usage() string
}

// Help lists every registered command, with its usage line where the command provides one.
type Help struct {
	registry   port.CommandRegistry
	textSender port.TextSender
	command    string
}

func NewHelp(registry port.CommandRegistry, textSender port.TextSender, command string) *Help {
	return &Help{registry: registry, textSender: textSender, command: command}
}

func (h *Help) GetCommand() string {
	return h.command
}

func (h *Help) Usage() string {
	return "help: list commands"
}

func (h *Help) Respond(ctx context.Context, _ time.Duration, message *domain.Message) error {
	var lines []string

	for _, name := range h.registry.ListCommands() {
		cmd, err := h.registry.Get(name)
		if err != nil {
			continue
		}

		if u, ok := cmd.(usager); ok {
			lines = append(lines, u.Usage())
			continue
		}
		lines = append(lines, name)
	}

	lines = append(lines, "quit: leave the session")

	return h.textSender.SendMessageReply(ctx, message, strings.Join(lines, "\n"))
}
