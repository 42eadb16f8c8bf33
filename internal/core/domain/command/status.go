package command

import (
	"context"
	"fmt"
	"photoedit/internal/core/domain"
	"photoedit/internal/core/port"
	"photoedit/internal/core/service"
	"strings"
	"time"
)

type Status struct {
	editor     service.Editor
	textSender port.TextSender
	command    string
}

func NewStatus(editor service.Editor, textSender port.TextSender, command string) *Status {
	return &Status{editor: editor, textSender: textSender, command: command}
}

func (s *Status) GetCommand() string {
	return s.command
}

func (s *Status) Usage() string {
	return "status: show the loaded image and the current chain"
}

func (s *Status) Respond(ctx context.Context, _ time.Duration, message *domain.Message) error {
	var b strings.Builder

	fmt.Fprintf(&b, "state: %s\n", s.editor.State())

	if info, err := s.editor.Info(); err == nil {
		fmt.Fprintf(&b, "image: %s (%s %dx%d, preview %dx%d)\n",
			info.Name, info.Format, info.Width, info.Height, info.FittedWidth, info.FittedHeight)
	}

	for _, setting := range s.editor.Chain().Settings() {
		marker := ""
		if setting.Value != setting.Kind.Neutral() {
			marker = " *"
		}
		fmt.Fprintf(&b, "%-10s %s%s\n", setting.Kind, formatValue(setting.Value), marker)
	}

	return s.textSender.SendMessageReply(ctx, message, b.String())
}
