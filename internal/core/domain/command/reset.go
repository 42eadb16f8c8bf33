package command

import (
	"context"
	"photoedit/internal/core/domain"
	"photoedit/internal/core/port"
	"photoedit/internal/core/service"
	"time"
)

type Reset struct {
	editor     service.Editor
	textSender port.TextSender
	command    string
}

func NewReset(editor service.Editor, textSender port.TextSender, command string) *Reset {
	return &Reset{editor: editor, textSender: textSender, command: command}
}

func (r *Reset) GetCommand() string {
	return r.command
}

func (r *Reset) Usage() string {
	return "reset: return every adjustment to neutral"
}

func (r *Reset) Respond(ctx context.Context, _ time.Duration, message *domain.Message) error {
	if err := r.editor.Reset(); err != nil {
		return r.textSender.NotifyAndReturnError(ctx, err, message)
	}

	return r.textSender.SendMessageReply(ctx, message, "all adjustments reset")
}
