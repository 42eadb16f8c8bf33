package command

import (
	"context"
	"fmt"
	"photoedit/internal/core/domain"
	"photoedit/internal/core/port"
	"photoedit/internal/core/service"
	"time"
)

type Download struct {
	editor          service.Editor
	textSender      port.TextSender
	defaultFilename string
	command         string
}

func NewDownload(editor service.Editor, textSender port.TextSender, defaultFilename, command string) *Download {
	return &Download{editor: editor, textSender: textSender, defaultFilename: defaultFilename, command: command}
}

func (d *Download) GetCommand() string {
	return d.command
}

func (d *Download) Usage() string {
	return fmt.Sprintf("download [filename]: save the last export (default %s)", d.defaultFilename)
}

func (d *Download) Respond(ctx context.Context, _ time.Duration, message *domain.Message) error {
	filename := ParseCommandArgs(message.Text)
	if filename == "" {
		filename = d.defaultFilename
	}

	written, err := d.editor.Download(filename)
	if err != nil {
		return d.textSender.NotifyAndReturnError(ctx, fmt.Errorf("download failed: %w", err), message)
	}

	return d.textSender.SendMessageReply(ctx, message, "saved "+written)
}
