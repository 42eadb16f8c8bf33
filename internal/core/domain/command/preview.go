package command

import (
	"bytes"
	"context"
	"fmt"
	"path/filepath"
	"photoedit/internal/core/domain"
	"photoedit/internal/core/port"
	"photoedit/internal/core/service"
	"strings"
	"time"
)

const defaultPreviewName = "preview.png"

// Preview writes the current preview frame to the file store so it can be inspected outside the terminal.
type Preview struct {
	editor     service.Editor
	codec      port.ImageCodec
	store      port.FileStore
	textSender port.TextSender
	command    string
}

func NewPreview(editor service.Editor, codec port.ImageCodec, store port.FileStore, textSender port.TextSender,
	command string) *Preview {
	return &Preview{editor: editor, codec: codec, store: store, textSender: textSender, command: command}
}

func (p *Preview) GetCommand() string {
	return p.command
}

func (p *Preview) Usage() string {
	return "preview [filename]: write the current preview frame (default " + defaultPreviewName + ")"
}

func (p *Preview) Respond(ctx context.Context, _ time.Duration, message *domain.Message) error {
	name := ParseCommandArgs(message.Text)
	if name == "" {
		name = defaultPreviewName
	}

	frame, err := p.editor.Frame()
	if err != nil {
		return p.textSender.NotifyAndReturnError(ctx, err, message)
	}

	format := strings.TrimPrefix(filepath.Ext(name), ".")

	var buf bytes.Buffer
	if err := p.codec.Encode(&buf, frame, format); err != nil {
		return p.textSender.NotifyAndReturnError(ctx, fmt.Errorf("failed to encode preview: %w", err), message)
	}

	written, err := p.store.Save(name, buf.Bytes())
	if err != nil {
		return p.textSender.NotifyAndReturnError(ctx, fmt.Errorf("failed to save preview: %w", err), message)
	}

	bounds := frame.Bounds()
	return p.textSender.SendMessageReply(ctx, message,
		fmt.Sprintf("preview %dx%d saved %s", bounds.Dx(), bounds.Dy(), written))
}
