package command

import (
	"context"
	"errors"
	"fmt"
	"path"
	"photoedit/internal/core/domain"
	"photoedit/internal/core/port"
	"photoedit/internal/core/service"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
)

type Load struct {
	editor     service.Editor
	source     port.ImageSource
	textSender port.TextSender
	command    string
}

func NewLoad(editor service.Editor, source port.ImageSource, textSender port.TextSender, command string) *Load {
	return &Load{editor: editor, source: source, textSender: textSender, command: command}
}

func (l *Load) GetCommand() string {
	return l.command
}

func (l *Load) Usage() string {
	return "load <path|url>: open an image and start a new chain"
}

func (l *Load) Respond(ctx context.Context, timeout time.Duration, message *domain.Message) error {
	logger := log.With().
		Int("messageId", message.ID).
		Str("command", l.GetCommand()).
		Logger()

	location := ParseCommandArgs(message.Text)
	if location == "" {
		_ = l.textSender.NotifyAndReturnError(ctx, errors.New("usage: load <path|url>"), message)
		return nil
	}

	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	data, err := l.source.Fetch(ctx, location)
	if err != nil {
		return l.textSender.NotifyAndReturnError(ctx, fmt.Errorf("failed to read image: %w", err), message)
	}

	if err := l.editor.Load(ctx, imageName(location), data); err != nil {
		return l.textSender.NotifyAndReturnError(ctx, fmt.Errorf("failed to load image: %w", err), message)
	}

	info, err := l.editor.Info()
	if err != nil {
		return l.textSender.NotifyAndReturnError(ctx, err, message)
	}

	logger.Info().Str("name", info.Name).Int("width", info.Width).Int("height", info.Height).Msg("image loaded")

	return l.textSender.SendMessageReply(ctx, message, fmt.Sprintf("loaded %s (%s %dx%d, preview %dx%d)",
		info.Name, info.Format, info.Width, info.Height, info.FittedWidth, info.FittedHeight))
}

// imageName derives a file name from a path or URL, dropping any query string.
func imageName(location string) string {
	if idx := strings.IndexAny(location, "?#"); idx >= 0 && strings.Contains(location, "://") {
		location = location[:idx]
	}

	location = strings.ReplaceAll(location, "\\", "/")
	name := path.Base(location)
	if name == "." || name == "/" {
		return "image"
	}

	return name
}
