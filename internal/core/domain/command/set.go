package command

import (
	"context"
	"errors"
	"fmt"
	"photoedit/internal/core/domain"
	"photoedit/internal/core/port"
	"photoedit/internal/core/service"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
)

type Set struct {
	editor     service.Editor
	textSender port.TextSender
	command    string
}

func NewSet(editor service.Editor, textSender port.TextSender, command string) *Set {
	return &Set{editor: editor, textSender: textSender, command: command}
}

func (s *Set) GetCommand() string {
	return s.command
}

func (s *Set) Usage() string {
	return "set <kind> <value>: change one adjustment (brightness, contrast, saturation, exposure, hue, vibrancy)"
}

func (s *Set) Respond(ctx context.Context, _ time.Duration, message *domain.Message) error {
	fields := strings.Fields(ParseCommandArgs(message.Text))
	if len(fields) != 2 {
		_ = s.textSender.NotifyAndReturnError(ctx, errors.New("usage: set <kind> <value>"), message)
		return nil
	}

	kind, err := domain.ParseKind(fields[0])
	if err != nil {
		_ = s.textSender.NotifyAndReturnError(ctx, err, message)
		return nil
	}

	value, err := strconv.ParseFloat(fields[1], 64)
	if err != nil {
		_ = s.textSender.NotifyAndReturnError(ctx, fmt.Errorf("invalid value for %s: %q", kind, fields[1]), message)
		return nil
	}

	if err := s.editor.Update(kind, value); err != nil {
		return s.textSender.NotifyAndReturnError(ctx, err, message)
	}

	applied := s.editor.Chain().Value(kind)

	log.Debug().
		Str("kind", kind.String()).
		Float64("requested", value).
		Float64("applied", applied).
		Msg("adjustment updated")

	return s.textSender.SendMessageReply(ctx, message, fmt.Sprintf("%s = %s", kind, formatValue(applied)))
}

func formatValue(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
