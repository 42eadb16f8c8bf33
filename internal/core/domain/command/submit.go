package command

import (
	"context"
	"errors"
	"fmt"
	"photoedit/internal/core/domain"
	"photoedit/internal/core/port"
	"photoedit/internal/core/service"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
)

// Submit starts an export and returns immediately. The outcome is reported as a later reply to the same message.
type Submit struct {
	editor     service.Editor
	textSender port.TextSender
	command    string
	pending    sync.WaitGroup
}

func NewSubmit(editor service.Editor, textSender port.TextSender, command string) *Submit {
	return &Submit{editor: editor, textSender: textSender, command: command}
}

func (s *Submit) GetCommand() string {
	return s.command
}

func (s *Submit) Usage() string {
	return "submit: render the current chain at full resolution on the render service"
}

func (s *Submit) Respond(ctx context.Context, _ time.Duration, message *domain.Message) error {
	logger := log.With().
		Int("messageId", message.ID).
		Str("command", s.GetCommand()).
		Logger()

	done, err := s.editor.Submit(ctx)
	if err != nil {
		return s.textSender.NotifyAndReturnError(ctx, err, message)
	}

	if err := s.textSender.SendMessageReply(ctx, message, "export submitted"); err != nil {
		logger.Warn().Err(err).Msg("failed to acknowledge export")
	}

	s.pending.Add(1)
	go func() {
		defer s.pending.Done()

		err := <-done

		var rsErr *domain.RenderServiceError
		switch {
		case err == nil:
			logger.Info().Msg("export finished")
			_ = s.textSender.SendMessageReply(ctx, message, "export ready, use download to save it")
		case errors.Is(err, domain.ErrSuperseded):
			logger.Debug().Msg("export superseded")
			_ = s.textSender.SendMessageReply(ctx, message, "export superseded by a newer submit")
		case errors.As(err, &rsErr):
			logger.Warn().Err(err).Int("status", rsErr.Status).Msg("export failed")
			_ = s.textSender.NotifyAndReturnError(ctx, fmt.Errorf("export failed: %w", err), message)
		default:
			logger.Error().Err(err).Msg("export failed")
			_ = s.textSender.NotifyAndReturnError(ctx, fmt.Errorf("export failed: %w", err), message)
		}
	}()

	return nil
}

// Wait blocks until every submitted export has finished and its outcome has been reported.
func (s *Submit) Wait() {
	s.pending.Wait()
}
