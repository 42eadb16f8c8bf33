package sender

import (
	"context"
	"fmt"
	"io"
	"photoedit/internal/core/domain"
	"strings"
	"sync"

	"github.com/rs/zerolog/log"
)

// ConsoleSender writes replies to a terminal. Replies may arrive from export goroutines, so writes are serialized.
type ConsoleSender struct {
	mu  sync.Mutex
	out io.Writer
}

func NewConsoleSender(out io.Writer) *ConsoleSender {
	return &ConsoleSender{out: out}
}

func (s *ConsoleSender) SendMessageReply(ctx context.Context, message *domain.Message, text string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	var b strings.Builder
	for _, line := range strings.Split(strings.TrimRight(text, "\n"), "\n") {
		if message != nil && message.ID > 0 {
			fmt.Fprintf(&b, "[%d] ", message.ID)
		}
		b.WriteString(line)
		b.WriteByte('\n')
	}

	_, err := io.WriteString(s.out, b.String())
	return err
}

func (s *ConsoleSender) NotifyAndReturnError(ctx context.Context, err error, message *domain.Message) error {
	log.Debug().Err(err).Msg("reporting command error")

	sendErr := s.SendMessageReply(ctx, message, "error: "+err.Error())
	if sendErr != nil {
		log.Error().Err(sendErr).Msg("failed to send error reply")
		return sendErr
	}

	return err
}
