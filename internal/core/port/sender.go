package port

import (
	"context"
	"photoedit/internal/core/domain"
)

type TextSender interface {
	// SendMessageReply writes text as a reply to the given message.
	SendMessageReply(ctx context.Context, message *domain.Message, text string) error
	// NotifyAndReturnError reports err as a reply to the message and returns it.
	NotifyAndReturnError(ctx context.Context, err error, message *domain.Message) error
}
