package delivery

import (
	"context"

	"go.uber.org/zap"

	"github.com/a-xp/fb-quiz-bot/internal/game"
)

var _ game.ResponseSender = (*DirectSender)(nil)

// DirectSender рендерит событие и синхронно отправляет его в Send API.
// Вызывающий блокируется до завершения доставки.
type DirectSender struct {
	client *MessengerClient
	logger *zap.Logger
}

func NewDirectSender(client *MessengerClient, logger *zap.Logger) *DirectSender {
	return &DirectSender{client: client, logger: logger.Named("DirectSender")}
}

func (s *DirectSender) Respond(ctx context.Context, response game.Response) error {
	text := response.Formatter.Format(response.Message)
	return s.client.SendText(ctx, response.Channel.Token, response.To.ID, text)
}
