package messaging

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	amqp "github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"

	"github.com/a-xp/fb-quiz-bot/internal/game"
)

var _ game.ResponseSender = (*ResponsePublisher)(nil)

// ResponsePublisher — ResponseSender, публикующий отрендеренные ответы
// в долговечную очередь вместо прямой отправки.
type ResponsePublisher struct {
	channel   *amqp.Channel
	queueName string
	logger    *zap.Logger
}

func NewResponsePublisher(channel *amqp.Channel, queueName string, logger *zap.Logger) (*ResponsePublisher, error) {
	// Очередь объявляют и издатель, и потребитель — кто первый поднялся.
	_, err := channel.QueueDeclare(queueName, true, false, false, false, nil)
	if err != nil {
		return nil, fmt.Errorf("объявление очереди %s: %w", queueName, err)
	}
	return &ResponsePublisher{
		channel:   channel,
		queueName: queueName,
		logger:    logger.Named("ResponsePublisher"),
	}, nil
}

func (p *ResponsePublisher) Respond(ctx context.Context, response game.Response) error {
	payload := OutboundResponse{
		MessageID:   uuid.NewString(),
		ChannelID:   response.Channel.ChannelID,
		RecipientID: response.To.ID,
		Token:       response.Channel.Token,
		Text:        response.Formatter.Format(response.Message),
		Tag:         string(response.Message.Tag),
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("сериализация исходящего ответа: %w", err)
	}

	err = p.channel.PublishWithContext(ctx, "", p.queueName, false, false, amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		MessageId:    payload.MessageID,
		Body:         body,
	})
	if err != nil {
		return fmt.Errorf("публикация ответа в %s: %w", p.queueName, err)
	}
	p.logger.Debug("Ответ поставлен в очередь доставки",
		zap.String("messageId", payload.MessageID),
		zap.String("recipientId", payload.RecipientID),
		zap.String("tag", payload.Tag))
	return nil
}
