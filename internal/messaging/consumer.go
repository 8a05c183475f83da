package messaging

import (
	"context"
	"encoding/json"
	"fmt"

	amqp "github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"

	"github.com/a-xp/fb-quiz-bot/internal/delivery"
)

// DeliveryConsumer разбирает очередь исходящих ответов и отправляет их
// в Send API. Потребитель один и prefetch равен 1, чтобы сохранить порядок
// доставки; ошибка отправки логируется, сообщение подтверждается —
// сетевые ретраи вне зоны ответственности движка.
type DeliveryConsumer struct {
	channel   *amqp.Channel
	queueName string
	client    *delivery.MessengerClient
	logger    *zap.Logger
}

func NewDeliveryConsumer(channel *amqp.Channel, queueName string, client *delivery.MessengerClient, logger *zap.Logger) (*DeliveryConsumer, error) {
	if _, err := channel.QueueDeclare(queueName, true, false, false, false, nil); err != nil {
		return nil, fmt.Errorf("объявление очереди %s: %w", queueName, err)
	}
	if err := channel.Qos(1, 0, false); err != nil {
		return nil, fmt.Errorf("установка prefetch: %w", err)
	}
	return &DeliveryConsumer{
		channel:   channel,
		queueName: queueName,
		client:    client,
		logger:    logger.Named("DeliveryConsumer"),
	}, nil
}

// Run блокируется до отмены контекста или закрытия канала.
func (c *DeliveryConsumer) Run(ctx context.Context) error {
	deliveries, err := c.channel.Consume(c.queueName, "", false, false, false, false, nil)
	if err != nil {
		return fmt.Errorf("подписка на %s: %w", c.queueName, err)
	}
	c.logger.Info("Воркер доставки запущен", zap.String("queue", c.queueName))

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case d, ok := <-deliveries:
			if !ok {
				return fmt.Errorf("канал очереди %s закрыт", c.queueName)
			}
			c.handle(ctx, d)
		}
	}
}

func (c *DeliveryConsumer) handle(ctx context.Context, d amqp.Delivery) {
	var payload OutboundResponse
	if err := json.Unmarshal(d.Body, &payload); err != nil {
		c.logger.Error("Нечитаемое сообщение в очереди доставки, отбрасываем", zap.Error(err))
		_ = d.Nack(false, false)
		return
	}

	if err := c.client.SendText(ctx, payload.Token, payload.RecipientID, payload.Text); err != nil {
		// Подтверждаем даже при ошибке: зависший ответ викторины не стоит
		// повторной доставки с нарушением порядка.
		c.logger.Error("Доставка ответа не удалась",
			zap.String("messageId", payload.MessageID),
			zap.String("recipientId", payload.RecipientID),
			zap.Error(err))
	}
	_ = d.Ack(false)
}
