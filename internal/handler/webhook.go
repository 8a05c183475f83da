package handler

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/a-xp/fb-quiz-bot/internal/game"
)

// MessageProcessor — вход движка с точки зрения транспорта.
type MessageProcessor interface {
	ProcessMessage(ctx context.Context, message game.PlayerMessage) error
}

// WebhookHandler принимает вебхуки Messenger/Instagram: подтверждение
// подписки (GET) и пуши событий (POST). Подпись платформы не проверяется —
// как и в исходном боте, достаточно verify-token рукопожатия.
type WebhookHandler struct {
	processor   MessageProcessor
	verifyToken string
	sync        bool
	logger      *zap.Logger
}

// NewWebhookHandler создает обработчик. При sync=true сообщения
// обрабатываются до ответа платформе (удобно в тестах), иначе — в фоне,
// а вебхук подтверждается сразу.
func NewWebhookHandler(processor MessageProcessor, verifyToken string, sync bool, logger *zap.Logger) *WebhookHandler {
	return &WebhookHandler{
		processor:   processor,
		verifyToken: verifyToken,
		sync:        sync,
		logger:      logger.Named("WebhookHandler"),
	}
}

// Verify отвечает на подтверждение подписки: платформа присылает
// hub.mode=subscribe с нашим verify-token и ждет hub.challenge в теле.
func (h *WebhookHandler) Verify(c *gin.Context) {
	mode := c.Query("hub.mode")
	token := c.Query("hub.verify_token")
	if mode == "subscribe" && token == h.verifyToken {
		c.String(http.StatusOK, c.Query("hub.challenge"))
		return
	}
	h.logger.Warn("Отклонено подтверждение подписки", zap.String("mode", mode))
	c.Status(http.StatusForbidden)
}

// Events принимает пуш событий. Платформе всегда отвечаем 200:
// повторная доставка того же батча нам не нужна.
func (h *WebhookHandler) Events(c *gin.Context) {
	var event webhookEvent
	if err := json.NewDecoder(c.Request.Body).Decode(&event); err != nil {
		h.logger.Warn("Не удалось разобрать тело вебхука", zap.Error(err))
		c.Status(http.StatusOK)
		return
	}

	messages := extractMessages(&event)
	if len(messages) == 0 {
		c.Status(http.StatusOK)
		return
	}

	if h.sync {
		h.process(c.Request.Context(), messages)
	} else {
		// Контекст запроса умирает вместе с ответом платформе —
		// фоновая обработка живет на собственном контексте.
		go h.process(context.Background(), messages)
	}
	c.Status(http.StatusOK)
}

func (h *WebhookHandler) process(ctx context.Context, messages []game.PlayerMessage) {
	// Ошибка одного сообщения не должна блокировать остальные.
	for _, m := range messages {
		if err := h.processor.ProcessMessage(ctx, m); err != nil {
			h.logger.Error("Ошибка обработки сообщения",
				zap.String("channelId", m.PlayerID.ChannelID),
				zap.String("playerId", m.PlayerID.ID),
				zap.Error(err))
		}
	}
}

// Формат пуша Messenger Platform (object=page) и Instagram (object=instagram).
type webhookEvent struct {
	Object string         `json:"object"`
	Entry  []webhookEntry `json:"entry"`
}

type webhookEntry struct {
	Messaging []messagingItem `json:"messaging"`
}

type messagingItem struct {
	Sender    participant      `json:"sender"`
	Recipient participant      `json:"recipient"`
	Message   *incomingMessage `json:"message"`
}

type participant struct {
	ID string `json:"id"`
}

type incomingMessage struct {
	Text   string `json:"text"`
	IsEcho *bool  `json:"is_echo"`
}

// extractMessages выбирает текстовые сообщения из пуша. Эхо собственных
// ответов бота (is_echo) и события без текста пропускаются.
func extractMessages(event *webhookEvent) []game.PlayerMessage {
	if event.Object != "page" && event.Object != "instagram" {
		return nil
	}
	var result []game.PlayerMessage
	for _, entry := range event.Entry {
		for _, item := range entry.Messaging {
			if item.Message == nil || item.Message.IsEcho != nil || item.Message.Text == "" {
				continue
			}
			if item.Sender.ID == "" || item.Recipient.ID == "" {
				continue
			}
			result = append(result, game.PlayerMessage{
				PlayerID: game.PlayerId{
					// Канал — это страница-получатель, игрок — отправитель.
					ChannelID: item.Recipient.ID,
					ID:        item.Sender.ID,
				},
				Text: item.Message.Text,
			})
		}
	}
	return result
}
