// Package delivery отвечает за исходящую доставку ответов игрокам:
// клиент Graph API, синхронный отправитель и асинхронный диспетчер,
// сохраняющий порядок ответов в пределах одного игрока.
package delivery

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"go.uber.org/zap"
)

const defaultGraphAPIBaseURL = "https://graph.facebook.com/v12.0"

// MessengerClient отправляет текстовые сообщения через Send API
// (POST /me/messages) с page access token канала.
type MessengerClient struct {
	httpClient *http.Client
	baseURL    string
	logger     *zap.Logger
}

func NewMessengerClient(logger *zap.Logger) *MessengerClient {
	return &MessengerClient{
		httpClient: &http.Client{Timeout: 10 * time.Second},
		baseURL:    defaultGraphAPIBaseURL,
		logger:     logger.Named("MessengerClient"),
	}
}

// NewMessengerClientWithBaseURL нужен тестам и нестандартным окружениям.
func NewMessengerClientWithBaseURL(baseURL string, logger *zap.Logger) *MessengerClient {
	c := NewMessengerClient(logger)
	c.baseURL = baseURL
	return c
}

type sendMessageRequest struct {
	MessagingType string           `json:"messaging_type"`
	Recipient     messageRecipient `json:"recipient"`
	Message       messageContent   `json:"message"`
}

type messageRecipient struct {
	ID string `json:"id"`
}

type messageContent struct {
	Text string `json:"text"`
}

// SendText доставляет текст получателю. Ретраи и бэкофф — забота
// вызывающего: клиент делает ровно одну попытку.
func (c *MessengerClient) SendText(ctx context.Context, token, recipientID, text string) error {
	payload := sendMessageRequest{
		MessagingType: "RESPONSE",
		Recipient:     messageRecipient{ID: recipientID},
		Message:       messageContent{Text: text},
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("сериализация сообщения: %w", err)
	}

	endpoint := fmt.Sprintf("%s/me/messages?access_token=%s", c.baseURL, url.QueryEscape(token))
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("создание запроса: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("запрос к Send API: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusMultipleChoices {
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		c.logger.Error("Send API ответил ошибкой",
			zap.Int("status", resp.StatusCode),
			zap.String("recipientId", recipientID),
			zap.ByteString("body", detail))
		return fmt.Errorf("send api: статус %d", resp.StatusCode)
	}
	return nil
}
