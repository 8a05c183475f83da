// Package messaging — асинхронная доставка ответов через RabbitMQ:
// обработчик сообщений публикует готовый текст в очередь, а воркер доставки
// разбирает ее и отправляет в Send API. Одна очередь с одним потребителем
// сохраняет глобальный (а значит, и по-игроковый) порядок ответов.
package messaging

// OutboundResponse — полезная нагрузка очереди исходящих ответов.
// Текст уже отрендерен шаблонами игры: потребителю определения не нужны.
type OutboundResponse struct {
	MessageID   string `json:"message_id"`
	ChannelID   string `json:"channel_id"`
	RecipientID string `json:"recipient_id"`
	Token       string `json:"token"`
	Text        string `json:"text"`
	Tag         string `json:"tag"`
}
