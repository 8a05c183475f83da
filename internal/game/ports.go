package game

import (
	"context"
	"errors"
)

// ErrNotFound возвращается репозиториями, когда сущность отсутствует.
var ErrNotFound = errors.New("not found")

// SessionRepository хранит сессии по ключу (игра, игрок).
// Удаление не требуется: терминальные состояния — липкие, сессии не чистятся.
type SessionRepository interface {
	GetByID(ctx context.Context, gameID GameId, playerID PlayerId) (*GameSession, error)
	Store(ctx context.Context, session *GameSession) error
}

// DefinitionsRepository отдает неизменяемые определения игр и каналов.
// Реализации загружают данные один раз и должны выдерживать
// конкурентное чтение без синхронизации.
type DefinitionsRepository interface {
	GameByID(ctx context.Context, gameID GameId) (*Game, error)
	ChannelByID(ctx context.Context, channelID ChannelId) (*Channel, error)
}

// ResponseSender доставляет ответ игроку. Порядок вызовов для одного игрока
// обязан сохраняться при доставке, даже если она асинхронная.
type ResponseSender interface {
	Respond(ctx context.Context, response Response) error
}

// Formatter превращает событие в готовый к отправке текст.
type Formatter interface {
	Format(message ResponseMessage) string
}
