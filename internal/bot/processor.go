// Package bot связывает движок с внешними коллабораторами: маршрутизация
// входящих сообщений, сериализация по ключу сессии, загрузка и сохранение
// состояния, упорядоченная отправка ответов.
package bot

import (
	"context"
	"errors"
	"fmt"
	"hash/fnv"
	"sync"

	"go.uber.org/zap"

	"github.com/a-xp/fb-quiz-bot/internal/game"
)

// Количество шардов блокировок. Блокировка нужна только на ключ
// (игра, игрок) — несвязанные игроки не должны ждать друг друга.
const lockShards = 64

// Processor обрабатывает входящие сообщения: одна вызванная обработка —
// ровно один шаг автомата и ровно одно сохранение сессии.
type Processor struct {
	engine      game.Engine
	definitions game.DefinitionsRepository
	sessions    game.SessionRepository
	responder   game.ResponseSender
	locks       [lockShards]sync.Mutex
	logger      *zap.Logger
}

func NewProcessor(
	definitions game.DefinitionsRepository,
	sessions game.SessionRepository,
	responder game.ResponseSender,
	logger *zap.Logger,
) *Processor {
	return &Processor{
		definitions: definitions,
		sessions:    sessions,
		responder:   responder,
		logger:      logger.Named("Processor"),
	}
}

// ProcessMessage обрабатывает одно входящее сообщение игрока.
// Промахи маршрутизации (неизвестный канал, канал без игры, неизвестная игра)
// молча отбрасываются с debug-логом: отвечать некуда. Ошибки хранилища и
// доставки возвращаются вызывающему как есть.
func (p *Processor) ProcessMessage(ctx context.Context, message game.PlayerMessage) error {
	channel, err := p.definitions.ChannelByID(ctx, message.PlayerID.ChannelID)
	if errors.Is(err, game.ErrNotFound) {
		p.logger.Debug("Сообщение проигнорировано: канал не сконфигурирован",
			zap.String("channelId", message.PlayerID.ChannelID))
		return nil
	}
	if err != nil {
		return fmt.Errorf("поиск канала %s: %w", message.PlayerID.ChannelID, err)
	}
	if channel.GameID == nil {
		p.logger.Debug("Сообщение проигнорировано: для канала не настроена игра",
			zap.String("channelId", channel.ChannelID))
		return nil
	}

	g, err := p.definitions.GameByID(ctx, *channel.GameID)
	if errors.Is(err, game.ErrNotFound) {
		p.logger.Debug("Сообщение проигнорировано: игра не найдена",
			zap.Uint32("gameId", uint32(*channel.GameID)),
			zap.String("channelId", channel.ChannelID))
		return nil
	}
	if err != nil {
		return fmt.Errorf("поиск игры %d: %w", *channel.GameID, err)
	}

	// Шаг load-decide-store не атомарен: конкурентные сообщения одного игрока
	// обязаны выстраиваться в очередь, иначе теряются обновления.
	mu := p.lockFor(g.ID, message.PlayerID)
	mu.Lock()
	defer mu.Unlock()

	session, err := p.sessions.GetByID(ctx, g.ID, message.PlayerID)
	if errors.Is(err, game.ErrNotFound) {
		session = game.NewGameSession(message.PlayerID, g.ID)
	} else if err != nil {
		return fmt.Errorf("загрузка сессии: %w", err)
	}

	events := p.engine.Step(g, session, game.Normalize(message.Text))

	if err := p.sessions.Store(ctx, session); err != nil {
		return fmt.Errorf("сохранение сессии: %w", err)
	}

	for _, event := range events {
		err := p.responder.Respond(ctx, game.Response{
			To:        message.PlayerID,
			Channel:   channel,
			Message:   event,
			Formatter: g,
		})
		if err != nil {
			return fmt.Errorf("отправка ответа %s: %w", event.Tag, err)
		}
	}
	return nil
}

func (p *Processor) lockFor(gameID game.GameId, playerID game.PlayerId) *sync.Mutex {
	h := fnv.New32a()
	fmt.Fprintf(h, "%d:%s:%s", gameID, playerID.ChannelID, playerID.ID)
	return &p.locks[h.Sum32()%lockShards]
}
