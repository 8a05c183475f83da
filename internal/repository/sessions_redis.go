package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/a-xp/fb-quiz-bot/internal/game"
)

var _ game.SessionRepository = (*RedisSessionRepository)(nil)

// RedisSessionRepository хранит сессии в Redis как JSON.
// Ключ: quiz:session:{gameId}:{channelId}:{playerId}. TTL не ставится —
// сессии не удаляются, терминальные состояния липкие.
type RedisSessionRepository struct {
	client *redis.Client
	logger *zap.Logger
}

func NewRedisSessionRepository(client *redis.Client, logger *zap.Logger) *RedisSessionRepository {
	return &RedisSessionRepository{
		client: client,
		logger: logger.Named("RedisSessionRepo"),
	}
}

func (r *RedisSessionRepository) GetByID(ctx context.Context, gameID game.GameId, playerID game.PlayerId) (*game.GameSession, error) {
	key := redisSessionKey(gameID, playerID)
	data, err := r.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, game.ErrNotFound
	}
	if err != nil {
		r.logger.Error("Не удалось прочитать сессию из Redis", zap.String("key", key), zap.Error(err))
		return nil, fmt.Errorf("чтение сессии %s: %w", key, err)
	}
	var session game.GameSession
	if err := json.Unmarshal(data, &session); err != nil {
		r.logger.Error("Сессия в Redis повреждена", zap.String("key", key), zap.Error(err))
		return nil, fmt.Errorf("разбор сессии %s: %w", key, err)
	}
	return &session, nil
}

func (r *RedisSessionRepository) Store(ctx context.Context, session *game.GameSession) error {
	key := redisSessionKey(session.GameID, session.PlayerID)
	data, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("сериализация сессии %s: %w", key, err)
	}
	if err := r.client.Set(ctx, key, data, 0).Err(); err != nil {
		r.logger.Error("Не удалось сохранить сессию в Redis", zap.String("key", key), zap.Error(err))
		return fmt.Errorf("сохранение сессии %s: %w", key, err)
	}
	return nil
}

func redisSessionKey(gameID game.GameId, playerID game.PlayerId) string {
	return fmt.Sprintf("quiz:session:%d:%s:%s", gameID, playerID.ChannelID, playerID.ID)
}
