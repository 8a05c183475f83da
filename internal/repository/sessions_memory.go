package repository

import (
	"context"
	"fmt"
	"hash/fnv"
	"sync"

	"github.com/a-xp/fb-quiz-bot/internal/game"
)

const sessionShards = 32

// Compile-time check.
var _ game.SessionRepository = (*MemorySessionRepository)(nil)

// MemorySessionRepository — шардированное in-memory хранилище сессий.
// Шарды блокируются независимо, чтобы несвязанные игроки не сериализовались
// на одном глобальном мьютексе. Подходит для разработки и одиночного
// инстанса без требований к durability.
type MemorySessionRepository struct {
	shards [sessionShards]sessionShard
}

type sessionShard struct {
	mu       sync.RWMutex
	sessions map[string]*game.GameSession
}

func NewMemorySessionRepository() *MemorySessionRepository {
	r := &MemorySessionRepository{}
	for i := range r.shards {
		r.shards[i].sessions = make(map[string]*game.GameSession)
	}
	return r
}

func (r *MemorySessionRepository) GetByID(_ context.Context, gameID game.GameId, playerID game.PlayerId) (*game.GameSession, error) {
	key := sessionKey(gameID, playerID)
	shard := r.shardFor(key)
	shard.mu.RLock()
	defer shard.mu.RUnlock()
	session, ok := shard.sessions[key]
	if !ok {
		return nil, game.ErrNotFound
	}
	// Наружу уходит копия: хранимая сессия не должна мутироваться мимо Store.
	return session.Clone(), nil
}

func (r *MemorySessionRepository) Store(_ context.Context, session *game.GameSession) error {
	key := sessionKey(session.GameID, session.PlayerID)
	shard := r.shardFor(key)
	shard.mu.Lock()
	defer shard.mu.Unlock()
	shard.sessions[key] = session.Clone()
	return nil
}

func (r *MemorySessionRepository) shardFor(key string) *sessionShard {
	h := fnv.New32a()
	h.Write([]byte(key))
	return &r.shards[h.Sum32()%sessionShards]
}

func sessionKey(gameID game.GameId, playerID game.PlayerId) string {
	return fmt.Sprintf("%d:%s:%s", gameID, playerID.ChannelID, playerID.ID)
}
