// Package mocks содержит testify-моки портов движка для юнит-тестов.
package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/a-xp/fb-quiz-bot/internal/game"
)

type SessionRepository struct {
	mock.Mock
}

func (m *SessionRepository) GetByID(ctx context.Context, gameID game.GameId, playerID game.PlayerId) (*game.GameSession, error) {
	args := m.Called(ctx, gameID, playerID)
	if s, ok := args.Get(0).(*game.GameSession); ok {
		return s, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *SessionRepository) Store(ctx context.Context, session *game.GameSession) error {
	args := m.Called(ctx, session)
	return args.Error(0)
}

type DefinitionsRepository struct {
	mock.Mock
}

func (m *DefinitionsRepository) GameByID(ctx context.Context, gameID game.GameId) (*game.Game, error) {
	args := m.Called(ctx, gameID)
	if g, ok := args.Get(0).(*game.Game); ok {
		return g, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *DefinitionsRepository) ChannelByID(ctx context.Context, channelID game.ChannelId) (*game.Channel, error) {
	args := m.Called(ctx, channelID)
	if c, ok := args.Get(0).(*game.Channel); ok {
		return c, args.Error(1)
	}
	return nil, args.Error(1)
}

type ResponseSender struct {
	mock.Mock
}

func (m *ResponseSender) Respond(ctx context.Context, response game.Response) error {
	args := m.Called(ctx, response)
	return args.Error(0)
}
