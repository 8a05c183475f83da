package repository

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/a-xp/fb-quiz-bot/internal/game"
)

func testDataDir() string {
	return filepath.Join("testdata", "games")
}

func TestFileDefinitionsRepositoryLoadsGamesAndChannels(t *testing.T) {
	repo, err := NewFileDefinitionsRepository(testDataDir(), zap.NewNop())
	require.NoError(t, err)
	ctx := context.Background()

	g, err := repo.GameByID(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, "#TEST_GAME", g.Name)
	assert.Equal(t, []string{"topic1", "topic2"}, g.TopicKeys())

	c, err := repo.ChannelByID(ctx, "#id1")
	require.NoError(t, err)
	assert.Equal(t, "test channel", c.Name)
	require.NotNil(t, c.GameID)
	assert.Equal(t, game.GameId(1), *c.GameID)

	// Канал без игры загружается, но game_id остается пустым.
	idle, err := repo.ChannelByID(ctx, "#id2")
	require.NoError(t, err)
	assert.Nil(t, idle.GameID)
}

func TestFileDefinitionsRepositoryMisses(t *testing.T) {
	repo, err := NewFileDefinitionsRepository(testDataDir(), zap.NewNop())
	require.NoError(t, err)
	ctx := context.Background()

	_, err = repo.GameByID(ctx, 99)
	assert.ErrorIs(t, err, game.ErrNotFound)

	_, err = repo.ChannelByID(ctx, "#unknown")
	assert.ErrorIs(t, err, game.ErrNotFound)
}

func TestFileDefinitionsRepositoryFailsOnMissingDir(t *testing.T) {
	_, err := NewFileDefinitionsRepository(filepath.Join("testdata", "nope"), zap.NewNop())
	assert.Error(t, err)
}
