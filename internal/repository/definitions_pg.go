package repository

import (
	"context"
	"fmt"

	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"github.com/a-xp/fb-quiz-bot/internal/game"
)

const (
	listChannelsQuery = `SELECT name, channel_id, token, game_id FROM channels`
	listGamesQuery    = `SELECT id, definition FROM games ORDER BY id`
)

var _ game.DefinitionsRepository = (*PgDefinitionsRepository)(nil)

type channelRow struct {
	Name      string  `db:"name"`
	ChannelID string  `db:"channel_id"`
	Token     string  `db:"token"`
	GameID    *uint32 `db:"game_id"`
}

type gameRow struct {
	ID         uint32 `db:"id"`
	Definition []byte `db:"definition"`
}

// PgDefinitionsRepository читает определения из PostgreSQL (документы игр
// лежат в jsonb). Как и файловый вариант, грузит все один раз при старте:
// сессии привязаны к индексам внутри Game и не должны увидеть другую ревизию
// определения в течение жизни процесса.
type PgDefinitionsRepository struct {
	games    map[game.GameId]*game.Game
	channels map[game.ChannelId]*game.Channel
}

func NewPgDefinitionsRepository(ctx context.Context, db *pgxpool.Pool, logger *zap.Logger) (*PgDefinitionsRepository, error) {
	log := logger.Named("PgDefinitionsRepo")

	var chRows []channelRow
	if err := pgxscan.Select(ctx, db, &chRows, listChannelsQuery); err != nil {
		return nil, fmt.Errorf("загрузка каналов: %w", err)
	}
	channels := make(map[game.ChannelId]*game.Channel, len(chRows))
	for _, row := range chRows {
		c := &game.Channel{Name: row.Name, ChannelID: row.ChannelID, Token: row.Token}
		if row.GameID != nil {
			id := game.GameId(*row.GameID)
			c.GameID = &id
		}
		channels[c.ChannelID] = c
	}

	var gRows []gameRow
	if err := pgxscan.Select(ctx, db, &gRows, listGamesQuery); err != nil {
		return nil, fmt.Errorf("загрузка игр: %w", err)
	}
	games := make(map[game.GameId]*game.Game, len(gRows))
	for _, row := range gRows {
		g, err := game.ParseGame(row.Definition)
		if err != nil {
			return nil, fmt.Errorf("игра id=%d: %w", row.ID, err)
		}
		if uint32(g.ID) != row.ID {
			return nil, fmt.Errorf("игра id=%d: id в документе (%d) не совпадает с ключом строки", row.ID, g.ID)
		}
		games[g.ID] = g
	}

	log.Info("Определения загружены из PostgreSQL",
		zap.Int("channels", len(channels)),
		zap.Int("games", len(games)))
	return &PgDefinitionsRepository{games: games, channels: channels}, nil
}

func (r *PgDefinitionsRepository) GameByID(_ context.Context, gameID game.GameId) (*game.Game, error) {
	g, ok := r.games[gameID]
	if !ok {
		return nil, game.ErrNotFound
	}
	return g, nil
}

func (r *PgDefinitionsRepository) ChannelByID(_ context.Context, channelID game.ChannelId) (*game.Channel, error) {
	c, ok := r.channels[channelID]
	if !ok {
		return nil, game.ErrNotFound
	}
	return c, nil
}
