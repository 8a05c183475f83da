package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"github.com/a-xp/fb-quiz-bot/internal/game"
)

var _ game.DefinitionsRepository = (*FileDefinitionsRepository)(nil)

// FileDefinitionsRepository загружает определения один раз при старте
// из каталога данных: channels.json плюс файлы игр game-*.json.
// После загрузки карты неизменяемы и читаются без синхронизации.
// Ошибка загрузки фатальна для процесса — сервер не должен стартовать
// с неполной конфигурацией.
type FileDefinitionsRepository struct {
	games    map[game.GameId]*game.Game
	channels map[game.ChannelId]*game.Channel
}

func NewFileDefinitionsRepository(dataDir string, logger *zap.Logger) (*FileDefinitionsRepository, error) {
	channels, err := loadChannels(dataDir)
	if err != nil {
		return nil, err
	}
	games, err := loadGames(dataDir)
	if err != nil {
		return nil, err
	}
	logger.Named("FileDefinitionsRepo").Info("Определения загружены",
		zap.Int("channels", len(channels)),
		zap.Int("games", len(games)),
		zap.String("dataDir", dataDir))
	return &FileDefinitionsRepository{games: games, channels: channels}, nil
}

func (r *FileDefinitionsRepository) GameByID(_ context.Context, gameID game.GameId) (*game.Game, error) {
	g, ok := r.games[gameID]
	if !ok {
		return nil, game.ErrNotFound
	}
	return g, nil
}

func (r *FileDefinitionsRepository) ChannelByID(_ context.Context, channelID game.ChannelId) (*game.Channel, error) {
	c, ok := r.channels[channelID]
	if !ok {
		return nil, game.ErrNotFound
	}
	return c, nil
}

func loadChannels(dataDir string) (map[game.ChannelId]*game.Channel, error) {
	path := filepath.Join(dataDir, "channels.json")
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("чтение %s: %w", path, err)
	}
	var list []game.Channel
	if err := json.Unmarshal(data, &list); err != nil {
		return nil, fmt.Errorf("разбор %s: %w", path, err)
	}
	channels := make(map[game.ChannelId]*game.Channel, len(list))
	for i := range list {
		c := &list[i]
		channels[c.ChannelID] = c
	}
	return channels, nil
}

func loadGames(dataDir string) (map[game.GameId]*game.Game, error) {
	entries, err := os.ReadDir(dataDir)
	if err != nil {
		return nil, fmt.Errorf("чтение каталога %s: %w", dataDir, err)
	}
	games := make(map[game.GameId]*game.Game)
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || !strings.HasPrefix(name, "game-") || !strings.HasSuffix(name, ".json") {
			continue
		}
		path := filepath.Join(dataDir, name)
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("чтение %s: %w", path, err)
		}
		g, err := game.ParseGame(data)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
		games[g.ID] = g
	}
	return games, nil
}
