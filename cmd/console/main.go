// Консольный клиент викторины: тот же конвейер обработки, что и на сервере,
// но сообщения читаются со stdin, а ответы печатаются в stdout. Удобен для
// отладки файлов игр без вебхука и Send API.
package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"log"
	"os"

	"go.uber.org/zap"

	"github.com/a-xp/fb-quiz-bot/internal/bot"
	"github.com/a-xp/fb-quiz-bot/internal/game"
	"github.com/a-xp/fb-quiz-bot/internal/logger"
	"github.com/a-xp/fb-quiz-bot/internal/repository"
)

var _ game.ResponseSender = (*stdoutSender)(nil)

// stdoutSender печатает отрендеренный ответ в терминал.
type stdoutSender struct{}

func (stdoutSender) Respond(_ context.Context, response game.Response) error {
	fmt.Printf("bot> %s\n", response.Formatter.Format(response.Message))
	return nil
}

func main() {
	dataDir := flag.String("data", "./deploy/data", "каталог с channels.json и файлами игр")
	channelID := flag.String("channel", "1", "идентификатор канала из channels.json")
	logLevel := flag.String("log-level", "warn", "уровень логирования")
	flag.Parse()

	zl, err := logger.New(logger.Config{Level: *logLevel, Encoding: "console"})
	if err != nil {
		log.Fatalf("Ошибка инициализации логгера: %v", err)
	}
	defer zl.Sync()

	definitions, err := repository.NewFileDefinitionsRepository(*dataDir, zl)
	if err != nil {
		zl.Fatal("Не удалось загрузить определения", zap.Error(err))
	}

	processor := bot.NewProcessor(definitions, repository.NewMemorySessionRepository(), stdoutSender{}, zl)

	ctx := context.Background()
	player := game.PlayerId{ChannelID: game.ChannelId(*channelID), ID: "console"}

	fmt.Println("Пишите сообщения боту; :q для выхода.")
	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Print("you> ")
		if !scanner.Scan() {
			break
		}
		line := scanner.Text()
		if line == ":q" {
			break
		}
		err := processor.ProcessMessage(ctx, game.PlayerMessage{
			PlayerID: player,
			Text:     line,
		})
		if err != nil {
			zl.Error("Ошибка обработки сообщения", zap.Error(err))
		}
	}
	if err := scanner.Err(); err != nil {
		zl.Error("Ошибка чтения stdin", zap.Error(err))
	}
}
