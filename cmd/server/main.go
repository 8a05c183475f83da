package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/a-xp/fb-quiz-bot/internal/bot"
	"github.com/a-xp/fb-quiz-bot/internal/config"
	"github.com/a-xp/fb-quiz-bot/internal/delivery"
	"github.com/a-xp/fb-quiz-bot/internal/game"
	"github.com/a-xp/fb-quiz-bot/internal/handler"
	"github.com/a-xp/fb-quiz-bot/internal/logger"
	"github.com/a-xp/fb-quiz-bot/internal/messaging"
	"github.com/a-xp/fb-quiz-bot/internal/repository"
)

func main() {
	// --- Загрузка переменных окружения ---
	if err := godotenv.Load(); err != nil {
		// В production .env может отсутствовать
		fmt.Printf("Warning: could not load .env file: %v\n", err)
	}

	// --- Загрузка конфигурации ---
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Ошибка загрузки конфигурации: %v", err)
	}

	// --- Инициализация логгера ---
	zl, err := logger.New(logger.Config{Level: cfg.LogLevel})
	if err != nil {
		log.Fatalf("Ошибка инициализации логгера: %v", err)
	}
	defer zl.Sync()
	zl.Info("Логгер инициализирован", zap.String("logLevel", cfg.LogLevel))

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// --- Репозиторий определений ---
	var definitions game.DefinitionsRepository
	var pool *pgxpool.Pool
	if cfg.UsePostgresDefinitions() {
		pool, err = pgxpool.New(ctx, cfg.GetDSN())
		if err != nil {
			zl.Fatal("Не удалось подключиться к PostgreSQL", zap.Error(err))
		}
		defer pool.Close()
		if err := pool.Ping(ctx); err != nil {
			zl.Fatal("PostgreSQL недоступен", zap.Error(err))
		}
		if err := repository.MigrateUp(pool, zl); err != nil {
			zl.Fatal("Не удалось применить миграции", zap.Error(err))
		}
		definitions, err = repository.NewPgDefinitionsRepository(ctx, pool, zl)
		if err != nil {
			zl.Fatal("Не удалось загрузить определения из БД", zap.Error(err))
		}
		zl.Info("Определения загружены из PostgreSQL", zap.String("host", cfg.DBHost))
	} else {
		definitions, err = repository.NewFileDefinitionsRepository(cfg.DataDir, zl)
		if err != nil {
			zl.Fatal("Не удалось загрузить определения из файлов", zap.Error(err))
		}
		zl.Info("Определения загружены из файлов", zap.String("dataDir", cfg.DataDir))
	}

	// --- Репозиторий сессий ---
	var sessions game.SessionRepository
	if cfg.UseRedisSessions() {
		redisClient := redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		if err := redisClient.Ping(ctx).Err(); err != nil {
			zl.Fatal("Redis недоступен", zap.Error(err))
		}
		defer redisClient.Close()
		sessions = repository.NewRedisSessionRepository(redisClient, zl)
		zl.Info("Сессии хранятся в Redis", zap.String("addr", cfg.RedisAddr))
	} else {
		sessions = repository.NewMemorySessionRepository()
		zl.Info("Сессии хранятся в памяти процесса")
	}

	// --- Отправитель ответов ---
	messenger := delivery.NewMessengerClient(zl)
	direct := delivery.NewDirectSender(messenger, zl)

	var responder game.ResponseSender
	var dispatcher *delivery.Dispatcher
	var amqpConn *amqp.Connection
	consumerErrChan := make(chan error, 1)

	switch cfg.DeliveryMode {
	case config.DeliverySync:
		responder = direct
		zl.Info("Доставка ответов: синхронная")

	case config.DeliveryAsync:
		dispatcher = delivery.NewDispatcher(direct, cfg.DeliveryLanes, cfg.DeliveryBuffer, zl)
		responder = dispatcher
		zl.Info("Доставка ответов: внутрипроцессный диспетчер",
			zap.Int("lanes", cfg.DeliveryLanes))

	case config.DeliveryQueue:
		amqpConn, err = amqp.Dial(cfg.RabbitMQURL)
		if err != nil {
			zl.Fatal("Не удалось подключиться к RabbitMQ", zap.Error(err))
		}
		defer amqpConn.Close()

		pubChannel, err := amqpConn.Channel()
		if err != nil {
			zl.Fatal("Не удалось открыть канал публикации", zap.Error(err))
		}
		publisher, err := messaging.NewResponsePublisher(pubChannel, cfg.ResponseQueue, zl)
		if err != nil {
			zl.Fatal("Не удалось создать издателя ответов", zap.Error(err))
		}
		responder = publisher

		conChannel, err := amqpConn.Channel()
		if err != nil {
			zl.Fatal("Не удалось открыть канал потребителя", zap.Error(err))
		}
		consumer, err := messaging.NewDeliveryConsumer(conChannel, cfg.ResponseQueue, messenger, zl)
		if err != nil {
			zl.Fatal("Не удалось создать воркер доставки", zap.Error(err))
		}
		go func() {
			consumerErrChan <- consumer.Run(ctx)
		}()
		zl.Info("Доставка ответов: очередь RabbitMQ", zap.String("queue", cfg.ResponseQueue))
	}

	// --- Обработчик сообщений и HTTP-поверхность ---
	processor := bot.NewProcessor(definitions, sessions, responder, zl)
	webhook := handler.NewWebhookHandler(processor, cfg.VerifyToken, cfg.SyncProcessing, zl)
	router := handler.NewRouter(webhook, zl)

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}
	go func() {
		zl.Info("HTTP-сервер запущен", zap.String("port", cfg.Port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			zl.Fatal("Ошибка HTTP-сервера", zap.Error(err))
		}
	}()

	// --- Ожидание сигнала завершения или падения воркера доставки ---
	select {
	case <-ctx.Done():
		zl.Info("Получен сигнал завершения, начинаем остановку...")
	case err := <-consumerErrChan:
		if err != nil && !errors.Is(err, context.Canceled) {
			zl.Error("Воркер доставки завершился с ошибкой, инициируем остановку", zap.Error(err))
		}
	}
	stop()

	// --- Graceful shutdown ---
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		zl.Error("Ошибка при остановке HTTP-сервера", zap.Error(err))
	}
	if dispatcher != nil {
		zl.Info("Ожидание доставки отложенных ответов...")
		dispatcher.Close()
	}
	zl.Info("Сервер остановлен")
}
