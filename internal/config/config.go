package config

import (
	"fmt"

	"github.com/kelseyhightower/envconfig"
)

// Режимы доставки исходящих ответов.
const (
	DeliverySync  = "sync"  // отправка в Send API до завершения обработки
	DeliveryAsync = "async" // внутрипроцессный диспетчер с полосами по игрокам
	DeliveryQueue = "queue" // очередь RabbitMQ + воркер доставки
)

// Config — конфигурация сервера викторины. Хранилища выбираются по наличию
// настроек: DB_HOST включает определения из PostgreSQL (иначе файлы из
// DATA_DIR), REDIS_ADDR включает сессии в Redis (иначе память процесса).
type Config struct {
	Port     string `envconfig:"PORT" default:"3021"`
	LogLevel string `envconfig:"LOG_LEVEL" default:"info"`

	// Verify-token рукопожатия вебхука.
	VerifyToken string `envconfig:"TOKEN" default:"MY_TEST_TOKEN"`

	// Обработка батча вебхука до ответа платформе (иначе в фоне).
	SyncProcessing bool `envconfig:"SYNC_PROCESSING" default:"false"`

	// Файловые определения.
	DataDir string `envconfig:"DATA_DIR" default:"./deploy/data"`

	// Определения в PostgreSQL.
	DBHost     string `envconfig:"DB_HOST"`
	DBPort     string `envconfig:"DB_PORT" default:"5432"`
	DBUser     string `envconfig:"DB_USER"`
	DBPassword string `envconfig:"DB_PASSWORD"`
	DBName     string `envconfig:"DB_NAME"`
	DBSSLMode  string `envconfig:"DB_SSL_MODE" default:"disable"`

	// Сессии в Redis.
	RedisAddr     string `envconfig:"REDIS_ADDR"`
	RedisPassword string `envconfig:"REDIS_PASSWORD"`
	RedisDB       int    `envconfig:"REDIS_DB" default:"0"`

	// Доставка ответов.
	DeliveryMode   string `envconfig:"DELIVERY_MODE" default:"sync"`
	DeliveryLanes  int    `envconfig:"DELIVERY_LANES" default:"8"`
	DeliveryBuffer int    `envconfig:"DELIVERY_BUFFER" default:"64"`
	RabbitMQURL    string `envconfig:"RABBITMQ_URL"`
	ResponseQueue  string `envconfig:"RESPONSE_QUEUE" default:"quiz_outbound_responses"`
}

// Load читает конфигурацию из переменных окружения.
func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("загрузка конфигурации: %w", err)
	}
	switch cfg.DeliveryMode {
	case DeliverySync, DeliveryAsync:
	case DeliveryQueue:
		if cfg.RabbitMQURL == "" {
			return nil, fmt.Errorf("DELIVERY_MODE=queue требует RABBITMQ_URL")
		}
	default:
		return nil, fmt.Errorf("неизвестный DELIVERY_MODE %q", cfg.DeliveryMode)
	}
	return &cfg, nil
}

// UsePostgresDefinitions сообщает, что определения нужно читать из БД.
func (c *Config) UsePostgresDefinitions() bool {
	return c.DBHost != ""
}

// UseRedisSessions сообщает, что сессии нужно хранить в Redis.
func (c *Config) UseRedisSessions() bool {
	return c.RedisAddr != ""
}

// GetDSN возвращает строку подключения к PostgreSQL.
func (c *Config) GetDSN() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=%s",
		c.DBUser, c.DBPassword, c.DBHost, c.DBPort, c.DBName, c.DBSSLMode)
}
