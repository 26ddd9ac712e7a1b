package app

import (
	server "github.com/admin/tg-bots/study-bot/internal/adapters/primary/http"
	alerterAdapter "github.com/admin/tg-bots/study-bot/internal/adapters/secondary/alerter"
	kafkaAdapter "github.com/admin/tg-bots/study-bot/internal/adapters/secondary/kafka"
	"github.com/admin/tg-bots/study-bot/internal/adapters/secondary/openrouter"
	"github.com/admin/tg-bots/study-bot/internal/adapters/secondary/storage/pg"
	redisAdapter "github.com/admin/tg-bots/study-bot/internal/adapters/secondary/storage/redis"
	s3Adapter "github.com/admin/tg-bots/study-bot/internal/adapters/secondary/storage/s3"
	"github.com/admin/tg-bots/study-bot/internal/adapters/secondary/telegram"
	"github.com/admin/tg-bots/study-bot/internal/pkg/logger"
	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	Postgres   *pg.Config             `envconfig:"POSTGRES"`
	Log        *logger.Config         `envconfig:"LOG"`
	Server     *server.Config         `envconfig:"APISERVER"`
	Telegram   *telegram.Config       `envconfig:"TELEGRAM"`
	OpenRouter *openrouter.Config     `envconfig:"OPENROUTER"`
	Redis      *redisAdapter.Config   `envconfig:"REDIS"`
	Kafka      *kafkaAdapter.Config   `envconfig:"KAFKA"`
	S3         *s3Adapter.Config      `envconfig:"S3"`
	Alerter    *alerterAdapter.Config `envconfig:"ALERTER"`
	// RetentionDays срок хранения записей взаимодействий, 0 = хранить бессрочно
	RetentionDays int `envconfig:"RETENTION_DAYS" default:"0"`
}

func NewEnvConfig(envPrefix string) (*Config, error) {
	cfg := &Config{}

	_ = godotenv.Load("deployments/local/.env")

	if err := envconfig.Process(envPrefix, cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}
