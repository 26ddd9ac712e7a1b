package app

import (
	"context"
	"fmt"
	"net/http"

	server "github.com/admin/tg-bots/study-bot/internal/adapters/primary/http"
	healthcheckController "github.com/admin/tg-bots/study-bot/internal/adapters/primary/http/controllers/healthcheck"
	telegramController "github.com/admin/tg-bots/study-bot/internal/adapters/primary/http/controllers/telegram"
	alerterAdapter "github.com/admin/tg-bots/study-bot/internal/adapters/secondary/alerter"
	kafkaAdapter "github.com/admin/tg-bots/study-bot/internal/adapters/secondary/kafka"
	"github.com/admin/tg-bots/study-bot/internal/adapters/secondary/openrouter"
	"github.com/admin/tg-bots/study-bot/internal/adapters/secondary/storage/pg"
	redisAdapter "github.com/admin/tg-bots/study-bot/internal/adapters/secondary/storage/redis"
	s3Adapter "github.com/admin/tg-bots/study-bot/internal/adapters/secondary/storage/s3"
	tgAdapter "github.com/admin/tg-bots/study-bot/internal/adapters/secondary/telegram"
	"github.com/admin/tg-bots/study-bot/internal/ports/cache"
	kafkaPort "github.com/admin/tg-bots/study-bot/internal/ports/kafka"
	"github.com/admin/tg-bots/study-bot/internal/ports/repository"
	"github.com/admin/tg-bots/study-bot/internal/ports/service"
	storagePort "github.com/admin/tg-bots/study-bot/internal/ports/storage"
	telegramPort "github.com/admin/tg-bots/study-bot/internal/ports/telegram"
	interactionRepo "github.com/admin/tg-bots/study-bot/internal/repository/interaction"
	alerterService "github.com/admin/tg-bots/study-bot/internal/services/alerter"
	completionService "github.com/admin/tg-bots/study-bot/internal/services/completion"
	jobScheduler "github.com/admin/tg-bots/study-bot/internal/services/jobs"
	telegramService "github.com/admin/tg-bots/study-bot/internal/services/telegram"
	relayUsecase "github.com/admin/tg-bots/study-bot/internal/usecases/relay"
	"github.com/jmoiron/sqlx"
)

type Dependencies struct {
	DB              *sqlx.DB
	HTTPServer      *http.Server
	TelegramService *telegramService.Service
	TelegramClient  *tgAdapter.Client
	TelegramPoller  *tgAdapter.Poller
	EventProducer   *kafkaAdapter.Producer
	Cache           cache.Cache
	JobScheduler    *jobScheduler.Scheduler
}

// initDependencies инициализирует все зависимости приложения
func (a *App) initDependencies(ctx context.Context) (*Dependencies, error) {
	db, err := a.initPostgres()
	if err != nil {
		return nil, fmt.Errorf("failed to init postgres: %w", err)
	}

	persistenceLayer := pg.NewDB(db)
	repo := interactionRepo.New(persistenceLayer, a.Log)

	external, err := a.initExternalServices()
	if err != nil {
		return nil, fmt.Errorf("failed to init external services: %w", err)
	}

	var tgClient *tgAdapter.Client
	var tgClientPort telegramPort.IClient
	if a.Cfg.Telegram != nil && a.Cfg.Telegram.BotToken != "" {
		tgClient = tgAdapter.NewClient(a.Cfg.Telegram.BotToken, a.Log)
		tgClientPort = tgClient
	}

	var eventsPort kafkaPort.IProducer
	if external.Events != nil {
		eventsPort = external.Events
	}

	relayService := relayUsecase.New(
		repo,
		external.Completion,
		external.Cache,   // может быть nil
		eventsPort,       // может быть nil
		external.Alerter, // может быть nil
		external.Files,   // может быть nil
		tgClientPort,     // может быть nil
		a.Log,
	)

	tgService := telegramService.New(
		relayService,
		tgClientPort,
		a.Cfg.Telegram.ShouldSendReplies(),
		a.Log,
	)

	httpServer := a.initHTTP(db, relayService)

	poller, err := a.initTelegramMode(ctx, tgClient, tgService)
	if err != nil {
		return nil, fmt.Errorf("failed to init telegram mode: %w", err)
	}

	scheduler := a.initJobScheduler(external.Alerter, repo)

	return &Dependencies{
		DB:              db,
		HTTPServer:      httpServer,
		TelegramService: tgService,
		TelegramClient:  tgClient,
		TelegramPoller:  poller,
		EventProducer:   external.Events,
		Cache:           external.Cache,
		JobScheduler:    scheduler,
	}, nil
}

// externalServices содержит внешние сервисы (completion обязателен, остальные опциональны)
type externalServices struct {
	Completion service.ICompletionService
	Alerter    service.IAlerterService
	Cache      cache.Cache
	Files      storagePort.IS3Client
	Events     *kafkaAdapter.Producer
}

// initExternalServices инициализирует OpenRouter, Alerter, Cache, S3 и Kafka
func (a *App) initExternalServices() (*externalServices, error) {
	services := &externalServices{}

	// OpenRouter - обязательный
	if a.Cfg.OpenRouter == nil || a.Cfg.OpenRouter.ApiKey == "" {
		return nil, fmt.Errorf("openrouter api key is required")
	}
	completionClient := openrouter.NewClient(a.Cfg.OpenRouter, a.Log)
	services.Completion = completionService.New(completionClient)

	// Alerter - опциональный
	if a.Cfg.Alerter != nil && a.Cfg.Alerter.BotToken != "" {
		alerterClient := alerterAdapter.NewClient(a.Cfg.Alerter, a.Log)
		services.Alerter = alerterService.New(alerterClient)
	}

	// Redis Cache для дедупликации обновлений - опциональный
	if a.Cfg.Redis != nil && a.Cfg.Redis.Host != "" {
		redisClient, err := a.Cfg.Redis.NewConnection()
		if err != nil {
			a.Log.Warn("failed to init redis cache, continuing without dedup", "error", err)
		} else {
			services.Cache = redisAdapter.NewClient(redisClient)
			a.Log.Info("redis cache connected successfully")
		}
	}

	// S3 хранилище файлов - опциональное
	if a.Cfg.S3 != nil && a.Cfg.S3.IsConfigured() {
		minioClient, err := a.Cfg.S3.NewClient()
		if err != nil {
			a.Log.Warn("failed to init s3 storage, continuing without file storage", "error", err)
		} else {
			services.Files = s3Adapter.NewClient(minioClient, a.Cfg.S3.Bucket, a.Log)
			a.Log.Info("s3 storage connected successfully", "bucket", a.Cfg.S3.Bucket)
		}
	}

	// Kafka producer для событий о взаимодействиях - опциональный
	if a.Cfg.Kafka.IsConfigured() {
		producer, err := kafkaAdapter.NewProducer(a.Cfg.Kafka, a.Log)
		if err != nil {
			a.Log.Warn("failed to init kafka producer, continuing without events", "error", err)
		} else {
			services.Events = producer
		}
	}

	return services, nil
}

// initHTTP инициализирует HTTP сервер и контроллеры
func (a *App) initHTTP(db *sqlx.DB, relayService service.IRelayService) *http.Server {
	webhookSecret := ""
	if a.Cfg.Telegram != nil {
		webhookSecret = a.Cfg.Telegram.WebhookSecret
	}

	controllers := []server.Controller{
		healthcheckController.New(db, a.Log),
		telegramController.New(relayService, webhookSecret, a.Log),
	}

	return server.NewHTTPServer(a.Cfg.Server, a.Log, controllers...)
}

// initTelegramMode инициализирует режим работы Telegram (webhook или polling)
func (a *App) initTelegramMode(
	ctx context.Context,
	tgClient *tgAdapter.Client,
	tgService *telegramService.Service,
) (*tgAdapter.Poller, error) {
	a.Log.Info("telegram configuration",
		"use_webhook", a.Cfg.Telegram.IsWebhookEnabled(),
		"webhook_url", a.Cfg.Telegram.WebhookURL,
	)

	if a.Cfg.Telegram.IsWebhookEnabled() {
		if err := a.setupWebhook(ctx, tgClient); err != nil {
			return nil, fmt.Errorf("failed to setup webhook: %w", err)
		}
		return nil, nil // webhook режим, poller не нужен
	}

	if a.Cfg.Telegram.BotToken == "" {
		a.Log.Warn("bot token is empty, updates will arrive only via POST /webhook")
		return nil, nil
	}

	a.Log.Warn("polling mode enabled - this should only be used for local development")

	poller, err := tgAdapter.NewPoller(a.Cfg.Telegram, tgService.HandleUpdate, a.Log)
	if err != nil {
		return nil, fmt.Errorf("failed to create poller: %w", err)
	}

	return poller, nil
}

// setupWebhook регистрирует webhook бота при старте
func (a *App) setupWebhook(ctx context.Context, tgClient *tgAdapter.Client) error {
	if a.Cfg.Telegram.WebhookURL == "" {
		return fmt.Errorf("webhook_url is required when use_webhook is true")
	}

	if tgClient == nil {
		a.Log.Warn("bot token is empty, skipping webhook registration")
		return nil
	}

	webhookURL := fmt.Sprintf("%s/webhook", a.Cfg.Telegram.WebhookURL)

	if err := tgClient.SetWebhook(ctx, webhookURL, a.Cfg.Telegram.WebhookSecret); err != nil {
		return fmt.Errorf("failed to set webhook: %w", err)
	}

	a.Log.Info("webhook set successfully", "webhook_url", webhookURL)
	return nil
}

// initJobScheduler инициализирует планировщик джоб
func (a *App) initJobScheduler(
	alerterSvc service.IAlerterService,
	repo repository.IInteractionRepo,
) *jobScheduler.Scheduler {
	scheduler := jobScheduler.NewScheduler(a.Log, alerterSvc)

	// Регистрируем очистку старых записей (если задан срок хранения)
	if a.Cfg.RetentionDays > 0 {
		retentionCleaner := jobScheduler.NewRetentionCleaner(repo, a.Cfg.RetentionDays, a.Log)
		scheduler.Register(retentionCleaner)
		a.Log.Info("retention cleaner job registered", "retention_days", a.Cfg.RetentionDays)
	}

	return scheduler
}
