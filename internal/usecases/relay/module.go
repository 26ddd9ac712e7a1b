package relay

import (
	"log/slog"

	"github.com/admin/tg-bots/study-bot/internal/ports/cache"
	"github.com/admin/tg-bots/study-bot/internal/ports/kafka"
	"github.com/admin/tg-bots/study-bot/internal/ports/repository"
	"github.com/admin/tg-bots/study-bot/internal/ports/service"
	"github.com/admin/tg-bots/study-bot/internal/ports/storage"
	"github.com/admin/tg-bots/study-bot/internal/ports/telegram"
)

// Service бизнес-логика ретранслятора: входящее сообщение -> completion -> запись -> ответ
type Service struct {
	InteractionRepo repository.IInteractionRepo
	Completion      service.ICompletionService
	Dedup           cache.Cache             // может быть nil
	Events          kafka.IProducer         // может быть nil
	Alerter         service.IAlerterService // может быть nil
	Files           storage.IS3Client       // может быть nil
	TelegramClient  telegram.IClient        // может быть nil, нужен только для скачивания файлов
	Log             *slog.Logger
}

// New создаёт новый сервис ретранслятора
func New(
	interactionRepo repository.IInteractionRepo,
	completion service.ICompletionService,
	dedup cache.Cache,
	events kafka.IProducer,
	alerter service.IAlerterService,
	files storage.IS3Client,
	telegramClient telegram.IClient,
	log *slog.Logger,
) *Service {
	return &Service{
		InteractionRepo: interactionRepo,
		Completion:      completion,
		Dedup:           dedup,
		Events:          events,
		Alerter:         alerter,
		Files:           files,
		TelegramClient:  telegramClient,
		Log:             log,
	}
}
