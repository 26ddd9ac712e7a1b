package telegram

import (
	"context"
	"fmt"

	"log/slog"

	"github.com/admin/tg-bots/study-bot/internal/domain"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// UpdateHandler функция для обработки обновлений от Telegram
type UpdateHandler func(ctx context.Context, update *domain.Update) error

// Poller получает обновления через long polling.
// Используется только для локальной разработки, в проде - webhook.
type Poller struct {
	bot     *tgbotapi.BotAPI
	cfg     *Config
	handler UpdateHandler
	log     *slog.Logger
}

// NewPoller создаёт poller поверх bot API SDK
func NewPoller(cfg *Config, handler UpdateHandler, log *slog.Logger) (*Poller, error) {
	bot, err := tgbotapi.NewBotAPI(cfg.BotToken)
	if err != nil {
		return nil, fmt.Errorf("failed to create bot api: %w", err)
	}

	return &Poller{
		bot:     bot,
		cfg:     cfg,
		handler: handler,
		log:     log,
	}, nil
}

// DeleteWebhook удаляет webhook перед запуском polling
func (p *Poller) DeleteWebhook(ctx context.Context) error {
	_, err := p.bot.Request(tgbotapi.DeleteWebhookConfig{DropPendingUpdates: false})
	if err != nil {
		return fmt.Errorf("failed to delete webhook: %w", err)
	}
	return nil
}

// Start запускает long polling и блокируется до отмены контекста
func (p *Poller) Start(ctx context.Context) error {
	timeout := p.cfg.PollingTimeout
	if timeout <= 0 {
		timeout = 30
	}

	updateCfg := tgbotapi.NewUpdate(0)
	updateCfg.Timeout = timeout

	updates := p.bot.GetUpdatesChan(updateCfg)

	p.log.Info("starting telegram polling",
		"bot_username", p.bot.Self.UserName,
		"timeout", timeout,
	)

	for {
		select {
		case <-ctx.Done():
			p.bot.StopReceivingUpdates()
			p.log.Info("polling stopped")
			return nil
		case upd, ok := <-updates:
			if !ok {
				return fmt.Errorf("updates channel closed")
			}

			update := convertUpdate(&upd)

			if err := p.handler(ctx, update); err != nil {
				p.log.Error("failed to handle update",
					"error", err,
					"update_id", update.UpdateID,
				)
				// продолжаем обработку следующих обновлений
			}
		}
	}
}

// convertUpdate переводит SDK-обновление в domain.Update,
// чтобы polling и webhook шли через один парсер
func convertUpdate(u *tgbotapi.Update) *domain.Update {
	update := &domain.Update{
		UpdateID: int64(u.UpdateID),
	}

	if u.Message == nil {
		return update
	}

	msg := &domain.Message{
		MessageID: int64(u.Message.MessageID),
		Date:      int64(u.Message.Date),
	}

	if u.Message.Chat != nil {
		msg.Chat = &domain.Chat{
			ID:   u.Message.Chat.ID,
			Type: u.Message.Chat.Type,
		}
	}

	if u.Message.From != nil {
		from := &domain.TelegramUser{
			ID:        u.Message.From.ID,
			IsBot:     u.Message.From.IsBot,
			FirstName: u.Message.From.FirstName,
		}
		if u.Message.From.UserName != "" {
			username := u.Message.From.UserName
			from.Username = &username
		}
		msg.From = from
	}

	if u.Message.Text != "" {
		text := u.Message.Text
		msg.Text = &text
	}

	if u.Message.Caption != "" {
		caption := u.Message.Caption
		msg.Caption = &caption
	}

	if u.Message.Document != nil {
		doc := &domain.Document{
			FileID:   u.Message.Document.FileID,
			FileSize: int64(u.Message.Document.FileSize),
		}
		if u.Message.Document.FileName != "" {
			name := u.Message.Document.FileName
			doc.FileName = &name
		}
		if u.Message.Document.MimeType != "" {
			mime := u.Message.Document.MimeType
			doc.MimeType = &mime
		}
		msg.Document = doc
	}

	update.Message = msg
	return update
}
