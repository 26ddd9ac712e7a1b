package telegram

import (
	"log/slog"

	"github.com/admin/tg-bots/study-bot/internal/ports/service"
	telegramPort "github.com/admin/tg-bots/study-bot/internal/ports/telegram"
)

// Service роутинг входящих обновлений в relay use case.
// В polling-режиме ответы доставляются через sendMessage,
// в webhook-режиме ответ уходит телом HTTP-ответа.
type Service struct {
	Relay       service.IRelayService
	Client      telegramPort.IClient // может быть nil
	SendReplies bool
	Log         *slog.Logger
}

func New(
	relay service.IRelayService,
	client telegramPort.IClient,
	sendReplies bool,
	log *slog.Logger,
) *Service {
	return &Service{
		Relay:       relay,
		Client:      client,
		SendReplies: sendReplies,
		Log:         log,
	}
}
