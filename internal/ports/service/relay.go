package service

import (
	"context"

	"github.com/admin/tg-bots/study-bot/internal/domain"
)

// IRelayService интерфейс бизнес-логики ретранслятора.
// Handle возвращает текст ответа для пользователя либо
// domain.ErrMalformedUpdate, если обновление не содержит сообщения.
type IRelayService interface {
	Handle(ctx context.Context, update *domain.Update) (string, error)
}
