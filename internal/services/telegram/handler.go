package telegram

import (
	"context"
	"errors"
	"fmt"

	"github.com/admin/tg-bots/study-bot/internal/domain"
)

// HandleUpdate обрабатывает обновление из polling и доставляет ответ пользователю
func (s *Service) HandleUpdate(ctx context.Context, update *domain.Update) error {
	if update == nil {
		return fmt.Errorf("update is nil")
	}

	if update.Message != nil && update.Message.From != nil && update.Message.From.IsBot {
		s.Log.Debug("ignoring message from bot", "update_id", update.UpdateID)
		return nil
	}

	reply, err := s.Relay.Handle(ctx, update)
	if err != nil {
		if errors.Is(err, domain.ErrMalformedUpdate) || errors.Is(err, domain.ErrDuplicateUpdate) {
			s.Log.Debug("update skipped",
				"reason", err,
				"update_id", update.UpdateID,
			)
			return nil
		}
		return fmt.Errorf("failed to handle update: %w", err)
	}

	if !s.SendReplies || s.Client == nil {
		return nil
	}

	if update.Message == nil || update.Message.Chat == nil {
		return nil
	}

	if err := s.Client.SendMessage(ctx, update.Message.Chat.ID, reply); err != nil {
		s.Log.Error("failed to send reply",
			"error", err,
			"chat_id", update.Message.Chat.ID,
			"update_id", update.UpdateID,
		)
		return fmt.Errorf("failed to send reply: %w", err)
	}

	return nil
}
