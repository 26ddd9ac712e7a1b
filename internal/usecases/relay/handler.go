package relay

import (
	"context"
	"fmt"
	"time"

	"github.com/admin/tg-bots/study-bot/internal/domain"
)

const (
	// fallbackReply ответ при недоступности completion-сервиса
	fallbackReply = "Sorry, I could not process your message right now. Please try again later."

	// dedupTTL время хранения ключа дедупликации (Telegram повторяет
	// доставку webhook в течение короткого окна)
	dedupTTL = 24 * time.Hour
)

// Handle обрабатывает одно входящее обновление и возвращает текст ответа.
// Ошибка completion-сервиса деградирует в fallback-ответ; ошибка записи
// в хранилище логируется и никогда не влияет на ответ.
func (s *Service) Handle(ctx context.Context, update *domain.Update) (string, error) {
	msg, err := domain.ParseIncoming(update)
	if err != nil {
		return "", err
	}

	if s.isDuplicate(ctx, msg) {
		s.Log.Info("duplicate update skipped",
			"update_id", msg.UpdateID,
			"chat_id", msg.ChatID,
		)
		return "", domain.ErrDuplicateUpdate
	}

	reply := s.completeOrFallback(ctx, msg.Text)

	// Запись взаимодействия - best-effort, ответ не блокирует
	interaction := domain.NewInteraction(msg)
	s.persistInteraction(ctx, interaction)

	if msg.HasFile() {
		s.storeFile(ctx, msg)
	}

	return reply, nil
}

// isDuplicate проверяет, не обрабатывали ли мы это обновление раньше.
// При недоступном кэше считаем обновление новым.
func (s *Service) isDuplicate(ctx context.Context, msg *domain.IncomingMessage) bool {
	if s.Dedup == nil || msg.UpdateID == 0 {
		return false
	}

	key := fmt.Sprintf("update:%d", msg.UpdateID)
	fresh, err := s.Dedup.SetNX(ctx, key, "1", dedupTTL)
	if err != nil {
		s.Log.Warn("dedup check failed, continuing without dedup",
			"error", err,
			"update_id", msg.UpdateID,
		)
		return false
	}

	return !fresh
}

// completeOrFallback запрашивает ответ у completion-сервиса,
// при любой ошибке возвращает fallback-ответ
func (s *Service) completeOrFallback(ctx context.Context, text string) string {
	reply, err := s.Completion.Complete(ctx, text)
	if err != nil {
		s.Log.Error("completion service failed",
			"error", err,
		)
		s.alert(ctx, fmt.Sprintf("⚠️ completion service failed: %v", err))
		return fallbackReply
	}

	if reply == "" {
		s.Log.Warn("completion service returned empty reply")
		return fallbackReply
	}

	return reply
}

// persistInteraction сохраняет запись и публикует событие, обе операции best-effort
func (s *Service) persistInteraction(ctx context.Context, interaction *domain.Interaction) {
	if err := s.InteractionRepo.Create(ctx, interaction); err != nil {
		s.Log.Warn("best-effort persistence failed",
			"error", err,
			"user_id", interaction.UserID,
			"interaction_id", interaction.ID,
		)
	}

	if s.Events != nil {
		if err := s.Events.PublishInteraction(ctx, interaction); err != nil {
			s.Log.Warn("failed to publish interaction event",
				"error", err,
				"interaction_id", interaction.ID,
			)
		}
	}
}

// storeFile скачивает прикреплённый файл и сохраняет его в хранилище (best-effort)
func (s *Service) storeFile(ctx context.Context, msg *domain.IncomingMessage) {
	if s.Files == nil || s.TelegramClient == nil {
		return
	}

	data, err := s.TelegramClient.DownloadFile(ctx, msg.FileID)
	if err != nil {
		s.Log.Warn("failed to download study file",
			"error", err,
			"file_id", msg.FileID,
			"chat_id", msg.ChatID,
		)
		return
	}

	name := msg.FileName
	if name == "" {
		name = msg.FileID
	}
	path := fmt.Sprintf("%s/%s", msg.UserID(), name)

	if err := s.Files.Upload(ctx, path, data, msg.FileType); err != nil {
		s.Log.Warn("failed to store study file",
			"error", err,
			"path", path,
		)
		return
	}

	s.Log.Info("study file stored",
		"path", path,
		"size", len(data),
	)
}

// alert отправляет алерт, если алертер настроен
func (s *Service) alert(ctx context.Context, message string) {
	if s.Alerter == nil {
		return
	}

	if err := s.Alerter.SendAlert(ctx, message); err != nil {
		s.Log.Warn("failed to send alert", "error", err)
	}
}
