package repository

import (
	"context"
	"time"

	"github.com/admin/tg-bots/study-bot/internal/domain"
)

// IInteractionRepo интерфейс для работы с записями взаимодействий
type IInteractionRepo interface {
	Create(ctx context.Context, interaction *domain.Interaction) error
	GetByUserID(ctx context.Context, userID string) ([]*domain.Interaction, error)
	DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error)
}
