package kafka

import (
	"context"

	"github.com/admin/tg-bots/study-bot/internal/domain"
)

// IProducer интерфейс для публикации событий о взаимодействиях
type IProducer interface {
	PublishInteraction(ctx context.Context, interaction *domain.Interaction) error
	Close() error
}
