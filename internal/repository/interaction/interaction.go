package interactionRepo

import (
	"context"
	"fmt"
	"time"

	"log/slog"

	"github.com/admin/tg-bots/study-bot/internal/domain"
	"github.com/admin/tg-bots/study-bot/internal/ports/persistence"
	ports "github.com/admin/tg-bots/study-bot/internal/ports/repository"
)

type interactionColumns struct {
	TableName   string
	ID          string
	UserID      string
	Description string
	FileName    string
	FileType    string
	CreatedAt   string
}

type Repository struct {
	db      persistence.Persistence
	Log     *slog.Logger
	columns interactionColumns
}

// New создаёт новый репозиторий для работы с записями взаимодействий
func New(db persistence.Persistence, log *slog.Logger) ports.IInteractionRepo {
	cols := interactionColumns{
		TableName:   "study_material",
		ID:          "id",
		UserID:      "user_id",
		Description: "description",
		FileName:    "file_name",
		FileType:    "file_type",
		CreatedAt:   "created_at",
	}
	return &Repository{
		db:      db,
		Log:     log,
		columns: cols,
	}
}

// allColumns возвращает строку со всеми колонками
func (r *Repository) allColumns() string {
	return fmt.Sprintf("%s, %s, %s, %s, %s, %s",
		r.columns.ID,
		r.columns.UserID,
		r.columns.Description,
		r.columns.FileName,
		r.columns.FileType,
		r.columns.CreatedAt)
}

// Create создаёт новую запись взаимодействия
func (r *Repository) Create(ctx context.Context, interaction *domain.Interaction) error {
	query := fmt.Sprintf(`INSERT INTO %s (%s) VALUES ($1, $2, $3, $4, $5, $6)`,
		r.columns.TableName,
		r.allColumns())
	err := r.db.Exec(ctx, query,
		interaction.ID,
		interaction.UserID,
		interaction.Description,
		interaction.FileName,
		interaction.FileType,
		interaction.CreatedAt)
	if err != nil {
		r.Log.Error("failed to create interaction",
			"error", err,
			"user_id", interaction.UserID,
			"interaction_id", interaction.ID)
		return fmt.Errorf("failed to create interaction: %w", err)
	}
	r.Log.Debug("interaction created successfully",
		"id", interaction.ID,
		"user_id", interaction.UserID)
	return nil
}

// GetByUserID получает все записи пользователя
func (r *Repository) GetByUserID(ctx context.Context, userID string) ([]*domain.Interaction, error) {
	var interactions []*domain.Interaction
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE %s = $1 ORDER BY %s DESC`,
		r.allColumns(),
		r.columns.TableName,
		r.columns.UserID,
		r.columns.CreatedAt)
	err := r.db.Select(ctx, &interactions, query, userID)
	if err != nil {
		r.Log.Error("failed to get interactions by user id",
			"error", err,
			"user_id", userID)
		return nil, fmt.Errorf("failed to get interactions by user id: %w", err)
	}
	r.Log.Debug("interactions retrieved successfully",
		"user_id", userID,
		"count", len(interactions))
	return interactions, nil
}

// DeleteOlderThan удаляет записи старше указанной даты, возвращает количество удалённых
func (r *Repository) DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error) {
	query := fmt.Sprintf(`DELETE FROM %s WHERE %s < $1`,
		r.columns.TableName,
		r.columns.CreatedAt)
	deleted, err := r.db.ExecWithResult(ctx, query, cutoff)
	if err != nil {
		r.Log.Error("failed to delete old interactions",
			"error", err,
			"cutoff", cutoff)
		return 0, fmt.Errorf("failed to delete old interactions: %w", err)
	}
	r.Log.Debug("old interactions deleted",
		"cutoff", cutoff,
		"deleted", deleted)
	return deleted, nil
}
