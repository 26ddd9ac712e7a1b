package jobs

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/admin/tg-bots/study-bot/internal/ports/repository"
)

const retentionCleanerName = "interaction-retention"

// RetentionCleaner джоба для удаления старых записей взаимодействий, каждый день в 03:00 UTC
type RetentionCleaner struct {
	interactionRepo repository.IInteractionRepo
	maxAge          time.Duration
	log             *slog.Logger
}

func NewRetentionCleaner(
	interactionRepo repository.IInteractionRepo,
	retentionDays int,
	log *slog.Logger,
) *RetentionCleaner {
	return &RetentionCleaner{
		interactionRepo: interactionRepo,
		maxAge:          time.Duration(retentionDays) * 24 * time.Hour,
		log:             log,
	}
}

func (j *RetentionCleaner) Name() string {
	return retentionCleanerName
}

// NextRun каждый день в 03:00 UTC
func (j *RetentionCleaner) NextRun(now time.Time) time.Time {
	nowUTC := now.UTC()
	next := time.Date(nowUTC.Year(), nowUTC.Month(), nowUTC.Day(), 3, 0, 0, 0, time.UTC)
	if next.Before(nowUTC) || next.Equal(nowUTC) {
		next = next.Add(24 * time.Hour)
	}
	return next
}

// Run удаляет записи старше настроенного срока хранения
func (j *RetentionCleaner) Run(ctx context.Context) error {
	cutoff := time.Now().Add(-j.maxAge)

	deleted, err := j.interactionRepo.DeleteOlderThan(ctx, cutoff)
	if err != nil {
		return fmt.Errorf("retention cleanup failed: %w", err)
	}

	j.log.Info("retention cleanup completed",
		"cutoff", cutoff,
		"deleted", deleted,
	)

	return nil
}
