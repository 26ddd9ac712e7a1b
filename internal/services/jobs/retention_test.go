package jobs

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"testing"
	"time"

	"github.com/admin/tg-bots/study-bot/internal/domain"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))
}

type fakeInteractionRepo struct {
	cutoff  time.Time
	deleted int64
	err     error
}

func (f *fakeInteractionRepo) Create(ctx context.Context, interaction *domain.Interaction) error {
	return nil
}

func (f *fakeInteractionRepo) GetByUserID(ctx context.Context, userID string) ([]*domain.Interaction, error) {
	return nil, nil
}

func (f *fakeInteractionRepo) DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error) {
	f.cutoff = cutoff
	return f.deleted, f.err
}

func TestRetentionCleaner_NextRun_BeforeThree(t *testing.T) {
	cleaner := NewRetentionCleaner(&fakeInteractionRepo{}, 30, testLogger())

	now := time.Date(2025, 6, 1, 1, 30, 0, 0, time.UTC)
	next := cleaner.NextRun(now)

	want := time.Date(2025, 6, 1, 3, 0, 0, 0, time.UTC)
	if !next.Equal(want) {
		t.Errorf("expected %v, got %v", want, next)
	}
}

func TestRetentionCleaner_NextRun_AfterThree(t *testing.T) {
	cleaner := NewRetentionCleaner(&fakeInteractionRepo{}, 30, testLogger())

	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	next := cleaner.NextRun(now)

	want := time.Date(2025, 6, 2, 3, 0, 0, 0, time.UTC)
	if !next.Equal(want) {
		t.Errorf("expected %v, got %v", want, next)
	}
}

func TestRetentionCleaner_Run(t *testing.T) {
	repo := &fakeInteractionRepo{deleted: 5}
	cleaner := NewRetentionCleaner(repo, 30, testLogger())

	if err := cleaner.Run(context.Background()); err != nil {
		t.Fatal(err)
	}

	// cutoff должен быть примерно 30 дней назад
	expected := time.Now().Add(-30 * 24 * time.Hour)
	if repo.cutoff.Sub(expected) > time.Minute || expected.Sub(repo.cutoff) > time.Minute {
		t.Errorf("unexpected cutoff: %v", repo.cutoff)
	}
}

func TestRetentionCleaner_RunError(t *testing.T) {
	repo := &fakeInteractionRepo{err: errors.New("db down")}
	cleaner := NewRetentionCleaner(repo, 30, testLogger())

	if err := cleaner.Run(context.Background()); err == nil {
		t.Fatal("expected error from failed cleanup")
	}
}
