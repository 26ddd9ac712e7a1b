package relay

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

func strPtr(s string) *string {
	return &s
}

type fakeRepo struct {
	created []*domain.Interaction
	err     error
}

func (f *fakeRepo) Create(ctx context.Context, interaction *domain.Interaction) error {
	if f.err != nil {
		return f.err
	}
	f.created = append(f.created, interaction)
	return nil
}

func (f *fakeRepo) GetByUserID(ctx context.Context, userID string) ([]*domain.Interaction, error) {
	return nil, nil
}

func (f *fakeRepo) DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error) {
	return 0, nil
}

type fakeCompletion struct {
	calls []string
	reply string
	err   error
}

func (f *fakeCompletion) Complete(ctx context.Context, userText string) (string, error) {
	f.calls = append(f.calls, userText)
	if f.err != nil {
		return "", f.err
	}
	return f.reply, nil
}

type fakeDedup struct {
	seen map[string]bool
	err  error
}

func (f *fakeDedup) Get(ctx context.Context, key string) (string, error) {
	return "", nil
}

func (f *fakeDedup) Set(ctx context.Context, key string, value string, ttl time.Duration) error {
	return nil
}

func (f *fakeDedup) Delete(ctx context.Context, key string) error {
	return nil
}

func (f *fakeDedup) Exists(ctx context.Context, key string) (bool, error) {
	return false, nil
}

func (f *fakeDedup) Close() error {
	return nil
}

func (f *fakeDedup) SetNX(ctx context.Context, key string, value string, ttl time.Duration) (bool, error) {
	if f.err != nil {
		return false, f.err
	}
	if f.seen == nil {
		f.seen = make(map[string]bool)
	}
	if f.seen[key] {
		return false, nil
	}
	f.seen[key] = true
	return true, nil
}

func newService(repo *fakeRepo, completion *fakeCompletion) *Service {
	return New(repo, completion, nil, nil, nil, nil, nil, testLogger())
}

func textUpdate(updateID, chatID int64, text string) *domain.Update {
	return &domain.Update{
		UpdateID: updateID,
		Message: &domain.Message{
			Chat: &domain.Chat{ID: chatID},
			Text: strPtr(text),
		},
	}
}

func TestHandle_TextMessage(t *testing.T) {
	repo := &fakeRepo{}
	completion := &fakeCompletion{reply: "Osmosis is the movement of water across a membrane."}
	svc := newService(repo, completion)

	reply, err := svc.Handle(context.Background(), textUpdate(1, 42, "Explain osmosis"))
	if err != nil {
		t.Fatal(err)
	}
	if reply != completion.reply {
		t.Errorf("unexpected reply: %s", reply)
	}

	if len(completion.calls) != 1 {
		t.Fatalf("expected 1 completion call, got %d", len(completion.calls))
	}
	if completion.calls[0] != "Explain osmosis" {
		t.Errorf("completion called with wrong text: %s", completion.calls[0])
	}

	if len(repo.created) != 1 {
		t.Fatalf("expected 1 interaction, got %d", len(repo.created))
	}
	interaction := repo.created[0]
	if interaction.UserID != "42" {
		t.Errorf("expected user id 42, got %s", interaction.UserID)
	}
	if interaction.Description != "Explain osmosis" {
		t.Errorf("unexpected description: %s", interaction.Description)
	}
	if interaction.FileName != domain.FileNamePlaceholder {
		t.Errorf("expected placeholder file name, got %s", interaction.FileName)
	}
	if interaction.FileType != domain.InteractionTypeText {
		t.Errorf("expected text file type, got %s", interaction.FileType)
	}
}

func TestHandle_NoMessage(t *testing.T) {
	repo := &fakeRepo{}
	completion := &fakeCompletion{reply: "should not be called"}
	svc := newService(repo, completion)

	_, err := svc.Handle(context.Background(), &domain.Update{UpdateID: 1})
	if !errors.Is(err, domain.ErrMalformedUpdate) {
		t.Errorf("expected ErrMalformedUpdate, got %v", err)
	}

	if len(completion.calls) != 0 {
		t.Errorf("completion must not be called for malformed update")
	}
	if len(repo.created) != 0 {
		t.Errorf("nothing should be persisted for malformed update")
	}
}

func TestHandle_CompletionFails(t *testing.T) {
	repo := &fakeRepo{}
	completion := &fakeCompletion{err: errors.New("upstream down")}
	svc := newService(repo, completion)

	reply, err := svc.Handle(context.Background(), textUpdate(1, 42, "Explain osmosis"))
	if err != nil {
		t.Fatal(err)
	}
	if reply == "" {
		t.Error("degraded reply must not be empty")
	}
	if reply != fallbackReply {
		t.Errorf("expected fallback reply, got %s", reply)
	}

	// Взаимодействие записывается даже при деградации
	if len(repo.created) != 1 {
		t.Errorf("expected interaction to be persisted, got %d", len(repo.created))
	}
}

func TestHandle_EmptyCompletionReply(t *testing.T) {
	repo := &fakeRepo{}
	completion := &fakeCompletion{reply: ""}
	svc := newService(repo, completion)

	reply, err := svc.Handle(context.Background(), textUpdate(1, 42, "Explain osmosis"))
	if err != nil {
		t.Fatal(err)
	}
	if reply != fallbackReply {
		t.Errorf("expected fallback reply for empty completion, got %q", reply)
	}
}

func TestHandle_PersistenceFailureDoesNotChangeReply(t *testing.T) {
	repo := &fakeRepo{err: errors.New("db down")}
	completion := &fakeCompletion{reply: "Osmosis is the movement of water across a membrane."}
	svc := newService(repo, completion)

	reply, err := svc.Handle(context.Background(), textUpdate(1, 42, "Explain osmosis"))
	if err != nil {
		t.Fatal(err)
	}
	if reply != completion.reply {
		t.Errorf("persistence failure must not change the reply, got %s", reply)
	}
}

func TestHandle_DuplicateUpdate(t *testing.T) {
	repo := &fakeRepo{}
	completion := &fakeCompletion{reply: "answer"}
	svc := newService(repo, completion)
	svc.Dedup = &fakeDedup{}

	if _, err := svc.Handle(context.Background(), textUpdate(7, 42, "Explain osmosis")); err != nil {
		t.Fatal(err)
	}

	_, err := svc.Handle(context.Background(), textUpdate(7, 42, "Explain osmosis"))
	if !errors.Is(err, domain.ErrDuplicateUpdate) {
		t.Errorf("expected ErrDuplicateUpdate, got %v", err)
	}

	if len(completion.calls) != 1 {
		t.Errorf("duplicate must not trigger completion, got %d calls", len(completion.calls))
	}
}

func TestHandle_DedupUnavailable(t *testing.T) {
	repo := &fakeRepo{}
	completion := &fakeCompletion{reply: "answer"}
	svc := newService(repo, completion)
	svc.Dedup = &fakeDedup{err: errors.New("redis down")}

	reply, err := svc.Handle(context.Background(), textUpdate(7, 42, "Explain osmosis"))
	if err != nil {
		t.Fatal(err)
	}
	if reply != "answer" {
		t.Errorf("dedup failure must not block processing, got %s", reply)
	}
}
