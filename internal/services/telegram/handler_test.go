package telegram

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"testing"

	"github.com/admin/tg-bots/study-bot/internal/domain"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))
}

func strPtr(s string) *string {
	return &s
}

type stubRelay struct {
	calls int
	reply string
	err   error
}

func (s *stubRelay) Handle(ctx context.Context, update *domain.Update) (string, error) {
	s.calls++
	return s.reply, s.err
}

type recordingClient struct {
	chatID int64
	text   string
	sent   int
}

func (c *recordingClient) SendMessage(ctx context.Context, chatID int64, text string) error {
	c.chatID = chatID
	c.text = text
	c.sent++
	return nil
}

func (c *recordingClient) DownloadFile(ctx context.Context, fileID string) ([]byte, error) {
	return nil, nil
}

func textUpdate(chatID int64, text string, fromBot bool) *domain.Update {
	return &domain.Update{
		UpdateID: 1,
		Message: &domain.Message{
			Chat: &domain.Chat{ID: chatID},
			From: &domain.TelegramUser{ID: 99, IsBot: fromBot},
			Text: strPtr(text),
		},
	}
}

func TestHandleUpdate_SendsReply(t *testing.T) {
	relay := &stubRelay{reply: "answer"}
	client := &recordingClient{}
	svc := New(relay, client, true, testLogger())

	if err := svc.HandleUpdate(context.Background(), textUpdate(42, "question", false)); err != nil {
		t.Fatal(err)
	}

	if client.sent != 1 {
		t.Fatalf("expected 1 sent message, got %d", client.sent)
	}
	if client.chatID != 42 {
		t.Errorf("reply sent to wrong chat: %d", client.chatID)
	}
	if client.text != "answer" {
		t.Errorf("unexpected reply text: %s", client.text)
	}
}

func TestHandleUpdate_IgnoresBotMessages(t *testing.T) {
	relay := &stubRelay{reply: "answer"}
	svc := New(relay, nil, false, testLogger())

	if err := svc.HandleUpdate(context.Background(), textUpdate(42, "question", true)); err != nil {
		t.Fatal(err)
	}

	if relay.calls != 0 {
		t.Errorf("bot messages must not reach the relay, got %d calls", relay.calls)
	}
}

func TestHandleUpdate_ToleratesMalformed(t *testing.T) {
	relay := &stubRelay{err: domain.ErrMalformedUpdate}
	svc := New(relay, nil, false, testLogger())

	if err := svc.HandleUpdate(context.Background(), &domain.Update{UpdateID: 1}); err != nil {
		t.Errorf("malformed update must not be an error in polling mode: %v", err)
	}
}

func TestHandleUpdate_ToleratesDuplicate(t *testing.T) {
	relay := &stubRelay{err: domain.ErrDuplicateUpdate}
	svc := New(relay, nil, false, testLogger())

	if err := svc.HandleUpdate(context.Background(), textUpdate(42, "question", false)); err != nil {
		t.Errorf("duplicate update must not be an error: %v", err)
	}
}

func TestHandleUpdate_PropagatesOtherErrors(t *testing.T) {
	relay := &stubRelay{err: errors.New("boom")}
	svc := New(relay, nil, false, testLogger())

	if err := svc.HandleUpdate(context.Background(), textUpdate(42, "question", false)); err == nil {
		t.Error("unexpected success for failing relay")
	}
}

func TestHandleUpdate_NoSendWhenDisabled(t *testing.T) {
	relay := &stubRelay{reply: "answer"}
	client := &recordingClient{}
	svc := New(relay, client, false, testLogger())

	if err := svc.HandleUpdate(context.Background(), textUpdate(42, "question", false)); err != nil {
		t.Fatal(err)
	}

	if client.sent != 0 {
		t.Errorf("replies disabled, but %d messages sent", client.sent)
	}
}
