package openrouter

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))
}

func newTestClient(serverURL string) *Client {
	cfg := &Config{
		BaseURL: serverURL,
		ApiKey:  "test-key",
		Model:   "google/gemini-2.5-flash",
		Referer: "https://example.com",
		Title:   "test bot",
	}
	return NewClient(cfg, testLogger())
}

func TestCreateChatCompletion_Success(t *testing.T) {
	var gotReq ChatCompletionRequest
	var gotAuth, gotTitle string

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotTitle = r.Header.Get("X-Title")

		if err := json.NewDecoder(r.Body).Decode(&gotReq); err != nil {
			t.Errorf("failed to decode request: %v", err)
		}

		resp := ChatCompletionResponse{
			Choices: []ChatCompletionChoice{
				{Message: ChatMessage{Role: "assistant", Content: "Osmosis is diffusion of water."}},
			},
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(resp)
	}))
	defer server.Close()

	client := newTestClient(server.URL)

	reply, err := client.CreateChatCompletion(context.Background(), "You are a helpful study assistant bot.", "Explain osmosis")
	if err != nil {
		t.Fatal(err)
	}
	if reply != "Osmosis is diffusion of water." {
		t.Errorf("unexpected reply: %s", reply)
	}

	if gotAuth != "Bearer test-key" {
		t.Errorf("unexpected authorization header: %s", gotAuth)
	}
	if gotTitle != "test bot" {
		t.Errorf("unexpected x-title header: %s", gotTitle)
	}

	if gotReq.Model != "google/gemini-2.5-flash" {
		t.Errorf("unexpected model: %s", gotReq.Model)
	}
	if len(gotReq.Messages) != 2 {
		t.Fatalf("expected 2 messages, got %d", len(gotReq.Messages))
	}
	if gotReq.Messages[0].Role != "system" {
		t.Errorf("first message must be system, got %s", gotReq.Messages[0].Role)
	}
	if gotReq.Messages[1].Content != "Explain osmosis" {
		t.Errorf("unexpected user message: %s", gotReq.Messages[1].Content)
	}
}

func TestCreateChatCompletion_Non200(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		w.Write([]byte(`{"error":{"code":429,"message":"rate limited"}}`))
	}))
	defer server.Close()

	client := newTestClient(server.URL)

	_, err := client.CreateChatCompletion(context.Background(), "system", "user")
	if err == nil {
		t.Fatal("expected error for non-200 status")
	}
}

func TestCreateChatCompletion_ErrorBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"error":{"code":402,"message":"insufficient credits"}}`))
	}))
	defer server.Close()

	client := newTestClient(server.URL)

	_, err := client.CreateChatCompletion(context.Background(), "system", "user")
	if err == nil {
		t.Fatal("expected error from error body")
	}
}

func TestCreateChatCompletion_NoChoices(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"id":"gen-1","choices":[]}`))
	}))
	defer server.Close()

	client := newTestClient(server.URL)

	_, err := client.CreateChatCompletion(context.Background(), "system", "user")
	if err == nil {
		t.Fatal("expected error for empty choices")
	}
}

func TestCreateChatCompletion_MalformedJSON(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`not json`))
	}))
	defer server.Close()

	client := newTestClient(server.URL)

	_, err := client.CreateChatCompletion(context.Background(), "system", "user")
	if err == nil {
		t.Fatal("expected error for malformed response")
	}
}

func TestTruncateString(t *testing.T) {
	if got := truncateString("short", 10); got != "short" {
		t.Errorf("unexpected: %s", got)
	}
	if got := truncateString("0123456789", 4); got != "0123..." {
		t.Errorf("unexpected: %s", got)
	}
}
