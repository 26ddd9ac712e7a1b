package completion

import (
	"context"
	"fmt"

	"github.com/admin/tg-bots/study-bot/internal/adapters/secondary/openrouter"
	"github.com/admin/tg-bots/study-bot/internal/ports/service"
)

// systemPrompt фиксированный системный промпт учебного ассистента
const systemPrompt = "You are a helpful study assistant bot."

// Service реализует ICompletionService поверх OpenRouter
type Service struct {
	client *openrouter.Client
}

// New создаёт новый сервис генерации ответов
func New(client *openrouter.Client) service.ICompletionService {
	return &Service{
		client: client,
	}
}

// Complete выполняет один запрос к completion API с фиксированным системным промптом
func (s *Service) Complete(ctx context.Context, userText string) (string, error) {
	reply, err := s.client.CreateChatCompletion(ctx, systemPrompt, userText)
	if err != nil {
		return "", fmt.Errorf("failed to create chat completion: %w", err)
	}

	return reply, nil
}
