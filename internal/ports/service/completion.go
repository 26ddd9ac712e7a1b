package service

import "context"

// ICompletionService интерфейс внешнего сервиса генерации ответов
type ICompletionService interface {
	Complete(ctx context.Context, userText string) (string, error)
}
