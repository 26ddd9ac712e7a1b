package storage

import (
	"context"
	"time"
)

// IS3Client интерфейс для работы с файловым хранилищем
type IS3Client interface {
	Upload(ctx context.Context, path string, data []byte, contentType string) error
	GetPresignedURL(ctx context.Context, path string, expires time.Duration) (string, error)
}
