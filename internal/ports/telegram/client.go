package telegram

import "context"

// IClient интерфейс клиента Telegram Bot API
type IClient interface {
	SendMessage(ctx context.Context, chatID int64, text string) error
	// DownloadFile скачивает содержимое файла по file_id
	DownloadFile(ctx context.Context, fileID string) ([]byte, error)
}
