package domain

import "strconv"

// IncomingMessage - нормализованное входящее сообщение.
// Единая точка входа для обоих источников обновлений (webhook и polling).
type IncomingMessage struct {
	UpdateID int64
	ChatID   int64
	Text     string  // пустая строка, если текста нет
	Username *string // username отправителя, если известен
	FileID   string  // file_id документа, если он прикреплён
	FileName string
	FileType string
}

// UserID возвращает идентификатор пользователя для записи взаимодействия
func (m *IncomingMessage) UserID() string {
	return strconv.FormatInt(m.ChatID, 10)
}

// HasFile сообщает, прикреплён ли к сообщению файл
func (m *IncomingMessage) HasFile() bool {
	return m.FileID != ""
}

// ParseIncoming валидирует обновление и собирает IncomingMessage.
// Возвращает ErrMalformedUpdate, если обязательная структура message/chat отсутствует.
func ParseIncoming(update *Update) (*IncomingMessage, error) {
	if update == nil || update.Message == nil || update.Message.Chat == nil {
		return nil, ErrMalformedUpdate
	}

	msg := update.Message

	incoming := &IncomingMessage{
		UpdateID: update.UpdateID,
		ChatID:   msg.Chat.ID,
	}

	if msg.Text != nil {
		incoming.Text = *msg.Text
	} else if msg.Caption != nil {
		incoming.Text = *msg.Caption
	}

	if msg.From != nil {
		incoming.Username = msg.From.Username
	}

	if msg.Document != nil {
		incoming.FileID = msg.Document.FileID
		if msg.Document.FileName != nil {
			incoming.FileName = *msg.Document.FileName
		}
		if msg.Document.MimeType != nil {
			incoming.FileType = *msg.Document.MimeType
		}
	}

	return incoming, nil
}
