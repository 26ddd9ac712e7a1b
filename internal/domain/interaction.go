package domain

import (
	"time"

	"github.com/google/uuid"
)

const (
	// InteractionTypeText тег взаимодействия без файла
	InteractionTypeText = "text"
	// FileNamePlaceholder значение file_name для текстовых взаимодействий
	FileNamePlaceholder = "N/A"
)

// Interaction - одна запись о взаимодействии пользователя с ботом.
// Создаётся один раз на запрос, никогда не изменяется и не читается
// обратно на пути ответа.
type Interaction struct {
	ID          uuid.UUID `json:"id" db:"id"`
	UserID      string    `json:"user_id" db:"user_id"`
	Description string    `json:"description" db:"description"`
	FileName    string    `json:"file_name" db:"file_name"`
	FileType    string    `json:"file_type" db:"file_type"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
}

// NewInteraction собирает запись взаимодействия из входящего сообщения
func NewInteraction(msg *IncomingMessage) *Interaction {
	interaction := &Interaction{
		ID:          uuid.New(),
		UserID:      msg.UserID(),
		Description: msg.Text,
		FileName:    FileNamePlaceholder,
		FileType:    InteractionTypeText,
		CreatedAt:   time.Now(),
	}

	if msg.HasFile() {
		if msg.FileName != "" {
			interaction.FileName = msg.FileName
		}
		if msg.FileType != "" {
			interaction.FileType = msg.FileType
		}
	}

	return interaction
}
