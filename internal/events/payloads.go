package events

import "github.com/recyhub/recy-backend/internal/domain/entity"

// ChatMessagePayload — полезная нагрузка chat-message и chat-message-status.
type ChatMessagePayload struct {
	ChatID  string
	Message entity.Message
}
