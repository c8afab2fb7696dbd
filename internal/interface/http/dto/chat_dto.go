package dto

import (
	"time"

	"github.com/recyhub/recy-backend/internal/domain/entity"
)

type CreateChatRequest struct {
	ResourceID   string   `json:"resourceId"`
	Participants []string `json:"participants" binding:"required,len=2,dive,required,email_loose"`
}

type PostMessageRequest struct {
	From string `json:"from" binding:"required,email_loose"`
	Text string `json:"text" binding:"required,max=5000"`
}

type UpdateMessageStatusRequest struct {
	Status string `json:"status" binding:"required,delivery"`
}

type MessageResponse struct {
	ID     string    `json:"id"`
	From   string    `json:"from"`
	Text   string    `json:"text"`
	TS     time.Time `json:"ts"`
	Status string    `json:"status"`
}

type ChatRoomResponse struct {
	ID           string            `json:"id"`
	ResourceID   string            `json:"resourceId,omitempty"`
	Participants []string          `json:"participants"`
	Messages     []MessageResponse `json:"messages"`
	LastMessage  *MessageResponse  `json:"lastMessage,omitempty"`
	CreatedAt    time.Time         `json:"createdAt"`
}

func ToMessageResponse(m entity.Message) MessageResponse {
	return MessageResponse{
		ID:     m.ID,
		From:   m.From,
		Text:   m.Text,
		TS:     m.TS,
		Status: string(m.Status),
	}
}

func ToChatRoomResponse(room *entity.ChatRoom) ChatRoomResponse {
	messages := make([]MessageResponse, len(room.Messages))
	for i, m := range room.Messages {
		messages[i] = ToMessageResponse(m)
	}
	resp := ChatRoomResponse{
		ID:           room.ID,
		ResourceID:   room.ResourceID,
		Participants: []string{room.Participants[0], room.Participants[1]},
		Messages:     messages,
		CreatedAt:    room.CreatedAt,
	}
	// Превью для списка чатов.
	if last, ok := room.LastMessage(); ok {
		m := ToMessageResponse(last)
		resp.LastMessage = &m
	}
	return resp
}

func ToChatRoomResponses(rooms []*entity.ChatRoom) []ChatRoomResponse {
	result := make([]ChatRoomResponse, len(rooms))
	for i, room := range rooms {
		result[i] = ToChatRoomResponse(room)
	}
	return result
}
