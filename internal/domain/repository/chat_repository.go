package repository

import (
	"context"

	"github.com/recyhub/recy-backend/internal/domain/entity"
)

type ChatRoomRepository interface {
	// Create добавляет комнату в конец коллекции.
	Create(ctx context.Context, room *entity.ChatRoom) error
	Update(ctx context.Context, id string, fn func(*entity.ChatRoom) error) (*entity.ChatRoom, error)
	FindByID(ctx context.Context, id string) (*entity.ChatRoom, error)
	FindByParticipant(ctx context.Context, email string) ([]*entity.ChatRoom, error)
}
