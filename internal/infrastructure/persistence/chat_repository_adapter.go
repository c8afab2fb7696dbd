package persistence

import (
	"context"

	"github.com/recyhub/recy-backend/internal/domain/entity"
	"github.com/recyhub/recy-backend/internal/infrastructure/kvstore"
	"github.com/recyhub/recy-backend/internal/pkg/apperror"
)

type ChatRoomRepositoryAdapter struct {
	col *Collection[chatRoomRecord]
}

func NewChatRoomRepositoryAdapter(store kvstore.Store, maxRetries int) *ChatRoomRepositoryAdapter {
	return &ChatRoomRepositoryAdapter{col: NewCollection[chatRoomRecord](store, KeyChatRooms, maxRetries)}
}

func (r *ChatRoomRepositoryAdapter) Create(ctx context.Context, room *entity.ChatRoom) error {
	_, err := r.col.Update(ctx, func(records []chatRoomRecord) ([]chatRoomRecord, error) {
		return append(records, newChatRoomRecord(room)), nil
	})
	return err
}

func (r *ChatRoomRepositoryAdapter) Update(ctx context.Context, id string, fn func(*entity.ChatRoom) error) (*entity.ChatRoom, error) {
	var updated *entity.ChatRoom
	_, err := r.col.Update(ctx, func(records []chatRoomRecord) ([]chatRoomRecord, error) {
		for i := range records {
			if records[i].ID != id {
				continue
			}
			room := records[i].toEntity()
			if err := fn(room); err != nil {
				return nil, err
			}
			records[i] = newChatRoomRecord(room)
			updated = room
			return records, nil
		}
		return nil, apperror.ErrChatNotFound
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

func (r *ChatRoomRepositoryAdapter) FindByID(ctx context.Context, id string) (*entity.ChatRoom, error) {
	for _, rec := range r.col.Read(ctx) {
		if rec.ID == id {
			return rec.toEntity(), nil
		}
	}
	return nil, apperror.ErrChatNotFound
}

func (r *ChatRoomRepositoryAdapter) FindByParticipant(ctx context.Context, email string) ([]*entity.ChatRoom, error) {
	result := []*entity.ChatRoom{}
	for _, rec := range r.col.Read(ctx) {
		if rec.hasParticipant(email) {
			result = append(result, rec.toEntity())
		}
	}
	return result, nil
}
