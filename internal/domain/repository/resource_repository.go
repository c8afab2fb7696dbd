package repository

import (
	"context"

	"github.com/recyhub/recy-backend/internal/domain/entity"
)

type ResourceRepository interface {
	// Create добавляет ресурс в начало коллекции (новые первыми).
	Create(ctx context.Context, resource *entity.Resource) error
	// Update применяет fn к найденному ресурсу и сохраняет результат.
	Update(ctx context.Context, id string, fn func(*entity.Resource) error) (*entity.Resource, error)
	FindByID(ctx context.Context, id string) (*entity.Resource, error)
	FindByDonor(ctx context.Context, donorEmail string) ([]*entity.Resource, error)
	List(ctx context.Context) ([]*entity.Resource, error)
}
