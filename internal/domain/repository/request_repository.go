package repository

import (
	"context"

	"github.com/recyhub/recy-backend/internal/domain/entity"
)

type RequestRepository interface {
	Create(ctx context.Context, request *entity.Request) error
	Update(ctx context.Context, id string, fn func(*entity.Request) error) (*entity.Request, error)
	FindByID(ctx context.Context, id string) (*entity.Request, error)
	FindByResourceIDs(ctx context.Context, resourceIDs []string) ([]*entity.Request, error)
	FindByUpcycler(ctx context.Context, upcyclerEmail string) ([]*entity.Request, error)
}
