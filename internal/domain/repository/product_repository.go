package repository

import (
	"context"

	"github.com/recyhub/recy-backend/internal/domain/entity"
)

type ProductRepository interface {
	Create(ctx context.Context, product *entity.Product) error
	List(ctx context.Context) ([]*entity.Product, error)
	FindByUpcycler(ctx context.Context, upcyclerEmail string) ([]*entity.Product, error)
}

type RatingRepository interface {
	// Append дописывает оценку в конец журнала.
	Append(ctx context.Context, rating *entity.Rating) error
	FindByPartner(ctx context.Context, partnerEmail string) ([]*entity.Rating, error)
}
