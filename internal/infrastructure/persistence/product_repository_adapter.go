package persistence

import (
	"context"

	"github.com/recyhub/recy-backend/internal/domain/entity"
	"github.com/recyhub/recy-backend/internal/infrastructure/kvstore"
)

type ProductRepositoryAdapter struct {
	col *Collection[productRecord]
}

func NewProductRepositoryAdapter(store kvstore.Store, maxRetries int) *ProductRepositoryAdapter {
	return &ProductRepositoryAdapter{col: NewCollection[productRecord](store, KeyProducts, maxRetries)}
}

func (r *ProductRepositoryAdapter) Create(ctx context.Context, product *entity.Product) error {
	_, err := r.col.Update(ctx, func(records []productRecord) ([]productRecord, error) {
		return append([]productRecord{newProductRecord(product)}, records...), nil
	})
	return err
}

func (r *ProductRepositoryAdapter) List(ctx context.Context) ([]*entity.Product, error) {
	records := r.col.Read(ctx)
	result := make([]*entity.Product, len(records))
	for i := range records {
		result[i] = records[i].toEntity()
	}
	return result, nil
}

func (r *ProductRepositoryAdapter) FindByUpcycler(ctx context.Context, upcyclerEmail string) ([]*entity.Product, error) {
	result := []*entity.Product{}
	for _, rec := range r.col.Read(ctx) {
		if rec.UpcyclerEmail == upcyclerEmail {
			result = append(result, rec.toEntity())
		}
	}
	return result, nil
}

type RatingRepositoryAdapter struct {
	col *Collection[ratingRecord]
}

func NewRatingRepositoryAdapter(store kvstore.Store, maxRetries int) *RatingRepositoryAdapter {
	return &RatingRepositoryAdapter{col: NewCollection[ratingRecord](store, KeyRatings, maxRetries)}
}

func (r *RatingRepositoryAdapter) Append(ctx context.Context, rating *entity.Rating) error {
	_, err := r.col.Update(ctx, func(records []ratingRecord) ([]ratingRecord, error) {
		return append(records, newRatingRecord(rating)), nil
	})
	return err
}

func (r *RatingRepositoryAdapter) FindByPartner(ctx context.Context, partnerEmail string) ([]*entity.Rating, error) {
	result := []*entity.Rating{}
	for _, rec := range r.col.Read(ctx) {
		if rec.PartnerEmail == partnerEmail {
			result = append(result, rec.toEntity())
		}
	}
	return result, nil
}
