package persistence

import (
	"context"

	"github.com/recyhub/recy-backend/internal/domain/entity"
	"github.com/recyhub/recy-backend/internal/infrastructure/kvstore"
	"github.com/recyhub/recy-backend/internal/pkg/apperror"
)

type ResourceRepositoryAdapter struct {
	col *Collection[resourceRecord]
}

func NewResourceRepositoryAdapter(store kvstore.Store, maxRetries int) *ResourceRepositoryAdapter {
	return &ResourceRepositoryAdapter{col: NewCollection[resourceRecord](store, KeyResources, maxRetries)}
}

func (r *ResourceRepositoryAdapter) Create(ctx context.Context, resource *entity.Resource) error {
	_, err := r.col.Update(ctx, func(records []resourceRecord) ([]resourceRecord, error) {
		return append([]resourceRecord{newResourceRecord(resource)}, records...), nil
	})
	return err
}

func (r *ResourceRepositoryAdapter) Update(ctx context.Context, id string, fn func(*entity.Resource) error) (*entity.Resource, error) {
	var updated *entity.Resource
	_, err := r.col.Update(ctx, func(records []resourceRecord) ([]resourceRecord, error) {
		for i := range records {
			if records[i].ID != id {
				continue
			}
			res := records[i].toEntity()
			if err := fn(res); err != nil {
				return nil, err
			}
			records[i] = newResourceRecord(res)
			updated = res
			return records, nil
		}
		return nil, apperror.ErrResourceNotFound
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

func (r *ResourceRepositoryAdapter) FindByID(ctx context.Context, id string) (*entity.Resource, error) {
	for _, rec := range r.col.Read(ctx) {
		if rec.ID == id {
			return rec.toEntity(), nil
		}
	}
	return nil, apperror.ErrResourceNotFound
}

func (r *ResourceRepositoryAdapter) FindByDonor(ctx context.Context, donorEmail string) ([]*entity.Resource, error) {
	result := []*entity.Resource{}
	for _, rec := range r.col.Read(ctx) {
		if rec.DonorEmail == donorEmail {
			result = append(result, rec.toEntity())
		}
	}
	return result, nil
}

func (r *ResourceRepositoryAdapter) List(ctx context.Context) ([]*entity.Resource, error) {
	records := r.col.Read(ctx)
	result := make([]*entity.Resource, len(records))
	for i := range records {
		result[i] = records[i].toEntity()
	}
	return result, nil
}
