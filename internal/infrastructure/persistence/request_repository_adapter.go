package persistence

import (
	"context"

	"github.com/recyhub/recy-backend/internal/domain/entity"
	"github.com/recyhub/recy-backend/internal/infrastructure/kvstore"
	"github.com/recyhub/recy-backend/internal/pkg/apperror"
)

type RequestRepositoryAdapter struct {
	col *Collection[requestRecord]
}

func NewRequestRepositoryAdapter(store kvstore.Store, maxRetries int) *RequestRepositoryAdapter {
	return &RequestRepositoryAdapter{col: NewCollection[requestRecord](store, KeyRequests, maxRetries)}
}

func (r *RequestRepositoryAdapter) Create(ctx context.Context, request *entity.Request) error {
	_, err := r.col.Update(ctx, func(records []requestRecord) ([]requestRecord, error) {
		return append([]requestRecord{newRequestRecord(request)}, records...), nil
	})
	return err
}

func (r *RequestRepositoryAdapter) Update(ctx context.Context, id string, fn func(*entity.Request) error) (*entity.Request, error) {
	var updated *entity.Request
	_, err := r.col.Update(ctx, func(records []requestRecord) ([]requestRecord, error) {
		for i := range records {
			if records[i].ID != id {
				continue
			}
			req := records[i].toEntity()
			if err := fn(req); err != nil {
				return nil, err
			}
			records[i] = newRequestRecord(req)
			updated = req
			return records, nil
		}
		return nil, apperror.ErrRequestNotFound
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

func (r *RequestRepositoryAdapter) FindByID(ctx context.Context, id string) (*entity.Request, error) {
	for _, rec := range r.col.Read(ctx) {
		if rec.ID == id {
			return rec.toEntity(), nil
		}
	}
	return nil, apperror.ErrRequestNotFound
}

// FindByResourceIDs возвращает заявки, чей resourceId входит в набор, в порядке хранения.
func (r *RequestRepositoryAdapter) FindByResourceIDs(ctx context.Context, resourceIDs []string) ([]*entity.Request, error) {
	set := make(map[string]struct{}, len(resourceIDs))
	for _, id := range resourceIDs {
		set[id] = struct{}{}
	}

	result := []*entity.Request{}
	for _, rec := range r.col.Read(ctx) {
		if _, ok := set[rec.ResourceID]; ok {
			result = append(result, rec.toEntity())
		}
	}
	return result, nil
}

func (r *RequestRepositoryAdapter) FindByUpcycler(ctx context.Context, upcyclerEmail string) ([]*entity.Request, error) {
	result := []*entity.Request{}
	for _, rec := range r.col.Read(ctx) {
		if rec.UpcyclerEmail == upcyclerEmail {
			result = append(result, rec.toEntity())
		}
	}
	return result, nil
}
