package resource

import (
	"context"
	"sort"

	"github.com/recyhub/recy-backend/internal/domain/entity"
	"github.com/recyhub/recy-backend/internal/domain/repository"
	"github.com/recyhub/recy-backend/internal/domain/valueobject"
	"github.com/recyhub/recy-backend/internal/events"
	"github.com/recyhub/recy-backend/internal/pkg/apperror"
)

type AddResourceUseCase struct {
	resourceRepo repository.ResourceRepository
	publisher    events.Publisher
}

func NewAddResourceUseCase(resourceRepo repository.ResourceRepository, publisher events.Publisher) *AddResourceUseCase {
	return &AddResourceUseCase{resourceRepo: resourceRepo, publisher: publisher}
}

func (uc *AddResourceUseCase) Execute(ctx context.Context, fields entity.ResourceFields) (*entity.Resource, error) {
	res := entity.NewResource(fields)
	if err := uc.resourceRepo.Create(ctx, res); err != nil {
		return nil, err
	}
	uc.publisher.Publish(events.ResourceAdded, res.Snapshot())
	return res, nil
}

type ListResourcesUseCase struct {
	resourceRepo repository.ResourceRepository
}

func NewListResourcesUseCase(resourceRepo repository.ResourceRepository) *ListResourcesUseCase {
	return &ListResourcesUseCase{resourceRepo: resourceRepo}
}

// Execute возвращает всю коллекцию, новые первыми. Фильтрует вызывающий код.
func (uc *ListResourcesUseCase) Execute(ctx context.Context) ([]*entity.Resource, error) {
	return uc.resourceRepo.List(ctx)
}

type GetResourceUseCase struct {
	resourceRepo repository.ResourceRepository
}

func NewGetResourceUseCase(resourceRepo repository.ResourceRepository) *GetResourceUseCase {
	return &GetResourceUseCase{resourceRepo: resourceRepo}
}

func (uc *GetResourceUseCase) Execute(ctx context.Context, id string) (*entity.Resource, error) {
	return uc.resourceRepo.FindByID(ctx, id)
}

type CompleteResourceUseCase struct {
	resourceRepo repository.ResourceRepository
	publisher    events.Publisher
}

func NewCompleteResourceUseCase(resourceRepo repository.ResourceRepository, publisher events.Publisher) *CompleteResourceUseCase {
	return &CompleteResourceUseCase{resourceRepo: resourceRepo, publisher: publisher}
}

// Execute помечает ресурс завершённым. Повторный вызов заново проставляет CompletedAt.
func (uc *CompleteResourceUseCase) Execute(ctx context.Context, id string) (*entity.Resource, error) {
	res, err := uc.resourceRepo.Update(ctx, id, func(r *entity.Resource) error {
		r.Complete()
		return nil
	})
	if err != nil {
		return nil, err
	}
	uc.publisher.Publish(events.ResourceCompleted, res.Snapshot())
	return res, nil
}

// NearbyResource — ресурс и расстояние до него от точки поиска.
type NearbyResource struct {
	Resource   *entity.Resource
	DistanceKm float64
}

type ListResourcesNearUseCase struct {
	resourceRepo repository.ResourceRepository
}

func NewListResourcesNearUseCase(resourceRepo repository.ResourceRepository) *ListResourcesNearUseCase {
	return &ListResourcesNearUseCase{resourceRepo: resourceRepo}
}

// Execute возвращает ресурсы с координатами в радиусе radiusKm, ближайшие первыми.
func (uc *ListResourcesNearUseCase) Execute(ctx context.Context, center valueobject.Location, radiusKm float64) ([]NearbyResource, error) {
	if radiusKm <= 0 {
		return nil, apperror.New(apperror.ErrCodeValidation, "радиус должен быть положительным")
	}

	all, err := uc.resourceRepo.List(ctx)
	if err != nil {
		return nil, err
	}

	result := []NearbyResource{}
	for _, res := range all {
		if res.Location == nil {
			continue
		}
		if d := center.DistanceKm(*res.Location); d <= radiusKm {
			result = append(result, NearbyResource{Resource: res, DistanceKm: d})
		}
	}

	sort.SliceStable(result, func(i, j int) bool {
		return result[i].DistanceKm < result[j].DistanceKm
	})
	return result, nil
}
