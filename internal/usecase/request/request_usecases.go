package request

import (
	"context"

	"github.com/recyhub/recy-backend/internal/domain/entity"
	"github.com/recyhub/recy-backend/internal/domain/repository"
	"github.com/recyhub/recy-backend/internal/domain/valueobject"
	"github.com/recyhub/recy-backend/internal/events"
	"github.com/recyhub/recy-backend/internal/pkg/apperror"
)

type RequestResourceInput struct {
	ResourceID    string
	UpcyclerEmail string
	Reason        string
	Idea          string
	When          string
}

type RequestResourceUseCase struct {
	requestRepo  repository.RequestRepository
	resourceRepo repository.ResourceRepository
	publisher    events.Publisher
	strict       bool
}

// NewRequestResourceUseCase создаёт use case. В strict режиме ресурс должен существовать.
func NewRequestResourceUseCase(requestRepo repository.RequestRepository, resourceRepo repository.ResourceRepository, publisher events.Publisher, strict bool) *RequestResourceUseCase {
	return &RequestResourceUseCase{
		requestRepo:  requestRepo,
		resourceRepo: resourceRepo,
		publisher:    publisher,
		strict:       strict,
	}
}

func (uc *RequestResourceUseCase) Execute(ctx context.Context, in RequestResourceInput) (*entity.Request, error) {
	if uc.strict {
		if _, err := uc.resourceRepo.FindByID(ctx, in.ResourceID); err != nil {
			if apperror.IsNotFound(err) {
				return nil, apperror.Wrap(err, apperror.ErrCodeValidation, "заявка ссылается на несуществующий ресурс")
			}
			return nil, err
		}
	}

	req := entity.NewRequest(in.ResourceID, in.UpcyclerEmail, in.Reason, in.Idea, in.When)
	if err := uc.requestRepo.Create(ctx, req); err != nil {
		return nil, err
	}
	uc.publisher.Publish(events.ResourceRequested, req.Snapshot())
	return req, nil
}

type ListRequestsForDonorUseCase struct {
	requestRepo  repository.RequestRepository
	resourceRepo repository.ResourceRepository
}

func NewListRequestsForDonorUseCase(requestRepo repository.RequestRepository, resourceRepo repository.ResourceRepository) *ListRequestsForDonorUseCase {
	return &ListRequestsForDonorUseCase{requestRepo: requestRepo, resourceRepo: resourceRepo}
}

// Execute возвращает заявки на ресурсы донора. Набор ресурсов пересчитывается при каждом вызове.
func (uc *ListRequestsForDonorUseCase) Execute(ctx context.Context, donorEmail string) ([]*entity.Request, error) {
	owned, err := uc.resourceRepo.FindByDonor(ctx, donorEmail)
	if err != nil {
		return nil, err
	}
	ids := make([]string, len(owned))
	for i, res := range owned {
		ids[i] = res.ID
	}
	return uc.requestRepo.FindByResourceIDs(ctx, ids)
}

type ListRequestsForUpcyclerUseCase struct {
	requestRepo repository.RequestRepository
}

func NewListRequestsForUpcyclerUseCase(requestRepo repository.RequestRepository) *ListRequestsForUpcyclerUseCase {
	return &ListRequestsForUpcyclerUseCase{requestRepo: requestRepo}
}

func (uc *ListRequestsForUpcyclerUseCase) Execute(ctx context.Context, upcyclerEmail string) ([]*entity.Request, error) {
	return uc.requestRepo.FindByUpcycler(ctx, upcyclerEmail)
}

type UpdateRequestStatusUseCase struct {
	requestRepo repository.RequestRepository
	publisher   events.Publisher
	strict      bool
}

// NewUpdateRequestStatusUseCase создаёт use case. В strict режиме решение принимается один раз
// и только accepted/rejected.
func NewUpdateRequestStatusUseCase(requestRepo repository.RequestRepository, publisher events.Publisher, strict bool) *UpdateRequestStatusUseCase {
	return &UpdateRequestStatusUseCase{requestRepo: requestRepo, publisher: publisher, strict: strict}
}

func (uc *UpdateRequestStatusUseCase) Execute(ctx context.Context, requestID, status, reason string) (*entity.Request, error) {
	newStatus, err := valueobject.NewRequestStatus(status)
	if err != nil {
		return nil, err
	}
	if uc.strict && !newStatus.IsDecision() {
		return nil, apperror.New(apperror.ErrCodeValidation, "решение может быть только accepted или rejected")
	}

	req, err := uc.requestRepo.Update(ctx, requestID, func(r *entity.Request) error {
		if uc.strict && !r.IsPending() {
			return apperror.New(apperror.ErrCodeConflict, "по заявке уже принято решение")
		}
		r.Decide(newStatus, reason)
		return nil
	})
	if err != nil {
		return nil, err
	}
	uc.publisher.Publish(events.RequestUpdated, req.Snapshot())
	return req, nil
}
