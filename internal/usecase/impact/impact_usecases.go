package impact

import (
	"context"
	"math"

	"github.com/recyhub/recy-backend/internal/domain/entity"
	"github.com/recyhub/recy-backend/internal/domain/repository"
	"github.com/recyhub/recy-backend/internal/events"
	"github.com/recyhub/recy-backend/internal/pkg/apperror"
)

const (
	defaultBase          = 1.0
	maxQtyFactor         = 10.0
	completionMultiplier = 1.5
)

var baseByType = map[string]float64{
	"fabric":  2,
	"wood":    3,
	"glass":   2,
	"plastic": 1.5,
	"tools":   2.5,
}

// Score считает условный показатель пользы ресурса с точностью до одного знака.
func Score(res *entity.Resource) float64 {
	base, ok := baseByType[res.NormalizedType()]
	if !ok {
		base = defaultBase
	}

	qty := res.Qty
	if qty == 0 || math.IsNaN(qty) {
		qty = 1
	}
	qty = math.Min(maxQtyFactor, qty)

	mult := 1.0
	if res.IsCompleted() {
		mult = completionMultiplier
	}
	return roundOne(base * qty * mult)
}

// roundOne округляет половину вверх, как в клиентском коде.
func roundOne(x float64) float64 {
	return math.Floor(x*10+0.5) / 10
}

type ImpactResult struct {
	ResourceID string
	Score      float64
}

type ComputeImpactUseCase struct {
	resourceRepo repository.ResourceRepository
}

func NewComputeImpactUseCase(resourceRepo repository.ResourceRepository) *ComputeImpactUseCase {
	return &ComputeImpactUseCase{resourceRepo: resourceRepo}
}

func (uc *ComputeImpactUseCase) Execute(ctx context.Context, resourceID string) (ImpactResult, error) {
	res, err := uc.resourceRepo.FindByID(ctx, resourceID)
	if err != nil {
		return ImpactResult{}, err
	}
	return ImpactResult{ResourceID: res.ID, Score: Score(res)}, nil
}

type DonorImpact struct {
	DonorEmail string
	Total      float64
	Resources  []ImpactResult
}

type ComputeDonorImpactUseCase struct {
	resourceRepo repository.ResourceRepository
}

func NewComputeDonorImpactUseCase(resourceRepo repository.ResourceRepository) *ComputeDonorImpactUseCase {
	return &ComputeDonorImpactUseCase{resourceRepo: resourceRepo}
}

// Execute суммирует показатели всех ресурсов донора.
func (uc *ComputeDonorImpactUseCase) Execute(ctx context.Context, donorEmail string) (DonorImpact, error) {
	owned, err := uc.resourceRepo.FindByDonor(ctx, donorEmail)
	if err != nil {
		return DonorImpact{}, err
	}

	out := DonorImpact{DonorEmail: donorEmail, Resources: make([]ImpactResult, 0, len(owned))}
	for _, res := range owned {
		score := Score(res)
		out.Resources = append(out.Resources, ImpactResult{ResourceID: res.ID, Score: score})
		out.Total += score
	}
	out.Total = roundOne(out.Total)
	return out, nil
}

type RateInput struct {
	PartnerEmail string
	ByEmail      string
	Rating       float64
	Comment      string
}

type RateUseCase struct {
	ratingRepo repository.RatingRepository
	publisher  events.Publisher
	strict     bool
}

// NewRateUseCase создаёт use case. В strict режиме оценка должна быть в диапазоне 1..5.
func NewRateUseCase(ratingRepo repository.RatingRepository, publisher events.Publisher, strict bool) *RateUseCase {
	return &RateUseCase{ratingRepo: ratingRepo, publisher: publisher, strict: strict}
}

func (uc *RateUseCase) Execute(ctx context.Context, in RateInput) (*entity.Rating, error) {
	rating := entity.NewRating(in.PartnerEmail, in.ByEmail, in.Rating, in.Comment)
	if uc.strict && !rating.InBounds() {
		return nil, apperror.New(apperror.ErrCodeValidation, "оценка должна быть от 1 до 5")
	}
	if err := uc.ratingRepo.Append(ctx, rating); err != nil {
		return nil, err
	}
	uc.publisher.Publish(events.RatingPosted, *rating)
	return rating, nil
}

type ListRatingsUseCase struct {
	ratingRepo repository.RatingRepository
}

func NewListRatingsUseCase(ratingRepo repository.RatingRepository) *ListRatingsUseCase {
	return &ListRatingsUseCase{ratingRepo: ratingRepo}
}

// Execute возвращает журнал оценок партнёра без агрегирования.
func (uc *ListRatingsUseCase) Execute(ctx context.Context, partnerEmail string) ([]*entity.Rating, error) {
	return uc.ratingRepo.FindByPartner(ctx, partnerEmail)
}
