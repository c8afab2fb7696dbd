package impact_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/recyhub/recy-backend/internal/domain/entity"
	"github.com/recyhub/recy-backend/internal/events"
	"github.com/recyhub/recy-backend/internal/infrastructure/kvstore"
	"github.com/recyhub/recy-backend/internal/infrastructure/persistence"
	"github.com/recyhub/recy-backend/internal/pkg/apperror"
	"github.com/recyhub/recy-backend/internal/usecase/impact"
)

func TestScore(t *testing.T) {
	tests := []struct {
		name      string
		typ       string
		qty       float64
		completed bool
		want      float64
	}{
		{"wood available", "wood", 4, false, 12.0},
		{"wood completed", "wood", 4, true, 18.0},
		{"unknown type clamps qty", "unknown", 20, false, 10.0},
		{"type is case insensitive", "Fabric", 3, false, 6.0},
		{"empty type counts as plastic", "", 2, false, 3.0},
		{"zero qty counts as one", "tools", 0, false, 2.5},
		{"rounds to one decimal", "plastic", 1.1, true, 2.5},
		{"glass clamped completed", "glass", 50, true, 30.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := entity.NewResource(entity.ResourceFields{Type: tt.typ, Qty: tt.qty})
			if tt.completed {
				res.Complete()
			}
			assert.Equal(t, tt.want, impact.Score(res))
		})
	}
}

func TestComputeImpact(t *testing.T) {
	repo := persistence.NewResourceRepositoryAdapter(kvstore.NewMemoryStore(), 0)
	ctx := context.Background()
	res := entity.NewResource(entity.ResourceFields{DonorEmail: "d@example.com", Type: "wood", Qty: 4})
	require.NoError(t, repo.Create(ctx, res))

	uc := impact.NewComputeImpactUseCase(repo)
	got, err := uc.Execute(ctx, res.ID)
	require.NoError(t, err)
	assert.Equal(t, res.ID, got.ResourceID)
	assert.Equal(t, 12.0, got.Score)

	_, err = repo.Update(ctx, res.ID, func(r *entity.Resource) error {
		r.Complete()
		return nil
	})
	require.NoError(t, err)
	got, err = uc.Execute(ctx, res.ID)
	require.NoError(t, err)
	assert.Equal(t, 18.0, got.Score)

	_, err = uc.Execute(ctx, "res_1_00000000")
	assert.ErrorIs(t, err, apperror.ErrResourceNotFound)
}

func TestComputeDonorImpact(t *testing.T) {
	repo := persistence.NewResourceRepositoryAdapter(kvstore.NewMemoryStore(), 0)
	ctx := context.Background()
	require.NoError(t, repo.Create(ctx, entity.NewResource(entity.ResourceFields{DonorEmail: "d@example.com", Type: "wood", Qty: 4})))
	require.NoError(t, repo.Create(ctx, entity.NewResource(entity.ResourceFields{DonorEmail: "d@example.com", Type: "plastic", Qty: 1})))
	require.NoError(t, repo.Create(ctx, entity.NewResource(entity.ResourceFields{DonorEmail: "x@example.com", Type: "tools", Qty: 1})))

	got, err := impact.NewComputeDonorImpactUseCase(repo).Execute(ctx, "d@example.com")
	require.NoError(t, err)
	assert.Len(t, got.Resources, 2)
	assert.Equal(t, 13.5, got.Total)

	empty, err := impact.NewComputeDonorImpactUseCase(repo).Execute(ctx, "nobody@example.com")
	require.NoError(t, err)
	assert.Empty(t, empty.Resources)
	assert.Zero(t, empty.Total)
}

func TestRate(t *testing.T) {
	repo := persistence.NewRatingRepositoryAdapter(kvstore.NewMemoryStore(), 0)
	n := events.NewNotifier()
	ctx := context.Background()
	var posted []entity.Rating
	events.On(n, events.RatingPosted, func(r entity.Rating) { posted = append(posted, r) })

	permissive := impact.NewRateUseCase(repo, n, false)
	strict := impact.NewRateUseCase(repo, n, true)

	_, err := permissive.Execute(ctx, impact.RateInput{PartnerEmail: "p@example.com", ByEmail: "a@example.com", Rating: 5, Comment: "отлично"})
	require.NoError(t, err)
	_, err = permissive.Execute(ctx, impact.RateInput{PartnerEmail: "p@example.com", ByEmail: "b@example.com", Rating: 9})
	require.NoError(t, err, "без строгого режима диапазон не проверяется")

	_, err = strict.Execute(ctx, impact.RateInput{PartnerEmail: "p@example.com", ByEmail: "c@example.com", Rating: 0})
	assert.True(t, apperror.IsValidation(err))

	list, err := impact.NewListRatingsUseCase(repo).Execute(ctx, "p@example.com")
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "a@example.com", list[0].ByEmail)
	assert.Equal(t, 9.0, list[1].Rating)
	assert.Len(t, posted, 2)
}
