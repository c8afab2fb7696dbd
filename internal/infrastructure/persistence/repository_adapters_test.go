package persistence

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/recyhub/recy-backend/internal/domain/entity"
	"github.com/recyhub/recy-backend/internal/domain/valueobject"
	"github.com/recyhub/recy-backend/internal/infrastructure/kvstore"
	"github.com/recyhub/recy-backend/internal/pkg/apperror"
)

func TestResourceRepository_NewestFirst(t *testing.T) {
	ctx := context.Background()
	repo := NewResourceRepositoryAdapter(kvstore.NewMemoryStore(), 0)

	first := entity.NewResource(entity.ResourceFields{DonorEmail: "a@x.com", Title: "первый"})
	second := entity.NewResource(entity.ResourceFields{DonorEmail: "a@x.com", Title: "второй"})
	require.NoError(t, repo.Create(ctx, first))
	require.NoError(t, repo.Create(ctx, second))

	list, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, second.ID, list[0].ID)
	assert.Equal(t, first.ID, list[1].ID)
}

func TestResourceRepository_LocationSurvivesStorage(t *testing.T) {
	ctx := context.Background()
	repo := NewResourceRepositoryAdapter(kvstore.NewMemoryStore(), 0)

	loc, err := valueobject.NewLocation(30.0444, 31.2357)
	require.NoError(t, err)
	res := entity.NewResource(entity.ResourceFields{DonorEmail: "a@x.com", Location: &loc})
	require.NoError(t, repo.Create(ctx, res))

	found, err := repo.FindByID(ctx, res.ID)
	require.NoError(t, err)
	require.NotNil(t, found.Location)
	assert.Equal(t, loc, *found.Location)
}

func TestResourceRepository_UpdateMissing(t *testing.T) {
	repo := NewResourceRepositoryAdapter(kvstore.NewMemoryStore(), 0)

	_, err := repo.Update(context.Background(), "res_0_00000000", func(*entity.Resource) error { return nil })

	assert.ErrorIs(t, err, apperror.ErrResourceNotFound)
}

func TestRequestRepository_FindByResourceIDs(t *testing.T) {
	ctx := context.Background()
	repo := NewRequestRepositoryAdapter(kvstore.NewMemoryStore(), 0)

	q1 := entity.NewRequest("res_1", "u@x.com", "", "", "")
	q2 := entity.NewRequest("res_2", "u@x.com", "", "", "")
	q3 := entity.NewRequest("res_3", "v@x.com", "", "", "")
	for _, q := range []*entity.Request{q1, q2, q3} {
		require.NoError(t, repo.Create(ctx, q))
	}

	found, err := repo.FindByResourceIDs(ctx, []string{"res_1", "res_3"})
	require.NoError(t, err)
	require.Len(t, found, 2)
	assert.Equal(t, q3.ID, found[0].ID)
	assert.Equal(t, q1.ID, found[1].ID)

	none, err := repo.FindByResourceIDs(ctx, nil)
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestChatRoomRepository_MessagesPersistInOrder(t *testing.T) {
	ctx := context.Background()
	repo := NewChatRoomRepositoryAdapter(kvstore.NewMemoryStore(), 0)

	room := entity.NewChatRoom("res_1", "a@x.com", "b@x.com")
	require.NoError(t, repo.Create(ctx, room))

	_, err := repo.Update(ctx, room.ID, func(c *entity.ChatRoom) error {
		c.Post("a@x.com", "hi")
		c.Post("b@x.com", "yo")
		return nil
	})
	require.NoError(t, err)

	found, err := repo.FindByID(ctx, room.ID)
	require.NoError(t, err)
	require.Len(t, found.Messages, 2)
	assert.Equal(t, "hi", found.Messages[0].Text)
	assert.Equal(t, "yo", found.Messages[1].Text)
	assert.Equal(t, [2]string{"a@x.com", "b@x.com"}, found.Participants)

	mine, err := repo.FindByParticipant(ctx, "b@x.com")
	require.NoError(t, err)
	assert.Len(t, mine, 1)
}

func TestRatingRepository_AppendOnly(t *testing.T) {
	ctx := context.Background()
	repo := NewRatingRepositoryAdapter(kvstore.NewMemoryStore(), 0)

	r1 := entity.NewRating("p@x.com", "a@x.com", 5, "отлично")
	r2 := entity.NewRating("p@x.com", "b@x.com", 3, "")
	require.NoError(t, repo.Append(ctx, r1))
	require.NoError(t, repo.Append(ctx, r2))

	list, err := repo.FindByPartner(ctx, "p@x.com")
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, r1.ID, list[0].ID)
	assert.Equal(t, r2.ID, list[1].ID)
}
