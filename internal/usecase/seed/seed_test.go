package seed_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/recyhub/recy-backend/internal/events"
	"github.com/recyhub/recy-backend/internal/infrastructure/kvstore"
	"github.com/recyhub/recy-backend/internal/infrastructure/persistence"
	"github.com/recyhub/recy-backend/internal/usecase/chat"
	"github.com/recyhub/recy-backend/internal/usecase/impact"
	"github.com/recyhub/recy-backend/internal/usecase/product"
	"github.com/recyhub/recy-backend/internal/usecase/request"
	"github.com/recyhub/recy-backend/internal/usecase/resource"
	"github.com/recyhub/recy-backend/internal/usecase/seed"
)

func TestDemoSeed(t *testing.T) {
	store := kvstore.NewMemoryStore()
	resources := persistence.NewResourceRepositoryAdapter(store, 0)
	requests := persistence.NewRequestRepositoryAdapter(store, 0)
	chats := persistence.NewChatRoomRepositoryAdapter(store, 0)
	products := persistence.NewProductRepositoryAdapter(store, 0)
	ratings := persistence.NewRatingRepositoryAdapter(store, 0)
	n := events.NewNotifier()
	var names []events.Name
	n.SubscribeAll(func(e events.Event) { names = append(names, e.Name) })

	uc := seed.NewDemoSeedUseCase(
		resource.NewAddResourceUseCase(resources, n),
		resource.NewCompleteResourceUseCase(resources, n),
		request.NewRequestResourceUseCase(requests, resources, n, true),
		request.NewUpdateRequestStatusUseCase(requests, n, true),
		chat.NewCreateChatRoomUseCase(chats, n),
		chat.NewPostMessageUseCase(chats, n, true),
		product.NewPostProductUseCase(products, n),
		impact.NewRateUseCase(ratings, n, true),
	)

	result, err := uc.Execute(context.Background())
	require.NoError(t, err)
	assert.Len(t, result.ResourceIDs, 5)

	ctx := context.Background()
	forDonor, err := request.NewListRequestsForDonorUseCase(requests, resources).Execute(ctx, seed.DemoDonor)
	require.NoError(t, err)
	require.Len(t, forDonor, 1)
	assert.Equal(t, "accepted", string(forDonor[0].Status))

	room, err := chats.FindByID(ctx, result.ChatID)
	require.NoError(t, err)
	assert.Len(t, room.Messages, 2)

	score, err := impact.NewComputeImpactUseCase(resources).Execute(ctx, result.ResourceIDs[1])
	require.NoError(t, err)
	assert.Equal(t, 18.0, score.Score)

	assert.Equal(t, events.ResourceAdded, names[0])
	assert.Equal(t, events.RatingPosted, names[len(names)-1])
}
