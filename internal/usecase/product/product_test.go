package product_test

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
	"github.com/recyhub/recy-backend/internal/usecase/product"
)

func TestPostProduct_ThenList(t *testing.T) {
	repo := persistence.NewProductRepositoryAdapter(kvstore.NewMemoryStore(), 0)
	n := events.NewNotifier()
	ctx := context.Background()
	var posted []entity.Product
	events.On(n, events.ProductPosted, func(p entity.Product) { posted = append(posted, p) })

	post := product.NewPostProductUseCase(repo, n)
	lamp, err := post.Execute(ctx, product.PostProductInput{
		UpcyclerEmail: "maker@example.com",
		ResourceID:    "res_1_0a0a0a0a",
		Title:         "Лампа из бутылки",
		Images:        []string{"/uploads/lamp.jpg"},
		Steps:         []string{"вырезать", "собрать"},
		Price:         1200,
	})
	require.NoError(t, err)
	shelf, err := post.Execute(ctx, product.PostProductInput{UpcyclerEmail: "other@example.com", Title: "Полка"})
	require.NoError(t, err)
	assert.Empty(t, shelf.Images)
	assert.Empty(t, shelf.Steps)

	list := product.NewListProductsUseCase(repo)
	all, err := list.Execute(ctx, "")
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, shelf.ID, all[0].ID)

	mine, err := list.Execute(ctx, "maker@example.com")
	require.NoError(t, err)
	require.Len(t, mine, 1)
	assert.Equal(t, lamp.ID, mine[0].ID)
	assert.Equal(t, []string{"вырезать", "собрать"}, mine[0].Steps)

	require.Len(t, posted, 2)
	assert.Equal(t, lamp.ID, posted[0].ID)
}

func TestPostProduct_NegativePrice(t *testing.T) {
	repo := persistence.NewProductRepositoryAdapter(kvstore.NewMemoryStore(), 0)
	n := events.NewNotifier()
	emitted := 0
	n.SubscribeAll(func(events.Event) { emitted++ })

	_, err := product.NewPostProductUseCase(repo, n).Execute(context.Background(), product.PostProductInput{Title: "x", Price: -1})

	assert.True(t, apperror.IsValidation(err))
	assert.Zero(t, emitted)
	all, err := repo.List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, all)
}
