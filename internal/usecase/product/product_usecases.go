package product

import (
	"context"

	"github.com/recyhub/recy-backend/internal/domain/entity"
	"github.com/recyhub/recy-backend/internal/domain/repository"
	"github.com/recyhub/recy-backend/internal/events"
)

type PostProductInput struct {
	UpcyclerEmail string
	ResourceID    string
	Title         string
	Images        []string
	Steps         []string
	Price         float64
}

type PostProductUseCase struct {
	productRepo repository.ProductRepository
	publisher   events.Publisher
}

func NewPostProductUseCase(productRepo repository.ProductRepository, publisher events.Publisher) *PostProductUseCase {
	return &PostProductUseCase{productRepo: productRepo, publisher: publisher}
}

func (uc *PostProductUseCase) Execute(ctx context.Context, in PostProductInput) (*entity.Product, error) {
	p, err := entity.NewProduct(in.UpcyclerEmail, in.ResourceID, in.Title, in.Images, in.Steps, in.Price)
	if err != nil {
		return nil, err
	}
	if err := uc.productRepo.Create(ctx, p); err != nil {
		return nil, err
	}
	uc.publisher.Publish(events.ProductPosted, p.Snapshot())
	return p, nil
}

type ListProductsUseCase struct {
	productRepo repository.ProductRepository
}

func NewListProductsUseCase(productRepo repository.ProductRepository) *ListProductsUseCase {
	return &ListProductsUseCase{productRepo: productRepo}
}

// Execute возвращает все изделия или изделия одного апсайклера, если email задан.
func (uc *ListProductsUseCase) Execute(ctx context.Context, upcyclerEmail string) ([]*entity.Product, error) {
	if upcyclerEmail == "" {
		return uc.productRepo.List(ctx)
	}
	return uc.productRepo.FindByUpcycler(ctx, upcyclerEmail)
}
