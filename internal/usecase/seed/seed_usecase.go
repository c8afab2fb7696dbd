package seed

import (
	"context"
	"fmt"

	"github.com/recyhub/recy-backend/internal/domain/entity"
	"github.com/recyhub/recy-backend/internal/domain/valueobject"
	"github.com/recyhub/recy-backend/internal/usecase/chat"
	"github.com/recyhub/recy-backend/internal/usecase/impact"
	"github.com/recyhub/recy-backend/internal/usecase/product"
	"github.com/recyhub/recy-backend/internal/usecase/request"
	"github.com/recyhub/recy-backend/internal/usecase/resource"
)

const (
	DemoDonor    = "donor@recy.local"
	DemoUpcycler = "maker@recy.local"
)

type demoResource struct {
	title, typ, condition string
	qty                   float64
	lat, lng              float64
}

var demoResources = []demoResource{
	{"Обрезки джинсовой ткани", "fabric", "чистые", 6, 55.7558, 37.6173},
	{"Паллеты", "wood", "б/у", 4, 55.7601, 37.6250},
	{"Стеклянные банки", "glass", "целые", 20, 55.7489, 37.6012},
	{"ПЭТ-бутылки", "plastic", "мытые", 30, 55.7702, 37.6391},
	{"Набор ручного инструмента", "tools", "рабочий", 1, 55.7420, 37.6290},
}

// Result — что создал сид.
type Result struct {
	ResourceIDs []string `json:"resourceIds"`
	RequestID   string   `json:"requestId"`
	ChatID      string   `json:"chatId"`
	ProductID   string   `json:"productId"`
	RatingID    string   `json:"ratingId"`
}

// DemoSeedUseCase проходит весь сценарий через обычные use case'ы, поэтому события тоже публикуются.
type DemoSeedUseCase struct {
	addResource   *resource.AddResourceUseCase
	complete      *resource.CompleteResourceUseCase
	requestRes    *request.RequestResourceUseCase
	updateRequest *request.UpdateRequestStatusUseCase
	createChat    *chat.CreateChatRoomUseCase
	postMessage   *chat.PostMessageUseCase
	postProduct   *product.PostProductUseCase
	rate          *impact.RateUseCase
}

func NewDemoSeedUseCase(
	addResource *resource.AddResourceUseCase,
	complete *resource.CompleteResourceUseCase,
	requestRes *request.RequestResourceUseCase,
	updateRequest *request.UpdateRequestStatusUseCase,
	createChat *chat.CreateChatRoomUseCase,
	postMessage *chat.PostMessageUseCase,
	postProduct *product.PostProductUseCase,
	rate *impact.RateUseCase,
) *DemoSeedUseCase {
	return &DemoSeedUseCase{
		addResource:   addResource,
		complete:      complete,
		requestRes:    requestRes,
		updateRequest: updateRequest,
		createChat:    createChat,
		postMessage:   postMessage,
		postProduct:   postProduct,
		rate:          rate,
	}
}

func (uc *DemoSeedUseCase) Execute(ctx context.Context) (*Result, error) {
	result := &Result{}

	for _, d := range demoResources {
		loc, err := valueobject.NewLocation(d.lat, d.lng)
		if err != nil {
			return nil, err
		}
		res, err := uc.addResource.Execute(ctx, entity.ResourceFields{
			DonorEmail: DemoDonor,
			Title:      d.title,
			Type:       d.typ,
			Qty:        d.qty,
			Condition:  d.condition,
			Location:   &loc,
		})
		if err != nil {
			return nil, fmt.Errorf("seed: ресурс %q: %w", d.title, err)
		}
		result.ResourceIDs = append(result.ResourceIDs, res.ID)
	}

	target := result.ResourceIDs[1]
	req, err := uc.requestRes.Execute(ctx, request.RequestResourceInput{
		ResourceID:    target,
		UpcyclerEmail: DemoUpcycler,
		Reason:        "делаю мебель для двора",
		Idea:          "скамейка из паллет",
		When:          "в выходные",
	})
	if err != nil {
		return nil, fmt.Errorf("seed: заявка: %w", err)
	}
	result.RequestID = req.ID

	if _, err := uc.updateRequest.Execute(ctx, req.ID, string(valueobject.RequestStatusAccepted), "забирайте в субботу"); err != nil {
		return nil, fmt.Errorf("seed: решение по заявке: %w", err)
	}

	room, err := uc.createChat.Execute(ctx, target, DemoDonor, DemoUpcycler)
	if err != nil {
		return nil, fmt.Errorf("seed: чат: %w", err)
	}
	result.ChatID = room.ID
	for _, m := range []struct{ from, text string }{
		{DemoUpcycler, "Здравствуйте! Когда удобно забрать паллеты?"},
		{DemoDonor, "В субботу после обеда."},
	} {
		if _, err := uc.postMessage.Execute(ctx, room.ID, m.from, m.text); err != nil {
			return nil, fmt.Errorf("seed: сообщение: %w", err)
		}
	}

	if _, err := uc.complete.Execute(ctx, target); err != nil {
		return nil, fmt.Errorf("seed: завершение ресурса: %w", err)
	}

	p, err := uc.postProduct.Execute(ctx, product.PostProductInput{
		UpcyclerEmail: DemoUpcycler,
		ResourceID:    target,
		Title:         "Садовая скамейка",
		Steps:         []string{"разобрать паллеты", "отшлифовать", "собрать и покрыть маслом"},
		Price:         4500,
	})
	if err != nil {
		return nil, fmt.Errorf("seed: изделие: %w", err)
	}
	result.ProductID = p.ID

	r, err := uc.rate.Execute(ctx, impact.RateInput{
		PartnerEmail: DemoDonor,
		ByEmail:      DemoUpcycler,
		Rating:       5,
		Comment:      "всё как договаривались",
	})
	if err != nil {
		return nil, fmt.Errorf("seed: оценка: %w", err)
	}
	result.RatingID = r.ID

	return result, nil
}
