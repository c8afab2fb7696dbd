package entity

import (
	"time"

	"github.com/recyhub/recy-backend/internal/pkg/apperror"
	"github.com/recyhub/recy-backend/internal/pkg/idgen"
)

// Product — изделие на маркетплейсе, сделанное из полученного ресурса.
type Product struct {
	ID            string
	UpcyclerEmail string
	ResourceID    string
	Title         string
	Images        []string
	Steps         []string
	Price         float64
	CreatedAt     time.Time
}

func NewProduct(upcyclerEmail, resourceID, title string, images, steps []string, price float64) (*Product, error) {
	if price < 0 {
		return nil, apperror.New(apperror.ErrCodeValidation, "цена не может быть отрицательной")
	}
	if images == nil {
		images = []string{}
	}
	if steps == nil {
		steps = []string{}
	}
	return &Product{
		ID:            idgen.NextID(idgen.KindProduct),
		UpcyclerEmail: upcyclerEmail,
		ResourceID:    resourceID,
		Title:         title,
		Images:        images,
		Steps:         steps,
		Price:         price,
		CreatedAt:     time.Now(),
	}, nil
}

// Snapshot — копия изделия со своими срезами картинок и шагов.
func (p *Product) Snapshot() Product {
	out := *p
	out.Images = append([]string{}, p.Images...)
	out.Steps = append([]string{}, p.Steps...)
	return out
}

type Rating struct {
	ID           string
	PartnerEmail string
	ByEmail      string
	Rating       float64
	Comment      string
	TS           time.Time
}

const (
	MinRating = 1
	MaxRating = 5
)

func NewRating(partnerEmail, byEmail string, rating float64, comment string) *Rating {
	return &Rating{
		ID:           idgen.NextID(idgen.KindRating),
		PartnerEmail: partnerEmail,
		ByEmail:      byEmail,
		Rating:       rating,
		Comment:      comment,
		TS:           time.Now(),
	}
}

func (r *Rating) InBounds() bool {
	return r.Rating >= MinRating && r.Rating <= MaxRating
}
