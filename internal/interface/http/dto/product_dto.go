package dto

import (
	"time"

	"github.com/recyhub/recy-backend/internal/domain/entity"
	"github.com/recyhub/recy-backend/internal/usecase/impact"
)

type CreateProductRequest struct {
	UpcyclerEmail string   `json:"upcyclerEmail" binding:"required,email_loose"`
	ResourceID    string   `json:"resourceId"`
	Title         string   `json:"title" binding:"required,max=200"`
	Images        []string `json:"images" binding:"max=10"`
	Steps         []string `json:"steps" binding:"max=50"`
	Price         float64  `json:"price" binding:"gte=0"`
}

type ProductResponse struct {
	ID            string    `json:"id"`
	UpcyclerEmail string    `json:"upcyclerEmail"`
	ResourceID    string    `json:"resourceId,omitempty"`
	Title         string    `json:"title"`
	Images        []string  `json:"images"`
	Steps         []string  `json:"steps"`
	Price         float64   `json:"price"`
	CreatedAt     time.Time `json:"createdAt"`
}

func ToProductResponse(p *entity.Product) ProductResponse {
	return ProductResponse{
		ID:            p.ID,
		UpcyclerEmail: p.UpcyclerEmail,
		ResourceID:    p.ResourceID,
		Title:         p.Title,
		Images:        p.Images,
		Steps:         p.Steps,
		Price:         p.Price,
		CreatedAt:     p.CreatedAt,
	}
}

func ToProductResponses(list []*entity.Product) []ProductResponse {
	result := make([]ProductResponse, len(list))
	for i, p := range list {
		result[i] = ToProductResponse(p)
	}
	return result
}

type CreateRatingRequest struct {
	PartnerEmail string  `json:"partnerEmail" binding:"required,email_loose"`
	ByEmail      string  `json:"byEmail" binding:"required,email_loose"`
	Rating       float64 `json:"rating"`
	Comment      string  `json:"comment" binding:"max=2000"`
}

type RatingResponse struct {
	ID           string    `json:"id"`
	PartnerEmail string    `json:"partnerEmail"`
	ByEmail      string    `json:"byEmail"`
	Rating       float64   `json:"rating"`
	Comment      string    `json:"comment"`
	TS           time.Time `json:"ts"`
}

func ToRatingResponse(r *entity.Rating) RatingResponse {
	return RatingResponse{
		ID:           r.ID,
		PartnerEmail: r.PartnerEmail,
		ByEmail:      r.ByEmail,
		Rating:       r.Rating,
		Comment:      r.Comment,
		TS:           r.TS,
	}
}

func ToRatingResponses(list []*entity.Rating) []RatingResponse {
	result := make([]RatingResponse, len(list))
	for i, r := range list {
		result[i] = ToRatingResponse(r)
	}
	return result
}

type ImpactResponse struct {
	ResourceID string  `json:"resourceId"`
	Score      float64 `json:"score"`
}

type DonorImpactResponse struct {
	DonorEmail string           `json:"donorEmail"`
	Total      float64          `json:"total"`
	Resources  []ImpactResponse `json:"resources"`
}

func ToImpactResponse(r impact.ImpactResult) ImpactResponse {
	return ImpactResponse{ResourceID: r.ResourceID, Score: r.Score}
}

func ToDonorImpactResponse(d impact.DonorImpact) DonorImpactResponse {
	resources := make([]ImpactResponse, len(d.Resources))
	for i, r := range d.Resources {
		resources[i] = ToImpactResponse(r)
	}
	return DonorImpactResponse{DonorEmail: d.DonorEmail, Total: d.Total, Resources: resources}
}
