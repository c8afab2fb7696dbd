package dto

import (
	"time"

	"github.com/recyhub/recy-backend/internal/domain/entity"
	"github.com/recyhub/recy-backend/internal/domain/valueobject"
	"github.com/recyhub/recy-backend/internal/usecase/resource"
)

type CreateResourceRequest struct {
	DonorEmail string   `json:"donorEmail" binding:"required,email_loose"`
	Title      string   `json:"title" binding:"required,max=200"`
	Type       string   `json:"type" binding:"omitempty,resource_type"`
	Qty        float64  `json:"qty" binding:"gte=0"`
	Condition  string   `json:"condition" binding:"max=100"`
	Image      string   `json:"image"`
	Lat        *float64 `json:"lat" binding:"omitempty,latitude"`
	Lng        *float64 `json:"lng" binding:"omitempty,longitude"`
}

// Fields переводит запрос в поля ресурса. Координаты учитываются только парой.
func (r CreateResourceRequest) Fields() (entity.ResourceFields, error) {
	fields := entity.ResourceFields{
		DonorEmail: r.DonorEmail,
		Title:      r.Title,
		Type:       r.Type,
		Qty:        r.Qty,
		Condition:  r.Condition,
		Image:      r.Image,
	}
	if r.Lat != nil && r.Lng != nil {
		loc, err := valueobject.NewLocation(*r.Lat, *r.Lng)
		if err != nil {
			return entity.ResourceFields{}, err
		}
		fields.Location = &loc
	}
	return fields, nil
}

type ResourceResponse struct {
	ID          string     `json:"id"`
	DonorEmail  string     `json:"donorEmail"`
	Title       string     `json:"title"`
	Type        string     `json:"type"`
	Qty         float64    `json:"qty"`
	Condition   string     `json:"condition"`
	Image       string     `json:"image,omitempty"`
	Lat         *float64   `json:"lat,omitempty"`
	Lng         *float64   `json:"lng,omitempty"`
	Status      string     `json:"status"`
	CreatedAt   time.Time  `json:"createdAt"`
	CompletedAt *time.Time `json:"completedAt,omitempty"`
}

type NearbyResourceResponse struct {
	ResourceResponse
	DistanceKm float64 `json:"distanceKm"`
}

func ToResourceResponse(r *entity.Resource) ResourceResponse {
	resp := ResourceResponse{
		ID:          r.ID,
		DonorEmail:  r.DonorEmail,
		Title:       r.Title,
		Type:        r.Type,
		Qty:         r.Qty,
		Condition:   r.Condition,
		Image:       r.Image,
		Status:      string(r.Status),
		CreatedAt:   r.CreatedAt,
		CompletedAt: r.CompletedAt,
	}
	if r.Location != nil {
		lat, lng := r.Location.Lat, r.Location.Lng
		resp.Lat = &lat
		resp.Lng = &lng
	}
	return resp
}

func ToResourceResponses(list []*entity.Resource) []ResourceResponse {
	result := make([]ResourceResponse, len(list))
	for i, r := range list {
		result[i] = ToResourceResponse(r)
	}
	return result
}

func ToNearbyResourceResponses(list []resource.NearbyResource) []NearbyResourceResponse {
	result := make([]NearbyResourceResponse, len(list))
	for i, n := range list {
		result[i] = NearbyResourceResponse{
			ResourceResponse: ToResourceResponse(n.Resource),
			DistanceKm:       n.DistanceKm,
		}
	}
	return result
}
