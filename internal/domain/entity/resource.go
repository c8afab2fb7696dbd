package entity

import (
	"strings"
	"time"

	"github.com/recyhub/recy-backend/internal/domain/valueobject"
	"github.com/recyhub/recy-backend/internal/pkg/idgen"
)

type Resource struct {
	ID          string
	DonorEmail  string
	Title       string
	Type        string
	Qty         float64
	Condition   string
	Image       string
	Location    *valueobject.Location
	Status      valueobject.ResourceStatus
	CreatedAt   time.Time
	CompletedAt *time.Time
}

// ResourceFields — данные, которые задаёт донор при публикации ресурса.
type ResourceFields struct {
	DonorEmail string
	Title      string
	Type       string
	Qty        float64
	Condition  string
	Image      string
	Location   *valueobject.Location
}

func NewResource(f ResourceFields) *Resource {
	return &Resource{
		ID:         idgen.NextID(idgen.KindResource),
		DonorEmail: f.DonorEmail,
		Title:      f.Title,
		Type:       f.Type,
		Qty:        f.Qty,
		Condition:  f.Condition,
		Image:      f.Image,
		Location:   f.Location,
		Status:     valueobject.ResourceStatusAvailable,
		CreatedAt:  time.Now(),
	}
}

// Complete переводит ресурс в completed. Повторный вызов обновляет CompletedAt.
func (r *Resource) Complete() {
	now := time.Now()
	r.Status = valueobject.ResourceStatusCompleted
	r.CompletedAt = &now
}

// Snapshot — независимая копия ресурса: указатели не разделяются с оригиналом.
func (r *Resource) Snapshot() Resource {
	out := *r
	if r.Location != nil {
		loc := *r.Location
		out.Location = &loc
	}
	if r.CompletedAt != nil {
		at := *r.CompletedAt
		out.CompletedAt = &at
	}
	return out
}

func (r *Resource) IsCompleted() bool {
	return r.Status == valueobject.ResourceStatusCompleted
}

func (r *Resource) IsOwnedBy(email string) bool {
	return r.DonorEmail == email
}

// NormalizedType — тип в нижнем регистре; пустой тип считается пластиком.
func (r *Resource) NormalizedType() string {
	t := strings.ToLower(strings.TrimSpace(r.Type))
	if t == "" {
		return "plastic"
	}
	return t
}
