package persistence

import (
	"time"

	"github.com/recyhub/recy-backend/internal/domain/entity"
	"github.com/recyhub/recy-backend/internal/domain/valueobject"
)

type resourceRecord struct {
	ID          string     `json:"id"`
	DonorEmail  string     `json:"donorEmail"`
	Title       string     `json:"title"`
	Type        string     `json:"type"`
	Qty         float64    `json:"qty"`
	Condition   string     `json:"condition"`
	Image       string     `json:"image,omitempty"`
	Lat         *float64   `json:"lat,omitempty"`
	Lng         *float64   `json:"lng,omitempty"`
	CreatedAt   time.Time  `json:"createdAt"`
	Status      string     `json:"status"`
	CompletedAt *time.Time `json:"completedAt,omitempty"`
}

func newResourceRecord(r *entity.Resource) resourceRecord {
	rec := resourceRecord{
		ID:          r.ID,
		DonorEmail:  r.DonorEmail,
		Title:       r.Title,
		Type:        r.Type,
		Qty:         r.Qty,
		Condition:   r.Condition,
		Image:       r.Image,
		CreatedAt:   r.CreatedAt,
		Status:      string(r.Status),
		CompletedAt: r.CompletedAt,
	}
	if r.Location != nil {
		lat, lng := r.Location.Lat, r.Location.Lng
		rec.Lat, rec.Lng = &lat, &lng
	}
	return rec
}

func (rec *resourceRecord) toEntity() *entity.Resource {
	r := &entity.Resource{
		ID:          rec.ID,
		DonorEmail:  rec.DonorEmail,
		Title:       rec.Title,
		Type:        rec.Type,
		Qty:         rec.Qty,
		Condition:   rec.Condition,
		Image:       rec.Image,
		CreatedAt:   rec.CreatedAt,
		Status:      valueobject.ResourceStatus(rec.Status),
		CompletedAt: rec.CompletedAt,
	}
	if rec.Lat != nil && rec.Lng != nil {
		r.Location = &valueobject.Location{Lat: *rec.Lat, Lng: *rec.Lng}
	}
	return r
}

type requestRecord struct {
	ID             string     `json:"id"`
	ResourceID     string     `json:"resourceId"`
	UpcyclerEmail  string     `json:"upcyclerEmail"`
	Reason         string     `json:"reason"`
	Idea           string     `json:"idea"`
	When           string     `json:"when"`
	Status         string     `json:"status"`
	CreatedAt      time.Time  `json:"createdAt"`
	DecisionReason *string    `json:"decisionReason,omitempty"`
	DecisionAt     *time.Time `json:"decisionAt,omitempty"`
}

func newRequestRecord(r *entity.Request) requestRecord {
	return requestRecord{
		ID:             r.ID,
		ResourceID:     r.ResourceID,
		UpcyclerEmail:  r.UpcyclerEmail,
		Reason:         r.Reason,
		Idea:           r.Idea,
		When:           r.When,
		Status:         string(r.Status),
		CreatedAt:      r.CreatedAt,
		DecisionReason: r.DecisionReason,
		DecisionAt:     r.DecisionAt,
	}
}

func (rec *requestRecord) toEntity() *entity.Request {
	return &entity.Request{
		ID:             rec.ID,
		ResourceID:     rec.ResourceID,
		UpcyclerEmail:  rec.UpcyclerEmail,
		Reason:         rec.Reason,
		Idea:           rec.Idea,
		When:           rec.When,
		Status:         valueobject.RequestStatus(rec.Status),
		CreatedAt:      rec.CreatedAt,
		DecisionReason: rec.DecisionReason,
		DecisionAt:     rec.DecisionAt,
	}
}

type messageRecord struct {
	ID     string    `json:"id,omitempty"`
	From   string    `json:"from"`
	Text   string    `json:"text"`
	TS     time.Time `json:"ts"`
	Status string    `json:"status,omitempty"`
}

type chatRoomRecord struct {
	ID           string          `json:"id"`
	ResourceID   string          `json:"resourceId,omitempty"`
	Participants []string        `json:"participants"`
	Messages     []messageRecord `json:"messages"`
	CreatedAt    time.Time       `json:"createdAt"`
}

func newChatRoomRecord(c *entity.ChatRoom) chatRoomRecord {
	msgs := make([]messageRecord, len(c.Messages))
	for i, m := range c.Messages {
		msgs[i] = messageRecord{ID: m.ID, From: m.From, Text: m.Text, TS: m.TS, Status: string(m.Status)}
	}
	return chatRoomRecord{
		ID:           c.ID,
		ResourceID:   c.ResourceID,
		Participants: []string{c.Participants[0], c.Participants[1]},
		Messages:     msgs,
		CreatedAt:    c.CreatedAt,
	}
}

func (rec *chatRoomRecord) toEntity() *entity.ChatRoom {
	c := &entity.ChatRoom{
		ID:         rec.ID,
		ResourceID: rec.ResourceID,
		Messages:   make([]entity.Message, len(rec.Messages)),
		CreatedAt:  rec.CreatedAt,
	}
	copy(c.Participants[:], rec.Participants)
	for i, m := range rec.Messages {
		status := valueobject.DeliveryStatus(m.Status)
		if status == "" {
			status = valueobject.DeliveryStatusSent
		}
		c.Messages[i] = entity.Message{ID: m.ID, From: m.From, Text: m.Text, TS: m.TS, Status: status}
	}
	return c
}

func (rec *chatRoomRecord) hasParticipant(email string) bool {
	for _, p := range rec.Participants {
		if p == email {
			return true
		}
	}
	return false
}

type productRecord struct {
	ID            string    `json:"id"`
	UpcyclerEmail string    `json:"upcyclerEmail"`
	ResourceID    string    `json:"resourceId"`
	Title         string    `json:"title"`
	Images        []string  `json:"images"`
	Steps         []string  `json:"steps"`
	Price         float64   `json:"price"`
	CreatedAt     time.Time `json:"createdAt"`
}

func newProductRecord(p *entity.Product) productRecord {
	return productRecord{
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

func (rec *productRecord) toEntity() *entity.Product {
	return &entity.Product{
		ID:            rec.ID,
		UpcyclerEmail: rec.UpcyclerEmail,
		ResourceID:    rec.ResourceID,
		Title:         rec.Title,
		Images:        rec.Images,
		Steps:         rec.Steps,
		Price:         rec.Price,
		CreatedAt:     rec.CreatedAt,
	}
}

type ratingRecord struct {
	ID           string    `json:"id"`
	PartnerEmail string    `json:"partnerEmail"`
	ByEmail      string    `json:"byEmail"`
	Rating       float64   `json:"rating"`
	Comment      string    `json:"comment"`
	TS           time.Time `json:"ts"`
}

func newRatingRecord(r *entity.Rating) ratingRecord {
	return ratingRecord{
		ID:           r.ID,
		PartnerEmail: r.PartnerEmail,
		ByEmail:      r.ByEmail,
		Rating:       r.Rating,
		Comment:      r.Comment,
		TS:           r.TS,
	}
}

func (rec *ratingRecord) toEntity() *entity.Rating {
	return &entity.Rating{
		ID:           rec.ID,
		PartnerEmail: rec.PartnerEmail,
		ByEmail:      rec.ByEmail,
		Rating:       rec.Rating,
		Comment:      rec.Comment,
		TS:           rec.TS,
	}
}
