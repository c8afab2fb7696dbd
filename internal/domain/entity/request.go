package entity

import (
	"time"

	"github.com/recyhub/recy-backend/internal/domain/valueobject"
	"github.com/recyhub/recy-backend/internal/pkg/idgen"
)

// Request — заявка апсайклера на ресурс донора.
type Request struct {
	ID             string
	ResourceID     string
	UpcyclerEmail  string
	Reason         string
	Idea           string
	When           string
	Status         valueobject.RequestStatus
	CreatedAt      time.Time
	DecisionReason *string
	DecisionAt     *time.Time
}

func NewRequest(resourceID, upcyclerEmail, reason, idea, when string) *Request {
	return &Request{
		ID:            idgen.NextID(idgen.KindRequest),
		ResourceID:    resourceID,
		UpcyclerEmail: upcyclerEmail,
		Reason:        reason,
		Idea:          idea,
		When:          when,
		Status:        valueobject.RequestStatusPending,
		CreatedAt:     time.Now(),
	}
}

// Decide фиксирует решение донора. Законность перехода проверяет вызывающий код.
func (r *Request) Decide(status valueobject.RequestStatus, reason string) {
	now := time.Now()
	r.Status = status
	r.DecisionReason = &reason
	r.DecisionAt = &now
}

func (r *Request) IsPending() bool {
	return r.Status == valueobject.RequestStatusPending
}

// Snapshot — независимая копия заявки.
func (r *Request) Snapshot() Request {
	out := *r
	if r.DecisionReason != nil {
		reason := *r.DecisionReason
		out.DecisionReason = &reason
	}
	if r.DecisionAt != nil {
		at := *r.DecisionAt
		out.DecisionAt = &at
	}
	return out
}
