package dto

import (
	"time"

	"github.com/recyhub/recy-backend/internal/domain/entity"
)

type CreateRequestRequest struct {
	ResourceID    string `json:"resourceId" binding:"required"`
	UpcyclerEmail string `json:"upcyclerEmail" binding:"required,email_loose"`
	Reason        string `json:"reason" binding:"max=2000"`
	Idea          string `json:"idea" binding:"max=2000"`
	When          string `json:"when" binding:"max=200"`
}

type UpdateRequestStatusRequest struct {
	Status string `json:"status" binding:"required,decision"`
	Reason string `json:"reason" binding:"max=2000"`
}

type RequestResponse struct {
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

func ToRequestResponse(r *entity.Request) RequestResponse {
	return RequestResponse{
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

func ToRequestResponses(list []*entity.Request) []RequestResponse {
	result := make([]RequestResponse, len(list))
	for i, r := range list {
		result[i] = ToRequestResponse(r)
	}
	return result
}
