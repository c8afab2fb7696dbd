package valueobject

import "github.com/recyhub/recy-backend/internal/pkg/apperror"

type ResourceStatus string

const (
	ResourceStatusAvailable ResourceStatus = "available"
	ResourceStatusCompleted ResourceStatus = "completed"
)

func (s ResourceStatus) IsValid() bool {
	switch s {
	case ResourceStatusAvailable, ResourceStatusCompleted:
		return true
	}
	return false
}

func NewResourceStatus(status string) (ResourceStatus, error) {
	s := ResourceStatus(status)
	if !s.IsValid() {
		return "", apperror.New(apperror.ErrCodeValidation, "некорректный статус ресурса")
	}
	return s, nil
}

type RequestStatus string

const (
	RequestStatusPending  RequestStatus = "pending"
	RequestStatusAccepted RequestStatus = "accepted"
	RequestStatusRejected RequestStatus = "rejected"
)

func (s RequestStatus) IsValid() bool {
	switch s {
	case RequestStatusPending, RequestStatusAccepted, RequestStatusRejected:
		return true
	}
	return false
}

func (s RequestStatus) IsDecision() bool {
	return s == RequestStatusAccepted || s == RequestStatusRejected
}

func NewRequestStatus(status string) (RequestStatus, error) {
	s := RequestStatus(status)
	if !s.IsValid() {
		return "", apperror.New(apperror.ErrCodeValidation, "некорректный статус заявки")
	}
	return s, nil
}

// DeliveryStatus — состояние доставки сообщения чата.
type DeliveryStatus string

const (
	DeliveryStatusSending   DeliveryStatus = "sending"
	DeliveryStatusSent      DeliveryStatus = "sent"
	DeliveryStatusDelivered DeliveryStatus = "delivered"
	DeliveryStatusRead      DeliveryStatus = "read"
)

var deliveryRank = map[DeliveryStatus]int{
	DeliveryStatusSending:   0,
	DeliveryStatusSent:      1,
	DeliveryStatusDelivered: 2,
	DeliveryStatusRead:      3,
}

func (s DeliveryStatus) IsValid() bool {
	_, ok := deliveryRank[s]
	return ok
}

// CanTransitionTo разрешает только движение вперёд: sending → sent → delivered → read.
// Промежуточные шаги можно пропускать.
func (s DeliveryStatus) CanTransitionTo(newStatus DeliveryStatus) bool {
	from, ok := deliveryRank[s]
	if !ok {
		return false
	}
	to, ok := deliveryRank[newStatus]
	if !ok {
		return false
	}
	return to > from
}

func NewDeliveryStatus(status string) (DeliveryStatus, error) {
	s := DeliveryStatus(status)
	if !s.IsValid() {
		return "", apperror.New(apperror.ErrCodeValidation, "некорректный статус доставки")
	}
	return s, nil
}
