package entity

import (
	"time"

	"github.com/recyhub/recy-backend/internal/domain/valueobject"
	"github.com/recyhub/recy-backend/internal/pkg/apperror"
	"github.com/recyhub/recy-backend/internal/pkg/idgen"
)

// ChatRoom — переписка двух участников, опционально привязанная к ресурсу.
type ChatRoom struct {
	ID           string
	ResourceID   string
	Participants [2]string
	Messages     []Message
	CreatedAt    time.Time
}

type Message struct {
	ID     string
	From   string
	Text   string
	TS     time.Time
	Status valueobject.DeliveryStatus
}

func NewChatRoom(resourceID, participantA, participantB string) *ChatRoom {
	return &ChatRoom{
		ID:           idgen.NextID(idgen.KindChat),
		ResourceID:   resourceID,
		Participants: [2]string{participantA, participantB},
		Messages:     []Message{},
		CreatedAt:    time.Now(),
	}
}

func (c *ChatRoom) IsParticipant(email string) bool {
	return c.Participants[0] == email || c.Participants[1] == email
}

// Post добавляет сообщение в конец ленты. TS не убывает даже при откате системных часов.
func (c *ChatRoom) Post(from, text string) Message {
	ts := time.Now()
	if n := len(c.Messages); n > 0 && ts.Before(c.Messages[n-1].TS) {
		ts = c.Messages[n-1].TS
	}
	msg := Message{
		ID:     idgen.NextID(idgen.KindMessage),
		From:   from,
		Text:   text,
		TS:     ts,
		Status: valueobject.DeliveryStatusSent,
	}
	c.Messages = append(c.Messages, msg)
	return msg
}

func (c *ChatRoom) UpdateMessageStatus(messageID string, status valueobject.DeliveryStatus) (Message, error) {
	for i := range c.Messages {
		if c.Messages[i].ID != messageID {
			continue
		}
		if !c.Messages[i].Status.CanTransitionTo(status) {
			return Message{}, apperror.New(apperror.ErrCodeBadRequest, "статус доставки может двигаться только вперёд")
		}
		c.Messages[i].Status = status
		return c.Messages[i], nil
	}
	return Message{}, apperror.ErrMessageNotFound
}

// Snapshot — копия комнаты со своей лентой сообщений.
func (c *ChatRoom) Snapshot() ChatRoom {
	out := *c
	out.Messages = append([]Message(nil), c.Messages...)
	if out.Messages == nil {
		out.Messages = []Message{}
	}
	return out
}

func (c *ChatRoom) LastMessage() (Message, bool) {
	if len(c.Messages) == 0 {
		return Message{}, false
	}
	return c.Messages[len(c.Messages)-1], true
}
