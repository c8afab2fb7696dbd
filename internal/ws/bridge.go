package ws

import (
	"context"

	"github.com/sirupsen/logrus"

	"github.com/recyhub/recy-backend/internal/domain/entity"
	"github.com/recyhub/recy-backend/internal/domain/repository"
	"github.com/recyhub/recy-backend/internal/events"
	"github.com/recyhub/recy-backend/internal/interface/http/dto"
	"github.com/recyhub/recy-backend/internal/logger"
)

// Sender — то, что мосту нужно от хаба.
type Sender interface {
	Send(event string, data any, to ...string) error
}

// Bridge пересылает доменные события подключённым клиентам.
// Адресаты определяются по событию: публичные события уходят всем,
// заявки — донору и апсайклеру, сообщения — участникам чата, оценки — партнёру.
type Bridge struct {
	sender    Sender
	resources repository.ResourceRepository
	chats     repository.ChatRoomRepository
	log       *logrus.Entry
}

func NewBridge(sender Sender, resources repository.ResourceRepository, chats repository.ChatRoomRepository) *Bridge {
	return &Bridge{
		sender:    sender,
		resources: resources,
		chats:     chats,
		log:       logger.Component("ws-bridge"),
	}
}

// Attach подписывает мост на все события уведомителя.
func (b *Bridge) Attach(n *events.Notifier) *events.Subscription {
	return n.SubscribeAll(b.Handle)
}

// Handle маршрутизирует одно событие.
func (b *Bridge) Handle(evt events.Event) {
	name := string(evt.Name)
	var err error

	switch p := evt.Payload.(type) {
	case entity.Resource:
		err = b.sender.Send(name, dto.ToResourceResponse(&p))
	case entity.Product:
		err = b.sender.Send(name, dto.ToProductResponse(&p))
	case entity.Request:
		err = b.sender.Send(name, dto.ToRequestResponse(&p), p.UpcyclerEmail, b.donorOf(p.ResourceID))
	case entity.ChatRoom:
		err = b.sender.Send(name, dto.ToChatRoomResponse(&p), p.Participants[0], p.Participants[1])
	case events.ChatMessagePayload:
		to := b.participantsOf(p.ChatID)
		if len(to) == 0 {
			return
		}
		err = b.sender.Send(name, map[string]any{
			"chatId":  p.ChatID,
			"message": dto.ToMessageResponse(p.Message),
		}, to...)
	case entity.Rating:
		err = b.sender.Send(name, dto.ToRatingResponse(&p), p.PartnerEmail)
	default:
		b.log.WithField("event", name).Debug("событие без маршрута, пропускаем")
		return
	}

	if err != nil {
		b.log.WithFields(logrus.Fields{
			"event": name,
			"error": err.Error(),
		}).Warn("не удалось отправить событие клиентам")
	}
}

func (b *Bridge) donorOf(resourceID string) string {
	res, err := b.resources.FindByID(context.Background(), resourceID)
	if err != nil {
		return ""
	}
	return res.DonorEmail
}

func (b *Bridge) participantsOf(chatID string) []string {
	room, err := b.chats.FindByID(context.Background(), chatID)
	if err != nil {
		b.log.WithField("chat_id", chatID).Debug("чат для события не найден")
		return nil
	}
	return []string{room.Participants[0], room.Participants[1]}
}
