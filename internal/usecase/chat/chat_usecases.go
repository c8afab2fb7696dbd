package chat

import (
	"context"

	"github.com/recyhub/recy-backend/internal/domain/entity"
	"github.com/recyhub/recy-backend/internal/domain/repository"
	"github.com/recyhub/recy-backend/internal/domain/valueobject"
	"github.com/recyhub/recy-backend/internal/events"
	"github.com/recyhub/recy-backend/internal/pkg/apperror"
)

type CreateChatRoomUseCase struct {
	chatRepo  repository.ChatRoomRepository
	publisher events.Publisher
}

func NewCreateChatRoomUseCase(chatRepo repository.ChatRoomRepository, publisher events.Publisher) *CreateChatRoomUseCase {
	return &CreateChatRoomUseCase{chatRepo: chatRepo, publisher: publisher}
}

// Execute всегда создаёт новую комнату: несколько комнат для одной пары допустимы.
func (uc *CreateChatRoomUseCase) Execute(ctx context.Context, resourceID, participantA, participantB string) (*entity.ChatRoom, error) {
	room := entity.NewChatRoom(resourceID, participantA, participantB)
	if err := uc.chatRepo.Create(ctx, room); err != nil {
		return nil, err
	}
	uc.publisher.Publish(events.ChatCreated, room.Snapshot())
	return room, nil
}

type PostMessageUseCase struct {
	chatRepo  repository.ChatRoomRepository
	publisher events.Publisher
	strict    bool
}

// NewPostMessageUseCase создаёт use case. В strict режиме писать могут только участники.
func NewPostMessageUseCase(chatRepo repository.ChatRoomRepository, publisher events.Publisher, strict bool) *PostMessageUseCase {
	return &PostMessageUseCase{chatRepo: chatRepo, publisher: publisher, strict: strict}
}

func (uc *PostMessageUseCase) Execute(ctx context.Context, chatID, from, text string) (entity.Message, error) {
	var msg entity.Message
	_, err := uc.chatRepo.Update(ctx, chatID, func(room *entity.ChatRoom) error {
		if uc.strict && !room.IsParticipant(from) {
			return apperror.New(apperror.ErrCodeValidation, "отправитель не является участником чата")
		}
		msg = room.Post(from, text)
		return nil
	})
	if err != nil {
		return entity.Message{}, err
	}
	uc.publisher.Publish(events.ChatMessage, events.ChatMessagePayload{ChatID: chatID, Message: msg})
	return msg, nil
}

type ListChatsForUseCase struct {
	chatRepo repository.ChatRoomRepository
}

func NewListChatsForUseCase(chatRepo repository.ChatRoomRepository) *ListChatsForUseCase {
	return &ListChatsForUseCase{chatRepo: chatRepo}
}

func (uc *ListChatsForUseCase) Execute(ctx context.Context, email string) ([]*entity.ChatRoom, error) {
	return uc.chatRepo.FindByParticipant(ctx, email)
}

type GetChatRoomUseCase struct {
	chatRepo repository.ChatRoomRepository
}

func NewGetChatRoomUseCase(chatRepo repository.ChatRoomRepository) *GetChatRoomUseCase {
	return &GetChatRoomUseCase{chatRepo: chatRepo}
}

func (uc *GetChatRoomUseCase) Execute(ctx context.Context, chatID string) (*entity.ChatRoom, error) {
	return uc.chatRepo.FindByID(ctx, chatID)
}

type UpdateMessageStatusUseCase struct {
	chatRepo  repository.ChatRoomRepository
	publisher events.Publisher
}

func NewUpdateMessageStatusUseCase(chatRepo repository.ChatRoomRepository, publisher events.Publisher) *UpdateMessageStatusUseCase {
	return &UpdateMessageStatusUseCase{chatRepo: chatRepo, publisher: publisher}
}

// Execute продвигает статус доставки сообщения (sent → delivered → read).
func (uc *UpdateMessageStatusUseCase) Execute(ctx context.Context, chatID, messageID, status string) (entity.Message, error) {
	newStatus, err := valueobject.NewDeliveryStatus(status)
	if err != nil {
		return entity.Message{}, err
	}

	var msg entity.Message
	_, err = uc.chatRepo.Update(ctx, chatID, func(room *entity.ChatRoom) error {
		updated, err := room.UpdateMessageStatus(messageID, newStatus)
		if err != nil {
			return err
		}
		msg = updated
		return nil
	})
	if err != nil {
		return entity.Message{}, err
	}
	uc.publisher.Publish(events.ChatMessageStatus, events.ChatMessagePayload{ChatID: chatID, Message: msg})
	return msg, nil
}
