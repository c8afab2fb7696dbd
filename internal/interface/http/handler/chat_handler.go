package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/recyhub/recy-backend/internal/interface/http/dto"
	"github.com/recyhub/recy-backend/internal/interface/http/response"
	"github.com/recyhub/recy-backend/internal/usecase/chat"
	"github.com/recyhub/recy-backend/internal/validation"
)

type ChatHandler struct {
	createUC        *chat.CreateChatRoomUseCase
	postMessageUC   *chat.PostMessageUseCase
	listForUC       *chat.ListChatsForUseCase
	getUC           *chat.GetChatRoomUseCase
	updateMessageUC *chat.UpdateMessageStatusUseCase
}

func NewChatHandler(
	createUC *chat.CreateChatRoomUseCase,
	postMessageUC *chat.PostMessageUseCase,
	listForUC *chat.ListChatsForUseCase,
	getUC *chat.GetChatRoomUseCase,
	updateMessageUC *chat.UpdateMessageStatusUseCase,
) *ChatHandler {
	return &ChatHandler{
		createUC:        createUC,
		postMessageUC:   postMessageUC,
		listForUC:       listForUC,
		getUC:           getUC,
		updateMessageUC: updateMessageUC,
	}
}

func (h *ChatHandler) CreateChat(c *gin.Context) {
	var req dto.CreateChatRequest
	if !bindJSON(c, &req) {
		return
	}

	room, err := h.createUC.Execute(c.Request.Context(), req.ResourceID, req.Participants[0], req.Participants[1])
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, dto.ToChatRoomResponse(room))
}

// ListChats обслуживает GET /api/chats?email=
func (h *ChatHandler) ListChats(c *gin.Context) {
	email := c.Query("email")
	if err := validation.ValidateEmail(email); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	rooms, err := h.listForUC.Execute(c.Request.Context(), email)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, dto.ToChatRoomResponses(rooms))
}

func (h *ChatHandler) GetChat(c *gin.Context) {
	room, err := h.getUC.Execute(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, dto.ToChatRoomResponse(room))
}

func (h *ChatHandler) PostMessage(c *gin.Context) {
	var req dto.PostMessageRequest
	if !bindJSON(c, &req) {
		return
	}
	if err := validation.ValidateMessageText(req.Text); err != nil {
		response.ValidationFailed(c, err.Error())
		return
	}

	msg, err := h.postMessageUC.Execute(c.Request.Context(), c.Param("id"), req.From, req.Text)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, dto.ToMessageResponse(msg))
}

func (h *ChatHandler) UpdateMessageStatus(c *gin.Context) {
	var req dto.UpdateMessageStatusRequest
	if !bindJSON(c, &req) {
		return
	}

	msg, err := h.updateMessageUC.Execute(c.Request.Context(), c.Param("id"), c.Param("messageId"), req.Status)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, dto.ToMessageResponse(msg))
}
