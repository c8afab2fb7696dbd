package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/recyhub/recy-backend/internal/interface/http/dto"
	"github.com/recyhub/recy-backend/internal/interface/http/response"
	"github.com/recyhub/recy-backend/internal/usecase/impact"
	"github.com/recyhub/recy-backend/internal/usecase/request"
)

type RequestHandler struct {
	createUC       *request.RequestResourceUseCase
	forDonorUC     *request.ListRequestsForDonorUseCase
	forUpcyclerUC  *request.ListRequestsForUpcyclerUseCase
	updateStatusUC *request.UpdateRequestStatusUseCase
	donorImpactUC  *impact.ComputeDonorImpactUseCase
}

func NewRequestHandler(
	createUC *request.RequestResourceUseCase,
	forDonorUC *request.ListRequestsForDonorUseCase,
	forUpcyclerUC *request.ListRequestsForUpcyclerUseCase,
	updateStatusUC *request.UpdateRequestStatusUseCase,
	donorImpactUC *impact.ComputeDonorImpactUseCase,
) *RequestHandler {
	return &RequestHandler{
		createUC:       createUC,
		forDonorUC:     forDonorUC,
		forUpcyclerUC:  forUpcyclerUC,
		updateStatusUC: updateStatusUC,
		donorImpactUC:  donorImpactUC,
	}
}

func (h *RequestHandler) CreateRequest(c *gin.Context) {
	var req dto.CreateRequestRequest
	if !bindJSON(c, &req) {
		return
	}

	created, err := h.createUC.Execute(c.Request.Context(), request.RequestResourceInput{
		ResourceID:    req.ResourceID,
		UpcyclerEmail: req.UpcyclerEmail,
		Reason:        req.Reason,
		Idea:          req.Idea,
		When:          req.When,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, dto.ToRequestResponse(created))
}

func (h *RequestHandler) UpdateStatus(c *gin.Context) {
	var req dto.UpdateRequestStatusRequest
	if !bindJSON(c, &req) {
		return
	}

	updated, err := h.updateStatusUC.Execute(c.Request.Context(), c.Param("id"), req.Status, req.Reason)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, dto.ToRequestResponse(updated))
}

func (h *RequestHandler) ListForDonor(c *gin.Context) {
	email, ok := emailParam(c, "email")
	if !ok {
		return
	}

	list, err := h.forDonorUC.Execute(c.Request.Context(), email)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, dto.ToRequestResponses(list))
}

func (h *RequestHandler) ListForUpcycler(c *gin.Context) {
	email, ok := emailParam(c, "email")
	if !ok {
		return
	}

	list, err := h.forUpcyclerUC.Execute(c.Request.Context(), email)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, dto.ToRequestResponses(list))
}

func (h *RequestHandler) DonorImpact(c *gin.Context) {
	email, ok := emailParam(c, "email")
	if !ok {
		return
	}

	summary, err := h.donorImpactUC.Execute(c.Request.Context(), email)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, dto.ToDonorImpactResponse(summary))
}
