package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/recyhub/recy-backend/internal/interface/http/dto"
	"github.com/recyhub/recy-backend/internal/interface/http/response"
	"github.com/recyhub/recy-backend/internal/usecase/impact"
	"github.com/recyhub/recy-backend/internal/usecase/product"
)

type ProductHandler struct {
	postUC        *product.PostProductUseCase
	listUC        *product.ListProductsUseCase
	rateUC        *impact.RateUseCase
	listRatingsUC *impact.ListRatingsUseCase
}

func NewProductHandler(
	postUC *product.PostProductUseCase,
	listUC *product.ListProductsUseCase,
	rateUC *impact.RateUseCase,
	listRatingsUC *impact.ListRatingsUseCase,
) *ProductHandler {
	return &ProductHandler{
		postUC:        postUC,
		listUC:        listUC,
		rateUC:        rateUC,
		listRatingsUC: listRatingsUC,
	}
}

func (h *ProductHandler) CreateProduct(c *gin.Context) {
	var req dto.CreateProductRequest
	if !bindJSON(c, &req) {
		return
	}

	p, err := h.postUC.Execute(c.Request.Context(), product.PostProductInput{
		UpcyclerEmail: req.UpcyclerEmail,
		ResourceID:    req.ResourceID,
		Title:         req.Title,
		Images:        req.Images,
		Steps:         req.Steps,
		Price:         req.Price,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, dto.ToProductResponse(p))
}

func (h *ProductHandler) ListProducts(c *gin.Context) {
	list, err := h.listUC.Execute(c.Request.Context(), "")
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, dto.ToProductResponses(list))
}

func (h *ProductHandler) ListByUpcycler(c *gin.Context) {
	email, ok := emailParam(c, "email")
	if !ok {
		return
	}

	list, err := h.listUC.Execute(c.Request.Context(), email)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, dto.ToProductResponses(list))
}

func (h *ProductHandler) Rate(c *gin.Context) {
	var req dto.CreateRatingRequest
	if !bindJSON(c, &req) {
		return
	}

	rating, err := h.rateUC.Execute(c.Request.Context(), impact.RateInput{
		PartnerEmail: req.PartnerEmail,
		ByEmail:      req.ByEmail,
		Rating:       req.Rating,
		Comment:      req.Comment,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, dto.ToRatingResponse(rating))
}

func (h *ProductHandler) ListRatings(c *gin.Context) {
	email, ok := emailParam(c, "email")
	if !ok {
		return
	}

	list, err := h.listRatingsUC.Execute(c.Request.Context(), email)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, dto.ToRatingResponses(list))
}
