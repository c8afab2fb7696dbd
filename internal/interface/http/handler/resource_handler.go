package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/recyhub/recy-backend/internal/domain/entity"
	"github.com/recyhub/recy-backend/internal/domain/valueobject"
	"github.com/recyhub/recy-backend/internal/interface/http/dto"
	"github.com/recyhub/recy-backend/internal/interface/http/response"
	"github.com/recyhub/recy-backend/internal/usecase/impact"
	"github.com/recyhub/recy-backend/internal/usecase/resource"
)

const defaultNearRadiusKm = 10

type ResourceHandler struct {
	addUC      *resource.AddResourceUseCase
	listUC     *resource.ListResourcesUseCase
	getUC      *resource.GetResourceUseCase
	completeUC *resource.CompleteResourceUseCase
	nearUC     *resource.ListResourcesNearUseCase
	impactUC   *impact.ComputeImpactUseCase
}

func NewResourceHandler(
	addUC *resource.AddResourceUseCase,
	listUC *resource.ListResourcesUseCase,
	getUC *resource.GetResourceUseCase,
	completeUC *resource.CompleteResourceUseCase,
	nearUC *resource.ListResourcesNearUseCase,
	impactUC *impact.ComputeImpactUseCase,
) *ResourceHandler {
	return &ResourceHandler{
		addUC:      addUC,
		listUC:     listUC,
		getUC:      getUC,
		completeUC: completeUC,
		nearUC:     nearUC,
		impactUC:   impactUC,
	}
}

func (h *ResourceHandler) CreateResource(c *gin.Context) {
	var req dto.CreateResourceRequest
	if !bindJSON(c, &req) {
		return
	}

	fields, err := req.Fields()
	if err != nil {
		response.Error(c, err)
		return
	}

	res, err := h.addUC.Execute(c.Request.Context(), fields)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, dto.ToResourceResponse(res))
}

// ListResources обслуживает GET /api/resources?type=&status=&donorEmail=
func (h *ResourceHandler) ListResources(c *gin.Context) {
	typeFilter := c.Query("type")
	donorFilter := c.Query("donorEmail")
	var statusFilter valueobject.ResourceStatus
	if s := c.Query("status"); s != "" {
		st, err := valueobject.NewResourceStatus(s)
		if err != nil {
			response.Error(c, err)
			return
		}
		statusFilter = st
	}

	all, err := h.listUC.Execute(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	filtered := make([]*entity.Resource, 0, len(all))
	probe := entity.Resource{Type: typeFilter}
	for _, r := range all {
		if typeFilter != "" && r.NormalizedType() != probe.NormalizedType() {
			continue
		}
		if statusFilter != "" && r.Status != statusFilter {
			continue
		}
		if donorFilter != "" && !r.IsOwnedBy(donorFilter) {
			continue
		}
		filtered = append(filtered, r)
	}

	response.Success(c, dto.ToResourceResponses(filtered))
}

func (h *ResourceHandler) ListResourcesNear(c *gin.Context) {
	lat := parseFloatQuery(c, "lat")
	lng := parseFloatQuery(c, "lng")
	if lat == nil || lng == nil {
		response.BadRequest(c, "параметры lat и lng обязательны")
		return
	}
	center, err := valueobject.NewLocation(*lat, *lng)
	if err != nil {
		response.Error(c, err)
		return
	}

	radius := float64(defaultNearRadiusKm)
	if r := parseFloatQuery(c, "radiusKm"); r != nil {
		radius = *r
	}

	found, err := h.nearUC.Execute(c.Request.Context(), center, radius)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, dto.ToNearbyResourceResponses(found))
}

func (h *ResourceHandler) GetResource(c *gin.Context) {
	res, err := h.getUC.Execute(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, dto.ToResourceResponse(res))
}

func (h *ResourceHandler) CompleteResource(c *gin.Context) {
	res, err := h.completeUC.Execute(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, dto.ToResourceResponse(res))
}

func (h *ResourceHandler) GetImpact(c *gin.Context) {
	result, err := h.impactUC.Execute(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, dto.ToImpactResponse(result))
}
