package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/recyhub/recy-backend/internal/interface/http/response"
	"github.com/recyhub/recy-backend/internal/usecase/seed"
)

// SeedHandler наполняет хранилище демонстрационными данными.
type SeedHandler struct {
	seedUC *seed.DemoSeedUseCase
}

// NewSeedHandler создаёт новый seed handler.
func NewSeedHandler(seedUC *seed.DemoSeedUseCase) *SeedHandler {
	return &SeedHandler{seedUC: seedUC}
}

// Seed обрабатывает POST /api/seed.
func (h *SeedHandler) Seed(c *gin.Context) {
	result, err := h.seedUC.Execute(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.CreatedWithMessage(c, "демонстрационные данные созданы", result)
}
