package handler

import (
	"errors"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	"github.com/recyhub/recy-backend/internal/interface/http/response"
	"github.com/recyhub/recy-backend/internal/validation"
)

// bindJSON разбирает тело запроса и при ошибке сам отвечает клиенту.
func bindJSON(c *gin.Context, dst interface{}) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			response.ValidationFailed(c, validation.Describe(err))
			return false
		}
		response.BadRequest(c, "некорректные данные запроса")
		return false
	}
	return true
}

func parseFloatQuery(c *gin.Context, key string) *float64 {
	valueStr := c.Query(key)
	if valueStr == "" {
		return nil
	}

	value, err := strconv.ParseFloat(valueStr, 64)
	if err != nil {
		return nil
	}

	return &value
}

// emailParam читает email из пути. Регистр не меняется: идентичности сравниваются как есть.
func emailParam(c *gin.Context, key string) (string, bool) {
	email := strings.TrimSpace(c.Param(key))
	if err := validation.ValidateEmail(email); err != nil {
		response.BadRequest(c, err.Error())
		return "", false
	}
	return email, true
}
