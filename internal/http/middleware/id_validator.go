package middleware

import (
	"github.com/gin-gonic/gin"

	"github.com/recyhub/recy-backend/internal/interface/http/response"
	"github.com/recyhub/recy-backend/internal/pkg/idgen"
)

// IDValidator отсекает параметры пути с недопустимыми символами или длиной.
// Идентификаторы непрозрачны: неизвестный, но допустимый id доходит до use case и получает 404.
// Использование: api.GET("/resources/:id", IDValidator("id"), h.GetResource)
func IDValidator(paramNames ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		for _, name := range paramNames {
			value := c.Param(name)
			if value == "" {
				response.BadRequest(c, "параметр "+name+" обязателен")
				c.Abort()
				return
			}
			if !idgen.Valid(value) {
				response.BadRequest(c, "параметр "+name+" имеет некорректный формат")
				c.Abort()
				return
			}
		}
		c.Next()
	}
}
