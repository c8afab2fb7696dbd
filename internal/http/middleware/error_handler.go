package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/recyhub/recy-backend/internal/interface/http/response"
	"github.com/recyhub/recy-backend/internal/logger"
	"github.com/recyhub/recy-backend/internal/pkg/apperror"
)

// ErrorHandler обрабатывает ошибки, приложенные через c.Error, если ответ ещё не отправлен.
// Внутренние ошибки маскируются, AppError отдаётся клиенту как есть.
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if c.Writer.Written() || len(c.Errors) == 0 {
			return
		}

		err := c.Errors.Last().Err
		entry := logger.Component("http").WithFields(logrus.Fields{
			"error":  err.Error(),
			"path":   c.Request.URL.Path,
			"method": c.Request.Method,
		})

		var appErr *apperror.AppError
		if errors.As(err, &appErr) && appErr.HTTPStatus < http.StatusInternalServerError {
			entry.Warn("ошибка запроса")
		} else {
			entry.Error("ошибка запроса")
		}

		response.Error(c, err)
	}
}

// Recovery превращает panic в обработчике в ответ 500 и пишет стек в лог.
func Recovery() gin.HandlerFunc {
	return gin.CustomRecovery(func(c *gin.Context, recovered interface{}) {
		logger.Component("http").WithFields(logrus.Fields{
			"panic":  recovered,
			"path":   c.Request.URL.Path,
			"method": c.Request.Method,
		}).Error("panic в обработчике")
		response.Error(c, apperror.New(apperror.ErrCodeInternal, "внутренняя ошибка сервера"))
		c.Abort()
	})
}
