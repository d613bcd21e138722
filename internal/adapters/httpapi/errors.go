package httpapi

import (
	"errors"
	"net/http"

	"agora/internal/apperr"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// renderError خطا را با کد پایدار و وضعیت HTTP متناظر برمی‌گرداند
func renderError(c *gin.Context, logger *zap.Logger, err error) {
	status := apperr.HTTPStatus(err)
	code := apperr.CodeOf(err)
	body := gin.H{"error": string(code)}

	var e *apperr.Error
	if status < 500 && errors.As(err, &e) && e.Detail != "" {
		body["message"] = e.Detail
	}
	if status >= 500 {
		logger.Error("❌ Request failed",
			zap.String("path", c.FullPath()),
			zap.String("code", string(code)),
			zap.Error(err))
	}
	c.AbortWithStatusJSON(status, body)
}

func invalidInput(c *gin.Context, err error) {
	c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "invalid_input", "message": err.Error()})
}
