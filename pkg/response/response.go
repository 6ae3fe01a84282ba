package response

import (
	"net/http"

	"blog_api/pkg/apperr"
	"blog_api/pkg/logger"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// OK 200 响应
func OK(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, data)
}

// Created 201 响应
func Created(c *gin.Context, data interface{}) {
	c.JSON(http.StatusCreated, data)
}

// Detail 仅含提示信息的响应体 {"detail": msg}
func Detail(c *gin.Context, status int, msg string) {
	c.JSON(status, gin.H{"detail": msg})
}

// Error 将业务错误映射为 HTTP 状态码及响应体
// 校验错误带字段信息时响应 {field: [messages]}，否则统一为 {"detail": msg}
func Error(c *gin.Context, err error) {
	if e, ok := apperr.AsError(err); ok {
		status := statusOf(e.Kind)
		if len(e.Fields) > 0 {
			c.JSON(status, e.Fields)
			return
		}
		c.JSON(status, gin.H{"detail": e.Detail})
		return
	}

	// 非业务错误不向调用方暴露细节
	if logger.Log != nil {
		logger.Log.Error("internal error",
			zap.String("path", c.Request.URL.Path),
			zap.Error(err),
		)
	}
	c.JSON(http.StatusInternalServerError, gin.H{"detail": "internal server error"})
}

func statusOf(kind apperr.Kind) int {
	switch kind {
	case apperr.KindValidation:
		return http.StatusBadRequest
	case apperr.KindAuthentication:
		return http.StatusUnauthorized
	case apperr.KindAuthorization:
		return http.StatusForbidden
	case apperr.KindNotFound:
		return http.StatusNotFound
	case apperr.KindConflict:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}
