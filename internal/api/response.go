package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"campusboard/internal/board"
)

func Error(c *gin.Context, status int, msg string) {
	c.JSON(status, gin.H{"error": msg})
}

func AbortUnauthorized(c *gin.Context) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
}

func Unauthorized(c *gin.Context)           { Error(c, http.StatusUnauthorized, "unauthorized") }
func BadRequest(c *gin.Context, msg string) { Error(c, http.StatusBadRequest, msg) }
func Forbidden(c *gin.Context, msg string)  { Error(c, http.StatusForbidden, msg) }
func NotFound(c *gin.Context, msg string)   { Error(c, http.StatusNotFound, msg) }
func Conflict(c *gin.Context, msg string)   { Error(c, http.StatusConflict, msg) }
func Internal(c *gin.Context, msg string)   { Error(c, http.StatusInternalServerError, msg) }

// RenderBoardError 将核心层的业务错误映射为 HTTP 响应。
// 校验错误附带字段级明细；存储失败统一以 internal error 兜底。
func RenderBoardError(c *gin.Context, err error) {
	var be *board.Error
	if !errors.As(err, &be) {
		Internal(c, "internal error")
		return
	}
	switch be.Kind {
	case board.KindNotFound:
		NotFound(c, be.Message)
	case board.KindUnauthorized:
		Forbidden(c, be.Message)
	case board.KindValidation:
		if len(be.Fields) > 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": be.Message, "fields": be.Fields})
			return
		}
		BadRequest(c, be.Message)
	case board.KindDuplicate:
		Conflict(c, be.Message)
	default:
		Internal(c, "internal error")
	}
}
