package api

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"campusboard/internal/board"
	"campusboard/internal/database"
)

func userIDFromContext(c *gin.Context) (uint, bool) {
	value, ok := c.Get("userID")
	if !ok {
		return 0, false
	}
	id, ok := value.(uint)
	return id, ok
}

// actorFromContext 从认证中间件注入的上下文还原操作发起者。
func actorFromContext(c *gin.Context) (board.Actor, bool) {
	id, ok := userIDFromContext(c)
	if !ok {
		return board.Actor{}, false
	}
	value, ok := c.Get("userRole")
	if !ok {
		return board.Actor{}, false
	}
	role, ok := value.(string)
	if !ok || !database.Role(role).Valid() {
		return board.Actor{}, false
	}
	return board.Actor{ID: id, Role: database.Role(role)}, true
}

func parseIDParam(c *gin.Context, name string) (uint, bool) {
	raw := c.Param(name)
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil || id == 0 {
		return 0, false
	}
	return uint(id), true
}
