package api

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"campusboard/internal/board"
	"campusboard/internal/database"
)

// AdminHandler 负责管理员的岗位审核与账号管理。
type AdminHandler struct {
	jobs  *board.JobService
	users *board.UserService
}

// NewAdminHandler 构造 AdminHandler。
func NewAdminHandler(jobs *board.JobService, users *board.UserService) *AdminHandler {
	return &AdminHandler{jobs: jobs, users: users}
}

// ApproveJob 将岗位置为 APPROVED。
func (h *AdminHandler) ApproveJob(c *gin.Context) {
	h.moderateJob(c, h.jobs.Approve)
}

// RejectJob 将岗位置为 REJECTED。
func (h *AdminHandler) RejectJob(c *gin.Context) {
	h.moderateJob(c, h.jobs.Reject)
}

func (h *AdminHandler) moderateJob(c *gin.Context, transition func(context.Context, board.Actor, uint) (*database.Job, error)) {
	actor, ok := actorFromContext(c)
	if !ok {
		AbortUnauthorized(c)
		return
	}
	jobID, ok := parseIDParam(c, "id")
	if !ok {
		BadRequest(c, "invalid job id")
		return
	}

	job, err := transition(c.Request.Context(), actor, jobID)
	if err != nil {
		RenderBoardError(c, err)
		return
	}
	c.JSON(http.StatusOK, newJobResponse(job))
}

// ListJobs 按状态筛选岗位（默认 pending，便于审核队列使用）。
func (h *AdminHandler) ListJobs(c *gin.Context) {
	actor, ok := actorFromContext(c)
	if !ok {
		AbortUnauthorized(c)
		return
	}

	status := database.JobStatus(c.DefaultQuery("status", string(database.JobPending)))
	jobs, err := h.jobs.ListByStatus(c.Request.Context(), actor, status)
	if err != nil {
		RenderBoardError(c, err)
		return
	}
	c.JSON(http.StatusOK, newJobListResponse(jobs))
}

// ListUsers 返回全部账号。
func (h *AdminHandler) ListUsers(c *gin.Context) {
	actor, ok := actorFromContext(c)
	if !ok {
		AbortUnauthorized(c)
		return
	}

	users, err := h.users.List(c.Request.Context(), actor)
	if err != nil {
		RenderBoardError(c, err)
		return
	}

	out := make([]userResponse, 0, len(users))
	for i := range users {
		out = append(out, newUserResponse(&users[i]))
	}
	c.JSON(http.StatusOK, out)
}

type userStatusRequest struct {
	Status string `json:"status" binding:"required,oneof=active inactive"`
}

// UpdateUserStatus 启用或停用账号。
func (h *AdminHandler) UpdateUserStatus(c *gin.Context) {
	actor, ok := actorFromContext(c)
	if !ok {
		AbortUnauthorized(c)
		return
	}
	userID, ok := parseIDParam(c, "id")
	if !ok {
		BadRequest(c, "invalid user id")
		return
	}

	var req userStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, err.Error())
		return
	}

	user, err := h.users.UpdateStatus(c.Request.Context(), actor, userID, database.UserStatus(req.Status))
	if err != nil {
		RenderBoardError(c, err)
		return
	}
	c.JSON(http.StatusOK, newUserResponse(user))
}
