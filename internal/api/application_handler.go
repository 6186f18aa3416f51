package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"campusboard/internal/board"
	"campusboard/internal/database"
)

// ApplicationHandler 负责学生投递与雇主查看/评审投递记录。
type ApplicationHandler struct {
	apps *board.ApplicationService
}

// NewApplicationHandler 构造 ApplicationHandler。
func NewApplicationHandler(apps *board.ApplicationService) *ApplicationHandler {
	return &ApplicationHandler{apps: apps}
}

type applicationResponse struct {
	ID        uint      `json:"id"`
	JobID     uint      `json:"job_id"`
	StudentID uint      `json:"student_id"`
	Status    string    `json:"status"`
	AppliedAt time.Time `json:"applied_at"`
}

func newApplicationResponse(app *database.JobApplication) applicationResponse {
	return applicationResponse{
		ID:        app.ID,
		JobID:     app.JobID,
		StudentID: app.StudentID,
		Status:    string(app.Status),
		AppliedAt: app.AppliedAt,
	}
}

func newApplicationListResponse(apps []database.JobApplication) []applicationResponse {
	out := make([]applicationResponse, 0, len(apps))
	for i := range apps {
		out = append(out, newApplicationResponse(&apps[i]))
	}
	return out
}

// Apply 学生投递岗位；重复投递返回 409。
func (h *ApplicationHandler) Apply(c *gin.Context) {
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

	app, err := h.apps.Apply(c.Request.Context(), actor, jobID)
	if err != nil {
		RenderBoardError(c, err)
		return
	}
	c.JSON(http.StatusCreated, newApplicationResponse(app))
}

// ListOwn 返回学生自己的全部投递记录。
func (h *ApplicationHandler) ListOwn(c *gin.Context) {
	actor, ok := actorFromContext(c)
	if !ok {
		AbortUnauthorized(c)
		return
	}

	apps, err := h.apps.ListForStudent(c.Request.Context(), actor)
	if err != nil {
		RenderBoardError(c, err)
		return
	}
	c.JSON(http.StatusOK, newApplicationListResponse(apps))
}

// ListForJob 返回某岗位的全部投递记录，仅岗位归属雇主可见。
func (h *ApplicationHandler) ListForJob(c *gin.Context) {
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

	apps, err := h.apps.ListForJob(c.Request.Context(), actor, jobID)
	if err != nil {
		RenderBoardError(c, err)
		return
	}
	c.JSON(http.StatusOK, newApplicationListResponse(apps))
}

type reviewRequest struct {
	Status string `json:"status" binding:"required,oneof=accepted rejected"`
}

// Review 雇主评审投递记录（接受/拒绝）。
func (h *ApplicationHandler) Review(c *gin.Context) {
	actor, ok := actorFromContext(c)
	if !ok {
		AbortUnauthorized(c)
		return
	}
	appID, ok := parseIDParam(c, "id")
	if !ok {
		BadRequest(c, "invalid application id")
		return
	}

	var req reviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, err.Error())
		return
	}

	app, err := h.apps.UpdateStatus(c.Request.Context(), actor, appID, database.ApplicationStatus(req.Status))
	if err != nil {
		RenderBoardError(c, err)
		return
	}
	c.JSON(http.StatusOK, newApplicationResponse(app))
}
