package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"campusboard/internal/board"
	"campusboard/internal/database"
)

// JobHandler 负责岗位的公开浏览与雇主侧管理。
type JobHandler struct {
	jobs *board.JobService
}

// NewJobHandler 构造 JobHandler。
func NewJobHandler(jobs *board.JobService) *JobHandler {
	return &JobHandler{jobs: jobs}
}

type jobRequest struct {
	Title       string   `json:"title" binding:"required,min=3,max=100"`
	Description string   `json:"description" binding:"required"`
	Location    string   `json:"location"`
	Salary      *float64 `json:"salary"`
	Category    string   `json:"category"`
	Deadline    string   `json:"deadline"`
}

func (r jobRequest) input() board.JobInput {
	return board.JobInput{
		Title:       r.Title,
		Description: r.Description,
		Location:    r.Location,
		Salary:      r.Salary,
		Category:    r.Category,
		Deadline:    r.Deadline,
	}
}

type jobResponse struct {
	ID          uint      `json:"id"`
	EmployerID  uint      `json:"employer_id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Location    string    `json:"location,omitempty"`
	Salary      *float64  `json:"salary,omitempty"`
	Category    string    `json:"category,omitempty"`
	Deadline    string    `json:"deadline,omitempty"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func newJobResponse(job *database.Job) jobResponse {
	return jobResponse{
		ID:          job.ID,
		EmployerID:  job.EmployerID,
		Title:       job.Title,
		Description: job.Description,
		Location:    job.Location,
		Salary:      job.Salary,
		Category:    job.Category,
		Deadline:    job.Deadline,
		Status:      string(job.Status),
		CreatedAt:   job.CreatedAt,
		UpdatedAt:   job.UpdatedAt,
	}
}

func newJobListResponse(jobs []database.Job) []jobResponse {
	out := make([]jobResponse, 0, len(jobs))
	for i := range jobs {
		out = append(out, newJobResponse(&jobs[i]))
	}
	return out
}

// ListApproved 返回全部已通过审核的岗位，学生侧列表使用。
func (h *JobHandler) ListApproved(c *gin.Context) {
	jobs, err := h.jobs.ListApproved(c.Request.Context())
	if err != nil {
		RenderBoardError(c, err)
		return
	}
	c.JSON(http.StatusOK, newJobListResponse(jobs))
}

// GetApproved 返回单个岗位详情；未过审的岗位对外一律视为不存在。
func (h *JobHandler) GetApproved(c *gin.Context) {
	jobID, ok := parseIDParam(c, "id")
	if !ok {
		BadRequest(c, "invalid job id")
		return
	}

	job, err := h.jobs.GetByID(c.Request.Context(), jobID)
	if err != nil {
		RenderBoardError(c, err)
		return
	}
	if job.Status != database.JobApproved {
		NotFound(c, "job not found")
		return
	}
	c.JSON(http.StatusOK, newJobResponse(job))
}

// Create 雇主发布岗位，初始状态 PENDING。
func (h *JobHandler) Create(c *gin.Context) {
	actor, ok := actorFromContext(c)
	if !ok {
		AbortUnauthorized(c)
		return
	}

	var req jobRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, err.Error())
		return
	}

	job, err := h.jobs.Create(c.Request.Context(), actor, req.input())
	if err != nil {
		RenderBoardError(c, err)
		return
	}
	c.JSON(http.StatusCreated, newJobResponse(job))
}

// Update 雇主编辑自己的岗位内容。
func (h *JobHandler) Update(c *gin.Context) {
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

	var req jobRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, err.Error())
		return
	}

	job, err := h.jobs.Update(c.Request.Context(), actor, jobID, req.input())
	if err != nil {
		RenderBoardError(c, err)
		return
	}
	c.JSON(http.StatusOK, newJobResponse(job))
}

// Delete 雇主删除自己的岗位，投递记录随之删除。
func (h *JobHandler) Delete(c *gin.Context) {
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

	if err := h.jobs.Delete(c.Request.Context(), actor, jobID); err != nil {
		RenderBoardError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// ListOwn 返回雇主自己发布的全部岗位。
func (h *JobHandler) ListOwn(c *gin.Context) {
	actor, ok := actorFromContext(c)
	if !ok {
		AbortUnauthorized(c)
		return
	}

	jobs, err := h.jobs.ListByEmployer(c.Request.Context(), actor.ID)
	if err != nil {
		RenderBoardError(c, err)
		return
	}
	c.JSON(http.StatusOK, newJobListResponse(jobs))
}
