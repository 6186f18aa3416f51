package board

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"campusboard/internal/database"
)

const (
	jobTitleMinLen = 3
	jobTitleMaxLen = 100
)

// JobService 负责岗位的生命周期：创建、编辑、删除与审核状态流转。
type JobService struct {
	jobs JobStore
	now  Clock
}

// NewJobService 构造岗位服务；now 为空时退回 time.Now。
func NewJobService(jobs JobStore, now Clock) *JobService {
	if now == nil {
		now = time.Now
	}
	return &JobService{jobs: jobs, now: now}
}

// JobInput 汇集雇主可编辑的岗位内容字段。
type JobInput struct {
	Title       string
	Description string
	Location    string
	Salary      *float64
	Category    string
	Deadline    string
}

func validateJobInput(in JobInput) error {
	fields := map[string]string{}
	title := strings.TrimSpace(in.Title)
	// 长度按字符计数，多字节标题不吃亏。
	if n := utf8.RuneCountInString(title); n < jobTitleMinLen || n > jobTitleMaxLen {
		fields["title"] = fmt.Sprintf("title must be between %d and %d characters", jobTitleMinLen, jobTitleMaxLen)
	}
	if strings.TrimSpace(in.Description) == "" {
		fields["description"] = "description is required"
	}
	if len(fields) > 0 {
		return NewValidationError("invalid job", fields)
	}
	return nil
}

// Create 以 PENDING 状态创建岗位，归属发起操作的雇主。
func (s *JobService) Create(ctx context.Context, actor Actor, in JobInput) (*database.Job, error) {
	if err := Authorize(actor, ActionJobCreate, Resource{}); err != nil {
		return nil, err
	}
	if err := validateJobInput(in); err != nil {
		return nil, err
	}

	now := s.now()
	job := &database.Job{
		EmployerID:  actor.ID,
		Title:       strings.TrimSpace(in.Title),
		Description: in.Description,
		Location:    in.Location,
		Salary:      in.Salary,
		Category:    in.Category,
		Deadline:    in.Deadline,
		Status:      database.JobPending,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.jobs.Create(ctx, job); err != nil {
		return nil, NewStoreError("create job", err)
	}
	return job, nil
}

// Update 重写岗位内容字段，仅岗位归属的雇主可调用。
// 已通过审核的岗位编辑后保持 APPROVED，不回退到 PENDING 重审。
func (s *JobService) Update(ctx context.Context, actor Actor, jobID uint, in JobInput) (*database.Job, error) {
	job, err := s.findJob(ctx, jobID)
	if err != nil {
		return nil, err
	}
	if err := Authorize(actor, ActionJobUpdate, Resource{OwnerID: job.EmployerID}); err != nil {
		return nil, err
	}
	if err := validateJobInput(in); err != nil {
		return nil, err
	}

	job.Title = strings.TrimSpace(in.Title)
	job.Description = in.Description
	job.Location = in.Location
	job.Salary = in.Salary
	job.Category = in.Category
	job.Deadline = in.Deadline
	job.UpdatedAt = s.now()
	if err := s.jobs.Update(ctx, job); err != nil {
		return nil, NewStoreError("update job", err)
	}
	return job, nil
}

// Delete 删除岗位，并由存储层在同一事务内级联删除全部投递记录。
func (s *JobService) Delete(ctx context.Context, actor Actor, jobID uint) error {
	job, err := s.findJob(ctx, jobID)
	if err != nil {
		return err
	}
	if err := Authorize(actor, ActionJobDelete, Resource{OwnerID: job.EmployerID}); err != nil {
		return err
	}
	if err := s.jobs.Delete(ctx, jobID); err != nil {
		return NewStoreError("delete job", err)
	}
	return nil
}

// Approve 将岗位置为 APPROVED（管理员操作）。
// 对已是 APPROVED 的岗位重复调用为幂等的 no-op 成功。
func (s *JobService) Approve(ctx context.Context, actor Actor, jobID uint) (*database.Job, error) {
	return s.moderate(ctx, actor, jobID, ActionJobApprove, database.JobApproved)
}

// Reject 将岗位置为 REJECTED（管理员操作），幂等性同 Approve。
func (s *JobService) Reject(ctx context.Context, actor Actor, jobID uint) (*database.Job, error) {
	return s.moderate(ctx, actor, jobID, ActionJobReject, database.JobRejected)
}

func (s *JobService) moderate(ctx context.Context, actor Actor, jobID uint, action Action, target database.JobStatus) (*database.Job, error) {
	job, err := s.findJob(ctx, jobID)
	if err != nil {
		return nil, err
	}
	if err := Authorize(actor, action, Resource{}); err != nil {
		return nil, err
	}
	if job.Status == target {
		return job, nil
	}
	job.Status = target
	job.UpdatedAt = s.now()
	if err := s.jobs.Update(ctx, job); err != nil {
		return nil, NewStoreError("moderate job", err)
	}
	return job, nil
}

// GetByID 返回岗位，不存在时返回 NotFound。
func (s *JobService) GetByID(ctx context.Context, jobID uint) (*database.Job, error) {
	return s.findJob(ctx, jobID)
}

// ListApproved 返回全部 APPROVED 岗位，供学生侧列表使用。
func (s *JobService) ListApproved(ctx context.Context) ([]database.Job, error) {
	jobs, err := s.jobs.ListByStatus(ctx, database.JobApproved)
	if err != nil {
		return nil, NewStoreError("list approved jobs", err)
	}
	return jobs, nil
}

// ListByEmployer 返回某雇主发布的全部岗位。
func (s *JobService) ListByEmployer(ctx context.Context, employerID uint) ([]database.Job, error) {
	jobs, err := s.jobs.ListByEmployer(ctx, employerID)
	if err != nil {
		return nil, NewStoreError("list jobs by employer", err)
	}
	return jobs, nil
}

// ListByStatus 按状态筛选岗位，仅管理员可用。
func (s *JobService) ListByStatus(ctx context.Context, actor Actor, status database.JobStatus) ([]database.Job, error) {
	if err := Authorize(actor, ActionJobListAll, Resource{}); err != nil {
		return nil, err
	}
	if !status.Valid() {
		return nil, NewValidationError("invalid job status", map[string]string{
			"status": "status must be pending, approved, or rejected",
		})
	}
	jobs, err := s.jobs.ListByStatus(ctx, status)
	if err != nil {
		return nil, NewStoreError("list jobs by status", err)
	}
	return jobs, nil
}

func (s *JobService) findJob(ctx context.Context, jobID uint) (*database.Job, error) {
	job, err := s.jobs.FindByID(ctx, jobID)
	if err != nil {
		if errors.Is(err, ErrNoRecord) {
			return nil, NewError(KindNotFound, fmt.Sprintf("job %d not found", jobID))
		}
		return nil, NewStoreError("find job", err)
	}
	return job, nil
}
