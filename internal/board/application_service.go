package board

import (
	"context"
	"errors"
	"fmt"
	"time"

	"campusboard/internal/database"
)

// ApplicationService 负责学生投递与雇主查看/评审投递记录。
type ApplicationService struct {
	apps ApplicationStore
	jobs JobStore
	now  Clock
}

// NewApplicationService 构造投递服务；now 为空时退回 time.Now。
func NewApplicationService(apps ApplicationStore, jobs JobStore, now Clock) *ApplicationService {
	if now == nil {
		now = time.Now
	}
	return &ApplicationService{apps: apps, jobs: jobs, now: now}
}

// Apply 学生投递岗位。仅 APPROVED 岗位接受投递；
// 重复投递依赖存储层唯一约束拦截，不做先查后插。
func (s *ApplicationService) Apply(ctx context.Context, actor Actor, jobID uint) (*database.JobApplication, error) {
	if err := Authorize(actor, ActionApplicationSubmit, Resource{}); err != nil {
		return nil, err
	}
	job, err := s.findJob(ctx, jobID)
	if err != nil {
		return nil, err
	}
	if job.Status != database.JobApproved {
		return nil, NewValidationError("job is not open for applications", map[string]string{
			"job_id": fmt.Sprintf("job %d is not approved", jobID),
		})
	}

	app := &database.JobApplication{
		JobID:     job.ID,
		StudentID: actor.ID,
		Status:    database.ApplicationSubmitted,
		AppliedAt: s.now(),
	}
	if err := s.apps.Create(ctx, app); err != nil {
		if errors.Is(err, ErrDuplicate) {
			return nil, NewError(KindDuplicate, "you already applied to this job")
		}
		return nil, NewStoreError("create application", err)
	}
	return app, nil
}

// ListForJob 返回某岗位的全部投递记录，仅岗位归属雇主可查看。
func (s *ApplicationService) ListForJob(ctx context.Context, actor Actor, jobID uint) ([]database.JobApplication, error) {
	job, err := s.findJob(ctx, jobID)
	if err != nil {
		return nil, err
	}
	if err := Authorize(actor, ActionApplicationListForJob, Resource{OwnerID: job.EmployerID}); err != nil {
		return nil, err
	}
	apps, err := s.apps.ListByJob(ctx, jobID)
	if err != nil {
		return nil, NewStoreError("list applications by job", err)
	}
	return apps, nil
}

// ListForStudent 返回学生自己的全部投递记录。
func (s *ApplicationService) ListForStudent(ctx context.Context, actor Actor) ([]database.JobApplication, error) {
	if err := Authorize(actor, ActionApplicationListOwn, Resource{}); err != nil {
		return nil, err
	}
	apps, err := s.apps.ListByStudent(ctx, actor.ID)
	if err != nil {
		return nil, NewStoreError("list applications by student", err)
	}
	return apps, nil
}

// UpdateStatus 由岗位归属雇主评审投递（ACCEPTED / REJECTED）。
func (s *ApplicationService) UpdateStatus(ctx context.Context, actor Actor, applicationID uint, status database.ApplicationStatus) (*database.JobApplication, error) {
	app, err := s.apps.FindByID(ctx, applicationID)
	if err != nil {
		if errors.Is(err, ErrNoRecord) {
			return nil, NewError(KindNotFound, fmt.Sprintf("application %d not found", applicationID))
		}
		return nil, NewStoreError("find application", err)
	}
	job, err := s.findJob(ctx, app.JobID)
	if err != nil {
		return nil, err
	}
	if err := Authorize(actor, ActionApplicationReview, Resource{OwnerID: job.EmployerID}); err != nil {
		return nil, err
	}
	if status != database.ApplicationAccepted && status != database.ApplicationRejected {
		return nil, NewValidationError("invalid application status", map[string]string{
			"status": "status must be accepted or rejected",
		})
	}

	app.Status = status
	if err := s.apps.Update(ctx, app); err != nil {
		return nil, NewStoreError("update application", err)
	}
	return app, nil
}

func (s *ApplicationService) findJob(ctx context.Context, jobID uint) (*database.Job, error) {
	job, err := s.jobs.FindByID(ctx, jobID)
	if err != nil {
		if errors.Is(err, ErrNoRecord) {
			return nil, NewError(KindNotFound, fmt.Sprintf("job %d not found", jobID))
		}
		return nil, NewStoreError("find job", err)
	}
	return job, nil
}
