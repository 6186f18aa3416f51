package store

import (
	"context"

	"gorm.io/gorm"

	"campusboard/internal/board"
	"campusboard/internal/database"
)

// JobStore 是基于 GORM 的岗位存储实现。
type JobStore struct {
	db *gorm.DB
}

// NewJobStore 构造 JobStore。
func NewJobStore(db *gorm.DB) *JobStore {
	return &JobStore{db: db}
}

var _ board.JobStore = (*JobStore)(nil)

func (s *JobStore) Create(ctx context.Context, job *database.Job) error {
	return translate(s.db.WithContext(ctx).Create(job).Error)
}

func (s *JobStore) FindByID(ctx context.Context, id uint) (*database.Job, error) {
	var job database.Job
	if err := s.db.WithContext(ctx).First(&job, id).Error; err != nil {
		return nil, translate(err)
	}
	return &job, nil
}

func (s *JobStore) ListByStatus(ctx context.Context, status database.JobStatus) ([]database.Job, error) {
	var jobs []database.Job
	if err := s.db.WithContext(ctx).Where("status = ?", status).Order("created_at DESC").Find(&jobs).Error; err != nil {
		return nil, translate(err)
	}
	return jobs, nil
}

func (s *JobStore) ListByEmployer(ctx context.Context, employerID uint) ([]database.Job, error) {
	var jobs []database.Job
	if err := s.db.WithContext(ctx).Where("employer_id = ?", employerID).Order("created_at DESC").Find(&jobs).Error; err != nil {
		return nil, translate(err)
	}
	return jobs, nil
}

func (s *JobStore) Update(ctx context.Context, job *database.Job) error {
	return translate(s.db.WithContext(ctx).Save(job).Error)
}

// Delete 在同一事务内删除岗位及其全部投递记录，保证投递不会遗留。
func (s *JobStore) Delete(ctx context.Context, id uint) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("job_id = ?", id).Delete(&database.JobApplication{}).Error; err != nil {
			return err
		}
		return tx.Delete(&database.Job{}, id).Error
	})
	return translate(err)
}
