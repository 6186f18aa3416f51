package store

import (
	"context"

	"gorm.io/gorm"

	"campusboard/internal/board"
	"campusboard/internal/database"
)

// ApplicationStore 是基于 GORM 的投递记录存储实现。
// 重复投递由 (job_id, student_id) 唯一索引在数据库侧拦截。
type ApplicationStore struct {
	db *gorm.DB
}

// NewApplicationStore 构造 ApplicationStore。
func NewApplicationStore(db *gorm.DB) *ApplicationStore {
	return &ApplicationStore{db: db}
}

var _ board.ApplicationStore = (*ApplicationStore)(nil)

func (s *ApplicationStore) Create(ctx context.Context, app *database.JobApplication) error {
	return translate(s.db.WithContext(ctx).Create(app).Error)
}

func (s *ApplicationStore) FindByID(ctx context.Context, id uint) (*database.JobApplication, error) {
	var app database.JobApplication
	if err := s.db.WithContext(ctx).First(&app, id).Error; err != nil {
		return nil, translate(err)
	}
	return &app, nil
}

func (s *ApplicationStore) ListByJob(ctx context.Context, jobID uint) ([]database.JobApplication, error) {
	var apps []database.JobApplication
	if err := s.db.WithContext(ctx).Where("job_id = ?", jobID).Order("applied_at").Find(&apps).Error; err != nil {
		return nil, translate(err)
	}
	return apps, nil
}

func (s *ApplicationStore) ListByStudent(ctx context.Context, studentID uint) ([]database.JobApplication, error) {
	var apps []database.JobApplication
	if err := s.db.WithContext(ctx).Where("student_id = ?", studentID).Order("applied_at").Find(&apps).Error; err != nil {
		return nil, translate(err)
	}
	return apps, nil
}

func (s *ApplicationStore) Update(ctx context.Context, app *database.JobApplication) error {
	return translate(s.db.WithContext(ctx).Save(app).Error)
}
