package board

import (
	"context"
	"errors"
	"time"

	"campusboard/internal/database"
)

// 存储层哨兵错误：核心层据此区分“记录不存在”与“唯一约束冲突”，
// 其它失败一律视为不透明的存储错误。
var (
	ErrNoRecord  = errors.New("record not found")
	ErrDuplicate = errors.New("duplicate record")
)

// Clock 注入当前时间，保证核心逻辑可测、可复现。
type Clock func() time.Time

// UserStore 是身份存储能力。
type UserStore interface {
	Create(ctx context.Context, user *database.User) error
	FindByID(ctx context.Context, id uint) (*database.User, error)
	FindByEmail(ctx context.Context, email string) (*database.User, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	List(ctx context.Context) ([]database.User, error)
	Update(ctx context.Context, user *database.User) error
}

// JobStore 是岗位存储能力。Delete 必须在同一事务内级联删除投递记录。
type JobStore interface {
	Create(ctx context.Context, job *database.Job) error
	FindByID(ctx context.Context, id uint) (*database.Job, error)
	ListByStatus(ctx context.Context, status database.JobStatus) ([]database.Job, error)
	ListByEmployer(ctx context.Context, employerID uint) ([]database.Job, error)
	Update(ctx context.Context, job *database.Job) error
	Delete(ctx context.Context, id uint) error
}

// ApplicationStore 是投递记录存储能力。
// Create 依赖 (job_id, student_id) 的数据库唯一约束：并发投递同一岗位时，
// 有且只有一条记录落库，其余返回 ErrDuplicate。
type ApplicationStore interface {
	Create(ctx context.Context, app *database.JobApplication) error
	FindByID(ctx context.Context, id uint) (*database.JobApplication, error)
	ListByJob(ctx context.Context, jobID uint) ([]database.JobApplication, error)
	ListByStudent(ctx context.Context, studentID uint) ([]database.JobApplication, error)
	Update(ctx context.Context, app *database.JobApplication) error
}
