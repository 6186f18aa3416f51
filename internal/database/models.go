package database

import "time"

// Role 表示账号角色，决定访问策略允许的操作。
type Role string

const (
	RoleStudent  Role = "student"
	RoleEmployer Role = "employer"
	RoleAdmin    Role = "admin"
)

// Valid 判断角色是否为已知取值。
func (r Role) Valid() bool {
	switch r {
	case RoleStudent, RoleEmployer, RoleAdmin:
		return true
	}
	return false
}

// UserStatus 表示账号状态（管理员可停用账号）。
type UserStatus string

const (
	UserActive   UserStatus = "active"
	UserInactive UserStatus = "inactive"
)

// Valid 判断账号状态是否为已知取值。
func (s UserStatus) Valid() bool {
	return s == UserActive || s == UserInactive
}

// JobStatus 表示岗位的审核状态。
type JobStatus string

const (
	JobPending  JobStatus = "pending"
	JobApproved JobStatus = "approved"
	JobRejected JobStatus = "rejected"
)

// Valid 判断岗位状态是否为已知取值。
func (s JobStatus) Valid() bool {
	switch s {
	case JobPending, JobApproved, JobRejected:
		return true
	}
	return false
}

// ApplicationStatus 表示投递记录的状态。
type ApplicationStatus string

const (
	ApplicationSubmitted ApplicationStatus = "submitted"
	ApplicationAccepted  ApplicationStatus = "accepted"
	ApplicationRejected  ApplicationStatus = "rejected"
)

// Valid 判断投递状态是否为已知取值。
func (s ApplicationStatus) Valid() bool {
	switch s {
	case ApplicationSubmitted, ApplicationAccepted, ApplicationRejected:
		return true
	}
	return false
}

// User 表示系统中的账号信息。
// 时间戳由业务层显式注入，不依赖数据库默认值。
type User struct {
	ID           uint       `gorm:"primaryKey"`
	Email        string     `gorm:"uniqueIndex;size:255"`
	PasswordHash string     `gorm:"size:255"`
	Name         string     `gorm:"size:100"`
	Role         Role       `gorm:"size:16;index"`
	Status       UserStatus `gorm:"size:16"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Job 表示雇主发布的岗位。
// 归属关系通过 EmployerID 外键表达，创建后不可转移。
type Job struct {
	ID          uint   `gorm:"primaryKey"`
	EmployerID  uint   `gorm:"not null;index"`
	Title       string `gorm:"size:100"`
	Description string `gorm:"type:text"`
	Location    string `gorm:"size:255"`
	Salary      *float64
	Category    string    `gorm:"size:100"`
	Deadline    string    `gorm:"size:64"`
	Status      JobStatus `gorm:"size:16;index"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// JobApplication 表示学生对岗位的投递记录。
// (job_id, student_id) 的唯一约束由数据库保证，防止并发重复投递。
type JobApplication struct {
	ID        uint              `gorm:"primaryKey"`
	JobID     uint              `gorm:"not null;uniqueIndex:idx_job_student"`
	StudentID uint              `gorm:"not null;uniqueIndex:idx_job_student"`
	Status    ApplicationStatus `gorm:"size:16"`
	AppliedAt time.Time
}
