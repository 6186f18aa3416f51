package board

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"campusboard/internal/database"
)

// PasswordHasher 是不透明的口令哈希能力，由认证层提供。
type PasswordHasher func(password string) (string, error)

// UserService 负责注册、查询与管理员的账号状态管理。
type UserService struct {
	users UserStore
	hash  PasswordHasher
	now   Clock
}

// NewUserService 构造用户服务；now 为空时退回 time.Now。
func NewUserService(users UserStore, hash PasswordHasher, now Clock) *UserService {
	if now == nil {
		now = time.Now
	}
	return &UserService{users: users, hash: hash, now: now}
}

// RegisterInput 汇集注册所需字段。
type RegisterInput struct {
	Email    string
	Password string
	Name     string
	Role     database.Role
}

// Register 创建新账号，状态默认 ACTIVE。
// 邮箱重复属于校验失败；管理员账号不开放自助注册，由 cmd/admin 初始化。
func (s *UserService) Register(ctx context.Context, in RegisterInput) (*database.User, error) {
	fields := map[string]string{}
	email := strings.ToLower(strings.TrimSpace(in.Email))
	if email == "" || !strings.Contains(email, "@") {
		fields["email"] = "a valid email is required"
	}
	if in.Password == "" {
		fields["password"] = "password is required"
	}
	if in.Role != database.RoleStudent && in.Role != database.RoleEmployer {
		fields["role"] = "role must be student or employer"
	}
	if len(fields) > 0 {
		return nil, NewValidationError("invalid registration", fields)
	}

	exists, err := s.users.ExistsByEmail(ctx, email)
	if err != nil {
		return nil, NewStoreError("check email", err)
	}
	if exists {
		return nil, duplicateEmailError()
	}

	hashed, err := s.hash(in.Password)
	if err != nil {
		return nil, NewStoreError("hash password", err)
	}

	now := s.now()
	user := &database.User{
		Email:        email,
		PasswordHash: hashed,
		Name:         strings.TrimSpace(in.Name),
		Role:         in.Role,
		Status:       database.UserActive,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.users.Create(ctx, user); err != nil {
		// 邮箱唯一索引兜底并发注册。
		if errors.Is(err, ErrDuplicate) {
			return nil, duplicateEmailError()
		}
		return nil, NewStoreError("create user", err)
	}
	return user, nil
}

func duplicateEmailError() *Error {
	return &Error{
		Kind:    KindDuplicate,
		Message: "email is already registered",
		Fields:  map[string]string{"email": "email is already registered"},
	}
}

// FindByEmail 按邮箱查询账号，不存在时返回 NotFound。
func (s *UserService) FindByEmail(ctx context.Context, email string) (*database.User, error) {
	user, err := s.users.FindByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		if errors.Is(err, ErrNoRecord) {
			return nil, NewError(KindNotFound, "user not found")
		}
		return nil, NewStoreError("find user by email", err)
	}
	return user, nil
}

// FindByID 按 ID 查询账号，不存在时返回 NotFound。
func (s *UserService) FindByID(ctx context.Context, id uint) (*database.User, error) {
	user, err := s.users.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, ErrNoRecord) {
			return nil, NewError(KindNotFound, fmt.Sprintf("user %d not found", id))
		}
		return nil, NewStoreError("find user", err)
	}
	return user, nil
}

// List 返回全部账号，仅管理员可用。
func (s *UserService) List(ctx context.Context, actor Actor) ([]database.User, error) {
	if err := Authorize(actor, ActionUserList, Resource{}); err != nil {
		return nil, err
	}
	users, err := s.users.List(ctx)
	if err != nil {
		return nil, NewStoreError("list users", err)
	}
	return users, nil
}

// UpdateStatus 由管理员启用/停用账号。
func (s *UserService) UpdateStatus(ctx context.Context, actor Actor, userID uint, status database.UserStatus) (*database.User, error) {
	if err := Authorize(actor, ActionUserUpdateStatus, Resource{}); err != nil {
		return nil, err
	}
	if !status.Valid() {
		return nil, NewValidationError("invalid user status", map[string]string{
			"status": "status must be active or inactive",
		})
	}
	user, err := s.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	user.Status = status
	user.UpdatedAt = s.now()
	if err := s.users.Update(ctx, user); err != nil {
		return nil, NewStoreError("update user", err)
	}
	return user, nil
}
