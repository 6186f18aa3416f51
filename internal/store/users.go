package store

import (
	"context"

	"gorm.io/gorm"

	"campusboard/internal/board"
	"campusboard/internal/database"
)

// UserStore 是基于 GORM 的身份存储实现。
type UserStore struct {
	db *gorm.DB
}

// NewUserStore 构造 UserStore。
func NewUserStore(db *gorm.DB) *UserStore {
	return &UserStore{db: db}
}

var _ board.UserStore = (*UserStore)(nil)

func (s *UserStore) Create(ctx context.Context, user *database.User) error {
	return translate(s.db.WithContext(ctx).Create(user).Error)
}

func (s *UserStore) FindByID(ctx context.Context, id uint) (*database.User, error) {
	var user database.User
	if err := s.db.WithContext(ctx).First(&user, id).Error; err != nil {
		return nil, translate(err)
	}
	return &user, nil
}

func (s *UserStore) FindByEmail(ctx context.Context, email string) (*database.User, error) {
	var user database.User
	if err := s.db.WithContext(ctx).Where("email = ?", email).First(&user).Error; err != nil {
		return nil, translate(err)
	}
	return &user, nil
}

func (s *UserStore) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	var count int64
	if err := s.db.WithContext(ctx).Model(&database.User{}).Where("email = ?", email).Count(&count).Error; err != nil {
		return false, translate(err)
	}
	return count > 0, nil
}

func (s *UserStore) List(ctx context.Context) ([]database.User, error) {
	var users []database.User
	if err := s.db.WithContext(ctx).Order("id").Find(&users).Error; err != nil {
		return nil, translate(err)
	}
	return users, nil
}

func (s *UserStore) Update(ctx context.Context, user *database.User) error {
	return translate(s.db.WithContext(ctx).Save(user).Error)
}
