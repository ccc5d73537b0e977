package user

import (
	"context"

	"terminal-terrace/course-platform/internal/model/user"

	"gorm.io/gorm"
)

// UserRepository 用户数据访问
type UserRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

func (r *UserRepository) FindByID(ctx context.Context, id uint) (*user.User, error) {
	var u user.User
	if err := r.db.WithContext(ctx).First(&u, id).Error; err != nil {
		return nil, err
	}
	return &u, nil
}

// FindByAccount 按用户名或邮箱查找
func (r *UserRepository) FindByAccount(ctx context.Context, account string) (*user.User, error) {
	var u user.User
	err := r.db.WithContext(ctx).
		Where("username = ? OR email = ?", account, account).
		First(&u).Error
	if err != nil {
		return nil, err
	}
	return &u, nil
}

// FindConflict 查找用户名或邮箱已被占用的用户
func (r *UserRepository) FindConflict(ctx context.Context, username, email string) (*user.User, error) {
	var u user.User
	err := r.db.WithContext(ctx).
		Where("username = ? OR email = ?", username, email).
		First(&u).Error
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *UserRepository) Create(ctx context.Context, u *user.User) error {
	return r.db.WithContext(ctx).Create(u).Error
}

func (r *UserRepository) UpdateRole(ctx context.Context, id uint, role user.Role) error {
	return r.db.WithContext(ctx).Model(&user.User{}).Where("id = ?", id).Update("role", role).Error
}
