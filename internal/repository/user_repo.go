package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"marketplace_dev_v1/internal/model"
)

// ==================== UserRepository 用户仓库 ====================

// UserRepository 用户仓库接口
type UserRepository interface {
	Create(ctx context.Context, user *model.User) error
	GetByID(ctx context.Context, id int64) (*model.User, error)
	GetByEmail(ctx context.Context, email string) (*model.User, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	Update(ctx context.Context, user *model.User) error

	// 账号注销
	// DeleteClient 仅删除买家账号，返回受影响行数
	DeleteClient(ctx context.Context, id int64) (int64, error)
	// DeactivateSeller 仅停用卖家账号，返回受影响行数
	DeactivateSeller(ctx context.Context, id int64) (int64, error)
}

// ==================== 实现 ====================

type userRepository struct {
	db *gorm.DB
}

// NewUserRepository 创建用户仓库
func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) Create(ctx context.Context, user *model.User) error {
	return r.db.WithContext(ctx).Create(user).Error
}

func (r *userRepository) GetByID(ctx context.Context, id int64) (*model.User, error) {
	var user model.User
	err := r.db.WithContext(ctx).First(&user, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	var user model.User
	err := r.db.WithContext(ctx).Where("email = ?", email).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.User{}).Where("email = ?", email).Count(&count).Error
	return count > 0, err
}

func (r *userRepository) Update(ctx context.Context, user *model.User) error {
	return r.db.WithContext(ctx).Save(user).Error
}

func (r *userRepository) DeleteClient(ctx context.Context, id int64) (int64, error) {
	result := r.db.WithContext(ctx).
		Where("id = ? AND role = ?", id, model.RoleClient).
		Delete(&model.User{})
	return result.RowsAffected, result.Error
}

func (r *userRepository) DeactivateSeller(ctx context.Context, id int64) (int64, error) {
	result := r.db.WithContext(ctx).Model(&model.User{}).
		Where("id = ? AND role = ?", id, model.RoleSeller).
		Update("is_active", false)
	return result.RowsAffected, result.Error
}
