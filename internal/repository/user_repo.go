package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/Hari-r31/internship-platform/internal/model"
)

// UserRepository 账号与资料数据访问接口
type UserRepository interface {
	// CreateWithProfile 在同一事务内创建账号与资料
	// 账号与资料要么同时落库，要么都不落库
	CreateWithProfile(ctx context.Context, user *model.User, profile *model.Profile) error
	GetByID(ctx context.Context, id string) (*model.User, error)
	GetByUsername(ctx context.Context, username string) (*model.User, error)
	GetByEmail(ctx context.Context, email string) (*model.User, error)
	// UpdateUser 更新账号字段并在同一事务内追加日志
	UpdateUser(ctx context.Context, user *model.User, entry *model.ActivityLog) error
	// UpdateProfile 更新资料并在同一事务内追加日志
	UpdateProfile(ctx context.Context, profile *model.Profile, entry *model.ActivityLog) error
	// UpdatePassword 更新密码哈希；entry 为 nil 时不记日志（重置密码流程无会话语境）
	UpdatePassword(ctx context.Context, userID, passwordHash string, entry *model.ActivityLog) error
}

// userRepo UserRepository 的 GORM 实现
type userRepo struct {
	db *gorm.DB
}

// NewUserRepo 创建 UserRepository 实例
func NewUserRepo(db *gorm.DB) UserRepository {
	return &userRepo{db: db}
}

func (r *userRepo) CreateWithProfile(ctx context.Context, user *model.User, profile *model.Profile) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(user).Error; err != nil {
			return err
		}
		profile.UserID = user.UserID
		return tx.Create(profile).Error
	})
}

func (r *userRepo) GetByID(ctx context.Context, id string) (*model.User, error) {
	var user model.User
	err := r.db.WithContext(ctx).
		Preload("Profile").
		Where("user_id = ?", id).
		First(&user).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepo) GetByUsername(ctx context.Context, username string) (*model.User, error) {
	var user model.User
	err := r.db.WithContext(ctx).
		Preload("Profile").
		Where("username = ?", username).
		First(&user).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepo) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	var user model.User
	err := r.db.WithContext(ctx).
		Preload("Profile").
		Where("email = ?", email).
		First(&user).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepo) UpdateUser(ctx context.Context, user *model.User, entry *model.ActivityLog) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(user).Error; err != nil {
			return err
		}
		return appendLog(tx, entry)
	})
}

func (r *userRepo) UpdateProfile(ctx context.Context, profile *model.Profile, entry *model.ActivityLog) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(profile).Error; err != nil {
			return err
		}
		return appendLog(tx, entry)
	})
}

func (r *userRepo) UpdatePassword(ctx context.Context, userID, passwordHash string, entry *model.ActivityLog) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&model.User{}).
			Where("user_id = ?", userID).
			Update("password_hash", passwordHash).Error; err != nil {
			return err
		}
		if entry == nil {
			return nil
		}
		return appendLog(tx, entry)
	})
}
