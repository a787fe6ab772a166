package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/Hari-r31/internship-platform/internal/model"
)

// ApplicationRepository 申请数据访问接口
// 变更方法同时接收日志条目，实体写入与日志追加在同一事务内提交
type ApplicationRepository interface {
	Create(ctx context.Context, application *model.Application, entry *model.ActivityLog) error
	GetByID(ctx context.Context, id string) (*model.Application, error)
	Exists(ctx context.Context, userID, internshipID string) (bool, error)
	ListByUser(ctx context.Context, userID string) ([]model.Application, error)
	ListByInternship(ctx context.Context, internshipID string) ([]model.Application, error)
	UpdateStatus(ctx context.Context, application *model.Application, entry *model.ActivityLog) error
	Delete(ctx context.Context, id string, entry *model.ActivityLog) error
}

// applicationRepo ApplicationRepository 的 GORM 实现
type applicationRepo struct {
	db *gorm.DB
}

// NewApplicationRepo 创建 ApplicationRepository 实例
func NewApplicationRepo(db *gorm.DB) ApplicationRepository {
	return &applicationRepo{db: db}
}

func (r *applicationRepo) Create(ctx context.Context, application *model.Application, entry *model.ActivityLog) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(application).Error; err != nil {
			return err
		}
		entry.RelatedObjectID = &application.ApplicationID
		return appendLog(tx, entry)
	})
}

func (r *applicationRepo) GetByID(ctx context.Context, id string) (*model.Application, error) {
	var application model.Application
	err := r.db.WithContext(ctx).
		Preload("Internship").
		Preload("User.Profile").
		Where("application_id = ?", id).
		First(&application).Error
	if err != nil {
		return nil, err
	}
	return &application, nil
}

func (r *applicationRepo) Exists(ctx context.Context, userID, internshipID string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Application{}).
		Where("user_id = ? AND internship_id = ?", userID, internshipID).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *applicationRepo) ListByUser(ctx context.Context, userID string) ([]model.Application, error) {
	var applications []model.Application
	err := r.db.WithContext(ctx).
		Preload("Internship").
		Preload("User.Profile").
		Where("user_id = ?", userID).
		Order("applied_on DESC").
		Find(&applications).Error
	if err != nil {
		return nil, err
	}
	return applications, nil
}

func (r *applicationRepo) ListByInternship(ctx context.Context, internshipID string) ([]model.Application, error) {
	var applications []model.Application
	err := r.db.WithContext(ctx).
		Preload("Internship").
		Preload("User.Profile").
		Where("internship_id = ?", internshipID).
		Order("applied_on DESC").
		Find(&applications).Error
	if err != nil {
		return nil, err
	}
	return applications, nil
}

func (r *applicationRepo) UpdateStatus(ctx context.Context, application *model.Application, entry *model.ActivityLog) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&model.Application{}).
			Where("application_id = ?", application.ApplicationID).
			Update("status", application.Status).Error; err != nil {
			return err
		}
		return appendLog(tx, entry)
	})
}

func (r *applicationRepo) Delete(ctx context.Context, id string, entry *model.ActivityLog) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Where("application_id = ?", id).Delete(&model.Application{})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return appendLog(tx, entry)
	})
}
