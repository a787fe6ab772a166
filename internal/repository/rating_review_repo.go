package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/Hari-r31/internship-platform/internal/model"
)

// ReviewRepository 评价数据访问接口
// 评价不在审计动作枚举内，变更不产生活动日志
type ReviewRepository interface {
	Create(ctx context.Context, review *model.RatingReview) error
	GetByID(ctx context.Context, id string) (*model.RatingReview, error)
	Exists(ctx context.Context, userID, internshipID string) (bool, error)
	ListByInternship(ctx context.Context, internshipID string) ([]model.RatingReview, error)
	Update(ctx context.Context, review *model.RatingReview) error
	Delete(ctx context.Context, id string) error
}

// reviewRepo ReviewRepository 的 GORM 实现
type reviewRepo struct {
	db *gorm.DB
}

// NewReviewRepo 创建 ReviewRepository 实例
func NewReviewRepo(db *gorm.DB) ReviewRepository {
	return &reviewRepo{db: db}
}

func (r *reviewRepo) Create(ctx context.Context, review *model.RatingReview) error {
	return r.db.WithContext(ctx).Create(review).Error
}

func (r *reviewRepo) GetByID(ctx context.Context, id string) (*model.RatingReview, error) {
	var review model.RatingReview
	err := r.db.WithContext(ctx).
		Preload("User").
		Where("review_id = ?", id).
		First(&review).Error
	if err != nil {
		return nil, err
	}
	return &review, nil
}

func (r *reviewRepo) Exists(ctx context.Context, userID, internshipID string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.RatingReview{}).
		Where("user_id = ? AND internship_id = ?", userID, internshipID).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *reviewRepo) ListByInternship(ctx context.Context, internshipID string) ([]model.RatingReview, error) {
	var reviews []model.RatingReview
	err := r.db.WithContext(ctx).
		Preload("User").
		Where("internship_id = ?", internshipID).
		Order("created_at DESC").
		Find(&reviews).Error
	if err != nil {
		return nil, err
	}
	return reviews, nil
}

func (r *reviewRepo) Update(ctx context.Context, review *model.RatingReview) error {
	return r.db.WithContext(ctx).Save(review).Error
}

func (r *reviewRepo) Delete(ctx context.Context, id string) error {
	result := r.db.WithContext(ctx).Where("review_id = ?", id).Delete(&model.RatingReview{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
