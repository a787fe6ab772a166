package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/Hari-r31/internship-platform/internal/model"
)

// BookmarkRepository 收藏数据访问接口
// 变更方法同时接收日志条目，实体写入与日志追加在同一事务内提交
type BookmarkRepository interface {
	Create(ctx context.Context, bookmark *model.Bookmark, entry *model.ActivityLog) error
	GetByUserAndInternship(ctx context.Context, userID, internshipID string) (*model.Bookmark, error)
	Exists(ctx context.Context, userID, internshipID string) (bool, error)
	// ListByUser 返回用户全部收藏，预加载岗位用于读取时快照
	ListByUser(ctx context.Context, userID string) ([]model.Bookmark, error)
	Delete(ctx context.Context, bookmarkID string, entry *model.ActivityLog) error
}

// bookmarkRepo BookmarkRepository 的 GORM 实现
type bookmarkRepo struct {
	db *gorm.DB
}

// NewBookmarkRepo 创建 BookmarkRepository 实例
func NewBookmarkRepo(db *gorm.DB) BookmarkRepository {
	return &bookmarkRepo{db: db}
}

func (r *bookmarkRepo) Create(ctx context.Context, bookmark *model.Bookmark, entry *model.ActivityLog) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(bookmark).Error; err != nil {
			return err
		}
		return appendLog(tx, entry)
	})
}

func (r *bookmarkRepo) GetByUserAndInternship(ctx context.Context, userID, internshipID string) (*model.Bookmark, error) {
	var bookmark model.Bookmark
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND internship_id = ?", userID, internshipID).
		First(&bookmark).Error
	if err != nil {
		return nil, err
	}
	return &bookmark, nil
}

func (r *bookmarkRepo) Exists(ctx context.Context, userID, internshipID string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Bookmark{}).
		Where("user_id = ? AND internship_id = ?", userID, internshipID).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *bookmarkRepo) ListByUser(ctx context.Context, userID string) ([]model.Bookmark, error) {
	var bookmarks []model.Bookmark
	err := r.db.WithContext(ctx).
		Preload("Internship").
		Where("user_id = ?", userID).
		Order("bookmarked_on DESC").
		Find(&bookmarks).Error
	if err != nil {
		return nil, err
	}
	return bookmarks, nil
}

func (r *bookmarkRepo) Delete(ctx context.Context, bookmarkID string, entry *model.ActivityLog) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Where("bookmark_id = ?", bookmarkID).Delete(&model.Bookmark{})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return appendLog(tx, entry)
	})
}
