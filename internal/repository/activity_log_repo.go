package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/Hari-r31/internship-platform/internal/model"
)

// ActivityLogFilter 活动日志查询过滤条件
type ActivityLogFilter struct {
	Action    string
	StartDate *time.Time
	EndDate   *time.Time
}

// ActivityLogRepository 活动日志数据访问接口
// 日志仅追加：不提供更新或删除方法
type ActivityLogRepository interface {
	// Append 独立写入一条日志（登录、登出等无其他实体变更的事件）
	Append(ctx context.Context, entry *model.ActivityLog) error
	// ListByUser 查询指定用户自己的日志，按时间倒序
	ListByUser(ctx context.Context, userID string, filter *ActivityLogFilter, offset, limit int) ([]model.ActivityLog, int64, error)
}

// appendLog 在给定事务内追加一条日志
// 各实体 Repository 在变更事务中调用，保证实体写入与日志落库同提交同回滚
func appendLog(tx *gorm.DB, entry *model.ActivityLog) error {
	if entry.Timestamp.IsZero() {
		entry.Timestamp = time.Now()
	}
	return tx.Create(entry).Error
}

// activityLogRepo ActivityLogRepository 的 GORM 实现
type activityLogRepo struct {
	db *gorm.DB
}

// NewActivityLogRepo 创建 ActivityLogRepository 实例
func NewActivityLogRepo(db *gorm.DB) ActivityLogRepository {
	return &activityLogRepo{db: db}
}

func (r *activityLogRepo) Append(ctx context.Context, entry *model.ActivityLog) error {
	return appendLog(r.db.WithContext(ctx), entry)
}

func (r *activityLogRepo) ListByUser(ctx context.Context, userID string, filter *ActivityLogFilter, offset, limit int) ([]model.ActivityLog, int64, error) {
	db := r.db.WithContext(ctx).Model(&model.ActivityLog{}).Where("user_id = ?", userID)

	if filter != nil {
		if filter.Action != "" {
			db = db.Where("action = ?", filter.Action)
		}
		if filter.StartDate != nil {
			db = db.Where(`"timestamp" >= ?`, *filter.StartDate)
		}
		if filter.EndDate != nil {
			db = db.Where(`"timestamp" <= ?`, *filter.EndDate)
		}
	}

	var total int64
	if err := db.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var logs []model.ActivityLog
	if err := db.Order(`"timestamp" DESC`).
		Offset(offset).Limit(limit).
		Find(&logs).Error; err != nil {
		return nil, 0, err
	}

	return logs, total, nil
}
