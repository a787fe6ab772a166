package model

import "time"

// 活动日志动作枚举
const (
	ActionInternshipPosted         = "internship_posted"
	ActionInternshipUpdated        = "internship_updated"
	ActionInternshipDeleted        = "internship_deleted"
	ActionApplicationSubmitted     = "application_submitted"
	ActionApplicationStatusChanged = "application_status_changed"
	ActionApplicationWithdrawn     = "application_withdrawn"
	ActionBookmarkAdded            = "bookmark_added"
	ActionBookmarkRemoved          = "bookmark_removed"
	ActionProfileUpdated           = "profile_updated"
	ActionProfilePictureUpdated    = "profile_picture_updated"
	ActionLogin                    = "login"
	ActionLogout                   = "logout"
	ActionPasswordChanged          = "password_changed"
)

// validActions 全部合法动作取值（用于查询过滤校验）
var validActions = map[string]bool{
	ActionInternshipPosted:         true,
	ActionInternshipUpdated:        true,
	ActionInternshipDeleted:        true,
	ActionApplicationSubmitted:     true,
	ActionApplicationStatusChanged: true,
	ActionApplicationWithdrawn:     true,
	ActionBookmarkAdded:            true,
	ActionBookmarkRemoved:          true,
	ActionProfileUpdated:           true,
	ActionProfilePictureUpdated:    true,
	ActionLogin:                    true,
	ActionLogout:                   true,
	ActionPasswordChanged:          true,
}

// ValidAction 校验动作取值
func ValidAction(action string) bool {
	return validActions[action]
}

// ActivityLog 活动日志表 — 对应 activity_logs
// 仅追加：作为其他实体变更的事务内副作用写入，此后不再更新或删除
type ActivityLog struct {
	ActivityLogID   string    `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"activity_log_id"`
	UserID          string    `gorm:"type:uuid;not null;index:idx_activity_logs_user_ts,priority:1" json:"user_id"`
	Action          string    `gorm:"type:varchar(50);not null"                      json:"action"`
	RelatedObjectID *string   `gorm:"type:uuid"                                      json:"related_object_id,omitempty"`
	Details         string    `gorm:"type:text;not null;default:''"                  json:"details"`
	Timestamp       time.Time `gorm:"column:timestamp;not null;default:CURRENT_TIMESTAMP;index:idx_activity_logs_user_ts,priority:2,sort:desc" json:"timestamp"`
}

// TableName 指定表名
func (ActivityLog) TableName() string { return "activity_logs" }
