package model

import "time"

// 申请状态取值
// pending 为初始态；accepted / rejected 为终态，无后续流转
const (
	ApplicationStatusPending  = "pending"
	ApplicationStatusAccepted = "accepted"
	ApplicationStatusRejected = "rejected"
)

// Application 申请表 — 对应 applications
// (internship_id, user_id) 由数据库唯一约束保证一人一岗一申请
type Application struct {
	ApplicationID string    `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"           json:"application_id"`
	UserID        string    `gorm:"type:uuid;not null;uniqueIndex:uq_applications_internship_user,priority:2" json:"user_id"`
	InternshipID  string    `gorm:"type:uuid;not null;uniqueIndex:uq_applications_internship_user,priority:1" json:"internship_id"`
	Status        string    `gorm:"type:varchar(10);not null;default:'pending'"              json:"status"`
	AppliedOn     time.Time `gorm:"not null;default:CURRENT_TIMESTAMP"                       json:"applied_on"`
	ResumeURL     *string   `gorm:"type:varchar(500)"                                        json:"resume_url,omitempty"`

	// 关联
	User       *User       `gorm:"foreignKey:UserID;references:UserID;constraint:OnDelete:CASCADE"             json:"user,omitempty"`
	Internship *Internship `gorm:"foreignKey:InternshipID;references:InternshipID;constraint:OnDelete:CASCADE" json:"internship,omitempty"`
}

// TableName 指定表名
func (Application) TableName() string { return "applications" }

// ValidApplicationStatus 校验申请状态取值
func ValidApplicationStatus(s string) bool {
	switch s {
	case ApplicationStatusPending, ApplicationStatusAccepted, ApplicationStatusRejected:
		return true
	}
	return false
}
