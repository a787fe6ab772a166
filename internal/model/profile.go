package model

import "time"

// 角色取值
const (
	RoleStudent   = "student"
	RoleRecruiter = "recruiter"
)

// Profile 用户资料表 — 对应 profiles（与 users 1:1）
type Profile struct {
	ProfileID         string    `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"profile_id"`
	UserID            string    `gorm:"type:uuid;not null;uniqueIndex"                 json:"user_id"`
	FirstName         *string   `gorm:"type:varchar(100)"                              json:"first_name,omitempty"`
	LastName          *string   `gorm:"type:varchar(100)"                              json:"last_name,omitempty"`
	Bio               string    `gorm:"type:text;not null;default:''"                  json:"bio"`
	Location          string    `gorm:"type:varchar(255);not null;default:''"          json:"location"`
	Role              string    `gorm:"type:varchar(10);not null"                      json:"role"` // student | recruiter，创建后不可经普通更新修改
	ProfilePictureURL *string   `gorm:"type:varchar(500)"                              json:"profile_picture_url,omitempty"`
	CreatedAt         time.Time `gorm:"not null;default:CURRENT_TIMESTAMP"             json:"created_at"`
	UpdatedAt         time.Time `gorm:"not null;default:CURRENT_TIMESTAMP"             json:"updated_at"`
}

// TableName 指定表名
func (Profile) TableName() string { return "profiles" }
