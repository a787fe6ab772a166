package model

import "time"

// User 账号表 — 对应 users
type User struct {
	UserID       string    `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"user_id"`
	Username     string    `gorm:"type:varchar(150);not null;uniqueIndex"         json:"username"`
	Email        string    `gorm:"type:varchar(255);not null;uniqueIndex"         json:"email"`
	PasswordHash string    `gorm:"type:varchar(255);not null"                     json:"-"`
	CreatedAt    time.Time `gorm:"not null;default:CURRENT_TIMESTAMP"             json:"created_at"`
	UpdatedAt    time.Time `gorm:"not null;default:CURRENT_TIMESTAMP"             json:"updated_at"`

	// 关联：账号创建时在同一事务内建立 Profile，1:1
	Profile *Profile `gorm:"foreignKey:UserID;references:UserID" json:"profile,omitempty"`
}

// TableName 指定表名
func (User) TableName() string { return "users" }
