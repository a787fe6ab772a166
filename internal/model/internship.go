package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// 岗位状态取值
const (
	InternshipStatusOpen     = "open"
	InternshipStatusClosed   = "closed"
	InternshipStatusArchived = "archived"
)

// 岗位类型取值
const (
	InternshipTypeFullTime = "full-time"
	InternshipTypePartTime = "part-time"
	InternshipTypeRemote   = "remote"
	InternshipTypeOnSite   = "on-site"
)

// Internship 实习岗位表 — 对应 internships
type Internship struct {
	InternshipID   string           `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"internship_id"`
	Title          string           `gorm:"type:varchar(255);not null"                     json:"title"`
	Description    string           `gorm:"type:text;not null"                             json:"description"`
	Company        string           `gorm:"type:varchar(255);not null"                     json:"company"`
	Location       string           `gorm:"type:varchar(255);not null"                     json:"location"`
	Stipend        *decimal.Decimal `gorm:"type:numeric(10,2)"                             json:"stipend,omitempty"` // NULL 表示未设定，而非 0
	InternshipType string           `gorm:"type:varchar(100);not null"                     json:"internship_type"`
	ApplyLink      *string          `gorm:"type:varchar(500)"                              json:"apply_link,omitempty"`
	PostedOn       time.Time        `gorm:"not null;default:CURRENT_TIMESTAMP"             json:"posted_on"`
	Status         string           `gorm:"type:varchar(10);not null;default:'open'"       json:"status"`
	ExpiryDate     *time.Time       `gorm:"type:date"                                      json:"expiry_date,omitempty"`
	RecruiterID    string           `gorm:"type:uuid;not null;index"                       json:"recruiter_id"`

	// 关联
	Recruiter *User `gorm:"foreignKey:RecruiterID;references:UserID;constraint:OnDelete:CASCADE" json:"recruiter,omitempty"`
}

// TableName 指定表名
func (Internship) TableName() string { return "internships" }

// ValidInternshipType 校验岗位类型取值
func ValidInternshipType(t string) bool {
	switch t {
	case InternshipTypeFullTime, InternshipTypePartTime, InternshipTypeRemote, InternshipTypeOnSite:
		return true
	}
	return false
}

// ValidInternshipStatus 校验岗位状态取值
func ValidInternshipStatus(s string) bool {
	switch s {
	case InternshipStatusOpen, InternshipStatusClosed, InternshipStatusArchived:
		return true
	}
	return false
}
