package model

import "time"

// Bookmark 收藏表 — 对应 bookmarks
// (user_id, internship_id) 由数据库唯一约束保证一人一岗一收藏
type Bookmark struct {
	BookmarkID   string    `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"                          json:"bookmark_id"`
	UserID       string    `gorm:"type:uuid;not null;uniqueIndex:uq_bookmarks_user_internship,priority:1"  json:"user_id"`
	InternshipID string    `gorm:"type:uuid;not null;uniqueIndex:uq_bookmarks_user_internship,priority:2"  json:"internship_id"`
	BookmarkedOn time.Time `gorm:"not null;default:CURRENT_TIMESTAMP"                                      json:"bookmarked_on"`

	// 关联
	Internship *Internship `gorm:"foreignKey:InternshipID;references:InternshipID;constraint:OnDelete:CASCADE" json:"internship,omitempty"`
}

// TableName 指定表名
func (Bookmark) TableName() string { return "bookmarks" }
