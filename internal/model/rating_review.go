package model

import "time"

// RatingReview 评价表 — 对应 rating_reviews
// (internship_id, user_id) 唯一：一人一岗一条评价
type RatingReview struct {
	ReviewID     string    `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"review_id"`
	UserID       string    `gorm:"type:uuid;not null;uniqueIndex:uq_rating_reviews_internship_user,priority:2" json:"user_id"`
	InternshipID string    `gorm:"type:uuid;not null;uniqueIndex:uq_rating_reviews_internship_user,priority:1" json:"internship_id"`
	Rating       int       `gorm:"type:smallint;not null"                         json:"rating"` // 1-5
	Review       *string   `gorm:"type:text"                                      json:"review,omitempty"`
	CreatedAt    time.Time `gorm:"not null;default:CURRENT_TIMESTAMP"             json:"created_at"`

	// 关联
	User *User `gorm:"foreignKey:UserID;references:UserID;constraint:OnDelete:CASCADE" json:"user,omitempty"`
}

// TableName 指定表名
func (RatingReview) TableName() string { return "rating_reviews" }
