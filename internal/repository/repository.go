package repository

import "gorm.io/gorm"

// Repository 所有 Repository 的聚合入口
type Repository struct {
	User        UserRepository
	Internship  InternshipRepository
	Application ApplicationRepository
	Bookmark    BookmarkRepository
	ActivityLog ActivityLogRepository
	Review      ReviewRepository
}

// NewRepository 创建 Repository 聚合
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{
		User:        NewUserRepo(db),
		Internship:  NewInternshipRepo(db),
		Application: NewApplicationRepo(db),
		Bookmark:    NewBookmarkRepo(db),
		ActivityLog: NewActivityLogRepo(db),
		Review:      NewReviewRepo(db),
	}
}
