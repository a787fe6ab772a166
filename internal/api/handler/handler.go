package handler

import "github.com/Hari-r31/internship-platform/internal/service"

// Handler 所有 Handler 的聚合入口
type Handler struct {
	Auth        *AuthHandler
	User        *UserHandler
	Internship  *InternshipHandler
	Application *ApplicationHandler
	Bookmark    *BookmarkHandler
	ActivityLog *ActivityLogHandler
	Review      *ReviewHandler
}

// NewHandler 创建 Handler 聚合
func NewHandler(svc *service.Service) *Handler {
	return &Handler{
		Auth:        NewAuthHandler(svc.Auth),
		User:        NewUserHandler(svc.User, svc.Auth),
		Internship:  NewInternshipHandler(svc.Internship),
		Application: NewApplicationHandler(svc.Application),
		Bookmark:    NewBookmarkHandler(svc.Bookmark),
		ActivityLog: NewActivityLogHandler(svc.ActivityLog),
		Review:      NewReviewHandler(svc.Review),
	}
}
