package service

import (
	"io"

	"go.uber.org/zap"

	"github.com/Hari-r31/internship-platform/config"
	"github.com/Hari-r31/internship-platform/internal/repository"
	"github.com/Hari-r31/internship-platform/pkg/jwt"
	"github.com/Hari-r31/internship-platform/pkg/mailer"
	"github.com/Hari-r31/internship-platform/pkg/redis"
	"github.com/Hari-r31/internship-platform/pkg/storage"
)

// Upload 上传文件的内存表示（Handler 从 multipart 解出后传入）
type Upload struct {
	Reader      io.Reader
	Size        int64
	Filename    string
	ContentType string
}

// Service 所有 Service 的聚合入口
type Service struct {
	Auth        AuthService
	User        UserService
	Internship  InternshipService
	Application ApplicationService
	Bookmark    BookmarkService
	ActivityLog ActivityLogService
	Review      ReviewService
}

// NewService 创建 Service 聚合
// rdb 与 store 允许为 nil：对应功能降级（黑名单/限流关闭、上传不可用）
func NewService(
	cfg *config.Config,
	repo *repository.Repository,
	jwtMgr *jwt.Manager,
	rdb *redis.Client,
	store storage.Uploader,
	mail mailer.Sender,
	logger *zap.Logger,
) *Service {
	return &Service{
		Auth:        NewAuthService(cfg, repo, jwtMgr, rdb, mail, logger),
		User:        NewUserService(cfg, repo, store, logger),
		Internship:  NewInternshipService(repo, logger),
		Application: NewApplicationService(cfg, repo, store, logger),
		Bookmark:    NewBookmarkService(repo, logger),
		ActivityLog: NewActivityLogService(repo, logger),
		Review:      NewReviewService(repo, logger),
	}
}
