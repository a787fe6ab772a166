package service

import (
	"context"
	"errors"
	"fmt"
	"path"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/Hari-r31/internship-platform/config"
	"github.com/Hari-r31/internship-platform/internal/dto"
	"github.com/Hari-r31/internship-platform/internal/model"
	"github.com/Hari-r31/internship-platform/internal/repository"
	pkgerrors "github.com/Hari-r31/internship-platform/pkg/errors"
	"github.com/Hari-r31/internship-platform/pkg/storage"
)

// ── 用户模块业务错误 ──

var (
	ErrStorageUnavailable = errors.New("文件存储不可用")
	ErrUnsupportedImage   = errors.New("头像仅支持 JPEG/PNG 格式")
)

// UserService 用户资料与账号业务接口
type UserService interface {
	// UpdateProfile 更新资料；picture 非 nil 时同时上传头像。
	// 单次更新只记一条日志：有头像记 profile_picture_updated，否则记 profile_updated
	UpdateProfile(ctx context.Context, userID string, req *dto.UpdateProfileRequest, picture *Upload) (*dto.UserResponse, error)
	// UpdateAccount 更新用户名/邮箱
	UpdateAccount(ctx context.Context, userID string, req *dto.UpdateUserRequest) (*dto.UserResponse, error)
}

type userService struct {
	cfg    *config.Config
	repo   *repository.Repository
	store  storage.Uploader
	logger *zap.Logger
}

// NewUserService 创建 UserService 实例
func NewUserService(cfg *config.Config, repo *repository.Repository, store storage.Uploader, logger *zap.Logger) UserService {
	return &userService{cfg: cfg, repo: repo, store: store, logger: logger}
}

func (s *userService) UpdateProfile(ctx context.Context, userID string, req *dto.UpdateProfileRequest, picture *Upload) (*dto.UserResponse, error) {
	user, err := s.repo.User.GetByID(ctx, userID)
	if err != nil {
		if pkgerrors.IsNotFound(err) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	profile := user.Profile

	if req.FirstName != nil {
		profile.FirstName = req.FirstName
	}
	if req.LastName != nil {
		profile.LastName = req.LastName
	}
	if req.Bio != nil {
		profile.Bio = *req.Bio
	}
	if req.Location != nil {
		profile.Location = *req.Location
	}

	action := model.ActionProfileUpdated
	details := "资料已更新"

	if picture != nil {
		if s.store == nil {
			return nil, ErrStorageUnavailable
		}
		url, err := s.uploadAvatar(ctx, userID, picture)
		if err != nil {
			return nil, err
		}
		profile.ProfilePictureURL = &url
		action = model.ActionProfilePictureUpdated
		details = "头像已更新"
	}

	if err := s.repo.User.UpdateProfile(ctx, profile, &model.ActivityLog{
		UserID:  userID,
		Action:  action,
		Details: details,
	}); err != nil {
		s.logger.Error("更新资料失败", zap.Error(err))
		return nil, err
	}

	user.Profile = profile
	return toUserResponse(user), nil
}

func (s *userService) UpdateAccount(ctx context.Context, userID string, req *dto.UpdateUserRequest) (*dto.UserResponse, error) {
	user, err := s.repo.User.GetByID(ctx, userID)
	if err != nil {
		if pkgerrors.IsNotFound(err) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	if req.Username != nil && *req.Username != user.Username {
		if _, err := s.repo.User.GetByUsername(ctx, *req.Username); err == nil {
			return nil, ErrUsernameExists
		} else if !pkgerrors.IsNotFound(err) {
			return nil, err
		}
		user.Username = *req.Username
	}
	if req.Email != nil && *req.Email != user.Email {
		if _, err := s.repo.User.GetByEmail(ctx, *req.Email); err == nil {
			return nil, ErrEmailExists
		} else if !pkgerrors.IsNotFound(err) {
			return nil, err
		}
		user.Email = *req.Email
	}

	// Save 不级联关联，置空避免覆盖资料
	profile := user.Profile
	user.Profile = nil

	if err := s.repo.User.UpdateUser(ctx, user, &model.ActivityLog{
		UserID:  userID,
		Action:  model.ActionProfileUpdated,
		Details: "账号信息已更新",
	}); err != nil {
		if pkgerrors.IsDuplicate(err) {
			return nil, ErrUsernameExists
		}
		s.logger.Error("更新账号失败", zap.Error(err))
		return nil, err
	}

	user.Profile = profile
	return toUserResponse(user), nil
}

// uploadAvatar 上传头像到对象存储，返回可访问 URL
func (s *userService) uploadAvatar(ctx context.Context, userID string, picture *Upload) (string, error) {
	ext := strings.ToLower(path.Ext(picture.Filename))
	switch ext {
	case ".jpg", ".jpeg", ".png":
	default:
		return "", ErrUnsupportedImage
	}

	objectName := fmt.Sprintf("%s/%s%s", userID, uuid.New().String(), ext)
	url, err := s.store.Upload(ctx, s.cfg.Storage.AvatarBucket, objectName, picture.Reader, picture.Size, picture.ContentType)
	if err != nil {
		s.logger.Error("上传头像失败", zap.Error(err))
		return "", err
	}
	return url, nil
}
