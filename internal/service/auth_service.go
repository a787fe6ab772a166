package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/Hari-r31/internship-platform/config"
	"github.com/Hari-r31/internship-platform/internal/dto"
	"github.com/Hari-r31/internship-platform/internal/model"
	"github.com/Hari-r31/internship-platform/internal/repository"
	pkgerrors "github.com/Hari-r31/internship-platform/pkg/errors"
	"github.com/Hari-r31/internship-platform/pkg/jwt"
	"github.com/Hari-r31/internship-platform/pkg/mailer"
	"github.com/Hari-r31/internship-platform/pkg/redis"
)

// ── 认证模块业务错误 ──

var (
	ErrInvalidCredentials = errors.New("用户名或密码错误")
	ErrUsernameExists     = errors.New("用户名已存在")
	ErrEmailExists        = errors.New("邮箱已被注册")
	ErrUserNotFound       = errors.New("用户不存在")
	ErrWrongOldPassword   = errors.New("原密码错误")
	ErrResetTokenInvalid  = errors.New("重置链接无效或已过期")
	ErrMailDelivery       = errors.New("重置邮件发送失败")
	ErrRefreshRequired    = errors.New("需要 Refresh Token")
)

// AuthService 认证业务接口
type AuthService interface {
	Register(ctx context.Context, req *dto.RegisterRequest) (*dto.RegisterResponse, error)
	Login(ctx context.Context, req *dto.LoginRequest) (*dto.TokenResponse, error)
	// Logout 拉黑 Refresh Token 与当前 Access Token 的 JTI，并记录登出日志
	Logout(ctx context.Context, userID, refreshToken, accessJTI string, accessExpiresAt time.Time) error
	RefreshToken(ctx context.Context, refreshToken string) (*dto.TokenResponse, error)
	// ForgotPassword 无论邮箱是否存在都返回 nil（防账号枚举）；
	// 仅当邮箱存在且投递失败时返回 ErrMailDelivery
	ForgotPassword(ctx context.Context, req *dto.ForgotPasswordRequest) error
	ResetPassword(ctx context.Context, req *dto.ResetPasswordRequest) error
	ChangePassword(ctx context.Context, userID string, req *dto.ChangePasswordRequest) error
	GetCurrentUser(ctx context.Context, userID string) (*dto.UserResponse, error)
}

type authService struct {
	cfg    *config.Config
	repo   *repository.Repository
	jwtMgr *jwt.Manager
	rdb    *redis.Client
	mail   mailer.Sender
	logger *zap.Logger
}

// NewAuthService 创建 AuthService 实例
func NewAuthService(
	cfg *config.Config,
	repo *repository.Repository,
	jwtMgr *jwt.Manager,
	rdb *redis.Client,
	mail mailer.Sender,
	logger *zap.Logger,
) AuthService {
	return &authService{
		cfg:    cfg,
		repo:   repo,
		jwtMgr: jwtMgr,
		rdb:    rdb,
		mail:   mail,
		logger: logger,
	}
}

// ────────────────────── 注册 ──────────────────────

func (s *authService) Register(ctx context.Context, req *dto.RegisterRequest) (*dto.RegisterResponse, error) {
	// 1. 唯一性预检查（并发竞争由数据库唯一约束兜底）
	if _, err := s.repo.User.GetByUsername(ctx, req.Username); err == nil {
		return nil, ErrUsernameExists
	} else if !pkgerrors.IsNotFound(err) {
		return nil, err
	}
	if _, err := s.repo.User.GetByEmail(ctx, req.Email); err == nil {
		return nil, ErrEmailExists
	} else if !pkgerrors.IsNotFound(err) {
		return nil, err
	}

	// 2. 密码哈希
	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		s.logger.Error("密码哈希失败", zap.Error(err))
		return nil, err
	}

	// 3. 账号 + 资料同事务创建（账号必有资料）
	user := &model.User{
		Username:     req.Username,
		Email:        req.Email,
		PasswordHash: string(hash),
	}
	profile := &model.Profile{
		FirstName: req.Profile.FirstName,
		LastName:  req.Profile.LastName,
		Bio:       req.Profile.Bio,
		Location:  req.Profile.Location,
		Role:      req.Profile.Role,
	}

	if err := s.repo.User.CreateWithProfile(ctx, user, profile); err != nil {
		if pkgerrors.IsDuplicate(err) {
			return nil, ErrUsernameExists
		}
		s.logger.Error("创建账号失败", zap.Error(err))
		return nil, err
	}

	return &dto.RegisterResponse{
		ID:       user.UserID,
		Username: user.Username,
		Email:    user.Email,
		Role:     profile.Role,
	}, nil
}

// ────────────────────── 登录 / 登出 / 刷新 ──────────────────────

func (s *authService) Login(ctx context.Context, req *dto.LoginRequest) (*dto.TokenResponse, error) {
	user, err := s.repo.User.GetByUsername(ctx, req.Username)
	if err != nil {
		if pkgerrors.IsNotFound(err) {
			return nil, ErrInvalidCredentials
		}
		s.logger.Error("查询用户失败", zap.Error(err))
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	tokens, err := s.issueTokens(user)
	if err != nil {
		return nil, err
	}

	// 登录事件入活动日志
	if err := s.repo.ActivityLog.Append(ctx, &model.ActivityLog{
		UserID:  user.UserID,
		Action:  model.ActionLogin,
		Details: fmt.Sprintf("%s 登录", user.Username),
	}); err != nil {
		s.logger.Error("记录登录日志失败", zap.Error(err))
		return nil, err
	}

	return tokens, nil
}

func (s *authService) Logout(ctx context.Context, userID, refreshToken, accessJTI string, accessExpiresAt time.Time) error {
	claims, err := s.jwtMgr.ParseToken(refreshToken)
	if err != nil {
		return err
	}
	if claims.TokenType != "refresh" {
		return ErrRefreshRequired
	}
	if claims.UserID != userID {
		return jwt.ErrTokenInvalid
	}

	if s.rdb != nil {
		if err := s.rdb.BlacklistToken(ctx, claims.ID, time.Until(claims.ExpiresAt.Time)); err != nil {
			s.logger.Error("拉黑 RefreshToken 失败", zap.Error(err))
			return err
		}
		if accessJTI != "" {
			if err := s.rdb.BlacklistToken(ctx, accessJTI, time.Until(accessExpiresAt)); err != nil {
				s.logger.Error("拉黑 AccessToken 失败", zap.Error(err))
				return err
			}
		}
	} else {
		s.logger.Warn("Redis 不可用，登出未拉黑 Token", zap.String("user_id", userID))
	}

	return s.repo.ActivityLog.Append(ctx, &model.ActivityLog{
		UserID:  userID,
		Action:  model.ActionLogout,
		Details: "用户登出",
	})
}

func (s *authService) RefreshToken(ctx context.Context, refreshToken string) (*dto.TokenResponse, error) {
	claims, err := s.jwtMgr.ParseToken(refreshToken)
	if err != nil {
		return nil, err
	}
	if claims.TokenType != "refresh" {
		return nil, ErrRefreshRequired
	}

	if s.rdb != nil {
		blacklisted, err := s.rdb.IsBlacklisted(ctx, claims.ID)
		if err != nil {
			s.logger.Error("查询 Token 黑名单失败", zap.Error(err))
			return nil, err
		}
		if blacklisted {
			return nil, jwt.ErrTokenInvalid
		}
		// 旧 Refresh Token 轮换失效
		if err := s.rdb.BlacklistToken(ctx, claims.ID, time.Until(claims.ExpiresAt.Time)); err != nil {
			s.logger.Error("轮换 RefreshToken 失败", zap.Error(err))
			return nil, err
		}
	}

	user, err := s.repo.User.GetByID(ctx, claims.UserID)
	if err != nil {
		if pkgerrors.IsNotFound(err) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	return s.issueTokens(user)
}

// issueTokens 为用户签发 Access/Refresh Token 对
func (s *authService) issueTokens(user *model.User) (*dto.TokenResponse, error) {
	role := ""
	if user.Profile != nil {
		role = user.Profile.Role
	}

	accessToken, err := s.jwtMgr.GenerateAccessToken(user.UserID, user.Username, role)
	if err != nil {
		s.logger.Error("生成 AccessToken 失败", zap.Error(err))
		return nil, err
	}
	refreshToken, err := s.jwtMgr.GenerateRefreshToken(user.UserID, user.Username, role)
	if err != nil {
		s.logger.Error("生成 RefreshToken 失败", zap.Error(err))
		return nil, err
	}

	return &dto.TokenResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		ExpiresIn:    int(s.cfg.Auth.AccessTokenTTL.Seconds()),
		User:         *toUserResponse(user),
	}, nil
}

// ────────────────────── 密码找回 / 重置 / 修改 ──────────────────────

func (s *authService) ForgotPassword(ctx context.Context, req *dto.ForgotPasswordRequest) error {
	user, err := s.repo.User.GetByEmail(ctx, req.Email)
	if err != nil {
		if pkgerrors.IsNotFound(err) {
			// 防账号枚举：邮箱不存在时也返回成功
			return nil
		}
		return err
	}

	if s.rdb == nil {
		s.logger.Warn("Redis 不可用，无法签发密码重置令牌", zap.String("email", req.Email))
		return nil
	}

	token := uuid.New().String()
	if err := s.rdb.StoreResetToken(ctx, token, user.UserID, s.cfg.Auth.ResetTokenTTL); err != nil {
		s.logger.Error("保存重置令牌失败", zap.Error(err))
		return err
	}

	resetURL := fmt.Sprintf("%s/reset-password/%s", s.cfg.Server.FrontendURL, token)
	body := fmt.Sprintf("点击以下链接重置密码（%s 内有效）：\n%s", s.cfg.Auth.ResetTokenTTL, resetURL)
	if err := s.mail.Send(user.Email, "密码重置请求", body); err != nil {
		// 邮箱存在但投递失败：按边界契约向调用方暴露
		return fmt.Errorf("%w: %v", ErrMailDelivery, err)
	}

	return nil
}

func (s *authService) ResetPassword(ctx context.Context, req *dto.ResetPasswordRequest) error {
	if s.rdb == nil {
		return ErrResetTokenInvalid
	}

	userID, err := s.rdb.ConsumeResetToken(ctx, req.Token)
	if err != nil {
		if errors.Is(err, redis.ErrTokenNotFound) {
			return ErrResetTokenInvalid
		}
		return err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	// 重置流程无会话语境，不产生 password_changed 日志
	return s.repo.User.UpdatePassword(ctx, userID, string(hash), nil)
}

func (s *authService) ChangePassword(ctx context.Context, userID string, req *dto.ChangePasswordRequest) error {
	user, err := s.repo.User.GetByID(ctx, userID)
	if err != nil {
		if pkgerrors.IsNotFound(err) {
			return ErrUserNotFound
		}
		return err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.OldPassword)); err != nil {
		return ErrWrongOldPassword
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	return s.repo.User.UpdatePassword(ctx, userID, string(hash), &model.ActivityLog{
		UserID:  userID,
		Action:  model.ActionPasswordChanged,
		Details: "密码已修改",
	})
}

// ────────────────────── 当前用户 ──────────────────────

func (s *authService) GetCurrentUser(ctx context.Context, userID string) (*dto.UserResponse, error) {
	user, err := s.repo.User.GetByID(ctx, userID)
	if err != nil {
		if pkgerrors.IsNotFound(err) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return toUserResponse(user), nil
}

// toUserResponse 构造账号响应（含资料）
func toUserResponse(user *model.User) *dto.UserResponse {
	resp := &dto.UserResponse{
		ID:       user.UserID,
		Username: user.Username,
		Email:    user.Email,
	}
	if user.Profile != nil {
		resp.Profile = &dto.ProfileResponse{
			FirstName:         user.Profile.FirstName,
			LastName:          user.Profile.LastName,
			Bio:               user.Profile.Bio,
			Location:          user.Profile.Location,
			Role:              user.Profile.Role,
			ProfilePictureURL: user.Profile.ProfilePictureURL,
		}
	}
	return resp
}
