package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/Hari-r31/internship-platform/config"
	"github.com/Hari-r31/internship-platform/internal/dto"
	"github.com/Hari-r31/internship-platform/internal/model"
	"github.com/Hari-r31/internship-platform/internal/repository"
	"github.com/Hari-r31/internship-platform/pkg/jwt"
)

// ── 测试辅助 ──

func testConfig() *config.Config {
	return &config.Config{
		Server: config.ServerConfig{
			BaseURL:     "http://localhost:8080",
			FrontendURL: "http://localhost:5173",
		},
		Auth: config.AuthConfig{
			JWTSecret:       "test-secret-key-for-unit-testing-2026",
			AccessTokenTTL:  15 * time.Minute,
			RefreshTokenTTL: 168 * time.Hour,
			ResetTokenTTL:   30 * time.Minute,
		},
		Storage: config.StorageConfig{
			ResumeBucket: "resumes",
			AvatarBucket: "profile-pics",
		},
	}
}

// testRepo 组装全套 mock Repository
func testRepo() (*repository.Repository, *mockUserRepo, *mockInternshipRepo, *mockApplicationRepo, *mockBookmarkRepo, *mockActivityLogRepo, *mockReviewRepo) {
	users := newMockUserRepo()
	internships := newMockInternshipRepo()
	applications := newMockApplicationRepo(users, internships)
	bookmarks := newMockBookmarkRepo(internships)
	activityLogs := newMockActivityLogRepo()
	reviews := newMockReviewRepo()

	repo := &repository.Repository{
		User:        users,
		Internship:  internships,
		Application: applications,
		Bookmark:    bookmarks,
		ActivityLog: activityLogs,
		Review:      reviews,
	}
	return repo, users, internships, applications, bookmarks, activityLogs, reviews
}

func setupTestAuthService() (AuthService, *repository.Repository, *mockUserRepo, *mockActivityLogRepo, *mockMailer) {
	cfg := testConfig()
	repo, users, _, _, _, activityLogs, _ := testRepo()
	mail := &mockMailer{}
	jwtMgr := jwt.NewManager(&cfg.Auth)

	svc := NewAuthService(cfg, repo, jwtMgr, nil, mail, zap.NewNop())
	return svc, repo, users, activityLogs, mail
}

func createTestUser(users *mockUserRepo, username, password, role string) *model.User {
	hash, _ := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	user := &model.User{
		UserID:       "user-" + username,
		Username:     username,
		Email:        username + "@test.com",
		PasswordHash: string(hash),
		Profile: &model.Profile{
			ProfileID: "profile-" + username,
			UserID:    "user-" + username,
			Role:      role,
		},
	}
	users.users[user.UserID] = user
	return user
}

// ── 注册测试 ──

func TestRegister_Success(t *testing.T) {
	svc, _, users, _, _ := setupTestAuthService()

	result, err := svc.Register(context.Background(), &dto.RegisterRequest{
		Username: "alice",
		Email:    "alice@test.com",
		Password: "password123",
		Profile:  dto.RegisterProfile{Role: model.RoleStudent},
	})

	if err != nil {
		t.Fatalf("Register 应成功: %v", err)
	}
	if result.Username != "alice" {
		t.Errorf("期望 Username=alice，实际=%s", result.Username)
	}
	if result.Role != model.RoleStudent {
		t.Errorf("期望 Role=student，实际=%s", result.Role)
	}

	// 账号与资料应同时创建
	created, err := users.GetByUsername(context.Background(), "alice")
	if err != nil {
		t.Fatalf("注册后应能查到用户: %v", err)
	}
	if created.Profile == nil || created.Profile.Role != model.RoleStudent {
		t.Error("注册后资料应随账号一同创建")
	}
	if created.PasswordHash == "password123" {
		t.Error("密码不应以明文存储")
	}
}

func TestRegister_DuplicateUsername(t *testing.T) {
	svc, _, users, _, _ := setupTestAuthService()
	createTestUser(users, "alice", "password123", model.RoleStudent)

	_, err := svc.Register(context.Background(), &dto.RegisterRequest{
		Username: "alice",
		Email:    "other@test.com",
		Password: "password123",
		Profile:  dto.RegisterProfile{Role: model.RoleStudent},
	})

	if !errors.Is(err, ErrUsernameExists) {
		t.Errorf("期望 ErrUsernameExists，实际: %v", err)
	}
}

func TestRegister_DuplicateEmail(t *testing.T) {
	svc, _, users, _, _ := setupTestAuthService()
	createTestUser(users, "alice", "password123", model.RoleStudent)

	_, err := svc.Register(context.Background(), &dto.RegisterRequest{
		Username: "alice2",
		Email:    "alice@test.com",
		Password: "password123",
		Profile:  dto.RegisterProfile{Role: model.RoleStudent},
	})

	if !errors.Is(err, ErrEmailExists) {
		t.Errorf("期望 ErrEmailExists，实际: %v", err)
	}
}

// ── 登录测试 ──

func TestLogin_Success(t *testing.T) {
	svc, _, users, activityLogs, _ := setupTestAuthService()
	createTestUser(users, "alice", "password123", model.RoleStudent)

	result, err := svc.Login(context.Background(), &dto.LoginRequest{
		Username: "alice",
		Password: "password123",
	})

	if err != nil {
		t.Fatalf("Login 应成功: %v", err)
	}
	if result.AccessToken == "" {
		t.Error("AccessToken 不应为空")
	}
	if result.RefreshToken == "" {
		t.Error("RefreshToken 不应为空")
	}
	if result.ExpiresIn != 900 {
		t.Errorf("期望 ExpiresIn=900，实际=%d", result.ExpiresIn)
	}
	if result.User.Username != "alice" {
		t.Errorf("期望 Username=alice，实际=%s", result.User.Username)
	}

	// 登录事件必须落日志
	if len(activityLogs.entries) != 1 || activityLogs.entries[0].Action != model.ActionLogin {
		t.Errorf("期望记录一条 login 日志，实际=%v", activityLogs.entries)
	}
}

func TestLogin_WrongPassword(t *testing.T) {
	svc, _, users, activityLogs, _ := setupTestAuthService()
	createTestUser(users, "alice", "password123", model.RoleStudent)

	_, err := svc.Login(context.Background(), &dto.LoginRequest{
		Username: "alice",
		Password: "wrong_password",
	})

	if !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("期望 ErrInvalidCredentials，实际: %v", err)
	}
	if len(activityLogs.entries) != 0 {
		t.Error("登录失败不应记录日志")
	}
}

func TestLogin_UserNotFound(t *testing.T) {
	svc, _, _, _, _ := setupTestAuthService()

	_, err := svc.Login(context.Background(), &dto.LoginRequest{
		Username: "nobody",
		Password: "password123",
	})

	if !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("期望 ErrInvalidCredentials，实际: %v", err)
	}
}

// ── Token 刷新测试 ──

func TestRefreshToken_RejectsAccessToken(t *testing.T) {
	svc, _, users, _, _ := setupTestAuthService()
	createTestUser(users, "alice", "password123", model.RoleStudent)

	tokens, err := svc.Login(context.Background(), &dto.LoginRequest{
		Username: "alice",
		Password: "password123",
	})
	if err != nil {
		t.Fatalf("Login 应成功: %v", err)
	}

	// Access Token 不能当作 Refresh Token 使用
	_, err = svc.RefreshToken(context.Background(), tokens.AccessToken)
	if !errors.Is(err, ErrRefreshRequired) {
		t.Errorf("期望 ErrRefreshRequired，实际: %v", err)
	}
}

func TestRefreshToken_Success(t *testing.T) {
	svc, _, users, _, _ := setupTestAuthService()
	createTestUser(users, "alice", "password123", model.RoleStudent)

	tokens, err := svc.Login(context.Background(), &dto.LoginRequest{
		Username: "alice",
		Password: "password123",
	})
	if err != nil {
		t.Fatalf("Login 应成功: %v", err)
	}

	refreshed, err := svc.RefreshToken(context.Background(), tokens.RefreshToken)
	if err != nil {
		t.Fatalf("RefreshToken 应成功: %v", err)
	}
	if refreshed.AccessToken == "" || refreshed.RefreshToken == "" {
		t.Error("刷新后应返回新的 Token 对")
	}
}

// ── 修改密码测试 ──

func TestChangePassword_Success(t *testing.T) {
	svc, _, users, _, _ := setupTestAuthService()
	user := createTestUser(users, "alice", "password123", model.RoleStudent)

	err := svc.ChangePassword(context.Background(), user.UserID, &dto.ChangePasswordRequest{
		OldPassword: "password123",
		NewPassword: "newpassword456",
	})
	if err != nil {
		t.Fatalf("ChangePassword 应成功: %v", err)
	}

	// 新密码生效
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("newpassword456")) != nil {
		t.Error("新密码应能通过校验")
	}

	// password_changed 日志随密码更新一并写入
	if len(users.logs) != 1 || users.logs[0].Action != model.ActionPasswordChanged {
		t.Errorf("期望记录一条 password_changed 日志，实际=%v", users.logs)
	}
}

func TestChangePassword_WrongOldPassword(t *testing.T) {
	svc, _, users, _, _ := setupTestAuthService()
	user := createTestUser(users, "alice", "password123", model.RoleStudent)

	err := svc.ChangePassword(context.Background(), user.UserID, &dto.ChangePasswordRequest{
		OldPassword: "wrong",
		NewPassword: "newpassword456",
	})
	if !errors.Is(err, ErrWrongOldPassword) {
		t.Errorf("期望 ErrWrongOldPassword，实际: %v", err)
	}
}

// ── 密码找回测试 ──

func TestForgotPassword_UnknownEmailReturnsOK(t *testing.T) {
	svc, _, _, _, mail := setupTestAuthService()

	// 防账号枚举：邮箱不存在也应返回成功，且不发送邮件
	err := svc.ForgotPassword(context.Background(), &dto.ForgotPasswordRequest{
		Email: "nobody@test.com",
	})
	if err != nil {
		t.Fatalf("未知邮箱应静默成功: %v", err)
	}
	if len(mail.sent) != 0 {
		t.Error("未知邮箱不应发送邮件")
	}
}

func TestResetPassword_InvalidToken(t *testing.T) {
	svc, _, _, _, _ := setupTestAuthService()

	// Redis 不可用时所有重置令牌视为无效
	err := svc.ResetPassword(context.Background(), &dto.ResetPasswordRequest{
		Token:    "no-such-token",
		Password: "newpassword456",
	})
	if !errors.Is(err, ErrResetTokenInvalid) {
		t.Errorf("期望 ErrResetTokenInvalid，实际: %v", err)
	}
}

// ── 当前用户测试 ──

func TestGetCurrentUser(t *testing.T) {
	svc, _, users, _, _ := setupTestAuthService()
	user := createTestUser(users, "alice", "password123", model.RoleStudent)

	result, err := svc.GetCurrentUser(context.Background(), user.UserID)
	if err != nil {
		t.Fatalf("GetCurrentUser 应成功: %v", err)
	}
	if result.Username != "alice" {
		t.Errorf("期望 Username=alice，实际=%s", result.Username)
	}
	if result.Profile == nil || result.Profile.Role != model.RoleStudent {
		t.Error("响应应包含资料")
	}

	_, err = svc.GetCurrentUser(context.Background(), "no-such-user")
	if !errors.Is(err, ErrUserNotFound) {
		t.Errorf("期望 ErrUserNotFound，实际: %v", err)
	}
}
