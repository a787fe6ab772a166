package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Hari-r31/internship-platform/internal/dto"
	"github.com/Hari-r31/internship-platform/internal/service"
	"github.com/Hari-r31/internship-platform/pkg/response"
)

// AuthHandler 认证模块 HTTP 处理器
type AuthHandler struct {
	authSvc service.AuthService
}

// NewAuthHandler 创建 AuthHandler
func NewAuthHandler(authSvc service.AuthService) *AuthHandler {
	return &AuthHandler{authSvc: authSvc}
}

// Register 注册（账号 + 资料一次提交）
// POST /api/v1/auth/register
func (h *AuthHandler) Register(c *gin.Context) {
	var req dto.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	result, err := h.authSvc.Register(c.Request.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrUsernameExists):
			response.BadRequest(c, 20002, "用户名已存在")
		case errors.Is(err, service.ErrEmailExists):
			response.BadRequest(c, 20003, "邮箱已被注册")
		default:
			response.InternalError(c)
		}
		return
	}

	response.Created(c, result)
}

// Login 登录
// POST /api/v1/auth/login
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	result, err := h.authSvc.Login(c.Request.Context(), &req)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			response.Error(c, http.StatusUnauthorized, 20001, "用户名或密码错误")
			return
		}
		response.InternalError(c)
		return
	}

	response.OK(c, result)
}

// Logout 登出（拉黑 Refresh Token 与当前 Access Token）
// POST /api/v1/auth/logout
func (h *AuthHandler) Logout(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	var req dto.LogoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	jti, expiresAt := accessTokenInfo(c)
	if err := h.authSvc.Logout(c.Request.Context(), userID, req.RefreshToken, jti, expiresAt); err != nil {
		if errors.Is(err, service.ErrRefreshRequired) {
			response.BadRequest(c, 20007, "需要 Refresh Token")
			return
		}
		response.Unauthorized(c, 10002, "Token 无效或已过期")
		return
	}

	response.OK(c, nil)
}

// RefreshToken 刷新 Token 对（旧 Refresh Token 轮换失效）
// POST /api/v1/auth/refresh
func (h *AuthHandler) RefreshToken(c *gin.Context) {
	var req dto.RefreshTokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	result, err := h.authSvc.RefreshToken(c.Request.Context(), req.RefreshToken)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrRefreshRequired):
			response.BadRequest(c, 20007, "需要 Refresh Token")
		case errors.Is(err, service.ErrUserNotFound):
			response.Unauthorized(c, 10002, "Token 无效或已过期")
		default:
			response.Unauthorized(c, 10002, "Token 无效或已过期")
		}
		return
	}

	response.OK(c, result)
}

// ForgotPassword 找回密码（发送重置邮件）
// POST /api/v1/auth/forgot-password
func (h *AuthHandler) ForgotPassword(c *gin.Context) {
	var req dto.ForgotPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	if err := h.authSvc.ForgotPassword(c.Request.Context(), &req); err != nil {
		if errors.Is(err, service.ErrMailDelivery) {
			response.BadGateway(c, 20006, "重置邮件发送失败，请稍后重试")
			return
		}
		response.InternalError(c)
		return
	}

	// 防账号枚举：无论邮箱是否存在都返回统一文案
	response.OK(c, gin.H{"message": "如果该邮箱已注册，重置邮件已发送"})
}

// ResetPassword 通过重置令牌设置新密码
// POST /api/v1/auth/reset-password
func (h *AuthHandler) ResetPassword(c *gin.Context) {
	var req dto.ResetPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	if err := h.authSvc.ResetPassword(c.Request.Context(), &req); err != nil {
		if errors.Is(err, service.ErrResetTokenInvalid) {
			response.BadRequest(c, 20005, "重置链接无效或已过期")
			return
		}
		response.InternalError(c)
		return
	}

	response.OK(c, nil)
}

// ChangePassword 修改密码（需验证原密码）
// PATCH /api/v1/auth/password
func (h *AuthHandler) ChangePassword(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	var req dto.ChangePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	if err := h.authSvc.ChangePassword(c.Request.Context(), userID, &req); err != nil {
		switch {
		case errors.Is(err, service.ErrWrongOldPassword):
			response.BadRequest(c, 20004, "原密码错误")
		case errors.Is(err, service.ErrUserNotFound):
			response.NotFound(c, 20008, "用户不存在")
		default:
			response.InternalError(c)
		}
		return
	}

	response.OK(c, nil)
}

// Me 获取当前登录用户信息
// GET /api/v1/auth/me
func (h *AuthHandler) Me(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	result, err := h.authSvc.GetCurrentUser(c.Request.Context(), userID)
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			response.NotFound(c, 20008, "用户不存在")
			return
		}
		response.InternalError(c)
		return
	}

	response.OK(c, result)
}
