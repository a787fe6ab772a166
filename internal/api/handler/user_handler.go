package handler

import (
	"errors"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/Hari-r31/internship-platform/internal/dto"
	"github.com/Hari-r31/internship-platform/internal/service"
	"github.com/Hari-r31/internship-platform/pkg/response"
)

// UserHandler 用户资料模块 HTTP 处理器
type UserHandler struct {
	userSvc service.UserService
	authSvc service.AuthService
}

// NewUserHandler 创建 UserHandler
func NewUserHandler(userSvc service.UserService, authSvc service.AuthService) *UserHandler {
	return &UserHandler{userSvc: userSvc, authSvc: authSvc}
}

// GetProfile 获取当前用户资料
// GET /api/v1/me/profile
func (h *UserHandler) GetProfile(c *gin.Context) {
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

// UpdateProfile 更新当前用户资料（JSON 或含 profile_picture 文件的 multipart）
// PATCH /api/v1/me/profile
func (h *UserHandler) UpdateProfile(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	var (
		req     dto.UpdateProfileRequest
		picture *service.Upload
	)

	if strings.HasPrefix(c.ContentType(), "multipart/form-data") {
		if err := c.ShouldBind(&req); err != nil {
			response.BadRequest(c, 10001, "参数校验失败")
			return
		}
		upload, closeFn, err := formFileUpload(c, "profile_picture")
		if err != nil {
			response.BadRequest(c, 10001, "文件上传失败")
			return
		}
		defer closeFn()
		picture = upload
	} else {
		if err := c.ShouldBindJSON(&req); err != nil {
			response.BadRequest(c, 10001, "参数校验失败")
			return
		}
	}

	result, err := h.userSvc.UpdateProfile(c.Request.Context(), userID, &req, picture)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrUserNotFound):
			response.NotFound(c, 20008, "用户不存在")
		case errors.Is(err, service.ErrUnsupportedImage):
			response.FieldErrors(c, 10001, "参数校验失败", map[string]string{
				"profile_picture": "仅支持 JPEG/PNG 格式",
			})
		case errors.Is(err, service.ErrStorageUnavailable):
			response.BadGateway(c, 50001, "文件存储不可用")
		default:
			response.InternalError(c)
		}
		return
	}

	response.OK(c, result)
}

// UpdateAccount 更新当前用户账号（用户名/邮箱）
// PATCH /api/v1/me/user
func (h *UserHandler) UpdateAccount(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	var req dto.UpdateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	result, err := h.userSvc.UpdateAccount(c.Request.Context(), userID, &req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrUsernameExists):
			response.BadRequest(c, 20002, "用户名已存在")
		case errors.Is(err, service.ErrEmailExists):
			response.BadRequest(c, 20003, "邮箱已被注册")
		case errors.Is(err, service.ErrUserNotFound):
			response.NotFound(c, 20008, "用户不存在")
		default:
			response.InternalError(c)
		}
		return
	}

	response.OK(c, result)
}
