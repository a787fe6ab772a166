package handler

import (
	"errors"
	"mime/multipart"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/Hari-r31/internship-platform/internal/service"
	"github.com/Hari-r31/internship-platform/pkg/response"
)

// MustGetUserID 从 Gin 上下文中安全提取 user_id。
// 如果 JWT 中间件未正确注入 user_id，返回 false 并写入 401 响应。
// 调用方应在 ok=false 时直接 return。
func MustGetUserID(c *gin.Context) (string, bool) {
	v, exists := c.Get("user_id")
	if !exists {
		response.Unauthorized(c, 10002, "未认证")
		return "", false
	}
	s, ok := v.(string)
	if !ok || s == "" {
		response.Unauthorized(c, 10002, "未认证")
		return "", false
	}
	return s, true
}

// MustGetRole 从 Gin 上下文中安全提取 role。
func MustGetRole(c *gin.Context) (string, bool) {
	v, exists := c.Get("role")
	if !exists {
		response.Unauthorized(c, 10002, "未认证")
		return "", false
	}
	s, ok := v.(string)
	if !ok || s == "" {
		response.Unauthorized(c, 10002, "未认证")
		return "", false
	}
	return s, true
}

// OptionalIdentity 提取可选登录身份（公开接口 + OptionalJWTAuth 时使用）
// 未登录时返回空串，不写响应
func OptionalIdentity(c *gin.Context) (userID, role string) {
	return c.GetString("user_id"), c.GetString("role")
}

// accessTokenInfo 提取当前 Access Token 的 JTI 与过期时间（登出拉黑用）
func accessTokenInfo(c *gin.Context) (jti string, expiresAt time.Time) {
	jti = c.GetString("access_jti")
	if v, exists := c.Get("access_exp"); exists {
		if t, ok := v.(time.Time); ok {
			expiresAt = t
		}
	}
	return jti, expiresAt
}

// formFileUpload 从 multipart 表单提取一个文件，转换为 service.Upload
// 字段不存在时返回 (nil, noop, nil)；closeFn 由调用方 defer 执行
func formFileUpload(c *gin.Context, field string) (upload *service.Upload, closeFn func(), err error) {
	closeFn = func() {}

	fileHeader, err := c.FormFile(field)
	if err != nil {
		if errors.Is(err, multipart.ErrMessageTooLarge) {
			return nil, closeFn, err
		}
		// 字段缺失视作未上传
		return nil, closeFn, nil
	}

	f, err := fileHeader.Open()
	if err != nil {
		return nil, closeFn, err
	}

	return &service.Upload{
		Reader:      f,
		Size:        fileHeader.Size,
		Filename:    fileHeader.Filename,
		ContentType: fileHeader.Header.Get("Content-Type"),
	}, func() { f.Close() }, nil
}

// filterError 将 Service 层的过滤参数错误写出为字段级 400 响应
// 返回 true 表示错误已处理
func filterError(c *gin.Context, err error) bool {
	var fe *service.FilterError
	if errors.As(err, &fe) {
		response.FieldErrors(c, 10001, "查询参数无效", map[string]string{fe.Field: fe.Message})
		return true
	}
	return false
}
