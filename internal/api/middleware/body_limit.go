package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Hari-r31/internship-platform/pkg/response"
)

// BodyLimit 全局请求体大小限制中间件
// maxBytes 需容纳简历与头像上传；超限由 MaxBytesReader 在
// Handler 读取请求体时触发，这里统一转换为 413 响应
func BodyLimit(maxBytes int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.Body != nil {
			c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBytes)
		}

		c.Next()

		if c.IsAborted() {
			return
		}
		for _, ginErr := range c.Errors {
			var mbe *http.MaxBytesError
			if errors.As(ginErr.Err, &mbe) {
				response.Error(c, http.StatusRequestEntityTooLarge, 10005, "请求体过大")
				return
			}
		}
	}
}
