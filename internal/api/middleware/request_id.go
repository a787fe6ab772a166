package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const requestIDKey = "request_id"

// RequestID 请求追踪 ID 中间件
// 网关透传的 X-Request-ID 通过校验后沿用，否则生成新的 UUID；
// 结果注入 gin.Context 并回写响应头，供请求日志串联
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		rid := c.GetHeader("X-Request-ID")
		if !validRequestID(rid) {
			rid = uuid.New().String()
		}

		c.Set(requestIDKey, rid)
		c.Header("X-Request-ID", rid)

		c.Next()
	}
}

// validRequestID 拒绝超长或含控制字符的外部 ID，防止日志注入
func validRequestID(rid string) bool {
	if rid == "" || len(rid) > 64 {
		return false
	}
	for _, r := range rid {
		if r < 0x20 || r > 0x7e {
			return false
		}
	}
	return true
}
