package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/Hari-r31/internship-platform/pkg/jwt"
	"github.com/Hari-r31/internship-platform/pkg/redis"
	"github.com/Hari-r31/internship-platform/pkg/response"
)

// JWTAuth JWT 认证中间件
// 从 Authorization: Bearer <token> 中提取并验证 Access Token，
// 校验 Redis 黑名单后将用户信息注入上下文
// rdb 为 nil 时跳过黑名单检查（降级运行）
func JWTAuth(jwtMgr *jwt.Manager, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, ok := parseBearerToken(c, jwtMgr)
		if !ok {
			return
		}

		if rdb != nil {
			blacklisted, err := rdb.IsBlacklisted(c.Request.Context(), claims.ID)
			if err == nil && blacklisted {
				response.Unauthorized(c, 10002, "Token 已失效")
				c.Abort()
				return
			}
		}

		setIdentity(c, claims)
		c.Next()
	}
}

// OptionalJWTAuth 可选认证中间件
// 公开接口使用：携带有效 Token 时注入身份（用于收藏标记等个性化字段），
// 未携带或无效时匿名放行
func OptionalJWTAuth(jwtMgr *jwt.Manager, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.Next()
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || parts[0] != "Bearer" {
			c.Next()
			return
		}

		claims, err := jwtMgr.ParseToken(parts[1])
		if err != nil || claims.TokenType != "access" {
			c.Next()
			return
		}

		if rdb != nil {
			blacklisted, err := rdb.IsBlacklisted(c.Request.Context(), claims.ID)
			if err == nil && blacklisted {
				c.Next()
				return
			}
		}

		setIdentity(c, claims)
		c.Next()
	}
}

// RoleAuth 角色权限中间件
// 检查当前用户是否具有指定角色之一
func RoleAuth(allowedRoles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		role, exists := c.Get("role")
		if !exists {
			response.Unauthorized(c, 10002, "未认证")
			c.Abort()
			return
		}

		userRole := role.(string)
		for _, r := range allowedRoles {
			if userRole == r {
				c.Next()
				return
			}
		}

		response.Forbidden(c, 10003, "无权限访问")
		c.Abort()
	}
}

// parseBearerToken 解析认证头中的 Access Token，失败时写出 401 并中止
func parseBearerToken(c *gin.Context, jwtMgr *jwt.Manager) (*jwt.Claims, bool) {
	authHeader := c.GetHeader("Authorization")
	if authHeader == "" {
		response.Unauthorized(c, 10002, "缺少认证头")
		c.Abort()
		return nil, false
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || parts[0] != "Bearer" {
		response.Unauthorized(c, 10002, "认证头格式无效")
		c.Abort()
		return nil, false
	}

	claims, err := jwtMgr.ParseToken(parts[1])
	if err != nil {
		response.Unauthorized(c, 10002, "Token 无效或已过期")
		c.Abort()
		return nil, false
	}

	if claims.TokenType != "access" {
		response.Unauthorized(c, 10002, "Token 类型无效")
		c.Abort()
		return nil, false
	}

	return claims, true
}

// setIdentity 将 Token 声明注入请求上下文
// access_jti / access_exp 供登出时拉黑当前 Access Token 使用
func setIdentity(c *gin.Context, claims *jwt.Claims) {
	c.Set("user_id", claims.UserID)
	c.Set("username", claims.Username)
	c.Set("role", claims.Role)
	c.Set("access_jti", claims.ID)
	c.Set("access_exp", claims.ExpiresAt.Time)
}
