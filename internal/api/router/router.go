package router

import (
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/Hari-r31/internship-platform/config"
	"github.com/Hari-r31/internship-platform/internal/api/handler"
	"github.com/Hari-r31/internship-platform/internal/api/middleware"
	"github.com/Hari-r31/internship-platform/internal/model"
	"github.com/Hari-r31/internship-platform/pkg/jwt"
	"github.com/Hari-r31/internship-platform/pkg/redis"
)

// Setup 初始化并返回 Gin 路由引擎
func Setup(cfg *config.Config, h *handler.Handler, jwtMgr *jwt.Manager, rdb *redis.Client, logger *zap.Logger) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	r := gin.New()

	// ── 全局中间件 ──
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger(logger))
	r.Use(middleware.SecurityHeaders())
	r.Use(middleware.CORS(cfg.Server.CORS.AllowOrigins))
	r.Use(middleware.BodyLimit(cfg.Server.MaxBodyBytes))

	// ── 健康检查 ──
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	// ── API v1 ──
	v1 := r.Group("/api/v1")
	{
		// 认证模块（无需认证；登录与找回密码额外限流）
		auth := v1.Group("/auth")
		{
			auth.POST("/register", h.Auth.Register)
			auth.POST("/login", middleware.RateLimit(rdb, 10, time.Minute), h.Auth.Login)
			auth.POST("/refresh", h.Auth.RefreshToken)
			auth.POST("/forgot-password", middleware.RateLimit(rdb, 5, time.Minute), h.Auth.ForgotPassword)
			auth.POST("/reset-password", h.Auth.ResetPassword)
		}

		// 岗位公开读（携带 Token 时计算收藏标记）
		public := v1.Group("")
		public.Use(middleware.OptionalJWTAuth(jwtMgr, rdb))
		{
			public.GET("/internships", h.Internship.List)
			public.GET("/internships/:id/view", h.Internship.Get)
			public.GET("/internships/:id/reviews", h.Review.List)
		}

		// 需要认证的路由
		authorized := v1.Group("")
		authorized.Use(middleware.JWTAuth(jwtMgr, rdb))
		{
			// 认证模块（需要认证）
			authorized.POST("/auth/logout", h.Auth.Logout)
			authorized.GET("/auth/me", h.Auth.Me)
			authorized.PATCH("/auth/password", h.Auth.ChangePassword)

			// 当前用户模块
			me := authorized.Group("/me")
			{
				me.GET("/profile", h.User.GetProfile)
				me.PATCH("/profile", h.User.UpdateProfile)
				me.PATCH("/user", h.User.UpdateAccount)
			}

			// 岗位模块（写操作仅招聘者）
			internships := authorized.Group("/internships")
			{
				internships.POST("/create", middleware.RoleAuth(model.RoleRecruiter), h.Internship.Create)
				internships.GET("/mine", middleware.RoleAuth(model.RoleRecruiter), h.Internship.ListMine)
				internships.PATCH("/:id/edit", middleware.RoleAuth(model.RoleRecruiter), h.Internship.Update)
				internships.DELETE("/:id/edit", middleware.RoleAuth(model.RoleRecruiter), h.Internship.Delete)
				internships.GET("/:id/applicants", middleware.RoleAuth(model.RoleRecruiter), h.Application.ListForInternship)
				internships.GET("/:id/applicants/export", middleware.RoleAuth(model.RoleRecruiter), h.Application.Export)
				internships.POST("/:id/reviews", middleware.RoleAuth(model.RoleStudent), h.Review.Create)
			}

			// 申请模块
			applications := authorized.Group("/applications")
			{
				applications.POST("/apply/:internshipID", middleware.RoleAuth(model.RoleStudent), h.Application.Apply)
				applications.GET("/mine", middleware.RoleAuth(model.RoleStudent), h.Application.ListMine)
				applications.GET("/check/:internshipID", middleware.RoleAuth(model.RoleStudent), h.Application.Check)
				applications.PATCH("/:id/status", middleware.RoleAuth(model.RoleRecruiter), h.Application.UpdateStatus)
				applications.DELETE("/:id/withdraw", middleware.RoleAuth(model.RoleStudent), h.Application.Withdraw)
			}

			// 收藏模块（任意已认证用户）
			bookmarks := authorized.Group("/bookmarks")
			{
				bookmarks.GET("/list", h.Bookmark.List)
				bookmarks.GET("/calendar", h.Bookmark.Calendar)
				bookmarks.GET("/check/:internshipID", h.Bookmark.Check)
				bookmarks.POST("/:internshipID/add", h.Bookmark.Add)
				bookmarks.DELETE("/:internshipID/remove", h.Bookmark.Remove)
			}

			// 活动日志模块
			authorized.GET("/activity-logs", h.ActivityLog.List)

			// 评价模块（修改与删除）
			reviews := authorized.Group("/reviews")
			reviews.Use(middleware.RoleAuth(model.RoleStudent))
			{
				reviews.PATCH("/:id", h.Review.Update)
				reviews.DELETE("/:id", h.Review.Delete)
			}
		}
	}

	return r
}
