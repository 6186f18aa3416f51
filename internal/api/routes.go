package api

import (
	"log/slog"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"campusboard/internal/api/middleware"
	"campusboard/internal/auth"
	"campusboard/internal/board"
)

// RouteDeps 汇集注册路由所需的服务与配置。
type RouteDeps struct {
	Users        *board.UserService
	Jobs         *board.JobService
	Applications *board.ApplicationService
	AuthService  *auth.AuthService
	Redis        redis.UniversalClient
	Logger       *slog.Logger

	LoginRateLimitPerHour int
	LoginLockThreshold    int
	LoginLockTTL          time.Duration
	CookieDomain          string
}

// RegisterRoutes 注册 API 路由。
// 角色权限由核心层的访问策略统一裁决，路由层只负责认证与参数绑定。
func RegisterRoutes(router *gin.Engine, deps RouteDeps) {
	authHandler := NewAuthHandler(deps.Users, deps.AuthService, deps.Redis, deps.Logger,
		deps.LoginRateLimitPerHour, deps.LoginLockThreshold, deps.LoginLockTTL, deps.CookieDomain)
	jobHandler := NewJobHandler(deps.Jobs)
	appHandler := NewApplicationHandler(deps.Applications)
	adminHandler := NewAdminHandler(deps.Jobs, deps.Users)
	authMiddleware := middleware.AuthMiddleware(deps.AuthService)

	v1 := router.Group("/v1")
	{
		authGroup := v1.Group("/auth")
		{
			authGroup.POST("/register", authHandler.Register)
			authGroup.POST("/login", authHandler.Login)
			authGroup.POST("/refresh", authHandler.Refresh)
			authGroup.POST("/logout", authMiddleware, authHandler.Logout)
		}

		// 公开浏览：仅 APPROVED 岗位对外可见。
		v1.GET("/jobs", jobHandler.ListApproved)
		v1.GET("/jobs/:id", jobHandler.GetApproved)

		studentGroup := v1.Group("")
		studentGroup.Use(authMiddleware)
		{
			studentGroup.POST("/jobs/:id/apply", appHandler.Apply)
			studentGroup.GET("/applications", appHandler.ListOwn)
		}

		employerGroup := v1.Group("/employer")
		employerGroup.Use(authMiddleware)
		{
			employerGroup.POST("/jobs", jobHandler.Create)
			employerGroup.GET("/jobs", jobHandler.ListOwn)
			employerGroup.PUT("/jobs/:id", jobHandler.Update)
			employerGroup.DELETE("/jobs/:id", jobHandler.Delete)
			employerGroup.GET("/jobs/:id/applications", appHandler.ListForJob)
			employerGroup.PUT("/applications/:id/status", appHandler.Review)
		}

		adminGroup := v1.Group("/admin")
		adminGroup.Use(authMiddleware)
		{
			adminGroup.POST("/jobs/:id/approve", adminHandler.ApproveJob)
			adminGroup.POST("/jobs/:id/reject", adminHandler.RejectJob)
			adminGroup.GET("/jobs", adminHandler.ListJobs)
			adminGroup.GET("/users", adminHandler.ListUsers)
			adminGroup.PUT("/users/:id/status", adminHandler.UpdateUserStatus)
		}
	}
}
