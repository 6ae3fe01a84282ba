package user

import (
	"blog_api/internal/domain/user/handler"
	"blog_api/internal/domain/user/repository"
	"blog_api/internal/domain/user/service"
	"blog_api/internal/pkg/middleware"
	"blog_api/internal/pkg/registry"
	"blog_api/internal/pkg/session"

	"github.com/gin-gonic/gin"
)

// UserModule 用户模块
type UserModule struct{}

func init() {
	// 自动注册模块
	registry.Register(&UserModule{})
}

func (m *UserModule) Name() string {
	return "user"
}

func (m *UserModule) Priority() int {
	// 用户模块优先级最高，其他模块依赖它提供的身份
	return 1
}

func (m *UserModule) Init(ctx *registry.ModuleContext) error {
	// 1. 依赖注入
	userRepo := repository.NewUserRepository(ctx.DB)
	userService := service.NewUserService(userRepo)
	userHandler := handler.NewUserHandler(userService, ctx.Sessions)

	// 2. 路由注册
	setupRoutes(ctx.Router, ctx.Sessions, userHandler)

	return nil
}

func setupRoutes(r *gin.Engine, sessions session.Store, h *handler.UserHandler) {
	authGroup := r.Group("/auth")
	{
		authGroup.POST("/signup", h.Signup)
		authGroup.POST("/login", h.Login)
		authGroup.POST("/logout", h.Logout)
		authGroup.GET("/user", middleware.RequireAuth(sessions), h.CurrentUser)
	}
}
