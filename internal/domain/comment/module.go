package comment

import (
	"blog_api/internal/domain/comment/handler"
	"blog_api/internal/domain/comment/repository"
	"blog_api/internal/domain/comment/service"
	postRepo "blog_api/internal/domain/post/repository"
	"blog_api/internal/pkg/middleware"
	"blog_api/internal/pkg/registry"
	"blog_api/internal/pkg/session"

	"github.com/gin-gonic/gin"
)

// CommentModule 评论模块
type CommentModule struct{}

func init() {
	// 自动注册模块
	registry.Register(&CommentModule{})
}

func (m *CommentModule) Name() string {
	return "comment"
}

func (m *CommentModule) Priority() int {
	// 依赖帖子模块的数据
	return 20
}

func (m *CommentModule) Init(ctx *registry.ModuleContext) error {
	// 1. 依赖注入
	commentRepo := repository.NewCommentRepository(ctx.DB)
	posts := postRepo.NewPostRepository(ctx.DB)
	commentService := service.NewCommentService(commentRepo, posts)
	commentHandler := handler.NewCommentHandler(commentService)

	// 2. 路由注册
	setupRoutes(ctx.Router, ctx.Sessions, commentHandler)

	return nil
}

func setupRoutes(r *gin.Engine, sessions session.Store, h *handler.CommentHandler) {
	requireAuth := middleware.RequireAuth(sessions)
	optionalAuth := middleware.OptionalAuth(sessions)

	// 帖子路由组已由帖子模块占用 :id 参数名，此处保持一致
	postGroup := r.Group("/posts/:id")
	{
		postGroup.GET("/comments", optionalAuth, h.ListComments)
		postGroup.POST("/comments", requireAuth, h.CreateComment)
		postGroup.GET("/comments/count", optionalAuth, h.CountComments)
	}

	commentGroup := r.Group("/comments")
	{
		commentGroup.GET("/:id", h.GetComment)
		commentGroup.PUT("/:id", requireAuth, h.UpdateComment)
		commentGroup.PATCH("/:id", requireAuth, h.UpdateComment)
		commentGroup.DELETE("/:id", requireAuth, h.DeleteComment)
		commentGroup.POST("/:id/reply", requireAuth, h.ReplyComment)
	}
}
