package post

import (
	"blog_api/internal/domain/post/handler"
	"blog_api/internal/domain/post/repository"
	"blog_api/internal/domain/post/service"
	"blog_api/internal/pkg/middleware"
	"blog_api/internal/pkg/registry"
	"blog_api/internal/pkg/session"

	"github.com/gin-gonic/gin"
)

// PostModule 帖子模块，包含帖子、标签与点赞
type PostModule struct{}

func init() {
	// 自动注册模块
	registry.Register(&PostModule{})
}

func (m *PostModule) Name() string {
	return "post"
}

func (m *PostModule) Priority() int {
	return 10
}

func (m *PostModule) Init(ctx *registry.ModuleContext) error {
	// 1. 依赖注入
	postRepo := repository.NewPostRepository(ctx.DB)
	tagRepo := repository.NewTagRepository(ctx.DB)
	likeRepo := repository.NewLikeRepository(ctx.DB)
	postService := service.NewPostService(postRepo, tagRepo, likeRepo)
	tagService := service.NewTagService(tagRepo)
	postHandler := handler.NewPostHandler(postService)
	tagHandler := handler.NewTagHandler(tagService)

	// 2. 路由注册
	setupRoutes(ctx.Router, ctx.Sessions, postHandler, tagHandler)

	return nil
}

func setupRoutes(r *gin.Engine, sessions session.Store, ph *handler.PostHandler, th *handler.TagHandler) {
	requireAuth := middleware.RequireAuth(sessions)
	optionalAuth := middleware.OptionalAuth(sessions)

	postGroup := r.Group("/posts")
	{
		postGroup.GET("", optionalAuth, ph.ListPosts)
		postGroup.POST("", requireAuth, ph.CreatePost)
		// 静态路由需与 :id 参数路由共存，gin 优先匹配静态段
		postGroup.GET("/mine", requireAuth, ph.MyPosts)
		postGroup.GET("/liked", requireAuth, ph.LikedPosts)
		postGroup.GET("/:id", optionalAuth, ph.GetPost)
		postGroup.PUT("/:id", requireAuth, ph.UpdatePost)
		postGroup.PATCH("/:id", requireAuth, ph.UpdatePost)
		postGroup.DELETE("/:id", requireAuth, ph.DeletePost)
		postGroup.POST("/:id/like", requireAuth, ph.LikePost)
		postGroup.DELETE("/:id/like", requireAuth, ph.UnlikePost)
	}

	tagGroup := r.Group("/tags")
	{
		tagGroup.GET("", th.ListTags)
		tagGroup.POST("", requireAuth, th.CreateTag)
		tagGroup.GET("/:id", th.GetTag)
		tagGroup.PUT("/:id", requireAuth, th.UpdateTag)
		tagGroup.PATCH("/:id", requireAuth, th.UpdateTag)
		tagGroup.DELETE("/:id", requireAuth, th.DeleteTag)
	}
}
