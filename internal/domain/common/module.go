package common

import (
	commonHandler "blog_api/internal/pkg/common"
	"blog_api/internal/pkg/middleware"
	"blog_api/internal/pkg/registry"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// CommonModule 通用功能模块
type CommonModule struct{}

func init() {
	registry.Register(&CommonModule{})
}

func (m *CommonModule) Name() string {
	return "common"
}

func (m *CommonModule) Priority() int {
	return 100 // 最后初始化
}

func (m *CommonModule) Init(ctx *registry.ModuleContext) error {
	r := ctx.Router

	// 图片上传需要登录
	r.POST("/upload", middleware.RequireAuth(ctx.Sessions), commonHandler.UploadImages)

	r.GET("/health", commonHandler.Health(ctx.DB, ctx.Redis))
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	return nil
}
