package main

import (
	"blog_api/internal/pkg/config"
	"blog_api/internal/pkg/middleware"
	"blog_api/internal/pkg/registry"
	"blog_api/internal/pkg/session"
	"blog_api/internal/pkg/uploader"
	"blog_api/pkg/database"
	"blog_api/pkg/logger"

	// 域模块通过 init 自注册
	_ "blog_api/internal/domain/comment"
	_ "blog_api/internal/domain/common"
	_ "blog_api/internal/domain/post"
	_ "blog_api/internal/domain/user"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func main() {
	// 1. 加载配置
	config.LoadConfig()

	// 2. 初始化日志
	logger.Init(config.GlobalConfig.App.Debug)
	defer logger.Sync()

	// 3. 初始化数据库与 Redis
	db := database.InitDatabase()
	rdb := database.InitRedis()

	// 4. 会话管理器（Redis 存储，注销即时失效）
	sessions := session.NewManager(rdb)

	// 5. OSS 上传器，未配置时上传接口返回 503，不阻塞启动
	if err := uploader.InitUploader(); err != nil {
		logger.Log.Warn("OSS uploader not available, image upload disabled", zap.Error(err))
	}

	// 6. 创建 gin 引擎与全局中间件
	gin.SetMode(config.GlobalConfig.Server.Mode)
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.LoggerMiddleware())
	r.Use(middleware.TraceMiddleware())
	r.Use(middleware.CORSMiddleware())
	r.Use(middleware.RateLimitMiddleware())
	r.Use(middleware.MetricsMiddleware())

	// 7. 按优先级初始化所有模块
	ctx := &registry.ModuleContext{
		DB:       db,
		Redis:    rdb,
		Sessions: sessions,
		Router:   r,
	}
	if err := registry.InitModules(ctx); err != nil {
		logger.Log.Fatal("failed to init modules", zap.Error(err))
	}

	// 8. 启动服务
	addr := ":" + config.GlobalConfig.Server.Port
	logger.Log.Info("server starting", zap.String("addr", addr))
	if err := r.Run(addr); err != nil {
		logger.Log.Fatal("server exited", zap.Error(err))
	}
}
