package common

import (
	"net/http"

	"blog_api/internal/pkg/uploader"
	"blog_api/pkg/response"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// UploadImages 上传帖子配图 (支持批量)
// @Summary 上传图片到 OSS (支持批量)
// @Tags Common
// @Accept multipart/form-data
// @Produce json
// @Param files formData file true "Files"
// @Success 200 {object} map[string][]string "URLs"
// @Router /upload [post]
func UploadImages(c *gin.Context) {
	form, err := c.MultipartForm()
	if err != nil {
		response.Detail(c, http.StatusBadRequest, "invalid form data")
		return
	}

	files := form.File["files"]
	if len(files) == 0 {
		response.Detail(c, http.StatusBadRequest, "no files uploaded")
		return
	}

	if uploader.GlobalUploader == nil {
		response.Detail(c, http.StatusServiceUnavailable, "image storage is not configured")
		return
	}

	urls := make([]string, 0, len(files))
	for _, file := range files {
		url, err := uploader.GlobalUploader.UploadImage(file)
		if err != nil {
			response.Detail(c, http.StatusBadRequest, "upload failed: "+err.Error())
			return
		}
		urls = append(urls, url)
	}

	response.OK(c, gin.H{"urls": urls})
}

// Health 存活探针，检查数据库与 Redis 连接
func Health(db *gorm.DB, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		sqlDB, err := db.DB()
		if err != nil || sqlDB.PingContext(c.Request.Context()) != nil {
			response.Detail(c, http.StatusServiceUnavailable, "database unavailable")
			return
		}
		if err := rdb.Ping(c.Request.Context()).Err(); err != nil {
			response.Detail(c, http.StatusServiceUnavailable, "redis unavailable")
			return
		}
		response.OK(c, gin.H{"status": "ok"})
	}
}
