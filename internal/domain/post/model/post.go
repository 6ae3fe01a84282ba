package model

import (
	"time"

	userModel "blog_api/internal/domain/user/model"
	baseModel "blog_api/pkg/model"
)

// Post 博客帖子模型
type Post struct {
	baseModel.BaseModel
	AuthorID    uint            `json:"-"`
	Author      *userModel.User `gorm:"foreignKey:AuthorID" json:"author,omitempty"`
	Title       string          `gorm:"size:200" json:"title"`
	Description string          `gorm:"type:text" json:"description"`
	Image       string          `gorm:"size:500" json:"image,omitempty"`
	Tags        []Tag           `gorm:"many2many:post_tags;" json:"tags"`
	IsPublished bool            `gorm:"default:true" json:"isPublished"`
	// 首次发布时写入，此后不再变更
	PublishedAt *time.Time `json:"publishedAt,omitempty"`
}

// Tag 标签模型，与帖子多对多
type Tag struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"uniqueIndex;size:50" json:"name"`
	CreatedAt time.Time `json:"createdAt"`
}

// Like 点赞模型，(user_id, post_id) 唯一
// 并发重复点赞由数据库唯一索引仲裁
type Like struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"uniqueIndex:idx_likes_user_post" json:"userId"`
	PostID    uint      `gorm:"uniqueIndex:idx_likes_user_post" json:"postId"`
	CreatedAt time.Time `json:"createdAt"`
}
