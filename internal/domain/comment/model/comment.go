package model

import (
	userModel "blog_api/internal/domain/user/model"
	baseModel "blog_api/pkg/model"
)

// Comment 评论模型，最多两层：根评论与其直接回复
type Comment struct {
	baseModel.BaseModel
	PostID   uint            `gorm:"not null;index" json:"postId"`
	AuthorID uint            `gorm:"not null;index" json:"-"`
	Author   *userModel.User `gorm:"foreignKey:AuthorID" json:"author,omitempty"`
	ParentID *uint           `gorm:"index" json:"parentId"`
	Content  string          `gorm:"type:text;not null" json:"content"`
	IsActive bool            `gorm:"not null;default:true" json:"isActive"`
	Replies  []Comment       `gorm:"foreignKey:ParentID" json:"replies,omitempty"`
	// 有效回复数，读取时由预加载的回复集合填充
	ReplyCount int `gorm:"-" json:"replyCount"`
}

func (Comment) TableName() string {
	return "comments"
}

// IsReply 是否为回复（非根评论）
func (c *Comment) IsReply() bool {
	return c.ParentID != nil
}
