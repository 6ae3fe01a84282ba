package model

import baseModel "blog_api/pkg/model"

// User 用户模型
// 邮箱只在本人账号接口返回，帖子和评论的作者信息不携带
type User struct {
	baseModel.BaseModel
	Username string `gorm:"uniqueIndex;size:150" json:"username"`
	Email    string `gorm:"uniqueIndex;size:254" json:"-"`
	Password string `gorm:"size:128" json:"-"` // bcrypt 哈希，不返回给前端
}
