package model

import "time"

// BaseModel 基础模型，自增主键 + 时间戳
// 评论的软删除由业务层的 is_active 标记表达，不使用 gorm.DeletedAt
type BaseModel struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
