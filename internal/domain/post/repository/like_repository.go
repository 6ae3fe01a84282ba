package repository

import (
	"blog_api/internal/domain/post/model"

	"gorm.io/gorm"
)

// LikeRepository 接口定义
type LikeRepository interface {
	Create(like *model.Like) error
	Delete(userID, postID uint) (int64, error)
	Count(postID uint) (int64, error)
}

type likeRepository struct {
	db *gorm.DB
}

// NewLikeRepository 创建新的仓库实例
func NewLikeRepository(db *gorm.DB) LikeRepository {
	return &likeRepository{db: db}
}

// Create 插入点赞记录
// 重复插入触发唯一索引冲突，gorm 转换为 ErrDuplicatedKey 由上层判定
func (r *likeRepository) Create(like *model.Like) error {
	return r.db.Create(like).Error
}

// Delete 删除点赞记录，返回删除的行数
func (r *likeRepository) Delete(userID, postID uint) (int64, error) {
	result := r.db.Where("user_id = ? AND post_id = ?", userID, postID).Delete(&model.Like{})
	return result.RowsAffected, result.Error
}

// Count 统计帖子的点赞数
func (r *likeRepository) Count(postID uint) (int64, error) {
	var count int64
	err := r.db.Model(&model.Like{}).Where("post_id = ?", postID).Count(&count).Error
	return count, err
}
