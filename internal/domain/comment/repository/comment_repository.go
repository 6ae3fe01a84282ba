package repository

import (
	"blog_api/internal/domain/comment/model"

	"gorm.io/gorm"
)

// CommentRepository 评论数据访问接口
type CommentRepository interface {
	Create(comment *model.Comment) error
	// GetActiveByID 查询有效评论，并预加载有效回复
	GetActiveByID(id uint) (*model.Comment, error)
	// ListRoots 查询帖子下的有效根评论（新在前），回复按时间正序
	ListRoots(postID uint) ([]model.Comment, error)
	Update(comment *model.Comment) error
	// SoftDeleteCascade 在一个事务内将评论及其直接回复置为无效
	SoftDeleteCascade(id uint) error
	CountActive(postID uint) (int64, error)
}

type commentRepository struct {
	db *gorm.DB
}

func NewCommentRepository(db *gorm.DB) CommentRepository {
	return &commentRepository{db: db}
}

func (r *commentRepository) Create(comment *model.Comment) error {
	return r.db.Create(comment).Error
}

// withReplies 预加载有效回复与作者信息
func withReplies(db *gorm.DB) *gorm.DB {
	return db.
		Preload("Author").
		Preload("Replies", func(tx *gorm.DB) *gorm.DB {
			return tx.Where("is_active = ?", true).Order("created_at ASC, id ASC")
		}).
		Preload("Replies.Author")
}

func (r *commentRepository) GetActiveByID(id uint) (*model.Comment, error) {
	var comment model.Comment
	err := withReplies(r.db).
		Where("id = ? AND is_active = ?", id, true).
		First(&comment).Error
	if err != nil {
		return nil, err
	}
	return &comment, nil
}

func (r *commentRepository) ListRoots(postID uint) ([]model.Comment, error) {
	var comments []model.Comment
	err := withReplies(r.db).
		Where("post_id = ? AND parent_id IS NULL AND is_active = ?", postID, true).
		Order("created_at DESC, id DESC").
		Find(&comments).Error
	return comments, err
}

func (r *commentRepository) Update(comment *model.Comment) error {
	return r.db.Omit("Author", "Replies").Save(comment).Error
}

func (r *commentRepository) SoftDeleteCascade(id uint) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&model.Comment{}).
			Where("id = ?", id).
			Update("is_active", false).Error; err != nil {
			return err
		}
		// 直接回复一并置为无效
		return tx.Model(&model.Comment{}).
			Where("parent_id = ?", id).
			Update("is_active", false).Error
	})
}

func (r *commentRepository) CountActive(postID uint) (int64, error) {
	var count int64
	err := r.db.Model(&model.Comment{}).
		Where("post_id = ? AND is_active = ?", postID, true).
		Count(&count).Error
	return count, err
}
