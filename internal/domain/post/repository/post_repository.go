package repository

import (
	"strings"

	"blog_api/internal/domain/post/model"

	"gorm.io/gorm"
)

// PostFilter 帖子列表过滤条件
// ViewerID 为 0 表示匿名访问
type PostFilter struct {
	ViewerID    uint
	Tag         string  // 标签名精确匹配
	Author      string  // 作者用户名精确匹配
	AuthorID    uint    // 作者 ID 精确匹配（"我的帖子"）
	LikedBy     uint    // 只看该用户点赞过的帖子
	IsPublished *string // 原样传入的 isPublished 查询参数
}

// VisibilityScope 帖子可见性规则，独立成纯函数便于单测
// 匿名只能看已发布；登录用户额外可见自己的草稿；
// isPublished=true 收窄为仅已发布，其余取值收窄为仅自己的草稿
func VisibilityScope(viewerID uint, isPublished *string) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if viewerID == 0 {
			return db.Where("posts.is_published = ?", true)
		}
		if isPublished != nil {
			if strings.EqualFold(*isPublished, "true") {
				return db.Where("posts.is_published = ?", true)
			}
			return db.Where("posts.author_id = ? AND posts.is_published = ?", viewerID, false)
		}
		return db.Where("posts.is_published = ? OR (posts.author_id = ? AND posts.is_published = ?)",
			true, viewerID, false)
	}
}

// PostRepository 接口定义
type PostRepository interface {
	Create(post *model.Post) error
	GetByID(id uint) (*model.Post, error)
	List(f PostFilter) ([]model.Post, error)
	Update(post *model.Post) error
	UpdateWithTags(post *model.Post, tags []model.Tag) error
	Delete(post *model.Post) error
	LikeCounts(postIDs []uint) (map[uint]int64, error)
	LikedSet(userID uint, postIDs []uint) (map[uint]bool, error)
}

// postRepository 实现
type postRepository struct {
	db *gorm.DB
}

// NewPostRepository 创建新的仓库实例
func NewPostRepository(db *gorm.DB) PostRepository {
	return &postRepository{db: db}
}

// Create 创建帖子（含标签关联）
func (r *postRepository) Create(post *model.Post) error {
	return r.db.Create(post).Error
}

// GetByID 根据ID获取帖子，带作者和标签
func (r *postRepository) GetByID(id uint) (*model.Post, error) {
	var post model.Post
	if err := r.db.Preload("Author").Preload("Tags").Where("id = ?", id).First(&post).Error; err != nil {
		return nil, err
	}
	return &post, nil
}

// List 按过滤条件查询帖子
// 标签关联会产生重复行，必须去重；排序固定为创建时间倒序、ID 倒序
func (r *postRepository) List(f PostFilter) ([]model.Post, error) {
	db := r.db.Model(&model.Post{}).Scopes(VisibilityScope(f.ViewerID, f.IsPublished))

	if f.Tag != "" {
		db = db.Joins("JOIN post_tags pt ON pt.post_id = posts.id").
			Joins("JOIN tags t ON t.id = pt.tag_id").
			Where("t.name = ?", f.Tag)
	}
	if f.Author != "" {
		db = db.Joins("JOIN users u ON u.id = posts.author_id").
			Where("u.username = ?", f.Author)
	}
	if f.AuthorID != 0 {
		db = db.Where("posts.author_id = ?", f.AuthorID)
	}
	if f.LikedBy != 0 {
		db = db.Joins("JOIN likes l ON l.post_id = posts.id").
			Where("l.user_id = ?", f.LikedBy)
	}

	var posts []model.Post
	err := db.Distinct("posts.*").
		Preload("Author").
		Preload("Tags").
		Order("posts.created_at DESC, posts.id DESC").
		Find(&posts).Error
	if err != nil {
		return nil, err
	}
	return posts, nil
}

// Update 保存帖子
func (r *postRepository) Update(post *model.Post) error {
	// Save 不触碰多对多关联，标签替换走 UpdateWithTags
	return r.db.Omit("Tags", "Author").Save(post).Error
}

// UpdateWithTags 在同一事务内保存帖子并替换标签集合
// 字段更新与标签替换是一次逻辑操作，任一步失败整体回滚
func (r *postRepository) UpdateWithTags(post *model.Post, tags []model.Tag) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("Tags", "Author").Save(post).Error; err != nil {
			return err
		}
		return tx.Model(post).Association("Tags").Replace(tags)
	})
}

// Delete 删除帖子，点赞、评论、标签关联在同一事务内级联清理
func (r *postRepository) Delete(post *model.Post) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("post_id = ?", post.ID).Delete(&model.Like{}).Error; err != nil {
			return err
		}
		if err := tx.Exec("DELETE FROM comments WHERE post_id = ?", post.ID).Error; err != nil {
			return err
		}
		if err := tx.Model(post).Association("Tags").Clear(); err != nil {
			return err
		}
		return tx.Delete(post).Error
	})
}

// LikeCounts 批量统计点赞数
func (r *postRepository) LikeCounts(postIDs []uint) (map[uint]int64, error) {
	counts := make(map[uint]int64, len(postIDs))
	if len(postIDs) == 0 {
		return counts, nil
	}

	type row struct {
		PostID uint
		Total  int64
	}
	var rows []row
	err := r.db.Model(&model.Like{}).
		Select("post_id, COUNT(*) AS total").
		Where("post_id IN ?", postIDs).
		Group("post_id").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	for _, rw := range rows {
		counts[rw.PostID] = rw.Total
	}
	return counts, nil
}

// LikedSet 查询用户点赞过的帖子集合
func (r *postRepository) LikedSet(userID uint, postIDs []uint) (map[uint]bool, error) {
	liked := make(map[uint]bool, len(postIDs))
	if userID == 0 || len(postIDs) == 0 {
		return liked, nil
	}

	var ids []uint
	err := r.db.Model(&model.Like{}).
		Where("user_id = ? AND post_id IN ?", userID, postIDs).
		Pluck("post_id", &ids).Error
	if err != nil {
		return nil, err
	}
	for _, id := range ids {
		liked[id] = true
	}
	return liked, nil
}
