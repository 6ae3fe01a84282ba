package repository

import (
	"blog_api/internal/domain/post/model"

	"gorm.io/gorm"
)

// TagRepository 接口定义
type TagRepository interface {
	Create(tag *model.Tag) error
	GetByID(id uint) (*model.Tag, error)
	GetByIDs(ids []uint) ([]model.Tag, error)
	List() ([]model.Tag, error)
	ExistsByName(name string) (bool, error)
	Update(tag *model.Tag) error
	Delete(tag *model.Tag) error
}

type tagRepository struct {
	db *gorm.DB
}

// NewTagRepository 创建新的仓库实例
func NewTagRepository(db *gorm.DB) TagRepository {
	return &tagRepository{db: db}
}

func (r *tagRepository) Create(tag *model.Tag) error {
	return r.db.Create(tag).Error
}

func (r *tagRepository) GetByID(id uint) (*model.Tag, error) {
	var tag model.Tag
	if err := r.db.Where("id = ?", id).First(&tag).Error; err != nil {
		return nil, err
	}
	return &tag, nil
}

func (r *tagRepository) GetByIDs(ids []uint) ([]model.Tag, error) {
	var tags []model.Tag
	if len(ids) == 0 {
		return tags, nil
	}
	if err := r.db.Where("id IN ?", ids).Find(&tags).Error; err != nil {
		return nil, err
	}
	return tags, nil
}

// List 获取全部标签，按名称排序
func (r *tagRepository) List() ([]model.Tag, error) {
	var tags []model.Tag
	if err := r.db.Order("name ASC").Find(&tags).Error; err != nil {
		return nil, err
	}
	return tags, nil
}

func (r *tagRepository) ExistsByName(name string) (bool, error) {
	var count int64
	err := r.db.Model(&model.Tag{}).Where("name = ?", name).Count(&count).Error
	return count > 0, err
}

func (r *tagRepository) Update(tag *model.Tag) error {
	return r.db.Save(tag).Error
}

// Delete 删除标签，只解除与帖子的关联，不影响帖子本身
func (r *tagRepository) Delete(tag *model.Tag) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Exec("DELETE FROM post_tags WHERE tag_id = ?", tag.ID).Error; err != nil {
			return err
		}
		return tx.Delete(tag).Error
	})
}
