package service

import (
	"errors"
	"strings"
	"unicode/utf8"

	"blog_api/internal/domain/post/model"
	"blog_api/internal/domain/post/repository"
	"blog_api/pkg/apperr"

	"gorm.io/gorm"
)

// TagService 标签服务接口
type TagService interface {
	List() ([]model.Tag, error)
	Get(id uint) (*model.Tag, error)
	Create(name string) (*model.Tag, error)
	Update(id uint, name string) (*model.Tag, error)
	Delete(id uint) error
}

type tagService struct {
	repo repository.TagRepository
}

// NewTagService 创建标签服务
func NewTagService(repo repository.TagRepository) TagService {
	return &tagService{repo: repo}
}

func (s *tagService) List() ([]model.Tag, error) {
	return s.repo.List()
}

func (s *tagService) Get(id uint) (*model.Tag, error) {
	tag, err := s.repo.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("tag not found")
		}
		return nil, err
	}
	return tag, nil
}

// validateTagName 标签名校验：非空、去重、长度上限 50
func (s *tagService) validateTagName(name string, selfID uint) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", apperr.FieldErrors(map[string][]string{
			"name": {"tag name is required"},
		})
	}
	if utf8.RuneCountInString(name) > 50 {
		return "", apperr.FieldErrors(map[string][]string{
			"name": {"tag name must be at most 50 characters"},
		})
	}

	existing, err := s.repo.ExistsByName(name)
	if err != nil {
		return "", err
	}
	if existing {
		// 更新时允许同名保存
		if selfID != 0 {
			if tag, err := s.repo.GetByID(selfID); err == nil && tag.Name == name {
				return name, nil
			}
		}
		return "", apperr.FieldErrors(map[string][]string{
			"name": {"tag with this name already exists"},
		})
	}
	return name, nil
}

func (s *tagService) Create(name string) (*model.Tag, error) {
	name, err := s.validateTagName(name, 0)
	if err != nil {
		return nil, err
	}

	tag := &model.Tag{Name: name}
	if err := s.repo.Create(tag); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, apperr.FieldErrors(map[string][]string{
				"name": {"tag with this name already exists"},
			})
		}
		return nil, err
	}
	return tag, nil
}

func (s *tagService) Update(id uint, name string) (*model.Tag, error) {
	tag, err := s.Get(id)
	if err != nil {
		return nil, err
	}

	name, err = s.validateTagName(name, id)
	if err != nil {
		return nil, err
	}

	tag.Name = name
	if err := s.repo.Update(tag); err != nil {
		return nil, err
	}
	return tag, nil
}

// Delete 删除标签，帖子只会失去该标签，不会被删除
func (s *tagService) Delete(id uint) error {
	tag, err := s.Get(id)
	if err != nil {
		return err
	}
	return s.repo.Delete(tag)
}
