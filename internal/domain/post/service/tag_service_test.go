package service

import (
	"strings"
	"testing"

	"blog_api/internal/domain/post/model"
	"blog_api/pkg/apperr"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"
)

func TestCreateTag(t *testing.T) {
	t.Run("Create with trimmed name", func(t *testing.T) {
		mockTags := new(MockTagRepository)
		service := NewTagService(mockTags)

		mockTags.On("ExistsByName", "golang").Return(false, nil)
		mockTags.On("Create", mock.AnythingOfType("*model.Tag")).Return(nil)

		tag, err := service.Create("  golang  ")

		assert.NoError(t, err)
		assert.Equal(t, "golang", tag.Name)
		mockTags.AssertExpectations(t)
	})

	t.Run("Empty name rejected", func(t *testing.T) {
		mockTags := new(MockTagRepository)
		service := NewTagService(mockTags)

		_, err := service.Create("   ")

		assert.Error(t, err)
		e, ok := apperr.AsError(err)
		assert.True(t, ok)
		assert.Contains(t, e.Fields, "name")
	})

	t.Run("Name over 50 characters rejected", func(t *testing.T) {
		mockTags := new(MockTagRepository)
		service := NewTagService(mockTags)

		_, err := service.Create(strings.Repeat("x", 51))

		assert.Error(t, err)
		assert.Equal(t, apperr.KindValidation, apperr.KindOf(err))
	})

	t.Run("Duplicate name rejected", func(t *testing.T) {
		mockTags := new(MockTagRepository)
		service := NewTagService(mockTags)

		mockTags.On("ExistsByName", "golang").Return(true, nil)

		_, err := service.Create("golang")

		assert.Error(t, err)
		e, _ := apperr.AsError(err)
		assert.Contains(t, e.Fields["name"][0], "already exists")
		mockTags.AssertNotCalled(t, "Create", mock.Anything)
	})

	t.Run("Unique index race reported as duplicate", func(t *testing.T) {
		mockTags := new(MockTagRepository)
		service := NewTagService(mockTags)

		mockTags.On("ExistsByName", "golang").Return(false, nil)
		mockTags.On("Create", mock.AnythingOfType("*model.Tag")).Return(gorm.ErrDuplicatedKey)

		_, err := service.Create("golang")

		assert.Error(t, err)
		assert.Equal(t, apperr.KindValidation, apperr.KindOf(err))
	})
}

func TestUpdateTag(t *testing.T) {
	t.Run("Rename to a free name", func(t *testing.T) {
		mockTags := new(MockTagRepository)
		service := NewTagService(mockTags)

		mockTags.On("GetByID", uint(1)).Return(&model.Tag{ID: 1, Name: "golang"}, nil)
		mockTags.On("ExistsByName", "go").Return(false, nil)
		mockTags.On("Update", mock.AnythingOfType("*model.Tag")).Return(nil)

		tag, err := service.Update(1, "go")

		assert.NoError(t, err)
		assert.Equal(t, "go", tag.Name)
	})

	t.Run("Saving with its own name allowed", func(t *testing.T) {
		mockTags := new(MockTagRepository)
		service := NewTagService(mockTags)

		mockTags.On("GetByID", uint(1)).Return(&model.Tag{ID: 1, Name: "golang"}, nil)
		mockTags.On("ExistsByName", "golang").Return(true, nil)
		mockTags.On("Update", mock.AnythingOfType("*model.Tag")).Return(nil)

		tag, err := service.Update(1, "golang")

		assert.NoError(t, err)
		assert.Equal(t, "golang", tag.Name)
	})

	t.Run("Rename to a taken name rejected", func(t *testing.T) {
		mockTags := new(MockTagRepository)
		service := NewTagService(mockTags)

		mockTags.On("GetByID", uint(1)).Return(&model.Tag{ID: 1, Name: "golang"}, nil)
		mockTags.On("ExistsByName", "python").Return(true, nil)

		_, err := service.Update(1, "python")

		assert.Error(t, err)
		assert.Equal(t, apperr.KindValidation, apperr.KindOf(err))
		mockTags.AssertNotCalled(t, "Update", mock.Anything)
	})

	t.Run("Unknown tag reported as not found", func(t *testing.T) {
		mockTags := new(MockTagRepository)
		service := NewTagService(mockTags)

		mockTags.On("GetByID", uint(99)).Return(nil, gorm.ErrRecordNotFound)

		_, err := service.Update(99, "go")

		assert.Error(t, err)
		assert.Equal(t, apperr.KindNotFound, apperr.KindOf(err))
	})
}

func TestDeleteTag(t *testing.T) {
	t.Run("Delete detaches the tag", func(t *testing.T) {
		mockTags := new(MockTagRepository)
		service := NewTagService(mockTags)

		tag := &model.Tag{ID: 1, Name: "golang"}
		mockTags.On("GetByID", uint(1)).Return(tag, nil)
		mockTags.On("Delete", tag).Return(nil)

		err := service.Delete(1)

		assert.NoError(t, err)
		mockTags.AssertExpectations(t)
	})

	t.Run("Unknown tag reported as not found", func(t *testing.T) {
		mockTags := new(MockTagRepository)
		service := NewTagService(mockTags)

		mockTags.On("GetByID", uint(99)).Return(nil, gorm.ErrRecordNotFound)

		err := service.Delete(99)

		assert.Error(t, err)
		assert.Equal(t, apperr.KindNotFound, apperr.KindOf(err))
	})
}
