package service

import (
	"strings"
	"testing"
	"time"

	"blog_api/internal/domain/post/model"
	"blog_api/internal/domain/post/repository"
	"blog_api/pkg/apperr"
	baseModel "blog_api/pkg/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"
)

// MockPostRepository is a mock of PostRepository
type MockPostRepository struct {
	mock.Mock
}

func (m *MockPostRepository) Create(post *model.Post) error {
	args := m.Called(post)
	return args.Error(0)
}

func (m *MockPostRepository) GetByID(id uint) (*model.Post, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Post), args.Error(1)
}

func (m *MockPostRepository) List(f repository.PostFilter) ([]model.Post, error) {
	args := m.Called(f)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Post), args.Error(1)
}

func (m *MockPostRepository) Update(post *model.Post) error {
	args := m.Called(post)
	return args.Error(0)
}

func (m *MockPostRepository) UpdateWithTags(post *model.Post, tags []model.Tag) error {
	args := m.Called(post, tags)
	return args.Error(0)
}

func (m *MockPostRepository) Delete(post *model.Post) error {
	args := m.Called(post)
	return args.Error(0)
}

func (m *MockPostRepository) LikeCounts(postIDs []uint) (map[uint]int64, error) {
	args := m.Called(postIDs)
	return args.Get(0).(map[uint]int64), args.Error(1)
}

func (m *MockPostRepository) LikedSet(userID uint, postIDs []uint) (map[uint]bool, error) {
	args := m.Called(userID, postIDs)
	return args.Get(0).(map[uint]bool), args.Error(1)
}

// MockTagRepository is a mock of TagRepository
type MockTagRepository struct {
	mock.Mock
}

func (m *MockTagRepository) Create(tag *model.Tag) error {
	args := m.Called(tag)
	return args.Error(0)
}

func (m *MockTagRepository) GetByID(id uint) (*model.Tag, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Tag), args.Error(1)
}

func (m *MockTagRepository) GetByIDs(ids []uint) ([]model.Tag, error) {
	args := m.Called(ids)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Tag), args.Error(1)
}

func (m *MockTagRepository) List() ([]model.Tag, error) {
	args := m.Called()
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Tag), args.Error(1)
}

func (m *MockTagRepository) ExistsByName(name string) (bool, error) {
	args := m.Called(name)
	return args.Bool(0), args.Error(1)
}

func (m *MockTagRepository) Update(tag *model.Tag) error {
	args := m.Called(tag)
	return args.Error(0)
}

func (m *MockTagRepository) Delete(tag *model.Tag) error {
	args := m.Called(tag)
	return args.Error(0)
}

// MockLikeRepository is a mock of LikeRepository
type MockLikeRepository struct {
	mock.Mock
}

func (m *MockLikeRepository) Create(like *model.Like) error {
	args := m.Called(like)
	return args.Error(0)
}

func (m *MockLikeRepository) Delete(userID, postID uint) (int64, error) {
	args := m.Called(userID, postID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockLikeRepository) Count(postID uint) (int64, error) {
	args := m.Called(postID)
	return args.Get(0).(int64), args.Error(1)
}

func newTestService() (*MockPostRepository, *MockTagRepository, *MockLikeRepository, PostService) {
	mockPosts := new(MockPostRepository)
	mockTags := new(MockTagRepository)
	mockLikes := new(MockLikeRepository)
	return mockPosts, mockTags, mockLikes, NewPostService(mockPosts, mockTags, mockLikes)
}

func testPost(id, authorID uint, published bool) *model.Post {
	post := &model.Post{
		BaseModel:   baseModel.BaseModel{ID: id},
		AuthorID:    authorID,
		Title:       "Test Post",
		Description: "body",
		IsPublished: published,
	}
	if published {
		now := time.Now()
		post.PublishedAt = &now
	}
	return post
}

// expectDecorate 为视图装配准备点赞数据
func expectDecorate(mockPosts *MockPostRepository, viewerID uint) {
	mockPosts.On("LikeCounts", mock.AnythingOfType("[]uint")).Return(map[uint]int64{}, nil)
	mockPosts.On("LikedSet", viewerID, mock.AnythingOfType("[]uint")).Return(map[uint]bool{}, nil)
}

func TestGetPost(t *testing.T) {
	t.Run("Published post visible to anonymous", func(t *testing.T) {
		mockPosts, _, _, service := newTestService()

		mockPosts.On("GetByID", uint(1)).Return(testPost(1, 2, true), nil)
		expectDecorate(mockPosts, 0)

		view, err := service.Get(0, 1)

		assert.NoError(t, err)
		assert.Equal(t, uint(1), view.ID)
	})

	t.Run("Draft visible to its author", func(t *testing.T) {
		mockPosts, _, _, service := newTestService()

		mockPosts.On("GetByID", uint(1)).Return(testPost(1, 5, false), nil)
		expectDecorate(mockPosts, 5)

		view, err := service.Get(5, 1)

		assert.NoError(t, err)
		assert.False(t, view.IsPublished)
	})

	t.Run("Draft of another user reported as not found", func(t *testing.T) {
		mockPosts, _, _, service := newTestService()

		mockPosts.On("GetByID", uint(1)).Return(testPost(1, 2, false), nil)

		_, err := service.Get(5, 1)

		assert.Error(t, err)
		assert.Equal(t, apperr.KindNotFound, apperr.KindOf(err))
	})
}

func TestCreatePost(t *testing.T) {
	t.Run("Published at creation sets publishedAt", func(t *testing.T) {
		mockPosts, _, _, service := newTestService()

		mockPosts.On("Create", mock.AnythingOfType("*model.Post")).Run(func(args mock.Arguments) {
			args.Get(0).(*model.Post).ID = 1
		}).Return(nil)
		mockPosts.On("GetByID", uint(1)).Return(testPost(1, 5, true), nil)
		expectDecorate(mockPosts, 5)

		_, err := service.Create(5, CreatePostInput{Title: "Hello", Description: "world"})

		assert.NoError(t, err)
		created := mockPosts.Calls[0].Arguments.Get(0).(*model.Post)
		assert.True(t, created.IsPublished)
		assert.NotNil(t, created.PublishedAt)
		assert.Equal(t, uint(5), created.AuthorID)
	})

	t.Run("Draft creation leaves publishedAt empty", func(t *testing.T) {
		mockPosts, _, _, service := newTestService()

		draft := false
		mockPosts.On("Create", mock.AnythingOfType("*model.Post")).Run(func(args mock.Arguments) {
			args.Get(0).(*model.Post).ID = 1
		}).Return(nil)
		mockPosts.On("GetByID", uint(1)).Return(testPost(1, 5, false), nil)
		expectDecorate(mockPosts, 5)

		_, err := service.Create(5, CreatePostInput{Title: "Hello", Description: "world", IsPublished: &draft})

		assert.NoError(t, err)
		created := mockPosts.Calls[0].Arguments.Get(0).(*model.Post)
		assert.False(t, created.IsPublished)
		assert.Nil(t, created.PublishedAt)
	})

	t.Run("Missing title rejected with field errors", func(t *testing.T) {
		_, _, _, service := newTestService()

		_, err := service.Create(5, CreatePostInput{Description: "world"})

		assert.Error(t, err)
		e, ok := apperr.AsError(err)
		assert.True(t, ok)
		assert.Equal(t, apperr.KindValidation, e.Kind)
		assert.Contains(t, e.Fields, "title")
	})

	t.Run("Title over 200 characters rejected", func(t *testing.T) {
		_, _, _, service := newTestService()

		_, err := service.Create(5, CreatePostInput{Title: strings.Repeat("t", 201), Description: "world"})

		assert.Error(t, err)
		assert.Equal(t, apperr.KindValidation, apperr.KindOf(err))
	})

	t.Run("Invalid tag id rejected", func(t *testing.T) {
		_, mockTags, _, service := newTestService()

		mockTags.On("GetByIDs", []uint{1, 99}).Return([]model.Tag{{ID: 1, Name: "go"}}, nil)

		_, err := service.Create(5, CreatePostInput{Title: "Hello", Description: "world", TagIDs: []uint{1, 99}})

		assert.Error(t, err)
		e, _ := apperr.AsError(err)
		assert.Contains(t, e.Fields, "tagIds")
	})
}

func TestUpdatePost(t *testing.T) {
	t.Run("Publishing a draft sets publishedAt once", func(t *testing.T) {
		mockPosts, _, _, service := newTestService()

		draft := testPost(1, 5, false)
		mockPosts.On("GetByID", uint(1)).Return(draft, nil)
		mockPosts.On("Update", mock.AnythingOfType("*model.Post")).Return(nil)
		expectDecorate(mockPosts, 5)

		published := true
		_, err := service.Update(5, 1, UpdatePostInput{IsPublished: &published})

		assert.NoError(t, err)
		assert.True(t, draft.IsPublished)
		assert.NotNil(t, draft.PublishedAt)
	})

	t.Run("Republishing keeps the original publishedAt", func(t *testing.T) {
		mockPosts, _, _, service := newTestService()

		post := testPost(1, 5, true)
		original := *post.PublishedAt
		post.IsPublished = false // 已取消发布，但首次发布时间保留
		mockPosts.On("GetByID", uint(1)).Return(post, nil)
		mockPosts.On("Update", mock.AnythingOfType("*model.Post")).Return(nil)
		expectDecorate(mockPosts, 5)

		published := true
		_, err := service.Update(5, 1, UpdatePostInput{IsPublished: &published})

		assert.NoError(t, err)
		assert.Equal(t, original, *post.PublishedAt)
	})

	t.Run("Non-author rejected", func(t *testing.T) {
		mockPosts, _, _, service := newTestService()

		mockPosts.On("GetByID", uint(1)).Return(testPost(1, 2, true), nil)

		title := "hijacked"
		_, err := service.Update(5, 1, UpdatePostInput{Title: &title})

		assert.Error(t, err)
		assert.Equal(t, apperr.KindAuthorization, apperr.KindOf(err))
		mockPosts.AssertNotCalled(t, "Update", mock.Anything)
	})

	t.Run("Tags replaced in the same write when provided", func(t *testing.T) {
		mockPosts, mockTags, _, service := newTestService()

		post := testPost(1, 5, true)
		mockPosts.On("GetByID", uint(1)).Return(post, nil)
		mockTags.On("GetByIDs", []uint{2}).Return([]model.Tag{{ID: 2, Name: "go"}}, nil)
		mockPosts.On("UpdateWithTags", post, mock.AnythingOfType("[]model.Tag")).Return(nil)
		expectDecorate(mockPosts, 5)

		tagIDs := []uint{2}
		_, err := service.Update(5, 1, UpdatePostInput{TagIDs: &tagIDs})

		assert.NoError(t, err)
		mockPosts.AssertCalled(t, "UpdateWithTags", post, mock.AnythingOfType("[]model.Tag"))
		mockPosts.AssertNotCalled(t, "Update", mock.Anything)
	})

	t.Run("Invalid tag ids fail before anything is written", func(t *testing.T) {
		mockPosts, mockTags, _, service := newTestService()

		mockPosts.On("GetByID", uint(1)).Return(testPost(1, 5, true), nil)
		mockTags.On("GetByIDs", []uint{1, 99}).Return([]model.Tag{{ID: 1, Name: "go"}}, nil)

		title := "new title"
		tagIDs := []uint{1, 99}
		_, err := service.Update(5, 1, UpdatePostInput{Title: &title, TagIDs: &tagIDs})

		assert.Error(t, err)
		assert.Equal(t, apperr.KindValidation, apperr.KindOf(err))
		mockPosts.AssertNotCalled(t, "Update", mock.Anything)
		mockPosts.AssertNotCalled(t, "UpdateWithTags", mock.Anything, mock.Anything)
	})
}

func TestDeletePost(t *testing.T) {
	t.Run("Author deletes own post", func(t *testing.T) {
		mockPosts, _, _, service := newTestService()

		post := testPost(1, 5, true)
		mockPosts.On("GetByID", uint(1)).Return(post, nil)
		mockPosts.On("Delete", post).Return(nil)

		err := service.Delete(5, 1)

		assert.NoError(t, err)
		mockPosts.AssertExpectations(t)
	})

	t.Run("Non-author rejected", func(t *testing.T) {
		mockPosts, _, _, service := newTestService()

		mockPosts.On("GetByID", uint(1)).Return(testPost(1, 2, true), nil)

		err := service.Delete(5, 1)

		assert.Error(t, err)
		assert.Equal(t, apperr.KindAuthorization, apperr.KindOf(err))
		mockPosts.AssertNotCalled(t, "Delete", mock.Anything)
	})
}

func TestLikePost(t *testing.T) {
	t.Run("First like succeeds with count", func(t *testing.T) {
		mockPosts, _, mockLikes, service := newTestService()

		mockPosts.On("GetByID", uint(1)).Return(testPost(1, 2, true), nil)
		mockLikes.On("Create", mock.AnythingOfType("*model.Like")).Return(nil)
		mockLikes.On("Count", uint(1)).Return(int64(3), nil)

		result, err := service.Like(5, 1)

		assert.NoError(t, err)
		assert.Equal(t, int64(3), result.LikesCount)
	})

	t.Run("Duplicate like reported as conflict", func(t *testing.T) {
		mockPosts, _, mockLikes, service := newTestService()

		mockPosts.On("GetByID", uint(1)).Return(testPost(1, 2, true), nil)
		mockLikes.On("Create", mock.AnythingOfType("*model.Like")).Return(gorm.ErrDuplicatedKey)

		_, err := service.Like(5, 1)

		assert.Error(t, err)
		assert.Equal(t, apperr.KindConflict, apperr.KindOf(err))
		assert.Contains(t, err.Error(), "already liked")
	})

	t.Run("Invisible draft cannot be liked", func(t *testing.T) {
		mockPosts, _, mockLikes, service := newTestService()

		mockPosts.On("GetByID", uint(1)).Return(testPost(1, 2, false), nil)

		_, err := service.Like(5, 1)

		assert.Error(t, err)
		assert.Equal(t, apperr.KindNotFound, apperr.KindOf(err))
		mockLikes.AssertNotCalled(t, "Create", mock.Anything)
	})
}

func TestUnlikePost(t *testing.T) {
	t.Run("Unlike removes the like", func(t *testing.T) {
		mockPosts, _, mockLikes, service := newTestService()

		mockPosts.On("GetByID", uint(1)).Return(testPost(1, 2, true), nil)
		mockLikes.On("Delete", uint(5), uint(1)).Return(int64(1), nil)
		mockLikes.On("Count", uint(1)).Return(int64(2), nil)

		result, err := service.Unlike(5, 1)

		assert.NoError(t, err)
		assert.Equal(t, int64(2), result.LikesCount)
	})

	t.Run("Unlike without a like reported as not found", func(t *testing.T) {
		mockPosts, _, mockLikes, service := newTestService()

		mockPosts.On("GetByID", uint(1)).Return(testPost(1, 2, true), nil)
		mockLikes.On("Delete", uint(5), uint(1)).Return(int64(0), nil)

		_, err := service.Unlike(5, 1)

		assert.Error(t, err)
		assert.Equal(t, apperr.KindNotFound, apperr.KindOf(err))
		assert.Contains(t, err.Error(), "not liked")
	})
}

func TestListPosts(t *testing.T) {
	t.Run("Filter parameters forwarded to the repository", func(t *testing.T) {
		mockPosts, _, _, service := newTestService()

		isPublished := "true"
		expected := repository.PostFilter{
			ViewerID:    5,
			Tag:         "go",
			Author:      "alice",
			IsPublished: &isPublished,
		}
		mockPosts.On("List", expected).Return([]model.Post{*testPost(1, 2, true)}, nil)
		expectDecorate(mockPosts, 5)

		result, err := service.List(5, ListQuery{Tag: "go", Author: "alice", IsPublished: &isPublished})

		assert.NoError(t, err)
		assert.Len(t, result, 1)
		mockPosts.AssertExpectations(t)
	})

	t.Run("Mine lists own posts including drafts", func(t *testing.T) {
		mockPosts, _, _, service := newTestService()

		expected := repository.PostFilter{ViewerID: 5, AuthorID: 5}
		mockPosts.On("List", expected).Return([]model.Post{*testPost(1, 5, false)}, nil)
		expectDecorate(mockPosts, 5)

		result, err := service.Mine(5)

		assert.NoError(t, err)
		assert.Len(t, result, 1)
	})

	t.Run("Liked lists posts liked by the viewer", func(t *testing.T) {
		mockPosts, _, _, service := newTestService()

		expected := repository.PostFilter{ViewerID: 5, LikedBy: 5}
		mockPosts.On("List", expected).Return([]model.Post{*testPost(1, 2, true)}, nil)
		expectDecorate(mockPosts, 5)

		result, err := service.Liked(5)

		assert.NoError(t, err)
		assert.Len(t, result, 1)
	})
}
