package service

import (
	"errors"
	"fmt"
	"time"
	"unicode/utf8"

	"blog_api/internal/domain/post/model"
	"blog_api/internal/domain/post/repository"
	"blog_api/pkg/apperr"

	"gorm.io/gorm"
)

// PostView 帖子视图，在模型之上附带点赞信息
type PostView struct {
	model.Post
	LikesCount int64 `json:"likesCount"`
	IsLiked    bool  `json:"isLiked"`
}

// ListQuery 帖子列表查询参数
type ListQuery struct {
	Tag         string
	Author      string
	IsPublished *string
}

// CreatePostInput 创建帖子输入
type CreatePostInput struct {
	Title       string
	Description string
	Image       string
	TagIDs      []uint
	IsPublished *bool
}

// UpdatePostInput 更新帖子输入，nil 字段保持不变
type UpdatePostInput struct {
	Title       *string
	Description *string
	Image       *string
	TagIDs      *[]uint
	IsPublished *bool
}

// LikeResult 点赞结果
type LikeResult struct {
	LikesCount int64
}

// PostService 帖子服务接口
type PostService interface {
	List(viewerID uint, q ListQuery) ([]PostView, error)
	Get(viewerID, id uint) (*PostView, error)
	Create(authorID uint, in CreatePostInput) (*PostView, error)
	Update(requesterID, id uint, in UpdatePostInput) (*PostView, error)
	Delete(requesterID, id uint) error
	Mine(viewerID uint) ([]PostView, error)
	Liked(viewerID uint) ([]PostView, error)
	Like(userID, postID uint) (*LikeResult, error)
	Unlike(userID, postID uint) (*LikeResult, error)
}

// postService 实现
type postService struct {
	posts repository.PostRepository
	tags  repository.TagRepository
	likes repository.LikeRepository
}

// NewPostService 创建帖子服务
func NewPostService(posts repository.PostRepository, tags repository.TagRepository, likes repository.LikeRepository) PostService {
	return &postService{posts: posts, tags: tags, likes: likes}
}

// visibleTo 帖子对请求者是否可见：已发布，或是请求者自己的草稿
func visibleTo(post *model.Post, viewerID uint) bool {
	return post.IsPublished || (viewerID != 0 && post.AuthorID == viewerID)
}

// decorate 批量补充点赞数和当前用户是否点赞
func (s *postService) decorate(posts []model.Post, viewerID uint) ([]PostView, error) {
	ids := make([]uint, len(posts))
	for i := range posts {
		ids[i] = posts[i].ID
	}

	counts, err := s.posts.LikeCounts(ids)
	if err != nil {
		return nil, err
	}
	liked, err := s.posts.LikedSet(viewerID, ids)
	if err != nil {
		return nil, err
	}

	views := make([]PostView, len(posts))
	for i := range posts {
		views[i] = PostView{
			Post:       posts[i],
			LikesCount: counts[posts[i].ID],
			IsLiked:    liked[posts[i].ID],
		}
	}
	return views, nil
}

func (s *postService) decorateOne(post *model.Post, viewerID uint) (*PostView, error) {
	views, err := s.decorate([]model.Post{*post}, viewerID)
	if err != nil {
		return nil, err
	}
	return &views[0], nil
}

// List 按可见性规则列出帖子
func (s *postService) List(viewerID uint, q ListQuery) ([]PostView, error) {
	posts, err := s.posts.List(repository.PostFilter{
		ViewerID:    viewerID,
		Tag:         q.Tag,
		Author:      q.Author,
		IsPublished: q.IsPublished,
	})
	if err != nil {
		return nil, err
	}
	return s.decorate(posts, viewerID)
}

// Get 获取单个帖子，对请求者不可见的草稿按不存在处理
func (s *postService) Get(viewerID, id uint) (*PostView, error) {
	post, err := s.getVisible(viewerID, id)
	if err != nil {
		return nil, err
	}
	return s.decorateOne(post, viewerID)
}

func (s *postService) getVisible(viewerID, id uint) (*model.Post, error) {
	post, err := s.posts.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("post not found")
		}
		return nil, err
	}
	if !visibleTo(post, viewerID) {
		return nil, apperr.NotFound("post not found")
	}
	return post, nil
}

// validatePostFields 标题与正文校验
func validatePostFields(title, description string) error {
	fields := map[string][]string{}
	if title == "" {
		fields["title"] = append(fields["title"], "title is required")
	}
	if utf8.RuneCountInString(title) > 200 {
		fields["title"] = append(fields["title"], "title must be at most 200 characters")
	}
	if description == "" {
		fields["description"] = append(fields["description"], "description is required")
	}
	if len(fields) > 0 {
		return apperr.FieldErrors(fields)
	}
	return nil
}

// resolveTags 将标签 ID 列表解析为标签实体，存在无效 ID 时整体失败
func (s *postService) resolveTags(tagIDs []uint) ([]model.Tag, error) {
	if len(tagIDs) == 0 {
		return []model.Tag{}, nil
	}
	tags, err := s.tags.GetByIDs(tagIDs)
	if err != nil {
		return nil, err
	}
	if len(tags) != len(tagIDs) {
		return nil, apperr.FieldErrors(map[string][]string{
			"tagIds": {"one or more tag ids are invalid"},
		})
	}
	return tags, nil
}

// Create 创建帖子，作者固定为请求者
func (s *postService) Create(authorID uint, in CreatePostInput) (*PostView, error) {
	if err := validatePostFields(in.Title, in.Description); err != nil {
		return nil, err
	}

	tags, err := s.resolveTags(in.TagIDs)
	if err != nil {
		return nil, err
	}

	isPublished := true
	if in.IsPublished != nil {
		isPublished = *in.IsPublished
	}

	post := &model.Post{
		AuthorID:    authorID,
		Title:       in.Title,
		Description: in.Description,
		Image:       in.Image,
		Tags:        tags,
		IsPublished: isPublished,
	}
	// publishedAt 只在首次发布时写入
	if isPublished {
		now := time.Now()
		post.PublishedAt = &now
	}

	if err := s.posts.Create(post); err != nil {
		return nil, err
	}

	created, err := s.posts.GetByID(post.ID)
	if err != nil {
		return nil, fmt.Errorf("reload created post: %w", err)
	}
	return s.decorateOne(created, authorID)
}

// Update 更新帖子，仅作者可操作
// isPublished 翻转为 true 且 publishedAt 为空时写入当前时间，此后不再变更
func (s *postService) Update(requesterID, id uint, in UpdatePostInput) (*PostView, error) {
	post, err := s.getVisible(requesterID, id)
	if err != nil {
		return nil, err
	}
	if post.AuthorID != requesterID {
		return nil, apperr.Forbidden("only the author can edit this post")
	}

	if in.Title != nil {
		post.Title = *in.Title
	}
	if in.Description != nil {
		post.Description = *in.Description
	}
	if in.Image != nil {
		post.Image = *in.Image
	}
	if err := validatePostFields(post.Title, post.Description); err != nil {
		return nil, err
	}

	// 全部校验先于任何写入，校验失败不产生部分状态
	var tags []model.Tag
	if in.TagIDs != nil {
		tags, err = s.resolveTags(*in.TagIDs)
		if err != nil {
			return nil, err
		}
	}

	if in.IsPublished != nil {
		post.IsPublished = *in.IsPublished
		if post.IsPublished && post.PublishedAt == nil {
			now := time.Now()
			post.PublishedAt = &now
		}
	}

	if in.TagIDs != nil {
		err = s.posts.UpdateWithTags(post, tags)
	} else {
		err = s.posts.Update(post)
	}
	if err != nil {
		return nil, err
	}

	updated, err := s.posts.GetByID(post.ID)
	if err != nil {
		return nil, err
	}
	return s.decorateOne(updated, requesterID)
}

// Delete 删除帖子，仅作者可操作，点赞与评论级联清理
func (s *postService) Delete(requesterID, id uint) error {
	post, err := s.getVisible(requesterID, id)
	if err != nil {
		return err
	}
	if post.AuthorID != requesterID {
		return apperr.Forbidden("only the author can delete this post")
	}
	return s.posts.Delete(post)
}

// Mine 请求者自己的全部帖子（含草稿）
func (s *postService) Mine(viewerID uint) ([]PostView, error) {
	posts, err := s.posts.List(repository.PostFilter{
		ViewerID: viewerID,
		AuthorID: viewerID,
	})
	if err != nil {
		return nil, err
	}
	return s.decorate(posts, viewerID)
}

// Liked 请求者点赞过的帖子，仍受可见性约束
func (s *postService) Liked(viewerID uint) ([]PostView, error) {
	posts, err := s.posts.List(repository.PostFilter{
		ViewerID: viewerID,
		LikedBy:  viewerID,
	})
	if err != nil {
		return nil, err
	}
	return s.decorate(posts, viewerID)
}

// Like 点赞
// 首次点赞成功；重复点赞返回冲突，由数据库唯一索引仲裁并发场景
func (s *postService) Like(userID, postID uint) (*LikeResult, error) {
	post, err := s.getVisible(userID, postID)
	if err != nil {
		return nil, err
	}

	err = s.likes.Create(&model.Like{UserID: userID, PostID: post.ID})
	if err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, apperr.Conflict("already liked")
		}
		return nil, err
	}

	count, err := s.likes.Count(post.ID)
	if err != nil {
		return nil, err
	}
	return &LikeResult{LikesCount: count}, nil
}

// Unlike 取消点赞，未点赞时返回不存在
func (s *postService) Unlike(userID, postID uint) (*LikeResult, error) {
	post, err := s.getVisible(userID, postID)
	if err != nil {
		return nil, err
	}

	deleted, err := s.likes.Delete(userID, post.ID)
	if err != nil {
		return nil, err
	}
	if deleted == 0 {
		return nil, apperr.NotFound("not liked")
	}

	count, err := s.likes.Count(post.ID)
	if err != nil {
		return nil, err
	}
	return &LikeResult{LikesCount: count}, nil
}
