package service

import (
	"errors"
	"strings"
	"unicode/utf8"

	"blog_api/internal/domain/comment/model"
	"blog_api/internal/domain/comment/repository"
	postModel "blog_api/internal/domain/post/model"
	postRepo "blog_api/internal/domain/post/repository"
	"blog_api/pkg/apperr"

	"gorm.io/gorm"
)

// maxContentRunes 评论内容长度上限（按字符计，校验原始输入）
const maxContentRunes = 1000

// CommentService 评论服务接口
type CommentService interface {
	// ListForPost 帖子下的有效根评论，附带有效回复
	ListForPost(viewerID, postID uint) ([]model.Comment, error)
	Get(id uint) (*model.Comment, error)
	// Create 创建评论；parentID 非空时为回复，帖子继承自父评论
	Create(userID, postID uint, content string, parentID *uint) (*model.Comment, error)
	// Reply 对指定评论创建回复，规则与 Create 一致
	Reply(userID, parentID uint, content string) (*model.Comment, error)
	Update(userID, id uint, content string) (*model.Comment, error)
	// SoftDelete 将评论及其直接回复置为无效（仅作者）
	SoftDelete(userID, id uint) error
	CountForPost(viewerID, postID uint) (int64, error)
}

type commentService struct {
	comments repository.CommentRepository
	posts    postRepo.PostRepository
}

func NewCommentService(comments repository.CommentRepository, posts postRepo.PostRepository) CommentService {
	return &commentService{comments: comments, posts: posts}
}

// validateContent 去除首尾空白后返回；空内容或超长拒绝
func validateContent(content string) (string, error) {
	trimmed := strings.TrimSpace(content)
	if trimmed == "" {
		return "", apperr.FieldErrors(map[string][]string{
			"content": {"content cannot be empty"},
		})
	}
	if utf8.RuneCountInString(content) > maxContentRunes {
		return "", apperr.FieldErrors(map[string][]string{
			"content": {"content must be at most 1000 characters"},
		})
	}
	return trimmed, nil
}

// checkPostVisible 评论操作以帖子对请求者可见为前提
func (s *commentService) checkPostVisible(viewerID, postID uint) (*postModel.Post, error) {
	post, err := s.posts.GetByID(postID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("post not found")
		}
		return nil, err
	}
	if !post.IsPublished && post.AuthorID != viewerID {
		return nil, apperr.NotFound("post not found")
	}
	return post, nil
}

// fillReplyCounts 从预加载的回复集合填充回复数
func fillReplyCounts(comments []model.Comment) {
	for i := range comments {
		comments[i].ReplyCount = len(comments[i].Replies)
	}
}

func (s *commentService) ListForPost(viewerID, postID uint) ([]model.Comment, error) {
	if _, err := s.checkPostVisible(viewerID, postID); err != nil {
		return nil, err
	}
	comments, err := s.comments.ListRoots(postID)
	if err != nil {
		return nil, err
	}
	fillReplyCounts(comments)
	return comments, nil
}

func (s *commentService) Get(id uint) (*model.Comment, error) {
	comment, err := s.comments.GetActiveByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("comment not found")
		}
		return nil, err
	}
	comment.ReplyCount = len(comment.Replies)
	return comment, nil
}

func (s *commentService) Create(userID, postID uint, content string, parentID *uint) (*model.Comment, error) {
	trimmed, err := validateContent(content)
	if err != nil {
		return nil, err
	}

	if parentID != nil {
		// 回复：父评论必须有效，且自身不能已是回复
		parent, err := s.comments.GetActiveByID(*parentID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, apperr.NotFound("comment not found")
			}
			return nil, err
		}
		if parent.IsReply() {
			return nil, apperr.Validation("no replies to replies")
		}
		// 帖子继承自父评论，忽略路径中的帖子 ID
		postID = parent.PostID
	} else {
		if _, err := s.checkPostVisible(userID, postID); err != nil {
			return nil, err
		}
	}

	comment := &model.Comment{
		PostID:   postID,
		AuthorID: userID,
		ParentID: parentID,
		Content:  trimmed,
		IsActive: true,
	}
	if err := s.comments.Create(comment); err != nil {
		return nil, err
	}
	return s.Get(comment.ID)
}

func (s *commentService) Reply(userID, parentID uint, content string) (*model.Comment, error) {
	return s.Create(userID, 0, content, &parentID)
}

func (s *commentService) Update(userID, id uint, content string) (*model.Comment, error) {
	comment, err := s.Get(id)
	if err != nil {
		return nil, err
	}
	if comment.AuthorID != userID {
		return nil, apperr.Forbidden("only the author can modify this comment")
	}

	trimmed, err := validateContent(content)
	if err != nil {
		return nil, err
	}
	comment.Content = trimmed
	if err := s.comments.Update(comment); err != nil {
		return nil, err
	}
	return s.Get(comment.ID)
}

func (s *commentService) SoftDelete(userID, id uint) error {
	comment, err := s.Get(id)
	if err != nil {
		return err
	}
	if comment.AuthorID != userID {
		return apperr.Forbidden("only the author can delete this comment")
	}
	return s.comments.SoftDeleteCascade(id)
}

func (s *commentService) CountForPost(viewerID, postID uint) (int64, error) {
	if _, err := s.checkPostVisible(viewerID, postID); err != nil {
		return 0, err
	}
	return s.comments.CountActive(postID)
}
