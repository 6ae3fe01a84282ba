package handler

import (
	"net/http"
	"strconv"

	"blog_api/internal/domain/comment/service"
	"blog_api/internal/pkg/middleware"
	"blog_api/pkg/response"

	"github.com/gin-gonic/gin"
)

// CommentHandler 评论处理器
type CommentHandler struct {
	service service.CommentService
}

func NewCommentHandler(s service.CommentService) *CommentHandler {
	return &CommentHandler{service: s}
}

// CreateCommentInput 创建评论输入
type CreateCommentInput struct {
	Content  string `json:"content"`
	ParentID *uint  `json:"parentId"`
}

// UpdateCommentInput 更新评论输入
type UpdateCommentInput struct {
	Content string `json:"content"`
}

func parseID(c *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || id == 0 {
		response.Detail(c, http.StatusNotFound, "not found")
		return 0, false
	}
	return uint(id), true
}

// ListComments 帖子下的根评论列表
// @Summary 评论列表
// @Tags Comment
// @Param id path int true "帖子 ID"
// @Success 200 {array} model.Comment
// @Router /posts/{id}/comments [get]
func (h *CommentHandler) ListComments(c *gin.Context) {
	postID, ok := parseID(c, "id")
	if !ok {
		return
	}

	comments, err := h.service.ListForPost(middleware.CurrentUserID(c), postID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, comments)
}

// CreateComment 创建评论，parentId 非空时为回复
func (h *CommentHandler) CreateComment(c *gin.Context) {
	postID, ok := parseID(c, "id")
	if !ok {
		return
	}

	var input CreateCommentInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Detail(c, http.StatusBadRequest, err.Error())
		return
	}

	comment, err := h.service.Create(middleware.CurrentUserID(c), postID, input.Content, input.ParentID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, comment)
}

// CountComments 帖子下的有效评论数（根评论 + 回复）
func (h *CommentHandler) CountComments(c *gin.Context) {
	postID, ok := parseID(c, "id")
	if !ok {
		return
	}

	count, err := h.service.CountForPost(middleware.CurrentUserID(c), postID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, gin.H{"count": count})
}

// GetComment 评论详情（含有效回复）
func (h *CommentHandler) GetComment(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	comment, err := h.service.Get(id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, comment)
}

// UpdateComment 更新评论内容（仅作者）
func (h *CommentHandler) UpdateComment(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	var input UpdateCommentInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Detail(c, http.StatusBadRequest, err.Error())
		return
	}

	comment, err := h.service.Update(middleware.CurrentUserID(c), id, input.Content)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, comment)
}

// DeleteComment 软删除评论及其直接回复（仅作者）
func (h *CommentHandler) DeleteComment(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	if err := h.service.SoftDelete(middleware.CurrentUserID(c), id); err != nil {
		response.Error(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// ReplyComment 对指定评论创建回复
func (h *CommentHandler) ReplyComment(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	var input UpdateCommentInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Detail(c, http.StatusBadRequest, err.Error())
		return
	}

	comment, err := h.service.Reply(middleware.CurrentUserID(c), id, input.Content)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, comment)
}
