package handler

import (
	"net/http"
	"strconv"

	"blog_api/internal/domain/post/service"
	"blog_api/internal/pkg/middleware"
	"blog_api/pkg/response"

	"github.com/gin-gonic/gin"
)

// PostHandler 帖子处理器
type PostHandler struct {
	service service.PostService
}

// NewPostHandler 创建处理器
func NewPostHandler(s service.PostService) *PostHandler {
	return &PostHandler{service: s}
}

// CreatePostInput 创建帖子输入
type CreatePostInput struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Image       string `json:"image"`
	TagIDs      []uint `json:"tagIds"`
	IsPublished *bool  `json:"isPublished"`
}

// UpdatePostInput 更新帖子输入，缺省字段不变
type UpdatePostInput struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	Image       *string `json:"image"`
	TagIDs      *[]uint `json:"tagIds"`
	IsPublished *bool   `json:"isPublished"`
}

// parseID 解析路径中的数字 ID，非法值按资源不存在处理
func parseID(c *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || id == 0 {
		response.Detail(c, http.StatusNotFound, "not found")
		return 0, false
	}
	return uint(id), true
}

// ListPosts 帖子列表（按可见性过滤）
// @Summary 帖子列表
// @Tags Post
// @Param tag query string false "标签名"
// @Param author query string false "作者用户名"
// @Param isPublished query string false "发布状态过滤"
// @Success 200 {array} service.PostView
// @Router /posts [get]
func (h *PostHandler) ListPosts(c *gin.Context) {
	var isPublished *string
	if v, ok := c.GetQuery("isPublished"); ok {
		isPublished = &v
	}

	viewerID := middleware.CurrentUserID(c)
	posts, err := h.service.List(viewerID, service.ListQuery{
		Tag:         c.Query("tag"),
		Author:      c.Query("author"),
		IsPublished: isPublished,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, posts)
}

// GetPost 帖子详情
func (h *PostHandler) GetPost(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	post, err := h.service.Get(middleware.CurrentUserID(c), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, post)
}

// CreatePost 创建帖子
// @Summary 创建帖子
// @Tags Post
// @Accept json
// @Produce json
// @Param input body CreatePostInput true "帖子内容"
// @Success 201 {object} service.PostView
// @Router /posts [post]
func (h *PostHandler) CreatePost(c *gin.Context) {
	var input CreatePostInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Detail(c, http.StatusBadRequest, err.Error())
		return
	}

	post, err := h.service.Create(middleware.CurrentUserID(c), service.CreatePostInput{
		Title:       input.Title,
		Description: input.Description,
		Image:       input.Image,
		TagIDs:      input.TagIDs,
		IsPublished: input.IsPublished,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, post)
}

// UpdatePost 更新帖子（仅作者）
func (h *PostHandler) UpdatePost(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	var input UpdatePostInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Detail(c, http.StatusBadRequest, err.Error())
		return
	}

	post, err := h.service.Update(middleware.CurrentUserID(c), id, service.UpdatePostInput{
		Title:       input.Title,
		Description: input.Description,
		Image:       input.Image,
		TagIDs:      input.TagIDs,
		IsPublished: input.IsPublished,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, post)
}

// DeletePost 删除帖子（仅作者）
func (h *PostHandler) DeletePost(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	if err := h.service.Delete(middleware.CurrentUserID(c), id); err != nil {
		response.Error(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// MyPosts 我的帖子（含草稿）
func (h *PostHandler) MyPosts(c *gin.Context) {
	posts, err := h.service.Mine(middleware.CurrentUserID(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, posts)
}

// LikedPosts 我点赞过的帖子
func (h *PostHandler) LikedPosts(c *gin.Context) {
	posts, err := h.service.Liked(middleware.CurrentUserID(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, posts)
}

// LikePost 点赞
// 首次点赞 201；重复点赞 409 "already liked"
func (h *PostHandler) LikePost(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	result, err := h.service.Like(middleware.CurrentUserID(c), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, gin.H{
		"detail":     "liked",
		"likesCount": result.LikesCount,
	})
}

// UnlikePost 取消点赞，未点赞返回 404 "not liked"
func (h *PostHandler) UnlikePost(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	result, err := h.service.Unlike(middleware.CurrentUserID(c), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, gin.H{
		"detail":     "unliked",
		"likesCount": result.LikesCount,
	})
}
