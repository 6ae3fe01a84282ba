package handler

import (
	"net/http"

	"blog_api/internal/domain/post/service"
	"blog_api/pkg/response"

	"github.com/gin-gonic/gin"
)

// TagHandler 标签处理器
type TagHandler struct {
	service service.TagService
}

func NewTagHandler(s service.TagService) *TagHandler {
	return &TagHandler{service: s}
}

// TagInput 标签输入
type TagInput struct {
	Name string `json:"name"`
}

// ListTags 标签列表（按名称排序）
func (h *TagHandler) ListTags(c *gin.Context) {
	tags, err := h.service.List()
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, tags)
}

// GetTag 标签详情
func (h *TagHandler) GetTag(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	tag, err := h.service.Get(id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, tag)
}

// CreateTag 创建标签
func (h *TagHandler) CreateTag(c *gin.Context) {
	var input TagInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Detail(c, http.StatusBadRequest, err.Error())
		return
	}

	tag, err := h.service.Create(input.Name)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, tag)
}

// UpdateTag 更新标签
func (h *TagHandler) UpdateTag(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	var input TagInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Detail(c, http.StatusBadRequest, err.Error())
		return
	}

	tag, err := h.service.Update(id, input.Name)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, tag)
}

// DeleteTag 删除标签，帖子上的关联一并解除
func (h *TagHandler) DeleteTag(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	if err := h.service.Delete(id); err != nil {
		response.Error(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
