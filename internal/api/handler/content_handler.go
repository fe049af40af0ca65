package handler

import (
	"GreenGrove/internal/api/dto"
	"GreenGrove/internal/api/middleware"
	"GreenGrove/internal/pkg/response"
	"GreenGrove/internal/service"
	"strconv"

	"github.com/gin-gonic/gin"
)

type ContentHandler struct {
	contentSvc service.ContentService
}

func NewContentHandler(contentSvc service.ContentService) *ContentHandler {
	return &ContentHandler{
		contentSvc: contentSvc,
	}
}

// ListPublished 公开内容列表
func (s *ContentHandler) ListPublished(c *gin.Context) {
	var req dto.ContentListDTO
	if err := c.ShouldBindQuery(&req); err != nil {
		response.Error(c, err)
		return
	}

	page, err := s.contentSvc.ListPublished(c.Request.Context(), &req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, page)
}

// GetPublished 公开内容详情
func (s *ContentHandler) GetPublished(c *gin.Context) {
	contentID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, service.ErrParamInvalid)
		return
	}

	content, err := s.contentSvc.GetPublished(c.Request.Context(), contentID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, content)
}

// SearchPublished 关键词检索
func (s *ContentHandler) SearchPublished(c *gin.Context) {
	var req dto.SearchDTO
	if err := c.ShouldBindQuery(&req); err != nil {
		response.Error(c, err)
		return
	}

	page, err := s.contentSvc.SearchPublished(c.Request.Context(), &req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, page)
}

// CreateContent 创建内容
func (s *ContentHandler) CreateContent(c *gin.Context) {
	actor := middleware.CurrentActor(c)

	var req dto.ContentBaseDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, err)
		return
	}

	content, err := s.contentSvc.CreateContent(c.Request.Context(), actor, &req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, content)
}

// ListManaged 管理视角列表
func (s *ContentHandler) ListManaged(c *gin.Context) {
	actor := middleware.CurrentActor(c)

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "10"))
	if page < 1 || pageSize < 1 || pageSize > 50 {
		response.Error(c, service.ErrParamInvalid)
		return
	}

	result, err := s.contentSvc.ListManaged(c.Request.Context(), actor, page, pageSize)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, result)
}

// GetManaged 管理视角详情
func (s *ContentHandler) GetManaged(c *gin.Context) {
	actor := middleware.CurrentActor(c)

	contentID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, service.ErrParamInvalid)
		return
	}

	content, err := s.contentSvc.GetManaged(c.Request.Context(), actor, contentID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, content)
}

// UpdateContent 编辑内容字段，不触碰状态
func (s *ContentHandler) UpdateContent(c *gin.Context) {
	actor := middleware.CurrentActor(c)

	contentID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, service.ErrParamInvalid)
		return
	}

	var req dto.ContentBaseDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, err)
		return
	}

	if err := s.contentSvc.UpdateContent(c.Request.Context(), actor, contentID, &req); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, nil)
}

// DeleteContent 删除内容
func (s *ContentHandler) DeleteContent(c *gin.Context) {
	actor := middleware.CurrentActor(c)

	contentID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, service.ErrParamInvalid)
		return
	}

	if err := s.contentSvc.DeleteContent(c.Request.Context(), actor, contentID); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, nil)
}
