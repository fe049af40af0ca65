package handler

import (
	"GreenGrove/internal/api/dto"
	"GreenGrove/internal/api/middleware"
	"GreenGrove/internal/pkg/response"
	"GreenGrove/internal/service"
	"strconv"

	"github.com/gin-gonic/gin"
)

type AuditHandler struct {
	contentSvc  service.ContentService
	workflowSvc service.WorkflowService
	batchSvc    service.BatchService
}

func NewAuditHandler(contentSvc service.ContentService, workflowSvc service.WorkflowService, batchSvc service.BatchService) *AuditHandler {
	return &AuditHandler{
		contentSvc:  contentSvc,
		workflowSvc: workflowSvc,
		batchSvc:    batchSvc,
	}
}

// ListAudit 审核队列
func (s *AuditHandler) ListAudit(c *gin.Context) {
	actor := middleware.CurrentActor(c)

	var req dto.AuditListDTO
	if err := c.ShouldBindQuery(&req); err != nil {
		response.Error(c, err)
		return
	}

	page, err := s.contentSvc.ListAudit(c.Request.Context(), actor, &req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, page)
}

// UpdateStatus 单条状态流转
func (s *AuditHandler) UpdateStatus(c *gin.Context) {
	actor := middleware.CurrentActor(c)

	contentID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, service.ErrParamInvalid)
		return
	}

	var req dto.UpdateStatusDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, err)
		return
	}

	content, err := s.workflowSvc.Transition(c.Request.Context(), actor, contentID, req.TargetStatus, req.Reason)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, content)
}

// Batch 批量流转或删除
func (s *AuditHandler) Batch(c *gin.Context) {
	actor := middleware.CurrentActor(c)

	var req dto.BatchDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, err)
		return
	}

	result, err := s.batchSvc.Batch(c.Request.Context(), actor, &req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, result)
}

// History 审核记录
func (s *AuditHandler) History(c *gin.Context) {
	contentID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, service.ErrParamInvalid)
		return
	}

	list, err := s.workflowSvc.History(c.Request.Context(), contentID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, list)
}
