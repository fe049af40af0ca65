package dto

import "time"

// UpdateStatusDTO 单条状态流转请求
type UpdateStatusDTO struct {
	TargetStatus string `json:"target_status" binding:"required"`
	Reason       string `json:"reason"`
}

// AuditListDTO 审核队列游标分页参数
type AuditListDTO struct {
	Status  string `form:"status,default=pending"`
	OwnerID uint64 `form:"owner_id"`
	LastID  uint64 `form:"last_id"`
	Limit   int    `form:"limit,default=20" binding:"gte=1,lte=100"`
}

// BatchDTO 批量操作请求
type BatchDTO struct {
	IDs          []uint64 `json:"ids" binding:"required,min=1,max=100"`
	Operation    string   `json:"operation" binding:"required,oneof=transition delete"`
	TargetStatus string   `json:"target_status"`
	Reason       string   `json:"reason"`
}

// BatchFailureDTO 批量操作中单条失败的明细
type BatchFailureDTO struct {
	ID      uint64 `json:"id"`
	Kind    string `json:"kind"`
	Message string `json:"message"`
}

// BatchResultDTO 批量操作返回结构，成功与失败分开列出
type BatchResultDTO struct {
	Succeeded []uint64          `json:"succeeded"`
	Failed    []BatchFailureDTO `json:"failed"`
}

// DecisionDTO 审核决定记录返回结构
type DecisionDTO struct {
	ContentID   uint64    `json:"content_id"`
	ContentType string    `json:"content_type"`
	DecidedBy   uint64    `json:"decided_by"`
	Decision    string    `json:"decision"`
	Reason      string    `json:"reason,omitempty"`
	DecidedAt   time.Time `json:"decided_at"`
}
