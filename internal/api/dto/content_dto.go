package dto

import "time"

// ContentBaseDTO 创建/更新内容时提交的字段
type ContentBaseDTO struct {
	ContentType string   `json:"content_type" binding:"required"`
	Category    *string  `json:"category"`
	Title       string   `json:"title" binding:"required,max=128"`
	Body        string   `json:"body" binding:"required"`
	CoverURL    string   `json:"cover_url"`
	Rating      *float64 `json:"rating" binding:"omitempty,gte=0,lte=5"`
}

// ContentDTO 内容详情返回结构
type ContentDTO struct {
	ID             uint64    `json:"id"`
	ContentType    string    `json:"content_type"`
	Category       *string   `json:"category,omitempty"`
	Title          string    `json:"title"`
	Body           string    `json:"body"`
	CoverURL       string    `json:"cover_url"`
	Status         string    `json:"status"`
	OwnerID        uint64    `json:"owner_id"`
	ViewCount      int64     `json:"view_count"`
	LikeCount      int64     `json:"like_count"`
	Rating         *float64  `json:"rating,omitempty"`
	ContentVersion int       `json:"content_version"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// ContentBriefDTO 列表页返回结构，不带正文
type ContentBriefDTO struct {
	ID          uint64    `json:"id"`
	ContentType string    `json:"content_type"`
	Category    *string   `json:"category,omitempty"`
	Title       string    `json:"title"`
	CoverURL    string    `json:"cover_url"`
	Status      string    `json:"status"`
	OwnerID     uint64    `json:"owner_id"`
	ViewCount   int64     `json:"view_count"`
	LikeCount   int64     `json:"like_count"`
	Rating      *float64  `json:"rating,omitempty"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// ContentListDTO 公开内容列表查询参数
type ContentListDTO struct {
	ContentType string  `form:"content_type"`
	Category    *string `form:"category"`
	Page        int     `form:"page,default=1" binding:"gte=1"`
	PageSize    int     `form:"page_size,default=10" binding:"gte=1,lte=50"`
}

// ContentPageDTO 分页返回结构
type ContentPageDTO struct {
	List    []ContentBriefDTO `json:"list"`
	HasMore bool              `json:"has_more"`
}

// SearchDTO 全文检索参数
type SearchDTO struct {
	Keyword     string `form:"keyword" binding:"required"`
	ContentType string `form:"content_type"`
	Page        int    `form:"page,default=1" binding:"gte=1"`
	PageSize    int    `form:"page_size,default=10" binding:"gte=1,lte=50"`
}
