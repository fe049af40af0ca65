package es

import (
	"time"
)

// ContentES 搜索索引中的内容文档，只收录已发布内容
type ContentES struct {
	ID          uint64    `json:"id"`
	ContentType string    `json:"content_type"`
	Category    *string   `json:"category,omitempty"`
	Title       string    `json:"title"`
	Body        string    `json:"body"`
	CoverURL    string    `json:"cover_url"`
	OwnerID     uint64    `json:"owner_id"`
	ViewCount   int64     `json:"view_count"`
	LikeCount   int64     `json:"like_count"`
	Rating      *float64  `json:"rating,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
