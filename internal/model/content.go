package model

import (
	"time"
)

type Content struct {
	ID             uint64    `gorm:"primaryKey" json:"id"`
	ContentType    string    `gorm:"type:varchar(20);not null;index:idx_type_category" json:"content_type"`
	Category       *string   `gorm:"type:varchar(20);index:idx_type_category" json:"category,omitempty"`
	Title          string    `gorm:"type:varchar(255);not null" json:"title"`
	Body           string    `gorm:"type:text" json:"body"`
	CoverURL       string    `gorm:"type:varchar(512)" json:"cover_url"`
	Status         string    `gorm:"type:varchar(20);not null;default:'draft';index:idx_status" json:"status"` // draft/pending/published/archived
	OwnerID        uint64    `gorm:"not null;index:idx_owner_id" json:"owner_id"`
	UpdaterID      *uint64   `json:"updater_id,omitempty"`
	ViewCount      int64     `gorm:"not null;default:0" json:"view_count"`
	LikeCount      int64     `gorm:"not null;default:0" json:"like_count"`
	Rating         *float64  `json:"rating,omitempty"`
	ContentVersion int       `gorm:"not null;default:1" json:"content_version"`
	IsDeleted      bool      `gorm:"type:tinyint(1);not null;default:0" json:"is_deleted"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

func (Content) TableName() string {
	return "contents"
}
