package repository

import (
	"GreenGrove/internal/model"
	"context"
	"errors"

	"gorm.io/gorm"
)

type ContentRepo interface {
	Create(ctx context.Context, content *model.Content) error
	GetByID(ctx context.Context, id uint64) (*model.Content, error)
	GetByIDs(ctx context.Context, ids []uint64) ([]*model.Content, error)
	ListPublished(ctx context.Context, contentType, category string, limit, offset int) ([]*model.Content, error)
	ListByOwner(ctx context.Context, ownerID uint64, limit, offset int) ([]*model.Content, error)
	ListAll(ctx context.Context, limit, offset int) ([]*model.Content, error)
	ListByStatusCursor(ctx context.Context, status string, ownerID uint64, lastID uint64, limit int) ([]*model.Content, error)
	UpdateFields(ctx context.Context, content *model.Content) error
	UpdateStatus(ctx context.Context, id uint64, fromVersion int, status string, updaterID uint64) (bool, error)
	UpdateCounts(ctx context.Context, id uint64, views, likes int64) error
	SoftDelete(ctx context.Context, id uint64) error
}

type ContentRepoImpl struct {
	db *gorm.DB
}

func NewContentRepo(db *gorm.DB) ContentRepo {
	return &ContentRepoImpl{db: db}
}

func (s *ContentRepoImpl) Create(ctx context.Context, content *model.Content) error {
	return s.db.WithContext(ctx).Create(content).Error
}

func (s *ContentRepoImpl) GetByID(ctx context.Context, id uint64) (*model.Content, error) {
	var content model.Content
	err := s.db.WithContext(ctx).
		Where("id = ? AND is_deleted = 0", id).
		First(&content).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &content, nil
}

func (s *ContentRepoImpl) GetByIDs(ctx context.Context, ids []uint64) ([]*model.Content, error) {
	var contents []*model.Content
	err := s.db.WithContext(ctx).
		Where("id IN ? AND is_deleted = 0", ids).
		Find(&contents).Error
	if err != nil {
		return nil, err
	}
	return contents, nil
}

func (s *ContentRepoImpl) ListPublished(ctx context.Context, contentType, category string, limit, offset int) ([]*model.Content, error) {
	query := s.db.WithContext(ctx).
		Where("status = ? AND is_deleted = 0", "published")
	if contentType != "" {
		query = query.Where("content_type = ?", contentType)
	}
	if category != "" {
		query = query.Where("category = ?", category)
	}

	var contents []*model.Content
	err := query.Order("updated_at DESC").Limit(limit).Offset(offset).Find(&contents).Error
	if err != nil {
		return nil, err
	}
	return contents, nil
}

func (s *ContentRepoImpl) ListByOwner(ctx context.Context, ownerID uint64, limit, offset int) ([]*model.Content, error) {
	var contents []*model.Content
	err := s.db.WithContext(ctx).
		Where("owner_id = ? AND is_deleted = 0", ownerID).
		Order("updated_at DESC").
		Limit(limit).Offset(offset).
		Find(&contents).Error
	if err != nil {
		return nil, err
	}
	return contents, nil
}

func (s *ContentRepoImpl) ListAll(ctx context.Context, limit, offset int) ([]*model.Content, error) {
	var contents []*model.Content
	err := s.db.WithContext(ctx).
		Where("is_deleted = 0").
		Order("updated_at DESC").
		Limit(limit).Offset(offset).
		Find(&contents).Error
	if err != nil {
		return nil, err
	}
	return contents, nil
}

// ListByStatusCursor 游标查询指定状态的内容，ownerID 为 0 表示不限归属
func (s *ContentRepoImpl) ListByStatusCursor(ctx context.Context, status string, ownerID uint64, lastID uint64, limit int) ([]*model.Content, error) {
	query := s.db.WithContext(ctx).
		Where("status = ? AND is_deleted = 0", status)
	if ownerID > 0 {
		query = query.Where("owner_id = ?", ownerID)
	}
	if lastID > 0 {
		query = query.Where("id > ?", lastID)
	}

	var contents []*model.Content
	err := query.Order("id ASC").Limit(limit).Find(&contents).Error
	if err != nil {
		return nil, err
	}
	return contents, nil
}

// UpdateFields 更新内容字段，不触碰 status
func (s *ContentRepoImpl) UpdateFields(ctx context.Context, content *model.Content) error {
	return s.db.WithContext(ctx).
		Model(&model.Content{}).
		Where("id = ?", content.ID).
		Updates(map[string]interface{}{
			"title":           content.Title,
			"body":            content.Body,
			"cover_url":       content.CoverURL,
			"category":        content.Category,
			"rating":          content.Rating,
			"updater_id":      content.UpdaterID,
			"content_version": gorm.Expr("content_version + 1"),
		}).Error
}

// UpdateStatus 基于版本号的乐观锁写入，返回 false 表示版本已过期
func (s *ContentRepoImpl) UpdateStatus(ctx context.Context, id uint64, fromVersion int, status string, updaterID uint64) (bool, error) {
	result := s.db.WithContext(ctx).
		Model(&model.Content{}).
		Where("id = ? AND content_version = ? AND is_deleted = 0", id, fromVersion).
		Updates(map[string]interface{}{
			"status":          status,
			"updater_id":      updaterID,
			"content_version": gorm.Expr("content_version + 1"),
		})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

func (s *ContentRepoImpl) UpdateCounts(ctx context.Context, id uint64, views, likes int64) error {
	return s.db.WithContext(ctx).
		Model(&model.Content{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"view_count": gorm.Expr("view_count + ?", views),
			"like_count": gorm.Expr("CASE WHEN like_count + ? < 0 THEN 0 ELSE like_count + ? END", likes, likes),
		}).Error
}

func (s *ContentRepoImpl) SoftDelete(ctx context.Context, id uint64) error {
	return s.db.WithContext(ctx).
		Model(&model.Content{}).
		Where("id = ?", id).
		Update("is_deleted", true).Error
}
