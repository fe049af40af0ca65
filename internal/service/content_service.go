package service

import (
	"GreenGrove/internal/api/dto"
	"GreenGrove/internal/model"
	"GreenGrove/internal/pkg/consts"
	"GreenGrove/internal/pkg/es"
	"GreenGrove/internal/pkg/redis"
	"GreenGrove/internal/repository"
	"context"
	"fmt"
	log "log/slog"
	"strconv"
	"time"

	"github.com/goccy/go-json"
	"github.com/jinzhu/copier"
)

// MaxOffsetLimit Elastic 深分页限制
const MaxOffsetLimit = 10000

// ContentListCacheTTL 公开列表缓存的过期时间，短缓存换精确失效
const ContentListCacheTTL = 30 * time.Second

var validCategories = map[string]struct{}{
	consts.CategoryTool:       {},
	consts.CategoryBook:       {},
	consts.CategoryPot:        {},
	consts.CategoryAccessory:  {},
	consts.CategorySuggestion: {},
}

var validContentTypes = map[string]struct{}{
	consts.ContentTypeArticle: {},
	consts.ContentTypeVideo:   {},
	consts.ContentTypeProduct: {},
}

type ContentService interface {
	CreateContent(ctx context.Context, actor model.Actor, req *dto.ContentBaseDTO) (*dto.ContentDTO, error)
	GetPublished(ctx context.Context, contentID uint64) (*dto.ContentDTO, error)
	ListPublished(ctx context.Context, req *dto.ContentListDTO) (*dto.ContentPageDTO, error)
	SearchPublished(ctx context.Context, req *dto.SearchDTO) (*dto.ContentPageDTO, error)
	ListManaged(ctx context.Context, actor model.Actor, page, pageSize int) (*dto.ContentPageDTO, error)
	ListAudit(ctx context.Context, actor model.Actor, req *dto.AuditListDTO) (*dto.ContentPageDTO, error)
	GetManaged(ctx context.Context, actor model.Actor, contentID uint64) (*dto.ContentDTO, error)
	UpdateContent(ctx context.Context, actor model.Actor, contentID uint64, req *dto.ContentBaseDTO) error
	DeleteContent(ctx context.Context, actor model.Actor, contentID uint64) error
}

type contentServiceImpl struct {
	contentRepo   repository.ContentRepo
	contentESRepo es.ContentRepo
}

func NewContentService(contentRepo repository.ContentRepo, contentESRepo es.ContentRepo) ContentService {
	return &contentServiceImpl{
		contentRepo:   contentRepo,
		contentESRepo: contentESRepo,
	}
}

// validateTypeAndCategory 校验内容类型，category 当且仅当 product 类型携带
func validateTypeAndCategory(contentType string, category *string) error {
	if _, ok := validContentTypes[contentType]; !ok {
		return ErrContentTypeInvalid
	}

	if contentType == consts.ContentTypeProduct {
		if category == nil || *category == "" {
			return ErrCategoryRequired
		}
		if _, ok := validCategories[*category]; !ok {
			return ErrCategoryInvalid
		}
		return nil
	}

	if category != nil && *category != "" {
		return ErrCategoryNotAllowed
	}
	return nil
}

// CreateContent 创建内容，初始状态固定为 draft
func (s *contentServiceImpl) CreateContent(ctx context.Context, actor model.Actor, req *dto.ContentBaseDTO) (*dto.ContentDTO, error) {
	if err := validateTypeAndCategory(req.ContentType, req.Category); err != nil {
		return nil, err
	}

	content := &model.Content{
		ContentType: req.ContentType,
		Category:    req.Category,
		Title:       req.Title,
		Body:        req.Body,
		CoverURL:    req.CoverURL,
		Rating:      req.Rating,
		Status:      consts.StatusDraft,
		OwnerID:     actor.ID,
	}

	if err := s.contentRepo.Create(ctx, content); err != nil {
		log.ErrorContext(ctx, "create content failed", "err", err)
		return nil, ErrStore
	}

	return toContentDTO(content), nil
}

// GetPublished 公开详情，仅已发布内容可见，浏览数异步累加
func (s *contentServiceImpl) GetPublished(ctx context.Context, contentID uint64) (*dto.ContentDTO, error) {
	content, err := s.contentRepo.GetByID(ctx, contentID)
	if err != nil {
		return nil, ErrStore
	}
	if content == nil || content.Status != consts.StatusPublished {
		return nil, ErrContentNotFound
	}

	go func() {
		bgCtx := context.WithoutCancel(ctx)
		idStr := strconv.FormatUint(contentID, 10)
		if err := redis.IncrBy(bgCtx, consts.ContentViewKey+idStr, 1); err != nil {
			return
		}
		_ = redis.SAdd(bgCtx, consts.ContentDirtyKey, idStr)
	}()

	return toContentDTO(content), nil
}

// ListPublished 公开列表，短 TTL 缓存顶住热点翻页
func (s *contentServiceImpl) ListPublished(ctx context.Context, req *dto.ContentListDTO) (*dto.ContentPageDTO, error) {
	category := ""
	if req.Category != nil {
		category = *req.Category
	}
	cacheKey := fmt.Sprintf("%s%s:%s:%d:%d", consts.ContentListKey, req.ContentType, category, req.Page, req.PageSize)

	if cached, err := redis.GetValue(ctx, cacheKey); err == nil && cached != "" {
		var page dto.ContentPageDTO
		if err := json.Unmarshal([]byte(cached), &page); err == nil {
			return &page, nil
		}
	}

	offset := (req.Page - 1) * req.PageSize
	contents, err := s.contentRepo.ListPublished(ctx, req.ContentType, category, req.PageSize+1, offset)
	if err != nil {
		log.ErrorContext(ctx, "list published failed", "err", err)
		return nil, ErrStore
	}

	page := toContentPageDTO(contents, req.PageSize)

	if data, err := json.Marshal(page); err == nil {
		_ = redis.SetWithExpiration(ctx, cacheKey, string(data), ContentListCacheTTL)
	}

	return page, nil
}

// SearchPublished 关键词检索已发布内容
func (s *contentServiceImpl) SearchPublished(ctx context.Context, req *dto.SearchDTO) (*dto.ContentPageDTO, error) {
	from := (req.Page - 1) * req.PageSize
	if from+req.PageSize > MaxOffsetLimit {
		return nil, ErrParamInvalid
	}

	docs, err := s.contentESRepo.SearchContent(ctx, req.Keyword, req.ContentType, from, req.PageSize+1)
	if err != nil {
		log.ErrorContext(ctx, "search content failed", "err", err)
		return nil, ErrStore
	}

	hasMore := len(docs) > req.PageSize
	if hasMore {
		docs = docs[:req.PageSize]
	}

	list := make([]dto.ContentBriefDTO, 0, len(docs))
	for _, doc := range docs {
		brief := dto.ContentBriefDTO{Status: consts.StatusPublished}
		_ = copier.Copy(&brief, doc)
		list = append(list, brief)
	}

	return &dto.ContentPageDTO{List: list, HasMore: hasMore}, nil
}

// ListManaged 管理视角列表：ADMIN 看全部，MODERATOR 只看自己名下
func (s *contentServiceImpl) ListManaged(ctx context.Context, actor model.Actor, page, pageSize int) (*dto.ContentPageDTO, error) {
	offset := (page - 1) * pageSize

	var contents []*model.Content
	var err error
	if actor.Role == consts.RoleAdmin {
		contents, err = s.contentRepo.ListAll(ctx, pageSize+1, offset)
	} else {
		contents, err = s.contentRepo.ListByOwner(ctx, actor.ID, pageSize+1, offset)
	}
	if err != nil {
		log.ErrorContext(ctx, "list managed failed", "err", err)
		return nil, ErrStore
	}

	return toContentPageDTO(FilterVisible(actor, contents), pageSize), nil
}

// ListAudit 审核队列，游标分页；MODERATOR 强制限定在自己名下
func (s *contentServiceImpl) ListAudit(ctx context.Context, actor model.Actor, req *dto.AuditListDTO) (*dto.ContentPageDTO, error) {
	ownerID := req.OwnerID
	if actor.Role != consts.RoleAdmin {
		ownerID = actor.ID
	}

	contents, err := s.contentRepo.ListByStatusCursor(ctx, req.Status, ownerID, req.LastID, req.Limit+1)
	if err != nil {
		log.ErrorContext(ctx, "list audit queue failed", "err", err)
		return nil, ErrStore
	}

	return toContentPageDTO(contents, req.Limit), nil
}

// GetManaged 管理视角详情
func (s *contentServiceImpl) GetManaged(ctx context.Context, actor model.Actor, contentID uint64) (*dto.ContentDTO, error) {
	content, err := s.contentRepo.GetByID(ctx, contentID)
	if err != nil {
		return nil, ErrStore
	}
	if content == nil {
		return nil, ErrContentNotFound
	}
	if !VisibleTo(actor, content) {
		return nil, ErrForbidden
	}
	return toContentDTO(content), nil
}

// UpdateContent 内容字段编辑，不触发状态机校验
func (s *contentServiceImpl) UpdateContent(ctx context.Context, actor model.Actor, contentID uint64, req *dto.ContentBaseDTO) error {
	content, err := s.contentRepo.GetByID(ctx, contentID)
	if err != nil {
		return ErrStore
	}
	if content == nil {
		return ErrContentNotFound
	}
	if actor.Role != consts.RoleAdmin && content.OwnerID != actor.ID {
		return ErrForbidden
	}

	// 内容类型创建后不可变更，分类校验沿用创建时规则
	if req.ContentType != content.ContentType {
		return ErrContentTypeInvalid
	}
	if err := validateTypeAndCategory(req.ContentType, req.Category); err != nil {
		return err
	}

	content.Title = req.Title
	content.Body = req.Body
	content.CoverURL = req.CoverURL
	content.Category = req.Category
	content.Rating = req.Rating
	content.UpdaterID = &actor.ID

	if err := s.contentRepo.UpdateFields(ctx, content); err != nil {
		log.ErrorContext(ctx, "update content failed", "content_id", contentID, "err", err)
		return ErrStore
	}

	// 已发布内容同步刷新索引，外部版本号已在落库时 +1
	if s.contentESRepo != nil && content.Status == consts.StatusPublished {
		go func() {
			bgCtx := context.WithoutCancel(ctx)
			doc := &es.ContentES{}
			_ = copier.Copy(doc, content)
			if err := s.contentESRepo.IndexContent(bgCtx, doc, int64(content.ContentVersion+1)); err != nil {
				log.ErrorContext(bgCtx, "reindex content failed", "content_id", contentID, "err", err)
			}
		}()
	}

	return nil
}

// DeleteContent 软删除，本人或 ADMIN 可操作
func (s *contentServiceImpl) DeleteContent(ctx context.Context, actor model.Actor, contentID uint64) error {
	content, err := s.contentRepo.GetByID(ctx, contentID)
	if err != nil {
		return ErrStore
	}
	if content == nil {
		return ErrContentNotFound
	}
	if actor.Role != consts.RoleAdmin && content.OwnerID != actor.ID {
		return ErrForbidden
	}

	if err := s.contentRepo.SoftDelete(ctx, contentID); err != nil {
		log.ErrorContext(ctx, "delete content failed", "content_id", contentID, "err", err)
		return ErrStore
	}

	if s.contentESRepo != nil && content.Status == consts.StatusPublished {
		go func() {
			bgCtx := context.WithoutCancel(ctx)
			if err := s.contentESRepo.DeleteContent(bgCtx, contentID); err != nil {
				log.ErrorContext(bgCtx, "remove deleted content from index failed", "content_id", contentID, "err", err)
			}
		}()
	}

	return nil
}

func toContentDTO(content *model.Content) *dto.ContentDTO {
	result := &dto.ContentDTO{}
	_ = copier.Copy(result, content)
	return result
}

func toContentPageDTO(contents []*model.Content, pageSize int) *dto.ContentPageDTO {
	hasMore := len(contents) > pageSize
	if hasMore {
		contents = contents[:pageSize]
	}

	list := make([]dto.ContentBriefDTO, 0, len(contents))
	for _, content := range contents {
		brief := dto.ContentBriefDTO{}
		_ = copier.Copy(&brief, content)
		list = append(list, brief)
	}

	return &dto.ContentPageDTO{List: list, HasMore: hasMore}
}
