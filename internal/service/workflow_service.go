package service

import (
	"GreenGrove/internal/model"
	"GreenGrove/internal/pkg/consts"
	"GreenGrove/internal/pkg/es"
	"GreenGrove/internal/pkg/mongo"
	"GreenGrove/internal/pkg/notify"
	"GreenGrove/internal/pkg/redis"
	"GreenGrove/internal/repository"
	"context"
	log "log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
)

// transitionRule 描述单条合法流转边
type transitionRule struct {
	adminOnly  bool   // 仅 ADMIN 可触发
	needReason bool   // 需要填写原因
	decision   string // 非空则写审核台账
}

// transitionRules 状态机有向图，未登记的边一律非法
var transitionRules = map[string]map[string]transitionRule{
	consts.StatusDraft: {
		consts.StatusPending:  {},                // 提交审核，本人或 ADMIN
		consts.StatusArchived: {adminOnly: true}, // 直接归档
	},
	consts.StatusPending: {
		consts.StatusPublished: {adminOnly: true, decision: consts.DecisionApprove},
		consts.StatusDraft:     {adminOnly: true, needReason: true, decision: consts.DecisionReject},
	},
	consts.StatusPublished: {
		consts.StatusArchived: {}, // 下架，本人或 ADMIN
	},
	consts.StatusArchived: {
		consts.StatusPublished: {adminOnly: true}, // 恢复上架
	},
}

type WorkflowService interface {
	Transition(ctx context.Context, actor model.Actor, contentID uint64, targetStatus string, reason string) (*model.Content, error)
	History(ctx context.Context, contentID uint64) ([]*mongo.ModerationDecision, error)
}

type workflowServiceImpl struct {
	contentRepo    repository.ContentRepo
	moderationRepo mongo.ModerationRepo
	contentESRepo  es.ContentRepo
	notifier       notify.Notifier
}

func NewWorkflowService(contentRepo repository.ContentRepo, moderationRepo mongo.ModerationRepo, contentESRepo es.ContentRepo, notifier notify.Notifier) WorkflowService {
	return &workflowServiceImpl{
		contentRepo:    contentRepo,
		moderationRepo: moderationRepo,
		contentESRepo:  contentESRepo,
		notifier:       notifier,
	}
}

// Transition 执行单条内容的状态流转
// 同一内容的并发流转用 Redis 锁串行化，锁内再走乐观锁兜底
func (s *workflowServiceImpl) Transition(ctx context.Context, actor model.Actor, contentID uint64, targetStatus string, reason string) (*model.Content, error) {
	lockKey := consts.ContentTransitionLock + strconv.FormatUint(contentID, 10)
	lockUUID := uuid.NewString()

	ok, err := redis.TryLock(ctx, lockKey, lockUUID, 5*time.Second, 3)
	if err != nil {
		return nil, ErrStore
	}
	if !ok {
		return nil, ErrConflict
	}
	defer redis.UnLock(ctx, lockKey, lockUUID)

	content, err := s.doTransition(ctx, actor, contentID, targetStatus, reason)
	if err == ErrConflict {
		// 版本冲突重试一次：重新读取、重新校验
		content, err = s.doTransition(ctx, actor, contentID, targetStatus, reason)
	}
	if err != nil {
		return nil, err
	}

	s.afterTransition(ctx, content, targetStatus)
	return content, nil
}

// doTransition 读取最新状态、校验合法性与权限、乐观锁落库、追加台账
func (s *workflowServiceImpl) doTransition(ctx context.Context, actor model.Actor, contentID uint64, targetStatus string, reason string) (*model.Content, error) {
	content, err := s.contentRepo.GetByID(ctx, contentID)
	if err != nil {
		return nil, ErrStore
	}
	if content == nil {
		return nil, ErrContentNotFound
	}

	rule, ok := transitionRules[content.Status][targetStatus]
	if !ok {
		return nil, ErrInvalidTransition
	}

	if rule.adminOnly {
		if actor.Role != consts.RoleAdmin {
			return nil, ErrForbidden
		}
	} else if actor.Role != consts.RoleAdmin && content.OwnerID != actor.ID {
		return nil, ErrForbidden
	}

	if rule.needReason && strings.TrimSpace(reason) == "" {
		return nil, ErrMissingReason
	}

	updated, err := s.contentRepo.UpdateStatus(ctx, contentID, content.ContentVersion, targetStatus, actor.ID)
	if err != nil {
		return nil, ErrStore
	}
	if !updated {
		return nil, ErrConflict
	}

	if rule.decision != "" {
		decision := &mongo.ModerationDecision{
			ContentID:   contentID,
			ContentType: content.ContentType,
			DecidedBy:   actor.ID,
			Decision:    rule.decision,
			Reason:      strings.TrimSpace(reason),
			DecidedAt:   time.Now(),
		}
		if err := s.moderationRepo.Append(ctx, decision); err != nil {
			log.ErrorContext(ctx, "moderation ledger append failed, rolling back", "content_id", contentID, "err", err)
			// 补偿回写：恢复原状态，保证状态与台账要么都成要么都不成
			if ok, rbErr := s.contentRepo.UpdateStatus(ctx, contentID, content.ContentVersion+1, content.Status, actor.ID); rbErr != nil || !ok {
				log.ErrorContext(ctx, "rollback failed", "content_id", contentID, "err", rbErr)
			}
			return nil, ErrLedgerWrite
		}
		if s.notifier != nil {
			go s.notifier.SendDecision(context.WithoutCancel(ctx), decision)
		}
	}

	content.Status = targetStatus
	content.ContentVersion++
	content.UpdaterID = &actor.ID
	content.UpdatedAt = time.Now()
	return content, nil
}

// afterTransition 流转成功后的收尾：公开列表缓存失效、维护搜索索引
// 索引用内容版本号做 ES 外部版本，乱序到达的旧写入会被拒绝
func (s *workflowServiceImpl) afterTransition(ctx context.Context, content *model.Content, targetStatus string) {
	bgCtx := context.WithoutCancel(ctx)

	go func() {
		if err := redis.DeleteByPrefix(bgCtx, consts.ContentListKey); err != nil {
			log.WarnContext(bgCtx, "invalidate list cache failed", "err", err)
		}
	}()

	if s.contentESRepo == nil {
		return
	}

	go func() {
		if targetStatus == consts.StatusPublished {
			doc := &es.ContentES{
				ID:          content.ID,
				ContentType: content.ContentType,
				Category:    content.Category,
				Title:       content.Title,
				Body:        content.Body,
				CoverURL:    content.CoverURL,
				OwnerID:     content.OwnerID,
				ViewCount:   content.ViewCount,
				LikeCount:   content.LikeCount,
				Rating:      content.Rating,
				CreatedAt:   content.CreatedAt,
				UpdatedAt:   content.UpdatedAt,
			}
			if err := s.contentESRepo.IndexContent(bgCtx, doc, int64(content.ContentVersion)); err != nil {
				log.ErrorContext(bgCtx, "index content failed", "content_id", content.ID, "err", err)
			}
			return
		}
		if err := s.contentESRepo.DeleteContent(bgCtx, content.ID); err != nil {
			log.ErrorContext(bgCtx, "remove content from index failed", "content_id", content.ID, "err", err)
		}
	}()
}

// History 查询单条内容的审核记录，按时间正序
func (s *workflowServiceImpl) History(ctx context.Context, contentID uint64) ([]*mongo.ModerationDecision, error) {
	list, err := s.moderationRepo.History(ctx, contentID)
	if err != nil {
		return nil, ErrLedgerWrite
	}
	return list, nil
}
