package service

import (
	"GreenGrove/internal/api/dto"
	"GreenGrove/internal/model"
	"GreenGrove/internal/pkg/consts"
	"GreenGrove/internal/pkg/es"
	"GreenGrove/internal/repository"
	"context"
	log "log/slog"

	"golang.org/x/sync/errgroup"
)

// BatchWorkerLimit 批量操作的并发上限
const BatchWorkerLimit = 8

const (
	BatchOpTransition = "transition"
	BatchOpDelete     = "delete"
)

type BatchService interface {
	Batch(ctx context.Context, actor model.Actor, req *dto.BatchDTO) (*dto.BatchResultDTO, error)
}

type batchServiceImpl struct {
	contentRepo     repository.ContentRepo
	workflowService WorkflowService
	contentESRepo   es.ContentRepo
}

func NewBatchService(contentRepo repository.ContentRepo, workflowService WorkflowService, contentESRepo es.ContentRepo) BatchService {
	return &batchServiceImpl{
		contentRepo:     contentRepo,
		workflowService: workflowService,
		contentESRepo:   contentESRepo,
	}
}

// batchSlot 每个入参 id 占一个槽位，汇总时保持入参顺序
type batchSlot struct {
	id  uint64
	err error
}

// Batch 对一组内容执行同一种操作，单条失败互不影响
func (s *batchServiceImpl) Batch(ctx context.Context, actor model.Actor, req *dto.BatchDTO) (*dto.BatchResultDTO, error) {
	if req.Operation == BatchOpTransition && req.TargetStatus == "" {
		return nil, ErrParamInvalid
	}

	slots := make([]batchSlot, len(req.IDs))

	group := &errgroup.Group{}
	group.SetLimit(BatchWorkerLimit)

	for i, id := range req.IDs {
		slots[i].id = id

		// 取消只在条目开始前生效，已入池的条目完整跑完，避免写一半
		if ctx.Err() != nil {
			slots[i].err = ErrBatchCancelled
			continue
		}

		group.Go(func() error {
			itemCtx := context.WithoutCancel(ctx)
			slots[i].err = s.applyOne(itemCtx, actor, id, req)
			return nil
		})
	}

	_ = group.Wait()

	result := &dto.BatchResultDTO{
		Succeeded: make([]uint64, 0, len(slots)),
		Failed:    make([]dto.BatchFailureDTO, 0),
	}

	storeErrCount := 0
	for _, slot := range slots {
		if slot.err == nil {
			result.Succeeded = append(result.Succeeded, slot.id)
			continue
		}
		if slot.err == ErrStore {
			storeErrCount++
		}
		result.Failed = append(result.Failed, dto.BatchFailureDTO{
			ID:      slot.id,
			Kind:    KindOf(slot.err),
			Message: slot.err.Error(),
		})
	}

	// 所有条目都因存储故障失败，视为基础设施不可用，整体报错
	if storeErrCount == len(slots) && len(slots) > 0 {
		log.ErrorContext(ctx, "batch failed entirely on store errors", "count", len(slots))
		return nil, ErrStore
	}

	return result, nil
}

// applyOne 处理单个 id：读取 → 可见性 → 流转或删除
func (s *batchServiceImpl) applyOne(ctx context.Context, actor model.Actor, id uint64, req *dto.BatchDTO) error {
	content, err := s.contentRepo.GetByID(ctx, id)
	if err != nil {
		return ErrStore
	}
	if content == nil {
		return ErrContentNotFound
	}

	if !VisibleTo(actor, content) {
		return ErrForbidden
	}

	switch req.Operation {
	case BatchOpTransition:
		_, err := s.workflowService.Transition(ctx, actor, id, req.TargetStatus, req.Reason)
		return err
	case BatchOpDelete:
		if err := s.contentRepo.SoftDelete(ctx, id); err != nil {
			return ErrStore
		}
		if s.contentESRepo != nil && content.Status == consts.StatusPublished {
			if err := s.contentESRepo.DeleteContent(ctx, content.ID); err != nil {
				log.WarnContext(ctx, "remove deleted content from index failed", "content_id", id, "err", err)
			}
		}
		return nil
	default:
		return ErrParamInvalid
	}
}
