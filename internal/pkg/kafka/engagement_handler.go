package kafka

import (
	"GreenGrove/internal/pkg/consts"
	"GreenGrove/internal/pkg/redis"
	"context"
	"errors"
	log "log/slog"
	"strconv"

	"github.com/IBM/sarama"
	"github.com/goccy/go-json"
)

type EngagementHandler struct {
	// 互动计数只进 Redis 缓冲，由定时任务回刷数据库
}

func NewEngagementHandler() *EngagementHandler {
	return &EngagementHandler{}
}

func (s *EngagementHandler) Setup(sarama.ConsumerGroupSession) error {
	log.Info("engagement consumer setup")
	return nil
}

func (s *EngagementHandler) Cleanup(sarama.ConsumerGroupSession) error {
	log.Info("engagement consumer cleanup")
	return nil
}

func (s *EngagementHandler) ConsumeClaim(session sarama.ConsumerGroupSession, claim sarama.ConsumerGroupClaim) error {
	log.Info("topic-engagement consume claim")
	err := pullMessageBatch(session, claim, s.logic)
	if err != nil {
		log.Error("topic-engagement process batch error", "err", err)
		return err
	}
	return nil
}

func (s *EngagementHandler) logic(ctx context.Context, msg *sarama.ConsumerMessage) error {
	var event EngagementEvent
	if err := json.Unmarshal(msg.Value, &event); err != nil {
		log.Error("unmarshal engagement event error", "err", err)
		// 格式错误的消息没有重试价值，直接跳过
		return nil
	}
	if event.ContentID == 0 {
		return errors.New("content id is empty")
	}

	switch event.Action {
	case consts.EngagementView:
		return applyDelta(ctx, event.ContentID, consts.ContentViewKey, 1)
	case consts.EngagementLike:
		return applyDelta(ctx, event.ContentID, consts.ContentLikeKey, 1)
	case consts.EngagementUnlike:
		return applyDelta(ctx, event.ContentID, consts.ContentLikeKey, -1)
	default:
		log.WarnContext(ctx, "unknown engagement action", "action", event.Action)
		return nil
	}
}

// applyDelta 计数进 Redis 并标脏，等待定时任务回刷
func applyDelta(ctx context.Context, contentID uint64, keyPrefix string, delta int64) error {
	idStr := strconv.FormatUint(contentID, 10)
	if err := redis.IncrBy(ctx, keyPrefix+idStr, delta); err != nil {
		return err
	}
	return redis.SAdd(ctx, consts.ContentDirtyKey, idStr)
}
