package job

import (
	"GreenGrove/internal/pkg/consts"
	"GreenGrove/internal/pkg/logger"
	"GreenGrove/internal/pkg/redis"
	"GreenGrove/internal/pkg/util"
	"GreenGrove/internal/repository"
	"context"
	log "log/slog"
	"strconv"

	"github.com/google/uuid"
)

// ContentMetricsJob 把 Redis 里缓冲的浏览/点赞增量回刷到数据库
type ContentMetricsJob struct {
	contentRepo repository.ContentRepo
}

func NewContentMetricsJob(contentRepo repository.ContentRepo) *ContentMetricsJob {
	return &ContentMetricsJob{contentRepo: contentRepo}
}

func (s *ContentMetricsJob) Run() {
	traceID := "job-content-" + uuid.NewString()
	ctx := context.WithValue(context.Background(), logger.TraceIDKey, traceID)

	// 先把脏集合改名，避免回刷期间新事件丢失
	processingKey := consts.ContentDirtyKey + ":processing"
	err := redis.Rename(ctx, consts.ContentDirtyKey, processingKey)
	if err != nil {
		return
	}

	tempSet, err := redis.GetSet(ctx, processingKey)
	if err != nil {
		log.ErrorContext(ctx, "get content dirty set error", "err", err)
		return
	}

	contentIDs, err := util.StrSliceToUInt64Slice(tempSet)
	if err != nil {
		log.ErrorContext(ctx, "convert content set to int slice error", "err", err)
		return
	}

	for _, cid := range contentIDs {
		idStr := strconv.FormatUint(cid, 10)

		views := drainCounter(ctx, consts.ContentViewKey+idStr)
		likes := drainCounter(ctx, consts.ContentLikeKey+idStr)
		if views == 0 && likes == 0 {
			continue
		}

		if err := s.contentRepo.UpdateCounts(ctx, cid, views, likes); err != nil {
			log.ErrorContext(ctx, "update content counts error", "cid", cid, "err", err)
			// 落库失败就把增量补回缓冲，等下一轮再刷
			_ = redis.IncrBy(ctx, consts.ContentViewKey+idStr, views)
			_ = redis.IncrBy(ctx, consts.ContentLikeKey+idStr, likes)
			_ = redis.SAdd(ctx, consts.ContentDirtyKey, idStr)
			continue
		}
	}

	if err := redis.DeleteKey(ctx, processingKey); err != nil {
		log.ErrorContext(ctx, "delete processing set error", "err", err)
	}

	log.InfoContext(ctx, "content metrics flushed", "count", len(contentIDs))
}

// drainCounter 原子取走计数键的当前值
func drainCounter(ctx context.Context, key string) int64 {
	value, err := redis.GetDel(ctx, key)
	if err != nil || value == "" {
		return 0
	}
	delta, err := strconv.ParseInt(value, 10, 64)
	if err != nil {
		log.ErrorContext(ctx, "parse counter error", "key", key, "err", err)
		return 0
	}
	return delta
}
