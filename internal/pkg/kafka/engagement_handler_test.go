package kafka

import (
	"GreenGrove/internal/api/config"
	"GreenGrove/internal/pkg/consts"
	"GreenGrove/internal/pkg/redis"
	"context"
	"testing"

	"github.com/IBM/sarama"
	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestRedis(t *testing.T) {
	t.Helper()
	mr := miniredis.RunT(t)
	require.NoError(t, redis.InitRedis(config.RedisConfig{Addr: mr.Addr()}))
}

func TestEngagementLogic(t *testing.T) {
	setupTestRedis(t)
	handler := NewEngagementHandler()
	ctx := context.Background()

	msgs := []string{
		`{"content_id":7,"action":"view"}`,
		`{"content_id":7,"action":"view"}`,
		`{"content_id":7,"action":"like"}`,
		`{"content_id":7,"action":"unlike"}`,
	}
	for _, raw := range msgs {
		err := handler.logic(ctx, &sarama.ConsumerMessage{Value: []byte(raw)})
		require.NoError(t, err)
	}

	views, err := redis.GetValue(ctx, consts.ContentViewKey+"7")
	require.NoError(t, err)
	assert.Equal(t, "2", views)

	likes, err := redis.GetValue(ctx, consts.ContentLikeKey+"7")
	require.NoError(t, err)
	assert.Equal(t, "0", likes)

	dirty, err := redis.GetSet(ctx, consts.ContentDirtyKey)
	require.NoError(t, err)
	assert.Equal(t, []string{"7"}, dirty)
}

func TestEngagementLogicBadMessage(t *testing.T) {
	setupTestRedis(t)
	handler := NewEngagementHandler()
	ctx := context.Background()

	// 脏数据直接跳过，不触发重试
	assert.NoError(t, handler.logic(ctx, &sarama.ConsumerMessage{Value: []byte("not-json")}))
	assert.NoError(t, handler.logic(ctx, &sarama.ConsumerMessage{Value: []byte(`{"content_id":1,"action":"share"}`)}))
	assert.Error(t, handler.logic(ctx, &sarama.ConsumerMessage{Value: []byte(`{"action":"view"}`)}))
}
