package job

import (
	"GreenGrove/internal/api/config"
	"GreenGrove/internal/model"
	"GreenGrove/internal/pkg/consts"
	"GreenGrove/internal/pkg/redis"
	"GreenGrove/internal/repository"
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func TestContentMetricsJobFlush(t *testing.T) {
	mr := miniredis.RunT(t)
	require.NoError(t, redis.InitRedis(config.RedisConfig{Addr: mr.Addr()}))

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&model.Content{}))

	repo := repository.NewContentRepo(db)
	ctx := context.Background()
	require.NoError(t, repo.Create(ctx, &model.Content{
		ContentType: "article", Title: "t", Status: "published", OwnerID: 1, ContentVersion: 1,
	}))

	// 模拟互动事件留下的缓冲
	require.NoError(t, redis.IncrBy(ctx, consts.ContentViewKey+"1", 12))
	require.NoError(t, redis.IncrBy(ctx, consts.ContentLikeKey+"1", 3))
	require.NoError(t, redis.SAdd(ctx, consts.ContentDirtyKey, "1"))

	NewContentMetricsJob(repo).Run()

	content, err := repo.GetByID(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, int64(12), content.ViewCount)
	assert.Equal(t, int64(3), content.LikeCount)

	// 缓冲键已被清空，下一轮不再重复累加
	assert.False(t, mr.Exists(consts.ContentViewKey+"1"))
	assert.False(t, mr.Exists(consts.ContentDirtyKey))
	assert.False(t, mr.Exists(consts.ContentDirtyKey+":processing"))

	NewContentMetricsJob(repo).Run()
	content, err = repo.GetByID(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, int64(12), content.ViewCount)
}
