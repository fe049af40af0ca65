package service

import (
	"GreenGrove/internal/api/config"
	"GreenGrove/internal/model"
	pkgMongo "GreenGrove/internal/pkg/mongo"
	"GreenGrove/internal/pkg/redis"
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/alicebob/miniredis/v2"
)

// setupTestRedis 用 miniredis 顶替真实 Redis
func setupTestRedis(t *testing.T) {
	t.Helper()
	mr := miniredis.RunT(t)
	if err := redis.InitRedis(config.RedisConfig{Addr: mr.Addr()}); err != nil {
		t.Fatalf("init test redis: %v", err)
	}
}

// fakeContentRepo 内存版内容仓储，可注入故障
type fakeContentRepo struct {
	mu       sync.Mutex
	contents map[uint64]*model.Content
	failAll  bool // 所有读写都返回错误
}

func newFakeContentRepo(contents ...*model.Content) *fakeContentRepo {
	m := make(map[uint64]*model.Content)
	for _, c := range contents {
		m[c.ID] = c
	}
	return &fakeContentRepo{contents: m}
}

var errFakeStore = errors.New("fake store down")

func (f *fakeContentRepo) Create(ctx context.Context, content *model.Content) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failAll {
		return errFakeStore
	}
	f.contents[content.ID] = content
	return nil
}

func (f *fakeContentRepo) GetByID(ctx context.Context, id uint64) (*model.Content, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failAll {
		return nil, errFakeStore
	}
	content, ok := f.contents[id]
	if !ok || content.IsDeleted {
		return nil, nil
	}
	clone := *content
	return &clone, nil
}

func (f *fakeContentRepo) GetByIDs(ctx context.Context, ids []uint64) ([]*model.Content, error) {
	var result []*model.Content
	for _, id := range ids {
		if c, err := f.GetByID(ctx, id); err != nil {
			return nil, err
		} else if c != nil {
			result = append(result, c)
		}
	}
	return result, nil
}

func (f *fakeContentRepo) ListPublished(ctx context.Context, contentType, category string, limit, offset int) ([]*model.Content, error) {
	return nil, nil
}

func (f *fakeContentRepo) ListByOwner(ctx context.Context, ownerID uint64, limit, offset int) ([]*model.Content, error) {
	return nil, nil
}

func (f *fakeContentRepo) ListAll(ctx context.Context, limit, offset int) ([]*model.Content, error) {
	return nil, nil
}

func (f *fakeContentRepo) ListByStatusCursor(ctx context.Context, status string, ownerID uint64, lastID uint64, limit int) ([]*model.Content, error) {
	return nil, nil
}

func (f *fakeContentRepo) UpdateFields(ctx context.Context, content *model.Content) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failAll {
		return errFakeStore
	}
	existing, ok := f.contents[content.ID]
	if !ok {
		return nil
	}
	existing.Title = content.Title
	existing.Body = content.Body
	existing.ContentVersion++
	return nil
}

func (f *fakeContentRepo) UpdateStatus(ctx context.Context, id uint64, fromVersion int, status string, updaterID uint64) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failAll {
		return false, errFakeStore
	}
	content, ok := f.contents[id]
	if !ok || content.ContentVersion != fromVersion {
		return false, nil
	}
	content.Status = status
	content.ContentVersion++
	content.UpdaterID = &updaterID
	return true, nil
}

func (f *fakeContentRepo) UpdateCounts(ctx context.Context, id uint64, views, likes int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if content, ok := f.contents[id]; ok {
		content.ViewCount += views
		content.LikeCount += likes
	}
	return nil
}

func (f *fakeContentRepo) SoftDelete(ctx context.Context, id uint64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failAll {
		return errFakeStore
	}
	if content, ok := f.contents[id]; ok {
		content.IsDeleted = true
	}
	return nil
}

// current 直接读内部状态，测试断言用
func (f *fakeContentRepo) current(id uint64) *model.Content {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.contents[id]
}

// fakeModerationRepo 内存版审核台账
type fakeModerationRepo struct {
	mu         sync.Mutex
	decisions  []*pkgMongo.ModerationDecision
	failAppend bool
}

func (f *fakeModerationRepo) Append(ctx context.Context, decision *pkgMongo.ModerationDecision) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failAppend {
		return errors.New("ledger down")
	}
	f.decisions = append(f.decisions, decision)
	return nil
}

func (f *fakeModerationRepo) History(ctx context.Context, contentID uint64) ([]*pkgMongo.ModerationDecision, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var result []*pkgMongo.ModerationDecision
	for _, d := range f.decisions {
		if d.ContentID == contentID {
			result = append(result, d)
		}
	}
	return result, nil
}
