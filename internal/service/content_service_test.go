package service

import (
	"GreenGrove/internal/api/dto"
	"GreenGrove/internal/model"
	"GreenGrove/internal/pkg/consts"
	"GreenGrove/internal/pkg/util"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestContentService(t *testing.T, repo *fakeContentRepo) ContentService {
	t.Helper()
	setupTestRedis(t)
	return NewContentService(repo, nil)
}

func TestCreateContentCategoryRules(t *testing.T) {
	repo := newFakeContentRepo()
	svc := newTestContentService(t, repo)
	actor := model.Actor{ID: 2, Role: consts.RoleModerator}

	// product 必须携带合法分类
	_, err := svc.CreateContent(context.Background(), actor, &dto.ContentBaseDTO{
		ContentType: consts.ContentTypeProduct, Title: "花盆", Body: "b",
	})
	assert.ErrorIs(t, err, ErrCategoryRequired)

	_, err = svc.CreateContent(context.Background(), actor, &dto.ContentBaseDTO{
		ContentType: consts.ContentTypeProduct, Category: util.PtrStr("flower"), Title: "花盆", Body: "b",
	})
	assert.ErrorIs(t, err, ErrCategoryInvalid)

	// 非 product 不允许携带分类
	_, err = svc.CreateContent(context.Background(), actor, &dto.ContentBaseDTO{
		ContentType: consts.ContentTypeArticle, Category: util.PtrStr("pot"), Title: "文章", Body: "b",
	})
	assert.ErrorIs(t, err, ErrCategoryNotAllowed)

	_, err = svc.CreateContent(context.Background(), actor, &dto.ContentBaseDTO{
		ContentType: "podcast", Title: "x", Body: "b",
	})
	assert.ErrorIs(t, err, ErrContentTypeInvalid)
}

func TestCreateContentStartsAsDraft(t *testing.T) {
	repo := newFakeContentRepo()
	svc := newTestContentService(t, repo)
	actor := model.Actor{ID: 2, Role: consts.RoleModerator}

	content, err := svc.CreateContent(context.Background(), actor, &dto.ContentBaseDTO{
		ContentType: consts.ContentTypeProduct, Category: util.PtrStr(consts.CategoryPot), Title: "陶盆", Body: "b",
	})
	require.NoError(t, err)
	assert.Equal(t, consts.StatusDraft, content.Status)
	assert.Equal(t, uint64(2), content.OwnerID)
}

func TestGetPublishedHidesNonPublished(t *testing.T) {
	repo := newFakeContentRepo(
		&model.Content{ID: 1, OwnerID: 2, Status: consts.StatusDraft, ContentVersion: 1},
		&model.Content{ID: 2, OwnerID: 2, Status: consts.StatusPublished, ContentVersion: 1, Title: "可见"},
	)
	svc := newTestContentService(t, repo)

	_, err := svc.GetPublished(context.Background(), 1)
	assert.ErrorIs(t, err, ErrContentNotFound)

	content, err := svc.GetPublished(context.Background(), 2)
	require.NoError(t, err)
	assert.Equal(t, "可见", content.Title)
}

func TestGetManagedVisibility(t *testing.T) {
	repo := newFakeContentRepo(
		&model.Content{ID: 1, OwnerID: 9, Status: consts.StatusPending, ContentVersion: 1},
	)
	svc := newTestContentService(t, repo)

	moderator := model.Actor{ID: 2, Role: consts.RoleModerator}
	_, err := svc.GetManaged(context.Background(), moderator, 1)
	assert.ErrorIs(t, err, ErrForbidden)

	admin := model.Actor{ID: 1, Role: consts.RoleAdmin}
	content, err := svc.GetManaged(context.Background(), admin, 1)
	require.NoError(t, err)
	assert.Equal(t, uint64(1), content.ID)
}

func TestUpdateContentRules(t *testing.T) {
	repo := newFakeContentRepo(
		&model.Content{ID: 1, OwnerID: 2, ContentType: consts.ContentTypeArticle, Status: consts.StatusDraft, ContentVersion: 1, Title: "旧"},
	)
	svc := newTestContentService(t, repo)

	other := model.Actor{ID: 9, Role: consts.RoleModerator}
	err := svc.UpdateContent(context.Background(), other, 1, &dto.ContentBaseDTO{
		ContentType: consts.ContentTypeArticle, Title: "新", Body: "b",
	})
	assert.ErrorIs(t, err, ErrForbidden)

	owner := model.Actor{ID: 2, Role: consts.RoleModerator}

	// 内容类型不可变更
	err = svc.UpdateContent(context.Background(), owner, 1, &dto.ContentBaseDTO{
		ContentType: consts.ContentTypeVideo, Title: "新", Body: "b",
	})
	assert.ErrorIs(t, err, ErrContentTypeInvalid)

	err = svc.UpdateContent(context.Background(), owner, 1, &dto.ContentBaseDTO{
		ContentType: consts.ContentTypeArticle, Title: "新", Body: "b",
	})
	require.NoError(t, err)
	assert.Equal(t, "新", repo.current(1).Title)
	// 字段编辑不触碰状态
	assert.Equal(t, consts.StatusDraft, repo.current(1).Status)
}

func TestDeleteContentAuth(t *testing.T) {
	repo := newFakeContentRepo(
		&model.Content{ID: 1, OwnerID: 2, Status: consts.StatusDraft, ContentVersion: 1},
	)
	svc := newTestContentService(t, repo)

	other := model.Actor{ID: 9, Role: consts.RoleModerator}
	err := svc.DeleteContent(context.Background(), other, 1)
	assert.ErrorIs(t, err, ErrForbidden)

	admin := model.Actor{ID: 1, Role: consts.RoleAdmin}
	require.NoError(t, svc.DeleteContent(context.Background(), admin, 1))
	assert.True(t, repo.current(1).IsDeleted)
}
