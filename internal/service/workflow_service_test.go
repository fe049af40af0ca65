package service

import (
	"GreenGrove/internal/model"
	"GreenGrove/internal/pkg/consts"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestWorkflow(t *testing.T, repo *fakeContentRepo, ledger *fakeModerationRepo) WorkflowService {
	t.Helper()
	setupTestRedis(t)
	return NewWorkflowService(repo, ledger, nil, nil)
}

func TestTransitionSubmit(t *testing.T) {
	repo := newFakeContentRepo(&model.Content{ID: 1, OwnerID: 2, Status: consts.StatusDraft, ContentVersion: 1})
	svc := newTestWorkflow(t, repo, &fakeModerationRepo{})

	moderator := model.Actor{ID: 2, Role: consts.RoleModerator}
	content, err := svc.Transition(context.Background(), moderator, 1, consts.StatusPending, "")
	require.NoError(t, err)

	assert.Equal(t, consts.StatusPending, content.Status)
	assert.Equal(t, 2, content.ContentVersion)
	require.NotNil(t, content.UpdaterID)
	assert.Equal(t, uint64(2), *content.UpdaterID)
	assert.Equal(t, consts.StatusPending, repo.current(1).Status)
}

func TestTransitionSubmitOthersForbidden(t *testing.T) {
	repo := newFakeContentRepo(&model.Content{ID: 1, OwnerID: 9, Status: consts.StatusDraft, ContentVersion: 1})
	svc := newTestWorkflow(t, repo, &fakeModerationRepo{})

	moderator := model.Actor{ID: 2, Role: consts.RoleModerator}
	_, err := svc.Transition(context.Background(), moderator, 1, consts.StatusPending, "")
	assert.ErrorIs(t, err, ErrForbidden)
	assert.Equal(t, consts.StatusDraft, repo.current(1).Status)
}

func TestTransitionApprove(t *testing.T) {
	repo := newFakeContentRepo(&model.Content{ID: 1, OwnerID: 2, ContentType: consts.ContentTypeArticle, Status: consts.StatusPending, ContentVersion: 3})
	ledger := &fakeModerationRepo{}
	svc := newTestWorkflow(t, repo, ledger)

	admin := model.Actor{ID: 1, Role: consts.RoleAdmin}
	content, err := svc.Transition(context.Background(), admin, 1, consts.StatusPublished, "")
	require.NoError(t, err)
	assert.Equal(t, consts.StatusPublished, content.Status)

	history, err := svc.History(context.Background(), 1)
	require.NoError(t, err)
	require.Len(t, history, 1)
	assert.Equal(t, consts.DecisionApprove, history[0].Decision)
	assert.Equal(t, uint64(1), history[0].DecidedBy)
	assert.Equal(t, consts.ContentTypeArticle, history[0].ContentType)
}

func TestTransitionApproveNonAdminForbidden(t *testing.T) {
	repo := newFakeContentRepo(&model.Content{ID: 1, OwnerID: 2, Status: consts.StatusPending, ContentVersion: 1})
	svc := newTestWorkflow(t, repo, &fakeModerationRepo{})

	// 审核员即便是内容的所有者也不能自批
	moderator := model.Actor{ID: 2, Role: consts.RoleModerator}
	_, err := svc.Transition(context.Background(), moderator, 1, consts.StatusPublished, "")
	assert.ErrorIs(t, err, ErrForbidden)
}

func TestTransitionRejectNeedsReason(t *testing.T) {
	repo := newFakeContentRepo(&model.Content{ID: 1, OwnerID: 2, Status: consts.StatusPending, ContentVersion: 1})
	ledger := &fakeModerationRepo{}
	svc := newTestWorkflow(t, repo, ledger)

	admin := model.Actor{ID: 1, Role: consts.RoleAdmin}
	_, err := svc.Transition(context.Background(), admin, 1, consts.StatusDraft, "   ")
	assert.ErrorIs(t, err, ErrMissingReason)
	assert.Equal(t, consts.StatusPending, repo.current(1).Status)

	content, err := svc.Transition(context.Background(), admin, 1, consts.StatusDraft, "图片不清晰")
	require.NoError(t, err)
	assert.Equal(t, consts.StatusDraft, content.Status)
	require.Len(t, ledger.decisions, 1)
	assert.Equal(t, consts.DecisionReject, ledger.decisions[0].Decision)
	assert.Equal(t, "图片不清晰", ledger.decisions[0].Reason)
}

func TestTransitionIllegalEdge(t *testing.T) {
	repo := newFakeContentRepo(&model.Content{ID: 1, OwnerID: 2, Status: consts.StatusDraft, ContentVersion: 1})
	svc := newTestWorkflow(t, repo, &fakeModerationRepo{})

	admin := model.Actor{ID: 1, Role: consts.RoleAdmin}
	_, err := svc.Transition(context.Background(), admin, 1, consts.StatusPublished, "")
	assert.ErrorIs(t, err, ErrInvalidTransition)
}

func TestTransitionRestoreAdminOnly(t *testing.T) {
	repo := newFakeContentRepo(&model.Content{ID: 1, OwnerID: 2, Status: consts.StatusArchived, ContentVersion: 1})
	svc := newTestWorkflow(t, repo, &fakeModerationRepo{})

	owner := model.Actor{ID: 2, Role: consts.RoleModerator}
	_, err := svc.Transition(context.Background(), owner, 1, consts.StatusPublished, "")
	assert.ErrorIs(t, err, ErrForbidden)

	admin := model.Actor{ID: 1, Role: consts.RoleAdmin}
	content, err := svc.Transition(context.Background(), admin, 1, consts.StatusPublished, "")
	require.NoError(t, err)
	assert.Equal(t, consts.StatusPublished, content.Status)
}

func TestTransitionArchiveOwnPublished(t *testing.T) {
	repo := newFakeContentRepo(&model.Content{ID: 1, OwnerID: 2, Status: consts.StatusPublished, ContentVersion: 5})
	svc := newTestWorkflow(t, repo, &fakeModerationRepo{})

	owner := model.Actor{ID: 2, Role: consts.RoleModerator}
	content, err := svc.Transition(context.Background(), owner, 1, consts.StatusArchived, "")
	require.NoError(t, err)
	assert.Equal(t, consts.StatusArchived, content.Status)
	assert.Equal(t, 6, content.ContentVersion)
}

func TestTransitionNotFound(t *testing.T) {
	svc := newTestWorkflow(t, newFakeContentRepo(), &fakeModerationRepo{})

	admin := model.Actor{ID: 1, Role: consts.RoleAdmin}
	_, err := svc.Transition(context.Background(), admin, 404, consts.StatusPending, "")
	assert.ErrorIs(t, err, ErrContentNotFound)
}

func TestTransitionLedgerFailureRollsBack(t *testing.T) {
	repo := newFakeContentRepo(&model.Content{ID: 1, OwnerID: 2, Status: consts.StatusPending, ContentVersion: 1})
	ledger := &fakeModerationRepo{failAppend: true}
	svc := newTestWorkflow(t, repo, ledger)

	admin := model.Actor{ID: 1, Role: consts.RoleAdmin}
	_, err := svc.Transition(context.Background(), admin, 1, consts.StatusPublished, "")
	assert.ErrorIs(t, err, ErrLedgerWrite)

	// 台账写不进去时状态必须回滚，保证两边一致
	assert.Equal(t, consts.StatusPending, repo.current(1).Status)
	assert.Empty(t, ledger.decisions)
}

func TestTransitionStoreError(t *testing.T) {
	repo := newFakeContentRepo(&model.Content{ID: 1, OwnerID: 2, Status: consts.StatusDraft, ContentVersion: 1})
	repo.failAll = true
	svc := newTestWorkflow(t, repo, &fakeModerationRepo{})

	admin := model.Actor{ID: 1, Role: consts.RoleAdmin}
	_, err := svc.Transition(context.Background(), admin, 1, consts.StatusPending, "")
	assert.ErrorIs(t, err, ErrStore)
}

func TestKindOf(t *testing.T) {
	assert.Equal(t, "InvalidTransition", KindOf(ErrInvalidTransition))
	assert.Equal(t, "MissingReason", KindOf(ErrMissingReason))
	assert.Equal(t, "ConflictError", KindOf(ErrConflict))
	assert.Equal(t, "LedgerWriteError", KindOf(ErrLedgerWrite))
	assert.Equal(t, "StoreError", KindOf(errFakeStore))
}

// conflictOnceRepo 首次写入返回版本冲突，模拟并发抢写
type conflictOnceRepo struct {
	*fakeContentRepo
	conflicted bool
}

func (r *conflictOnceRepo) UpdateStatus(ctx context.Context, id uint64, fromVersion int, status string, updaterID uint64) (bool, error) {
	if !r.conflicted {
		r.conflicted = true
		return false, nil
	}
	return r.fakeContentRepo.UpdateStatus(ctx, id, fromVersion, status, updaterID)
}

func TestTransitionRetriesOnceOnConflict(t *testing.T) {
	inner := newFakeContentRepo(&model.Content{ID: 1, OwnerID: 2, Status: consts.StatusDraft, ContentVersion: 1})
	repo := &conflictOnceRepo{fakeContentRepo: inner}
	setupTestRedis(t)
	svc := NewWorkflowService(repo, &fakeModerationRepo{}, nil, nil)

	admin := model.Actor{ID: 1, Role: consts.RoleAdmin}
	content, err := svc.Transition(context.Background(), admin, 1, consts.StatusPending, "")
	require.NoError(t, err)
	assert.Equal(t, consts.StatusPending, content.Status)
}
