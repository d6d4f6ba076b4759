package accountsvc

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/Washington-NKE/Bookvault/model"
)

type repoFake struct {
	setCalls []model.ApprovalStatus
	setOK    bool
	setErr   error
	pending  []model.User
}

func (f *repoFake) ByID(ctx context.Context, id string) (*model.User, error) { return nil, nil }

func (f *repoFake) SetStatus(ctx context.Context, id string, status model.ApprovalStatus) (bool, error) {
	f.setCalls = append(f.setCalls, status)
	return f.setOK, f.setErr
}

func (f *repoFake) ListPending(ctx context.Context) ([]model.User, error) { return f.pending, nil }

func TestCanBorrow(t *testing.T) {
	require.False(t, CanBorrow(nil))
	require.False(t, CanBorrow(&model.User{Status: model.StatusPending}))
	require.False(t, CanBorrow(&model.User{Status: model.StatusRejected}))
	require.True(t, CanBorrow(&model.User{Status: model.StatusApproved}))

	// role does not affect eligibility
	require.True(t, CanBorrow(&model.User{Status: model.StatusApproved, Role: model.RoleAdmin}))
}

func TestApproveReject(t *testing.T) {
	f := &repoFake{setOK: true}
	svc := New(f)

	require.NoError(t, svc.Approve(context.Background(), "u1"))
	require.NoError(t, svc.Reject(context.Background(), "u2"))
	require.Equal(t, []model.ApprovalStatus{model.StatusApproved, model.StatusRejected}, f.setCalls)
}

func TestApprove_NotFound(t *testing.T) {
	f := &repoFake{setOK: false}
	svc := New(f)

	err := svc.Approve(context.Background(), "missing")
	require.ErrorIs(t, err, ErrNotFound)
}

func TestApprove_RepoError(t *testing.T) {
	boom := errors.New("boom")
	f := &repoFake{setErr: boom}
	svc := New(f)

	require.ErrorIs(t, svc.Approve(context.Background(), "u1"), boom)
}

func TestPendingRegistrations(t *testing.T) {
	f := &repoFake{pending: []model.User{{ID: "u1", Status: model.StatusPending}}}
	svc := New(f)

	rows, err := svc.PendingRegistrations(context.Background())
	require.NoError(t, err)
	require.Len(t, rows, 1)
	require.Equal(t, "u1", rows[0].ID)
}
