package accountsvc

import (
	"context"
	"errors"

	"github.com/Washington-NKE/Bookvault/model"
)

var ErrNotFound = errors.New("user not found")

// CanBorrow reports whether the account may perform borrowing actions.
// Pure function over loaded account state; the approval status is the only
// input, role is orthogonal.
func CanBorrow(u *model.User) bool {
	return u != nil && u.Status == model.StatusApproved
}

type Repo interface {
	ByID(ctx context.Context, id string) (*model.User, error)
	SetStatus(ctx context.Context, id string, status model.ApprovalStatus) (bool, error)
	ListPending(ctx context.Context) ([]model.User, error)
}

type Service interface {
	// Approve marks the account APPROVED. Approving an already approved
	// account is a no-op success so retried admin actions stay safe.
	Approve(ctx context.Context, userID string) error
	Reject(ctx context.Context, userID string) error
	PendingRegistrations(ctx context.Context) ([]model.User, error)
}

type service struct{ r Repo }

func New(r Repo) Service { return &service{r} }

func (s *service) Approve(ctx context.Context, userID string) error {
	return s.setStatus(ctx, userID, model.StatusApproved)
}

func (s *service) Reject(ctx context.Context, userID string) error {
	return s.setStatus(ctx, userID, model.StatusRejected)
}

func (s *service) setStatus(ctx context.Context, userID string, status model.ApprovalStatus) error {
	ok, err := s.r.SetStatus(ctx, userID, status)
	if err != nil {
		return err
	}
	if !ok {
		return ErrNotFound
	}
	return nil
}

func (s *service) PendingRegistrations(ctx context.Context) ([]model.User, error) {
	return s.r.ListPending(ctx)
}
