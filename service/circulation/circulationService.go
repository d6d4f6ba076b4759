package circulation

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/Washington-NKE/Bookvault/model"
	borrowrepo "github.com/Washington-NKE/Bookvault/repository/borrow"
	notifyrepo "github.com/Washington-NKE/Bookvault/repository/notify"
	accountsvc "github.com/Washington-NKE/Bookvault/service/account"
)

// Users resolves recipient addresses for notifications. The eligibility
// gate itself reads the account through the circulation transaction.
type Users interface {
	ByID(ctx context.Context, id string) (*model.User, error)
}

type Service interface {
	// Checkout creates an active loan in one step: eligibility, stock and
	// duplicate checks plus the reservation all commit atomically.
	Checkout(ctx context.Context, userID, bookID string) (*model.BorrowRecord, error)

	// RequestBorrow creates a REQUESTED record awaiting admin review. No
	// copy is reserved until activation.
	RequestBorrow(ctx context.Context, userID, bookID string) (*model.BorrowRecord, error)

	// MarkReturned closes an active loan, releasing the copy and
	// classifying the return against the due date.
	MarkReturned(ctx context.Context, recordID string) (*model.BorrowRecord, error)

	// AdminSetStatus applies an explicit status for administrative review,
	// re-validated against the transition table.
	AdminSetStatus(ctx context.Context, recordID string, status model.BorrowStatus) (*model.BorrowRecord, error)
}

type service struct {
	store      borrowrepo.Store
	users      Users
	notifier   notifyrepo.Repo
	loanPeriod time.Duration
	log        *slog.Logger
	now        func() time.Time
}

func New(store borrowrepo.Store, users Users, notifier notifyrepo.Repo, loanPeriodDays int, log *slog.Logger) Service {
	return &service{
		store:      store,
		users:      users,
		notifier:   notifier,
		loanPeriod: time.Duration(loanPeriodDays) * 24 * time.Hour,
		log:        log,
		now:        time.Now,
	}
}

func (s *service) Checkout(ctx context.Context, userID, bookID string) (rec *model.BorrowRecord, err error) {
	tx, err := s.store.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	// Gate inside the transaction: an approval revoked concurrently cannot
	// slip a checkout through on a stale read.
	u, err := tx.User(ctx, userID)
	if err != nil {
		return nil, err
	}
	if !accountsvc.CanBorrow(u) {
		err = makeErr(ErrNotEligible)
		return nil, err
	}

	exists, err := tx.BookExists(ctx, bookID)
	if err != nil {
		return nil, err
	}
	if !exists {
		err = makeErr(ErrNotFound)
		return nil, err
	}

	ok, err := tx.ReserveCopy(ctx, bookID)
	if err != nil {
		err = mapStoreErr(err)
		return nil, err
	}
	if !ok {
		err = makeErr(ErrOutOfStock)
		return nil, err
	}

	dup, err := tx.HasOpenLoan(ctx, userID, bookID)
	if err != nil {
		return nil, err
	}
	if dup {
		err = makeErr(ErrDuplicateLoan)
		return nil, err
	}

	now := s.now().UTC()
	due := now.Add(s.loanPeriod)
	rec = &model.BorrowRecord{
		ID:         uuid.NewString(),
		UserID:     userID,
		BookID:     bookID,
		Status:     model.BorrowBorrowed,
		BorrowDate: &now,
		DueDate:    &due,
	}
	if err = tx.Insert(ctx, rec); err != nil {
		err = mapStoreErr(err)
		return nil, err
	}
	if err = tx.Commit(); err != nil {
		return nil, mapStoreErr(err)
	}

	s.notify(u.Email, "Book borrowed", fmt.Sprintf("Your loan is due on %s.", due.Format("January 2, 2006")))
	return rec, nil
}

func (s *service) RequestBorrow(ctx context.Context, userID, bookID string) (rec *model.BorrowRecord, err error) {
	tx, err := s.store.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	u, err := tx.User(ctx, userID)
	if err != nil {
		return nil, err
	}
	if !accountsvc.CanBorrow(u) {
		err = makeErr(ErrNotEligible)
		return nil, err
	}

	exists, err := tx.BookExists(ctx, bookID)
	if err != nil {
		return nil, err
	}
	if !exists {
		err = makeErr(ErrNotFound)
		return nil, err
	}

	dup, err := tx.HasOpenLoan(ctx, userID, bookID)
	if err != nil {
		return nil, err
	}
	if dup {
		err = makeErr(ErrDuplicateLoan)
		return nil, err
	}

	rec = &model.BorrowRecord{
		ID:     uuid.NewString(),
		UserID: userID,
		BookID: bookID,
		Status: model.BorrowRequested,
	}
	if err = tx.Insert(ctx, rec); err != nil {
		err = mapStoreErr(err)
		return nil, err
	}
	if err = tx.Commit(); err != nil {
		return nil, mapStoreErr(err)
	}
	return rec, nil
}

func (s *service) MarkReturned(ctx context.Context, recordID string) (rec *model.BorrowRecord, err error) {
	tx, err := s.store.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	rec, err = tx.GetForUpdate(ctx, recordID)
	if err != nil {
		return nil, err
	}
	if rec == nil {
		err = makeErr(ErrNotFound)
		return nil, err
	}
	if rec.Status != model.BorrowBorrowed {
		err = makeErr(ErrInvalidTransition)
		return nil, err
	}
	if rec.DueDate == nil {
		err = fmt.Errorf("borrow record %s is BORROWED without a due date", rec.ID)
		return nil, err
	}

	now := s.now().UTC()
	status := returnStatus(*rec.DueDate, now)

	if err = tx.ReleaseCopy(ctx, rec.BookID); err != nil {
		return nil, mapStoreErr(err)
	}
	if err = tx.SetReturned(ctx, rec.ID, status, now); err != nil {
		return nil, mapStoreErr(err)
	}
	if err = tx.Commit(); err != nil {
		return nil, mapStoreErr(err)
	}

	rec.Status = status
	rec.ReturnDate = &now
	s.notifyUser(ctx, rec.UserID, "Book returned", "Thanks for returning your book.")
	return rec, nil
}

func (s *service) AdminSetStatus(ctx context.Context, recordID string, status model.BorrowStatus) (rec *model.BorrowRecord, err error) {
	switch status {
	case model.BorrowBorrowed, model.BorrowReturned, model.BorrowLateReturn, model.BorrowRejected:
	default:
		return nil, makeErr(ErrInvalidTransition)
	}

	tx, err := s.store.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	rec, err = tx.GetForUpdate(ctx, recordID)
	if err != nil {
		return nil, err
	}
	if rec == nil {
		err = makeErr(ErrNotFound)
		return nil, err
	}
	if !CanTransition(rec.Status, status) {
		err = makeErr(ErrInvalidTransition)
		return nil, err
	}

	now := s.now().UTC()
	switch status {
	case model.BorrowBorrowed:
		// Activation is the point the ledger reserves a copy.
		var ok bool
		ok, err = tx.ReserveCopy(ctx, rec.BookID)
		if err != nil {
			err = mapStoreErr(err)
			return nil, err
		}
		if !ok {
			err = makeErr(ErrOutOfStock)
			return nil, err
		}
		due := now.Add(s.loanPeriod)
		if err = tx.Activate(ctx, rec.ID, now, due); err != nil {
			return nil, mapStoreErr(err)
		}
		rec.BorrowDate = &now
		rec.DueDate = &due
	case model.BorrowRejected:
		if err = tx.SetRejected(ctx, rec.ID); err != nil {
			return nil, mapStoreErr(err)
		}
	case model.BorrowReturned, model.BorrowLateReturn:
		if err = tx.ReleaseCopy(ctx, rec.BookID); err != nil {
			return nil, mapStoreErr(err)
		}
		if err = tx.SetReturned(ctx, rec.ID, status, now); err != nil {
			return nil, mapStoreErr(err)
		}
		rec.ReturnDate = &now
	}

	if err = tx.Commit(); err != nil {
		return nil, mapStoreErr(err)
	}
	rec.Status = status

	if status == model.BorrowBorrowed {
		s.notifyUser(ctx, rec.UserID, "Borrow request approved",
			fmt.Sprintf("Your loan is due on %s.", rec.DueDate.Format("January 2, 2006")))
	}
	return rec, nil
}

func (s *service) notifyUser(ctx context.Context, userID, subject, body string) {
	u, err := s.users.ByID(ctx, userID)
	if err != nil {
		s.log.Warn("notify: load user failed", "user_id", userID, "err", err)
		return
	}
	s.notify(u.Email, subject, body)
}

// notify is fire-and-forget: loan operations succeed regardless of mail
// delivery.
func (s *service) notify(email, subject, body string) {
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := s.notifier.Send(ctx, notifyrepo.Message{To: email, Subject: subject, Body: body}); err != nil {
			s.log.Warn("notification send failed", "to", email, "err", err)
		}
	}()
}
