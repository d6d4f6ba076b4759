package viewsvc

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/Washington-NKE/Bookvault/model"
	borrowrepo "github.com/Washington-NKE/Bookvault/repository/borrow"
)

type queriesFake struct {
	receipt  *borrowrepo.ReceiptRow
	borrows  []borrowrepo.BorrowedRow
	requests []borrowrepo.RequestRow
	stats    *borrowrepo.Stats

	listedStatus model.BorrowStatus
}

func (f *queriesFake) ReceiptByID(ctx context.Context, recordID string) (*borrowrepo.ReceiptRow, error) {
	return f.receipt, nil
}

func (f *queriesFake) ListUserBorrows(ctx context.Context, userID string) ([]borrowrepo.BorrowedRow, error) {
	return f.borrows, nil
}

func (f *queriesFake) ListByStatus(ctx context.Context, status model.BorrowStatus) ([]borrowrepo.RequestRow, error) {
	f.listedStatus = status
	return f.requests, nil
}

func (f *queriesFake) DashboardStats(ctx context.Context) (*borrowrepo.Stats, error) {
	return f.stats, nil
}

func TestReceipt(t *testing.T) {
	issue := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)
	f := &queriesFake{receipt: &borrowrepo.ReceiptRow{
		ReceiptID:          "r1",
		IssueDate:          issue,
		DueDate:            issue.Add(14 * 24 * time.Hour),
		BookID:             "b1",
		BookTitle:          "The Go Programming Language",
		BookAuthor:         "Donovan",
		BookGenre:          "Programming",
		UserID:             "u1",
		BorrowerName:       "Alice Doe",
		RegistrationNumber: "REG-001",
	}}
	svc := New(f)

	r, err := svc.Receipt(context.Background(), "r1")
	require.NoError(t, err)
	require.Equal(t, "r1", r.ReceiptID)
	require.Equal(t, "March 10, 2025", r.IssueDate)
	require.Equal(t, "March 24, 2025", r.DueDate)
	require.Equal(t, 14, r.DurationDays)
	require.Equal(t, "Alice Doe", r.BorrowerName)
	require.Equal(t, "REG-001", r.RegistrationNumber)
}

func TestReceipt_NotFound(t *testing.T) {
	svc := New(&queriesFake{})

	_, err := svc.Receipt(context.Background(), "missing")
	require.ErrorIs(t, err, ErrNotFound)
}

func TestBorrowedBooks(t *testing.T) {
	now := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)
	soon := now.Add(3 * 24 * time.Hour)
	past := now.Add(-2 * 24 * time.Hour)
	f := &queriesFake{borrows: []borrowrepo.BorrowedRow{
		{RecordID: "r1", Status: model.BorrowBorrowed, DueDate: &soon},
		{RecordID: "r2", Status: model.BorrowBorrowed, DueDate: &past},
		{RecordID: "r3", Status: model.BorrowReturned, DueDate: &past},
		{RecordID: "r4", Status: model.BorrowRequested},
	}}
	svc := New(f).(*service)
	svc.now = func() time.Time { return now }

	out, err := svc.BorrowedBooks(context.Background(), "u1")
	require.NoError(t, err)
	require.Len(t, out, 4)

	require.NotNil(t, out[0].DaysRemaining)
	require.Equal(t, 3, *out[0].DaysRemaining)
	require.False(t, out[0].Overdue)

	require.NotNil(t, out[1].DaysRemaining)
	require.Equal(t, -2, *out[1].DaysRemaining)
	require.True(t, out[1].Overdue)

	// closed or not yet activated records carry no due-date state
	require.Nil(t, out[2].DaysRemaining)
	require.False(t, out[2].Overdue)
	require.Nil(t, out[3].DaysRemaining)
}

func TestPendingRequests(t *testing.T) {
	f := &queriesFake{requests: []borrowrepo.RequestRow{{RecordID: "r1"}}}
	svc := New(f)

	rows, err := svc.PendingRequests(context.Background())
	require.NoError(t, err)
	require.Len(t, rows, 1)
	require.Equal(t, model.BorrowRequested, f.listedStatus)
}

func TestDashboardStats(t *testing.T) {
	f := &queriesFake{stats: &borrowrepo.Stats{Users: 10, Books: 4, ActiveLoans: 2}}
	svc := New(f)

	s, err := svc.DashboardStats(context.Background())
	require.NoError(t, err)
	require.Equal(t, int64(2), s.ActiveLoans)
}
