package circulation

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/Washington-NKE/Bookvault/model"
)

func TestCanTransition(t *testing.T) {
	cases := []struct {
		from, to model.BorrowStatus
		ok       bool
	}{
		{model.BorrowRequested, model.BorrowBorrowed, true},
		{model.BorrowRequested, model.BorrowRejected, true},
		{model.BorrowRequested, model.BorrowReturned, false},
		{model.BorrowBorrowed, model.BorrowReturned, true},
		{model.BorrowBorrowed, model.BorrowLateReturn, true},
		{model.BorrowBorrowed, model.BorrowRejected, false},
		{model.BorrowBorrowed, model.BorrowRequested, false},
		{model.BorrowReturned, model.BorrowBorrowed, false},
		{model.BorrowReturned, model.BorrowReturned, false},
		{model.BorrowLateReturn, model.BorrowReturned, false},
		{model.BorrowRejected, model.BorrowBorrowed, false},
	}
	for _, tc := range cases {
		require.Equal(t, tc.ok, CanTransition(tc.from, tc.to), "%s -> %s", tc.from, tc.to)
	}
}

func TestIsTerminal(t *testing.T) {
	require.False(t, IsTerminal(model.BorrowRequested))
	require.False(t, IsTerminal(model.BorrowBorrowed))
	require.True(t, IsTerminal(model.BorrowReturned))
	require.True(t, IsTerminal(model.BorrowLateReturn))
	require.True(t, IsTerminal(model.BorrowRejected))
}

func TestIsOverdue(t *testing.T) {
	now := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)
	due := now.Add(-time.Hour)

	rec := &model.BorrowRecord{Status: model.BorrowBorrowed, DueDate: &due}
	require.True(t, IsOverdue(rec, now))

	// not yet due
	future := now.Add(time.Hour)
	rec.DueDate = &future
	require.False(t, IsOverdue(rec, now))

	// exactly at due is not overdue
	rec.DueDate = &now
	require.False(t, IsOverdue(rec, now))

	// terminal records are never overdue, no matter the date
	rec.Status = model.BorrowLateReturn
	rec.DueDate = &due
	require.False(t, IsOverdue(rec, now))

	// a request without dates is never overdue
	require.False(t, IsOverdue(&model.BorrowRecord{Status: model.BorrowRequested}, now))
}

func TestDaysRemaining(t *testing.T) {
	now := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)

	require.Equal(t, 14, DaysRemaining(now.Add(14*24*time.Hour), now))
	// partial days round up
	require.Equal(t, 1, DaysRemaining(now.Add(6*time.Hour), now))
	require.Equal(t, 0, DaysRemaining(now, now))
	// overdue counts negative
	require.Equal(t, -2, DaysRemaining(now.Add(-48*time.Hour), now))
}

func TestReturnStatus(t *testing.T) {
	due := time.Date(2025, 3, 24, 12, 0, 0, 0, time.UTC)

	require.Equal(t, model.BorrowReturned, returnStatus(due, due.Add(-time.Minute)))
	require.Equal(t, model.BorrowReturned, returnStatus(due, due))
	require.Equal(t, model.BorrowLateReturn, returnStatus(due, due.Add(time.Minute)))
}
