package circulation

import (
	"math"
	"time"

	"github.com/Washington-NKE/Bookvault/model"
)

// transitions is the full lifecycle of a borrow record. RETURNED,
// LATE_RETURN and REJECTED are terminal.
var transitions = map[model.BorrowStatus][]model.BorrowStatus{
	model.BorrowRequested: {model.BorrowBorrowed, model.BorrowRejected},
	model.BorrowBorrowed:  {model.BorrowReturned, model.BorrowLateReturn},
}

func CanTransition(from, to model.BorrowStatus) bool {
	for _, next := range transitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

func IsTerminal(s model.BorrowStatus) bool {
	return len(transitions[s]) == 0
}

// IsOverdue is computed on read; nothing persists overdue-ness while the
// loan is open.
func IsOverdue(rec *model.BorrowRecord, now time.Time) bool {
	return rec.Status == model.BorrowBorrowed && rec.DueDate != nil && now.After(*rec.DueDate)
}

// DaysRemaining counts whole days until due, rounding up. Negative values
// are days overdue.
func DaysRemaining(due, now time.Time) int {
	return int(math.Ceil(due.Sub(now).Hours() / 24))
}

// returnStatus classifies a return against the due date: strictly after
// due is a late return.
func returnStatus(due, now time.Time) model.BorrowStatus {
	if now.After(due) {
		return model.BorrowLateReturn
	}
	return model.BorrowReturned
}
