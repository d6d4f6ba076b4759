package model

import "time"

type BorrowStatus string

const (
	BorrowRequested  BorrowStatus = "REQUESTED"
	BorrowBorrowed   BorrowStatus = "BORROWED"
	BorrowReturned   BorrowStatus = "RETURNED"
	BorrowLateReturn BorrowStatus = "LATE_RETURN"
	BorrowRejected   BorrowStatus = "REJECTED"
)

// BorrowRecord is one borrow transaction. BorrowDate and DueDate are nil
// until the record is activated (REQUESTED -> BORROWED); ReturnDate is set
// exactly once, when the loan reaches a returned state.
type BorrowRecord struct {
	ID         string       `json:"id"`
	UserID     string       `json:"user_id"`
	BookID     string       `json:"book_id"`
	Status     BorrowStatus `json:"status"`
	BorrowDate *time.Time   `json:"borrow_date,omitempty"`
	DueDate    *time.Time   `json:"due_date,omitempty"`
	ReturnDate *time.Time   `json:"return_date,omitempty"`
	CreatedAt  time.Time    `json:"created_at"`
}
