package viewsvc

import (
	"context"
	"errors"
	"time"

	"github.com/Washington-NKE/Bookvault/model"
	borrowrepo "github.com/Washington-NKE/Bookvault/repository/borrow"
	"github.com/Washington-NKE/Bookvault/service/circulation"
)

var ErrNotFound = errors.New("receipt not found")

// Receipt is the printable payload for one activated loan.
type Receipt struct {
	ReceiptID          string `json:"receipt_id"`
	IssueDate          string `json:"issue_date"`
	DueDate            string `json:"due_date"`
	DurationDays       int    `json:"duration_days"`
	BookID             string `json:"book_id"`
	BookTitle          string `json:"book_title"`
	BookAuthor         string `json:"book_author"`
	BookGenre          string `json:"book_genre"`
	UserID             string `json:"user_id"`
	BorrowerName       string `json:"borrower_name"`
	RegistrationNumber string `json:"registration_number"`
}

// BorrowedBook is one row of a user's borrow history annotated with the
// lazily computed due-date state.
type BorrowedBook struct {
	borrowrepo.BorrowedRow
	DaysRemaining *int `json:"days_remaining,omitempty"`
	Overdue       bool `json:"overdue"`
}

type Service interface {
	Receipt(ctx context.Context, recordID string) (*Receipt, error)
	BorrowedBooks(ctx context.Context, userID string) ([]BorrowedBook, error)
	PendingRequests(ctx context.Context) ([]borrowrepo.RequestRow, error)
	DashboardStats(ctx context.Context) (*borrowrepo.Stats, error)
}

type service struct {
	q   borrowrepo.Queries
	now func() time.Time
}

func New(q borrowrepo.Queries) Service { return &service{q: q, now: time.Now} }

func (s *service) Receipt(ctx context.Context, recordID string) (*Receipt, error) {
	row, err := s.q.ReceiptByID(ctx, recordID)
	if err != nil {
		return nil, err
	}
	if row == nil {
		return nil, ErrNotFound
	}
	return &Receipt{
		ReceiptID:          row.ReceiptID,
		IssueDate:          formatDate(row.IssueDate),
		DueDate:            formatDate(row.DueDate),
		DurationDays:       circulation.DaysRemaining(row.DueDate, row.IssueDate),
		BookID:             row.BookID,
		BookTitle:          row.BookTitle,
		BookAuthor:         row.BookAuthor,
		BookGenre:          row.BookGenre,
		UserID:             row.UserID,
		BorrowerName:       row.BorrowerName,
		RegistrationNumber: row.RegistrationNumber,
	}, nil
}

func (s *service) BorrowedBooks(ctx context.Context, userID string) ([]BorrowedBook, error) {
	rows, err := s.q.ListUserBorrows(ctx, userID)
	if err != nil {
		return nil, err
	}

	now := s.now().UTC()
	out := make([]BorrowedBook, 0, len(rows))
	for _, row := range rows {
		b := BorrowedBook{BorrowedRow: row}
		if row.Status == model.BorrowBorrowed && row.DueDate != nil {
			d := circulation.DaysRemaining(*row.DueDate, now)
			b.DaysRemaining = &d
			b.Overdue = now.After(*row.DueDate)
		}
		out = append(out, b)
	}
	return out, nil
}

func (s *service) PendingRequests(ctx context.Context) ([]borrowrepo.RequestRow, error) {
	return s.q.ListByStatus(ctx, model.BorrowRequested)
}

func (s *service) DashboardStats(ctx context.Context) (*borrowrepo.Stats, error) {
	return s.q.DashboardStats(ctx)
}

func formatDate(t time.Time) string {
	return t.Format("January 2, 2006")
}
