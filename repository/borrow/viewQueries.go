package borrowrepo

import (
	"context"
	"database/sql"
	"time"

	"github.com/Washington-NKE/Bookvault/model"
)

// Read-only projections over borrow_records joined with books and users.
// Nothing here mutates state.

type ReceiptRow struct {
	ReceiptID          string
	IssueDate          time.Time
	DueDate            time.Time
	BookID             string
	BookTitle          string
	BookAuthor         string
	BookGenre          string
	UserID             string
	BorrowerName       string
	RegistrationNumber string
}

type BorrowedRow struct {
	RecordID   string             `json:"record_id"`
	BookID     string             `json:"book_id"`
	Title      string             `json:"title"`
	Author     string             `json:"author"`
	Genre      string             `json:"genre"`
	CoverURL   string             `json:"cover_url,omitempty"`
	Status     model.BorrowStatus `json:"status"`
	BorrowDate *time.Time         `json:"borrow_date,omitempty"`
	DueDate    *time.Time         `json:"due_date,omitempty"`
	ReturnDate *time.Time         `json:"return_date,omitempty"`
	CreatedAt  time.Time          `json:"created_at"`
}

type RequestRow struct {
	RecordID     string    `json:"record_id"`
	UserID       string    `json:"user_id"`
	BorrowerName string    `json:"borrower_name"`
	BookID       string    `json:"book_id"`
	Title        string    `json:"title"`
	Author       string    `json:"author"`
	CreatedAt    time.Time `json:"created_at"`
}

type Stats struct {
	Users                int64 `json:"users"`
	Books                int64 `json:"books"`
	ActiveLoans          int64 `json:"active_loans"`
	PendingRegistrations int64 `json:"pending_registrations"`
	PendingRequests      int64 `json:"pending_requests"`
}

type Queries interface {
	ReceiptByID(ctx context.Context, recordID string) (*ReceiptRow, error)
	ListUserBorrows(ctx context.Context, userID string) ([]BorrowedRow, error)
	ListByStatus(ctx context.Context, status model.BorrowStatus) ([]RequestRow, error)
	DashboardStats(ctx context.Context) (*Stats, error)
}

type queries struct{ db *sql.DB }

func NewQueries(db *sql.DB) Queries { return &queries{db} }

func (q *queries) ReceiptByID(ctx context.Context, recordID string) (*ReceiptRow, error) {
	const sqlq = `
			SELECT
			r.id                  AS receipt_id,
			r.borrow_date         AS issue_date,
			r.due_date            AS due_date,
			b.id                  AS book_id,
			b.title               AS book_title,
			b.author              AS book_author,
			b.genre               AS book_genre,
			u.id                  AS user_id,
			u.full_name           AS borrower_name,
			u.registration_number AS registration_number
			FROM borrow_records r
			JOIN books b ON b.id = r.book_id
			JOIN users u ON u.id = r.user_id
			WHERE r.id = $1
			AND r.borrow_date IS NOT NULL`
	var row ReceiptRow
	err := q.db.QueryRowContext(ctx, sqlq, recordID).Scan(
		&row.ReceiptID, &row.IssueDate, &row.DueDate,
		&row.BookID, &row.BookTitle, &row.BookAuthor, &row.BookGenre,
		&row.UserID, &row.BorrowerName, &row.RegistrationNumber,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &row, nil
}

func (q *queries) ListUserBorrows(ctx context.Context, userID string) ([]BorrowedRow, error) {
	const sqlq = `
			SELECT
			r.id          AS record_id,
			b.id          AS book_id,
			b.title       AS title,
			b.author      AS author,
			b.genre       AS genre,
			b.cover_url   AS cover_url,
			r.status      AS status,
			r.borrow_date AS borrow_date,
			r.due_date    AS due_date,
			r.return_date AS return_date,
			r.created_at  AS created_at
			FROM borrow_records r
			JOIN books b ON b.id = r.book_id
			WHERE r.user_id = $1
			ORDER BY r.created_at DESC, r.id DESC`
	rows, err := q.db.QueryContext(ctx, sqlq, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []BorrowedRow
	for rows.Next() {
		var (
			h          BorrowedRow
			borrowDate sql.NullTime
			dueDate    sql.NullTime
			returnDate sql.NullTime
		)
		if err := rows.Scan(
			&h.RecordID, &h.BookID, &h.Title, &h.Author, &h.Genre, &h.CoverURL,
			&h.Status, &borrowDate, &dueDate, &returnDate, &h.CreatedAt,
		); err != nil {
			return nil, err
		}
		if borrowDate.Valid {
			h.BorrowDate = &borrowDate.Time
		}
		if dueDate.Valid {
			h.DueDate = &dueDate.Time
		}
		if returnDate.Valid {
			h.ReturnDate = &returnDate.Time
		}
		out = append(out, h)
	}
	return out, rows.Err()
}

func (q *queries) ListByStatus(ctx context.Context, status model.BorrowStatus) ([]RequestRow, error) {
	const sqlq = `
			SELECT
			r.id         AS record_id,
			u.id         AS user_id,
			u.full_name  AS borrower_name,
			b.id         AS book_id,
			b.title      AS title,
			b.author     AS author,
			r.created_at AS created_at
			FROM borrow_records r
			JOIN books b ON b.id = r.book_id
			JOIN users u ON u.id = r.user_id
			WHERE r.status = $1
			ORDER BY r.created_at DESC`
	rows, err := q.db.QueryContext(ctx, sqlq, status)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []RequestRow
	for rows.Next() {
		var h RequestRow
		if err := rows.Scan(&h.RecordID, &h.UserID, &h.BorrowerName, &h.BookID, &h.Title, &h.Author, &h.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, h)
	}
	return out, rows.Err()
}

func (q *queries) DashboardStats(ctx context.Context) (*Stats, error) {
	const sqlq = `
	SELECT
		(SELECT COUNT(*) FROM users),
		(SELECT COUNT(*) FROM books),
		(SELECT COUNT(*) FROM borrow_records WHERE status = 'BORROWED'),
		(SELECT COUNT(*) FROM users WHERE status = 'PENDING'),
		(SELECT COUNT(*) FROM borrow_records WHERE status = 'REQUESTED')`
	var s Stats
	if err := q.db.QueryRowContext(ctx, sqlq).Scan(&s.Users, &s.Books, &s.ActiveLoans, &s.PendingRegistrations, &s.PendingRequests); err != nil {
		return nil, err
	}
	return &s, nil
}
