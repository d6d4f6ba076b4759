package borrowrepo

import (
	"context"
	"database/sql"
	"time"

	"github.com/Washington-NKE/Bookvault/model"
)

// Tx is one circulation transaction: every ledger mutation and record
// mutation for a single operation happens through one Tx and commits
// atomically.
type Tx interface {
	// User loads the borrower inside the transaction, so the eligibility
	// gate and the ledger mutation observe one snapshot. Nil when the
	// account does not exist.
	User(ctx context.Context, userID string) (*model.User, error)

	BookExists(ctx context.Context, bookID string) (bool, error)

	// ReserveCopy decrements available_copies by one. It reports false
	// when no copy is available; the decrement and the availability check
	// are a single conditional update.
	ReserveCopy(ctx context.Context, bookID string) (bool, error)

	// ReleaseCopy increments available_copies, clamped to total_copies so
	// a double release can never create phantom stock.
	ReleaseCopy(ctx context.Context, bookID string) error

	// HasOpenLoan reports whether a REQUESTED or BORROWED record exists
	// for the (user, book) pair.
	HasOpenLoan(ctx context.Context, userID, bookID string) (bool, error)

	Insert(ctx context.Context, rec *model.BorrowRecord) error
	GetForUpdate(ctx context.Context, recordID string) (*model.BorrowRecord, error)
	Activate(ctx context.Context, recordID string, borrowDate, dueDate time.Time) error
	SetRejected(ctx context.Context, recordID string) error
	SetReturned(ctx context.Context, recordID string, status model.BorrowStatus, returnedAt time.Time) error

	Commit() error
	Rollback() error
}

type Store interface {
	Begin(ctx context.Context) (Tx, error)
	Get(ctx context.Context, recordID string) (*model.BorrowRecord, error)
}

type store struct{ db *sql.DB }

func New(db *sql.DB) Store { return &store{db: db} }

func (s *store) Begin(ctx context.Context) (Tx, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	return &sqlTx{tx: tx}, nil
}

func (s *store) Get(ctx context.Context, recordID string) (*model.BorrowRecord, error) {
	rec, err := scanRecord(s.db.QueryRowContext(ctx, `
		SELECT id, user_id, book_id, status, borrow_date, due_date, return_date, created_at
		FROM borrow_records
		WHERE id = $1`,
		recordID,
	))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	return rec, err
}

type sqlTx struct{ tx *sql.Tx }

func (t *sqlTx) Commit() error   { return t.tx.Commit() }
func (t *sqlTx) Rollback() error { return t.tx.Rollback() }

func (t *sqlTx) User(ctx context.Context, userID string) (*model.User, error) {
	u := &model.User{}
	err := t.tx.QueryRowContext(ctx, `
		SELECT id, full_name, email, registration_number, password_hash, status, role, created_at
		FROM users
		WHERE id = $1`,
		userID,
	).Scan(&u.ID, &u.FullName, &u.Email, &u.RegistrationNumber, &u.PasswordHash, &u.Status, &u.Role, &u.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return u, nil
}

func (t *sqlTx) BookExists(ctx context.Context, bookID string) (bool, error) {
	var ok bool
	err := t.tx.QueryRowContext(ctx, `
		SELECT EXISTS (SELECT 1 FROM books WHERE id = $1)`,
		bookID,
	).Scan(&ok)
	return ok, err
}

func (t *sqlTx) ReserveCopy(ctx context.Context, bookID string) (bool, error) {
	// Guard: only decrement while a copy is available.
	res, err := t.tx.ExecContext(ctx, `
		UPDATE books
		SET available_copies = available_copies - 1
		WHERE id = $1
		AND available_copies > 0`,
		bookID,
	)
	if err != nil {
		return false, err
	}
	n, _ := res.RowsAffected()
	return n > 0, nil
}

func (t *sqlTx) ReleaseCopy(ctx context.Context, bookID string) error {
	_, err := t.tx.ExecContext(ctx, `
		UPDATE books
		SET available_copies = LEAST(available_copies + 1, total_copies)
		WHERE id = $1`,
		bookID,
	)
	return err
}

func (t *sqlTx) HasOpenLoan(ctx context.Context, userID, bookID string) (bool, error) {
	var ok bool
	err := t.tx.QueryRowContext(ctx, `
		SELECT EXISTS (
			SELECT 1 FROM borrow_records
			WHERE user_id = $1
			AND book_id = $2
			AND status IN ('REQUESTED','BORROWED')
		)`,
		userID, bookID,
	).Scan(&ok)
	return ok, err
}

func (t *sqlTx) Insert(ctx context.Context, rec *model.BorrowRecord) error {
	// A partial unique index on (user_id, book_id) over open statuses
	// backs the duplicate-loan rule; its violation surfaces as a pg
	// unique_violation for the service to map.
	return t.tx.QueryRowContext(ctx, `
		INSERT INTO borrow_records (id, user_id, book_id, status, borrow_date, due_date)
		VALUES ($1,$2,$3,$4,$5,$6)
		RETURNING created_at`,
		rec.ID, rec.UserID, rec.BookID, rec.Status, rec.BorrowDate, rec.DueDate,
	).Scan(&rec.CreatedAt)
}

func (t *sqlTx) GetForUpdate(ctx context.Context, recordID string) (*model.BorrowRecord, error) {
	rec, err := scanRecord(t.tx.QueryRowContext(ctx, `
		SELECT id, user_id, book_id, status, borrow_date, due_date, return_date, created_at
		FROM borrow_records
		WHERE id = $1
		FOR UPDATE`,
		recordID,
	))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	return rec, err
}

func (t *sqlTx) Activate(ctx context.Context, recordID string, borrowDate, dueDate time.Time) error {
	_, err := t.tx.ExecContext(ctx, `
		UPDATE borrow_records
		SET status = 'BORROWED',
			borrow_date = $2,
			due_date = $3
		WHERE id = $1`,
		recordID, borrowDate, dueDate,
	)
	return err
}

func (t *sqlTx) SetRejected(ctx context.Context, recordID string) error {
	_, err := t.tx.ExecContext(ctx, `
		UPDATE borrow_records
		SET status = 'REJECTED'
		WHERE id = $1`,
		recordID,
	)
	return err
}

func (t *sqlTx) SetReturned(ctx context.Context, recordID string, status model.BorrowStatus, returnedAt time.Time) error {
	_, err := t.tx.ExecContext(ctx, `
		UPDATE borrow_records
		SET status = $2,
			return_date = $3
		WHERE id = $1`,
		recordID, status, returnedAt,
	)
	return err
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanRecord(row rowScanner) (*model.BorrowRecord, error) {
	var (
		rec        model.BorrowRecord
		borrowDate sql.NullTime
		dueDate    sql.NullTime
		returnDate sql.NullTime
	)
	if err := row.Scan(&rec.ID, &rec.UserID, &rec.BookID, &rec.Status, &borrowDate, &dueDate, &returnDate, &rec.CreatedAt); err != nil {
		return nil, err
	}
	if borrowDate.Valid {
		rec.BorrowDate = &borrowDate.Time
	}
	if dueDate.Valid {
		rec.DueDate = &dueDate.Time
	}
	if returnDate.Valid {
		rec.ReturnDate = &returnDate.Time
	}
	return &rec, nil
}
