package bookrepo

import (
	"context"
	"database/sql"

	"github.com/Washington-NKE/Bookvault/model"
)

type Repo interface {
	Create(ctx context.Context, b *model.Book) error
	Update(ctx context.Context, b *model.Book) (bool, error)
	List(ctx context.Context) ([]model.Book, error)
	Detail(ctx context.Context, id string) (*model.Book, error)
}

type repo struct{ db *sql.DB }

func New(db *sql.DB) Repo { return &repo{db} }

func (r *repo) Create(ctx context.Context, b *model.Book) error {
	return r.db.QueryRowContext(ctx, `
		INSERT INTO books (id, title, author, genre, cover_url, description, total_copies, available_copies)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$7)
		RETURNING created_at`,
		b.ID, b.Title, b.Author, b.Genre, b.CoverURL, b.Description, b.TotalCopies,
	).Scan(&b.CreatedAt)
}

// Update rewrites descriptive fields and total_copies. available_copies is
// adjusted by the same delta as total_copies and clamped into
// [0, total_copies] so open loans stay accounted for.
func (r *repo) Update(ctx context.Context, b *model.Book) (bool, error) {
	res, err := r.db.ExecContext(ctx, `
		UPDATE books
		SET title = $2,
			author = $3,
			genre = $4,
			cover_url = $5,
			description = $6,
			available_copies = GREATEST(0, LEAST($7, available_copies + ($7 - total_copies))),
			total_copies = $7
		WHERE id = $1`,
		b.ID, b.Title, b.Author, b.Genre, b.CoverURL, b.Description, b.TotalCopies,
	)
	if err != nil {
		return false, err
	}
	n, _ := res.RowsAffected()
	return n > 0, nil
}

func (r *repo) List(ctx context.Context) ([]model.Book, error) {
	const q = `
	SELECT id, title, author, genre, cover_url, description, total_copies, available_copies, created_at
	FROM books
	ORDER BY created_at DESC`
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.Book
	for rows.Next() {
		var b model.Book
		if err := rows.Scan(&b.ID, &b.Title, &b.Author, &b.Genre, &b.CoverURL, &b.Description, &b.TotalCopies, &b.AvailableCopies, &b.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, b)
	}
	return out, rows.Err()
}

func (r *repo) Detail(ctx context.Context, id string) (*model.Book, error) {
	const q = `
	SELECT id, title, author, genre, cover_url, description, total_copies, available_copies, created_at
	FROM books
	WHERE id = $1`
	var b model.Book
	if err := r.db.QueryRowContext(ctx, q, id).Scan(&b.ID, &b.Title, &b.Author, &b.Genre, &b.CoverURL, &b.Description, &b.TotalCopies, &b.AvailableCopies, &b.CreatedAt); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return &b, nil
}
