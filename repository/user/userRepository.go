package userrepo

import (
	"context"
	"database/sql"

	"github.com/Washington-NKE/Bookvault/model"
)

type Repo interface {
	Create(ctx context.Context, u *model.User) error
	ByEmail(ctx context.Context, email string) (*model.User, error)
	ByID(ctx context.Context, id string) (*model.User, error)
	SetStatus(ctx context.Context, id string, status model.ApprovalStatus) (bool, error)
	ListPending(ctx context.Context) ([]model.User, error)
}

type repo struct{ db *sql.DB }

func New(db *sql.DB) Repo { return &repo{db: db} }

func (r *repo) Create(ctx context.Context, u *model.User) error {
	return r.db.QueryRowContext(ctx, `
		INSERT INTO users(id, full_name, email, registration_number, password_hash, status, role)
		VALUES ($1,$2,$3,$4,$5,$6,$7)
		RETURNING created_at`,
		u.ID, u.FullName, u.Email, u.RegistrationNumber, u.PasswordHash, u.Status, u.Role,
	).Scan(&u.CreatedAt)
}

func (r *repo) ByEmail(ctx context.Context, email string) (*model.User, error) {
	u := &model.User{}
	err := r.db.QueryRowContext(ctx, `
        SELECT id, full_name, email, registration_number, password_hash, status, role, created_at
        FROM users
        WHERE lower(email) = lower($1)`,
		email,
	).Scan(&u.ID, &u.FullName, &u.Email, &u.RegistrationNumber, &u.PasswordHash, &u.Status, &u.Role, &u.CreatedAt)
	if err != nil {
		return nil, err
	}
	return u, nil
}

func (r *repo) ByID(ctx context.Context, id string) (*model.User, error) {
	u := &model.User{}
	err := r.db.QueryRowContext(ctx, `
        SELECT id, full_name, email, registration_number, password_hash, status, role, created_at
        FROM users
        WHERE id = $1`,
		id,
	).Scan(&u.ID, &u.FullName, &u.Email, &u.RegistrationNumber, &u.PasswordHash, &u.Status, &u.Role, &u.CreatedAt)
	if err != nil {
		return nil, err
	}
	return u, nil
}

// SetStatus reports whether a row was updated; writing the same status
// twice still counts as an update (idempotent admin retries).
func (r *repo) SetStatus(ctx context.Context, id string, status model.ApprovalStatus) (bool, error) {
	res, err := r.db.ExecContext(ctx, `
		UPDATE users
		SET status = $2
		WHERE id = $1`,
		id, status,
	)
	if err != nil {
		return false, err
	}
	n, _ := res.RowsAffected()
	return n > 0, nil
}

func (r *repo) ListPending(ctx context.Context) ([]model.User, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, full_name, email, registration_number, password_hash, status, role, created_at
		FROM users
		WHERE status = 'PENDING'
		ORDER BY created_at`,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.User
	for rows.Next() {
		var u model.User
		if err := rows.Scan(&u.ID, &u.FullName, &u.Email, &u.RegistrationNumber, &u.PasswordHash, &u.Status, &u.Role, &u.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, u)
	}
	return out, rows.Err()
}
