package authsvc

import (
	"context"
	"testing"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/require"

	"github.com/Washington-NKE/Bookvault/model"
	"github.com/Washington-NKE/Bookvault/util/hash"
	jwtutil "github.com/Washington-NKE/Bookvault/util/jwt"
)

type userRepoFake struct {
	created   *model.User
	createErr error
	byEmail   *model.User
}

func (f *userRepoFake) Create(ctx context.Context, u *model.User) error {
	if f.createErr != nil {
		return f.createErr
	}
	f.created = u
	return nil
}

func (f *userRepoFake) ByEmail(ctx context.Context, email string) (*model.User, error) {
	if f.byEmail == nil {
		return nil, context.Canceled
	}
	return f.byEmail, nil
}

func (f *userRepoFake) ByID(ctx context.Context, id string) (*model.User, error) { return nil, nil }

func (f *userRepoFake) SetStatus(ctx context.Context, id string, status model.ApprovalStatus) (bool, error) {
	return false, nil
}

func (f *userRepoFake) ListPending(ctx context.Context) ([]model.User, error) { return nil, nil }

const secret = "test-secret"

func TestRegister(t *testing.T) {
	f := &userRepoFake{}
	svc := New(f, secret)

	u, token, err := svc.Register(context.Background(), model.RegisterReq{
		FullName:           "  Alice Doe ",
		Email:              "Alice@Example.COM",
		RegistrationNumber: "REG-001",
		Password:           "s3cret!",
	})
	require.NoError(t, err)
	require.NotEmpty(t, token)

	require.NotEmpty(t, u.ID)
	require.Equal(t, "Alice Doe", u.FullName)
	require.Equal(t, "alice@example.com", u.Email)
	require.Equal(t, model.StatusPending, u.Status)
	require.Equal(t, model.RoleUser, u.Role)

	// password is stored hashed, never in the clear
	require.NotEqual(t, "s3cret!", u.PasswordHash)
	require.True(t, hash.Check(u.PasswordHash, "s3cret!"))

	claims, err := jwtutil.ParseAuth("Bearer "+token, secret)
	require.NoError(t, err)
	require.Equal(t, u.ID, claims["sub"])
	require.Equal(t, string(model.RoleUser), claims["role"])
}

func TestRegister_BadInput(t *testing.T) {
	svc := New(&userRepoFake{}, secret)

	_, _, err := svc.Register(context.Background(), model.RegisterReq{Email: "", Password: "x"})
	require.ErrorIs(t, err, ErrBadInput)

	_, _, err = svc.Register(context.Background(), model.RegisterReq{Email: "a@b.c", Password: "   "})
	require.ErrorIs(t, err, ErrBadInput)
}

func TestRegister_Duplicates(t *testing.T) {
	cases := []struct {
		name string
		pg   *pgconn.PgError
		want error
	}{
		{
			"email",
			&pgconn.PgError{Code: pgerrcode.UniqueViolation, ConstraintName: "users_email_key"},
			ErrEmailTaken,
		},
		{
			"registration number",
			&pgconn.PgError{Code: pgerrcode.UniqueViolation, ConstraintName: "users_registration_number_key"},
			ErrRegistrationTaken,
		},
		{
			"unknown constraint",
			&pgconn.PgError{Code: pgerrcode.UniqueViolation, ConstraintName: "something_else"},
			ErrBadInput,
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			svc := New(&userRepoFake{createErr: tc.pg}, secret)
			_, _, err := svc.Register(context.Background(), model.RegisterReq{
				Email: "a@b.c", Password: "pw", FullName: "A", RegistrationNumber: "R",
			})
			require.ErrorIs(t, err, tc.want)
		})
	}
}

func TestMapDuplicateErr_NonPgError(t *testing.T) {
	require.Nil(t, mapDuplicateErr(context.Canceled))
	require.Nil(t, mapDuplicateErr(&pgconn.PgError{Code: pgerrcode.SerializationFailure}))
}

func TestLogin(t *testing.T) {
	pw, err := hash.HashPassword("open sesame")
	require.NoError(t, err)
	f := &userRepoFake{byEmail: &model.User{
		ID: "u1", Email: "alice@example.com", PasswordHash: pw,
		Status: model.StatusApproved, Role: model.RoleUser,
	}}
	svc := New(f, secret)

	u, token, err := svc.Login(context.Background(), model.LoginReq{Email: "alice@example.com", Password: "open sesame"})
	require.NoError(t, err)
	require.Equal(t, "u1", u.ID)
	require.NotEmpty(t, token)

	_, _, err = svc.Login(context.Background(), model.LoginReq{Email: "alice@example.com", Password: "wrong"})
	require.ErrorIs(t, err, ErrInvalidCreds)
}

func TestLogin_UnknownEmail(t *testing.T) {
	svc := New(&userRepoFake{}, secret)

	_, _, err := svc.Login(context.Background(), model.LoginReq{Email: "nobody@example.com", Password: "pw"})
	require.ErrorIs(t, err, ErrInvalidCreds)
}
