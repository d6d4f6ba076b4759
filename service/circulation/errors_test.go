package circulation

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/require"
)

func TestMapStoreErr(t *testing.T) {
	cases := []struct {
		name string
		in   error
		want ErrCode
	}{
		{
			"open-loan index violation",
			&pgconn.PgError{Code: pgerrcode.UniqueViolation, ConstraintName: "borrow_records_open_loan_key"},
			ErrDuplicateLoan,
		},
		{
			"serialization failure",
			&pgconn.PgError{Code: pgerrcode.SerializationFailure},
			ErrConflict,
		},
		{
			"deadlock",
			&pgconn.PgError{Code: pgerrcode.DeadlockDetected},
			ErrConflict,
		},
		{
			"wrapped pg error",
			fmt.Errorf("insert: %w", &pgconn.PgError{Code: pgerrcode.SerializationFailure}),
			ErrConflict,
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := mapStoreErr(tc.in)
			require.Error(t, err)
			require.Equal(t, tc.want, Code(err))
		})
	}
}

func TestMapStoreErr_Passthrough(t *testing.T) {
	// non-pg errors come back unchanged and carry no code
	boom := errors.New("boom")
	require.Same(t, boom, mapStoreErr(boom))
	require.Equal(t, ErrCode(""), Code(boom))

	// pg errors outside the mapped set are not business errors either
	other := &pgconn.PgError{Code: pgerrcode.NotNullViolation}
	require.Equal(t, error(other), mapStoreErr(other))
	require.Equal(t, ErrCode(""), Code(mapStoreErr(other)))
}
