package circulation

import (
	"errors"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
)

// errors used by controllers

type ErrCode string

const (
	ErrNotEligible       ErrCode = "NOT_ELIGIBLE"
	ErrOutOfStock        ErrCode = "OUT_OF_STOCK"
	ErrDuplicateLoan     ErrCode = "DUPLICATE_ACTIVE_LOAN"
	ErrNotFound          ErrCode = "NOT_FOUND"
	ErrInvalidTransition ErrCode = "INVALID_TRANSITION"
	ErrConflict          ErrCode = "CONFLICT"
)

type codedError struct{ code ErrCode }

func (e codedError) Error() string { return string(e.code) }
func (e codedError) Code() ErrCode { return e.code }
func makeErr(c ErrCode) error      { return codedError{code: c} }

// Code extracts error code
func Code(err error) ErrCode {
	var ce interface{ Code() ErrCode }
	if errors.As(err, &ce) {
		return ce.Code()
	}
	return ""
}

// mapStoreErr turns constraint and concurrency failures from postgres into
// coded business errors. A unique violation on the open-loan index means a
// concurrent request won the duplicate race; serialization failures and
// deadlocks are retryable CONFLICTs and must never pass as success.
func mapStoreErr(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgerrcode.UniqueViolation:
			return makeErr(ErrDuplicateLoan)
		case pgerrcode.SerializationFailure, pgerrcode.DeadlockDetected:
			return makeErr(ErrConflict)
		}
	}
	return err
}
