// Package pgerr turns driver errors into storage failures.
package pgerr

import (
	"errors"

	"backoffice/internal/pkg/errs"

	"github.com/jackc/pgx/v5/pgconn"
)

const (
	codeSerializationFailure = "40001"
	codeDeadlockDetected     = "40P01"
)

// Wrap returns nil for nil, leaves domain errors alone and wraps anything
// else in a StorageFailureError. Serialization failures and deadlocks are
// marked retryable.
func Wrap(operation string, err error) error {
	if err == nil {
		return nil
	}
	if isDomainError(err) {
		return err
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case codeSerializationFailure, codeDeadlockDetected:
			return errs.NewRetryableStorageFailureError(operation, err)
		}
	}
	return errs.NewStorageFailureError(operation, err)
}

func isDomainError(err error) bool {
	for _, target := range []error{
		errs.ErrObjectNotFound,
		errs.ErrStorageFailure,
		errs.ErrValueIsInvalid,
		errs.ErrValueIsOutOfRange,
		errs.ErrValueIsRequired,
	} {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}
