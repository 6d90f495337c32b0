package database

import (
	"errors"
	"fmt"
	"net"

	"github.com/jackc/pgx/v5/pgconn"
)

var (
	// ErrTransactionFailed marks an atomic batch that was rolled back.
	ErrTransactionFailed = errors.New("transaction failed")
	// ErrUnavailable marks a store that could not be reached.
	ErrUnavailable = errors.New("persistence store unavailable")
	// ErrConflict marks a duplicate unique key.
	ErrConflict = errors.New("duplicate key")
)

const uniqueViolation = "23505"

// IsUniqueViolation reports whether err is a PostgreSQL unique constraint violation.
func IsUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolation
}

// IsConnectionError reports whether err came from failing to reach the server.
func IsConnectionError(err error) bool {
	var connErr *pgconn.ConnectError
	if errors.As(err, &connErr) {
		return true
	}
	var netErr net.Error
	return errors.As(err, &netErr)
}

// WrapUnavailable tags connection failures with ErrUnavailable and returns other errors unchanged.
func WrapUnavailable(err error) error {
	if err == nil || !IsConnectionError(err) {
		return err
	}
	return fmt.Errorf("%w: %v", ErrUnavailable, err)
}

// TransactionFailed wraps err with ErrTransactionFailed unless it already carries it.
func TransactionFailed(err error) error {
	if err == nil || errors.Is(err, ErrTransactionFailed) {
		return err
	}
	return fmt.Errorf("%w: %w", ErrTransactionFailed, err)
}
