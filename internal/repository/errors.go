package repository

import (
	"errors"
	"fmt"

	"dispatch/internal/entities"
	"github.com/jackc/pgx/v5/pgconn"
)

// https://www.postgresql.org/docs/current/errcodes-appendix.html
const (
	PgErrUniqueViolation     = "23505"
	PgErrForeignKeyViolation = "23503"
	PgErrCheckViolation      = "23514"
	PgErrSerializationFailed = "40001"
	PgErrDeadlockDetected    = "40P01"
)

func IsPgErrorWithCode(err error, code string) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == code
	}
	return false
}

// IsRetryableConflict конфликт параллельных транзакций: операцию можно повторить целиком.
func IsRetryableConflict(err error) bool {
	return IsPgErrorWithCode(err, PgErrSerializationFailed) || IsPgErrorWithCode(err, PgErrDeadlockDetected)
}

// WrapConflict помечает конфликт транзакций как ErrConcurrentModification,
// остальные ошибки возвращает как есть.
func WrapConflict(err error) error {
	if IsRetryableConflict(err) {
		return fmt.Errorf("%w: %w", entities.ErrConcurrentModification, err)
	}
	return err
}
