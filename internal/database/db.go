package database

import (
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
)

// ErrUniqueViolation surfaces a unique-index conflict without leaking
// driver error types to the repository layer.
var ErrUniqueViolation = errors.New("unique constraint violated")

// MapPostgresError translates driver-level constraint failures into
// package-level sentinels. Row misses are handled by the repositories
// themselves; everything unrecognized passes through wrapped.
func MapPostgresError(err error) error {
	if err == nil {
		return nil
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case "23505": // unique_violation
			return ErrUniqueViolation
		case "23502": // not_null_violation
			return fmt.Errorf("not-null constraint violated: %w", err)
		}
	}

	return err
}
