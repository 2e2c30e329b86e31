package postgres

import (
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/rsimmons/yukawa/internal/domain"
)

// sqlStateErrors maps PostgreSQL SQLSTATE codes onto domain sentinels.
var sqlStateErrors = map[string]error{
	"23502": domain.ErrValidation,   // not_null_violation
	"23514": domain.ErrValidation,   // check_violation
	"22P02": domain.ErrInvalidState, // invalid_text_representation, a stored table that is not valid jsonb
}

// MapError annotates err with the entity and key it concerns, translating
// driver errors into domain sentinels where one applies. Context errors and
// unknown driver errors are wrapped unchanged.
func MapError(err error, entity, key string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s %s: %w", entity, key, classify(err))
}

func classify(err error) error {
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.ErrNotFound
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		if sentinel, ok := sqlStateErrors[pgErr.Code]; ok {
			return sentinel
		}
	}
	return err
}
