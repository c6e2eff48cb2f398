package repository

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

// ErrDuplicate is returned when a write hits a unique constraint. It lets
// services translate commit-time races into the same conflict response as
// their advisory pre-checks.
var ErrDuplicate = errors.New("duplicate record")

const pgUniqueViolation = "23505"

func translateErr(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return ErrDuplicate
	}
	// gorm's TranslateError covers this, but check the driver error too
	// in case the query bypassed gorm's create path
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
		return ErrDuplicate
	}
	return err
}
