package postgres

import (
	"database/sql"
	"errors"

	"github.com/lib/pq"
)

// Class 23505 is the postgres unique_violation code; it is the persisted
// backstop for the one-email-per-tournament invariant.
const uniqueViolationCode = "23505"

func isNotFound(err error) bool {
	return errors.Is(err, sql.ErrNoRows)
}

func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return string(pqErr.Code) == uniqueViolationCode
	}
	return false
}
