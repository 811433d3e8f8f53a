package postgres

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
)

const (
	uniqueViolation     = "23505"
	foreignKeyViolation = "23503"
)

// pgErrorCode returns the SQLSTATE of err, or "" when err is not a server error.
func pgErrorCode(err error) (code, constraint string) {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code, pgErr.ConstraintName
	}
	return "", ""
}

func isUniqueViolation(err error) bool {
	code, _ := pgErrorCode(err)
	return code == uniqueViolation
}

func isForeignKeyViolation(err error) (string, bool) {
	code, constraint := pgErrorCode(err)
	return constraint, code == foreignKeyViolation
}
