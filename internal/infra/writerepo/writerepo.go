// Package writerepo holds the command-side repositories. Each repository is
// bound to the transaction handle it was created with, so a repository
// obtained from a Tx always writes inside that transaction.
package writerepo

import (
	"errors"

	"library-reserve/internal/infra"

	"github.com/jackc/pgx/v5/pgconn"
)

const (
	pgErrCodeUniqueViolation     = "23505"
	pgErrCodeForeignKeyViolation = "23503"
)

// wrapWriteErr classifies constraint violations so the usecase layer can map
// them onto its own sentinel errors.
func wrapWriteErr(msg string, err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgErrCodeUniqueViolation:
			return infra.WrapRepoErr(msg, err, infra.KindConflict)
		case pgErrCodeForeignKeyViolation:
			return infra.WrapRepoErr(msg, err, infra.KindForeignKeyViolated)
		}
	}
	return infra.WrapRepoErr(msg, err)
}
