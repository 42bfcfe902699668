// Package sqlxrepos implements the enrollment, submission, meeting, assignment and ambassador repositories on Postgres with sqlx.
package sqlxrepos

import (
	"context"
	"database/sql"
	"strings"

	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"

	"github.com/MDharunPrasad/giglabs-intern-venture/core"
)

const driverName = "postgres"

// withTx runs fn in a transaction, committing when it returns nil.
func withTx(ctx context.Context, db *sqlx.DB, fn func(tx *sqlx.Tx) error) error {
	tx, err := db.BeginTxx(ctx, nil)
	if err != nil {
		return core.NewPersistenceError(errors.WithStack(err), "beginning transaction")
	}
	if err = fn(tx); err != nil {
		_ = tx.Rollback()
		return err
	}
	if err = tx.Commit(); err != nil {
		return core.NewPersistenceError(errors.WithStack(err), "committing transaction")
	}
	return nil
}

func persistenceErr(err error, op string) error {
	return core.NewPersistenceError(errors.WithStack(err), op)
}

// orderBy renders an ORDER BY clause from the orderings whose field is a key of columns, or fallback.
func orderBy(ordering []core.DBOrdering, columns map[string]string, fallback string) string {
	mapped := core.MapOrderings(ordering, columns)
	if len(mapped) == 0 {
		return " ORDER BY " + fallback
	}
	orderList := make([]string, 0, len(mapped))
	for _, ord := range mapped {
		orderList = append(orderList, ord.String())
	}
	return " ORDER BY " + strings.Join(orderList, ", ")
}

// where joins conditions with AND.
func where(conds []string) string {
	if len(conds) == 0 {
		return ""
	}
	return " WHERE " + strings.Join(conds, " AND ")
}

func isNoRows(err error) bool {
	return errors.Cause(err) == sql.ErrNoRows
}
