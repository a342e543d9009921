package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"catalog_service/internal/domain"

	"github.com/lib/pq"
	"github.com/sirupsen/logrus"
)

const (
	pqForeignKeyViolation = "23503"
	pqUniqueViolation     = "23505"
	pqCheckViolation      = "23514"
)

var readOnly = &sql.TxOptions{ReadOnly: true}

// withTx runs fn inside one transaction, committing on success and rolling back
// on error or panic.
func withTx(ctx context.Context, db *sql.DB, opts *sql.TxOptions, log *logrus.Logger, fn func(tx *sql.Tx) error) (err error) {
	tx, err := db.BeginTx(ctx, opts)
	if err != nil {
		log.Errorf("Repository: Failed to begin transaction: %v", err)
		return fmt.Errorf("could not start transaction: %w", err)
	}

	defer func() {
		if p := recover(); p != nil {
			log.Error("Repository: Recovered from panic, rolling back transaction")
			_ = tx.Rollback()
			panic(p)
		}
		if err != nil {
			if rbErr := tx.Rollback(); rbErr != nil {
				log.Errorf("Repository: Failed to rollback transaction: %v", rbErr)
			}
			return
		}
		if cErr := tx.Commit(); cErr != nil {
			log.Errorf("Repository: Failed to commit transaction: %v", cErr)
			err = fmt.Errorf("failed to commit transaction: %w", cErr)
		}
	}()

	return fn(tx)
}

func pqCode(err error) pq.ErrorCode {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr.Code
	}
	return ""
}

// classify wraps constraint failures reported by postgres into domain errors.
func classify(err error, action string) error {
	switch pqCode(err) {
	case pqForeignKeyViolation, pqUniqueViolation, pqCheckViolation:
		return fmt.Errorf("could not %s: %w: %v", action, domain.ErrIntegrityViolation, err)
	default:
		return fmt.Errorf("could not %s: %w", action, err)
	}
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// containsPattern matches s anywhere in the column, with LIKE wildcards in s
// taken literally. Use it with ESCAPE '\'.
func containsPattern(s string) string {
	return "%" + likeEscaper.Replace(s) + "%"
}

// orderClause maps an API sort property to a column. Unknown properties fall
// back to the id column; ties are always broken by id so pages stay stable.
func orderClause(req domain.PageRequest, columns map[string]string, idColumn string) string {
	column, ok := columns[req.OrderBy]
	if !ok {
		column = idColumn
	}
	dir := "ASC"
	if req.Descending() {
		dir = "DESC"
	}
	if column == idColumn {
		return fmt.Sprintf("%s %s", column, dir)
	}
	return fmt.Sprintf("%s %s, %s ASC", column, dir, idColumn)
}
