package storage

import (
	"context"
	"database/sql"
	"fmt"
)

// execBatch applies one prepared upsert statement to every row of a
// batch inside a single transaction. Any row failure rolls the whole
// batch back; no partial batch is ever committed.
func execBatch(ctx context.Context, db *sql.DB, query string, rows [][]interface{}) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, query)
	if err != nil {
		return fmt.Errorf("failed to prepare statement: %w", err)
	}
	defer stmt.Close()

	for i, args := range rows {
		if _, err := stmt.ExecContext(ctx, args...); err != nil {
			return fmt.Errorf("failed to upsert row %d of %d: %w", i+1, len(rows), err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}
