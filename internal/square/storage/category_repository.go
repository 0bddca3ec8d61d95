package storage

import (
	"context"
	"database/sql"
	"io"

	"possync_api/internal/square/business/models"
	"possync_api/metrics"
	"possync_api/pkg/logger"
)

type CategoryRepository struct {
	db  *sql.DB
	log logger.Logger
}

func NewCategoryRepository(db *sql.DB, writer io.Writer) *CategoryRepository {
	return &CategoryRepository{db: db, log: logger.NewLogger(writer, "[CategoryRepository]")}
}

func (r *CategoryRepository) Upsert(ctx context.Context, rows []models.CategoryRow) error {
	if len(rows) == 0 {
		r.log.Log("Nothing to do: empty category batch")
		return nil
	}

	query := `
		INSERT INTO square.categories
			(tenant_id, provider, provider_account_id, category_id, name, is_top_level, parent_category_id, is_deleted, raw, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, CURRENT_TIMESTAMP)
		ON CONFLICT (tenant_id, provider, provider_account_id, category_id) DO UPDATE
		SET
			name = EXCLUDED.name,
			is_top_level = EXCLUDED.is_top_level,
			parent_category_id = EXCLUDED.parent_category_id,
			is_deleted = EXCLUDED.is_deleted,
			raw = EXCLUDED.raw,
			updated_at = CURRENT_TIMESTAMP;
	`

	batch := make([][]interface{}, 0, len(rows))
	for _, row := range rows {
		batch = append(batch, []interface{}{
			row.Scope.TenantID, row.Scope.Provider, row.Scope.AccountID,
			row.CategoryID, row.Name, row.IsTopLevel, row.ParentCategoryID, row.IsDeleted, row.Raw,
		})
	}

	if err := execBatch(ctx, r.db, query, batch); err != nil {
		return err
	}
	metrics.RecordRowsUpserted("category", len(rows))
	r.log.Log("Upserted %d category rows", len(rows))
	return nil
}
