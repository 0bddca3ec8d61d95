package storage

import (
	"context"
	"database/sql"
	"io"

	"possync_api/internal/square/business/models"
	"possync_api/metrics"
	"possync_api/pkg/logger"
)

type CatalogObjectRepository struct {
	db  *sql.DB
	log logger.Logger
}

func NewCatalogObjectRepository(db *sql.DB, writer io.Writer) *CatalogObjectRepository {
	return &CatalogObjectRepository{db: db, log: logger.NewLogger(writer, "[CatalogObjectRepository]")}
}

func (r *CatalogObjectRepository) Upsert(ctx context.Context, rows []models.CatalogObjectRow) error {
	if len(rows) == 0 {
		r.log.Log("Nothing to do: empty catalog batch")
		return nil
	}

	query := `
		INSERT INTO square.catalog_objects
			(tenant_id, provider, provider_account_id, object_id, object_type, item_name, variation_name, sku, category_id, is_deleted, raw, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, CURRENT_TIMESTAMP)
		ON CONFLICT (tenant_id, provider, provider_account_id, object_id) DO UPDATE
		SET
			object_type = EXCLUDED.object_type,
			item_name = EXCLUDED.item_name,
			variation_name = EXCLUDED.variation_name,
			sku = EXCLUDED.sku,
			category_id = EXCLUDED.category_id,
			is_deleted = EXCLUDED.is_deleted,
			raw = EXCLUDED.raw,
			updated_at = CURRENT_TIMESTAMP;
	`

	batch := make([][]interface{}, 0, len(rows))
	for _, row := range rows {
		batch = append(batch, []interface{}{
			row.Scope.TenantID, row.Scope.Provider, row.Scope.AccountID,
			row.ObjectID, row.ObjectType, row.ItemName, row.VariationName,
			row.SKU, row.CategoryID, row.IsDeleted, row.Raw,
		})
	}

	if err := execBatch(ctx, r.db, query, batch); err != nil {
		return err
	}
	metrics.RecordRowsUpserted("catalog_object", len(rows))
	r.log.Log("Upserted %d catalog object rows", len(rows))
	return nil
}
