package storage

import (
	"context"
	"database/sql"
	"io"

	"possync_api/internal/square/business/models"
	"possync_api/metrics"
	"possync_api/pkg/logger"
)

type InventoryCountRepository struct {
	db  *sql.DB
	log logger.Logger
}

func NewInventoryCountRepository(db *sql.DB, writer io.Writer) *InventoryCountRepository {
	return &InventoryCountRepository{db: db, log: logger.NewLogger(writer, "[InventoryCountRepository]")}
}

func (r *InventoryCountRepository) Upsert(ctx context.Context, rows []models.InventoryCountRow) error {
	if len(rows) == 0 {
		r.log.Log("Nothing to do: empty inventory batch")
		return nil
	}

	query := `
		INSERT INTO square.inventory_counts
			(tenant_id, provider, provider_account_id, catalog_object_id, catalog_object_type, location_id, state, quantity, calculated_at, raw, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, CURRENT_TIMESTAMP)
		ON CONFLICT (tenant_id, provider, provider_account_id, catalog_object_id, location_id, state) DO UPDATE
		SET
			catalog_object_type = EXCLUDED.catalog_object_type,
			quantity = EXCLUDED.quantity,
			calculated_at = EXCLUDED.calculated_at,
			raw = EXCLUDED.raw,
			updated_at = CURRENT_TIMESTAMP;
	`

	batch := make([][]interface{}, 0, len(rows))
	for _, row := range rows {
		batch = append(batch, []interface{}{
			row.Scope.TenantID, row.Scope.Provider, row.Scope.AccountID,
			row.CatalogObjectID, row.CatalogObjectType, row.LocationID,
			row.State, row.Quantity, row.CalculatedAt, row.Raw,
		})
	}

	if err := execBatch(ctx, r.db, query, batch); err != nil {
		return err
	}
	metrics.RecordRowsUpserted("inventory_count", len(rows))
	r.log.Log("Upserted %d inventory count rows", len(rows))
	return nil
}
