package storage

import (
	"context"
	"database/sql"
	"io"

	"possync_api/internal/square/business/models"
	"possync_api/metrics"
	"possync_api/pkg/logger"
)

type LocationRepository struct {
	db  *sql.DB
	log logger.Logger
}

func NewLocationRepository(db *sql.DB, writer io.Writer) *LocationRepository {
	return &LocationRepository{db: db, log: logger.NewLogger(writer, "[LocationRepository]")}
}

func (r *LocationRepository) Upsert(ctx context.Context, rows []models.LocationRow) error {
	if len(rows) == 0 {
		r.log.Log("Nothing to do: empty location batch")
		return nil
	}

	query := `
		INSERT INTO square.locations
			(tenant_id, provider, provider_account_id, location_id, name, address, timezone, status, raw, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, CURRENT_TIMESTAMP)
		ON CONFLICT (tenant_id, provider, provider_account_id, location_id) DO UPDATE
		SET
			name = EXCLUDED.name,
			address = EXCLUDED.address,
			timezone = EXCLUDED.timezone,
			status = EXCLUDED.status,
			raw = EXCLUDED.raw,
			updated_at = CURRENT_TIMESTAMP;
	`

	batch := make([][]interface{}, 0, len(rows))
	for _, row := range rows {
		batch = append(batch, []interface{}{
			row.Scope.TenantID, row.Scope.Provider, row.Scope.AccountID,
			row.LocationID, row.Name, row.Address, row.Timezone, row.Status, row.Raw,
		})
	}

	if err := execBatch(ctx, r.db, query, batch); err != nil {
		return err
	}
	metrics.RecordRowsUpserted("location", len(rows))
	r.log.Log("Upserted %d location rows", len(rows))
	return nil
}
