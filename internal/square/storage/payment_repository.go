package storage

import (
	"context"
	"database/sql"
	"io"

	"possync_api/internal/square/business/models"
	"possync_api/metrics"
	"possync_api/pkg/logger"
)

type PaymentRepository struct {
	db  *sql.DB
	log logger.Logger
}

func NewPaymentRepository(db *sql.DB, writer io.Writer) *PaymentRepository {
	return &PaymentRepository{db: db, log: logger.NewLogger(writer, "[PaymentRepository]")}
}

// Upsert writes a payment batch. The conflict target deliberately
// omits provider_account_id: payment ids are globally unique per
// provider and tenant. Payment rows carry no refreshed bookkeeping
// timestamp.
func (r *PaymentRepository) Upsert(ctx context.Context, rows []models.PaymentRow) error {
	if len(rows) == 0 {
		r.log.Log("Nothing to do: empty payment batch")
		return nil
	}

	query := `
		INSERT INTO square.payments
			(tenant_id, provider, provider_account_id, payment_id, order_id, location_id, provider_created_at, provider_updated_at, amount, currency, status, customer_id, reference_id, raw)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
		ON CONFLICT (tenant_id, provider, payment_id) DO UPDATE
		SET
			provider_account_id = EXCLUDED.provider_account_id,
			order_id = EXCLUDED.order_id,
			location_id = EXCLUDED.location_id,
			provider_created_at = EXCLUDED.provider_created_at,
			provider_updated_at = EXCLUDED.provider_updated_at,
			amount = EXCLUDED.amount,
			currency = EXCLUDED.currency,
			status = EXCLUDED.status,
			customer_id = EXCLUDED.customer_id,
			reference_id = EXCLUDED.reference_id,
			raw = EXCLUDED.raw;
	`

	batch := make([][]interface{}, 0, len(rows))
	for _, row := range rows {
		batch = append(batch, []interface{}{
			row.Scope.TenantID, row.Scope.Provider, row.Scope.AccountID,
			row.PaymentID, row.OrderID, row.LocationID,
			row.ProviderCreatedAt, row.ProviderUpdatedAt,
			row.Amount, row.Currency, row.Status, row.CustomerID, row.ReferenceID, row.Raw,
		})
	}

	if err := execBatch(ctx, r.db, query, batch); err != nil {
		return err
	}
	metrics.RecordRowsUpserted("payment", len(rows))
	r.log.Log("Upserted %d payment rows", len(rows))
	return nil
}
