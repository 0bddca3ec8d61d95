package storage

import (
	"context"
	"database/sql"
	"io"

	"possync_api/internal/square/business/models"
	"possync_api/metrics"
	"possync_api/pkg/logger"
)

type OrderLineItemRepository struct {
	db  *sql.DB
	log logger.Logger
}

func NewOrderLineItemRepository(db *sql.DB, writer io.Writer) *OrderLineItemRepository {
	return &OrderLineItemRepository{db: db, log: logger.NewLogger(writer, "[OrderLineItemRepository]")}
}

// Upsert writes an order line item batch keyed by (order id, line item
// uid) within the tenant scope. Like payments, these rows carry no
// refreshed bookkeeping timestamp.
func (r *OrderLineItemRepository) Upsert(ctx context.Context, rows []models.OrderLineItemRow) error {
	if len(rows) == 0 {
		r.log.Log("Nothing to do: empty order line item batch")
		return nil
	}

	query := `
		INSERT INTO square.order_line_items
			(tenant_id, provider, provider_account_id, order_id, line_item_uid, payment_id, catalog_object_id, name, quantity, base_price_amount, total_amount, currency, location_id, raw)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
		ON CONFLICT (tenant_id, provider, provider_account_id, order_id, line_item_uid) DO UPDATE
		SET
			payment_id = EXCLUDED.payment_id,
			catalog_object_id = EXCLUDED.catalog_object_id,
			name = EXCLUDED.name,
			quantity = EXCLUDED.quantity,
			base_price_amount = EXCLUDED.base_price_amount,
			total_amount = EXCLUDED.total_amount,
			currency = EXCLUDED.currency,
			location_id = EXCLUDED.location_id,
			raw = EXCLUDED.raw;
	`

	batch := make([][]interface{}, 0, len(rows))
	for _, row := range rows {
		batch = append(batch, []interface{}{
			row.Scope.TenantID, row.Scope.Provider, row.Scope.AccountID,
			row.OrderID, row.LineItemUID, row.PaymentID, row.CatalogObjectID,
			row.Name, row.Quantity, row.BasePriceAmount, row.TotalAmount,
			row.Currency, row.LocationID, row.Raw,
		})
	}

	if err := execBatch(ctx, r.db, query, batch); err != nil {
		return err
	}
	metrics.RecordRowsUpserted("order_line_item", len(rows))
	r.log.Log("Upserted %d order line item rows", len(rows))
	return nil
}
