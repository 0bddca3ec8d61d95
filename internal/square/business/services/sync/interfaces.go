package sync

import (
	"context"
	"encoding/json"
	"time"

	"possync_api/internal/square/business/models"
)

// EntitySync is one entity kind's sync run. Kinds run independently;
// a run either commits its whole batch or persists nothing.
type EntitySync interface {
	Name() string
	Run(ctx context.Context) error
}

// Fetcher interfaces cover the slice of the provider client each sync
// needs, so tests can inject fixtures.

type LocationFetcher interface {
	ListLocations(ctx context.Context) ([]json.RawMessage, error)
}

type CatalogFetcher interface {
	ListCatalog(ctx context.Context, types string) ([]json.RawMessage, error)
}

type InventoryFetcher interface {
	ListInventoryCounts(ctx context.Context) ([]json.RawMessage, error)
}

type PaymentFetcher interface {
	ListPayments(ctx context.Context, begin, end time.Time) ([]json.RawMessage, error)
}

type OrderFetcher interface {
	PaymentFetcher
	GetOrder(ctx context.Context, orderID string) (json.RawMessage, error)
}

// Writer interfaces mirror the storage repositories.

type LocationWriter interface {
	Upsert(ctx context.Context, rows []models.LocationRow) error
}

type CategoryWriter interface {
	Upsert(ctx context.Context, rows []models.CategoryRow) error
}

type CatalogObjectWriter interface {
	Upsert(ctx context.Context, rows []models.CatalogObjectRow) error
}

type InventoryCountWriter interface {
	Upsert(ctx context.Context, rows []models.InventoryCountRow) error
}

type PaymentWriter interface {
	Upsert(ctx context.Context, rows []models.PaymentRow) error
}

type OrderLineItemWriter interface {
	Upsert(ctx context.Context, rows []models.OrderLineItemRow) error
}
