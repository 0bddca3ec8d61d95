package parse

import (
	"encoding/json"

	"possync_api/internal/square/business/models"
	"possync_api/internal/square/business/models/dto/response"
)

// ParseInventoryCount maps one raw inventory count to a row. The state
// defaults to the unknown sentinel; the quantity must parse to a
// finite number or the record is dropped.
func ParseInventoryCount(scope models.TenantScope, raw json.RawMessage) (*models.InventoryCountRow, string) {
	var count response.InventoryCount
	if err := json.Unmarshal(raw, &count); err != nil {
		return nil, "undecodable record"
	}
	if count.CatalogObjectID == "" {
		return nil, "missing catalog object id"
	}
	if count.LocationID == "" {
		return nil, "missing location id"
	}

	quantity, ok := parseQuantity(count.Quantity)
	if !ok {
		return nil, "unparsable quantity"
	}

	state := count.State
	if state == "" {
		state = models.InventoryStateUnknown
	}

	return &models.InventoryCountRow{
		Scope:             scope,
		CatalogObjectID:   count.CatalogObjectID,
		CatalogObjectType: count.CatalogObjectType,
		LocationID:        count.LocationID,
		State:             state,
		Quantity:          quantity,
		CalculatedAt:      parseTimestamp(count.CalculatedAt),
		Raw:               string(raw),
	}, ""
}
