package parse

import (
	"encoding/json"
	"testing"

	"possync_api/internal/square/business/models"
)

func TestParseInventoryCount(t *testing.T) {
	raw := json.RawMessage(`{
		"catalog_object_id": "V1",
		"catalog_object_type": "ITEM_VARIATION",
		"location_id": "L1",
		"state": "IN_STOCK",
		"quantity": "12.5",
		"calculated_at": "2024-06-01T10:00:00Z"
	}`)

	row, reason := ParseInventoryCount(testScope, raw)
	if row == nil {
		t.Fatalf("unexpected drop: %s", reason)
	}
	if row.Quantity != 12.5 || row.State != "IN_STOCK" {
		t.Fatalf("unexpected row: %+v", row)
	}
	if row.CalculatedAt == nil {
		t.Fatal("expected calculated_at to be parsed")
	}
}

func TestParseInventoryCountStateDefaultsToUnknown(t *testing.T) {
	raw := json.RawMessage(`{"catalog_object_id": "V1", "location_id": "L1", "quantity": "0"}`)
	row, reason := ParseInventoryCount(testScope, raw)
	if row == nil {
		t.Fatalf("unexpected drop: %s", reason)
	}
	if row.State != models.InventoryStateUnknown {
		t.Fatalf("expected unknown state sentinel, got %q", row.State)
	}
}

func TestParseInventoryCountRejectsBadQuantity(t *testing.T) {
	for _, quantity := range []string{"", "abc", "NaN", "Inf", "-Inf"} {
		raw, _ := json.Marshal(map[string]string{
			"catalog_object_id": "V1",
			"location_id":       "L1",
			"quantity":          quantity,
		})
		row, reason := ParseInventoryCount(testScope, raw)
		if row != nil {
			t.Fatalf("quantity %q should be dropped", quantity)
		}
		if reason != "unparsable quantity" {
			t.Fatalf("quantity %q: unexpected reason %s", quantity, reason)
		}
	}
}
