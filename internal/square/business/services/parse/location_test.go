package parse

import (
	"encoding/json"
	"testing"

	"possync_api/internal/square/business/models"
)

var testScope = models.TenantScope{TenantID: "t1", Provider: "square", AccountID: "acc1"}

func TestParseLocationJoinsAddressParts(t *testing.T) {
	raw := json.RawMessage(`{
		"id": "L1",
		"name": "Main Street Cafe",
		"address": {"address_line_1": "1 Main St", "locality": "Springfield", "postal_code": "12345"},
		"timezone": "America/Chicago",
		"status": "ACTIVE"
	}`)

	row, reason := ParseLocation(testScope, raw)
	if row == nil {
		t.Fatalf("unexpected drop: %s", reason)
	}
	if row.Address == nil || *row.Address != "1 Main St, Springfield, 12345" {
		t.Fatalf("unexpected address: %v", row.Address)
	}
	if row.Name != "Main Street Cafe" || row.Timezone != "America/Chicago" || row.Status != "ACTIVE" {
		t.Fatalf("unexpected row: %+v", row)
	}
	if row.Raw != string(raw) {
		t.Fatal("raw payload must be preserved verbatim")
	}
}

func TestParseLocationBlankAddressIsAbsent(t *testing.T) {
	for _, raw := range []string{
		`{"id": "L1"}`,
		`{"id": "L1", "address": {}}`,
		`{"id": "L1", "address": {"address_line_1": "  "}}`,
	} {
		row, reason := ParseLocation(testScope, json.RawMessage(raw))
		if row == nil {
			t.Fatalf("unexpected drop for %s: %s", raw, reason)
		}
		if row.Address != nil {
			t.Fatalf("expected absent address for %s, got %q", raw, *row.Address)
		}
	}
}

func TestParseLocationMissingIDDropped(t *testing.T) {
	row, reason := ParseLocation(testScope, json.RawMessage(`{"name": "No ID"}`))
	if row != nil {
		t.Fatal("expected record to be dropped")
	}
	if reason != "missing id" {
		t.Fatalf("unexpected reason: %s", reason)
	}
}
