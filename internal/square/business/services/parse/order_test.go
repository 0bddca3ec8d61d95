package parse

import (
	"encoding/json"
	"testing"
)

func TestParseOrderLineItems(t *testing.T) {
	raw := json.RawMessage(`{
		"id": "O1",
		"location_id": "L1",
		"line_items": [
			{"uid": "li1", "catalog_object_id": "V1", "name": "Latte", "quantity": "2",
			 "base_price_money": {"amount": 500, "currency": "USD"},
			 "total_money": {"amount": 1000, "currency": "USD"}},
			{"uid": "li2", "name": "Tip", "quantity": "1",
			 "total_money": {"amount": 200, "currency": "usd"}}
		]
	}`)

	rows, dropped := ParseOrderLineItems(testScope, raw, "P1")
	if len(dropped) != 0 {
		t.Fatalf("unexpected drops: %v", dropped)
	}
	if len(rows) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(rows))
	}

	first := rows[0]
	if first.OrderID != "O1" || first.LineItemUID != "li1" || first.PaymentID != "P1" {
		t.Fatalf("unexpected identity: %+v", first)
	}
	if first.LocationID != "L1" {
		t.Fatal("line item must inherit the order's location")
	}
	if first.Quantity != 2 || *first.BasePriceAmount != 500 || *first.TotalAmount != 1000 {
		t.Fatalf("unexpected amounts: %+v", first)
	}
	if first.Currency == nil || *first.Currency != "USD" {
		t.Fatalf("expected base price currency, got %v", first.Currency)
	}

	second := rows[1]
	if second.BasePriceAmount != nil {
		t.Fatal("expected absent base price")
	}
	if second.Currency == nil || *second.Currency != "USD" {
		t.Fatalf("expected total money currency fallback, got %v", second.Currency)
	}
}

func TestParseOrderLineItemsDropsInvalidQuantities(t *testing.T) {
	raw := json.RawMessage(`{
		"id": "O1",
		"line_items": [
			{"uid": "li1", "quantity": "0", "total_money": {"amount": 1, "currency": "USD"}},
			{"uid": "li2", "quantity": "-3", "total_money": {"amount": 1, "currency": "USD"}},
			{"uid": "li3", "quantity": "many", "total_money": {"amount": 1, "currency": "USD"}},
			{"uid": "li4", "quantity": "1.5", "total_money": {"amount": 1, "currency": "USD"}}
		]
	}`)

	rows, dropped := ParseOrderLineItems(testScope, raw, "P1")
	if len(rows) != 1 || rows[0].LineItemUID != "li4" {
		t.Fatalf("expected only li4 to survive, got %+v", rows)
	}
	if len(dropped) != 3 {
		t.Fatalf("expected 3 drops, got %v", dropped)
	}
}

func TestParseOrderLineItemsPreservesItemRaw(t *testing.T) {
	raw := json.RawMessage(`{"id": "O1", "line_items": [{"uid": "li1", "quantity": "1", "custom": "kept"}]}`)
	rows, _ := ParseOrderLineItems(testScope, raw, "")
	if len(rows) != 1 {
		t.Fatalf("expected 1 row, got %d", len(rows))
	}
	var decoded map[string]interface{}
	if err := json.Unmarshal([]byte(rows[0].Raw), &decoded); err != nil {
		t.Fatalf("raw must stay valid JSON: %v", err)
	}
	if decoded["custom"] != "kept" {
		t.Fatal("line item raw payload must be preserved verbatim")
	}
}

func TestParseOrderMissingIDDropped(t *testing.T) {
	rows, dropped := ParseOrderLineItems(testScope, json.RawMessage(`{"line_items": []}`), "P1")
	if rows != nil {
		t.Fatal("expected no rows")
	}
	if len(dropped) != 1 {
		t.Fatalf("expected one drop reason, got %v", dropped)
	}
}
