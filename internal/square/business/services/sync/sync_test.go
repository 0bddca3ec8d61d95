package sync

import (
	"context"
	"encoding/json"
	"io"
	"testing"
	"time"

	"possync_api/internal/square/business/models"
)

var testScope = models.TenantScope{TenantID: "t1", Provider: "square", AccountID: "acc1"}

type fakeFetcher struct {
	locations  []json.RawMessage
	catalog    []json.RawMessage
	counts     []json.RawMessage
	payments   []json.RawMessage
	orders     map[string]json.RawMessage
	orderCalls []string
	begin, end time.Time
}

func (f *fakeFetcher) ListLocations(context.Context) ([]json.RawMessage, error) {
	return f.locations, nil
}

func (f *fakeFetcher) ListCatalog(_ context.Context, _ string) ([]json.RawMessage, error) {
	return f.catalog, nil
}

func (f *fakeFetcher) ListInventoryCounts(context.Context) ([]json.RawMessage, error) {
	return f.counts, nil
}

func (f *fakeFetcher) ListPayments(_ context.Context, begin, end time.Time) ([]json.RawMessage, error) {
	f.begin, f.end = begin, end
	return f.payments, nil
}

func (f *fakeFetcher) GetOrder(_ context.Context, orderID string) (json.RawMessage, error) {
	f.orderCalls = append(f.orderCalls, orderID)
	return f.orders[orderID], nil
}

type fakeWriter[T any] struct {
	batches [][]T
}

func (w *fakeWriter[T]) Upsert(_ context.Context, rows []T) error {
	w.batches = append(w.batches, rows)
	return nil
}

func TestOrderSyncFirstSeenPaymentWins(t *testing.T) {
	fetcher := &fakeFetcher{
		payments: []json.RawMessage{
			json.RawMessage(`{"id": "P1", "order_id": "O1"}`),
			json.RawMessage(`{"id": "P2", "order_id": "O1"}`),
		},
		orders: map[string]json.RawMessage{
			"O1": json.RawMessage(`{"id": "O1", "location_id": "L1", "line_items": [
				{"uid": "li1", "quantity": "1"},
				{"uid": "li2", "quantity": "2"}
			]}`),
		},
	}
	writer := &fakeWriter[models.OrderLineItemRow]{}

	s := NewOrderSync(testScope, fetcher, writer, time.Hour, io.Discard)
	if err := s.Run(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(fetcher.orderCalls) != 1 || fetcher.orderCalls[0] != "O1" {
		t.Fatalf("expected exactly one fetch of O1, got %v", fetcher.orderCalls)
	}
	if len(writer.batches) != 1 || len(writer.batches[0]) != 2 {
		t.Fatalf("expected one batch of 2 rows, got %v", writer.batches)
	}
	for _, row := range writer.batches[0] {
		if row.PaymentID != "P1" {
			t.Fatalf("expected first-seen payment P1, got %s", row.PaymentID)
		}
	}
}

func TestOrderSyncSkipsMissingAndEmptyOrders(t *testing.T) {
	fetcher := &fakeFetcher{
		payments: []json.RawMessage{
			json.RawMessage(`{"id": "P1", "order_id": "GONE"}`),
			json.RawMessage(`{"id": "P2", "order_id": "EMPTY"}`),
			json.RawMessage(`{"id": "P3"}`),
		},
		orders: map[string]json.RawMessage{
			"EMPTY": json.RawMessage(`{"id": "EMPTY", "line_items": []}`),
		},
	}
	writer := &fakeWriter[models.OrderLineItemRow]{}

	s := NewOrderSync(testScope, fetcher, writer, time.Hour, io.Discard)
	if err := s.Run(context.Background()); err != nil {
		t.Fatalf("missing and empty orders must not fail the run: %v", err)
	}
	if len(writer.batches) != 1 || len(writer.batches[0]) != 0 {
		t.Fatalf("expected one empty batch, got %v", writer.batches)
	}
}

func TestPaymentSyncWindowUsesLookback(t *testing.T) {
	fetcher := &fakeFetcher{}
	writer := &fakeWriter[models.PaymentRow]{}
	now := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)

	s := NewPaymentSync(testScope, fetcher, writer, 24*time.Hour, io.Discard)
	s.now = func() time.Time { return now }
	if err := s.Run(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !fetcher.end.Equal(now) || !fetcher.begin.Equal(now.Add(-24*time.Hour)) {
		t.Fatalf("unexpected window [%s, %s)", fetcher.begin, fetcher.end)
	}
}

func TestPaymentSyncAbortsOnMissingMoney(t *testing.T) {
	fetcher := &fakeFetcher{
		payments: []json.RawMessage{
			json.RawMessage(`{"id": "P1", "total_money": {"amount": 100, "currency": "USD"}}`),
			json.RawMessage(`{"id": "P2"}`),
		},
	}
	writer := &fakeWriter[models.PaymentRow]{}

	s := NewPaymentSync(testScope, fetcher, writer, time.Hour, io.Discard)
	if err := s.Run(context.Background()); err == nil {
		t.Fatal("a payment without money fields must abort the batch")
	}
	if len(writer.batches) != 0 {
		t.Fatal("no batch may be written when mapping aborts")
	}
}

func TestCatalogSyncResolvesParentsAcrossPageOrder(t *testing.T) {
	fetcher := &fakeFetcher{
		catalog: []json.RawMessage{
			json.RawMessage(`{"id": "V1", "type": "ITEM_VARIATION", "item_variation_data": {"item_id": "I1", "name": "Large", "sku": "SKU1"}}`),
			json.RawMessage(`{"id": "I1", "type": "ITEM", "item_data": {"name": "Latte", "category_id": "C1"}}`),
		},
	}
	writer := &fakeWriter[models.CatalogObjectRow]{}

	s := NewCatalogSync(testScope, fetcher, writer, io.Discard)
	if err := s.Run(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(writer.batches) != 1 || len(writer.batches[0]) != 2 {
		t.Fatalf("expected one batch of 2 rows, got %v", writer.batches)
	}
	variation := writer.batches[0][0]
	if variation.ItemName == nil || *variation.ItemName != "Latte" {
		t.Fatalf("variation listed before its item must still inherit the name, got %v", variation.ItemName)
	}
	if variation.CategoryID == nil || *variation.CategoryID != "C1" {
		t.Fatalf("expected inherited category C1, got %v", variation.CategoryID)
	}
}

func TestLocationSyncDropsInvalidRecords(t *testing.T) {
	fetcher := &fakeFetcher{
		locations: []json.RawMessage{
			json.RawMessage(`{"id": "L1", "name": "Kept"}`),
			json.RawMessage(`{"name": "No ID"}`),
		},
	}
	writer := &fakeWriter[models.LocationRow]{}

	s := NewLocationSync(testScope, fetcher, writer, io.Discard)
	if err := s.Run(context.Background()); err != nil {
		t.Fatalf("an invalid record must not fail the run: %v", err)
	}
	if len(writer.batches) != 1 || len(writer.batches[0]) != 1 {
		t.Fatalf("expected one batch of 1 row, got %v", writer.batches)
	}
	if writer.batches[0][0].LocationID != "L1" {
		t.Fatalf("unexpected row: %+v", writer.batches[0][0])
	}
}
