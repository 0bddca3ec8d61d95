package clients

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"possync_api/internal/square/business/services"
)

func newTestClient(t *testing.T, handler http.Handler) (*SquareClient, *httptest.Server) {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	client := NewSquareClient(server.URL, services.NewBearerAuth("test-token", "2024-10-17"), Config{
		Backoff:     5 * time.Millisecond,
		GetAttempts: 3,
		PageSize:    2,
	}, io.Discard)
	return client, server
}

func TestListPaymentsPaginationComplete(t *testing.T) {
	pages := map[string]string{
		"":   `{"payments":[{"id":"P1"},{"id":"P2"}],"cursor":"c2"}`,
		"c2": `{"payments":[{"id":"P3"}],"cursor":"c3"}`,
		"c3": `{"payments":[{"id":"P4"}]}`,
	}
	var requests int
	var cursors []string
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests++
		if got := r.URL.Query().Get("limit"); got != "2" {
			t.Errorf("expected page size 2, got %q", got)
		}
		cursor := r.URL.Query().Get("cursor")
		cursors = append(cursors, cursor)
		body, ok := pages[cursor]
		if !ok {
			t.Errorf("unexpected cursor %q", cursor)
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		fmt.Fprint(w, body)
	}))

	records, err := client.ListPayments(context.Background(), time.Now().Add(-time.Hour), time.Now())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if requests != 3 {
		t.Fatalf("expected 3 requests, got %d", requests)
	}
	if len(records) != 4 {
		t.Fatalf("expected 4 records, got %d", len(records))
	}
	var first struct {
		ID string `json:"id"`
	}
	for i, want := range []string{"P1", "P2", "P3", "P4"} {
		if err := json.Unmarshal(records[i], &first); err != nil {
			t.Fatalf("record %d: %v", i, err)
		}
		if first.ID != want {
			t.Fatalf("record %d: expected %s, got %s", i, want, first.ID)
		}
	}
	if cursors[1] != "c2" || cursors[2] != "c3" {
		t.Fatalf("unexpected cursor sequence: %v", cursors)
	}
}

func TestListRateLimitRetriesSameCursor(t *testing.T) {
	var requests int
	var limited bool
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests++
		cursor := r.URL.Query().Get("cursor")
		switch {
		case cursor == "":
			fmt.Fprint(w, `{"locations":[{"id":"L1"}],"cursor":"c2"}`)
		case cursor == "c2" && !limited:
			limited = true
			w.WriteHeader(http.StatusTooManyRequests)
		case cursor == "c2":
			fmt.Fprint(w, `{"locations":[{"id":"L2"}]}`)
		default:
			t.Errorf("unexpected cursor %q", cursor)
			w.WriteHeader(http.StatusBadRequest)
		}
	}))

	records, err := client.ListLocations(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("expected 2 records (no loss, no duplicate), got %d", len(records))
	}
	if requests != 3 {
		t.Fatalf("expected 3 requests (one 429 retry), got %d", requests)
	}
}

func TestListFatalStatusCarriesBody(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		fmt.Fprint(w, `{"errors":[{"detail":"boom"}]}`)
	}))

	_, err := client.ListCatalog(context.Background(), "ITEM")
	if err == nil {
		t.Fatal("expected error")
	}
	if !strings.Contains(err.Error(), "500") || !strings.Contains(err.Error(), "boom") {
		t.Fatalf("error should carry status and body, got: %v", err)
	}
}

func TestListSendsAuthHeaders(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("Authorization"); got != "Bearer test-token" {
			t.Errorf("unexpected Authorization header %q", got)
		}
		if got := r.Header.Get("Square-Version"); got != "2024-10-17" {
			t.Errorf("unexpected Square-Version header %q", got)
		}
		fmt.Fprint(w, `{"counts":[]}`)
	}))

	if _, err := client.ListInventoryCounts(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestGetOrderNotFoundIsEmptyResult(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))

	raw, err := client.GetOrder(context.Background(), "missing")
	if err != nil {
		t.Fatalf("404 must not be an error, got: %v", err)
	}
	if raw != nil {
		t.Fatalf("expected empty result, got %s", raw)
	}
}

func TestGetOrderRetriesAfterRateLimit(t *testing.T) {
	var requests int
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		requests++
		if requests == 1 {
			w.WriteHeader(http.StatusTooManyRequests)
			return
		}
		fmt.Fprint(w, `{"order":{"id":"O1","line_items":[]}}`)
	}))

	raw, err := client.GetOrder(context.Background(), "O1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	var order struct {
		ID string `json:"id"`
	}
	if err := json.Unmarshal(raw, &order); err != nil || order.ID != "O1" {
		t.Fatalf("unexpected order payload %s (err %v)", raw, err)
	}
	if requests != 2 {
		t.Fatalf("expected 2 requests, got %d", requests)
	}
}

func TestGetOrderGivesUpAfterBoundedAttempts(t *testing.T) {
	var requests int
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		requests++
		w.WriteHeader(http.StatusTooManyRequests)
	}))

	_, err := client.GetOrder(context.Background(), "O1")
	if err == nil {
		t.Fatal("expected error after exhausting attempts")
	}
	if requests != 3 {
		t.Fatalf("expected exactly 3 attempts, got %d", requests)
	}
}
