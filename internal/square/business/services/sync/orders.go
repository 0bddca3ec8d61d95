package sync

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"time"

	"possync_api/internal/square/business/models"
	"possync_api/internal/square/business/models/dto/response"
	"possync_api/internal/square/business/services/parse"
	"possync_api/metrics"
	"possync_api/pkg/logger"
	"possync_api/pkg/uid"
)

type OrderSync struct {
	scope    models.TenantScope
	client   OrderFetcher
	repo     OrderLineItemWriter
	lookback time.Duration
	writer   io.Writer
	now      func() time.Time
}

func NewOrderSync(scope models.TenantScope, client OrderFetcher, repo OrderLineItemWriter, lookback time.Duration, writer io.Writer) *OrderSync {
	return &OrderSync{
		scope:    scope,
		client:   client,
		repo:     repo,
		lookback: lookback,
		writer:   writer,
		now:      time.Now,
	}
}

func (s *OrderSync) Name() string { return "orders" }

// Run joins orders against payments fetched fresh in the same window:
// each distinct order id referenced by a payment is fetched once, in
// the order payments were returned, and its line items are tagged with
// the first payment seen for that order.
func (s *OrderSync) Run(ctx context.Context) error {
	log := logger.NewLogger(s.writer, fmt.Sprintf("[OrderSync][run %s]", uid.Short()))

	end := s.now()
	begin := end.Add(-s.lookback)
	paymentRaws, err := s.client.ListPayments(ctx, begin, end)
	if err != nil {
		return fmt.Errorf("failed to fetch payments for order join: %w", err)
	}

	firstPayment := make(map[string]string)
	var orderIDs []string
	for _, raw := range paymentRaws {
		var payment response.Payment
		if err := json.Unmarshal(raw, &payment); err != nil {
			continue
		}
		if payment.ID == "" || payment.OrderID == "" {
			continue
		}
		if _, seen := firstPayment[payment.OrderID]; !seen {
			firstPayment[payment.OrderID] = payment.ID
			orderIDs = append(orderIDs, payment.OrderID)
		}
	}
	log.Log("Found %d distinct orders across %d payments", len(orderIDs), len(paymentRaws))

	var rows []models.OrderLineItemRow
	for _, orderID := range orderIDs {
		orderRaw, err := s.client.GetOrder(ctx, orderID)
		if err != nil {
			return fmt.Errorf("failed to fetch order %s: %w", orderID, err)
		}
		if orderRaw == nil {
			log.Log("Order %s not found, skipping", orderID)
			continue
		}

		itemRows, dropped := parse.ParseOrderLineItems(s.scope, orderRaw, firstPayment[orderID])
		for _, reason := range dropped {
			log.Log("Skipping line item: %s", reason)
			metrics.RecordDroppedRecord("order_line_item", "invalid line item")
		}
		if len(itemRows) == 0 {
			log.Log("Order %s has no line items, skipping", orderID)
			continue
		}
		rows = append(rows, itemRows...)
	}

	return s.repo.Upsert(ctx, rows)
}
