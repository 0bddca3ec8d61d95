package sync

import (
	"context"
	"fmt"
	"io"
	"time"

	"possync_api/internal/square/business/models"
	"possync_api/internal/square/business/services/parse"
	"possync_api/metrics"
	"possync_api/pkg/logger"
	"possync_api/pkg/uid"
)

type PaymentSync struct {
	scope    models.TenantScope
	client   PaymentFetcher
	repo     PaymentWriter
	lookback time.Duration
	writer   io.Writer
	now      func() time.Time
}

func NewPaymentSync(scope models.TenantScope, client PaymentFetcher, repo PaymentWriter, lookback time.Duration, writer io.Writer) *PaymentSync {
	return &PaymentSync{
		scope:    scope,
		client:   client,
		repo:     repo,
		lookback: lookback,
		writer:   writer,
		now:      time.Now,
	}
}

func (s *PaymentSync) Name() string { return "payments" }

// Run fetches payments in the [now-lookback, now) window. A payment
// missing both money fields aborts the whole batch; see ParsePayment.
func (s *PaymentSync) Run(ctx context.Context) error {
	log := logger.NewLogger(s.writer, fmt.Sprintf("[PaymentSync][run %s]", uid.Short()))

	end := s.now()
	begin := end.Add(-s.lookback)
	raws, err := s.client.ListPayments(ctx, begin, end)
	if err != nil {
		return fmt.Errorf("failed to fetch payments: %w", err)
	}
	log.Log("Fetched %d payment records in window [%s, %s)", len(raws), begin.UTC().Format(time.RFC3339), end.UTC().Format(time.RFC3339))

	rows := make([]models.PaymentRow, 0, len(raws))
	for _, raw := range raws {
		row, reason, err := parse.ParsePayment(s.scope, raw)
		if err != nil {
			return fmt.Errorf("failed to map payment: %w", err)
		}
		if row == nil {
			log.Log("Skipping payment record: %s", reason)
			metrics.RecordDroppedRecord("payment", reason)
			continue
		}
		rows = append(rows, *row)
	}

	return s.repo.Upsert(ctx, rows)
}
