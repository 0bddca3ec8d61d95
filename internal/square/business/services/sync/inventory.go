package sync

import (
	"context"
	"fmt"
	"io"

	"possync_api/internal/square/business/models"
	"possync_api/internal/square/business/services/parse"
	"possync_api/metrics"
	"possync_api/pkg/logger"
	"possync_api/pkg/uid"
)

type InventorySync struct {
	scope  models.TenantScope
	client InventoryFetcher
	repo   InventoryCountWriter
	writer io.Writer
}

func NewInventorySync(scope models.TenantScope, client InventoryFetcher, repo InventoryCountWriter, writer io.Writer) *InventorySync {
	return &InventorySync{scope: scope, client: client, repo: repo, writer: writer}
}

func (s *InventorySync) Name() string { return "inventory" }

func (s *InventorySync) Run(ctx context.Context) error {
	log := logger.NewLogger(s.writer, fmt.Sprintf("[InventorySync][run %s]", uid.Short()))

	raws, err := s.client.ListInventoryCounts(ctx)
	if err != nil {
		return fmt.Errorf("failed to fetch inventory counts: %w", err)
	}
	log.Log("Fetched %d inventory count records", len(raws))

	rows := make([]models.InventoryCountRow, 0, len(raws))
	for _, raw := range raws {
		row, reason := parse.ParseInventoryCount(s.scope, raw)
		if row == nil {
			log.Log("Skipping inventory count record: %s", reason)
			metrics.RecordDroppedRecord("inventory_count", reason)
			continue
		}
		rows = append(rows, *row)
	}

	return s.repo.Upsert(ctx, rows)
}
