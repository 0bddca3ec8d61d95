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

type CatalogSync struct {
	scope  models.TenantScope
	client CatalogFetcher
	repo   CatalogObjectWriter
	writer io.Writer
}

func NewCatalogSync(scope models.TenantScope, client CatalogFetcher, repo CatalogObjectWriter, writer io.Writer) *CatalogSync {
	return &CatalogSync{scope: scope, client: client, repo: repo, writer: writer}
}

func (s *CatalogSync) Name() string { return "catalog" }

// Run materializes the full catalog record set, builds the parent item
// index, then maps every record. The index must be complete before
// mapping starts because variations can precede their parent item in
// the sequence.
func (s *CatalogSync) Run(ctx context.Context) error {
	log := logger.NewLogger(s.writer, fmt.Sprintf("[CatalogSync][run %s]", uid.Short()))

	raws, err := s.client.ListCatalog(ctx, "ITEM,ITEM_VARIATION")
	if err != nil {
		return fmt.Errorf("failed to fetch catalog objects: %w", err)
	}
	log.Log("Fetched %d catalog records", len(raws))

	index := parse.BuildItemIndex(raws)

	rows := make([]models.CatalogObjectRow, 0, len(raws))
	for _, raw := range raws {
		row, reason := parse.ParseCatalogObject(s.scope, raw, index)
		if row == nil {
			log.Log("Skipping catalog record: %s", reason)
			metrics.RecordDroppedRecord("catalog_object", reason)
			continue
		}
		rows = append(rows, *row)
	}

	return s.repo.Upsert(ctx, rows)
}
