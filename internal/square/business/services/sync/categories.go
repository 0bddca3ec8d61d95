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

type CategorySync struct {
	scope  models.TenantScope
	client CatalogFetcher
	repo   CategoryWriter
	writer io.Writer
}

func NewCategorySync(scope models.TenantScope, client CatalogFetcher, repo CategoryWriter, writer io.Writer) *CategorySync {
	return &CategorySync{scope: scope, client: client, repo: repo, writer: writer}
}

func (s *CategorySync) Name() string { return "categories" }

func (s *CategorySync) Run(ctx context.Context) error {
	log := logger.NewLogger(s.writer, fmt.Sprintf("[CategorySync][run %s]", uid.Short()))

	raws, err := s.client.ListCatalog(ctx, "CATEGORY")
	if err != nil {
		return fmt.Errorf("failed to fetch categories: %w", err)
	}
	log.Log("Fetched %d category records", len(raws))

	rows := make([]models.CategoryRow, 0, len(raws))
	for _, raw := range raws {
		row, reason := parse.ParseCategory(s.scope, raw)
		if row == nil {
			log.Log("Skipping category record: %s", reason)
			metrics.RecordDroppedRecord("category", reason)
			continue
		}
		rows = append(rows, *row)
	}

	return s.repo.Upsert(ctx, rows)
}
