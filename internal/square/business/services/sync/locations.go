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

type LocationSync struct {
	scope  models.TenantScope
	client LocationFetcher
	repo   LocationWriter
	writer io.Writer
}

func NewLocationSync(scope models.TenantScope, client LocationFetcher, repo LocationWriter, writer io.Writer) *LocationSync {
	return &LocationSync{scope: scope, client: client, repo: repo, writer: writer}
}

func (s *LocationSync) Name() string { return "locations" }

func (s *LocationSync) Run(ctx context.Context) error {
	log := logger.NewLogger(s.writer, fmt.Sprintf("[LocationSync][run %s]", uid.Short()))

	raws, err := s.client.ListLocations(ctx)
	if err != nil {
		return fmt.Errorf("failed to fetch locations: %w", err)
	}
	log.Log("Fetched %d location records", len(raws))

	rows := make([]models.LocationRow, 0, len(raws))
	for _, raw := range raws {
		row, reason := parse.ParseLocation(s.scope, raw)
		if row == nil {
			log.Log("Skipping location record: %s", reason)
			metrics.RecordDroppedRecord("location", reason)
			continue
		}
		rows = append(rows, *row)
	}

	return s.repo.Upsert(ctx, rows)
}
