package app

import (
	"context"
	"fmt"
	"io"

	"possync_api/config"
	"possync_api/internal/square/business/models"
	"possync_api/internal/square/business/services"
	syncsvc "possync_api/internal/square/business/services/sync"
	"possync_api/internal/square/pkg/clients"
	"possync_api/internal/square/storage"
	"possync_api/migrations/infrastructure"
	sqmigrations "possync_api/migrations/marketplaces/square"
	"possync_api/pkg/dbconnect"
	"possync_api/pkg/dbconnect/migration"
	"possync_api/pkg/logger"
)

type SquareServer struct {
	dbconnect.Database
	config.AppConfig
	log    logger.Logger
	writer io.Writer
}

func NewSquareServer(connector dbconnect.Database, appConfig config.AppConfig, writer io.Writer) *SquareServer {
	_log := logger.NewLogger(writer, "[SquareServer]")
	return &SquareServer{Database: connector, AppConfig: appConfig, log: _log, writer: writer}
}

// Run applies migrations and executes every entity sync once, in
// order, stopping at the first failure. Each kind commits its own
// transaction, so kinds finished before a failure keep their rows.
func (s *SquareServer) Run(ctx context.Context) error {
	db, err := s.Connect()
	if err != nil {
		return fmt.Errorf("error connecting to PostgreSQL: %w", err)
	}

	migrationApply := []migration.MigrationInterface{
		&infrastructure.MigrationsSchema{},
		&sqmigrations.CreateSquareSchema{},
		&sqmigrations.CreateLocationsTable{},
		&sqmigrations.CreateCategoriesTable{},
		&sqmigrations.CreateCatalogObjectsTable{},
		&sqmigrations.CreateInventoryCountsTable{},
		&sqmigrations.CreatePaymentsTable{},
		&sqmigrations.CreateOrderLineItemsTable{},
	}
	for _, _migration := range migrationApply {
		if err := _migration.UpMigration(db); err != nil {
			return fmt.Errorf("migration failed: %w", err)
		}
	}
	s.log.Log("Square migrations applied successfully!")

	authEngine := services.NewBearerAuth(s.Square.AccessToken, s.Square.ApiVersion)
	if authEngine == nil {
		return fmt.Errorf("square access token is not configured")
	}

	client := clients.NewSquareClient(s.Square.ApiURL, authEngine, clients.Config{
		Backoff:           s.Square.SquareValues.RateLimitBackoff(),
		RequestsPerMinute: s.Square.SquareValues.RequestsPerMinute,
		GetAttempts:       s.Square.SquareValues.OrderFetchAttempts,
		PageSize:          s.Square.SquareValues.PageSize,
	}, s.writer)

	scope := models.TenantScope{
		TenantID:  s.Tenant.TenantID,
		Provider:  s.Tenant.Provider,
		AccountID: s.Tenant.AccountID,
	}
	lookback := s.Square.SquareValues.Lookback()

	entitySyncs := []syncsvc.EntitySync{
		syncsvc.NewLocationSync(scope, client, storage.NewLocationRepository(db, s.writer), s.writer),
		syncsvc.NewCategorySync(scope, client, storage.NewCategoryRepository(db, s.writer), s.writer),
		syncsvc.NewCatalogSync(scope, client, storage.NewCatalogObjectRepository(db, s.writer), s.writer),
		syncsvc.NewInventorySync(scope, client, storage.NewInventoryCountRepository(db, s.writer), s.writer),
		syncsvc.NewPaymentSync(scope, client, storage.NewPaymentRepository(db, s.writer), lookback, s.writer),
		syncsvc.NewOrderSync(scope, client, storage.NewOrderLineItemRepository(db, s.writer), lookback, s.writer),
	}

	for _, entitySync := range entitySyncs {
		s.log.Log("Starting %s sync", entitySync.Name())
		if err := entitySync.Run(ctx); err != nil {
			return fmt.Errorf("%s sync failed: %w", entitySync.Name(), err)
		}
		s.log.Log("Finished %s sync", entitySync.Name())
	}
	return nil
}
