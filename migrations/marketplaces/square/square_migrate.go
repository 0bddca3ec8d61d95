package square

import (
	"database/sql"
	"fmt"
	"log"
)

func checkAndSkipMigration(db *sql.DB, name string) (bool, error) {
	var migrationExists bool
	err := db.QueryRow("SELECT EXISTS (SELECT 1 FROM migrations.migrations WHERE name = $1)", name).Scan(&migrationExists)
	if err != nil {
		return false, fmt.Errorf("failed to check migration status: %w", err)
	}
	if migrationExists {
		log.Printf("Migration '%s' already completed. Skipping.", name)
	}
	return migrationExists, nil
}

func executeAndMarkMigration(db *sql.DB, query string, name string) error {
	if _, err := db.Exec(query); err != nil {
		return fmt.Errorf("failed to execute migration '%s': %w", name, err)
	}
	if _, err := db.Exec("INSERT INTO migrations.migrations (name, time) VALUES ($1, current_timestamp)", name); err != nil {
		return fmt.Errorf("failed to mark '%s' migration as complete: %w", name, err)
	}
	return nil
}

type CreateSquareSchema struct{}

func (m *CreateSquareSchema) UpMigration(db *sql.DB) error {
	query := `
	CREATE SCHEMA IF NOT EXISTS square;`
	_, err := db.Exec(query)
	if err != nil {
		return fmt.Errorf("failed to create schema square: %w", err)
	}
	return nil
}

type CreateLocationsTable struct{}

func (m *CreateLocationsTable) UpMigration(db *sql.DB) error {
	if ok, err := checkAndSkipMigration(db, "square.locations"); err != nil {
		return err
	} else if ok {
		return nil
	}
	query := `
	CREATE TABLE IF NOT EXISTS square.locations (
		id SERIAL PRIMARY KEY,
		tenant_id VARCHAR(255) NOT NULL,
		provider VARCHAR(64) NOT NULL,
		provider_account_id VARCHAR(255) NOT NULL,
		location_id VARCHAR(255) NOT NULL,
		name VARCHAR(255),
		address TEXT,
		timezone VARCHAR(64),
		status VARCHAR(32),
		raw JSONB NOT NULL,
		created_at TIMESTAMP WITH TIME ZONE DEFAULT NOW(),
		updated_at TIMESTAMP WITH TIME ZONE DEFAULT NOW(),
		UNIQUE (tenant_id, provider, provider_account_id, location_id)
	);`
	if err := executeAndMarkMigration(db, query, "square.locations"); err != nil {
		return err
	}
	log.Println("Migration 'square.locations' completed successfully.")
	return nil
}

type CreateCategoriesTable struct{}

func (m *CreateCategoriesTable) UpMigration(db *sql.DB) error {
	if ok, err := checkAndSkipMigration(db, "square.categories"); err != nil {
		return err
	} else if ok {
		return nil
	}
	query := `
	CREATE TABLE IF NOT EXISTS square.categories (
		id SERIAL PRIMARY KEY,
		tenant_id VARCHAR(255) NOT NULL,
		provider VARCHAR(64) NOT NULL,
		provider_account_id VARCHAR(255) NOT NULL,
		category_id VARCHAR(255) NOT NULL,
		name VARCHAR(255) NOT NULL,
		is_top_level BOOLEAN NOT NULL DEFAULT TRUE,
		parent_category_id VARCHAR(255),
		is_deleted BOOLEAN NOT NULL DEFAULT FALSE,
		raw JSONB NOT NULL,
		created_at TIMESTAMP WITH TIME ZONE DEFAULT NOW(),
		updated_at TIMESTAMP WITH TIME ZONE DEFAULT NOW(),
		UNIQUE (tenant_id, provider, provider_account_id, category_id)
	);`
	if err := executeAndMarkMigration(db, query, "square.categories"); err != nil {
		return err
	}
	log.Println("Migration 'square.categories' completed successfully.")
	return nil
}

type CreateCatalogObjectsTable struct{}

func (m *CreateCatalogObjectsTable) UpMigration(db *sql.DB) error {
	if ok, err := checkAndSkipMigration(db, "square.catalog_objects"); err != nil {
		return err
	} else if ok {
		return nil
	}
	query := `
	CREATE TABLE IF NOT EXISTS square.catalog_objects (
		id SERIAL PRIMARY KEY,
		tenant_id VARCHAR(255) NOT NULL,
		provider VARCHAR(64) NOT NULL,
		provider_account_id VARCHAR(255) NOT NULL,
		object_id VARCHAR(255) NOT NULL,
		object_type VARCHAR(32) NOT NULL,
		item_name VARCHAR(512),
		variation_name VARCHAR(512),
		sku VARCHAR(255),
		category_id VARCHAR(255),
		is_deleted BOOLEAN NOT NULL DEFAULT FALSE,
		raw JSONB NOT NULL,
		created_at TIMESTAMP WITH TIME ZONE DEFAULT NOW(),
		updated_at TIMESTAMP WITH TIME ZONE DEFAULT NOW(),
		UNIQUE (tenant_id, provider, provider_account_id, object_id)
	);`
	if err := executeAndMarkMigration(db, query, "square.catalog_objects"); err != nil {
		return err
	}
	log.Println("Migration 'square.catalog_objects' completed successfully.")
	return nil
}

type CreateInventoryCountsTable struct{}

func (m *CreateInventoryCountsTable) UpMigration(db *sql.DB) error {
	if ok, err := checkAndSkipMigration(db, "square.inventory_counts"); err != nil {
		return err
	} else if ok {
		return nil
	}
	query := `
	CREATE TABLE IF NOT EXISTS square.inventory_counts (
		id SERIAL PRIMARY KEY,
		tenant_id VARCHAR(255) NOT NULL,
		provider VARCHAR(64) NOT NULL,
		provider_account_id VARCHAR(255) NOT NULL,
		catalog_object_id VARCHAR(255) NOT NULL,
		catalog_object_type VARCHAR(32),
		location_id VARCHAR(255) NOT NULL,
		state VARCHAR(32) NOT NULL,
		quantity DECIMAL(16, 5) NOT NULL,
		calculated_at TIMESTAMP WITH TIME ZONE,
		raw JSONB NOT NULL,
		created_at TIMESTAMP WITH TIME ZONE DEFAULT NOW(),
		updated_at TIMESTAMP WITH TIME ZONE DEFAULT NOW(),
		UNIQUE (tenant_id, provider, provider_account_id, catalog_object_id, location_id, state)
	);`
	if err := executeAndMarkMigration(db, query, "square.inventory_counts"); err != nil {
		return err
	}
	log.Println("Migration 'square.inventory_counts' completed successfully.")
	return nil
}

type CreatePaymentsTable struct{}

func (m *CreatePaymentsTable) UpMigration(db *sql.DB) error {
	if ok, err := checkAndSkipMigration(db, "square.payments"); err != nil {
		return err
	} else if ok {
		return nil
	}
	// Payment ids are globally unique per provider, so the natural key
	// deliberately omits provider_account_id.
	query := `
	CREATE TABLE IF NOT EXISTS square.payments (
		id SERIAL PRIMARY KEY,
		tenant_id VARCHAR(255) NOT NULL,
		provider VARCHAR(64) NOT NULL,
		provider_account_id VARCHAR(255) NOT NULL,
		payment_id VARCHAR(255) NOT NULL,
		order_id VARCHAR(255),
		location_id VARCHAR(255),
		provider_created_at TIMESTAMP WITH TIME ZONE,
		provider_updated_at TIMESTAMP WITH TIME ZONE,
		amount BIGINT NOT NULL,
		currency VARCHAR(8) NOT NULL,
		status VARCHAR(32),
		customer_id VARCHAR(255),
		reference_id VARCHAR(255),
		raw JSONB NOT NULL,
		created_at TIMESTAMP WITH TIME ZONE DEFAULT NOW(),
		UNIQUE (tenant_id, provider, payment_id)
	);`
	if err := executeAndMarkMigration(db, query, "square.payments"); err != nil {
		return err
	}
	log.Println("Migration 'square.payments' completed successfully.")
	return nil
}

type CreateOrderLineItemsTable struct{}

func (m *CreateOrderLineItemsTable) UpMigration(db *sql.DB) error {
	if ok, err := checkAndSkipMigration(db, "square.order_line_items"); err != nil {
		return err
	} else if ok {
		return nil
	}
	query := `
	CREATE TABLE IF NOT EXISTS square.order_line_items (
		id SERIAL PRIMARY KEY,
		tenant_id VARCHAR(255) NOT NULL,
		provider VARCHAR(64) NOT NULL,
		provider_account_id VARCHAR(255) NOT NULL,
		order_id VARCHAR(255) NOT NULL,
		line_item_uid VARCHAR(255) NOT NULL,
		payment_id VARCHAR(255),
		catalog_object_id VARCHAR(255),
		name VARCHAR(512),
		quantity DECIMAL(16, 5) NOT NULL,
		base_price_amount BIGINT,
		total_amount BIGINT,
		currency VARCHAR(8),
		location_id VARCHAR(255),
		raw JSONB NOT NULL,
		created_at TIMESTAMP WITH TIME ZONE DEFAULT NOW(),
		UNIQUE (tenant_id, provider, provider_account_id, order_id, line_item_uid)
	);`
	if err := executeAndMarkMigration(db, query, "square.order_line_items"); err != nil {
		return err
	}
	log.Println("Migration 'square.order_line_items' completed successfully.")
	return nil
}
