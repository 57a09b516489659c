package infrastructure

import (
	"database/sql"
	"fmt"
	"log"
)

const (
	MigrationsSchemaMigration = "migrations.schema"
	SyncSchemaMigration       = "sync.schema"
	ChannelAccountsMigration  = "sync.channel_accounts"
)

type MigrationsSchema struct{}

func (m *MigrationsSchema) UpMigration(db *sql.DB) error {
	query := `
	CREATE SCHEMA IF NOT EXISTS migrations;
	CREATE TABLE IF NOT EXISTS migrations.migrations (
		name VARCHAR(255) PRIMARY KEY,
		time TIMESTAMP NOT NULL
	);`
	_, err := db.Exec(query)
	if err != nil {
		return fmt.Errorf("failed to create migrations registry: %w", err)
	}
	return nil
}

type SyncSchema struct{}

func (m *SyncSchema) UpMigration(db *sql.DB) error {
	if ok, err := checkAndSkipMigration(db, SyncSchemaMigration); err != nil {
		return err
	} else if ok {
		return nil
	}
	query := `
	CREATE SCHEMA IF NOT EXISTS sync;`
	if err := executeAndMarkMigration(db, query, SyncSchemaMigration); err != nil {
		return err
	}
	log.Printf("Migration '%s' completed successfully.", SyncSchemaMigration)
	return nil
}

type ChannelAccountsTable struct{}

func (m *ChannelAccountsTable) UpMigration(db *sql.DB) error {
	if ok, err := checkAndSkipMigration(db, ChannelAccountsMigration); err != nil {
		return err
	} else if ok {
		return nil
	}
	query := `
	CREATE TABLE IF NOT EXISTS sync.channel_accounts (
		id SERIAL PRIMARY KEY,
		name VARCHAR(255) NOT NULL,
		channel VARCHAR(64) NOT NULL,
		credentials JSONB NOT NULL DEFAULT '{}',
		settings JSONB NOT NULL DEFAULT '{}',
		identifiers JSONB NOT NULL DEFAULT '{}',
		active BOOLEAN NOT NULL DEFAULT TRUE,
		created_at TIMESTAMP NOT NULL DEFAULT NOW(),
		updated_at TIMESTAMP NOT NULL DEFAULT NOW(),
		UNIQUE (channel, name)
	);`
	if err := executeAndMarkMigration(db, query, ChannelAccountsMigration); err != nil {
		return err
	}
	log.Printf("Migration '%s' completed successfully.", ChannelAccountsMigration)
	return nil
}

func checkAndSkipMigration(db *sql.DB, migrationName string) (bool, error) {
	var migrationExists bool
	err := db.QueryRow("SELECT EXISTS (SELECT 1 FROM migrations.migrations WHERE name = $1)", migrationName).Scan(&migrationExists)
	if err != nil {
		return migrationExists, fmt.Errorf("failed to check migration status: %w", err)
	}
	if migrationExists {
		log.Printf("Migration '%s' already completed. Skipping.\n", migrationName)
		return migrationExists, nil
	}
	return migrationExists, nil
}

func executeAndMarkMigration(db *sql.DB, query string, migrationName string) error {
	_, err := db.Exec(query)
	if err != nil {
		return fmt.Errorf("failed to execute migration '%s': %w", migrationName, err)
	}
	_, err = db.Exec("INSERT INTO migrations.migrations (name, time) VALUES ($1, current_timestamp)", migrationName)
	if err != nil {
		return fmt.Errorf("failed to mark migration '%s' as complete: %w", migrationName, err)
	}
	return nil
}
