package storage

import (
	"context"
	"fmt"

	"patilog/internal/adapters/storage/memory"
	"patilog/internal/adapters/storage/postgres"
	"patilog/internal/adapters/storage/sheets"
	"patilog/internal/config"
	"patilog/internal/domain/records"
)

// NewRepository builds the record store the config asks for. Both binaries go
// through here so they always agree on what "the store" is.
func NewRepository(ctx context.Context, cfg *config.Config) (records.Repository, error) {
	switch cfg.Storage {
	case "memory", "":
		return memory.NewRecordsRepo(), nil

	case "sheets":
		return sheets.New(ctx, []byte(cfg.GCPCredentials), cfg.SpreadsheetID)

	case "postgres":
		db, err := postgres.Open(cfg.PostgresDSN)
		if err != nil {
			return nil, fmt.Errorf("storage: open postgres: %w", err)
		}
		return postgres.NewRecordsRepo(db), nil

	default:
		return nil, fmt.Errorf("storage: unknown backend %q", cfg.Storage)
	}
}
