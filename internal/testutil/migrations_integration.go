//go:build integration

package testutil

import (
	"context"
	"fmt"
	"log"
	"os"

	pgrepo "github.com/Gunvolt24/merch_fulfillment/internal/repo/postgres"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/pressly/goose/v3"
)

// ApplyMigrations — применяет вшитые миграции к базе из контейнера.
func ApplyMigrations(ctx context.Context, pool *pgxpool.Pool) error {
	goose.SetLogger(log.New(os.Stdout, "[goose] ", 0))
	if err := pgrepo.Migrate(ctx, pool); err != nil {
		return fmt.Errorf("apply migrations: %w", err)
	}
	return nil
}
