package database

import (
	"context"
	_ "embed"
	"fmt"

	"github.com/rs/zerolog"
)

//go:embed schema.sql
var schema string

// Migrate creates the catalog tables and indexes when they do not exist yet.
func Migrate(ctx context.Context, db DBTX, logger zerolog.Logger) error {
	if _, err := db.Exec(ctx, schema); err != nil {
		return fmt.Errorf("failed to apply schema: %w", err)
	}
	logger.Info().Msg("database schema is up to date")
	return nil
}
