package seed

import (
	"context"
	"fmt"
	"os"

	"catalog-api/internal/model"

	"github.com/rs/zerolog"
)

// fileLoader implements Loader for local gzipped seed files.
type fileLoader struct {
	logger zerolog.Logger
}

// NewFileLoader creates a new file-based seed loader.
func NewFileLoader(logger zerolog.Logger) Loader {
	return &fileLoader{
		logger: logger.With().Str("component", "seed-file-loader").Logger(),
	}
}

// Load reads a gzipped JSON-lines file from disk.
func (l *fileLoader) Load(ctx context.Context, path string) ([]model.CreateProductRequest, error) {
	l.logger.Info().Str("file", path).Msg("loading catalog seed file")

	file, err := os.Open(path)
	if err != nil {
		l.logger.Error().Err(err).Str("file", path).Msg("failed to open seed file")
		return nil, fmt.Errorf("failed to open seed file %s: %w", path, err)
	}
	defer file.Close()

	records, err := decode(ctx, file)
	if err != nil {
		l.logger.Error().Err(err).Str("file", path).Msg("failed to read seed file")
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	l.logger.Info().
		Str("file", path).
		Int("products", len(records)).
		Msg("catalog seed file loaded")

	return records, nil
}
