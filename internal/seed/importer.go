package seed

import (
	"context"
	"errors"
	"fmt"

	"catalog-api/internal/metrics"
	"catalog-api/internal/service"
	"catalog-api/internal/validation"

	"github.com/rs/zerolog"
)

// Importer creates seed products through the product service.
type Importer struct {
	loader   Loader
	products service.ProductService
	logger   zerolog.Logger
}

// NewImporter creates a new catalog importer.
func NewImporter(loader Loader, products service.ProductService, logger zerolog.Logger) *Importer {
	return &Importer{
		loader:   loader,
		products: products,
		logger:   logger.With().Str("component", "seed-importer").Logger(),
	}
}

// Run loads path and creates every valid product in it, but only when the
// catalog is empty. Invalid records are skipped. It returns the number of
// products created.
func (i *Importer) Run(ctx context.Context, path string) (int, error) {
	page, err := i.products.List(ctx, 1, "")
	if err != nil {
		return 0, fmt.Errorf("failed to inspect catalog: %w", err)
	}
	if page.TotalProducts > 0 {
		i.logger.Info().
			Int("existing_products", page.TotalProducts).
			Msg("catalog already populated, skipping seed")
		return 0, nil
	}

	records, err := i.loader.Load(ctx, path)
	if err != nil {
		return 0, fmt.Errorf("failed to load seed file: %w", err)
	}

	created, skipped := 0, 0
	for idx := range records {
		_, err := i.products.Create(ctx, &records[idx])
		if err != nil {
			var verr *validation.Error
			if errors.As(err, &verr) {
				skipped++
				i.logger.Warn().
					Int("record", idx+1).
					Str("errors", verr.Error()).
					Msg("skipping invalid seed product")
				continue
			}
			return created, fmt.Errorf("failed to create seed product %d: %w", idx+1, err)
		}
		created++
		metrics.SeededProducts.Inc()
	}

	i.logger.Info().
		Int("created", created).
		Int("skipped", skipped).
		Msg("catalog seeded")

	return created, nil
}
