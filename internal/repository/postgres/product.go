package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"catalog-api/internal/database"
	"catalog-api/internal/model"
	"catalog-api/internal/repository"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/rs/zerolog"
)

const productColumns = `id, name, description, category, price, image, date_added, average_rating, created_at, updated_at`

// productRepository implements the ProductRepository interface using PostgreSQL.
type productRepository struct {
	db     database.DBTX
	logger zerolog.Logger
}

// NewProductRepository creates a new PostgreSQL-backed product repository.
func NewProductRepository(db database.DBTX, logger zerolog.Logger) repository.ProductRepository {
	return &productRepository{
		db:     db,
		logger: logger.With().Str("repository", "product").Logger(),
	}
}

// List retrieves one page of products matching the filter, newest first.
func (r *productRepository) List(ctx context.Context, filter model.ProductFilter, limit, offset int) ([]model.Product, error) {
	where, args := productWhere(filter)
	query := fmt.Sprintf(`
		SELECT %s
		FROM products%s
		ORDER BY date_added DESC, id
		LIMIT $%d OFFSET $%d
	`, productColumns, where, len(args)+1, len(args)+2)
	args = append(args, limit, offset)

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		r.logger.Error().Err(err).
			Str("category", filter.Category).
			Int("limit", limit).
			Int("offset", offset).
			Msg("failed to query products")
		return nil, fmt.Errorf("failed to query products: %w", err)
	}
	defer rows.Close()

	return r.collect(rows)
}

// Count returns the number of products matching the filter.
func (r *productRepository) Count(ctx context.Context, filter model.ProductFilter) (int, error) {
	where, args := productWhere(filter)
	query := `SELECT COUNT(*) FROM products` + where

	var count int
	if err := r.db.QueryRow(ctx, query, args...).Scan(&count); err != nil {
		r.logger.Error().Err(err).Str("category", filter.Category).Msg("failed to count products")
		return 0, fmt.Errorf("failed to count products: %w", err)
	}

	return count, nil
}

// Search returns every product whose name contains query, ignoring case.
func (r *productRepository) Search(ctx context.Context, query string) ([]model.Product, error) {
	sql := fmt.Sprintf(`
		SELECT %s
		FROM products
		WHERE name ILIKE $1 ESCAPE '\'
		ORDER BY date_added DESC, id
	`, productColumns)

	rows, err := r.db.Query(ctx, sql, "%"+escapeLike(query)+"%")
	if err != nil {
		r.logger.Error().Err(err).Str("query", query).Msg("failed to search products")
		return nil, fmt.Errorf("failed to search products: %w", err)
	}
	defer rows.Close()

	return r.collect(rows)
}

// GetByID retrieves a single product by its ID.
func (r *productRepository) GetByID(ctx context.Context, id string) (*model.Product, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM products
		WHERE id = $1
	`, productColumns)

	p, err := scanProduct(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			r.logger.Debug().Str("product_id", id).Msg("product not found")
			return nil, nil
		}
		r.logger.Error().Err(err).Str("product_id", id).Msg("failed to query product")
		return nil, fmt.Errorf("failed to query product: %w", err)
	}

	return &p, nil
}

// Create inserts a product and assigns its ID.
func (r *productRepository) Create(ctx context.Context, product *model.Product) error {
	if product.ID == "" {
		product.ID = uuid.NewString()
	}

	query := `
		INSERT INTO products (id, name, description, category, price, image, date_added, average_rating, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`

	_, err := r.db.Exec(ctx, query,
		product.ID,
		product.Name,
		product.Description,
		product.Category,
		product.Price,
		product.Image,
		product.DateAdded,
		product.AverageRating,
		product.CreatedAt,
		product.UpdatedAt,
	)
	if err != nil {
		r.logger.Error().Err(err).Str("product_id", product.ID).Msg("failed to insert product")
		return fmt.Errorf("failed to insert product: %w", err)
	}

	return nil
}

// UpdateAverageRating overwrites the stored average rating.
func (r *productRepository) UpdateAverageRating(ctx context.Context, id string, averageRating float64) error {
	query := `
		UPDATE products
		SET average_rating = $1, updated_at = $2
		WHERE id = $3
	`

	tag, err := r.db.Exec(ctx, query, averageRating, time.Now().UTC(), id)
	if err != nil {
		r.logger.Error().Err(err).Str("product_id", id).Msg("failed to update average rating")
		return fmt.Errorf("failed to update average rating: %w", err)
	}

	if tag.RowsAffected() == 0 {
		r.logger.Warn().Str("product_id", id).Msg("average rating target product not found")
		return model.ErrProductNotFound
	}

	return nil
}

func (r *productRepository) collect(rows pgx.Rows) ([]model.Product, error) {
	products := []model.Product{}
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			r.logger.Error().Err(err).Msg("failed to scan product row")
			return nil, fmt.Errorf("failed to scan product: %w", err)
		}
		products = append(products, p)
	}

	if err := rows.Err(); err != nil {
		r.logger.Error().Err(err).Msg("error iterating product rows")
		return nil, fmt.Errorf("error iterating products: %w", err)
	}

	return products, nil
}

func scanProduct(row pgx.Row) (model.Product, error) {
	var p model.Product
	err := row.Scan(
		&p.ID,
		&p.Name,
		&p.Description,
		&p.Category,
		&p.Price,
		&p.Image,
		&p.DateAdded,
		&p.AverageRating,
		&p.CreatedAt,
		&p.UpdatedAt,
	)
	return p, err
}

func productWhere(filter model.ProductFilter) (string, []any) {
	if filter.Category == "" {
		return "", nil
	}
	return " WHERE category = $1", []any{filter.Category}
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// escapeLike makes s match literally inside a LIKE pattern.
func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}
