package postgres

import (
	"context"
	"errors"
	"fmt"

	"catalog-api/internal/database"
	"catalog-api/internal/model"
	"catalog-api/internal/repository"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/rs/zerolog"
)

const reviewColumns = `id, product_id, author, rating, comment, date, created_at, updated_at`

// reviewRepository implements the ReviewRepository interface using PostgreSQL.
type reviewRepository struct {
	db     database.DBTX
	logger zerolog.Logger
}

// NewReviewRepository creates a new PostgreSQL-backed review repository.
func NewReviewRepository(db database.DBTX, logger zerolog.Logger) repository.ReviewRepository {
	return &reviewRepository{
		db:     db,
		logger: logger.With().Str("repository", "review").Logger(),
	}
}

// ListByProduct returns all reviews of a product, most recent first.
func (r *reviewRepository) ListByProduct(ctx context.Context, productID string) ([]model.Review, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM reviews
		WHERE product_id = $1
		ORDER BY date DESC, id
	`, reviewColumns)

	rows, err := r.db.Query(ctx, query, productID)
	if err != nil {
		r.logger.Error().Err(err).Str("product_id", productID).Msg("failed to query reviews")
		return nil, fmt.Errorf("failed to query reviews: %w", err)
	}
	defer rows.Close()

	reviews := []model.Review{}
	for rows.Next() {
		rv, err := scanReview(rows)
		if err != nil {
			r.logger.Error().Err(err).Msg("failed to scan review row")
			return nil, fmt.Errorf("failed to scan review: %w", err)
		}
		reviews = append(reviews, rv)
	}

	if err := rows.Err(); err != nil {
		r.logger.Error().Err(err).Msg("error iterating review rows")
		return nil, fmt.Errorf("error iterating reviews: %w", err)
	}

	return reviews, nil
}

// GetForProduct retrieves a review that belongs to the given product.
func (r *reviewRepository) GetForProduct(ctx context.Context, productID, id string) (*model.Review, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM reviews
		WHERE id = $1 AND product_id = $2
	`, reviewColumns)

	rv, err := scanReview(r.db.QueryRow(ctx, query, id, productID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			r.logger.Debug().Str("product_id", productID).Str("review_id", id).Msg("review not found")
			return nil, nil
		}
		r.logger.Error().Err(err).Str("review_id", id).Msg("failed to query review")
		return nil, fmt.Errorf("failed to query review: %w", err)
	}

	return &rv, nil
}

// Create inserts a review and assigns its ID.
func (r *reviewRepository) Create(ctx context.Context, review *model.Review) error {
	if review.ID == "" {
		review.ID = uuid.NewString()
	}

	query := `
		INSERT INTO reviews (id, product_id, author, rating, comment, date, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`

	_, err := r.db.Exec(ctx, query,
		review.ID,
		review.ProductID,
		review.Author,
		review.Rating,
		review.Comment,
		review.Date,
		review.CreatedAt,
		review.UpdatedAt,
	)
	if err != nil {
		r.logger.Error().Err(err).Str("product_id", review.ProductID).Msg("failed to insert review")
		return fmt.Errorf("failed to insert review: %w", err)
	}

	return nil
}

// Update persists the author, rating and comment of an existing review.
func (r *reviewRepository) Update(ctx context.Context, review *model.Review) error {
	query := `
		UPDATE reviews
		SET author = $1, rating = $2, comment = $3, updated_at = $4
		WHERE id = $5 AND product_id = $6
	`

	tag, err := r.db.Exec(ctx, query,
		review.Author,
		review.Rating,
		review.Comment,
		review.UpdatedAt,
		review.ID,
		review.ProductID,
	)
	if err != nil {
		r.logger.Error().Err(err).Str("review_id", review.ID).Msg("failed to update review")
		return fmt.Errorf("failed to update review: %w", err)
	}

	if tag.RowsAffected() == 0 {
		return model.ErrReviewNotFound
	}

	return nil
}

// Delete removes a review of the given product.
func (r *reviewRepository) Delete(ctx context.Context, productID, id string) error {
	query := `DELETE FROM reviews WHERE id = $1 AND product_id = $2`

	tag, err := r.db.Exec(ctx, query, id, productID)
	if err != nil {
		r.logger.Error().Err(err).Str("review_id", id).Msg("failed to delete review")
		return fmt.Errorf("failed to delete review: %w", err)
	}

	if tag.RowsAffected() == 0 {
		return model.ErrReviewNotFound
	}

	return nil
}

// RatingsByProduct returns the rating of every review of a product.
func (r *reviewRepository) RatingsByProduct(ctx context.Context, productID string) ([]float64, error) {
	query := `
		SELECT rating
		FROM reviews
		WHERE product_id = $1
		ORDER BY created_at, id
	`

	rows, err := r.db.Query(ctx, query, productID)
	if err != nil {
		r.logger.Error().Err(err).Str("product_id", productID).Msg("failed to query ratings")
		return nil, fmt.Errorf("failed to query ratings: %w", err)
	}
	defer rows.Close()

	ratings := []float64{}
	for rows.Next() {
		var rating float64
		if err := rows.Scan(&rating); err != nil {
			return nil, fmt.Errorf("failed to scan rating: %w", err)
		}
		ratings = append(ratings, rating)
	}

	if err := rows.Err(); err != nil {
		r.logger.Error().Err(err).Msg("error iterating rating rows")
		return nil, fmt.Errorf("error iterating ratings: %w", err)
	}

	return ratings, nil
}

func scanReview(row pgx.Row) (model.Review, error) {
	var rv model.Review
	err := row.Scan(
		&rv.ID,
		&rv.ProductID,
		&rv.Author,
		&rv.Rating,
		&rv.Comment,
		&rv.Date,
		&rv.CreatedAt,
		&rv.UpdatedAt,
	)
	return rv, err
}
